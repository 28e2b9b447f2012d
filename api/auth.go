package api

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const tokenLifetime = 24 * time.Hour

// AuthService issues and validates JWT session tokens. Accounts live in
// memory; the chain address is whatever the user registers with.
type AuthService struct {
	jwtSecret []byte
	users     map[string]*User
	mu        sync.RWMutex
}

// User is a registered API account.
type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Address      string    `json:"address"`
	CreatedAt    time.Time `json:"created_at"`
}

// Claims are the JWT claims carried by a session token.
type Claims struct {
	Username string `json:"username"`
	Address  string `json:"address"`
	jwt.RegisteredClaims
}

// NewAuthService creates an auth service with an empty user store.
func NewAuthService(jwtSecret []byte) *AuthService {
	return &AuthService{
		jwtSecret: jwtSecret,
		users:     make(map[string]*User),
	}
}

// Register creates an account with a bcrypt-hashed password.
func (a *AuthService) Register(username, password, address string) (*User, error) {
	if username == "" || password == "" || address == "" {
		return nil, fmt.Errorf("username, password and address are required")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.users[username]; exists {
		return nil, fmt.Errorf("username %s already exists", username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		Username:     username,
		PasswordHash: string(hash),
		Address:      address,
		CreatedAt:    time.Now(),
	}
	a.users[username] = user
	return user, nil
}

// Login checks the credentials and issues a session token.
func (a *AuthService) Login(username, password string) (string, error) {
	a.mu.RLock()
	user, ok := a.users[username]
	a.mu.RUnlock()

	if !ok {
		return "", fmt.Errorf("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	claims := Claims{
		Username: user.Username,
		Address:  user.Address,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.jwtSecret)
}

// ValidateToken parses and verifies a session token.
func (a *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

func (s *Server) handleRegister(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request", Details: err.Error()})
		return
	}

	user, err := s.auth.Register(req.Username, req.Password, req.Address)
	if err != nil {
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"username": user.Username,
		"address":  user.Address,
	})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request", Details: err.Error()})
		return
	}

	token, err := s.auth.Login(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}
