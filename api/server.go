package api

import (
	"context"
	"crypto/rand"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cosmossdk.io/log"

	"github.com/thryx-chain/thryx/app"
	"github.com/thryx-chain/thryx/internal/cache"
	"github.com/thryx-chain/thryx/internal/config"
	"github.com/thryx-chain/thryx/internal/database"
)

// Server exposes the chain state over HTTP. Reads hit the keepers
// directly; writes go through the module message servers so stateless
// validation runs the same way for every entry point.
type Server struct {
	cfg    config.APIConfig
	app    *app.App
	router *gin.Engine
	auth   *AuthService
	hub    *Hub
	prices cache.PriceCache
	db     *database.DB
	logger log.Logger
}

// Options carries the optional server dependencies.
type Options struct {
	// Prices fronts oracle reads; nil disables caching.
	Prices cache.PriceCache
	// DB serves the event history endpoints; nil disables them.
	DB *database.DB
}

// NewServer builds the HTTP server around an app instance.
func NewServer(cfg config.APIConfig, a *app.App, opts Options, logger log.Logger) (*Server, error) {
	secret := []byte(cfg.JWTSecret)
	if len(secret) == 0 {
		// Ephemeral secret: sessions will not survive a restart.
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, err
		}
		logger.Warn("jwt secret not configured, generated an ephemeral one")
	}

	prices := opts.Prices
	if prices == nil {
		prices = cache.NoopCache{}
	}

	s := &Server{
		cfg:    cfg,
		app:    a,
		auth:   NewAuthService(secret),
		hub:    NewHub(a.Events, logger),
		prices: prices,
		db:     opts.DB,
		logger: logger.With("module", "api"),
	}
	s.setupRouter()
	return s, nil
}

func (s *Server) setupRouter() {
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	s.router = gin.New()

	s.router.Use(gin.Recovery())
	s.router.Use(SecurityHeadersMiddleware())
	s.router.Use(RequestIDMiddleware())
	s.router.Use(TracingMiddleware())
	s.router.Use(LoggerMiddleware(s.logger))
	s.router.Use(CORSMiddleware(s.cfg.CORSOrigins))
	s.router.Use(RateLimitMiddleware(s.cfg.RateLimitRPS))

	s.router.GET("/health", s.handleHealth)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	s.router.GET("/ws", s.handleWebSocket)

	s.registerRoutes()
}

// Router returns the underlying gin engine, for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"chain_id":  s.app.ChainID,
		"timestamp": time.Now().Unix(),
	})
}

// Run serves HTTP until the context is cancelled, then drains in-flight
// requests within the shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	go s.hub.Run(ctx)

	srv := &http.Server{
		Addr:           s.cfg.ListenAddr(),
		Handler:        s.router,
		ReadTimeout:    s.cfg.ReadTimeout,
		WriteTimeout:   s.cfg.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("api server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
