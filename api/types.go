package api

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// RegisterRequest creates an API account.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=8"`
	Address  string `json:"address" binding:"required"`
}

// LoginRequest authenticates an API account.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterAgentRequest enrolls an autonomous agent in the registry.
type RegisterAgentRequest struct {
	Address     string `json:"address" binding:"required"`
	DailyBudget string `json:"daily_budget" binding:"required"`
	Permissions string `json:"permissions"`
	Metadata    string `json:"metadata"`
}

// SetAgentActiveRequest toggles an agent's active flag.
type SetAgentActiveRequest struct {
	Active bool `json:"active"`
}
