package types

import (
	"cosmossdk.io/errors"
)

// Registry module sentinel errors
var (
	ErrInvalidInput       = errors.Register(ModuleName, 1, "invalid input")
	ErrAgentNotFound      = errors.Register(ModuleName, 2, "agent not found")
	ErrAgentAlreadyExists = errors.Register(ModuleName, 3, "agent already registered")
	ErrAgentInactive      = errors.Register(ModuleName, 4, "agent is not active")
	ErrBudgetExceeded     = errors.Register(ModuleName, 5, "daily budget exceeded")
)
