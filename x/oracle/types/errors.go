package types

import (
	"cosmossdk.io/errors"
)

// Oracle module sentinel errors
var (
	ErrInvalidInput        = errors.Register(ModuleName, 1, "invalid input")
	ErrUnauthorized        = errors.Register(ModuleName, 2, "reporter not authorized")
	ErrDuplicateSubmission = errors.Register(ModuleName, 3, "duplicate price submission")
	ErrExcessiveDeviation  = errors.Register(ModuleName, 4, "price deviation too high")
	ErrPriceNotFound       = errors.Register(ModuleName, 5, "price not found")
)
