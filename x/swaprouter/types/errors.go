package types

import (
	"cosmossdk.io/errors"
)

// Swap router module sentinel errors
var (
	ErrInvalidToken         = errors.Register(ModuleName, 1, "invalid token denomination")
	ErrInvalidAmount        = errors.Register(ModuleName, 2, "invalid amount")
	ErrInvalidGeneration    = errors.Register(ModuleName, 3, "unsupported amm generation")
	ErrInvalidPayment       = errors.Register(ModuleName, 4, "attached payment does not match swap input")
	ErrDeadlineExceeded     = errors.Register(ModuleName, 5, "swap deadline exceeded")
	ErrSlippageExceeded     = errors.Register(ModuleName, 6, "output amount less than minimum required")
	ErrReentrancy           = errors.Register(ModuleName, 7, "reentrant call rejected")
	ErrNotOwner             = errors.Register(ModuleName, 8, "caller is not the module authority")
	ErrInvalidCut           = errors.Register(ModuleName, 9, "invalid registry cut")
	ErrNativeTransferFailed = errors.Register(ModuleName, 10, "native currency transfer failed")
	ErrNoRouteFound         = errors.Register(ModuleName, 11, "no route found for pair")
	ErrInsufficientAmount   = errors.Register(ModuleName, 12, "amount insufficient to cover fees")
	ErrInvalidRoute         = errors.Register(ModuleName, 13, "invalid route encoding")
	ErrNoSuchOperation      = errors.Register(ModuleName, 14, "operation tag is not bound")
	ErrOverflow             = errors.Register(ModuleName, 15, "arithmetic overflow")
	ErrInvalidQuote         = errors.Register(ModuleName, 16, "pinned quote is not usable")
	ErrSettlementFailed     = errors.Register(ModuleName, 17, "pool manager settlement failed")
	ErrInvalidAddress       = errors.Register(ModuleName, 18, "invalid address")
)
