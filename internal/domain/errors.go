package domain

import (
	"errors"

	"github.com/nexuspump/nexuspump-api/internal/curve"
)

// Sentinel errors for the trading core. Handlers classify them into the four
// recoverable/fatal buckets via the Is* helpers below.
var (
	// Validation: rejected before any state change, caller fixes input.
	ErrZeroAmount      = errors.New("amount must be greater than zero")
	ErrInvalidMetadata = errors.New("invalid token metadata")
	ErrEmptyMessage    = errors.New("message is empty")
	ErrMessageTooLong  = errors.New("message exceeds maximum length")
	ErrInvalidAddress  = errors.New("invalid address")

	// State: the operation is out of order with the market's lifecycle.
	ErrMarketGraduated    = errors.New("market has graduated")
	ErrAlreadyGraduated   = errors.New("market already migrated")
	ErrNotGraduated       = errors.New("market has not graduated")
	ErrInsufficientSupply = errors.New("sell exceeds supplied tokens")
	ErrSupplyExhausted    = errors.New("buy exceeds total token supply")

	// Slippage: recoverable, funds never moved.
	ErrInsufficientOutput = errors.New("output below minimum")

	// Pool-specific.
	ErrInsufficientLiquidity = errors.New("insufficient pool liquidity")
)

// IsValidationError reports whether err is a caller-input problem.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrZeroAmount) ||
		errors.Is(err, ErrInvalidMetadata) ||
		errors.Is(err, ErrEmptyMessage) ||
		errors.Is(err, ErrMessageTooLong) ||
		errors.Is(err, ErrInvalidAddress)
}

// IsStateError reports whether err signals an ordering/lifecycle fault.
func IsStateError(err error) bool {
	return errors.Is(err, ErrMarketGraduated) ||
		errors.Is(err, ErrAlreadyGraduated) ||
		errors.Is(err, ErrNotGraduated) ||
		errors.Is(err, ErrInsufficientSupply) ||
		errors.Is(err, ErrSupplyExhausted) ||
		errors.Is(err, ErrInsufficientLiquidity)
}

// IsSlippageError reports whether err is a recoverable slippage rejection.
func IsSlippageError(err error) bool {
	return errors.Is(err, ErrInsufficientOutput)
}

// IsArithmeticError reports whether err came out of the fixed-point math.
func IsArithmeticError(err error) bool {
	return errors.Is(err, curve.ErrOverflow) ||
		errors.Is(err, curve.ErrUnderflow) ||
		errors.Is(err, curve.ErrDivisionByZero) ||
		errors.Is(err, curve.ErrNegativeAmount)
}
