package request

import (
	"errors"
	"math/big"
	"regexp"
)

const amountPattern = `^[0-9]+$`

var (
	amountExp = regexp.MustCompile(amountPattern)

	errInvalidAmount  = errors.New("amount must be a base-10 integer string")
	errZeroAmount     = errors.New("amount must be greater than zero")
	errNegativeAmount = errors.New("amount must not be negative")
)

// parseAmount parses a decimal wei string into a big.Int, rejecting
// anything that is not a plain non-negative base-10 integer.
func parseAmount(s string) (*big.Int, error) {
	if !amountExp.MatchString(s) {
		return nil, errInvalidAmount
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, errInvalidAmount
	}
	return v, nil
}

// ParsePositiveAmount parses a decimal wei string that must be > 0.
func ParsePositiveAmount(s string) (*big.Int, error) {
	v, err := parseAmount(s)
	if err != nil {
		return nil, err
	}
	if v.Sign() <= 0 {
		return nil, errZeroAmount
	}
	return v, nil
}

// ParseMinAmount parses a decimal wei string that may be zero. An empty
// string is treated as zero, for optional slippage bounds.
func ParseMinAmount(s string) (*big.Int, error) {
	if s == "" {
		return new(big.Int), nil
	}
	v, err := parseAmount(s)
	if err != nil {
		return nil, err
	}
	if v.Sign() < 0 {
		return nil, errNegativeAmount
	}
	return v, nil
}
