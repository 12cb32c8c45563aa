package curve

import (
	"errors"
	"math/big"
)

// Arithmetic failures are fatal for the operation that hit them. They must
// surface as errors instead of wrapping or saturating, otherwise the reserve
// accounting silently drifts from the curve integral.
var (
	ErrOverflow       = errors.New("curve: arithmetic overflow")
	ErrUnderflow      = errors.New("curve: arithmetic underflow")
	ErrDivisionByZero = errors.New("curve: division by zero")
	ErrNegativeAmount = errors.New("curve: negative amount")
)

// Rounding selects the direction a division result is rounded in.
type Rounding int

const (
	RoundDown Rounding = iota
	RoundUp
)

// maxUint256 caps every intermediate value. Anything larger is rejected.
var maxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

func checkRange(v *big.Int) (*big.Int, error) {
	if v.Sign() < 0 {
		return nil, ErrUnderflow
	}
	if v.Cmp(maxUint256) > 0 {
		return nil, ErrOverflow
	}
	return v, nil
}

func add(a, b *big.Int) (*big.Int, error) {
	return checkRange(new(big.Int).Add(a, b))
}

func sub(a, b *big.Int) (*big.Int, error) {
	if b.Cmp(a) > 0 {
		return nil, ErrUnderflow
	}
	return new(big.Int).Sub(a, b), nil
}

func mul(a, b *big.Int) (*big.Int, error) {
	return checkRange(new(big.Int).Mul(a, b))
}

// mulDiv computes a*b/den with the requested rounding, keeping the full
// product as an intermediate so the multiplication never truncates.
func mulDiv(a, b, den *big.Int, round Rounding) (*big.Int, error) {
	if den.Sign() == 0 {
		return nil, ErrDivisionByZero
	}
	prod := new(big.Int).Mul(a, b)
	if prod.Sign() < 0 {
		return nil, ErrUnderflow
	}
	quo, rem := new(big.Int).QuoRem(prod, den, new(big.Int))
	if round == RoundUp && rem.Sign() != 0 {
		quo.Add(quo, big.NewInt(1))
	}
	return checkRange(quo)
}

func div(a, b *big.Int, round Rounding) (*big.Int, error) {
	return mulDiv(a, big.NewInt(1), b, round)
}
