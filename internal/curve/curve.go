// Package curve holds the bonding-curve pricing math. Everything in here is
// pure: callers own the market state and pass supply positions in.
//
// The curve is linear in cumulative supply,
//
//	price(s) = basePrice + slope*s/1e18   (wei per whole token)
//
// with supply counted in 18-decimal base units. Buy cost and sell refund are the
// definite integrals of price over the traded interval, computed in integer
// arithmetic with rounding always in the market's favor: costs round up,
// refunds and issued tokens round down. The market can therefore never end up
// under-collateralized from rounding alone.
package curve

import (
	"errors"
	"math/big"
)

// Scale is the fixed-point base: 1 whole token or currency unit = 1e18.
var Scale = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

var two = big.NewInt(2)

var ErrInvalidParams = errors.New("curve: invalid parameters")

// Params are the per-market curve coefficients, fixed at market creation.
// BasePrice is the spot price at zero supply in wei per whole token. Slope is
// the price increase in wei per whole token issued.
type Params struct {
	BasePrice *big.Int
	Slope     *big.Int
}

func (p Params) Validate() error {
	if p.BasePrice == nil || p.Slope == nil {
		return ErrInvalidParams
	}
	if p.BasePrice.Sign() <= 0 || p.Slope.Sign() < 0 {
		return ErrInvalidParams
	}
	return nil
}

// Price returns the spot price (wei per whole token) at the given cumulative
// supply in base units. Strictly increasing when slope > 0.
func Price(p Params, supplied *big.Int) (*big.Int, error) {
	if supplied.Sign() < 0 {
		return nil, ErrNegativeAmount
	}
	grown, err := mulDiv(p.Slope, supplied, Scale, RoundDown)
	if err != nil {
		return nil, err
	}
	return add(p.BasePrice, grown)
}

// CostToBuy returns the currency (wei) required to move the curve from
// `supplied` to `supplied+delta` base units, rounded up.
//
//	cost = integral(price, supplied, supplied+delta) / 1e18
//	     = (2*basePrice*1e18*delta + slope*delta*(2*supplied+delta)) / (2*1e36)
func CostToBuy(p Params, supplied, delta *big.Int) (*big.Int, error) {
	return integralOver(p, supplied, delta, RoundUp)
}

// RefundForSell returns the currency (wei) released by moving the curve from
// `supplied` down to `supplied-delta` base units, rounded down.
func RefundForSell(p Params, supplied, delta *big.Int) (*big.Int, error) {
	if delta.Cmp(supplied) > 0 {
		return nil, ErrUnderflow
	}
	lower, err := sub(supplied, delta)
	if err != nil {
		return nil, err
	}
	return integralOver(p, lower, delta, RoundDown)
}

func integralOver(p Params, lower, delta *big.Int, round Rounding) (*big.Int, error) {
	if lower.Sign() < 0 || delta.Sign() < 0 {
		return nil, ErrNegativeAmount
	}
	if delta.Sign() == 0 {
		return big.NewInt(0), nil
	}
	// num = 2*basePrice*Scale*delta + slope*delta*(2*lower+delta)
	basePart, err := mul(new(big.Int).Mul(two, p.BasePrice), new(big.Int).Mul(Scale, delta))
	if err != nil {
		return nil, err
	}
	span, err := add(new(big.Int).Mul(two, lower), delta)
	if err != nil {
		return nil, err
	}
	slopePart, err := mul(p.Slope, new(big.Int).Mul(delta, span))
	if err != nil {
		return nil, err
	}
	num, err := add(basePart, slopePart)
	if err != nil {
		return nil, err
	}
	den := new(big.Int).Mul(two, new(big.Int).Mul(Scale, Scale))
	return div(num, den, round)
}

// TokensForPayment inverts the integral: the largest delta (base units) whose
// cost at the current supply does not exceed `payment` wei. Solved in closed
// form from the quadratic
//
//	slope*delta^2 + 2*(basePrice*1e18 + slope*supplied)*delta = 2*1e36*payment
//
// taking the floor of the positive root, so issued tokens round down.
func TokensForPayment(p Params, supplied, payment *big.Int) (*big.Int, error) {
	if supplied.Sign() < 0 || payment.Sign() < 0 {
		return nil, ErrNegativeAmount
	}
	if payment.Sign() == 0 {
		return big.NewInt(0), nil
	}

	scaleSq := new(big.Int).Mul(Scale, Scale)
	c, err := mul(new(big.Int).Mul(two, scaleSq), payment)
	if err != nil {
		return nil, err
	}

	if p.Slope.Sign() == 0 {
		// Flat curve: delta = payment*1e18 / basePrice.
		return mulDiv(payment, Scale, p.BasePrice, RoundDown)
	}

	grown, err := mul(p.Slope, supplied)
	if err != nil {
		return nil, err
	}
	b, err := add(new(big.Int).Mul(p.BasePrice, Scale), grown)
	if err != nil {
		return nil, err
	}
	b.Mul(b, two)

	// delta = (sqrt(b^2 + 4*slope*c) - b) / (2*slope)
	disc, err := add(new(big.Int).Mul(b, b), new(big.Int).Mul(new(big.Int).Mul(big.NewInt(4), p.Slope), c))
	if err != nil {
		return nil, err
	}
	root := new(big.Int).Sqrt(disc)
	num, err := sub(root, b)
	if err != nil {
		return nil, err
	}
	return div(num, new(big.Int).Mul(two, p.Slope), RoundDown)
}
