package domain

import (
	"math/big"
	"time"
)

// Pool is the constant-product venue a token trades on after graduation.
// CurrencyReserve*TokenReserve never drops below K: swap rounding and the fee
// skim only ever push the product up.
type Pool struct {
	TokenAddress    string
	CurrencyReserve *big.Int
	TokenReserve    *big.Int
	K               *big.Int
	CreatedAt       time.Time
}

// SwapOutcome is the committed result of a pool swap.
type SwapOutcome struct {
	AmountOut *big.Int
	Fee       *big.Int
}

// NewPool creates a pool with the given initial reserves. K is fixed here and
// never externally reset.
func NewPool(tokenAddress string, currencyReserve, tokenReserve *big.Int, now time.Time) (*Pool, error) {
	if currencyReserve == nil || tokenReserve == nil ||
		currencyReserve.Sign() <= 0 || tokenReserve.Sign() <= 0 {
		return nil, ErrInsufficientLiquidity
	}
	return &Pool{
		TokenAddress:    tokenAddress,
		CurrencyReserve: new(big.Int).Set(currencyReserve),
		TokenReserve:    new(big.Int).Set(tokenReserve),
		K:               new(big.Int).Mul(currencyReserve, tokenReserve),
		CreatedAt:       now,
	}, nil
}

// QuoteSwap projects a swap without touching state. currencyIn selects the
// direction: true swaps currency for tokens, false tokens for currency.
func (p *Pool) QuoteSwap(amountIn *big.Int, currencyIn bool) (SwapOutcome, error) {
	if amountIn == nil || amountIn.Sign() <= 0 {
		return SwapOutcome{}, ErrZeroAmount
	}

	reserveIn, reserveOut := p.TokenReserve, p.CurrencyReserve
	if currencyIn {
		reserveIn, reserveOut = p.CurrencyReserve, p.TokenReserve
	}

	fee := feeOn(amountIn)
	inAfterFee := new(big.Int).Sub(amountIn, fee)
	if inAfterFee.Sign() <= 0 {
		return SwapOutcome{}, ErrInsufficientOutput
	}

	// out = reserveOut - ceil(k / (reserveIn + inAfterFee)), the ceiling
	// keeping the product at or above K.
	newIn := new(big.Int).Add(reserveIn, inAfterFee)
	quo, rem := new(big.Int).QuoRem(p.K, newIn, new(big.Int))
	if rem.Sign() != 0 {
		quo.Add(quo, big.NewInt(1))
	}
	out := new(big.Int).Sub(reserveOut, quo)
	if out.Sign() <= 0 {
		return SwapOutcome{}, ErrInsufficientOutput
	}
	if out.Cmp(reserveOut) >= 0 {
		return SwapOutcome{}, ErrInsufficientLiquidity
	}

	return SwapOutcome{AmountOut: out, Fee: fee}, nil
}

// Swap executes a constant-product swap. The fee is skimmed off amountIn
// before the curve applies and accrues to the protocol fee sink.
func (p *Pool) Swap(trader string, amountIn *big.Int, currencyIn bool, minAmountOut *big.Int, now time.Time) (SwapOutcome, []Event, error) {
	q, err := p.QuoteSwap(amountIn, currencyIn)
	if err != nil {
		return SwapOutcome{}, nil, err
	}
	if minAmountOut != nil && q.AmountOut.Cmp(minAmountOut) < 0 {
		return SwapOutcome{}, nil, ErrInsufficientOutput
	}

	inAfterFee := new(big.Int).Sub(amountIn, q.Fee)
	if currencyIn {
		p.CurrencyReserve = new(big.Int).Add(p.CurrencyReserve, inAfterFee)
		p.TokenReserve = new(big.Int).Sub(p.TokenReserve, q.AmountOut)
	} else {
		p.TokenReserve = new(big.Int).Add(p.TokenReserve, inAfterFee)
		p.CurrencyReserve = new(big.Int).Sub(p.CurrencyReserve, q.AmountOut)
	}

	events := []Event{TradedEvent{
		Address:        p.TokenAddress,
		Trader:         trader,
		IsBuy:          currencyIn,
		CurrencyAmount: currencySide(amountIn, q.AmountOut, currencyIn),
		TokenAmount:    tokenSide(amountIn, q.AmountOut, currencyIn),
		Venue:          VenuePool,
		Timestamp:      now,
	}}

	return q, events, nil
}

func currencySide(amountIn, amountOut *big.Int, currencyIn bool) *big.Int {
	if currencyIn {
		return new(big.Int).Set(amountIn)
	}
	return new(big.Int).Set(amountOut)
}

func tokenSide(amountIn, amountOut *big.Int, currencyIn bool) *big.Int {
	if currencyIn {
		return new(big.Int).Set(amountOut)
	}
	return new(big.Int).Set(amountIn)
}
