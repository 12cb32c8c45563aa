package domain

import (
	"math/big"
	"time"

	"github.com/nexuspump/nexuspump-api/internal/curve"
)

// Market is one token's bonding-curve trading venue. It is a sequential state
// machine: the service hydrates a Market from storage, executes exactly one
// operation on it under the token's lock, and either persists the whole result
// or discards the instance. A Market whose operation returned an error must
// not be persisted.
//
// Invariant: ReserveBalance always covers the curve integral over
// SuppliedTokens (rounding dust only ever accumulates in the market's favor).
// Graduated flips false→true exactly once and is terminal.
type Market struct {
	TokenAddress    string
	CurveParams     curve.Params
	ReserveBalance  *big.Int
	SuppliedTokens  *big.Int
	Graduated       bool
	MigratedReserve *big.Int
}

// NewMarket returns a fresh ungraduated market at curve position zero.
func NewMarket(tokenAddress string, params curve.Params) *Market {
	return &Market{
		TokenAddress:    tokenAddress,
		CurveParams:     params,
		ReserveBalance:  big.NewInt(0),
		SuppliedTokens:  big.NewInt(0),
		MigratedReserve: big.NewInt(0),
	}
}

// BuyQuote projects a buy without touching state. Execution uses the same
// math, so a quote never diverges from the trade it precedes.
type BuyQuote struct {
	TokensOut  *big.Int
	Fee        *big.Int
	NetPayment *big.Int
}

// SellQuote projects a sell without touching state.
type SellQuote struct {
	PaymentOut  *big.Int
	Fee         *big.Int
	GrossRefund *big.Int
}

// BuyOutcome is the committed result of a buy.
type BuyOutcome struct {
	TokensIssued *big.Int
	Fee          *big.Int
	NetPayment   *big.Int
	GraduatedNow bool
	Pool         *Pool
}

// SellOutcome is the committed result of a sell.
type SellOutcome struct {
	PaymentOut  *big.Int
	Fee         *big.Int
	GrossRefund *big.Int
}

// feeOn returns the protocol fee for an amount, rounded up so fee dust lands
// with the fee sink rather than the trader.
func feeOn(amount *big.Int) *big.Int {
	num := new(big.Int).Mul(amount, big.NewInt(FeeBps))
	num.Add(num, big.NewInt(BpsDenominator-1))
	return num.Div(num, big.NewInt(BpsDenominator))
}

// QuoteBuy computes the tokens issued for a payment at the current curve
// position. The 1% fee comes off the payment before it reaches the curve.
func (m *Market) QuoteBuy(payment *big.Int) (BuyQuote, error) {
	if payment == nil || payment.Sign() <= 0 {
		return BuyQuote{}, ErrZeroAmount
	}
	if m.Graduated {
		return BuyQuote{}, ErrMarketGraduated
	}

	fee := feeOn(payment)
	net := new(big.Int).Sub(payment, fee)
	tokensOut, err := curve.TokensForPayment(m.CurveParams, m.SuppliedTokens, net)
	if err != nil {
		return BuyQuote{}, err
	}

	return BuyQuote{TokensOut: tokensOut, Fee: fee, NetPayment: net}, nil
}

// QuoteSell computes the payment released for selling tokens back to the
// curve. The 1% fee comes off the refund.
func (m *Market) QuoteSell(amount *big.Int) (SellQuote, error) {
	if amount == nil || amount.Sign() <= 0 {
		return SellQuote{}, ErrZeroAmount
	}
	if m.Graduated {
		return SellQuote{}, ErrMarketGraduated
	}
	if amount.Cmp(m.SuppliedTokens) > 0 {
		return SellQuote{}, ErrInsufficientSupply
	}

	gross, err := curve.RefundForSell(m.CurveParams, m.SuppliedTokens, amount)
	if err != nil {
		return SellQuote{}, err
	}
	fee := feeOn(gross)
	out := new(big.Int).Sub(gross, fee)
	if out.Sign() < 0 {
		out = big.NewInt(0)
	}

	return SellQuote{PaymentOut: out, Fee: fee, GrossRefund: gross}, nil
}

// Buy executes a purchase against the curve. If the updated reserve crosses
// the graduation threshold the migration runs inside this same operation and
// its events are appended to the returned list.
func (m *Market) Buy(trader string, payment, minTokensOut *big.Int, now time.Time) (BuyOutcome, []Event, error) {
	q, err := m.QuoteBuy(payment)
	if err != nil {
		return BuyOutcome{}, nil, err
	}
	if q.TokensOut.Sign() == 0 {
		return BuyOutcome{}, nil, ErrInsufficientOutput
	}
	if minTokensOut != nil && q.TokensOut.Cmp(minTokensOut) < 0 {
		return BuyOutcome{}, nil, ErrInsufficientOutput
	}

	newSupplied := new(big.Int).Add(m.SuppliedTokens, q.TokensOut)
	if newSupplied.Cmp(TotalTokenSupply) >= 0 {
		return BuyOutcome{}, nil, ErrSupplyExhausted
	}

	m.ReserveBalance = new(big.Int).Add(m.ReserveBalance, q.NetPayment)
	m.SuppliedTokens = newSupplied

	events := []Event{TradedEvent{
		Address:        m.TokenAddress,
		Trader:         trader,
		IsBuy:          true,
		CurrencyAmount: new(big.Int).Set(payment),
		TokenAmount:    new(big.Int).Set(q.TokensOut),
		Venue:          VenueCurve,
		Timestamp:      now,
	}}

	outcome := BuyOutcome{
		TokensIssued: q.TokensOut,
		Fee:          q.Fee,
		NetPayment:   q.NetPayment,
	}

	// Checked strictly after the reserve update; crossing exactly at the
	// threshold graduates.
	if m.ReserveBalance.Cmp(GraduationThreshold) >= 0 {
		pool, migrationEvents, err := Migrate(m, now)
		if err != nil {
			return BuyOutcome{}, nil, err
		}
		events = append(events, migrationEvents...)
		outcome.GraduatedNow = true
		outcome.Pool = pool
	}

	return outcome, events, nil
}

// Sell executes a sale back to the curve. Sells can never trigger graduation.
func (m *Market) Sell(trader string, amount, minPaymentOut *big.Int, now time.Time) (SellOutcome, []Event, error) {
	q, err := m.QuoteSell(amount)
	if err != nil {
		return SellOutcome{}, nil, err
	}
	if minPaymentOut != nil && q.PaymentOut.Cmp(minPaymentOut) < 0 {
		return SellOutcome{}, nil, ErrInsufficientOutput
	}
	if q.GrossRefund.Cmp(m.ReserveBalance) > 0 {
		// Cannot happen while the collateralization invariant holds.
		return SellOutcome{}, nil, curve.ErrUnderflow
	}

	m.ReserveBalance = new(big.Int).Sub(m.ReserveBalance, q.GrossRefund)
	m.SuppliedTokens = new(big.Int).Sub(m.SuppliedTokens, amount)

	events := []Event{TradedEvent{
		Address:        m.TokenAddress,
		Trader:         trader,
		IsBuy:          false,
		CurrencyAmount: new(big.Int).Set(q.PaymentOut),
		TokenAmount:    new(big.Int).Set(amount),
		Venue:          VenueCurve,
		Timestamp:      now,
	}}

	return SellOutcome{PaymentOut: q.PaymentOut, Fee: q.Fee, GrossRefund: q.GrossRefund}, events, nil
}
