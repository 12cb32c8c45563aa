package domain

import (
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/nexuspump/nexuspump-api/internal/curve"
)

const (
	testToken  = "0x00000000000000000000000000000000000000aa"
	testTrader = "0x00000000000000000000000000000000000000bb"
)

var testTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func defaultParams() curve.Params {
	return curve.Params{BasePrice: big.NewInt(10_000_000_000), Slope: big.NewInt(190)}
}

func eth(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), curve.Scale)
}

func TestBuyIssuesTokensAndCollectsFee(t *testing.T) {
	m := NewMarket(testToken, defaultParams())
	payment := eth(1)

	outcome, events, err := m.Buy(testTrader, payment, nil, testTime)
	if err != nil {
		t.Fatalf("Buy err = %v", err)
	}

	// 1% of the payment, the rest reaches the curve.
	wantFee := new(big.Int).Div(payment, big.NewInt(100))
	if outcome.Fee.Cmp(wantFee) != 0 {
		t.Errorf("Fee = %v, want %v", outcome.Fee, wantFee)
	}
	wantNet := new(big.Int).Sub(payment, wantFee)
	if outcome.NetPayment.Cmp(wantNet) != 0 {
		t.Errorf("NetPayment = %v, want %v", outcome.NetPayment, wantNet)
	}
	if outcome.TokensIssued.Sign() <= 0 {
		t.Fatalf("TokensIssued = %v, want > 0", outcome.TokensIssued)
	}
	if outcome.GraduatedNow {
		t.Error("GraduatedNow = true for a small first buy")
	}

	if m.ReserveBalance.Cmp(wantNet) != 0 {
		t.Errorf("ReserveBalance = %v, want net payment %v", m.ReserveBalance, wantNet)
	}
	if m.SuppliedTokens.Cmp(outcome.TokensIssued) != 0 {
		t.Errorf("SuppliedTokens = %v, want %v", m.SuppliedTokens, outcome.TokensIssued)
	}

	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	traded, ok := events[0].(TradedEvent)
	if !ok {
		t.Fatalf("event type = %T, want TradedEvent", events[0])
	}
	if !traded.IsBuy || traded.Venue != VenueCurve {
		t.Errorf("event = %+v, want curve buy", traded)
	}
	if traded.CurrencyAmount.Cmp(payment) != 0 {
		t.Errorf("event CurrencyAmount = %v, want gross payment %v", traded.CurrencyAmount, payment)
	}
}

func TestBuyRespectsSlippageBound(t *testing.T) {
	m := NewMarket(testToken, defaultParams())
	payment := eth(1)

	q, err := m.QuoteBuy(payment)
	if err != nil {
		t.Fatalf("QuoteBuy err = %v", err)
	}

	tooMany := new(big.Int).Add(q.TokensOut, big.NewInt(1))
	if _, _, err := m.Buy(testTrader, payment, tooMany, testTime); !errors.Is(err, ErrInsufficientOutput) {
		t.Fatalf("Buy err = %v, want ErrInsufficientOutput", err)
	}

	// The rejected buy must leave the market untouched.
	if m.ReserveBalance.Sign() != 0 || m.SuppliedTokens.Sign() != 0 {
		t.Errorf("market mutated by rejected buy: reserve=%v supplied=%v", m.ReserveBalance, m.SuppliedTokens)
	}
}

func TestBuyRejectsZeroPayment(t *testing.T) {
	m := NewMarket(testToken, defaultParams())

	if _, _, err := m.Buy(testTrader, big.NewInt(0), nil, testTime); !errors.Is(err, ErrZeroAmount) {
		t.Errorf("Buy(0) err = %v, want ErrZeroAmount", err)
	}
	if _, _, err := m.Buy(testTrader, nil, nil, testTime); !errors.Is(err, ErrZeroAmount) {
		t.Errorf("Buy(nil) err = %v, want ErrZeroAmount", err)
	}
}

func TestBuyGraduatesWhenReserveCrossesThreshold(t *testing.T) {
	m := NewMarket(testToken, defaultParams())

	// Walk the market to just under the threshold, then push it across.
	m.ReserveBalance = new(big.Int).Sub(GraduationThreshold, eth(1))
	m.SuppliedTokens = eth(1000)

	outcome, events, err := m.Buy(testTrader, eth(2), nil, testTime)
	if err != nil {
		t.Fatalf("Buy err = %v", err)
	}

	if !outcome.GraduatedNow {
		t.Fatal("GraduatedNow = false, want graduation")
	}
	if outcome.Pool == nil {
		t.Fatal("Pool = nil after graduation")
	}
	if !m.Graduated {
		t.Error("market not marked graduated")
	}

	// The reserve drains into the pool; unsold supply backs the token side.
	if m.ReserveBalance.Sign() != 0 {
		t.Errorf("ReserveBalance = %v after migration, want 0", m.ReserveBalance)
	}
	if m.MigratedReserve.Cmp(outcome.Pool.CurrencyReserve) != 0 {
		t.Errorf("MigratedReserve = %v, pool currency reserve = %v", m.MigratedReserve, outcome.Pool.CurrencyReserve)
	}
	wantTokenReserve := new(big.Int).Sub(TotalTokenSupply, m.SuppliedTokens)
	if outcome.Pool.TokenReserve.Cmp(wantTokenReserve) != 0 {
		t.Errorf("pool token reserve = %v, want unsold supply %v", outcome.Pool.TokenReserve, wantTokenReserve)
	}

	if len(events) != 2 {
		t.Fatalf("got %d events, want trade + graduation", len(events))
	}
	if _, ok := events[1].(GraduatedEvent); !ok {
		t.Errorf("second event type = %T, want GraduatedEvent", events[1])
	}

	// Terminal: no further curve trades in either direction.
	if _, _, err := m.Buy(testTrader, eth(1), nil, testTime); !errors.Is(err, ErrMarketGraduated) {
		t.Errorf("Buy after graduation err = %v, want ErrMarketGraduated", err)
	}
	if _, _, err := m.Sell(testTrader, eth(1), nil, testTime); !errors.Is(err, ErrMarketGraduated) {
		t.Errorf("Sell after graduation err = %v, want ErrMarketGraduated", err)
	}
}

func TestBuyGraduatesExactlyAtThreshold(t *testing.T) {
	m := NewMarket(testToken, defaultParams())

	// Landing exactly on the threshold counts as crossing it.
	payment := eth(1)
	net := new(big.Int).Sub(payment, feeOn(payment))
	m.ReserveBalance = new(big.Int).Sub(GraduationThreshold, net)
	m.SuppliedTokens = eth(1000)

	outcome, _, err := m.Buy(testTrader, payment, nil, testTime)
	if err != nil {
		t.Fatalf("Buy err = %v", err)
	}
	if !outcome.GraduatedNow {
		t.Error("GraduatedNow = false when reserve lands exactly on the threshold")
	}
}

func TestBuyRejectsSupplyExhaustion(t *testing.T) {
	// A flat 1-wei curve lets a small payment claim the entire supply.
	m := NewMarket(testToken, curve.Params{BasePrice: big.NewInt(1), Slope: big.NewInt(0)})

	if _, _, err := m.Buy(testTrader, big.NewInt(2_000_000_000), nil, testTime); !errors.Is(err, ErrSupplyExhausted) {
		t.Errorf("Buy err = %v, want ErrSupplyExhausted", err)
	}
}

func TestSellReturnsCurrencyAndShrinksCurve(t *testing.T) {
	m := NewMarket(testToken, defaultParams())

	buy, _, err := m.Buy(testTrader, eth(1), nil, testTime)
	if err != nil {
		t.Fatalf("Buy err = %v", err)
	}

	outcome, events, err := m.Sell(testTrader, buy.TokensIssued, nil, testTime)
	if err != nil {
		t.Fatalf("Sell err = %v", err)
	}

	if outcome.PaymentOut.Sign() <= 0 {
		t.Fatalf("PaymentOut = %v, want > 0", outcome.PaymentOut)
	}
	if m.SuppliedTokens.Sign() != 0 {
		t.Errorf("SuppliedTokens = %v after selling everything, want 0", m.SuppliedTokens)
	}

	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	traded := events[0].(TradedEvent)
	if traded.IsBuy || traded.Venue != VenueCurve {
		t.Errorf("event = %+v, want curve sell", traded)
	}
	if traded.CurrencyAmount.Cmp(outcome.PaymentOut) != 0 {
		t.Errorf("event CurrencyAmount = %v, want net payout %v", traded.CurrencyAmount, outcome.PaymentOut)
	}
}

func TestRoundTripNeverProfits(t *testing.T) {
	m := NewMarket(testToken, defaultParams())
	payment := eth(3)

	buy, _, err := m.Buy(testTrader, payment, nil, testTime)
	if err != nil {
		t.Fatalf("Buy err = %v", err)
	}
	sell, _, err := m.Sell(testTrader, buy.TokensIssued, nil, testTime)
	if err != nil {
		t.Fatalf("Sell err = %v", err)
	}

	if sell.PaymentOut.Cmp(payment) >= 0 {
		t.Errorf("round trip returned %v for %v paid", sell.PaymentOut, payment)
	}

	// Fees and rounding dust never leave the reserve under-collateralized.
	if m.ReserveBalance.Sign() < 0 {
		t.Errorf("ReserveBalance = %v, want >= 0", m.ReserveBalance)
	}
}

func TestSellMoreThanSuppliedFails(t *testing.T) {
	m := NewMarket(testToken, defaultParams())

	if _, _, err := m.Buy(testTrader, eth(1), nil, testTime); err != nil {
		t.Fatalf("Buy err = %v", err)
	}

	reserveBefore := new(big.Int).Set(m.ReserveBalance)
	suppliedBefore := new(big.Int).Set(m.SuppliedTokens)

	tooMany := new(big.Int).Add(m.SuppliedTokens, big.NewInt(1))
	if _, _, err := m.Sell(testTrader, tooMany, nil, testTime); !errors.Is(err, ErrInsufficientSupply) {
		t.Fatalf("Sell err = %v, want ErrInsufficientSupply", err)
	}

	if m.ReserveBalance.Cmp(reserveBefore) != 0 || m.SuppliedTokens.Cmp(suppliedBefore) != 0 {
		t.Error("market mutated by rejected sell")
	}
}

func TestQuoteMatchesExecution(t *testing.T) {
	payment := eth(2)

	quoted := NewMarket(testToken, defaultParams())
	q, err := quoted.QuoteBuy(payment)
	if err != nil {
		t.Fatalf("QuoteBuy err = %v", err)
	}

	executed := NewMarket(testToken, defaultParams())
	outcome, _, err := executed.Buy(testTrader, payment, nil, testTime)
	if err != nil {
		t.Fatalf("Buy err = %v", err)
	}

	if q.TokensOut.Cmp(outcome.TokensIssued) != 0 {
		t.Errorf("quote TokensOut = %v, execution issued %v", q.TokensOut, outcome.TokensIssued)
	}
	if q.Fee.Cmp(outcome.Fee) != 0 {
		t.Errorf("quote Fee = %v, execution fee %v", q.Fee, outcome.Fee)
	}
}

func TestReserveCoversCurveIntegral(t *testing.T) {
	// The reserve must fully back the supplied tokens through the curve
	// integral after every operation: selling the entire supply can never
	// ask for more than the reserve holds. Rounding dust only ever
	// accumulates on the market's side.
	m := NewMarket(testToken, defaultParams())

	assertCollateralized := func(step string) {
		t.Helper()
		if m.ReserveBalance.Sign() < 0 {
			t.Fatalf("%v: ReserveBalance = %v, want >= 0", step, m.ReserveBalance)
		}
		if m.SuppliedTokens.Sign() == 0 {
			return
		}
		floor, err := curve.RefundForSell(m.CurveParams, m.SuppliedTokens, m.SuppliedTokens)
		if err != nil {
			t.Fatalf("%v: RefundForSell err = %v", step, err)
		}
		if m.ReserveBalance.Cmp(floor) < 0 {
			t.Fatalf("%v: ReserveBalance = %v below full-drain refund %v", step, m.ReserveBalance, floor)
		}
	}

	buys := []*big.Int{eth(1), big.NewInt(12345), eth(3), big.NewInt(999_999_999), eth(2)}
	for i, payment := range buys {
		if _, _, err := m.Buy(testTrader, payment, nil, testTime); err != nil {
			t.Fatalf("buy %d err = %v", i, err)
		}
		assertCollateralized("after buy")

		// Interleave a partial sell of half the current supply.
		half := new(big.Int).Rsh(m.SuppliedTokens, 1)
		if half.Sign() > 0 {
			if _, _, err := m.Sell(testTrader, half, nil, testTime); err != nil {
				t.Fatalf("sell %d err = %v", i, err)
			}
			assertCollateralized("after partial sell")
		}
	}

	// Drain the curve completely; whatever is left is the market's dust.
	if _, _, err := m.Sell(testTrader, m.SuppliedTokens, nil, testTime); err != nil {
		t.Fatalf("final sell err = %v", err)
	}
	assertCollateralized("after full drain")
}

func TestFeeRoundsUp(t *testing.T) {
	// 1% of 99 wei is 0.99, charged as 1.
	if got := feeOn(big.NewInt(99)); got.Cmp(big.NewInt(1)) != 0 {
		t.Errorf("feeOn(99) = %v, want 1", got)
	}
	if got := feeOn(big.NewInt(10_000)); got.Cmp(big.NewInt(100)) != 0 {
		t.Errorf("feeOn(10000) = %v, want 100", got)
	}
}
