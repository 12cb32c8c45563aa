package domain

import (
	"errors"
	"math/big"
	"testing"
)

func testPool(t *testing.T) *Pool {
	t.Helper()
	pool, err := NewPool(testToken, eth(69), eth(900_000_000), testTime)
	if err != nil {
		t.Fatalf("NewPool err = %v", err)
	}
	return pool
}

func TestNewPoolRejectsEmptyReserves(t *testing.T) {
	if _, err := NewPool(testToken, big.NewInt(0), eth(1), testTime); !errors.Is(err, ErrInsufficientLiquidity) {
		t.Errorf("NewPool(0, x) err = %v, want ErrInsufficientLiquidity", err)
	}
	if _, err := NewPool(testToken, eth(1), nil, testTime); !errors.Is(err, ErrInsufficientLiquidity) {
		t.Errorf("NewPool(x, nil) err = %v, want ErrInsufficientLiquidity", err)
	}
}

func TestSwapKeepsProductAtOrAboveK(t *testing.T) {
	pool := testPool(t)

	outcome, events, err := pool.Swap(testTrader, eth(1), true, nil, testTime)
	if err != nil {
		t.Fatalf("Swap err = %v", err)
	}

	if outcome.AmountOut.Sign() <= 0 {
		t.Fatalf("AmountOut = %v, want > 0", outcome.AmountOut)
	}

	product := new(big.Int).Mul(pool.CurrencyReserve, pool.TokenReserve)
	if product.Cmp(pool.K) < 0 {
		t.Errorf("reserve product %v dropped below K %v", product, pool.K)
	}

	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	traded := events[0].(TradedEvent)
	if !traded.IsBuy || traded.Venue != VenuePool {
		t.Errorf("event = %+v, want pool buy", traded)
	}
}

func TestSwapSkimsFeeFromReserves(t *testing.T) {
	pool := testPool(t)
	currencyBefore := new(big.Int).Set(pool.CurrencyReserve)
	amountIn := eth(1)

	outcome, _, err := pool.Swap(testTrader, amountIn, true, nil, testTime)
	if err != nil {
		t.Fatalf("Swap err = %v", err)
	}

	// Only the post-fee input lands in the reserve; the fee goes to the sink.
	wantCurrency := new(big.Int).Add(currencyBefore, new(big.Int).Sub(amountIn, outcome.Fee))
	if pool.CurrencyReserve.Cmp(wantCurrency) != 0 {
		t.Errorf("CurrencyReserve = %v, want %v", pool.CurrencyReserve, wantCurrency)
	}
}

func TestSwapBothDirections(t *testing.T) {
	pool := testPool(t)

	buy, _, err := pool.Swap(testTrader, eth(1), true, nil, testTime)
	if err != nil {
		t.Fatalf("currency-in swap err = %v", err)
	}

	sell, _, err := pool.Swap(testTrader, buy.AmountOut, false, nil, testTime)
	if err != nil {
		t.Fatalf("token-in swap err = %v", err)
	}

	// Fees and rounding make the round trip strictly lossy.
	if sell.AmountOut.Cmp(eth(1)) >= 0 {
		t.Errorf("round trip returned %v for %v paid", sell.AmountOut, eth(1))
	}
}

func TestSwapQuoteMatchesExecution(t *testing.T) {
	pool := testPool(t)

	q, err := pool.QuoteSwap(eth(2), true)
	if err != nil {
		t.Fatalf("QuoteSwap err = %v", err)
	}

	outcome, _, err := pool.Swap(testTrader, eth(2), true, nil, testTime)
	if err != nil {
		t.Fatalf("Swap err = %v", err)
	}

	if q.AmountOut.Cmp(outcome.AmountOut) != 0 {
		t.Errorf("quote AmountOut = %v, execution %v", q.AmountOut, outcome.AmountOut)
	}
}

func TestSwapRespectsSlippageBound(t *testing.T) {
	pool := testPool(t)

	q, err := pool.QuoteSwap(eth(1), true)
	if err != nil {
		t.Fatalf("QuoteSwap err = %v", err)
	}

	tooMuch := new(big.Int).Add(q.AmountOut, big.NewInt(1))
	if _, _, err := pool.Swap(testTrader, eth(1), true, tooMuch, testTime); !errors.Is(err, ErrInsufficientOutput) {
		t.Fatalf("Swap err = %v, want ErrInsufficientOutput", err)
	}

	product := new(big.Int).Mul(pool.CurrencyReserve, pool.TokenReserve)
	if product.Cmp(pool.K) != 0 {
		t.Error("rejected swap mutated reserves")
	}
}

func TestSwapRejectsDustInput(t *testing.T) {
	pool := testPool(t)

	// 1 wei in is consumed entirely by the fee.
	if _, err := pool.QuoteSwap(big.NewInt(1), true); !errors.Is(err, ErrInsufficientOutput) {
		t.Errorf("QuoteSwap(1) err = %v, want ErrInsufficientOutput", err)
	}
	if _, err := pool.QuoteSwap(big.NewInt(0), true); !errors.Is(err, ErrZeroAmount) {
		t.Errorf("QuoteSwap(0) err = %v, want ErrZeroAmount", err)
	}
}
