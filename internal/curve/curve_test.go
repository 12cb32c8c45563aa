package curve

import (
	"errors"
	"math/big"
	"testing"
)

func tokens(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), Scale)
}

func testParams() Params {
	return Params{BasePrice: big.NewInt(2), Slope: big.NewInt(1)}
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantErr bool
	}{
		{"valid", Params{BasePrice: big.NewInt(1), Slope: big.NewInt(1)}, false},
		{"flat curve", Params{BasePrice: big.NewInt(1), Slope: big.NewInt(0)}, false},
		{"nil base price", Params{Slope: big.NewInt(1)}, true},
		{"nil slope", Params{BasePrice: big.NewInt(1)}, true},
		{"zero base price", Params{BasePrice: big.NewInt(0), Slope: big.NewInt(1)}, true},
		{"negative slope", Params{BasePrice: big.NewInt(1), Slope: big.NewInt(-1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPriceIsLinearInSupply(t *testing.T) {
	p := testParams()

	got, err := Price(p, big.NewInt(0))
	if err != nil {
		t.Fatalf("Price(0) err = %v", err)
	}
	if got.Cmp(p.BasePrice) != 0 {
		t.Errorf("Price(0) = %v, want base price %v", got, p.BasePrice)
	}

	got, err = Price(p, tokens(5))
	if err != nil {
		t.Fatalf("Price(5 tokens) err = %v", err)
	}
	if want := big.NewInt(7); got.Cmp(want) != 0 {
		t.Errorf("Price(5 tokens) = %v, want %v", got, want)
	}

	if _, err = Price(p, big.NewInt(-1)); !errors.Is(err, ErrNegativeAmount) {
		t.Errorf("Price(-1) err = %v, want ErrNegativeAmount", err)
	}
}

func TestCostRoundsUpRefundRoundsDown(t *testing.T) {
	// Buying one token from zero costs exactly 2.5 wei on this curve: the
	// cost ceils to 3 while the refund over the identical interval floors
	// to 2. Rounding dust stays with the market.
	p := testParams()

	cost, err := CostToBuy(p, big.NewInt(0), tokens(1))
	if err != nil {
		t.Fatalf("CostToBuy err = %v", err)
	}
	if want := big.NewInt(3); cost.Cmp(want) != 0 {
		t.Errorf("CostToBuy = %v, want %v", cost, want)
	}

	refund, err := RefundForSell(p, tokens(1), tokens(1))
	if err != nil {
		t.Fatalf("RefundForSell err = %v", err)
	}
	if want := big.NewInt(2); refund.Cmp(want) != 0 {
		t.Errorf("RefundForSell = %v, want %v", refund, want)
	}

	if refund.Cmp(cost) > 0 {
		t.Errorf("refund %v exceeds cost %v over the same interval", refund, cost)
	}
}

func TestCostZeroDelta(t *testing.T) {
	cost, err := CostToBuy(testParams(), tokens(10), big.NewInt(0))
	if err != nil {
		t.Fatalf("CostToBuy err = %v", err)
	}
	if cost.Sign() != 0 {
		t.Errorf("CostToBuy(delta=0) = %v, want 0", cost)
	}
}

func TestRefundBeyondSupplyFails(t *testing.T) {
	if _, err := RefundForSell(testParams(), tokens(1), tokens(2)); !errors.Is(err, ErrUnderflow) {
		t.Errorf("RefundForSell err = %v, want ErrUnderflow", err)
	}
}

func TestCostIsMonotonicInPosition(t *testing.T) {
	// The same delta costs strictly more later on the curve.
	p := testParams()

	early, err := CostToBuy(p, big.NewInt(0), tokens(10))
	if err != nil {
		t.Fatalf("CostToBuy(early) err = %v", err)
	}
	late, err := CostToBuy(p, tokens(100), tokens(10))
	if err != nil {
		t.Fatalf("CostToBuy(late) err = %v", err)
	}
	if late.Cmp(early) <= 0 {
		t.Errorf("cost at supply 100 (%v) not greater than at 0 (%v)", late, early)
	}
}

func TestTokensForPaymentInvertsCost(t *testing.T) {
	// For any payment, the issued delta is the largest amount whose cost
	// stays within the payment: cost(delta) <= payment < cost(delta+1).
	p := Params{BasePrice: big.NewInt(10), Slope: big.NewInt(3)}

	supplies := []*big.Int{big.NewInt(0), tokens(1), tokens(123), tokens(999999)}
	payments := []*big.Int{big.NewInt(1), big.NewInt(97), big.NewInt(1_000_003), tokens(42)}

	for _, supplied := range supplies {
		for _, payment := range payments {
			delta, err := TokensForPayment(p, supplied, payment)
			if err != nil {
				t.Fatalf("TokensForPayment(%v, %v) err = %v", supplied, payment, err)
			}

			cost, err := CostToBuy(p, supplied, delta)
			if err != nil {
				t.Fatalf("CostToBuy(delta) err = %v", err)
			}
			if cost.Cmp(payment) > 0 {
				t.Errorf("cost(%v) = %v exceeds payment %v at supply %v", delta, cost, payment, supplied)
			}

			next, err := CostToBuy(p, supplied, new(big.Int).Add(delta, big.NewInt(1)))
			if err != nil {
				t.Fatalf("CostToBuy(delta+1) err = %v", err)
			}
			if next.Cmp(payment) <= 0 {
				t.Errorf("cost(delta+1) = %v still within payment %v at supply %v", next, payment, supplied)
			}
		}
	}
}

func TestTokensForPaymentFlatCurve(t *testing.T) {
	p := Params{BasePrice: big.NewInt(4), Slope: big.NewInt(0)}

	got, err := TokensForPayment(p, big.NewInt(0), big.NewInt(10))
	if err != nil {
		t.Fatalf("TokensForPayment err = %v", err)
	}
	// 10 wei / 4 wei-per-token = 2.5 tokens, floored in base units.
	want := new(big.Int).Div(new(big.Int).Mul(big.NewInt(10), Scale), big.NewInt(4))
	if got.Cmp(want) != 0 {
		t.Errorf("TokensForPayment = %v, want %v", got, want)
	}
}

func TestTokensForPaymentZero(t *testing.T) {
	got, err := TokensForPayment(testParams(), big.NewInt(0), big.NewInt(0))
	if err != nil {
		t.Fatalf("TokensForPayment err = %v", err)
	}
	if got.Sign() != 0 {
		t.Errorf("TokensForPayment(0) = %v, want 0", got)
	}
}

func TestTokensForPaymentRejectsOverflow(t *testing.T) {
	huge := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	if _, err := TokensForPayment(testParams(), big.NewInt(0), huge); !errors.Is(err, ErrOverflow) {
		t.Errorf("TokensForPayment(max) err = %v, want ErrOverflow", err)
	}
}
