package curve

import (
	"errors"
	"math/big"
	"testing"
)

func TestAddRejectsOverflow(t *testing.T) {
	if _, err := add(maxUint256, big.NewInt(1)); !errors.Is(err, ErrOverflow) {
		t.Errorf("add(max, 1) err = %v, want ErrOverflow", err)
	}

	got, err := add(maxUint256, big.NewInt(0))
	if err != nil {
		t.Fatalf("add(max, 0) err = %v", err)
	}
	if got.Cmp(maxUint256) != 0 {
		t.Errorf("add(max, 0) = %v, want max", got)
	}
}

func TestSubRejectsUnderflow(t *testing.T) {
	if _, err := sub(big.NewInt(1), big.NewInt(2)); !errors.Is(err, ErrUnderflow) {
		t.Errorf("sub(1, 2) err = %v, want ErrUnderflow", err)
	}

	got, err := sub(big.NewInt(2), big.NewInt(2))
	if err != nil {
		t.Fatalf("sub(2, 2) err = %v", err)
	}
	if got.Sign() != 0 {
		t.Errorf("sub(2, 2) = %v, want 0", got)
	}
}

func TestMulRejectsOverflow(t *testing.T) {
	if _, err := mul(maxUint256, big.NewInt(2)); !errors.Is(err, ErrOverflow) {
		t.Errorf("mul(max, 2) err = %v, want ErrOverflow", err)
	}
}

func TestMulDivRounding(t *testing.T) {
	tests := []struct {
		name    string
		a, b, d int64
		round   Rounding
		want    int64
	}{
		{"exact down", 6, 2, 3, RoundDown, 4},
		{"exact up", 6, 2, 3, RoundUp, 4},
		{"inexact down", 7, 1, 2, RoundDown, 3},
		{"inexact up", 7, 1, 2, RoundUp, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := mulDiv(big.NewInt(tt.a), big.NewInt(tt.b), big.NewInt(tt.d), tt.round)
			if err != nil {
				t.Fatalf("mulDiv err = %v", err)
			}
			if got.Int64() != tt.want {
				t.Errorf("mulDiv(%d, %d, %d) = %v, want %d", tt.a, tt.b, tt.d, got, tt.want)
			}
		})
	}
}

func TestDivByZero(t *testing.T) {
	if _, err := div(big.NewInt(1), big.NewInt(0), RoundDown); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("div(1, 0) err = %v, want ErrDivisionByZero", err)
	}
}
