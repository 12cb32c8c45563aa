package domain

import (
	"errors"
	"math/big"
	"testing"
)

func TestMigrateIsOneShot(t *testing.T) {
	m := NewMarket(testToken, defaultParams())
	m.ReserveBalance = new(big.Int).Set(GraduationThreshold)
	m.SuppliedTokens = eth(1000)

	pool, events, err := Migrate(m, testTime)
	if err != nil {
		t.Fatalf("Migrate err = %v", err)
	}

	if pool.CurrencyReserve.Cmp(GraduationThreshold) != 0 {
		t.Errorf("pool currency reserve = %v, want the full final reserve", pool.CurrencyReserve)
	}
	if m.ReserveBalance.Sign() != 0 {
		t.Errorf("ReserveBalance = %v after migration, want 0", m.ReserveBalance)
	}
	if m.MigratedReserve.Cmp(GraduationThreshold) != 0 {
		t.Errorf("MigratedReserve = %v, want %v", m.MigratedReserve, GraduationThreshold)
	}

	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	graduated, ok := events[0].(GraduatedEvent)
	if !ok {
		t.Fatalf("event type = %T, want GraduatedEvent", events[0])
	}
	if graduated.FinalReserve.Cmp(GraduationThreshold) != 0 {
		t.Errorf("event FinalReserve = %v, want %v", graduated.FinalReserve, GraduationThreshold)
	}

	// The flag flips first, so a repeat attempt dies immediately.
	if _, _, err := Migrate(m, testTime); !errors.Is(err, ErrAlreadyGraduated) {
		t.Errorf("second Migrate err = %v, want ErrAlreadyGraduated", err)
	}
}
