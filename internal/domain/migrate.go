package domain

import (
	"math/big"
	"time"
)

// Migrate performs the one-shot graduation of a market into a fresh
// constant-product pool. The check-and-set on Graduated is the first effect,
// so a second migration attempt on the same instance fails before anything
// else happens. Pool reserves are the market's final reserve balance paired
// with the token supply the curve never sold.
//
// Migration runs inside the buy that crossed the threshold; if it fails the
// caller must discard the market instance so the whole buy rolls back.
func Migrate(m *Market, now time.Time) (*Pool, []Event, error) {
	if m.Graduated {
		return nil, nil, ErrAlreadyGraduated
	}
	m.Graduated = true

	unsold := new(big.Int).Sub(TotalTokenSupply, m.SuppliedTokens)
	finalReserve := new(big.Int).Set(m.ReserveBalance)

	pool, err := NewPool(m.TokenAddress, finalReserve, unsold, now)
	if err != nil {
		return nil, nil, err
	}

	// Drain the reserve into the pool.
	m.MigratedReserve = finalReserve
	m.ReserveBalance = big.NewInt(0)

	events := []Event{GraduatedEvent{
		Address:      m.TokenAddress,
		FinalReserve: finalReserve,
		Timestamp:    now,
	}}

	return pool, events, nil
}
