package domain

import (
	"math/big"
	"time"
)

// Trade venues.
const (
	VenueCurve = "curve"
	VenuePool  = "pool"
)

// Trade is the persisted record of one executed buy, sell or swap. The trade
// history endpoints and the price chart are fed from these rows.
type Trade struct {
	ID             uint
	TokenAddress   string
	Trader         string
	IsBuy          bool
	CurrencyAmount *big.Int
	TokenAmount    *big.Int
	Fee            *big.Int
	Venue          string
	CreatedAt      time.Time
}
