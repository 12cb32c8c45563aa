package domain

import "math/big"

// Protocol constants. These are fixed for every market and never configurable
// per request.
const (
	// FeeBps is the trading fee in basis points, charged on curve buys, curve
	// sells and pool swaps alike.
	FeeBps = 100
	// BpsDenominator converts basis points to a fraction.
	BpsDenominator = 10000

	MaxSymbolLength  = 10
	MaxTextLength    = 500
	MaxNameLength    = 50
	MaxURLLength     = 200
	AddressHexLength = 42 // "0x" + 20 bytes
)

var (
	// GraduationThreshold is the reserve balance (wei) at which a market
	// graduates: 69 units of the reserve currency.
	GraduationThreshold = mustBig("69000000000000000000")

	// TotalTokenSupply is every token's fixed total supply in base units:
	// 1 billion whole tokens. Whatever the curve has not sold at graduation
	// becomes the pool's token-side reserve.
	TotalTokenSupply = mustBig("1000000000000000000000000000")
)

func mustBig(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("domain: bad constant " + s)
	}
	return v
}
