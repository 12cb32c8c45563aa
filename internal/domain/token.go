package domain

import (
	"math/big"
	"strings"
	"time"
	"unicode/utf8"
)

// Token is the immutable identity of a launched token. Created once by the
// registry, never mutated, never deleted.
type Token struct {
	Address     string
	Name        string
	Symbol      string
	Description string
	ImageURL    string
	Website     string
	Twitter     string
	Telegram    string
	Creator     string
	CreatedAt   time.Time
}

// TokenInfo is a token plus the live market fields the listing endpoints
// expose, mirroring the factory's TokenInfo tuple.
type TokenInfo struct {
	Token
	TotalRaised *big.Int
	Graduated   bool
}

// ValidateMetadata enforces the registry's creation bounds. The optional URL
// and social fields may be empty; length limits still apply when set.
func (t Token) ValidateMetadata() error {
	if strings.TrimSpace(t.Name) == "" || utf8.RuneCountInString(t.Name) > MaxNameLength {
		return ErrInvalidMetadata
	}
	if strings.TrimSpace(t.Symbol) == "" || utf8.RuneCountInString(t.Symbol) > MaxSymbolLength {
		return ErrInvalidMetadata
	}
	if strings.TrimSpace(t.Description) == "" || utf8.RuneCountInString(t.Description) > MaxTextLength {
		return ErrInvalidMetadata
	}
	for _, u := range []string{t.ImageURL, t.Website, t.Twitter, t.Telegram} {
		if utf8.RuneCountInString(u) > MaxURLLength {
			return ErrInvalidMetadata
		}
	}
	return nil
}

// ValidateAddress checks the 0x-prefixed 20-byte hex form used for both token
// and wallet identities.
func ValidateAddress(addr string) error {
	if len(addr) != AddressHexLength || !strings.HasPrefix(addr, "0x") {
		return ErrInvalidAddress
	}
	for _, c := range strings.ToLower(addr[2:]) {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return ErrInvalidAddress
		}
	}
	return nil
}
