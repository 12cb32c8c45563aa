package response

import (
	"time"

	"github.com/nexuspump/nexuspump-api/internal/domain"
)

// Token mirrors the factory's TokenInfo tuple. Amounts are decimal strings of
// 18-decimal base units.
type Token struct {
	Address     string    `json:"address"`
	Name        string    `json:"name"`
	Symbol      string    `json:"symbol"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	Website     string    `json:"website"`
	Twitter     string    `json:"twitter"`
	Telegram    string    `json:"telegram"`
	Creator     string    `json:"creator"`
	CreatedAt   time.Time `json:"createdAt"`
	TotalRaised string    `json:"totalRaised"`
	Graduated   bool      `json:"graduated"`
}

func NewTokenFromInfo(info domain.TokenInfo) Token {
	return Token{
		Address:     info.Address,
		Name:        info.Name,
		Symbol:      info.Symbol,
		Description: info.Description,
		ImageURL:    info.ImageURL,
		Website:     info.Website,
		Twitter:     info.Twitter,
		Telegram:    info.Telegram,
		Creator:     info.Creator,
		CreatedAt:   info.CreatedAt,
		TotalRaised: info.TotalRaised.String(),
		Graduated:   info.Graduated,
	}
}

func NewTokens(infos []domain.TokenInfo) []Token {
	tokens := make([]Token, len(infos))
	for i, info := range infos {
		tokens[i] = NewTokenFromInfo(info)
	}
	return tokens
}

// CreatedToken is the creation response: the new identity before any trading.
type CreatedToken struct {
	Address     string    `json:"address"`
	Name        string    `json:"name"`
	Symbol      string    `json:"symbol"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	Website     string    `json:"website"`
	Twitter     string    `json:"twitter"`
	Telegram    string    `json:"telegram"`
	Creator     string    `json:"creator"`
	CreatedAt   time.Time `json:"createdAt"`
}

func NewCreatedToken(t domain.Token) CreatedToken {
	return CreatedToken{
		Address:     t.Address,
		Name:        t.Name,
		Symbol:      t.Symbol,
		Description: t.Description,
		ImageURL:    t.ImageURL,
		Website:     t.Website,
		Twitter:     t.Twitter,
		Telegram:    t.Telegram,
		Creator:     t.Creator,
		CreatedAt:   t.CreatedAt,
	}
}

type TokenCount struct {
	Count int64 `json:"count"`
}
