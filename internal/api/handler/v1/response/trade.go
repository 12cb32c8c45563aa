package response

import (
	"time"

	"github.com/nexuspump/nexuspump-api/internal/domain"
)

type BuyReceipt struct {
	TokensIssued string `json:"tokensIssued"`
	Fee          string `json:"fee"`
	Graduated    bool   `json:"graduated"`
}

func NewBuyReceipt(outcome domain.BuyOutcome) BuyReceipt {
	return BuyReceipt{
		TokensIssued: outcome.TokensIssued.String(),
		Fee:          outcome.Fee.String(),
		Graduated:    outcome.GraduatedNow,
	}
}

type SellReceipt struct {
	PaymentOut string `json:"paymentOut"`
	Fee        string `json:"fee"`
}

func NewSellReceipt(outcome domain.SellOutcome) SellReceipt {
	return SellReceipt{
		PaymentOut: outcome.PaymentOut.String(),
		Fee:        outcome.Fee.String(),
	}
}

type SwapReceipt struct {
	AmountOut string `json:"amountOut"`
	Fee       string `json:"fee"`
}

func NewSwapReceipt(outcome domain.SwapOutcome) SwapReceipt {
	return SwapReceipt{
		AmountOut: outcome.AmountOut.String(),
		Fee:       outcome.Fee.String(),
	}
}

type BuyQuote struct {
	TokensOut  string `json:"tokensOut"`
	Fee        string `json:"fee"`
	NetPayment string `json:"netPayment"`
}

func NewBuyQuote(q domain.BuyQuote) BuyQuote {
	return BuyQuote{
		TokensOut:  q.TokensOut.String(),
		Fee:        q.Fee.String(),
		NetPayment: q.NetPayment.String(),
	}
}

type SellQuote struct {
	PaymentOut  string `json:"paymentOut"`
	Fee         string `json:"fee"`
	GrossRefund string `json:"grossRefund"`
}

func NewSellQuote(q domain.SellQuote) SellQuote {
	return SellQuote{
		PaymentOut:  q.PaymentOut.String(),
		Fee:         q.Fee.String(),
		GrossRefund: q.GrossRefund.String(),
	}
}

type Trade struct {
	ID             uint      `json:"id"`
	TokenAddress   string    `json:"tokenAddress"`
	Trader         string    `json:"trader"`
	IsBuy          bool      `json:"isBuy"`
	CurrencyAmount string    `json:"currencyAmount"`
	TokenAmount    string    `json:"tokenAmount"`
	Fee            string    `json:"fee"`
	Venue          string    `json:"venue"`
	CreatedAt      time.Time `json:"createdAt"`
}

func NewTrades(trades []domain.Trade) []Trade {
	result := make([]Trade, len(trades))
	for i, t := range trades {
		result[i] = Trade{
			ID:             t.ID,
			TokenAddress:   t.TokenAddress,
			Trader:         t.Trader,
			IsBuy:          t.IsBuy,
			CurrencyAmount: t.CurrencyAmount.String(),
			TokenAmount:    t.TokenAmount.String(),
			Fee:            t.Fee.String(),
			Venue:          t.Venue,
			CreatedAt:      t.CreatedAt,
		}
	}
	return result
}
