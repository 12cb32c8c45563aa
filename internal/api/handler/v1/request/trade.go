package request

import (
	"math/big"

	validation "github.com/go-ozzo/ozzo-validation"
)

type BuyRequest struct {
	Payment      string `json:"payment" validate:"required"`
	MinTokensOut string `json:"min_tokens_out,omitempty"`

	payment      *big.Int
	minTokensOut *big.Int
}

func (req *BuyRequest) Validate() error {
	if err := validation.ValidateStruct(
		req,
		validation.Field(&req.Payment, validation.Required),
	); err != nil {
		return err
	}

	var err error
	if req.payment, err = ParsePositiveAmount(req.Payment); err != nil {
		return err
	}
	if req.minTokensOut, err = ParseMinAmount(req.MinTokensOut); err != nil {
		return err
	}
	return nil
}

// Amounts returns the parsed payment and minimum-out. Validate must have
// been called first.
func (req *BuyRequest) Amounts() (payment, minTokensOut *big.Int) {
	return req.payment, req.minTokensOut
}

type SellRequest struct {
	TokenAmount   string `json:"token_amount" validate:"required"`
	MinPaymentOut string `json:"min_payment_out,omitempty"`

	tokenAmount   *big.Int
	minPaymentOut *big.Int
}

func (req *SellRequest) Validate() error {
	if err := validation.ValidateStruct(
		req,
		validation.Field(&req.TokenAmount, validation.Required),
	); err != nil {
		return err
	}

	var err error
	if req.tokenAmount, err = ParsePositiveAmount(req.TokenAmount); err != nil {
		return err
	}
	if req.minPaymentOut, err = ParseMinAmount(req.MinPaymentOut); err != nil {
		return err
	}
	return nil
}

func (req *SellRequest) Amounts() (tokenAmount, minPaymentOut *big.Int) {
	return req.tokenAmount, req.minPaymentOut
}

type SwapRequest struct {
	AmountIn     string `json:"amount_in" validate:"required"`
	CurrencyIn   bool   `json:"currency_in"`
	MinAmountOut string `json:"min_amount_out,omitempty"`

	amountIn     *big.Int
	minAmountOut *big.Int
}

func (req *SwapRequest) Validate() error {
	if err := validation.ValidateStruct(
		req,
		validation.Field(&req.AmountIn, validation.Required),
	); err != nil {
		return err
	}

	var err error
	if req.amountIn, err = ParsePositiveAmount(req.AmountIn); err != nil {
		return err
	}
	if req.minAmountOut, err = ParseMinAmount(req.MinAmountOut); err != nil {
		return err
	}
	return nil
}

func (req *SwapRequest) Amounts() (amountIn, minAmountOut *big.Int) {
	return req.amountIn, req.minAmountOut
}
