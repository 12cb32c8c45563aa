package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/nexuspump/nexuspump-api/internal/domain"
)

type CreateTokenRequest struct {
	Name        string `json:"name" validate:"required"`
	Symbol      string `json:"symbol" validate:"required"`
	Description string `json:"description" validate:"required"`
	ImageURL    string `json:"image_url,omitempty"`
	Website     string `json:"website,omitempty"`
	Twitter     string `json:"twitter,omitempty"`
	Telegram    string `json:"telegram,omitempty"`
}

func (req *CreateTokenRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.RuneLength(1, domain.MaxNameLength)),
		validation.Field(&req.Symbol, validation.Required, validation.RuneLength(1, domain.MaxSymbolLength)),
		validation.Field(&req.Description, validation.Required, validation.RuneLength(1, domain.MaxTextLength)),
		validation.Field(&req.ImageURL, validation.RuneLength(0, domain.MaxURLLength)),
		validation.Field(&req.Website, validation.RuneLength(0, domain.MaxURLLength)),
		validation.Field(&req.Twitter, validation.RuneLength(0, domain.MaxURLLength)),
		validation.Field(&req.Telegram, validation.RuneLength(0, domain.MaxURLLength)),
	)
}
