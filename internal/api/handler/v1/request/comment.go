package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/nexuspump/nexuspump-api/internal/domain"
)

type AddCommentRequest struct {
	Message string `json:"message" validate:"required"`
}

func (req *AddCommentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Message, validation.Required, validation.RuneLength(1, domain.MaxTextLength)),
	)
}
