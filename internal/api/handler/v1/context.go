package v1

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/nexuspump/nexuspump-api/internal/api/handler/v1/response"
	"github.com/nexuspump/nexuspump-api/internal/api/middleware"
	"github.com/nexuspump/nexuspump-api/internal/domain"
)

var errMissingCaller = errors.New("caller address missing from context")

// getCallerAddress reads the wallet address the JWT middleware stored on the
// request context.
func getCallerAddress(ctx *gin.Context) (string, *response.Err) {
	v, ok := ctx.Get(middleware.ContextKeyCallerAddress)
	if !ok {
		return "", response.ErrUnauthorized(errMissingCaller)
	}

	address, ok := v.(string)
	if !ok || domain.ValidateAddress(address) != nil {
		return "", response.ErrUnauthorized(errMissingCaller)
	}

	return address, nil
}

// getTokenAddress reads and validates the :address path parameter.
func getTokenAddress(ctx *gin.Context) (string, *response.Err) {
	address := ctx.Param("address")
	if err := domain.ValidateAddress(address); err != nil {
		return "", response.ErrBadRequest(err)
	}

	return address, nil
}
