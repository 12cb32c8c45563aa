package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nexuspump/nexuspump-api/internal/api/handler/v1/request"
	"github.com/nexuspump/nexuspump-api/internal/api/handler/v1/response"
	"github.com/nexuspump/nexuspump-api/internal/domain"
	"github.com/nexuspump/nexuspump-api/internal/service"
)

type TokenService interface {
	CreateToken(ctx context.Context, token domain.Token) (domain.Token, error)
	GetTokenInfo(ctx context.Context, address string) (domain.TokenInfo, error)
	GetAllTokens(ctx context.Context, offset, limit int) ([]domain.TokenInfo, error)
	GetTrendingTokens(ctx context.Context, limit int) ([]domain.TokenInfo, error)
	GetTokenCount(ctx context.Context) (int64, error)
}

type TokenHandler struct {
	svc TokenService
}

func NewTokenHandler(svc TokenService) *TokenHandler {
	return &TokenHandler{
		svc: svc,
	}
}

// HandleCreateToken godoc
// @Summary      Create a token
// @Description  Mints a new token with a fresh bonding-curve market
// @Tags         tokens
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateTokenRequest  true  "token metadata"
// @Success      201      {object}  response.CreatedToken
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /tokens [post]
// @Security     BearerAuth
func (h *TokenHandler) HandleCreateToken(ctx *gin.Context) {
	caller, respErr := getCallerAddress(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	req := request.CreateTokenRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	token, err := h.svc.CreateToken(ctx.Request.Context(), domain.Token{
		Name:        req.Name,
		Symbol:      req.Symbol,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Website:     req.Website,
		Twitter:     req.Twitter,
		Telegram:    req.Telegram,
		Creator:     caller,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTokenExists):
			response.RenderErr(ctx, response.ErrConflict(err))
		case domain.IsValidationError(err):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("HandleCreateToken -> h.svc.CreateToken -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, response.NewCreatedToken(token))
}

// HandleGetTokens godoc
// @Summary      List tokens
// @Description  Lists all tokens in creation order with market state
// @Tags         tokens
// @Produce      json
// @Param        offset  query     int  false  "how many tokens to skip, default 0"
// @Param        limit   query     int  false  "how many tokens to return, default 20"
// @Success      200     {array}   response.Token
// @Failure      500     {object}  response.Err
// @Router       /tokens [get]
func (h *TokenHandler) HandleGetTokens(ctx *gin.Context) {
	offset, limit := getListRange(ctx)

	infos, err := h.svc.GetAllTokens(ctx.Request.Context(), offset, limit)
	if err != nil {
		err = fmt.Errorf("HandleGetTokens -> h.svc.GetAllTokens -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewTokens(infos))
}

// HandleGetToken godoc
// @Summary      Get a token
// @Description  Fetches one token with its market state
// @Tags         tokens
// @Produce      json
// @Param        address  path      string  true  "token address"
// @Success      200      {object}  response.Token
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /tokens/{address} [get]
func (h *TokenHandler) HandleGetToken(ctx *gin.Context) {
	address, respErr := getTokenAddress(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	info, err := h.svc.GetTokenInfo(ctx.Request.Context(), address)
	if err != nil {
		if errors.Is(err, service.ErrTokenNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("token", "address", address))
			return
		}

		err = fmt.Errorf("HandleGetToken -> h.svc.GetTokenInfo -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewTokenFromInfo(info))
}

// HandleGetTokenCount godoc
// @Summary      Count tokens
// @Description  Returns how many tokens have been created
// @Tags         tokens
// @Produce      json
// @Success      200  {object}  response.TokenCount
// @Failure      500  {object}  response.Err
// @Router       /tokens/count [get]
func (h *TokenHandler) HandleGetTokenCount(ctx *gin.Context) {
	count, err := h.svc.GetTokenCount(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("HandleGetTokenCount -> h.svc.GetTokenCount -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.TokenCount{Count: count})
}

// HandleGetTrendingTokens godoc
// @Summary      List trending tokens
// @Description  Lists non-graduated tokens ordered by reserve balance
// @Tags         tokens
// @Produce      json
// @Param        limit  query     int  false  "how many tokens to return, default 10"
// @Success      200    {array}   response.Token
// @Failure      500    {object}  response.Err
// @Router       /tokens/trending [get]
func (h *TokenHandler) HandleGetTrendingTokens(ctx *gin.Context) {
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 10
	}

	infos, err := h.svc.GetTrendingTokens(ctx.Request.Context(), limit)
	if err != nil {
		err = fmt.Errorf("HandleGetTrendingTokens -> h.svc.GetTrendingTokens -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewTokens(infos))
}

// getListRange reads the offset/limit query params, falling back to sane
// bounds on anything unparsable.
func getListRange(ctx *gin.Context) (offset, limit int) {
	offset, err := strconv.Atoi(ctx.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	limit, err = strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}
	return offset, limit
}
