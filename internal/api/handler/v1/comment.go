package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nexuspump/nexuspump-api/internal/api/handler/v1/request"
	"github.com/nexuspump/nexuspump-api/internal/api/handler/v1/response"
	"github.com/nexuspump/nexuspump-api/internal/domain"
	"github.com/nexuspump/nexuspump-api/internal/service"
)

type CommentService interface {
	AddComment(ctx context.Context, address, author, message string) (domain.Comment, error)
	GetComments(ctx context.Context, address string) ([]domain.Comment, error)
}

type CommentHandler struct {
	svc CommentService
}

func NewCommentHandler(svc CommentService) *CommentHandler {
	return &CommentHandler{
		svc: svc,
	}
}

// HandleAddComment godoc
// @Summary      Add a comment
// @Description  Appends a comment to a token's ledger
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        address  path      string                     true  "token address"
// @Param        request  body      request.AddCommentRequest  true  "comment message"
// @Success      201      {object}  response.Comment
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /tokens/{address}/comments [post]
// @Security     BearerAuth
func (h *CommentHandler) HandleAddComment(ctx *gin.Context) {
	address, respErr := getTokenAddress(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	caller, respErr := getCallerAddress(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	req := request.AddCommentRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	comment, err := h.svc.AddComment(ctx.Request.Context(), address, caller, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTokenNotFound):
			response.RenderErr(ctx, response.ErrNotFound("token", "address", address))
		case domain.IsValidationError(err):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("HandleAddComment -> h.svc.AddComment -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, response.NewComment(comment))
}

// HandleGetComments godoc
// @Summary      List comments
// @Description  Lists a token's comments in the order they were posted
// @Tags         comments
// @Produce      json
// @Param        address  path      string  true  "token address"
// @Success      200      {array}   response.Comment
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /tokens/{address}/comments [get]
func (h *CommentHandler) HandleGetComments(ctx *gin.Context) {
	address, respErr := getTokenAddress(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	comments, err := h.svc.GetComments(ctx.Request.Context(), address)
	if err != nil {
		if errors.Is(err, service.ErrTokenNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("token", "address", address))
			return
		}

		err = fmt.Errorf("HandleGetComments -> h.svc.GetComments -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewComments(comments))
}
