package v1

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nexuspump/nexuspump-api/internal/api/handler/v1/request"
	"github.com/nexuspump/nexuspump-api/internal/api/handler/v1/response"
	"github.com/nexuspump/nexuspump-api/internal/domain"
	"github.com/nexuspump/nexuspump-api/internal/service"
)

type TradeService interface {
	Buy(ctx context.Context, address, trader string, payment, minTokensOut *big.Int) (domain.BuyOutcome, error)
	Sell(ctx context.Context, address, trader string, amount, minPaymentOut *big.Int) (domain.SellOutcome, error)
	Swap(ctx context.Context, address, trader string, amountIn *big.Int, currencyIn bool, minAmountOut *big.Int) (domain.SwapOutcome, error)
	QuoteBuy(ctx context.Context, address string, payment *big.Int) (domain.BuyQuote, error)
	QuoteSell(ctx context.Context, address string, amount *big.Int) (domain.SellQuote, error)
	QuoteSwap(ctx context.Context, address string, amountIn *big.Int, currencyIn bool) (domain.SwapOutcome, error)
	GetTrades(ctx context.Context, address string, limit, offset int) ([]domain.Trade, error)
}

type TradeHandler struct {
	svc TradeService
}

func NewTradeHandler(svc TradeService) *TradeHandler {
	return &TradeHandler{
		svc: svc,
	}
}

// mapTradeErr translates market errors into HTTP responses. Not-found lookups
// become 404, caller mistakes 400, lifecycle faults 409 and rejected
// executions 422.
func mapTradeErr(op, address string, err error) *response.Err {
	switch {
	case errors.Is(err, service.ErrTokenNotFound),
		errors.Is(err, service.ErrMarketNotFound),
		errors.Is(err, service.ErrPoolNotFound):
		return response.ErrNotFound("token", "address", address)
	case domain.IsValidationError(err):
		return response.ErrBadRequest(err)
	case domain.IsStateError(err), errors.Is(err, service.ErrStaleMarket):
		return response.ErrConflict(err)
	case domain.IsSlippageError(err), domain.IsArithmeticError(err):
		return response.ErrUnprocessable(err)
	default:
		return response.ErrInternalServerError(fmt.Errorf("%s -> %w", op, err))
	}
}

// HandleBuy godoc
// @Summary      Buy on the bonding curve
// @Description  Spends currency on the token's bonding curve, possibly graduating it
// @Tags         trades
// @Accept       json
// @Produce      json
// @Param        address  path      string              true  "token address"
// @Param        request  body      request.BuyRequest  true  "payment in wei"
// @Success      200      {object}  response.BuyReceipt
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      422      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /tokens/{address}/buy [post]
// @Security     BearerAuth
func (h *TradeHandler) HandleBuy(ctx *gin.Context) {
	address, caller, req, ok := bindTrade(ctx, &request.BuyRequest{})
	if !ok {
		return
	}

	payment, minTokensOut := req.(*request.BuyRequest).Amounts()
	outcome, err := h.svc.Buy(ctx.Request.Context(), address, caller, payment, minTokensOut)
	if err != nil {
		response.RenderErr(ctx, mapTradeErr("HandleBuy -> h.svc.Buy", address, err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewBuyReceipt(outcome))
}

// HandleSell godoc
// @Summary      Sell on the bonding curve
// @Description  Sells tokens back to the bonding curve for currency
// @Tags         trades
// @Accept       json
// @Produce      json
// @Param        address  path      string               true  "token address"
// @Param        request  body      request.SellRequest  true  "token amount in base units"
// @Success      200      {object}  response.SellReceipt
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      422      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /tokens/{address}/sell [post]
// @Security     BearerAuth
func (h *TradeHandler) HandleSell(ctx *gin.Context) {
	address, caller, req, ok := bindTrade(ctx, &request.SellRequest{})
	if !ok {
		return
	}

	amount, minPaymentOut := req.(*request.SellRequest).Amounts()
	outcome, err := h.svc.Sell(ctx.Request.Context(), address, caller, amount, minPaymentOut)
	if err != nil {
		response.RenderErr(ctx, mapTradeErr("HandleSell -> h.svc.Sell", address, err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewSellReceipt(outcome))
}

// HandleSwap godoc
// @Summary      Swap on the graduated pool
// @Description  Swaps against the constant-product pool of a graduated token
// @Tags         trades
// @Accept       json
// @Produce      json
// @Param        address  path      string               true  "token address"
// @Param        request  body      request.SwapRequest  true  "swap amounts"
// @Success      200      {object}  response.SwapReceipt
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      422      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /tokens/{address}/swap [post]
// @Security     BearerAuth
func (h *TradeHandler) HandleSwap(ctx *gin.Context) {
	address, caller, req, ok := bindTrade(ctx, &request.SwapRequest{})
	if !ok {
		return
	}

	swapReq := req.(*request.SwapRequest)
	amountIn, minAmountOut := swapReq.Amounts()
	outcome, err := h.svc.Swap(ctx.Request.Context(), address, caller, amountIn, swapReq.CurrencyIn, minAmountOut)
	if err != nil {
		response.RenderErr(ctx, mapTradeErr("HandleSwap -> h.svc.Swap", address, err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewSwapReceipt(outcome))
}

// HandleQuoteBuy godoc
// @Summary      Quote a buy
// @Description  Projects how many tokens a payment would mint, without trading
// @Tags         trades
// @Produce      json
// @Param        address  path      string  true  "token address"
// @Param        payment  query     string  true  "payment in wei"
// @Success      200      {object}  response.BuyQuote
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /tokens/{address}/quotes/buy [get]
func (h *TradeHandler) HandleQuoteBuy(ctx *gin.Context) {
	address, respErr := getTokenAddress(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	payment, err := request.ParsePositiveAmount(ctx.Query("payment"))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	quote, err := h.svc.QuoteBuy(ctx.Request.Context(), address, payment)
	if err != nil {
		response.RenderErr(ctx, mapTradeErr("HandleQuoteBuy -> h.svc.QuoteBuy", address, err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewBuyQuote(quote))
}

// HandleQuoteSell godoc
// @Summary      Quote a sell
// @Description  Projects the refund for selling tokens, without trading
// @Tags         trades
// @Produce      json
// @Param        address  path      string  true  "token address"
// @Param        amount   query     string  true  "token amount in base units"
// @Success      200      {object}  response.SellQuote
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /tokens/{address}/quotes/sell [get]
func (h *TradeHandler) HandleQuoteSell(ctx *gin.Context) {
	address, respErr := getTokenAddress(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	amount, err := request.ParsePositiveAmount(ctx.Query("amount"))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	quote, err := h.svc.QuoteSell(ctx.Request.Context(), address, amount)
	if err != nil {
		response.RenderErr(ctx, mapTradeErr("HandleQuoteSell -> h.svc.QuoteSell", address, err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewSellQuote(quote))
}

// HandleQuoteSwap godoc
// @Summary      Quote a swap
// @Description  Projects a pool swap's output, without trading
// @Tags         trades
// @Produce      json
// @Param        address      path      string  true   "token address"
// @Param        amount_in    query     string  true   "input amount"
// @Param        currency_in  query     bool    false  "true when spending currency for tokens"
// @Success      200          {object}  response.SwapReceipt
// @Failure      400          {object}  response.Err
// @Failure      404          {object}  response.Err
// @Failure      409          {object}  response.Err
// @Failure      500          {object}  response.Err
// @Router       /tokens/{address}/quotes/swap [get]
func (h *TradeHandler) HandleQuoteSwap(ctx *gin.Context) {
	address, respErr := getTokenAddress(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	amountIn, err := request.ParsePositiveAmount(ctx.Query("amount_in"))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	currencyIn := ctx.DefaultQuery("currency_in", "true") == "true"

	outcome, err := h.svc.QuoteSwap(ctx.Request.Context(), address, amountIn, currencyIn)
	if err != nil {
		response.RenderErr(ctx, mapTradeErr("HandleQuoteSwap -> h.svc.QuoteSwap", address, err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewSwapReceipt(outcome))
}

// HandleGetTrades godoc
// @Summary      List trades
// @Description  Lists a token's trades, newest first
// @Tags         trades
// @Produce      json
// @Param        address  path      string  true   "token address"
// @Param        limit    query     int     false  "how many trades to return, default 50"
// @Param        offset   query     int     false  "offset for pagination, default 0"
// @Success      200      {array}   response.Trade
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /tokens/{address}/trades [get]
func (h *TradeHandler) HandleGetTrades(ctx *gin.Context) {
	address, respErr := getTokenAddress(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 || limit > 200 {
		limit = 50
	}
	offset, err := strconv.Atoi(ctx.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	trades, err := h.svc.GetTrades(ctx.Request.Context(), address, limit, offset)
	if err != nil {
		response.RenderErr(ctx, mapTradeErr("HandleGetTrades -> h.svc.GetTrades", address, err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewTrades(trades))
}

type validatable interface {
	Validate() error
}

// bindTrade does the shared plumbing of the write endpoints: path address,
// caller identity, body binding and request validation.
func bindTrade(ctx *gin.Context, req validatable) (address, caller string, out validatable, ok bool) {
	address, respErr := getTokenAddress(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return "", "", nil, false
	}

	caller, respErr = getCallerAddress(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return "", "", nil, false
	}

	if err := ctx.ShouldBindJSON(req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return "", "", nil, false
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return "", "", nil, false
	}

	return address, caller, req, true
}
