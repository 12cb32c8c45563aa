package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/nexuspump/nexuspump-api/internal/curve"
	"github.com/nexuspump/nexuspump-api/internal/domain"
	"github.com/nexuspump/nexuspump-api/internal/repository"
)

var (
	ErrTokenNotFound  = repository.ErrTokenNotFound
	ErrTokenExists    = repository.ErrTokenExists
	ErrMarketNotFound = repository.ErrMarketNotFound
	ErrPoolNotFound   = repository.ErrPoolNotFound
	ErrStaleMarket    = repository.ErrStaleMarket
)

type RegistryRepository interface {
	CreateToken(ctx context.Context, token domain.Token, market *domain.Market, event domain.Event) (domain.Token, error)
	FindTokenByAddress(ctx context.Context, address string) (domain.Token, error)
	FindTokenInfo(ctx context.Context, address string) (domain.TokenInfo, error)
	ListTokenInfos(ctx context.Context, offset, limit int) ([]domain.TokenInfo, error)
	ListTrending(ctx context.Context, limit int) ([]domain.TokenInfo, error)
	CountTokens(ctx context.Context) (int64, error)
	FindMarketByTokenAddress(ctx context.Context, address string) (*domain.Market, error)
	FindPoolByTokenAddress(ctx context.Context, address string) (*domain.Pool, error)
	SaveCurveTrade(ctx context.Context, market *domain.Market, pool *domain.Pool, trade domain.Trade, events []domain.Event) error
	SavePoolSwap(ctx context.Context, pool *domain.Pool, trade domain.Trade, events []domain.Event) error
	AddComment(ctx context.Context, comment domain.Comment, event domain.Event) (domain.Comment, error)
	ListComments(ctx context.Context, address string) ([]domain.Comment, error)
	ListTrades(ctx context.Context, address string, limit, offset int) ([]domain.Trade, error)
}

// EventPublisher receives every committed event, after the transaction that
// produced it has been persisted.
type EventPublisher interface {
	Publish(event domain.Event)
}

// RegistryService is the factory and router: it creates tokens, owns the
// collection of markets and directs each operation to the addressed market or
// pool. Mutating operations on one token are serialized by a per-token mutex;
// independent tokens never contend.
type RegistryService struct {
	repo      RegistryRepository
	publisher EventPublisher
	params    curve.Params
	now       func() time.Time

	locks sync.Map // token address -> *sync.Mutex
}

func NewRegistryService(repo RegistryRepository, publisher EventPublisher, params curve.Params) *RegistryService {
	return &RegistryService{
		repo:      repo,
		publisher: publisher,
		params:    params,
		now:       time.Now,
	}
}

// lockToken acquires the token's mutex and returns the release func. No
// operation ever holds two tokens' locks at once.
func (s *RegistryService) lockToken(address string) func() {
	v, _ := s.locks.LoadOrStore(address, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (s *RegistryService) publish(events []domain.Event) {
	if s.publisher == nil {
		return
	}
	for _, e := range events {
		s.publisher.Publish(e)
	}
}

func newTokenAddress() (string, error) {
	b := make([]byte, 20)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return "0x" + hex.EncodeToString(b), nil
}

// CreateToken validates the metadata, allocates a fresh address and registers
// the token together with its bonding-curve market.
func (s *RegistryService) CreateToken(ctx context.Context, token domain.Token) (domain.Token, error) {
	if err := token.ValidateMetadata(); err != nil {
		return domain.Token{}, err
	}
	if err := domain.ValidateAddress(token.Creator); err != nil {
		return domain.Token{}, err
	}

	address, err := newTokenAddress()
	if err != nil {
		return domain.Token{}, fmt.Errorf("newTokenAddress -> %w", err)
	}
	token.Address = address
	token.CreatedAt = s.now()

	market := domain.NewMarket(address, s.params)
	event := domain.TokenCreatedEvent{
		Address:   address,
		Name:      token.Name,
		Symbol:    token.Symbol,
		Creator:   token.Creator,
		Timestamp: token.CreatedAt,
	}

	created, err := s.repo.CreateToken(ctx, token, market, event)
	if err != nil {
		return domain.Token{}, fmt.Errorf("s.repo.CreateToken -> %w", err)
	}

	s.publish([]domain.Event{event})

	return created, nil
}

// Buy executes a bonding-curve purchase. If the buy crosses the graduation
// threshold, the migration commits in the same transaction; any failure rolls
// the whole buy back.
func (s *RegistryService) Buy(ctx context.Context, address, trader string, payment, minTokensOut *big.Int) (domain.BuyOutcome, error) {
	unlock := s.lockToken(address)
	defer unlock()

	market, err := s.repo.FindMarketByTokenAddress(ctx, address)
	if err != nil {
		return domain.BuyOutcome{}, err
	}

	outcome, events, err := market.Buy(trader, payment, minTokensOut, s.now())
	if err != nil {
		return domain.BuyOutcome{}, err
	}

	trade := domain.Trade{
		TokenAddress:   address,
		Trader:         trader,
		IsBuy:          true,
		CurrencyAmount: payment,
		TokenAmount:    outcome.TokensIssued,
		Fee:            outcome.Fee,
		Venue:          domain.VenueCurve,
		CreatedAt:      s.now(),
	}
	if err := s.repo.SaveCurveTrade(ctx, market, outcome.Pool, trade, events); err != nil {
		return domain.BuyOutcome{}, fmt.Errorf("s.repo.SaveCurveTrade -> %w", err)
	}

	s.publish(events)

	return outcome, nil
}

// Sell executes a bonding-curve sale.
func (s *RegistryService) Sell(ctx context.Context, address, trader string, amount, minPaymentOut *big.Int) (domain.SellOutcome, error) {
	unlock := s.lockToken(address)
	defer unlock()

	market, err := s.repo.FindMarketByTokenAddress(ctx, address)
	if err != nil {
		return domain.SellOutcome{}, err
	}

	outcome, events, err := market.Sell(trader, amount, minPaymentOut, s.now())
	if err != nil {
		return domain.SellOutcome{}, err
	}

	trade := domain.Trade{
		TokenAddress:   address,
		Trader:         trader,
		IsBuy:          false,
		CurrencyAmount: outcome.PaymentOut,
		TokenAmount:    amount,
		Fee:            outcome.Fee,
		Venue:          domain.VenueCurve,
		CreatedAt:      s.now(),
	}
	if err := s.repo.SaveCurveTrade(ctx, market, nil, trade, events); err != nil {
		return domain.SellOutcome{}, fmt.Errorf("s.repo.SaveCurveTrade -> %w", err)
	}

	s.publish(events)

	return outcome, nil
}

// Swap executes a constant-product swap on a graduated token's pool.
func (s *RegistryService) Swap(ctx context.Context, address, trader string, amountIn *big.Int, currencyIn bool, minAmountOut *big.Int) (domain.SwapOutcome, error) {
	unlock := s.lockToken(address)
	defer unlock()

	pool, err := s.repo.FindPoolByTokenAddress(ctx, address)
	if err != nil {
		if errors.Is(err, ErrPoolNotFound) {
			return domain.SwapOutcome{}, s.classifyMissingPool(ctx, address)
		}
		return domain.SwapOutcome{}, err
	}

	outcome, events, err := pool.Swap(trader, amountIn, currencyIn, minAmountOut, s.now())
	if err != nil {
		return domain.SwapOutcome{}, err
	}

	var currencyAmount, tokenAmount *big.Int
	if currencyIn {
		currencyAmount, tokenAmount = amountIn, outcome.AmountOut
	} else {
		currencyAmount, tokenAmount = outcome.AmountOut, amountIn
	}
	trade := domain.Trade{
		TokenAddress:   address,
		Trader:         trader,
		IsBuy:          currencyIn,
		CurrencyAmount: currencyAmount,
		TokenAmount:    tokenAmount,
		Fee:            outcome.Fee,
		Venue:          domain.VenuePool,
		CreatedAt:      s.now(),
	}
	if err := s.repo.SavePoolSwap(ctx, pool, trade, events); err != nil {
		return domain.SwapOutcome{}, fmt.Errorf("s.repo.SavePoolSwap -> %w", err)
	}

	s.publish(events)

	return outcome, nil
}

// classifyMissingPool distinguishes "token does not exist" from "token has
// not graduated yet" for swap callers.
func (s *RegistryService) classifyMissingPool(ctx context.Context, address string) error {
	market, err := s.repo.FindMarketByTokenAddress(ctx, address)
	if err != nil {
		if errors.Is(err, ErrMarketNotFound) {
			return ErrTokenNotFound
		}
		return err
	}
	if !market.Graduated {
		return domain.ErrNotGraduated
	}
	return ErrPoolNotFound
}

// AddComment appends to the token's comment ledger.
func (s *RegistryService) AddComment(ctx context.Context, address, author, message string) (domain.Comment, error) {
	if _, err := s.repo.FindTokenByAddress(ctx, address); err != nil {
		return domain.Comment{}, err
	}

	unlock := s.lockToken(address)
	defer unlock()

	comment, events, err := domain.NewComment(address, author, message, s.now())
	if err != nil {
		return domain.Comment{}, err
	}

	created, err := s.repo.AddComment(ctx, comment, events[0])
	if err != nil {
		return domain.Comment{}, fmt.Errorf("s.repo.AddComment -> %w", err)
	}

	s.publish(events)

	return created, nil
}

// QuoteBuy projects a buy without executing it.
func (s *RegistryService) QuoteBuy(ctx context.Context, address string, payment *big.Int) (domain.BuyQuote, error) {
	market, err := s.repo.FindMarketByTokenAddress(ctx, address)
	if err != nil {
		return domain.BuyQuote{}, err
	}
	return market.QuoteBuy(payment)
}

// QuoteSell projects a sell without executing it.
func (s *RegistryService) QuoteSell(ctx context.Context, address string, amount *big.Int) (domain.SellQuote, error) {
	market, err := s.repo.FindMarketByTokenAddress(ctx, address)
	if err != nil {
		return domain.SellQuote{}, err
	}
	return market.QuoteSell(amount)
}

// QuoteSwap projects a pool swap without executing it.
func (s *RegistryService) QuoteSwap(ctx context.Context, address string, amountIn *big.Int, currencyIn bool) (domain.SwapOutcome, error) {
	pool, err := s.repo.FindPoolByTokenAddress(ctx, address)
	if err != nil {
		if errors.Is(err, ErrPoolNotFound) {
			return domain.SwapOutcome{}, s.classifyMissingPool(ctx, address)
		}
		return domain.SwapOutcome{}, err
	}
	return pool.QuoteSwap(amountIn, currencyIn)
}

func (s *RegistryService) GetTokenInfo(ctx context.Context, address string) (domain.TokenInfo, error) {
	info, err := s.repo.FindTokenInfo(ctx, address)
	if err != nil {
		return domain.TokenInfo{}, err
	}
	return info, nil
}

func (s *RegistryService) GetAllTokens(ctx context.Context, offset, limit int) ([]domain.TokenInfo, error) {
	infos, err := s.repo.ListTokenInfos(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListTokenInfos -> %w", err)
	}
	return infos, nil
}

func (s *RegistryService) GetTrendingTokens(ctx context.Context, limit int) ([]domain.TokenInfo, error) {
	infos, err := s.repo.ListTrending(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListTrending -> %w", err)
	}
	return infos, nil
}

func (s *RegistryService) GetTokenCount(ctx context.Context) (int64, error) {
	count, err := s.repo.CountTokens(ctx)
	if err != nil {
		return 0, fmt.Errorf("s.repo.CountTokens -> %w", err)
	}
	return count, nil
}

func (s *RegistryService) GetComments(ctx context.Context, address string) ([]domain.Comment, error) {
	if _, err := s.repo.FindTokenByAddress(ctx, address); err != nil {
		return nil, err
	}

	comments, err := s.repo.ListComments(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListComments -> %w", err)
	}
	return comments, nil
}

func (s *RegistryService) GetTrades(ctx context.Context, address string, limit, offset int) ([]domain.Trade, error) {
	if _, err := s.repo.FindTokenByAddress(ctx, address); err != nil {
		return nil, err
	}

	trades, err := s.repo.ListTrades(ctx, address, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListTrades -> %w", err)
	}
	return trades, nil
}
