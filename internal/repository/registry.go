package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/nexuspump/nexuspump-api/internal/curve"
	"github.com/nexuspump/nexuspump-api/internal/domain"
	"github.com/nexuspump/nexuspump-api/internal/repository/dao"
)

var (
	ErrTokenNotFound  = dao.ErrTokenNotFound
	ErrTokenExists    = dao.ErrTokenExists
	ErrMarketNotFound = dao.ErrMarketNotFound
	ErrPoolNotFound   = dao.ErrPoolNotFound
	ErrStaleMarket    = dao.ErrStaleMarket
)

type RegistryDAO interface {
	InsertToken(ctx context.Context, token dao.Token, market dao.Market, event dao.Event) (dao.Token, error)
	GetTokenByAddress(ctx context.Context, address string) (dao.Token, error)
	ListTokens(ctx context.Context, offset, limit int) ([]dao.Token, error)
	CountTokens(ctx context.Context) (int64, error)
	ListTrendingTokens(ctx context.Context, limit int) ([]dao.Token, error)
	GetMarketByTokenAddress(ctx context.Context, address string) (dao.Market, error)
	GetMarketsByTokenAddresses(ctx context.Context, addresses []string) ([]dao.Market, error)
	GetPoolByTokenAddress(ctx context.Context, address string) (dao.Pool, error)
	ApplyCurveTrade(ctx context.Context, market dao.Market, pool *dao.Pool, trade dao.Trade, events []dao.Event, fee string) error
	ApplyPoolSwap(ctx context.Context, pool dao.Pool, trade dao.Trade, events []dao.Event, fee string) error
	InsertComment(ctx context.Context, comment dao.Comment, event dao.Event) (dao.Comment, error)
	ListComments(ctx context.Context, address string) ([]dao.Comment, error)
	ListTrades(ctx context.Context, address string, limit, offset int) ([]dao.Trade, error)
	EnsureFeeSink(ctx context.Context, recipient string) error
}

type RegistryRepository struct {
	dao RegistryDAO
}

func NewRegistryRepository(dao RegistryDAO) *RegistryRepository {
	return &RegistryRepository{
		dao: dao,
	}
}

func (r *RegistryRepository) CreateToken(ctx context.Context, token domain.Token, market *domain.Market, event domain.Event) (domain.Token, error) {
	daoEvent, err := eventToDao(event)
	if err != nil {
		return domain.Token{}, fmt.Errorf("eventToDao -> %w", err)
	}

	created, err := r.dao.InsertToken(ctx, tokenToDao(token), marketToDao(market), daoEvent)
	if err != nil {
		return domain.Token{}, err
	}

	return tokenToDomain(created), nil
}

func (r *RegistryRepository) FindTokenByAddress(ctx context.Context, address string) (domain.Token, error) {
	token, err := r.dao.GetTokenByAddress(ctx, address)
	if err != nil {
		return domain.Token{}, err
	}

	return tokenToDomain(token), nil
}

func (r *RegistryRepository) FindTokenInfo(ctx context.Context, address string) (domain.TokenInfo, error) {
	token, err := r.dao.GetTokenByAddress(ctx, address)
	if err != nil {
		return domain.TokenInfo{}, err
	}
	market, err := r.dao.GetMarketByTokenAddress(ctx, address)
	if err != nil {
		return domain.TokenInfo{}, err
	}

	return tokenInfoToDomain(token, market)
}

func (r *RegistryRepository) ListTokenInfos(ctx context.Context, offset, limit int) ([]domain.TokenInfo, error) {
	tokens, err := r.dao.ListTokens(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	return r.joinMarkets(ctx, tokens)
}

func (r *RegistryRepository) ListTrending(ctx context.Context, limit int) ([]domain.TokenInfo, error) {
	tokens, err := r.dao.ListTrendingTokens(ctx, limit)
	if err != nil {
		return nil, err
	}

	return r.joinMarkets(ctx, tokens)
}

func (r *RegistryRepository) joinMarkets(ctx context.Context, tokens []dao.Token) ([]domain.TokenInfo, error) {
	if len(tokens) == 0 {
		return []domain.TokenInfo{}, nil
	}

	addresses := make([]string, len(tokens))
	for i, t := range tokens {
		addresses[i] = t.Address
	}
	markets, err := r.dao.GetMarketsByTokenAddresses(ctx, addresses)
	if err != nil {
		return nil, err
	}
	byAddress := make(map[string]dao.Market, len(markets))
	for _, m := range markets {
		byAddress[m.TokenAddress] = m
	}

	infos := make([]domain.TokenInfo, 0, len(tokens))
	for _, t := range tokens {
		market, ok := byAddress[t.Address]
		if !ok {
			return nil, fmt.Errorf("token %v has no market row", t.Address)
		}
		info, err := tokenInfoToDomain(t, market)
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}

	return infos, nil
}

func (r *RegistryRepository) CountTokens(ctx context.Context) (int64, error) {
	return r.dao.CountTokens(ctx)
}

func (r *RegistryRepository) FindMarketByTokenAddress(ctx context.Context, address string) (*domain.Market, error) {
	market, err := r.dao.GetMarketByTokenAddress(ctx, address)
	if err != nil {
		return nil, err
	}

	return marketToDomain(market)
}

func (r *RegistryRepository) FindPoolByTokenAddress(ctx context.Context, address string) (*domain.Pool, error) {
	pool, err := r.dao.GetPoolByTokenAddress(ctx, address)
	if err != nil {
		return nil, err
	}

	return poolToDomain(pool)
}

func (r *RegistryRepository) SaveCurveTrade(ctx context.Context, market *domain.Market, pool *domain.Pool, trade domain.Trade, events []domain.Event) error {
	daoEvents, err := eventsToDao(events)
	if err != nil {
		return fmt.Errorf("eventsToDao -> %w", err)
	}

	var daoPool *dao.Pool
	if pool != nil {
		p := poolToDao(pool)
		daoPool = &p
	}

	return r.dao.ApplyCurveTrade(ctx, marketToDao(market), daoPool, tradeToDao(trade), daoEvents, trade.Fee.String())
}

func (r *RegistryRepository) SavePoolSwap(ctx context.Context, pool *domain.Pool, trade domain.Trade, events []domain.Event) error {
	daoEvents, err := eventsToDao(events)
	if err != nil {
		return fmt.Errorf("eventsToDao -> %w", err)
	}

	return r.dao.ApplyPoolSwap(ctx, poolToDao(pool), tradeToDao(trade), daoEvents, trade.Fee.String())
}

func (r *RegistryRepository) AddComment(ctx context.Context, comment domain.Comment, event domain.Event) (domain.Comment, error) {
	daoEvent, err := eventToDao(event)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("eventToDao -> %w", err)
	}

	created, err := r.dao.InsertComment(ctx, commentToDao(comment), daoEvent)
	if err != nil {
		return domain.Comment{}, err
	}

	return commentToDomain(created), nil
}

func (r *RegistryRepository) ListComments(ctx context.Context, address string) ([]domain.Comment, error) {
	comments, err := r.dao.ListComments(ctx, address)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Comment, len(comments))
	for i, c := range comments {
		result[i] = commentToDomain(c)
	}

	return result, nil
}

func (r *RegistryRepository) ListTrades(ctx context.Context, address string, limit, offset int) ([]domain.Trade, error) {
	trades, err := r.dao.ListTrades(ctx, address, limit, offset)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Trade, len(trades))
	for i, t := range trades {
		trade, err := tradeToDomain(t)
		if err != nil {
			return nil, err
		}
		result[i] = trade
	}

	return result, nil
}

func (r *RegistryRepository) EnsureFeeSink(ctx context.Context, recipient string) error {
	return r.dao.EnsureFeeSink(ctx, recipient)
}

// --- mapping helpers ---

func bigFromNumeric(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("bad numeric column value %q", s)
	}
	return v, nil
}

func tokenToDao(t domain.Token) dao.Token {
	return dao.Token{
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

func tokenToDomain(t dao.Token) domain.Token {
	return domain.Token{
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

func tokenInfoToDomain(t dao.Token, m dao.Market) (domain.TokenInfo, error) {
	reserve, err := bigFromNumeric(m.ReserveBalance)
	if err != nil {
		return domain.TokenInfo{}, err
	}
	migrated, err := bigFromNumeric(m.MigratedReserve)
	if err != nil {
		return domain.TokenInfo{}, err
	}

	return domain.TokenInfo{
		Token:       tokenToDomain(t),
		TotalRaised: new(big.Int).Add(reserve, migrated),
		Graduated:   m.Graduated,
	}, nil
}

func marketToDao(m *domain.Market) dao.Market {
	return dao.Market{
		TokenAddress:    m.TokenAddress,
		BasePrice:       m.CurveParams.BasePrice.String(),
		Slope:           m.CurveParams.Slope.String(),
		ReserveBalance:  m.ReserveBalance.String(),
		SuppliedTokens:  m.SuppliedTokens.String(),
		MigratedReserve: m.MigratedReserve.String(),
		Graduated:       m.Graduated,
	}
}

func marketToDomain(m dao.Market) (*domain.Market, error) {
	basePrice, err := bigFromNumeric(m.BasePrice)
	if err != nil {
		return nil, err
	}
	slope, err := bigFromNumeric(m.Slope)
	if err != nil {
		return nil, err
	}
	reserve, err := bigFromNumeric(m.ReserveBalance)
	if err != nil {
		return nil, err
	}
	supplied, err := bigFromNumeric(m.SuppliedTokens)
	if err != nil {
		return nil, err
	}
	migrated, err := bigFromNumeric(m.MigratedReserve)
	if err != nil {
		return nil, err
	}

	return &domain.Market{
		TokenAddress:    m.TokenAddress,
		CurveParams:     curve.Params{BasePrice: basePrice, Slope: slope},
		ReserveBalance:  reserve,
		SuppliedTokens:  supplied,
		Graduated:       m.Graduated,
		MigratedReserve: migrated,
	}, nil
}

func poolToDao(p *domain.Pool) dao.Pool {
	return dao.Pool{
		TokenAddress:    p.TokenAddress,
		CurrencyReserve: p.CurrencyReserve.String(),
		TokenReserve:    p.TokenReserve.String(),
		K:               p.K.String(),
		CreatedAt:       p.CreatedAt,
	}
}

func poolToDomain(p dao.Pool) (*domain.Pool, error) {
	currencyReserve, err := bigFromNumeric(p.CurrencyReserve)
	if err != nil {
		return nil, err
	}
	tokenReserve, err := bigFromNumeric(p.TokenReserve)
	if err != nil {
		return nil, err
	}
	k, err := bigFromNumeric(p.K)
	if err != nil {
		return nil, err
	}

	return &domain.Pool{
		TokenAddress:    p.TokenAddress,
		CurrencyReserve: currencyReserve,
		TokenReserve:    tokenReserve,
		K:               k,
		CreatedAt:       p.CreatedAt,
	}, nil
}

func commentToDao(c domain.Comment) dao.Comment {
	return dao.Comment{
		TokenAddress: c.TokenAddress,
		Author:       c.Author,
		Message:      c.Message,
		CreatedAt:    c.CreatedAt,
	}
}

func commentToDomain(c dao.Comment) domain.Comment {
	return domain.Comment{
		ID:           c.ID,
		TokenAddress: c.TokenAddress,
		Author:       c.Author,
		Message:      c.Message,
		CreatedAt:    c.CreatedAt,
	}
}

func tradeToDao(t domain.Trade) dao.Trade {
	return dao.Trade{
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

func tradeToDomain(t dao.Trade) (domain.Trade, error) {
	currencyAmount, err := bigFromNumeric(t.CurrencyAmount)
	if err != nil {
		return domain.Trade{}, err
	}
	tokenAmount, err := bigFromNumeric(t.TokenAmount)
	if err != nil {
		return domain.Trade{}, err
	}
	fee, err := bigFromNumeric(t.Fee)
	if err != nil {
		return domain.Trade{}, err
	}

	return domain.Trade{
		ID:             t.ID,
		TokenAddress:   t.TokenAddress,
		Trader:         t.Trader,
		IsBuy:          t.IsBuy,
		CurrencyAmount: currencyAmount,
		TokenAmount:    tokenAmount,
		Fee:            fee,
		Venue:          t.Venue,
		CreatedAt:      t.CreatedAt,
	}, nil
}

func eventToDao(e domain.Event) (dao.Event, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return dao.Event{}, err
	}

	return dao.Event{
		TokenAddress: e.Token(),
		Type:         e.EventType(),
		Payload:      string(payload),
		CreatedAt:    e.OccurredAt(),
	}, nil
}

func eventsToDao(events []domain.Event) ([]dao.Event, error) {
	result := make([]dao.Event, len(events))
	for i, e := range events {
		daoEvent, err := eventToDao(e)
		if err != nil {
			return nil, err
		}
		result[i] = daoEvent
	}

	return result, nil
}
