package dao

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrTokenNotFound  = errors.New("token not found")
	ErrTokenExists    = errors.New("token address already exists")
	ErrMarketNotFound = errors.New("market not found")
	ErrPoolNotFound   = errors.New("pool not found")
	// ErrStaleMarket means a curve-trade update matched no ungraduated row:
	// either the token is unknown or a concurrent buy graduated it first.
	ErrStaleMarket = errors.New("market row missing or already graduated")
)

type RegistryDAO struct {
	db *gorm.DB
}

func NewRegistryDAO(db *gorm.DB) *RegistryDAO {
	return &RegistryDAO{
		db: db,
	}
}

// InsertToken creates the token identity, its fresh market and the
// TokenCreated event in one transaction. The token's auto-increment ID fixes
// its position in the registry's append order.
func (d *RegistryDAO) InsertToken(ctx context.Context, token Token, market Market, event Event) (Token, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&token).Error; err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				return ErrTokenExists
			}
			return err
		}
		if err := tx.Create(&market).Error; err != nil {
			return err
		}
		return tx.Create(&event).Error
	})
	if err != nil {
		return Token{}, err
	}

	return token, nil
}

func (d *RegistryDAO) GetTokenByAddress(ctx context.Context, address string) (Token, error) {
	var token Token
	result := d.db.WithContext(ctx).Where("address = ?", address).First(&token)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Token{}, ErrTokenNotFound
		}
		return Token{}, result.Error
	}

	return token, nil
}

// ListTokens pages over the registry in creation order. IDs are monotonic and
// never reused, so slices stay stable as new tokens append.
func (d *RegistryDAO) ListTokens(ctx context.Context, offset, limit int) ([]Token, error) {
	var tokens []Token
	result := d.db.WithContext(ctx).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&tokens)
	if result.Error != nil {
		return nil, result.Error
	}

	return tokens, nil
}

func (d *RegistryDAO) CountTokens(ctx context.Context) (int64, error) {
	var count int64
	result := d.db.WithContext(ctx).Model(&Token{}).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

// ListTrendingTokens returns ungraduated tokens ordered by reserve collected,
// highest first.
func (d *RegistryDAO) ListTrendingTokens(ctx context.Context, limit int) ([]Token, error) {
	var tokens []Token
	result := d.db.WithContext(ctx).
		Joins("JOIN markets ON markets.token_address = tokens.address").
		Where("markets.graduated = ?", false).
		Order("markets.reserve_balance DESC").
		Limit(limit).
		Find(&tokens)
	if result.Error != nil {
		return nil, result.Error
	}

	return tokens, nil
}

func (d *RegistryDAO) GetMarketByTokenAddress(ctx context.Context, address string) (Market, error) {
	var market Market
	result := d.db.WithContext(ctx).Where("token_address = ?", address).First(&market)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Market{}, ErrMarketNotFound
		}
		return Market{}, result.Error
	}

	return market, nil
}

func (d *RegistryDAO) GetMarketsByTokenAddresses(ctx context.Context, addresses []string) ([]Market, error) {
	var markets []Market
	result := d.db.WithContext(ctx).Where("token_address IN ?", addresses).Find(&markets)
	if result.Error != nil {
		return nil, result.Error
	}

	return markets, nil
}

func (d *RegistryDAO) GetPoolByTokenAddress(ctx context.Context, address string) (Pool, error) {
	var pool Pool
	result := d.db.WithContext(ctx).Where("token_address = ?", address).First(&pool)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Pool{}, ErrPoolNotFound
		}
		return Pool{}, result.Error
	}

	return pool, nil
}

// ApplyCurveTrade commits a buy or sell in one transaction: the market row
// update, the optional pool created by graduation, the trade row, the events
// and the fee credit. The graduated=false guard makes the update a no-op if a
// concurrent buy migrated the market first, which aborts the transaction.
func (d *RegistryDAO) ApplyCurveTrade(ctx context.Context, market Market, pool *Pool, trade Trade, events []Event, fee string) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Market{}).
			Where("token_address = ? AND graduated = ?", market.TokenAddress, false).
			Updates(map[string]interface{}{
				"reserve_balance":  market.ReserveBalance,
				"supplied_tokens":  market.SuppliedTokens,
				"migrated_reserve": market.MigratedReserve,
				"graduated":        market.Graduated,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrStaleMarket
		}

		if pool != nil {
			if err := tx.Create(pool).Error; err != nil {
				return err
			}
		}
		if err := tx.Create(&trade).Error; err != nil {
			return err
		}
		if len(events) > 0 {
			if err := tx.Create(&events).Error; err != nil {
				return err
			}
		}

		return creditFeeSink(tx, fee)
	})
}

// ApplyPoolSwap commits a post-graduation swap in one transaction.
func (d *RegistryDAO) ApplyPoolSwap(ctx context.Context, pool Pool, trade Trade, events []Event, fee string) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Pool{}).
			Where("token_address = ?", pool.TokenAddress).
			Updates(map[string]interface{}{
				"currency_reserve": pool.CurrencyReserve,
				"token_reserve":    pool.TokenReserve,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrPoolNotFound
		}

		if err := tx.Create(&trade).Error; err != nil {
			return err
		}
		if len(events) > 0 {
			if err := tx.Create(&events).Error; err != nil {
				return err
			}
		}

		return creditFeeSink(tx, fee)
	})
}

func (d *RegistryDAO) InsertComment(ctx context.Context, comment Comment, event Event) (Comment, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		return tx.Create(&event).Error
	})
	if err != nil {
		return Comment{}, err
	}

	return comment, nil
}

func (d *RegistryDAO) ListComments(ctx context.Context, address string) ([]Comment, error) {
	var comments []Comment
	result := d.db.WithContext(ctx).
		Where("token_address = ?", address).
		Order("id ASC").
		Find(&comments)
	if result.Error != nil {
		return nil, result.Error
	}

	return comments, nil
}

func (d *RegistryDAO) ListTrades(ctx context.Context, address string, limit, offset int) ([]Trade, error) {
	var trades []Trade
	result := d.db.WithContext(ctx).
		Where("token_address = ?", address).
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&trades)
	if result.Error != nil {
		return nil, result.Error
	}

	return trades, nil
}

// EnsureFeeSink creates the fee sink row on first startup.
func (d *RegistryDAO) EnsureFeeSink(ctx context.Context, recipient string) error {
	sink := FeeSink{ID: 1, Recipient: recipient, Balance: "0"}
	return d.db.WithContext(ctx).
		Where(FeeSink{ID: 1}).
		Attrs(sink).
		FirstOrCreate(&sink).Error
}

func creditFeeSink(tx *gorm.DB, fee string) error {
	if fee == "" || fee == "0" {
		return nil
	}
	return tx.Model(&FeeSink{}).
		Where("id = ?", 1).
		Update("balance", gorm.Expr("balance + ?::numeric", fee)).Error
}
