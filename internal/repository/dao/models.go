package dao

import "time"

// Token rows are append-only: identity and metadata never change after
// creation and rows are never deleted. The auto-increment ID is the
// registry's stable creation order.
type Token struct {
	ID          uint   `gorm:"primaryKey"`
	Address     string `gorm:"uniqueIndex;not null"`
	Name        string `gorm:"not null"`
	Symbol      string `gorm:"not null"`
	Description string `gorm:"type:varchar(500);not null"`
	ImageURL    string
	Website     string
	Twitter     string
	Telegram    string
	Creator     string    `gorm:"index;not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

// Market holds each token's bonding-curve state. Numeric columns are
// 18-decimal base-unit integers; numeric(78,0) fits any 256-bit value.
type Market struct {
	ID              uint      `gorm:"primaryKey"`
	TokenAddress    string    `gorm:"uniqueIndex;not null"`
	BasePrice       string    `gorm:"type:numeric(78,0);not null"`
	Slope           string    `gorm:"type:numeric(78,0);not null"`
	ReserveBalance  string    `gorm:"type:numeric(78,0);not null"`
	SuppliedTokens  string    `gorm:"type:numeric(78,0);not null"`
	MigratedReserve string    `gorm:"type:numeric(78,0);not null"`
	Graduated       bool      `gorm:"not null;default:false"`
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`
}

type Pool struct {
	ID              uint      `gorm:"primaryKey"`
	TokenAddress    string    `gorm:"uniqueIndex;not null"`
	CurrencyReserve string    `gorm:"type:numeric(78,0);not null"`
	TokenReserve    string    `gorm:"type:numeric(78,0);not null"`
	K               string    `gorm:"type:numeric(78,0);not null"`
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`
}

type Comment struct {
	ID           uint      `gorm:"primaryKey"`
	TokenAddress string    `gorm:"index;not null"`
	Author       string    `gorm:"not null"`
	Message      string    `gorm:"type:varchar(500);not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

type Trade struct {
	ID             uint   `gorm:"primaryKey"`
	TokenAddress   string `gorm:"index;not null"`
	Trader         string `gorm:"index;not null"`
	IsBuy          bool   `gorm:"not null"`
	CurrencyAmount string `gorm:"type:numeric(78,0);not null"`
	TokenAmount    string `gorm:"type:numeric(78,0);not null"`
	Fee            string `gorm:"type:numeric(78,0);not null"`
	Venue          string `gorm:"not null"`
	CreatedAt      time.Time
}

// Event rows are the append-only replay source for external indexers.
type Event struct {
	ID           uint   `gorm:"primaryKey"`
	TokenAddress string `gorm:"index;not null"`
	Type         string `gorm:"not null"`
	Payload      string `gorm:"type:jsonb;not null"`
	CreatedAt    time.Time
}

// FeeSink is the single row accruing protocol fees for the configured
// recipient.
type FeeSink struct {
	ID        uint   `gorm:"primaryKey"`
	Recipient string `gorm:"not null"`
	Balance   string `gorm:"type:numeric(78,0);not null"`
	UpdatedAt time.Time
}
