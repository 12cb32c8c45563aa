package domain

import (
	"math/big"
	"time"
)

// Event is an observable state change. Mutating operations return their
// events as an explicit list; the service persists them and hands them to the
// stream hub. Each event carries enough data for an external indexer to
// reconstruct state without re-querying.
type Event interface {
	EventType() string
	Token() string
	OccurredAt() time.Time
}

const (
	EventTokenCreated = "TokenCreated"
	EventTraded       = "Traded"
	EventGraduated    = "Graduated"
	EventCommentAdded = "CommentAdded"
)

type TokenCreatedEvent struct {
	Address   string    `json:"address"`
	Name      string    `json:"name"`
	Symbol    string    `json:"symbol"`
	Creator   string    `json:"creator"`
	Timestamp time.Time `json:"timestamp"`
}

func (e TokenCreatedEvent) EventType() string     { return EventTokenCreated }
func (e TokenCreatedEvent) Token() string         { return e.Address }
func (e TokenCreatedEvent) OccurredAt() time.Time { return e.Timestamp }

type TradedEvent struct {
	Address        string    `json:"address"`
	Trader         string    `json:"trader"`
	IsBuy          bool      `json:"isBuy"`
	CurrencyAmount *big.Int  `json:"currencyAmount"`
	TokenAmount    *big.Int  `json:"tokenAmount"`
	Venue          string    `json:"venue"` // "curve" or "pool"
	Timestamp      time.Time `json:"timestamp"`
}

func (e TradedEvent) EventType() string     { return EventTraded }
func (e TradedEvent) Token() string         { return e.Address }
func (e TradedEvent) OccurredAt() time.Time { return e.Timestamp }

type GraduatedEvent struct {
	Address      string    `json:"address"`
	FinalReserve *big.Int  `json:"finalReserve"`
	Timestamp    time.Time `json:"timestamp"`
}

func (e GraduatedEvent) EventType() string     { return EventGraduated }
func (e GraduatedEvent) Token() string         { return e.Address }
func (e GraduatedEvent) OccurredAt() time.Time { return e.Timestamp }

type CommentAddedEvent struct {
	Address   string    `json:"address"`
	Author    string    `json:"author"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func (e CommentAddedEvent) EventType() string     { return EventCommentAdded }
func (e CommentAddedEvent) Token() string         { return e.Address }
func (e CommentAddedEvent) OccurredAt() time.Time { return e.Timestamp }
