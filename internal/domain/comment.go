package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Comment is one entry of a token's append-only comment ledger. Comments are
// never edited or removed; ordering is append order.
type Comment struct {
	ID           uint
	TokenAddress string
	Author       string
	Message      string
	CreatedAt    time.Time
}

// NewComment validates and stamps a comment for a token.
func NewComment(tokenAddress, author, message string, now time.Time) (Comment, []Event, error) {
	if strings.TrimSpace(message) == "" {
		return Comment{}, nil, ErrEmptyMessage
	}
	if utf8.RuneCountInString(message) > MaxTextLength {
		return Comment{}, nil, ErrMessageTooLong
	}

	c := Comment{
		TokenAddress: tokenAddress,
		Author:       author,
		Message:      message,
		CreatedAt:    now,
	}
	events := []Event{CommentAddedEvent{
		Address:   tokenAddress,
		Author:    author,
		Message:   message,
		Timestamp: now,
	}}

	return c, events, nil
}
