package response

import (
	"time"

	"github.com/nexuspump/nexuspump-api/internal/domain"
)

type Comment struct {
	ID        uint      `json:"id"`
	Author    string    `json:"author"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewComment(c domain.Comment) Comment {
	return Comment{
		ID:        c.ID,
		Author:    c.Author,
		Message:   c.Message,
		CreatedAt: c.CreatedAt,
	}
}

func NewComments(comments []domain.Comment) []Comment {
	result := make([]Comment, len(comments))
	for i, c := range comments {
		result[i] = NewComment(c)
	}
	return result
}
