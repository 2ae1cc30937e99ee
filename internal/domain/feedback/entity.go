package feedback

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrDuplicate = errors.New("feedback already exists")

type Feedback struct {
	ID         uuid.UUID
	RequestID  uuid.UUID
	FromUserID uuid.UUID
	ToUserID   uuid.UUID
	Rating     int
	Comment    string
	CreatedAt  time.Time
}

type Repository interface {
	// Create returns ErrDuplicate when the author already left feedback on
	// the request.
	Create(ctx context.Context, f Feedback) error
	ExistsForAuthor(ctx context.Context, requestID, authorID uuid.UUID) (bool, error)
	ListByRecipient(ctx context.Context, userID uuid.UUID) ([]Feedback, error)
}
