package request

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound       = errors.New("skill request not found")
	ErrStatusConflict = errors.New("skill request status changed")
)

type Repository interface {
	Create(ctx context.Context, r SkillRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (SkillRequest, error)
	ListByRecipient(ctx context.Context, userID uuid.UUID) ([]SkillRequest, error)
	ListBySender(ctx context.Context, userID uuid.UUID) ([]SkillRequest, error)
	// UpdateStatus moves the request from one status to another and returns
	// ErrStatusConflict when the stored status is no longer from.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to Status, at time.Time) (SkillRequest, error)
}
