package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("user not found")

type Repository interface {
	Create(ctx context.Context, u User) error
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	ListPublic(ctx context.Context) ([]User, error)
	// UpdateFunc loads the user, applies fn and stores the result as one
	// atomic step. An error from fn aborts the write and is returned as is.
	UpdateFunc(ctx context.Context, id uuid.UUID, fn func(*User) error) (User, error)
}
