package memory

import (
	"context"
	"errors"
	"sync"

	"skill-swap/internal/domain/user"

	"github.com/google/uuid"
)

var ErrUserExists = errors.New("user already exists")

// UserRepository keeps users in insertion order. Every read returns a copy.
type UserRepository struct {
	mu    sync.RWMutex
	order []uuid.UUID
	byID  map[uuid.UUID]user.User
}

func NewUserRepository(seed ...user.User) *UserRepository {
	r := &UserRepository{byID: make(map[uuid.UUID]user.User, len(seed))}
	for _, u := range seed {
		if _, ok := r.byID[u.ID]; ok {
			continue
		}
		r.order = append(r.order, u.ID)
		r.byID[u.ID] = u.Clone()
	}
	return r
}

func (r *UserRepository) Create(_ context.Context, u user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[u.ID]; ok {
		return ErrUserExists
	}
	r.order = append(r.order, u.ID)
	r.byID[u.ID] = u.Clone()
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u.Clone(), nil
}

func (r *UserRepository) ListPublic(_ context.Context) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]user.User, 0, len(r.order))
	for _, id := range r.order {
		u := r.byID[id]
		if !u.IsPublic() {
			continue
		}
		out = append(out, u.Clone())
	}
	return out, nil
}

func (r *UserRepository) UpdateFunc(_ context.Context, id uuid.UUID, fn func(*user.User) error) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	u := stored.Clone()
	if err := fn(&u); err != nil {
		return user.User{}, err
	}
	u.ID = id
	r.byID[id] = u.Clone()
	return u, nil
}
