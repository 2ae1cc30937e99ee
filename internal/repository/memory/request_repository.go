package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"skill-swap/internal/domain/request"

	"github.com/google/uuid"
)

var ErrRequestExists = errors.New("skill request already exists")

// RequestRepository is the append-only ledger. Only the status fields of a
// stored request ever change.
type RequestRepository struct {
	mu    sync.RWMutex
	order []uuid.UUID
	byID  map[uuid.UUID]request.SkillRequest
}

func NewRequestRepository(seed ...request.SkillRequest) *RequestRepository {
	r := &RequestRepository{byID: make(map[uuid.UUID]request.SkillRequest, len(seed))}
	for _, it := range seed {
		if _, ok := r.byID[it.ID]; ok {
			continue
		}
		r.order = append(r.order, it.ID)
		r.byID[it.ID] = cloneRequest(it)
	}
	return r
}

func (r *RequestRepository) Create(_ context.Context, sr request.SkillRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[sr.ID]; ok {
		return ErrRequestExists
	}
	r.order = append(r.order, sr.ID)
	r.byID[sr.ID] = cloneRequest(sr)
	return nil
}

func (r *RequestRepository) GetByID(_ context.Context, id uuid.UUID) (request.SkillRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sr, ok := r.byID[id]
	if !ok {
		return request.SkillRequest{}, request.ErrNotFound
	}
	return cloneRequest(sr), nil
}

func (r *RequestRepository) ListByRecipient(_ context.Context, userID uuid.UUID) ([]request.SkillRequest, error) {
	return r.filter(func(sr request.SkillRequest) bool { return sr.ToUserID == userID }), nil
}

func (r *RequestRepository) ListBySender(_ context.Context, userID uuid.UUID) ([]request.SkillRequest, error) {
	return r.filter(func(sr request.SkillRequest) bool { return sr.FromUserID == userID }), nil
}

func (r *RequestRepository) UpdateStatus(_ context.Context, id uuid.UUID, from, to request.Status, at time.Time) (request.SkillRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sr, ok := r.byID[id]
	if !ok {
		return request.SkillRequest{}, request.ErrNotFound
	}
	if sr.Status != from || !request.CanTransition(from, to) {
		return request.SkillRequest{}, request.ErrStatusConflict
	}

	at = at.UTC()
	sr.Status = to
	sr.RespondedAt = &at
	r.byID[id] = sr
	return cloneRequest(sr), nil
}

func (r *RequestRepository) filter(keep func(request.SkillRequest) bool) []request.SkillRequest {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]request.SkillRequest, 0)
	for _, id := range r.order {
		sr := r.byID[id]
		if keep(sr) {
			out = append(out, cloneRequest(sr))
		}
	}
	return out
}

func cloneRequest(sr request.SkillRequest) request.SkillRequest {
	if sr.RespondedAt != nil {
		at := *sr.RespondedAt
		sr.RespondedAt = &at
	}
	return sr
}
