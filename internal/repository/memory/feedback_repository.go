package memory

import (
	"context"
	"sync"

	"skill-swap/internal/domain/feedback"

	"github.com/google/uuid"
)

type feedbackKey struct {
	requestID uuid.UUID
	authorID  uuid.UUID
}

type FeedbackRepository struct {
	mu       sync.RWMutex
	items    []feedback.Feedback
	byAuthor map[feedbackKey]struct{}
}

func NewFeedbackRepository() *FeedbackRepository {
	return &FeedbackRepository{byAuthor: map[feedbackKey]struct{}{}}
}

func (r *FeedbackRepository) Create(_ context.Context, f feedback.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := feedbackKey{requestID: f.RequestID, authorID: f.FromUserID}
	if _, ok := r.byAuthor[k]; ok {
		return feedback.ErrDuplicate
	}
	r.byAuthor[k] = struct{}{}
	r.items = append(r.items, f)
	return nil
}

func (r *FeedbackRepository) ExistsForAuthor(_ context.Context, requestID, authorID uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byAuthor[feedbackKey{requestID: requestID, authorID: authorID}]
	return ok, nil
}

func (r *FeedbackRepository) ListByRecipient(_ context.Context, userID uuid.UUID) ([]feedback.Feedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]feedback.Feedback, 0)
	for _, f := range r.items {
		if f.ToUserID == userID {
			out = append(out, f)
		}
	}
	return out, nil
}
