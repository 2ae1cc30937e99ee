package swap

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"time"

	"skill-swap/internal/domain/feedback"
	"skill-swap/internal/domain/request"
	"skill-swap/internal/domain/user"
	"skill-swap/internal/pkg/keylock"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidParticipant = errors.New("invalid participant")
	ErrSelfRequest        = errors.New("cannot request a swap with yourself")
	ErrSkillMismatch      = errors.New("skill not offered by user")
	ErrNotFound           = errors.New("request not found")
	ErrNotAuthorized      = errors.New("not authorized")
	ErrAlreadyResolved    = errors.New("request already resolved")
	ErrRequestNotAccepted = errors.New("request not accepted")
	ErrDuplicateFeedback  = errors.New("feedback already left")
	ErrInvalidRating      = errors.New("invalid rating")
	ErrInternal           = errors.New("internal error")
)

type Config struct {
	RatingMin int
	RatingMax int
}

func DefaultConfig() Config {
	return Config{RatingMin: 1, RatingMax: 5}
}

type CreateRequestInput struct {
	FromUserID uuid.UUID
	ToUserID   uuid.UUID
	FromSkill  string
	ToSkill    string
	Message    string
}

type LeaveFeedbackInput struct {
	RequestID uuid.UUID
	AuthorID  uuid.UUID
	Rating    int
	Comment   string
}

type RatingSummary struct {
	Average float64
	Count   int
}

type Service struct {
	users     user.Repository
	requests  request.Repository
	feedbacks feedback.Repository
	cfg       Config
	pub       Publisher
	log       *log.Logger

	now   func() time.Time
	newID func() (uuid.UUID, error)
	locks *keylock.Mutex
}

func NewService(users user.Repository, requests request.Repository, feedbacks feedback.Repository, cfg Config, pub Publisher, logger *log.Logger) *Service {
	if pub == nil {
		pub = noopPublisher{}
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if cfg.RatingMin == 0 && cfg.RatingMax == 0 {
		cfg = DefaultConfig()
	}
	return &Service{
		users:     users,
		requests:  requests,
		feedbacks: feedbacks,
		cfg:       cfg,
		pub:       pub,
		log:       logger,
		now:       time.Now,
		newID:     uuid.NewV7,
		locks:     keylock.New(),
	}
}

func (s *Service) CreateRequest(ctx context.Context, in CreateRequestInput) (request.SkillRequest, error) {
	if in.FromUserID == in.ToUserID {
		return request.SkillRequest{}, ErrSelfRequest
	}

	from, err := s.participant(ctx, in.FromUserID)
	if err != nil {
		return request.SkillRequest{}, err
	}
	to, err := s.participant(ctx, in.ToUserID)
	if err != nil {
		return request.SkillRequest{}, err
	}

	fromSkill, ok := from.Offers(in.FromSkill)
	if !ok {
		return request.SkillRequest{}, ErrSkillMismatch
	}
	toSkill, ok := to.Offers(in.ToSkill)
	if !ok {
		return request.SkillRequest{}, ErrSkillMismatch
	}

	id, err := s.newID()
	if err != nil {
		return request.SkillRequest{}, ErrInternal
	}

	sr := request.SkillRequest{
		ID:         id,
		FromUserID: from.ID,
		ToUserID:   to.ID,
		FromName:   from.Name,
		ToName:     to.Name,
		FromSkill:  fromSkill,
		ToSkill:    toSkill,
		Message:    strings.TrimSpace(in.Message),
		Status:     request.StatusPending,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.requests.Create(ctx, sr); err != nil {
		s.log.Printf("swap step=create status=error from=%s to=%s err=%v", from.ID, to.ID, err)
		return request.SkillRequest{}, ErrInternal
	}

	s.log.Printf("swap step=create status=ok request_id=%s from=%s to=%s", sr.ID, sr.FromUserID, sr.ToUserID)
	s.pub.Publish(Event{
		Type:       EventRequestCreated,
		Recipients: []uuid.UUID{sr.FromUserID, sr.ToUserID},
		Request:    sr,
	})
	return sr, nil
}

func (s *Service) Respond(ctx context.Context, requestID, responderID uuid.UUID, decision request.Decision) (request.SkillRequest, error) {
	if !decision.Valid() {
		return request.SkillRequest{}, ErrInvalidInput
	}

	unlock := s.locks.Lock(requestID.String())
	defer unlock()

	sr, err := s.load(ctx, requestID)
	if err != nil {
		return request.SkillRequest{}, err
	}
	if sr.ToUserID != responderID {
		return request.SkillRequest{}, ErrNotAuthorized
	}
	if sr.Status != request.StatusPending {
		return request.SkillRequest{}, ErrAlreadyResolved
	}

	updated, err := s.requests.UpdateStatus(ctx, requestID, request.StatusPending, decision.Status(), s.now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, request.ErrStatusConflict):
			return request.SkillRequest{}, ErrAlreadyResolved
		case errors.Is(err, request.ErrNotFound):
			return request.SkillRequest{}, ErrNotFound
		default:
			s.log.Printf("swap step=respond status=error request_id=%s err=%v", requestID, err)
			return request.SkillRequest{}, ErrInternal
		}
	}

	s.log.Printf("swap step=respond status=ok request_id=%s decision=%s result=%s", updated.ID, decision, updated.Status)
	s.pub.Publish(Event{
		Type:       EventRequestResolved,
		Recipients: []uuid.UUID{updated.FromUserID, updated.ToUserID},
		Request:    updated,
	})
	return updated, nil
}

func (s *Service) GetRequest(ctx context.Context, requestID, viewerID uuid.UUID) (request.SkillRequest, error) {
	sr, err := s.load(ctx, requestID)
	if err != nil {
		return request.SkillRequest{}, err
	}
	if !sr.IsParticipant(viewerID) {
		return request.SkillRequest{}, ErrNotAuthorized
	}
	return sr, nil
}

func (s *Service) ListIncoming(ctx context.Context, userID uuid.UUID) ([]request.SkillRequest, error) {
	items, err := s.requests.ListByRecipient(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	request.SortNewestFirst(items)
	return items, nil
}

func (s *Service) ListOutgoing(ctx context.Context, userID uuid.UUID) ([]request.SkillRequest, error) {
	items, err := s.requests.ListBySender(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	request.SortNewestFirst(items)
	return items, nil
}

func (s *Service) LeaveFeedback(ctx context.Context, in LeaveFeedbackInput) (feedback.Feedback, error) {
	if in.Rating < s.cfg.RatingMin || in.Rating > s.cfg.RatingMax {
		return feedback.Feedback{}, ErrInvalidRating
	}

	unlock := s.locks.Lock(in.RequestID.String() + ":" + in.AuthorID.String())
	defer unlock()

	sr, err := s.load(ctx, in.RequestID)
	if err != nil {
		return feedback.Feedback{}, err
	}
	if !sr.IsParticipant(in.AuthorID) {
		return feedback.Feedback{}, ErrNotAuthorized
	}
	if sr.Status != request.StatusAccepted {
		return feedback.Feedback{}, ErrRequestNotAccepted
	}

	exists, err := s.feedbacks.ExistsForAuthor(ctx, sr.ID, in.AuthorID)
	if err != nil {
		return feedback.Feedback{}, ErrInternal
	}
	if exists {
		return feedback.Feedback{}, ErrDuplicateFeedback
	}

	f := feedback.Feedback{
		ID:         uuid.New(),
		RequestID:  sr.ID,
		FromUserID: in.AuthorID,
		ToUserID:   sr.Counterpart(in.AuthorID),
		Rating:     in.Rating,
		Comment:    strings.TrimSpace(in.Comment),
		CreatedAt:  s.now().UTC(),
	}
	if err := s.feedbacks.Create(ctx, f); err != nil {
		if errors.Is(err, feedback.ErrDuplicate) {
			return feedback.Feedback{}, ErrDuplicateFeedback
		}
		s.log.Printf("swap step=feedback status=error request_id=%s author=%s err=%v", sr.ID, in.AuthorID, err)
		return feedback.Feedback{}, ErrInternal
	}

	s.log.Printf("swap step=feedback status=ok request_id=%s author=%s rating=%d", sr.ID, f.FromUserID, f.Rating)
	s.pub.Publish(Event{
		Type:       EventFeedbackLeft,
		Recipients: []uuid.UUID{f.ToUserID},
		Request:    sr,
		Feedback:   &f,
	})
	return f, nil
}

func (s *Service) RatingSummary(ctx context.Context, userID uuid.UUID) (RatingSummary, error) {
	items, err := s.feedbacks.ListByRecipient(ctx, userID)
	if err != nil {
		return RatingSummary{}, ErrInternal
	}
	if len(items) == 0 {
		return RatingSummary{}, nil
	}
	total := 0
	for _, f := range items {
		total += f.Rating
	}
	return RatingSummary{
		Average: float64(total) / float64(len(items)),
		Count:   len(items),
	}, nil
}

func (s *Service) participant(ctx context.Context, id uuid.UUID) (user.User, error) {
	if id == uuid.Nil {
		return user.User{}, ErrInvalidParticipant
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrInvalidParticipant
		}
		return user.User{}, ErrInternal
	}
	return u, nil
}

func (s *Service) load(ctx context.Context, id uuid.UUID) (request.SkillRequest, error) {
	sr, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, request.ErrNotFound) {
			return request.SkillRequest{}, ErrNotFound
		}
		return request.SkillRequest{}, ErrInternal
	}
	return sr, nil
}
