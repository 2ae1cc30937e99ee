package profile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"skill-swap/internal/domain/user"
	"skill-swap/internal/pkg/keylock"
	"skill-swap/internal/suggest"
	"skill-swap/internal/usecase/swap"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("user not found")
	ErrInternal     = errors.New("internal error")
)

// UpdateProfileInput is a patch: nil fields are left unchanged.
type UpdateProfileInput struct {
	Name          *string
	Location      *string
	Availability  *string
	Visibility    *string
	PhotoURL      *string
	SkillsOffered []string
	SkillsWanted  []string
}

type Profile struct {
	User   user.User
	Rating swap.RatingSummary
}

type RatingSource interface {
	RatingSummary(ctx context.Context, userID uuid.UUID) (swap.RatingSummary, error)
}

type Service struct {
	users     user.Repository
	ratings   RatingSource
	suggester suggest.Suggester
	validate  *validator.Validate
	log       *log.Logger
	now       func() time.Time
	locks     *keylock.Mutex
}

func NewService(users user.Repository, ratings RatingSource, suggester suggest.Suggester, logger *log.Logger) *Service {
	if suggester == nil {
		suggester = suggest.NewStatic()
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		users:     users,
		ratings:   ratings,
		suggester: suggester,
		validate:  newValidator(),
		log:       logger,
		now:       time.Now,
		locks:     keylock.New(),
	}
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (user.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrNotFound
		}
		return user.User{}, ErrInternal
	}
	return s.withRating(ctx, u), nil
}

func (s *Service) ListPublicUsers(ctx context.Context) ([]user.User, error) {
	users, err := s.users.ListPublic(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	for i := range users {
		users[i] = s.withRating(ctx, users[i])
	}
	return users, nil
}

// PublicProfile hides Private profiles from everyone but their owner.
func (s *Service) PublicProfile(ctx context.Context, id, viewerID uuid.UUID) (Profile, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, ErrInternal
	}
	if !u.IsPublic() && u.ID != viewerID {
		return Profile{}, ErrNotFound
	}

	summary := s.summary(ctx, u.ID)
	return Profile{User: applyRating(u, summary), Rating: summary}, nil
}

// UpdateProfile applies the patch under a per-user lock and stores it with a
// single atomic read-modify-write, so concurrent patches to different fields
// all survive.
func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, in UpdateProfileInput) (user.User, error) {
	unlock := s.locks.Lock(id.String())
	defer unlock()

	u, err := s.users.UpdateFunc(ctx, id, func(u *user.User) error {
		applyPatch(u, in)
		if err := validateForm(s.validate, profileForm{
			Name:          u.Name,
			Location:      u.Location,
			Availability:  u.Availability,
			SkillsOffered: u.SkillsOffered,
			SkillsWanted:  u.SkillsWanted,
			Visibility:    string(u.Visibility),
			PhotoURL:      u.PhotoURL,
		}); err != nil {
			return err
		}
		u.UpdatedAt = s.now().UTC()
		return nil
	})
	if err != nil {
		var verr *ValidationError
		switch {
		case errors.As(err, &verr):
			return user.User{}, verr
		case errors.Is(err, user.ErrNotFound):
			return user.User{}, ErrNotFound
		default:
			s.log.Printf("profile step=update status=error user_id=%s err=%v", id, err)
			return user.User{}, ErrInternal
		}
	}

	s.log.Printf("profile step=update status=ok user_id=%s offered=%d wanted=%d visibility=%s", u.ID, len(u.SkillsOffered), len(u.SkillsWanted), u.Visibility)
	return s.withRating(ctx, u), nil
}

func applyPatch(u *user.User, in UpdateProfileInput) {
	if in.Name != nil {
		u.Name = strings.TrimSpace(*in.Name)
	}
	if in.Location != nil {
		u.Location = strings.TrimSpace(*in.Location)
	}
	if in.Availability != nil {
		u.Availability = strings.TrimSpace(*in.Availability)
	}
	if in.Visibility != nil {
		u.Visibility = user.Visibility(strings.TrimSpace(*in.Visibility))
	}
	if in.PhotoURL != nil {
		u.PhotoURL = strings.TrimSpace(*in.PhotoURL)
	}
	if in.SkillsOffered != nil {
		u.SkillsOffered = NormalizeSkills(in.SkillsOffered)
	}
	if in.SkillsWanted != nil {
		u.SkillsWanted = NormalizeSkills(in.SkillsWanted)
	}
}

// SuggestSkills asks the suggester for skills matching prompt and drops the
// ones the user already offers.
func (s *Service) SuggestSkills(ctx context.Context, userID uuid.UUID, prompt string) ([]string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, ErrInvalidInput
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, ErrInternal
	}

	skills, err := s.suggester.Suggest(ctx, prompt)
	if err != nil {
		s.log.Printf("profile step=suggest status=error user_id=%s err=%v", userID, err)
		if errors.Is(err, suggest.ErrSuggestionUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", suggest.ErrSuggestionUnavailable, err)
	}

	out := make([]string, 0, len(skills))
	for _, sk := range suggest.Clean(skills) {
		if _, offered := u.Offers(sk); offered {
			continue
		}
		out = append(out, sk)
	}
	return out, nil
}

func (s *Service) withRating(ctx context.Context, u user.User) user.User {
	return applyRating(u, s.summary(ctx, u.ID))
}

// applyRating replaces the stored rating with the feedback average once any
// feedback exists.
func applyRating(u user.User, sum swap.RatingSummary) user.User {
	if sum.Count > 0 {
		u.Rating = sum.Average
	}
	return u
}

func (s *Service) summary(ctx context.Context, id uuid.UUID) swap.RatingSummary {
	if s.ratings == nil {
		return swap.RatingSummary{}
	}
	sum, err := s.ratings.RatingSummary(ctx, id)
	if err != nil {
		s.log.Printf("profile step=rating status=error user_id=%s err=%v", id, err)
		return swap.RatingSummary{}
	}
	return sum
}

// NormalizeSkills trims names, drops blanks and removes case-insensitive
// duplicates keeping the first spelling.
func NormalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, sk := range skills {
		sk = strings.Join(strings.Fields(sk), " ")
		if sk == "" {
			continue
		}
		k := strings.ToLower(sk)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, sk)
	}
	return out
}
