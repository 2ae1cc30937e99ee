package profile

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"skill-swap/internal/domain/user"
	"skill-swap/internal/repository/memory"
	"skill-swap/internal/suggest"
	"skill-swap/internal/usecase/swap"

	"github.com/google/uuid"
)

type fakeRatings map[uuid.UUID]swap.RatingSummary

func (f fakeRatings) RatingSummary(_ context.Context, id uuid.UUID) (swap.RatingSummary, error) {
	return f[id], nil
}

func strPtr(s string) *string { return &s }

func newTestService(t *testing.T, s suggest.Suggester) (*Service, user.User, user.User) {
	t.Helper()
	pub := user.User{
		ID:            uuid.New(),
		Name:          "Ana",
		SkillsOffered: []string{"Guitar"},
		SkillsWanted:  []string{"Spanish"},
		Visibility:    user.VisibilityPublic,
	}
	priv := user.User{
		ID:            uuid.New(),
		Name:          "Ben",
		SkillsOffered: []string{"Spanish"},
		SkillsWanted:  []string{"Guitar"},
		Visibility:    user.VisibilityPrivate,
	}
	ratings := fakeRatings{pub.ID: {Average: 4.5, Count: 2}}
	return NewService(memory.NewUserRepository(pub, priv), ratings, s, nil), pub, priv
}

func TestService_ListPublicUsersExcludesPrivate(t *testing.T) {
	svc, pub, _ := newTestService(t, nil)

	users, err := svc.ListPublicUsers(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(users) != 1 || users[0].ID != pub.ID {
		t.Fatalf("expected only the public user, got %+v", users)
	}
	if users[0].Rating != 4.5 {
		t.Fatalf("expected derived rating 4.5, got %v", users[0].Rating)
	}
}

func TestService_GetUserNotFound(t *testing.T) {
	svc, _, _ := newTestService(t, nil)
	if _, err := svc.GetUser(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_PublicProfileVisibility(t *testing.T) {
	svc, pub, priv := newTestService(t, nil)
	ctx := context.Background()

	p, err := svc.PublicProfile(ctx, pub.ID, uuid.Nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.Rating.Count != 2 {
		t.Fatalf("expected rating summary, got %+v", p.Rating)
	}

	if _, err := svc.PublicProfile(ctx, priv.ID, pub.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected private profile hidden, got %v", err)
	}
	if _, err := svc.PublicProfile(ctx, priv.ID, priv.ID); err != nil {
		t.Fatalf("owner should see own profile, got %v", err)
	}
}

func TestService_UpdateProfileAppliesPatch(t *testing.T) {
	svc, pub, _ := newTestService(t, nil)
	ctx := context.Background()

	got, err := svc.UpdateProfile(ctx, pub.ID, UpdateProfileInput{
		Name:          strPtr("  Ana Maria "),
		SkillsOffered: []string{" Guitar", "guitar", "", "Ukulele"},
		Visibility:    strPtr("Private"),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Name != "Ana Maria" {
		t.Fatalf("expected trimmed name, got %q", got.Name)
	}
	if len(got.SkillsOffered) != 2 || got.SkillsOffered[0] != "Guitar" || got.SkillsOffered[1] != "Ukulele" {
		t.Fatalf("unexpected offered skills: %v", got.SkillsOffered)
	}
	if len(got.SkillsWanted) != 1 || got.SkillsWanted[0] != "Spanish" {
		t.Fatalf("nil patch field must leave wanted skills unchanged, got %v", got.SkillsWanted)
	}

	users, _ := svc.ListPublicUsers(ctx)
	if len(users) != 0 {
		t.Fatalf("user turned private must leave the public list, got %+v", users)
	}
}

func TestService_UpdateProfileValidation(t *testing.T) {
	tests := []struct {
		name  string
		in    UpdateProfileInput
		field string
		msg   string
	}{
		{name: "short name", in: UpdateProfileInput{Name: strPtr(" A ")}, field: "name", msg: "Name must be at least 2 characters."},
		{name: "no offered skills", in: UpdateProfileInput{SkillsOffered: []string{" ", ""}}, field: "skills_offered", msg: "Please offer at least one skill."},
		{name: "no wanted skills", in: UpdateProfileInput{SkillsWanted: []string{}}, field: "skills_wanted", msg: "Please list at least one skill you want to learn."},
		{name: "bad visibility", in: UpdateProfileInput{Visibility: strPtr("Friends")}, field: "visibility", msg: "Visibility must be Public or Private."},
		{name: "bad photo url", in: UpdateProfileInput{PhotoURL: strPtr("not a url")}, field: "photo_url", msg: "Photo URL must be a valid URL."},
		{name: "long skill", in: UpdateProfileInput{SkillsWanted: []string{strings.Repeat("x", 61)}}, field: "skills_wanted", msg: "Skill names must be at most 60 characters."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, pub, _ := newTestService(t, nil)
			_, err := svc.UpdateProfile(context.Background(), pub.ID, tt.in)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if verr.Fields[tt.field] != tt.msg {
				t.Fatalf("expected %s=%q, got %v", tt.field, tt.msg, verr.Fields)
			}

			stored, _ := svc.GetUser(context.Background(), pub.ID)
			if stored.Name != pub.Name || len(stored.SkillsOffered) != 1 {
				t.Fatalf("failed update must not persist, got %+v", stored)
			}
		})
	}
}

func TestService_UpdateProfileNotFound(t *testing.T) {
	svc, _, _ := newTestService(t, nil)
	_, err := svc.UpdateProfile(context.Background(), uuid.New(), UpdateProfileInput{Name: strPtr("Someone")})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_SuggestSkillsFiltersOffered(t *testing.T) {
	s := suggest.Func(func(context.Context, string) ([]string, error) {
		return []string{"guitar", "Piano", "Music Theory", "piano"}, nil
	})
	svc, pub, _ := newTestService(t, s)

	got, err := svc.SuggestSkills(context.Background(), pub.ID, "I play music")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 2 || got[0] != "Piano" || got[1] != "Music Theory" {
		t.Fatalf("unexpected suggestions: %v", got)
	}
}

func TestService_SuggestSkillsErrors(t *testing.T) {
	failing := suggest.Func(func(context.Context, string) ([]string, error) {
		return nil, errors.New("upstream down")
	})
	svc, pub, _ := newTestService(t, failing)
	ctx := context.Background()

	if _, err := svc.SuggestSkills(ctx, pub.ID, "   "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.SuggestSkills(ctx, uuid.New(), "music"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.SuggestSkills(ctx, pub.ID, "music"); !errors.Is(err, suggest.ErrSuggestionUnavailable) {
		t.Fatalf("expected ErrSuggestionUnavailable, got %v", err)
	}
}

func TestNormalizeSkills(t *testing.T) {
	got := NormalizeSkills([]string{"  Rock  Climbing ", "rock climbing", "Go", ""})
	if len(got) != 2 || got[0] != "Rock Climbing" || got[1] != "Go" {
		t.Fatalf("unexpected normalized skills: %v", got)
	}
}

// slowUsers reads, waits and writes back without any locking of its own, the
// way a store behind network latency would.
type slowUsers struct {
	*memory.UserRepository
	delay time.Duration
}

func (r *slowUsers) UpdateFunc(ctx context.Context, id uuid.UUID, fn func(*user.User) error) (user.User, error) {
	u, err := r.GetByID(ctx, id)
	if err != nil {
		return user.User{}, err
	}
	time.Sleep(r.delay)
	if err := fn(&u); err != nil {
		return user.User{}, err
	}
	return r.UserRepository.UpdateFunc(ctx, id, func(stored *user.User) error {
		*stored = u
		return nil
	})
}

func TestService_ConcurrentDisjointPatchesBothApply(t *testing.T) {
	ana := user.User{
		ID:            uuid.New(),
		Name:          "Ana",
		SkillsOffered: []string{"Guitar"},
		SkillsWanted:  []string{"Spanish"},
		Visibility:    user.VisibilityPublic,
	}
	users := &slowUsers{UserRepository: memory.NewUserRepository(ana), delay: 5 * time.Millisecond}
	svc := NewService(users, nil, nil, nil)
	ctx := context.Background()

	patches := []UpdateProfileInput{
		{Name: strPtr("Renamed")},
		{Location: strPtr("Madrid")},
	}
	var wg sync.WaitGroup
	for _, p := range patches {
		wg.Add(1)
		go func(p UpdateProfileInput) {
			defer wg.Done()
			if _, err := svc.UpdateProfile(ctx, ana.ID, p); err != nil {
				t.Errorf("unexpected err: %v", err)
			}
		}(p)
	}
	wg.Wait()

	got, err := svc.GetUser(ctx, ana.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Name != "Renamed" || got.Location != "Madrid" {
		t.Fatalf("both patches must survive, got name=%q location=%q", got.Name, got.Location)
	}
	if n := svc.locks.Len(); n != 0 {
		t.Fatalf("expected lock table to drain, %d keys left", n)
	}
}
