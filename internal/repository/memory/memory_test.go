package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"skill-swap/internal/domain/feedback"
	"skill-swap/internal/domain/request"
	"skill-swap/internal/domain/user"

	"github.com/google/uuid"
)

func TestUserRepository_ListPublicKeepsInsertionOrder(t *testing.T) {
	a := user.User{ID: uuid.New(), Name: "Ana", Visibility: user.VisibilityPublic}
	b := user.User{ID: uuid.New(), Name: "Ben", Visibility: user.VisibilityPrivate}
	c := user.User{ID: uuid.New(), Name: "Cy", Visibility: user.VisibilityPublic}

	repo := NewUserRepository(a, b, c)
	got, err := repo.ListPublic(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 2 || got[0].ID != a.ID || got[1].ID != c.ID {
		t.Fatalf("unexpected public users: %+v", got)
	}
}

func TestUserRepository_ReturnsCopies(t *testing.T) {
	u := user.User{ID: uuid.New(), Name: "Ana", SkillsOffered: []string{"Guitar"}}
	repo := NewUserRepository(u)

	got, _ := repo.GetByID(context.Background(), u.ID)
	got.SkillsOffered[0] = "Drums"

	again, _ := repo.GetByID(context.Background(), u.ID)
	if again.SkillsOffered[0] != "Guitar" {
		t.Fatalf("stored user was mutated through a returned copy")
	}
}

func TestUserRepository_UpdateFuncMissing(t *testing.T) {
	repo := NewUserRepository()
	_, err := repo.UpdateFunc(context.Background(), uuid.New(), func(*user.User) error { return nil })
	if !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserRepository_UpdateFuncAbortsOnError(t *testing.T) {
	u := user.User{ID: uuid.New(), Name: "Ana"}
	repo := NewUserRepository(u)
	boom := errors.New("boom")

	_, err := repo.UpdateFunc(context.Background(), u.ID, func(x *user.User) error {
		x.Name = "Changed"
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected fn error, got %v", err)
	}
	got, _ := repo.GetByID(context.Background(), u.ID)
	if got.Name != "Ana" {
		t.Fatalf("aborted update must not persist, got %q", got.Name)
	}
}

func TestUserRepository_UpdateFuncConcurrentPatchesAllApply(t *testing.T) {
	u := user.User{ID: uuid.New(), Name: "Ana"}
	repo := NewUserRepository(u)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = repo.UpdateFunc(context.Background(), u.ID, func(x *user.User) error {
				x.SkillsOffered = append(x.SkillsOffered, "s")
				return nil
			})
		}()
	}
	wg.Wait()

	got, _ := repo.GetByID(context.Background(), u.ID)
	if len(got.SkillsOffered) != 20 {
		t.Fatalf("expected every patch applied, got %d", len(got.SkillsOffered))
	}
}

func TestRequestRepository_UpdateStatusFirstWins(t *testing.T) {
	id := uuid.New()
	repo := NewRequestRepository(request.SkillRequest{ID: id, Status: request.StatusPending})

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			to := request.StatusAccepted
			if i%2 == 1 {
				to = request.StatusRejected
			}
			_, err := repo.UpdateStatus(context.Background(), id, request.StatusPending, to, time.Now())
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, request.ErrStatusConflict):
				conflicts++
			default:
				t.Errorf("unexpected err: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if successes != 1 || conflicts != 15 {
		t.Fatalf("expected 1 success and 15 conflicts, got %d/%d", successes, conflicts)
	}
	got, _ := repo.GetByID(context.Background(), id)
	if !got.Status.Terminal() || got.RespondedAt == nil {
		t.Fatalf("expected terminal status with responded_at, got %+v", got)
	}
}

func TestRequestRepository_Filters(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	repo := NewRequestRepository(
		request.SkillRequest{ID: uuid.New(), FromUserID: a, ToUserID: b},
		request.SkillRequest{ID: uuid.New(), FromUserID: c, ToUserID: b},
		request.SkillRequest{ID: uuid.New(), FromUserID: b, ToUserID: a},
	)

	in, _ := repo.ListByRecipient(context.Background(), b)
	out, _ := repo.ListBySender(context.Background(), b)
	if len(in) != 2 || len(out) != 1 {
		t.Fatalf("expected 2 incoming / 1 outgoing, got %d/%d", len(in), len(out))
	}
}

func TestFeedbackRepository_Duplicate(t *testing.T) {
	repo := NewFeedbackRepository()
	f := feedback.Feedback{ID: uuid.New(), RequestID: uuid.New(), FromUserID: uuid.New(), ToUserID: uuid.New(), Rating: 5}

	if err := repo.Create(context.Background(), f); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	f.ID = uuid.New()
	if err := repo.Create(context.Background(), f); !errors.Is(err, feedback.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	ok, _ := repo.ExistsForAuthor(context.Background(), f.RequestID, f.FromUserID)
	if !ok {
		t.Fatalf("expected feedback to exist")
	}
	list, _ := repo.ListByRecipient(context.Background(), f.ToUserID)
	if len(list) != 1 {
		t.Fatalf("expected 1 feedback, got %d", len(list))
	}
}
