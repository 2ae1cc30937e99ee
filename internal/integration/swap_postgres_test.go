package integration

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"skill-swap/internal/config"
	"skill-swap/internal/database"
	"skill-swap/internal/database/migration"
	dbpostgres "skill-swap/internal/database/postgres"
	"skill-swap/internal/database/seeder"
	"skill-swap/internal/domain/request"
	"skill-swap/internal/domain/user"
	"skill-swap/internal/repository"
	"skill-swap/internal/usecase/profile"
	"skill-swap/internal/usecase/swap"
	"skill-swap/migrations"

	"github.com/google/uuid"
)

func TestIntegration_SwapLifecycleOnPostgres(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := connectTestDB(t, ctx)
	defer func() { _ = db.Close() }()

	runMigrations(t, ctx, db)

	users := repository.NewPostgresUserRepository(db)
	requests := repository.NewPostgresSkillRequestRepository(db)
	feedbacks := repository.NewPostgresFeedbackRepository(db)

	ana := newUser("Ana", "Guitar", "Spanish")
	ben := newUser("Ben", "Spanish", "Guitar")
	for _, u := range []user.User{ana, ben} {
		if err := users.Create(ctx, u); err != nil {
			t.Fatalf("create user %s: %v", u.Name, err)
		}
	}
	defer cleanupUsers(t, db, ana.ID, ben.ID)

	logger := log.New(io.Discard, "", 0)
	svc := swap.NewService(users, requests, feedbacks, swap.DefaultConfig(), nil, logger)

	sr, err := svc.CreateRequest(ctx, swap.CreateRequestInput{
		FromUserID: ana.ID,
		ToUserID:   ben.ID,
		FromSkill:  "guitar",
		ToSkill:    "Spanish",
		Message:    "Swap lessons?",
	})
	if err != nil {
		t.Fatalf("create request: %v", err)
	}

	incoming, err := svc.ListIncoming(ctx, ben.ID)
	if err != nil || len(incoming) != 1 || incoming[0].ID != sr.ID {
		t.Fatalf("incoming: got %+v err=%v", incoming, err)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted, conflicts := 0, 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Respond(ctx, sr.ID, ben.ID, request.DecisionAccept)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				accepted++
			case errors.Is(err, swap.ErrAlreadyResolved):
				conflicts++
			default:
				t.Errorf("respond: %v", err)
			}
		}()
	}
	wg.Wait()
	if accepted != 1 || conflicts != 7 {
		t.Fatalf("expected one accept and seven conflicts, got %d/%d", accepted, conflicts)
	}

	// A second service shares the table but not the in-process locks, so the
	// conditional update is what rejects this one.
	other := swap.NewService(users, requests, feedbacks, swap.DefaultConfig(), nil, logger)
	if _, err := other.Respond(ctx, sr.ID, ben.ID, request.DecisionReject); !errors.Is(err, swap.ErrAlreadyResolved) {
		t.Fatalf("expected ErrAlreadyResolved across services, got %v", err)
	}

	if _, err := svc.LeaveFeedback(ctx, swap.LeaveFeedbackInput{RequestID: sr.ID, AuthorID: ana.ID, Rating: 4}); err != nil {
		t.Fatalf("leave feedback: %v", err)
	}
	if _, err := other.LeaveFeedback(ctx, swap.LeaveFeedbackInput{RequestID: sr.ID, AuthorID: ana.ID, Rating: 5}); !errors.Is(err, swap.ErrDuplicateFeedback) {
		t.Fatalf("expected ErrDuplicateFeedback, got %v", err)
	}

	prof := profile.NewService(users, svc, nil, logger)
	p, err := prof.PublicProfile(ctx, ben.ID, uuid.Nil)
	if err != nil {
		t.Fatalf("public profile: %v", err)
	}
	if p.Rating.Count != 1 || p.User.Rating != 4 {
		t.Fatalf("expected derived rating 4 from one feedback, got %+v", p.Rating)
	}

	// Two services do not share the in-process lock, so only the row lock
	// keeps both patches.
	profiles := []*profile.Service{prof, profile.NewService(users, svc, nil, logger)}
	location, availability := "Madrid", "Evenings"
	patches := []profile.UpdateProfileInput{{Location: &location}, {Availability: &availability}}
	var pwg sync.WaitGroup
	for i, patch := range patches {
		pwg.Add(1)
		go func(ps *profile.Service, patch profile.UpdateProfileInput) {
			defer pwg.Done()
			if _, err := ps.UpdateProfile(ctx, ben.ID, patch); err != nil {
				t.Errorf("update profile: %v", err)
			}
		}(profiles[i], patch)
	}
	pwg.Wait()
	stored, err := users.GetByID(ctx, ben.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if stored.Location != location || stored.Availability != availability {
		t.Fatalf("both patches must survive, got location=%q availability=%q", stored.Location, stored.Availability)
	}

	private := "Private"
	if _, err := prof.UpdateProfile(ctx, ben.ID, profile.UpdateProfileInput{Visibility: &private}); err != nil {
		t.Fatalf("update profile: %v", err)
	}
	listed, err := prof.ListPublicUsers(ctx)
	if err != nil {
		t.Fatalf("list public: %v", err)
	}
	for _, u := range listed {
		if u.ID == ben.ID {
			t.Fatalf("private user still listed")
		}
	}
}

func TestIntegration_SeederIsIdempotent(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := connectTestDB(t, ctx)
	defer func() { _ = db.Close() }()

	runMigrations(t, ctx, db)

	r := seeder.Runner{Seeders: seeder.Defaults()}
	for i := 0; i < 2; i++ {
		if err := r.Run(ctx, db); err != nil {
			t.Fatalf("seed run %d: %v", i+1, err)
		}
	}

	users := repository.NewPostgresUserRepository(db)
	for _, u := range seeder.DemoUsers() {
		if _, err := users.GetByID(ctx, u.ID); err != nil {
			t.Fatalf("seeded user %s missing: %v", u.Name, err)
		}
	}
}

func newUser(name, offers, wants string) user.User {
	now := time.Now().UTC()
	return user.User{
		ID:            uuid.New(),
		Name:          name,
		Email:         strings.ToLower(name) + "+" + uuid.NewString()[:8] + "@example.com",
		SkillsOffered: []string{offers},
		SkillsWanted:  []string{wants},
		Visibility:    user.VisibilityPublic,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func connectTestDB(t *testing.T, ctx context.Context) database.DB {
	t.Helper()

	host := stringsOrDefault(os.Getenv("SKILLSWAP_TEST_DB_HOST"), os.Getenv("DB_HOST"))
	port := stringsOrDefault(os.Getenv("SKILLSWAP_TEST_DB_PORT"), os.Getenv("DB_PORT"))
	name := stringsOrDefault(os.Getenv("SKILLSWAP_TEST_DB_NAME"), os.Getenv("DB_NAME"))
	usr := stringsOrDefault(os.Getenv("SKILLSWAP_TEST_DB_USER"), os.Getenv("DB_USER"))
	pass := stringsOrDefault(os.Getenv("SKILLSWAP_TEST_DB_PASSWORD"), os.Getenv("DB_PASSWORD"))
	ssl := stringsOrDefault(os.Getenv("SKILLSWAP_TEST_DB_SSL_MODE"), os.Getenv("DB_SSL_MODE"))

	if host == "" || port == "" || name == "" || usr == "" {
		t.Skip("missing test DB env vars: set SKILLSWAP_TEST_DB_HOST/PORT/NAME/USER/PASSWORD (or DB_HOST/DB_PORT/DB_NAME/DB_USER/DB_PASSWORD)")
	}
	if ssl == "" {
		ssl = "disable"
	}

	db, err := dbpostgres.Connect(ctx, config.DatabaseConfig{
		DBHost:     host,
		DBPort:     port,
		DBName:     name,
		DBUser:     usr,
		DBPassword: pass,
		DBSSLMode:  ssl,
	})
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return db
}

func runMigrations(t *testing.T, ctx context.Context, db database.DB) {
	t.Helper()

	r := migration.Runner{FS: migrations.FS}
	if err := r.Run(ctx, db.SQLDB()); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
}

func cleanupUsers(t *testing.T, db database.DB, ids ...uuid.UUID) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, id := range ids {
		_, _ = db.Exec(ctx, `DELETE FROM feedback WHERE from_user_id = $1 OR to_user_id = $1`, id)
		_, _ = db.Exec(ctx, `DELETE FROM skill_requests WHERE from_user_id = $1 OR to_user_id = $1`, id)
	}
	for _, id := range ids {
		_, _ = db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	}
}

func stringsOrDefault(v, def string) string {
	if strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return strings.TrimSpace(def)
}
