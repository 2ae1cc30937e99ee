package seeder

import (
	"context"
	"fmt"

	"skill-swap/internal/database"
	"skill-swap/internal/domain/user"
)

// UsersSeeder inserts directory fixtures, leaving existing rows untouched.
type UsersSeeder struct {
	Users []user.User
}

func (UsersSeeder) Name() string { return "users" }

func (s UsersSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "users",
		"id", "name", "email", "location", "skills_offered", "skills_wanted",
		"availability", "visibility", "photo_url", "rating", "created_at", "updated_at",
	); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, u := range s.Users {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO users (id, name, email, location, skills_offered, skills_wanted, availability, visibility, photo_url, rating, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			 ON CONFLICT (id) DO NOTHING`,
			u.ID, u.Name, u.Email, u.Location, u.SkillsOffered, u.SkillsWanted,
			u.Availability, string(u.Visibility), u.PhotoURL, u.Rating, u.CreatedAt, u.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert user %s: %w", u.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
