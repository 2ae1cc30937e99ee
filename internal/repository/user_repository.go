package repository

import (
	"context"
	"database/sql"
	"errors"

	"skill-swap/internal/database"
	"skill-swap/internal/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, name, email, location, skills_offered, skills_wanted, availability, visibility, photo_url, rating, created_at, updated_at`

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, u user.User) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, name, email, location, skills_offered, skills_wanted, availability, visibility, photo_url, rating, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		u.ID, u.Name, u.Email, u.Location, nonNil(u.SkillsOffered), nonNil(u.SkillsWanted),
		u.Availability, string(u.Visibility), u.PhotoURL, u.Rating, u.CreatedAt, u.UpdatedAt,
	)
	return err
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func (r *PostgresUserRepository) ListPublic(ctx context.Context) ([]user.User, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+userColumns+`
		 FROM users
		 WHERE visibility = $1
		 ORDER BY seq ASC`,
		string(user.VisibilityPublic),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]user.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateFunc locks the row with SELECT ... FOR UPDATE so concurrent writers,
// including other processes, apply their patches one after another.
func (r *PostgresUserRepository) UpdateFunc(ctx context.Context, id uuid.UUID, fn func(*user.User) error) (user.User, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return user.User{}, err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	u, err := scanUser(tx.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}

	if err := fn(&u); err != nil {
		return user.User{}, err
	}

	rowsAffected, err := tx.Exec(ctx,
		`UPDATE users
		 SET name = $1, location = $2, skills_offered = $3, skills_wanted = $4,
		     availability = $5, visibility = $6, photo_url = $7, updated_at = $8
		 WHERE id = $9`,
		u.Name, u.Location, nonNil(u.SkillsOffered), nonNil(u.SkillsWanted),
		u.Availability, string(u.Visibility), u.PhotoURL, u.UpdatedAt, id,
	)
	if err != nil {
		return user.User{}, err
	}
	if rowsAffected == 0 {
		return user.User{}, user.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return user.User{}, err
	}
	u.ID = id
	return u, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (user.User, error) {
	var (
		u          user.User
		visibility string
	)
	if err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.Location, &u.SkillsOffered, &u.SkillsWanted,
		&u.Availability, &visibility, &u.PhotoURL, &u.Rating, &u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		return user.User{}, err
	}
	u.Visibility = user.Visibility(visibility)
	return u, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
