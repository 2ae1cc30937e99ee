package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"skill-swap/internal/database"
	"skill-swap/internal/domain/request"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const skillRequestColumns = `id, from_user_id, to_user_id, from_name, to_name, from_skill, to_skill, message, status, created_at, responded_at`

type PostgresSkillRequestRepository struct {
	db database.DB
}

func NewPostgresSkillRequestRepository(db database.DB) *PostgresSkillRequestRepository {
	return &PostgresSkillRequestRepository{db: db}
}

func (r *PostgresSkillRequestRepository) Create(ctx context.Context, sr request.SkillRequest) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO skill_requests (id, from_user_id, to_user_id, from_name, to_name, from_skill, to_skill, message, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		sr.ID, sr.FromUserID, sr.ToUserID, sr.FromName, sr.ToName, sr.FromSkill, sr.ToSkill,
		sr.Message, string(sr.Status), sr.CreatedAt,
	)
	return err
}

func (r *PostgresSkillRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (request.SkillRequest, error) {
	row := r.db.QueryRow(ctx, `SELECT `+skillRequestColumns+` FROM skill_requests WHERE id = $1`, id)
	sr, err := scanSkillRequest(row)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return request.SkillRequest{}, request.ErrNotFound
		}
		return request.SkillRequest{}, err
	}
	return sr, nil
}

func (r *PostgresSkillRequestRepository) ListByRecipient(ctx context.Context, userID uuid.UUID) ([]request.SkillRequest, error) {
	return r.list(ctx,
		`SELECT `+skillRequestColumns+`
		 FROM skill_requests
		 WHERE to_user_id = $1
		 ORDER BY created_at DESC, id ASC`,
		userID,
	)
}

func (r *PostgresSkillRequestRepository) ListBySender(ctx context.Context, userID uuid.UUID) ([]request.SkillRequest, error) {
	return r.list(ctx,
		`SELECT `+skillRequestColumns+`
		 FROM skill_requests
		 WHERE from_user_id = $1
		 ORDER BY created_at DESC, id ASC`,
		userID,
	)
}

func (r *PostgresSkillRequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to request.Status, at time.Time) (request.SkillRequest, error) {
	if !request.CanTransition(from, to) {
		return request.SkillRequest{}, request.ErrStatusConflict
	}

	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE skill_requests
		 SET status = $1, responded_at = $2
		 WHERE id = $3 AND status = $4`,
		string(to), at.UTC(), id, string(from),
	)
	if err != nil {
		return request.SkillRequest{}, err
	}
	if rowsAffected == 0 {
		var exists bool
		row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM skill_requests WHERE id = $1)`, id)
		if err := row.Scan(&exists); err != nil {
			return request.SkillRequest{}, err
		}
		if !exists {
			return request.SkillRequest{}, request.ErrNotFound
		}
		return request.SkillRequest{}, request.ErrStatusConflict
	}

	return r.GetByID(ctx, id)
}

func (r *PostgresSkillRequestRepository) list(ctx context.Context, query string, args ...any) ([]request.SkillRequest, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]request.SkillRequest, 0)
	for rows.Next() {
		sr, err := scanSkillRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanSkillRequest(row scanner) (request.SkillRequest, error) {
	var (
		sr     request.SkillRequest
		status string
	)
	if err := row.Scan(
		&sr.ID, &sr.FromUserID, &sr.ToUserID, &sr.FromName, &sr.ToName, &sr.FromSkill, &sr.ToSkill,
		&sr.Message, &status, &sr.CreatedAt, &sr.RespondedAt,
	); err != nil {
		return request.SkillRequest{}, err
	}
	sr.Status = request.Status(status)
	return sr, nil
}
