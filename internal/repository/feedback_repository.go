package repository

import (
	"context"
	"errors"

	"skill-swap/internal/database"
	"skill-swap/internal/domain/feedback"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type PostgresFeedbackRepository struct {
	db database.DB
}

func NewPostgresFeedbackRepository(db database.DB) *PostgresFeedbackRepository {
	return &PostgresFeedbackRepository{db: db}
}

func (r *PostgresFeedbackRepository) Create(ctx context.Context, f feedback.Feedback) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO feedback (id, request_id, from_user_id, to_user_id, rating, comment, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		f.ID, f.RequestID, f.FromUserID, f.ToUserID, f.Rating, f.Comment, f.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return feedback.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *PostgresFeedbackRepository) ExistsForAuthor(ctx context.Context, requestID, authorID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM feedback WHERE request_id = $1 AND from_user_id = $2)`,
		requestID, authorID,
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresFeedbackRepository) ListByRecipient(ctx context.Context, userID uuid.UUID) ([]feedback.Feedback, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, request_id, from_user_id, to_user_id, rating, comment, created_at
		 FROM feedback
		 WHERE to_user_id = $1
		 ORDER BY created_at DESC, id ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]feedback.Feedback, 0)
	for rows.Next() {
		var f feedback.Feedback
		if err := rows.Scan(&f.ID, &f.RequestID, &f.FromUserID, &f.ToUserID, &f.Rating, &f.Comment, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
