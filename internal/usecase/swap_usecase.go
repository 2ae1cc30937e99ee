package usecase

import (
	"context"

	"skill-swap/internal/domain/feedback"
	"skill-swap/internal/domain/request"
	ucswap "skill-swap/internal/usecase/swap"

	"github.com/google/uuid"
)

type SwapUsecase interface {
	CreateRequest(ctx context.Context, in ucswap.CreateRequestInput) (request.SkillRequest, error)
	Respond(ctx context.Context, requestID, responderID uuid.UUID, decision request.Decision) (request.SkillRequest, error)
	GetRequest(ctx context.Context, requestID, viewerID uuid.UUID) (request.SkillRequest, error)
	ListIncoming(ctx context.Context, userID uuid.UUID) ([]request.SkillRequest, error)
	ListOutgoing(ctx context.Context, userID uuid.UUID) ([]request.SkillRequest, error)
	LeaveFeedback(ctx context.Context, in ucswap.LeaveFeedbackInput) (feedback.Feedback, error)
	RatingSummary(ctx context.Context, userID uuid.UUID) (ucswap.RatingSummary, error)
}

var _ SwapUsecase = (*ucswap.Service)(nil)
