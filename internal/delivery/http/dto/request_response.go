package dto

import (
	"time"

	"skill-swap/internal/domain/feedback"
	"skill-swap/internal/domain/request"

	"github.com/google/uuid"
)

type SkillRequestResponse struct {
	ID          uuid.UUID  `json:"id"`
	FromUserID  uuid.UUID  `json:"from_user_id"`
	ToUserID    uuid.UUID  `json:"to_user_id"`
	FromName    string     `json:"from_name"`
	ToName      string     `json:"to_name"`
	FromSkill   string     `json:"from_skill"`
	ToSkill     string     `json:"to_skill"`
	Message     string     `json:"message"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	RespondedAt *time.Time `json:"responded_at"`
}

type FeedbackResponse struct {
	ID         uuid.UUID `json:"id"`
	RequestID  uuid.UUID `json:"request_id"`
	FromUserID uuid.UUID `json:"from_user_id"`
	ToUserID   uuid.UUID `json:"to_user_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewSkillRequestResponse(sr request.SkillRequest) SkillRequestResponse {
	return SkillRequestResponse{
		ID:          sr.ID,
		FromUserID:  sr.FromUserID,
		ToUserID:    sr.ToUserID,
		FromName:    sr.FromName,
		ToName:      sr.ToName,
		FromSkill:   sr.FromSkill,
		ToSkill:     sr.ToSkill,
		Message:     sr.Message,
		Status:      string(sr.Status),
		CreatedAt:   sr.CreatedAt,
		RespondedAt: sr.RespondedAt,
	}
}

func NewSkillRequestListResponse(items []request.SkillRequest) []SkillRequestResponse {
	out := make([]SkillRequestResponse, 0, len(items))
	for _, sr := range items {
		out = append(out, NewSkillRequestResponse(sr))
	}
	return out
}

func NewFeedbackResponse(f feedback.Feedback) FeedbackResponse {
	return FeedbackResponse{
		ID:         f.ID,
		RequestID:  f.RequestID,
		FromUserID: f.FromUserID,
		ToUserID:   f.ToUserID,
		Rating:     f.Rating,
		Comment:    f.Comment,
		CreatedAt:  f.CreatedAt,
	}
}
