package handler

import (
	"errors"

	"skill-swap/internal/delivery/http/middleware"
	"skill-swap/internal/pkg/response"
	"skill-swap/internal/suggest"
	ucprofile "skill-swap/internal/usecase/profile"
	ucswap "skill-swap/internal/usecase/swap"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

func callerID(c fiber.Ctx) (uuid.UUID, error) {
	id, ok := middleware.UserID(c)
	if !ok {
		return uuid.Nil, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return id, nil
}

func pathID(c fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid "+name, nil, err)
	}
	return id, nil
}

func profileError(err error) error {
	var verr *ucprofile.ValidationError
	switch {
	case errors.As(err, &verr):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid profile", verr.Fields, err)
	case errors.Is(err, ucprofile.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	case errors.Is(err, ucprofile.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, suggest.ErrSuggestionUnavailable):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "Skill suggestions are unavailable right now", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func swapError(err error) error {
	switch {
	case errors.Is(err, ucswap.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	case errors.Is(err, ucswap.ErrNotAuthorized):
		return middleware.NewAppError(fiber.StatusForbidden, "Not allowed to act on this request", nil, err)
	case errors.Is(err, ucswap.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Request not found", nil, err)
	case errors.Is(err, ucswap.ErrAlreadyResolved):
		return middleware.NewAppError(fiber.StatusConflict, "Request already resolved", nil, err)
	case errors.Is(err, ucswap.ErrRequestNotAccepted):
		return middleware.NewAppError(fiber.StatusConflict, "Request has not been accepted", nil, err)
	case errors.Is(err, ucswap.ErrDuplicateFeedback):
		return middleware.NewAppError(fiber.StatusConflict, "Feedback already left for this request", nil, err)
	case errors.Is(err, ucswap.ErrSelfRequest):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Cannot request a swap with yourself", nil, err)
	case errors.Is(err, ucswap.ErrInvalidParticipant):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Unknown user", nil, err)
	case errors.Is(err, ucswap.ErrSkillMismatch):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Skill is not offered by that user", nil, err)
	case errors.Is(err, ucswap.ErrInvalidRating):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Rating is out of range", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
