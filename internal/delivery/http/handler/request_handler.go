package handler

import (
	"strings"

	"skill-swap/internal/delivery/http/dto"
	"skill-swap/internal/delivery/http/middleware"
	"skill-swap/internal/domain/request"
	"skill-swap/internal/pkg/response"
	"skill-swap/internal/usecase"
	ucswap "skill-swap/internal/usecase/swap"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type RequestHandler struct {
	uc usecase.SwapUsecase
}

type createRequestRequest struct {
	ToUserID  string `json:"to_user_id"`
	FromSkill string `json:"from_skill"`
	ToSkill   string `json:"to_skill"`
	Message   string `json:"message"`
}

type respondRequest struct {
	Decision string `json:"decision"`
}

type feedbackRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func NewRequestHandler(uc usecase.SwapUsecase) *RequestHandler {
	return &RequestHandler{uc: uc}
}

func (h *RequestHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.Create)
	r.Get("/incoming", h.ListIncoming)
	r.Get("/outgoing", h.ListOutgoing)
	r.Get("/:id", h.Get)
	r.Post("/:id/respond", h.Respond)
	r.Post("/:id/feedback", h.LeaveFeedback)
}

func (h *RequestHandler) Create(c fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	var req createRequestRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}
	toID, err := uuid.Parse(strings.TrimSpace(req.ToUserID))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid to_user_id", nil, err)
	}

	sr, err := h.uc.CreateRequest(c.Context(), ucswap.CreateRequestInput{
		FromUserID: userID,
		ToUserID:   toID,
		FromSkill:  req.FromSkill,
		ToSkill:    req.ToSkill,
		Message:    req.Message,
	})
	if err != nil {
		return swapError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewSkillRequestResponse(sr))
}

func (h *RequestHandler) ListIncoming(c fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListIncoming(c.Context(), userID)
	if err != nil {
		return swapError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSkillRequestListResponse(items))
}

func (h *RequestHandler) ListOutgoing(c fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListOutgoing(c.Context(), userID)
	if err != nil {
		return swapError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSkillRequestListResponse(items))
}

func (h *RequestHandler) Get(c fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	sr, err := h.uc.GetRequest(c.Context(), id, userID)
	if err != nil {
		return swapError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSkillRequestResponse(sr))
}

func (h *RequestHandler) Respond(c fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req respondRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	sr, err := h.uc.Respond(c.Context(), id, userID, parseDecision(req.Decision))
	if err != nil {
		return swapError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSkillRequestResponse(sr))
}

func (h *RequestHandler) LeaveFeedback(c fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req feedbackRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	f, err := h.uc.LeaveFeedback(c.Context(), ucswap.LeaveFeedbackInput{
		RequestID: id,
		AuthorID:  userID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		return swapError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewFeedbackResponse(f))
}

// parseDecision accepts the decision names case-insensitively. Anything else
// is passed through and rejected by the usecase.
func parseDecision(raw string) request.Decision {
	raw = strings.TrimSpace(raw)
	for _, d := range []request.Decision{request.DecisionAccept, request.DecisionReject} {
		if strings.EqualFold(raw, string(d)) {
			return d
		}
	}
	return request.Decision(raw)
}
