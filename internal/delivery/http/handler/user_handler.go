package handler

import (
	"skill-swap/internal/delivery/http/dto"
	"skill-swap/internal/delivery/http/middleware"
	"skill-swap/internal/pkg/response"
	"skill-swap/internal/usecase"
	ucprofile "skill-swap/internal/usecase/profile"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type UserHandler struct {
	uc usecase.ProfileUsecase
}

type updateProfileRequest struct {
	Name          *string  `json:"name"`
	Location      *string  `json:"location"`
	Availability  *string  `json:"availability"`
	Visibility    *string  `json:"visibility"`
	PhotoURL      *string  `json:"photo_url"`
	SkillsOffered []string `json:"skills_offered"`
	SkillsWanted  []string `json:"skills_wanted"`
}

type suggestSkillsRequest struct {
	Prompt string `json:"prompt"`
}

func NewUserHandler(uc usecase.ProfileUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

// RegisterPublicRoutes mounts the directory endpoints, which accept anonymous
// callers.
func (h *UserHandler) RegisterPublicRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.ListUsers)
	r.Get("/:id", h.GetUser)
}

// RegisterMeRoutes mounts the caller's own profile endpoints on a group that
// requires authentication.
func (h *UserHandler) RegisterMeRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.GetMe)
	r.Put("/", h.UpdateMe)
	r.Post("/skills/suggestions", h.SuggestSkills)
}

func (h *UserHandler) ListUsers(c fiber.Ctx) error {
	users, err := h.uc.ListPublicUsers(c.Context())
	if err != nil {
		return profileError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserListResponse(users))
}

func (h *UserHandler) GetUser(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	viewer, _ := middleware.UserID(c)

	prof, err := h.uc.PublicProfile(c.Context(), id, viewer)
	if err != nil {
		return profileError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProfileResponse(prof, viewer == id && viewer != uuid.Nil))
}

func (h *UserHandler) GetMe(c fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	prof, err := h.uc.PublicProfile(c.Context(), userID, userID)
	if err != nil {
		return profileError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProfileResponse(prof, true))
}

func (h *UserHandler) UpdateMe(c fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}
	if req.Name == nil && req.Location == nil && req.Availability == nil && req.Visibility == nil &&
		req.PhotoURL == nil && req.SkillsOffered == nil && req.SkillsWanted == nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, nil)
	}

	usr, err := h.uc.UpdateProfile(c.Context(), userID, ucprofile.UpdateProfileInput{
		Name:          req.Name,
		Location:      req.Location,
		Availability:  req.Availability,
		Visibility:    req.Visibility,
		PhotoURL:      req.PhotoURL,
		SkillsOffered: req.SkillsOffered,
		SkillsWanted:  req.SkillsWanted,
	})
	if err != nil {
		return profileError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserResponse(usr, true))
}

func (h *UserHandler) SuggestSkills(c fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	var req suggestSkillsRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	skills, err := h.uc.SuggestSkills(c.Context(), userID, req.Prompt)
	if err != nil {
		return profileError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.SkillSuggestionsResponse{Skills: skills})
}
