package v1

import (
	"skill-swap/internal/delivery/http/handler"
	"skill-swap/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

func RegisterUsers(r fiber.Router, userHandler *handler.UserHandler, auth *middleware.AuthMiddleware) {
	if r == nil {
		return
	}
	if userHandler == nil {
		return
	}

	userHandler.RegisterPublicRoutes(r.Group("/users", auth.Optional()))
	userHandler.RegisterMeRoutes(r.Group("/me", auth.Middleware()))
}
