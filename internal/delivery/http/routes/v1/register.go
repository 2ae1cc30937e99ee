package v1

import (
	"skill-swap/internal/delivery/http/handler"
	"skill-swap/internal/delivery/http/middleware"
	"skill-swap/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Health   *handler.HealthHandler
	Users    *handler.UserHandler
	Requests *handler.RequestHandler
	Events   *ws.Handler
	Auth     *middleware.AuthMiddleware
}

func Register(r fiber.Router, h Handlers) {
	if r == nil || h.Auth == nil {
		return
	}

	if h.Health != nil {
		h.Health.RegisterRoutes(r)
	}

	RegisterUsers(r, h.Users, h.Auth)
	RegisterRequests(r.Group("/requests", h.Auth.Middleware()), h.Requests)

	if h.Events != nil {
		r.Get("/ws", h.Auth.QueryMiddleware(), h.Events.HandleEvents)
	}
}
