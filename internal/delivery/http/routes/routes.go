package routes

import (
	"skill-swap/internal/delivery/http/handler"
	"skill-swap/internal/delivery/http/middleware"
	v1 "skill-swap/internal/delivery/http/routes/v1"
	"skill-swap/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health   *handler.HealthHandler
	users    *handler.UserHandler
	requests *handler.RequestHandler
	events   *ws.Handler
	auth     *middleware.AuthMiddleware
}

func NewRegistry(health *handler.HealthHandler, users *handler.UserHandler, requests *handler.RequestHandler, events *ws.Handler, auth *middleware.AuthMiddleware) *Registry {
	return &Registry{health: health, users: users, requests: requests, events: events, auth: auth}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerAPI(app)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	v1.Register(api.Group("/v1"), v1.Handlers{
		Health:   r.health,
		Users:    r.users,
		Requests: r.requests,
		Events:   r.events,
		Auth:     r.auth,
	})
}
