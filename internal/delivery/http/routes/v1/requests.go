package v1

import (
	"skill-swap/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func RegisterRequests(r fiber.Router, requestHandler *handler.RequestHandler) {
	if r == nil {
		return
	}
	if requestHandler == nil {
		return
	}

	requestHandler.RegisterRoutes(r)
}
