package handler

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

func RegisterRoutes(app *fiber.App, h *AuthHandler, db Pinger, metricsHandler http.Handler) {
	app.Post("/api/v1/sign-up", h.SignUp)
	app.Post("/api/v1/sign-in", h.SignIn)
	app.Get("/api/v1/session", h.ValidateSession)
	app.Get("/api/v1/token/refresh", h.Refresh)
	app.Post("/api/v1/sign-out", h.SignOut)
	app.Get("/api/v1/profile", h.Profile)

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := db.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded"})
		}

		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Get("/metrics", adaptor.HTTPHandler(metricsHandler))
}
