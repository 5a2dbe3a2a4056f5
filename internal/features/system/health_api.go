package system

import (
	"context"
	"time"

	"go-support/internal/common/response"
	"go-support/internal/database"

	"github.com/gofiber/fiber/v2"
)

type HealthApi struct {
	DB *database.MongodbDB
}

func NewHealthApi(db *database.MongodbDB) *HealthApi {
	return &HealthApi{DB: db}
}

func (h *HealthApi) Setup(app *fiber.App) {
	app.Get("/health", h.health)
}

func (h *HealthApi) health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "up"
	if err := h.DB.Ping(ctx); err != nil {
		dbStatus = "down"
	}

	return response.Success(c, fiber.Map{
		"service":  "go-support",
		"database": dbStatus,
	}, "Health check")
}
