package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sentreats/sentreats-server/internal/dto"
	"github.com/sentreats/sentreats-server/internal/store"
)

type HealthHandler struct {
	store  store.Store
	driver string
}

func NewHealthHandler(st store.Store, driver string) *HealthHandler {
	return &HealthHandler{store: st, driver: driver}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	storage := h.driver
	if err := h.store.Ping(); err != nil {
		storage = h.driver + " unhealthy: " + err.Error()
	}

	return c.JSON(dto.HealthResponse{
		Status:    "OK",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Storage:   storage,
	})
}
