package handlers

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/community-moderation/internal/dto"
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	ping     func() error
	pingRead func() error
}

func NewHealthHandler(ping, pingRead func() error) *HealthHandler {
	return &HealthHandler{ping: ping, pingRead: pingRead}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	resp := dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        "ok",
		ReadDB:    "ok",
	}
	if err := h.ping(); err != nil {
		resp.Status = "degraded"
		resp.DB = "unhealthy: " + err.Error()
	}
	if err := h.pingRead(); err != nil {
		resp.Status = "degraded"
		resp.ReadDB = "unhealthy: " + err.Error()
	}

	if resp.Status != "ok" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}
	return c.JSON(resp)
}
