package handler

import (
	"english-placement/internal/dto"
	"english-placement/internal/service"

	"github.com/gofiber/fiber/v2"
)

const serviceName = "english-placement"

// HealthHandler serves the liveness endpoints
type HealthHandler struct {
	service service.HealthService
}

// NewHealthHandler creates a new HealthHandler instance
func NewHealthHandler(service service.HealthService) *HealthHandler {
	return &HealthHandler{service: service}
}

// Health godoc
// @Summary Service health
// @Description Reports the question bank and cache state. Answers 503 when the bank is unreachable.
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	resp := h.service.Check(c.UserContext())
	status := fiber.StatusOK
	if resp.Status != service.StatusOK {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(resp)
}

// Root is the root probe. HEAD gets the same status without a body.
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(dto.RootResponse{
		OK:      true,
		Service: serviceName,
		Docs:    "/swagger/index.html",
		Health:  "/api/health",
	})
}
