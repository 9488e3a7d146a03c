package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cabanas/quote-service/internal/database"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string `json:"status"`
	Storage  string `json:"storage"`
	Database string `json:"database"`
}

// HealthCheck handles the health check endpoint
// @Summary Health check
// @Description Reports storage and database connectivity
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *Handler) HealthCheck(c *gin.Context) {
	response := HealthResponse{
		Status:   "ok",
		Storage:  "ok",
		Database: "not configured",
	}
	status := http.StatusOK

	// reads the backend directly, bypassing the override cache
	if _, err := h.overrides.Checksum(c.Request.Context()); err != nil {
		h.logger.Warn().Err(err).Msg("Storage health check failed")
		response.Status = "degraded"
		response.Storage = "unavailable"
		status = http.StatusServiceUnavailable
	}

	if database.Pool() != nil {
		if err := database.Status(c.Request.Context()); err != nil {
			response.Status = "degraded"
			response.Database = "disconnected"
			status = http.StatusServiceUnavailable
		} else {
			response.Database = "connected"
		}
	}

	c.JSON(status, response)
}
