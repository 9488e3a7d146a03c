// Package handlers implements the HTTP API of the quote service.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"

	"github.com/cabanas/quote-service/internal/money"
	"github.com/cabanas/quote-service/internal/storage"
	"github.com/cabanas/quote-service/internal/summary"
	"github.com/cabanas/quote-service/internal/tariff"
	"github.com/cabanas/quote-service/internal/telemetry"
)

// Handler serves quote and tariff endpoints.
type Handler struct {
	overrides *storage.OverrideStore
	formatter *money.Formatter
	renderer  *summary.Renderer
	logger    zerolog.Logger
	quotes    metric.Int64Counter
}

// New creates a handler. A nil formatter uses the es-AR default.
func New(overrides *storage.OverrideStore, formatter *money.Formatter, logger zerolog.Logger) *Handler {
	if formatter == nil {
		formatter = money.Default()
	}
	h := &Handler{
		overrides: overrides,
		formatter: formatter,
		renderer:  summary.NewRenderer(formatter),
		logger:    logger.With().Str("component", "handlers").Logger(),
	}
	counter, err := telemetry.Meter().Int64Counter("quotes.calculated",
		metric.WithDescription("Quotes calculated successfully"))
	if err != nil {
		h.logger.Warn().Err(err).Msg("Failed to create quote counter")
	} else {
		h.quotes = counter
	}
	return h
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error  string              `json:"error"`
	Fields map[string][]string `json:"fields,omitempty"`
}

// RegisterRoutes mounts the public API on r and the tariff administration
// endpoints behind the admin middleware.
func (h *Handler) RegisterRoutes(r gin.IRouter, admin ...gin.HandlerFunc) {
	r.GET("/health", h.HealthCheck)

	api := r.Group("/api/v1")
	{
		api.GET("/seasons", h.ListSeasons)
		api.GET("/seasons/:season/tariffs", h.GetTariffs)
		api.GET("/seasons/:season/suggestion", h.GetSuggestion)
		api.GET("/nights", h.GetNights)
		api.POST("/quotes", h.CreateQuote)

		adminGroup := api.Group("/admin")
		adminGroup.Use(admin...)
		{
			adminGroup.GET("/overrides", h.GetOverrides)
			adminGroup.PUT("/overrides/:season", h.PutOverride)
			adminGroup.DELETE("/overrides/:season", h.DeleteOverride)
			adminGroup.GET("/tariffs/:season/export", h.ExportTariffs)
			adminGroup.POST("/tariffs/:season/import", h.ImportTariffs)
		}
	}
}

// seasonParam parses the :season path parameter, writing a 400 on failure.
func seasonParam(c *gin.Context) (tariff.Season, bool) {
	season, err := tariff.ParseSeason(c.Param("season"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return "", false
	}
	return season, true
}

// respondError maps domain errors to status codes.
func (h *Handler) respondError(c *gin.Context, err error, msg string) {
	_ = c.Error(err)

	if verr := tariff.AsValidationError(err); verr != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: verr.Error(), Fields: verr.Fields()})
		return
	}
	if errors.Is(err, tariff.ErrUnknownSeason) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	h.logger.Error().Err(err).Str("path", c.FullPath()).Msg(msg)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: msg})
}
