package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cabanas/quote-service/internal/money"
	"github.com/cabanas/quote-service/internal/quote"
	"github.com/cabanas/quote-service/internal/tariff"
)

// SeasonInfo describes a season and its payment schedule.
type SeasonInfo struct {
	Season       tariff.Season       `json:"season"`
	Label        string              `json:"label"`
	Emoji        string              `json:"emoji"`
	Installments []quote.Installment `json:"installments"`
}

// ListSeasonsResponse is the response of GET /api/v1/seasons.
type ListSeasonsResponse struct {
	Seasons []SeasonInfo `json:"seasons"`
}

// ListSeasons returns every season with its payment schedule
// @Summary List seasons
// @Tags seasons
// @Produce json
// @Success 200 {object} ListSeasonsResponse
// @Router /api/v1/seasons [get]
func (h *Handler) ListSeasons(c *gin.Context) {
	resp := ListSeasonsResponse{Seasons: make([]SeasonInfo, 0, len(tariff.Seasons))}
	for _, s := range tariff.Seasons {
		resp.Seasons = append(resp.Seasons, SeasonInfo{
			Season:       s,
			Label:        s.Label(),
			Emoji:        s.Emoji(),
			Installments: quote.ScheduleFor(s).Installments,
		})
	}
	c.JSON(http.StatusOK, resp)
}

// TariffsResponse is the active table of a season plus its discount menu.
type TariffsResponse struct {
	Table        tariff.Table            `json:"table"`
	Overridden   bool                    `json:"overridden"`
	DiscountMenu []tariff.DiscountOption `json:"discountMenu"`
}

// GetTariffs returns the built-in table merged with any stored override
// @Summary Active tariff table
// @Tags seasons
// @Produce json
// @Param season path string true "Season" Enums(summer, spring)
// @Success 200 {object} TariffsResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/seasons/{season}/tariffs [get]
func (h *Handler) GetTariffs(c *gin.Context) {
	season, ok := seasonParam(c)
	if !ok {
		return
	}

	overrides, err := h.overrides.Load(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to load tariffs")
		return
	}

	table := tariff.Active(season, overrides)
	c.JSON(http.StatusOK, TariffsResponse{
		Table:        table,
		Overridden:   overrides.For(season) != nil,
		DiscountMenu: tariff.DiscountMenu(table, season),
	})
}

// SuggestionRequest holds the query of a suggestion lookup.
type SuggestionRequest struct {
	People string `form:"people"`
	Nights string `form:"nights"`
}

// GetSuggestion proposes a nightly price and long-stay discount
// @Summary Price suggestion
// @Tags seasons
// @Produce json
// @Param season path string true "Season" Enums(summer, spring)
// @Param people query string false "Guest count"
// @Param nights query string false "Nights"
// @Success 200 {object} quote.Suggestion
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/seasons/{season}/suggestion [get]
func (h *Handler) GetSuggestion(c *gin.Context) {
	season, ok := seasonParam(c)
	if !ok {
		return
	}

	var req SuggestionRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	table, err := h.overrides.Active(c.Request.Context(), season)
	if err != nil {
		h.respondError(c, err, "Failed to load tariffs")
		return
	}

	c.JSON(http.StatusOK, quote.Suggest(table, money.ParseCount(req.People), money.ParseCount(req.Nights), false))
}

// NightsResponse is the response of GET /api/v1/nights.
type NightsResponse struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Nights int    `json:"nights"`
}

// GetNights counts the nights between two DD/MM/YYYY dates
// @Summary Nights between dates
// @Description Malformed or reversed dates yield 0 nights
// @Tags quotes
// @Produce json
// @Param from query string true "Check-in date (DD/MM/YYYY)"
// @Param to query string true "Check-out date (DD/MM/YYYY)"
// @Success 200 {object} NightsResponse
// @Router /api/v1/nights [get]
func (h *Handler) GetNights(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")
	c.JSON(http.StatusOK, NightsResponse{
		From:   from,
		To:     to,
		Nights: quote.NightsBetweenDates(from, to),
	})
}
