package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/cabanas/quote-service/internal/metrics"
	"github.com/cabanas/quote-service/internal/money"
	"github.com/cabanas/quote-service/internal/quote"
	"github.com/cabanas/quote-service/internal/summary"
	"github.com/cabanas/quote-service/internal/tariff"
	"github.com/cabanas/quote-service/internal/telemetry"
)

// QuoteResponse is a computed quote with its share text.
type QuoteResponse struct {
	ID string `json:"id"`
	// Form is the request after table suggestions were applied.
	Form       quote.Form       `json:"form"`
	Result     quote.Result     `json:"result"`
	Suggestion quote.Suggestion `json:"suggestion"`
	Display    QuoteDisplay     `json:"display"`
	Summary    string           `json:"summary"`
}

// QuoteDisplay holds the formatted figures of the result screen.
type QuoteDisplay struct {
	PricePerNight     string   `json:"pricePerNight"`
	TotalOriginal     string   `json:"totalOriginal"`
	TotalWithDiscount string   `json:"totalWithDiscount"`
	DiscountPercent   string   `json:"discountPercent"`
	Installments      []string `json:"installments"`
}

// CreateQuote computes a quote from a form
// @Summary Calculate a quote
// @Description Empty price and discount are filled from the season's active tariff table
// @Tags quotes
// @Accept json
// @Produce json
// @Param form body quote.Form true "Quote form"
// @Success 200 {object} QuoteResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /api/v1/quotes [post]
func (h *Handler) CreateQuote(c *gin.Context) {
	ctx, span := telemetry.Tracer().Start(c.Request.Context(), "quote.create")
	defer span.End()

	var form quote.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	season := tariff.SeasonSummer
	if form.Season != "" {
		parsed, err := tariff.ParseSeason(string(form.Season))
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		season = parsed
	}
	form.Season = season

	table, err := h.overrides.Active(ctx, season)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load tariffs")
		h.respondError(c, err, "Failed to load tariffs")
		return
	}

	session := quote.NewSession(table)
	session.Fill(form)
	res, err := session.Calculate()
	span.SetAttributes(
		attribute.String("quote.season", string(season)),
		attribute.Int("quote.people", session.Form().PeopleCount()),
		attribute.Int("quote.nights", session.Form().NightsCount()),
	)
	if err != nil {
		if errors.Is(err, quote.ErrRejected) {
			metrics.RecordRejectedQuote(string(season))
			span.AddEvent("rejected", trace.WithAttributes(attribute.String("reason", err.Error())))
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
			return
		}
		h.respondError(c, err, "Failed to calculate quote")
		return
	}

	metrics.RecordQuote(string(season), money.ToWholeUnits(res.TotalWithDiscountCents), res.Discount*100)
	if h.quotes != nil {
		h.quotes.Add(ctx, 1, metric.WithAttributes(attribute.String("season", string(season))))
	}

	var dates *summary.DateRange
	if from, to, ok := session.Form().DateRange(); ok {
		dates = &summary.DateRange{From: from, To: to}
	}

	id := uuid.NewString()
	span.SetAttributes(attribute.String("quote.id", id))
	h.logger.Debug().
		Str("quote_id", id).
		Str("season", string(season)).
		Int64("total", res.TotalWithDiscountCents).
		Msg("Quote calculated")

	c.JSON(http.StatusOK, QuoteResponse{
		ID:         id,
		Form:       session.Form(),
		Result:     res,
		Suggestion: session.Suggestion(),
		Display:    h.display(res),
		Summary:    h.renderer.Render(res, dates),
	})
}

func (h *Handler) display(r quote.Result) QuoteDisplay {
	d := QuoteDisplay{
		PricePerNight:     h.formatter.Format(r.PricePerNightCents),
		TotalOriginal:     h.formatter.Format(r.TotalOriginalCents),
		TotalWithDiscount: h.formatter.Format(r.TotalWithDiscountCents),
		DiscountPercent:   r.DiscountPercent(),
		Installments:      make([]string, 0, len(r.Installments)),
	}
	for _, p := range r.Installments {
		d.Installments = append(d.Installments, p.Label()+": "+h.formatter.Format(p.AmountCents))
	}
	return d
}
