package quote

import (
	"fmt"

	"github.com/cabanas/quote-service/internal/money"
	"github.com/cabanas/quote-service/internal/tariff"
)

// Installment is one payment step of a season's schedule.
type Installment struct {
	Percent int    `json:"percent"`
	Name    string `json:"name"`
	// Timing is the customer-facing clause following "N° pago P%" in the
	// share text.
	Timing string `json:"timing"`
}

// Label returns the result-screen label, e.g. "Seña (20%)".
func (i Installment) Label() string {
	return fmt.Sprintf("%s (%d%%)", i.Name, i.Percent)
}

// Schedule is the ordered list of installments for a season. Percents must
// add up to 100; the last installment absorbs rounding.
type Schedule struct {
	Season       tariff.Season `json:"season"`
	Installments []Installment `json:"installments"`
}

var schedules = map[tariff.Season]Schedule{
	tariff.SeasonSummer: {
		Season: tariff.SeasonSummer,
		Installments: []Installment{
			{Percent: 20, Name: "Seña", Timing: " dentro de las 72hs de confirmar su reserva"},
			{Percent: 30, Name: "Segundo pago", Timing: " ( Octubre - Noviembre - Diciembre) 1 solo pago"},
			{Percent: 50, Name: "Saldo final", Timing: ". Al llegar en efectivo"},
		},
	},
	tariff.SeasonSpring: {
		Season: tariff.SeasonSpring,
		Installments: []Installment{
			{Percent: 50, Name: "Seña", Timing: " (Seña) dentro de las 72hs de confirmar su reserva"},
			{Percent: 50, Name: "Segundo pago", Timing: ". Al llegar en efectivo"},
		},
	},
}

// ScheduleFor returns the payment schedule of a season. Unknown seasons use
// the summer schedule.
func ScheduleFor(season tariff.Season) Schedule {
	s, ok := schedules[season]
	if !ok {
		s = schedules[tariff.SeasonSummer]
	}
	out := Schedule{Season: s.Season, Installments: make([]Installment, len(s.Installments))}
	copy(out.Installments, s.Installments)
	return out
}

// Split divides total across the installments. Every installment except the
// last is rounded half away from zero; the last takes the remainder, so the
// parts always sum to total.
func (s Schedule) Split(total money.Cents) []money.Cents {
	n := len(s.Installments)
	if n == 0 {
		return nil
	}

	parts := make([]money.Cents, n)
	var assigned money.Cents
	for i := 0; i < n-1; i++ {
		parts[i] = money.PercentOf(total, s.Installments[i].Percent)
		assigned += parts[i]
	}
	parts[n-1] = total - assigned
	return parts
}
