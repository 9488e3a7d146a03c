package quote

import (
	"github.com/cabanas/quote-service/internal/money"
	"github.com/cabanas/quote-service/internal/tariff"
)

// Suggestion is what the active table proposes for a party and stay.
type Suggestion struct {
	Season              tariff.Season `json:"season"`
	BandPeople          int           `json:"bandPeople,omitempty"`
	PricePerNightCents  money.Cents   `json:"pricePerNightCents"`
	PriceText           string        `json:"priceText,omitempty"`
	StayDiscountPercent int           `json:"stayDiscountPercent,omitempty"`
	HasStayDiscount     bool          `json:"hasStayDiscount"`
	AutoApplyDiscount   bool          `json:"autoApplyDiscount"`
}

// StayDiscountFraction returns the suggested discount as a fraction.
func (s Suggestion) StayDiscountFraction() float64 {
	return float64(s.StayDiscountPercent) / 100
}

// Suggest proposes a nightly price and long-stay discount from the table.
// Zero people yields no price; zero nights yields no discount. In spring the
// discount is applied automatically unless the operator already picked one.
func Suggest(t tariff.Table, people, nights int, discountEdited bool) Suggestion {
	s := Suggestion{Season: t.Season}

	if people > 0 {
		if band, ok := tariff.PickBandForPeople(t, people); ok {
			s.BandPeople = band.People
			s.PricePerNightCents = band.PricePerNightCents
			if band.PricePerNightCents > 0 {
				s.PriceText = money.Default().Number(band.PricePerNightCents)
			}
		}
	}

	if nights > 0 {
		if percent, ok := tariff.PickLongStayDiscount(t, nights); ok {
			s.StayDiscountPercent = percent
			s.HasStayDiscount = true
		}
	}

	s.AutoApplyDiscount = t.Season == tariff.SeasonSpring && s.HasStayDiscount &&
		s.StayDiscountPercent > 0 && !discountEdited

	return s
}
