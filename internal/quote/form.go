package quote

import (
	"github.com/cabanas/quote-service/internal/money"
	"github.com/cabanas/quote-service/internal/tariff"
)

// Form holds the raw text of a quote request as typed by an operator.
// Counts and prices stay strings until Input is built so that partially
// typed values round-trip unchanged.
type Form struct {
	People   string        `json:"people"`
	Nights   string        `json:"nights"`
	Price    string        `json:"pricePerNight"`
	DateFrom string        `json:"dateFrom"`
	DateTo   string        `json:"dateTo"`
	Discount float64       `json:"discount"`
	Season   tariff.Season `json:"season"`
}

// HasDates reports whether both stay dates are filled in.
func (f Form) HasDates() bool {
	return f.DateFrom != "" && f.DateTo != ""
}

// PeopleCount parses the people field; non-digits are ignored.
func (f Form) PeopleCount() int {
	return money.ParseCount(f.People)
}

// NightsCount returns the nights derived from the dates when both are set,
// otherwise the parsed nights field.
func (f Form) NightsCount() int {
	if f.HasDates() {
		return NightsBetweenDates(f.DateFrom, f.DateTo)
	}
	return money.ParseCount(f.Nights)
}

// PriceCents parses the nightly price field.
func (f Form) PriceCents() money.Cents {
	return money.ParseToCents(f.Price)
}

// CanCalculate reports whether the form holds enough data for a quote.
func (f Form) CanCalculate() bool {
	return f.PriceCents() > 0 && f.NightsCount() > 0 && f.PeopleCount() > 0
}

// Input converts the form into an engine input.
func (f Form) Input() Input {
	season := f.Season
	if !season.IsValid() {
		season = tariff.SeasonSummer
	}
	return Input{
		PricePerNightCents: f.PriceCents(),
		Nights:             f.NightsCount(),
		People:             f.PeopleCount(),
		Discount:           f.Discount,
		Season:             season,
	}
}

// DateRange returns the stay dates when both are set.
func (f Form) DateRange() (from, to string, ok bool) {
	if !f.HasDates() {
		return "", "", false
	}
	return f.DateFrom, f.DateTo, true
}
