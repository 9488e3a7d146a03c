package tariff

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownSeason is returned when a season name cannot be parsed.
	ErrUnknownSeason = errors.New("unknown season")
	// ErrInvalidTable is returned when a table or override fails validation.
	ErrInvalidTable = errors.New("invalid tariff table")
)

// Season selects the active tariff table and payment schedule.
type Season string

const (
	SeasonSummer Season = "summer"
	SeasonSpring Season = "spring"
)

// Seasons lists every known season in display order.
var Seasons = []Season{SeasonSummer, SeasonSpring}

// ParseSeason parses a season name, case-insensitively.
func ParseSeason(s string) (Season, error) {
	switch Season(strings.ToLower(strings.TrimSpace(s))) {
	case SeasonSummer:
		return SeasonSummer, nil
	case SeasonSpring:
		return SeasonSpring, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSeason, s)
}

// IsValid reports whether s is a known season.
func (s Season) IsValid() bool {
	_, err := ParseSeason(string(s))
	return err == nil
}

// Label returns the customer-facing season name.
func (s Season) Label() string {
	if s == SeasonSpring {
		return "Primavera"
	}
	return "Verano"
}

// Emoji returns the season marker used in share texts.
func (s Season) Emoji() string {
	if s == SeasonSpring {
		return "🌸"
	}
	return "🏖️"
}

// PeopleBand maps a guest count to a nightly price.
type PeopleBand struct {
	People             int   `json:"people"`
	PricePerNightCents int64 `json:"pricePerNightCents"`
}

// LongStayDiscount grants a percentage once nights reach MinNights.
type LongStayDiscount struct {
	MinNights       int `json:"minNights"`
	DiscountPercent int `json:"discountPercent"`
}

// Table is the rate data for one season.
type Table struct {
	Season            Season             `json:"season"`
	PeopleBands       []PeopleBand       `json:"peopleBands"`
	LongStayDiscounts []LongStayDiscount `json:"longStayDiscounts"`
}

// Clone returns a deep copy of the table.
func (t Table) Clone() Table {
	return Table{
		Season:            t.Season,
		PeopleBands:       cloneBands(t.PeopleBands),
		LongStayDiscounts: cloneDiscounts(t.LongStayDiscounts),
	}
}

// Override is a partial replacement of a season's table.
// A nil slice means the field is absent; a non-nil empty slice is present
// but empty. Fields are not omitempty so that an empty list survives a
// JSON round trip.
type Override struct {
	PeopleBands       []PeopleBand       `json:"peopleBands"`
	LongStayDiscounts []LongStayDiscount `json:"longStayDiscounts"`
}

// Clone returns a deep copy preserving the absent/empty distinction.
func (o *Override) Clone() *Override {
	if o == nil {
		return nil
	}
	return &Override{
		PeopleBands:       cloneBands(o.PeopleBands),
		LongStayDiscounts: cloneDiscounts(o.LongStayDiscounts),
	}
}

// Overrides is the persisted blob keyed by season.
type Overrides struct {
	Summer *Override `json:"summer"`
	Spring *Override `json:"spring"`
}

// For returns the override for a season, or nil.
func (o Overrides) For(season Season) *Override {
	switch season {
	case SeasonSummer:
		return o.Summer
	case SeasonSpring:
		return o.Spring
	}
	return nil
}

// With returns a copy of o with the season's override replaced.
// Passing nil clears the season.
func (o Overrides) With(season Season, ov *Override) Overrides {
	next := o.Clone()
	switch season {
	case SeasonSummer:
		next.Summer = ov.Clone()
	case SeasonSpring:
		next.Spring = ov.Clone()
	}
	return next
}

// Clone returns a deep copy of all overrides.
func (o Overrides) Clone() Overrides {
	return Overrides{
		Summer: o.Summer.Clone(),
		Spring: o.Spring.Clone(),
	}
}

func cloneBands(in []PeopleBand) []PeopleBand {
	if in == nil {
		return nil
	}
	out := make([]PeopleBand, len(in))
	copy(out, in)
	return out
}

func cloneDiscounts(in []LongStayDiscount) []LongStayDiscount {
	if in == nil {
		return nil
	}
	out := make([]LongStayDiscount, len(in))
	copy(out, in)
	return out
}
