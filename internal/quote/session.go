package quote

import (
	"strconv"

	"github.com/cabanas/quote-service/internal/tariff"
)

// Session is the in-progress state of one operator's quote: the active
// table, the form, the last result and whether price or discount were
// typed by hand. A Session is not safe for concurrent use.
type Session struct {
	table          tariff.Table
	form           Form
	result         *Result
	suggestion     Suggestion
	priceEdited    bool
	discountEdited bool
}

// NewSession starts a session on the given active table.
func NewSession(table tariff.Table) *Session {
	s := &Session{table: table.Clone()}
	s.form.Season = table.Season
	return s
}

// Season returns the session's season.
func (s *Session) Season() tariff.Season {
	return s.table.Season
}

// Table returns a copy of the active table.
func (s *Session) Table() tariff.Table {
	return s.table.Clone()
}

// Form returns a copy of the current form.
func (s *Session) Form() Form {
	return s.form
}

// Result returns the last computed result, if any.
func (s *Session) Result() (Result, bool) {
	if s.result == nil {
		return Result{}, false
	}
	return *s.result, true
}

// Suggestion returns the current table suggestion.
func (s *Session) Suggestion() Suggestion {
	return s.suggestion
}

// SwitchSeason moves to another season's table and drops every
// season-specific value, dates included.
func (s *Session) SwitchSeason(table tariff.Table) {
	*s = Session{table: table.Clone()}
	s.form.Season = table.Season
}

// SetTable replaces the active table of the current season, e.g. after the
// overrides changed, and refreshes the suggestions.
func (s *Session) SetTable(table tariff.Table) {
	table.Season = s.table.Season
	s.table = table.Clone()
	s.refresh()
}

// Clear resets the form and result but keeps the stay dates.
func (s *Session) Clear() {
	s.form.People = ""
	s.form.Nights = ""
	s.form.Price = ""
	s.form.Discount = 0
	s.result = nil
	s.priceEdited = false
	s.discountEdited = false
	if s.form.HasDates() {
		s.form.Nights = strconv.Itoa(NightsBetweenDates(s.form.DateFrom, s.form.DateTo))
	}
	s.refresh()
}

// SetPeople updates the guest count; only digits are kept.
func (s *Session) SetPeople(raw string) {
	s.form.People = digitsOnly(raw)
	s.refresh()
}

// SetNights updates the nights field. Typing a different value discards the
// stay dates.
func (s *Session) SetNights(raw string) {
	cleaned := digitsOnly(raw)
	if cleaned != s.form.Nights {
		s.form.DateFrom = ""
		s.form.DateTo = ""
	}
	s.form.Nights = cleaned
	s.refresh()
}

// SetDates sets the stay dates, auto-formatted, and derives the nights
// once both are present.
func (s *Session) SetDates(from, to string) {
	s.form.DateFrom = FormatDateInput(from)
	s.form.DateTo = FormatDateInput(to)
	if s.form.HasDates() {
		s.form.Nights = strconv.Itoa(NightsBetweenDates(s.form.DateFrom, s.form.DateTo))
	}
	s.refresh()
}

// SetPrice records a hand-typed nightly price.
func (s *Session) SetPrice(raw string) {
	s.form.Price = priceChars(raw)
	s.priceEdited = true
}

// SetDiscount records a hand-picked discount and recomputes an existing
// result.
func (s *Session) SetDiscount(fraction float64) {
	s.form.Discount = clampFraction(fraction)
	s.discountEdited = true
	if s.result != nil && s.form.CanCalculate() {
		_, _ = s.Calculate()
	}
}

// Fill enters a whole form in the order an operator types it: people, then
// dates or nights, then an explicit price and discount when given. Empty
// price and zero discount leave the table suggestions in place.
func (s *Session) Fill(f Form) {
	s.SetPeople(f.People)
	if f.HasDates() {
		s.SetDates(f.DateFrom, f.DateTo)
	} else {
		s.SetNights(f.Nights)
	}
	if f.Price != "" {
		s.SetPrice(f.Price)
	}
	if f.Discount > 0 {
		s.SetDiscount(f.Discount)
	}
}

// Calculate computes the quote from the form. A rejected form clears the
// previous result.
func (s *Session) Calculate() (Result, error) {
	res, err := Calculate(s.form.Input())
	if err != nil {
		s.result = nil
		return Result{}, err
	}
	s.result = &res
	return res, nil
}

func (s *Session) refresh() {
	people := s.form.PeopleCount()
	nights := s.form.NightsCount()
	s.suggestion = Suggest(s.table, people, nights, s.discountEdited)

	if s.suggestion.PricePerNightCents > 0 && (!s.priceEdited || s.form.Price == "") {
		s.form.Price = s.suggestion.PriceText
	}
	if s.suggestion.AutoApplyDiscount {
		s.form.Discount = s.suggestion.StayDiscountFraction()
	}
}

func digitsOnly(s string) string {
	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b = append(b, s[i])
		}
	}
	return string(b)
}

func priceChars(s string) string {
	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= '0' && c <= '9') || c == '.' || c == ',' {
			b = append(b, c)
		}
	}
	return string(b)
}
