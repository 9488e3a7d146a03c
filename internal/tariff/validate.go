package tariff

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ValidationError collects per-field problems found in a table or override.
type ValidationError struct {
	fields map[string][]string
}

func newValidationError() *ValidationError {
	return &ValidationError{fields: make(map[string][]string)}
}

func (e *ValidationError) add(field, msg string) {
	e.fields[field] = append(e.fields[field], msg)
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.fields))
	for k := range e.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.fields[k], "; ")))
	}
	return fmt.Sprintf("%s: %s", ErrInvalidTable, strings.Join(parts, ", "))
}

// Unwrap lets errors.Is match ErrInvalidTable.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidTable
}

// Fields returns the problems keyed by field path.
func (e *ValidationError) Fields() map[string][]string {
	return e.fields
}

// AsValidationError extracts a *ValidationError from err, or returns nil.
func AsValidationError(err error) *ValidationError {
	if err == nil {
		return nil
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}

// Warning is a non-fatal data quality finding.
type Warning struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateOverride checks the present fields of an override. Returned
// warnings never block a save; the error is a *ValidationError.
func ValidateOverride(ov *Override) ([]Warning, error) {
	if ov == nil {
		return nil, nil
	}
	verr := newValidationError()
	validateBands(ov.PeopleBands, verr)
	warnings := validateDiscounts(ov.LongStayDiscounts, verr)

	if len(verr.fields) > 0 {
		return warnings, verr
	}
	return warnings, nil
}

// Validate checks a full table; a table must have at least one band.
func Validate(t Table) ([]Warning, error) {
	verr := newValidationError()
	if len(t.PeopleBands) == 0 {
		verr.add("peopleBands", "at least one band is required")
	}
	validateBands(t.PeopleBands, verr)
	warnings := validateDiscounts(t.LongStayDiscounts, verr)

	if len(verr.fields) > 0 {
		return warnings, verr
	}
	return warnings, nil
}

// ValidateOverrides validates both seasons, prefixing fields with the season.
func ValidateOverrides(o Overrides) ([]Warning, error) {
	var warnings []Warning
	verr := newValidationError()

	for _, season := range Seasons {
		w, err := ValidateOverride(o.For(season))
		for _, item := range w {
			item.Field = string(season) + "." + item.Field
			warnings = append(warnings, item)
		}
		if ve := AsValidationError(err); ve != nil {
			for field, msgs := range ve.fields {
				for _, msg := range msgs {
					verr.add(string(season)+"."+field, msg)
				}
			}
		}
	}

	if len(verr.fields) > 0 {
		return warnings, verr
	}
	return warnings, nil
}

func validateBands(bands []PeopleBand, verr *ValidationError) {
	seen := make(map[int]int)
	for i, b := range bands {
		field := fmt.Sprintf("peopleBands[%d]", i)
		if b.People <= 0 {
			verr.add(field, "people must be positive")
		}
		if b.PricePerNightCents < 0 {
			verr.add(field, "pricePerNightCents must not be negative")
		}
		if prev, ok := seen[b.People]; ok && b.People > 0 {
			verr.add(field, fmt.Sprintf("duplicates people=%d of peopleBands[%d]", b.People, prev))
			continue
		}
		seen[b.People] = i
	}
}

// validateDiscounts reports hard errors and, for well-formed tiers, warns
// when a lower threshold grants a higher percent than a higher threshold.
// The resolver picks by threshold, so such data surprises operators.
func validateDiscounts(tiers []LongStayDiscount, verr *ValidationError) []Warning {
	valid := make([]LongStayDiscount, 0, len(tiers))
	for i, d := range tiers {
		field := fmt.Sprintf("longStayDiscounts[%d]", i)
		ok := true
		if d.MinNights <= 0 {
			verr.add(field, "minNights must be positive")
			ok = false
		}
		if d.DiscountPercent < 0 || d.DiscountPercent > 100 {
			verr.add(field, "discountPercent must be between 0 and 100")
			ok = false
		}
		if ok {
			valid = append(valid, d)
		}
	}

	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].MinNights < valid[j].MinNights
	})

	var warnings []Warning
	for i := 1; i < len(valid); i++ {
		lower, higher := valid[i-1], valid[i]
		if lower.DiscountPercent > higher.DiscountPercent {
			warnings = append(warnings, Warning{
				Field: "longStayDiscounts",
				Message: fmt.Sprintf(
					"tier minNights=%d grants %d%% but longer tier minNights=%d grants only %d%%",
					lower.MinNights, lower.DiscountPercent, higher.MinNights, higher.DiscountPercent,
				),
			})
		}
	}
	return warnings
}
