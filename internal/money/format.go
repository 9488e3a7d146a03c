package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// DefaultLocale is the locale used for grouping whole currency units.
	DefaultLocale = "es-AR"
	// DefaultSymbol is the currency symbol prefixed to formatted amounts.
	DefaultSymbol = "$"
)

// Formatter renders cents as whole-unit currency text for a locale.
type Formatter struct {
	printer *message.Printer
	symbol  string
}

// NewFormatter creates a formatter for the given BCP 47 locale and symbol.
// An unparseable locale falls back to DefaultLocale.
func NewFormatter(locale, symbol string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.MustParse(DefaultLocale)
	}
	if symbol == "" {
		symbol = DefaultSymbol
	}
	return &Formatter{
		printer: message.NewPrinter(tag),
		symbol:  symbol,
	}
}

var defaultFormatter = NewFormatter(DefaultLocale, DefaultSymbol)

// Default returns the es-AR formatter.
func Default() *Formatter {
	return defaultFormatter
}

// Format renders cents as "$ 150.000": rounded to whole units, grouped,
// no fractional digits. Zero and negative amounts render as "$ 0".
func (f *Formatter) Format(cents Cents) string {
	return f.symbol + " " + f.Number(cents)
}

// Plain renders cents as "$150.000", the form used in share texts and
// copied values.
func (f *Formatter) Plain(cents Cents) string {
	return f.symbol + f.Number(cents)
}

// Number renders the grouped whole-unit amount without a symbol.
func (f *Formatter) Number(cents Cents) string {
	units := ToWholeUnits(cents)
	if units < 0 {
		units = 0
	}
	return f.printer.Sprintf("%d", units)
}

// FormatAsCurrency formats cents with the default formatter.
func FormatAsCurrency(cents Cents) string {
	return defaultFormatter.Format(cents)
}

// FormatPlain formats cents with the default formatter, without the space
// after the symbol.
func FormatPlain(cents Cents) string {
	return defaultFormatter.Plain(cents)
}
