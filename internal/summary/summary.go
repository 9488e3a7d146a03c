// Package summary renders a computed quote as the text sent to customers.
package summary

import (
	"fmt"
	"strings"

	"github.com/cabanas/quote-service/internal/money"
	"github.com/cabanas/quote-service/internal/quote"
)

const closingNote = "(Por mail enviamos la confirmación de la reserva junto a la factura correspondiente)"

// DateRange is an optional stay period shown in the header.
type DateRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Renderer formats quote results with a money formatter.
type Renderer struct {
	formatter *money.Formatter
}

// NewRenderer creates a renderer; a nil formatter uses the es-AR default.
func NewRenderer(f *money.Formatter) *Renderer {
	if f == nil {
		f = money.Default()
	}
	return &Renderer{formatter: f}
}

var defaultRenderer = NewRenderer(nil)

// Render formats r with the default renderer.
func Render(r quote.Result, dates *DateRange) string {
	return defaultRenderer.Render(r, dates)
}

// Render builds the share text. Every figure is read from r; nothing is
// recomputed except the discount amount, which is the difference of the two
// totals. Installments with a zero amount are left out, numbering keeps the
// schedule position.
func (rd *Renderer) Render(r quote.Result, dates *DateRange) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s Su Presupuesto\n", r.Season.Emoji())
	if dates != nil && dates.From != "" && dates.To != "" {
		fmt.Fprintf(&b, "📅 Del %s al %s\n", dates.From, dates.To)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "✅ Precio por noche %s\n", rd.formatter.Plain(r.PricePerNightCents))
	fmt.Fprintf(&b, "X %d %s\n\n", r.Nights, nightsWord(r.Nights))

	b.WriteString(rd.totalSection(r))
	b.WriteString("\n\n")

	for i, p := range r.Installments {
		if p.AmountCents == 0 {
			continue
		}
		fmt.Fprintf(&b, "📍%d° pago %d%%%s\n\n", i+1, p.Percent, p.Timing)
		fmt.Fprintf(&b, "*%s*\n\n", rd.formatter.Plain(p.AmountCents))
	}

	b.WriteString(closingNote)
	return b.String()
}

func (rd *Renderer) totalSection(r quote.Result) string {
	total := fmt.Sprintf("✅ *Total %s*", rd.formatter.Plain(r.TotalOriginalCents))
	if r.Discount == 0 {
		return total
	}
	return fmt.Sprintf("%s\n*Descuento %s%%: -%s*\n*Total final: %s*",
		total,
		r.DiscountPercent(),
		rd.formatter.Plain(r.DiscountCents()),
		rd.formatter.Plain(r.TotalWithDiscountCents),
	)
}

func nightsWord(n int) string {
	if n > 1 {
		return "noches"
	}
	return "noche"
}
