package main

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cabanas/quote-service/internal/quote"
	"github.com/cabanas/quote-service/internal/summary"
)

var (
	quoteSeason   string
	quotePeople   string
	quotePrice    string
	quoteNights   string
	quoteFrom     string
	quoteTo       string
	quoteDiscount float64
	quoteOutput   string
)

// quoteCmd represents the quote command
var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Calculate a booking quote",
	Long: `Calculate a booking quote from the season's active tariffs. The nightly
price defaults to the rate band for the party size; in spring the long-stay
discount for the stay is applied unless --discount is given. When --from and
--to are both set they determine the number of nights.`,
	Example: `  quote-service quote --season summer --people 4 --price 120.000 --nights 3
  quote-service quote --season spring --people 2 --from 10/10/2025 --to 15/10/2025
  quote-service quote --people 6 --nights 7 --discount 0.15 --output summary`,
	Args: cobra.NoArgs,
	RunE: runQuote,
}

func init() {
	rootCmd.AddCommand(quoteCmd)

	quoteCmd.Flags().StringVar(&quoteSeason, "season", "summer", "Season (summer or spring)")
	quoteCmd.Flags().StringVar(&quotePeople, "people", "", "Number of guests")
	quoteCmd.Flags().StringVar(&quotePrice, "price", "", "Price per night, e.g. 120.000 (defaults to the tariff band)")
	quoteCmd.Flags().StringVar(&quoteNights, "nights", "", "Number of nights")
	quoteCmd.Flags().StringVar(&quoteFrom, "from", "", "Check-in date (DD/MM/YYYY)")
	quoteCmd.Flags().StringVar(&quoteTo, "to", "", "Check-out date (DD/MM/YYYY)")
	quoteCmd.Flags().Float64Var(&quoteDiscount, "discount", 0, "Discount as a fraction, e.g. 0.1")
	quoteCmd.Flags().StringVarP(&quoteOutput, "output", "o", "text", "Output format: text, json or summary")
}

func runQuote(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	season, err := parseSeasonArg(quoteSeason)
	if err != nil {
		return err
	}
	switch quoteOutput {
	case "text", "json", "summary":
	default:
		return fmt.Errorf("invalid output format %q (valid: text, json, summary)", quoteOutput)
	}

	session := quote.NewSession(activeTable(ctx, season))
	session.Fill(quote.Form{
		People:   quotePeople,
		Nights:   quoteNights,
		Price:    quotePrice,
		DateFrom: quoteFrom,
		DateTo:   quoteTo,
	})
	if cmd.Flags().Changed("discount") {
		session.SetDiscount(quoteDiscount)
	}

	res, err := session.Calculate()
	if err != nil {
		if errors.Is(err, quote.ErrRejected) {
			return fmt.Errorf("cannot calculate quote: %w (set --people and --nights or --from/--to, and a price if the tariff has none)", err)
		}
		return err
	}

	var dates *summary.DateRange
	if from, to, ok := session.Form().DateRange(); ok {
		dates = &summary.DateRange{From: from, To: to}
	}
	text := summary.NewRenderer(formatter()).Render(res, dates)

	out := cmd.OutOrStdout()
	switch quoteOutput {
	case "json":
		return printJSON(out, struct {
			Result  quote.Result `json:"result"`
			Summary string       `json:"summary"`
		}{res, text})
	case "summary":
		fmt.Fprintln(out, text)
		return nil
	}

	f := formatter()
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(w, "Temporada\t%s %s\n", res.Season.Emoji(), res.Season.Label())
	fmt.Fprintf(w, "Personas\t%d\n", res.People)
	fmt.Fprintf(w, "Noches\t%d\n", res.Nights)
	fmt.Fprintf(w, "Precio por noche\t%s\n", f.Format(res.PricePerNightCents))
	fmt.Fprintf(w, "Total\t%s\n", f.Format(res.TotalOriginalCents))
	if res.Discount > 0 {
		fmt.Fprintf(w, "Descuento %s%%\t-%s\n", res.DiscountPercent(), f.Format(res.DiscountCents()))
		fmt.Fprintf(w, "Total final\t%s\n", f.Format(res.TotalWithDiscountCents))
	}
	fmt.Fprintln(w, "\t")
	for _, p := range res.Installments {
		fmt.Fprintf(w, "%s\t%s\n", p.Label(), f.Format(p.AmountCents))
	}
	return w.Flush()
}
