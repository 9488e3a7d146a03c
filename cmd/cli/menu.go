package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cabanas/quote-service/internal/money"
	"github.com/cabanas/quote-service/internal/quote"
	"github.com/cabanas/quote-service/internal/tariff"
)

var (
	menuSeason string
	menuPeople string
	menuNights string
)

// menuCmd represents the menu command
var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Show the discount choices and tariff suggestion for a season",
	Example: `  quote-service menu --season spring
  quote-service menu --season spring --people 3 --nights 5`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	rootCmd.AddCommand(menuCmd)

	menuCmd.Flags().StringVar(&menuSeason, "season", "summer", "Season (summer or spring)")
	menuCmd.Flags().StringVar(&menuPeople, "people", "", "Number of guests for the price suggestion")
	menuCmd.Flags().StringVar(&menuNights, "nights", "", "Number of nights for the long-stay suggestion")
}

func runMenu(cmd *cobra.Command, args []string) error {
	season, err := parseSeasonArg(menuSeason)
	if err != nil {
		return err
	}
	table := activeTable(context.Background(), season)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "DISCOUNT\tFRACTION")
	fmt.Fprintln(w, "--------\t--------")
	fmt.Fprintf(w, "%s\t%.2f\n", "Sin descuento", 0.0)
	for _, opt := range tariff.DiscountMenu(table, season) {
		fmt.Fprintf(w, "%s\t%.2f\n", opt.Label, opt.Fraction)
	}

	people := money.ParseCount(menuPeople)
	nights := money.ParseCount(menuNights)
	if people > 0 || nights > 0 {
		s := quote.Suggest(table, people, nights, false)
		fmt.Fprintln(w, "\t")
		if s.PricePerNightCents > 0 {
			fmt.Fprintf(w, "Precio sugerido (%d pers.)\t%s\n", s.BandPeople, formatter().Format(s.PricePerNightCents))
		}
		if s.HasStayDiscount {
			applied := "sugerido"
			if s.AutoApplyDiscount {
				applied = "se aplica automáticamente"
			}
			fmt.Fprintf(w, "Descuento por estadía\t%d%% (%s)\n", s.StayDiscountPercent, applied)
		}
	}
	return w.Flush()
}
