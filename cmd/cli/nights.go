package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cabanas/quote-service/internal/quote"
)

// nightsCmd represents the nights command
var nightsCmd = &cobra.Command{
	Use:   "nights <from> <to>",
	Short: "Count the nights between two dates",
	Long: `Count the nights between a check-in and a check-out date (DD/MM/YYYY).
Digits typed without slashes are formatted first, so 15122024 reads as
15/12/2024. Malformed or reversed dates count as 0 nights.`,
	Example: `  quote-service nights 15/12/2024 18/12/2024
  quote-service nights 15122024 18122024`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		from := quote.FormatDateInput(args[0])
		to := quote.FormatDateInput(args[1])
		fmt.Fprintln(cmd.OutOrStdout(), quote.NightsBetweenDates(from, to))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(nightsCmd)
}
