package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cabanas/quote-service/internal/money"
	"github.com/cabanas/quote-service/internal/spreadsheet"
	"github.com/cabanas/quote-service/internal/storage"
	"github.com/cabanas/quote-service/internal/tariff"
)

var (
	tariffsJSON   bool
	tariffsFile   string
	tariffsOut    string
	tariffsDryRun bool
)

// tariffsCmd groups the tariff administration commands
var tariffsCmd = &cobra.Command{
	Use:   "tariffs",
	Short: "Inspect and edit the tariff tables",
	Long: `Inspect and edit the per-season tariff tables. Edits are stored as
overrides on top of the built-in tables: a season's bands are replaced only
by a non-empty list, while an empty discount list disables long-stay
discounts for that season.`,
}

var tariffsShowCmd = &cobra.Command{
	Use:   "show <season>",
	Short: "Show the active tariff table of a season",
	Args:  cobra.ExactArgs(1),
	RunE:  runTariffsShow,
}

var tariffsSetCmd = &cobra.Command{
	Use:     "set <season> --file override.json",
	Short:   "Replace a season's override from a JSON file",
	Example: `  quote-service tariffs set spring --file spring.json`,
	Args:    cobra.ExactArgs(1),
	RunE:    runTariffsSet,
}

var tariffsResetCmd = &cobra.Command{
	Use:   "reset <season>",
	Short: "Drop a season's override so the built-in table applies",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		season, err := parseSeasonArg(args[0])
		if err != nil {
			return err
		}
		return withStore(func(ctx context.Context, store *storage.OverrideStore) error {
			if err := store.ResetSeason(ctx, season); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reset %s tariffs to the built-in table\n", season)
			return nil
		})
	},
}

var tariffsSetBandCmd = &cobra.Command{
	Use:     "set-band <season> <people> <price>",
	Short:   "Add a rate band or change its nightly price",
	Example: `  quote-service tariffs set-band summer 8 170.000`,
	Args:    cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		season, err := parseSeasonArg(args[0])
		if err != nil {
			return err
		}
		band := tariff.PeopleBand{People: money.ParseCount(args[1]), PricePerNightCents: money.ParseToCents(args[2])}
		return updateOverrides(cmd, season, func(o tariff.Overrides) (tariff.Overrides, error) {
			return o.WithBand(season, band), nil
		})
	},
}

var tariffsRemoveBandCmd = &cobra.Command{
	Use:   "remove-band <season> <people>",
	Short: "Remove the rate band for a guest count",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		season, err := parseSeasonArg(args[0])
		if err != nil {
			return err
		}
		people := money.ParseCount(args[1])
		return updateOverrides(cmd, season, func(o tariff.Overrides) (tariff.Overrides, error) {
			next, ok := o.WithoutBand(season, people)
			if !ok {
				return o, fmt.Errorf("no %s band for %d people", season, people)
			}
			return next, nil
		})
	},
}

var tariffsSetDiscountCmd = &cobra.Command{
	Use:     "set-discount <season> <min-nights> <percent>",
	Short:   "Add a long-stay discount tier or change its percent",
	Example: `  quote-service tariffs set-discount spring 10 20`,
	Args:    cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		season, err := parseSeasonArg(args[0])
		if err != nil {
			return err
		}
		tier := tariff.LongStayDiscount{MinNights: money.ParseCount(args[1]), DiscountPercent: money.ParseCount(args[2])}
		return updateOverrides(cmd, season, func(o tariff.Overrides) (tariff.Overrides, error) {
			return o.WithDiscount(season, tier), nil
		})
	},
}

var tariffsRemoveDiscountCmd = &cobra.Command{
	Use:   "remove-discount <season> <min-nights>",
	Short: "Remove a long-stay discount tier",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		season, err := parseSeasonArg(args[0])
		if err != nil {
			return err
		}
		minNights := money.ParseCount(args[1])
		return updateOverrides(cmd, season, func(o tariff.Overrides) (tariff.Overrides, error) {
			next, ok := o.WithoutDiscount(season, minNights)
			if !ok {
				return o, fmt.Errorf("no %s discount tier for %d nights", season, minNights)
			}
			return next, nil
		})
	},
}

var tariffsExportCmd = &cobra.Command{
	Use:   "export <season>",
	Short: "Export the active table as JSON or XLSX",
	Long: `Export the active table of a season. The format follows the --out
extension: .xlsx writes a workbook with Bands and Discounts sheets (prices in
whole pesos), anything else writes JSON. Without --out, JSON goes to stdout.`,
	Example: `  quote-service tariffs export summer --out verano.xlsx
  quote-service tariffs export spring > primavera.json`,
	Args: cobra.ExactArgs(1),
	RunE: runTariffsExport,
}

var tariffsImportCmd = &cobra.Command{
	Use:   "import <season> <file>",
	Short: "Replace a season's override from a JSON or XLSX file",
	Long: `Replace a season's override from a file exported with "tariffs export"
or edited by hand. XLSX rows that cannot be parsed are reported and skipped;
a missing sheet keeps the built-in data for that list.`,
	Args: cobra.ExactArgs(2),
	RunE: runTariffsImport,
}

func init() {
	rootCmd.AddCommand(tariffsCmd)
	tariffsCmd.AddCommand(
		tariffsShowCmd,
		tariffsSetCmd,
		tariffsResetCmd,
		tariffsSetBandCmd,
		tariffsRemoveBandCmd,
		tariffsSetDiscountCmd,
		tariffsRemoveDiscountCmd,
		tariffsExportCmd,
		tariffsImportCmd,
	)

	tariffsShowCmd.Flags().BoolVar(&tariffsJSON, "json", false, "Print the table as JSON")
	tariffsSetCmd.Flags().StringVar(&tariffsFile, "file", "", "JSON file with peopleBands and/or longStayDiscounts")
	_ = tariffsSetCmd.MarkFlagRequired("file")
	tariffsExportCmd.Flags().StringVar(&tariffsOut, "out", "", "Output file (.xlsx or .json)")
	tariffsImportCmd.Flags().BoolVar(&tariffsDryRun, "dry-run", false, "Parse and validate without saving")
}

func withStore(fn func(ctx context.Context, store *storage.OverrideStore) error) error {
	ctx := context.Background()
	store, closeFn, err := openOverrides(ctx)
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(ctx, store)
}

func updateOverrides(cmd *cobra.Command, season tariff.Season, fn func(tariff.Overrides) (tariff.Overrides, error)) error {
	return withStore(func(ctx context.Context, store *storage.OverrideStore) error {
		warnings, err := store.Update(ctx, fn)
		if err != nil {
			return describeError(err)
		}
		printWarnings(cmd.ErrOrStderr(), warnings)

		table, err := store.Active(ctx, season)
		if err != nil {
			return err
		}
		return displayTable(cmd.OutOrStdout(), table, true)
	})
}

func runTariffsShow(cmd *cobra.Command, args []string) error {
	season, err := parseSeasonArg(args[0])
	if err != nil {
		return err
	}
	return withStore(func(ctx context.Context, store *storage.OverrideStore) error {
		o, err := store.Load(ctx)
		if err != nil {
			return err
		}
		table := tariff.Active(season, o)
		if tariffsJSON {
			return printJSON(cmd.OutOrStdout(), table)
		}
		return displayTable(cmd.OutOrStdout(), table, o.For(season) != nil)
	})
}

func runTariffsSet(cmd *cobra.Command, args []string) error {
	season, err := parseSeasonArg(args[0])
	if err != nil {
		return err
	}
	data, err := os.ReadFile(tariffsFile)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", tariffsFile, err)
	}
	ov, err := decodeOverride(data)
	if err != nil {
		return err
	}
	return saveOverride(cmd, season, ov)
}

func runTariffsExport(cmd *cobra.Command, args []string) error {
	season, err := parseSeasonArg(args[0])
	if err != nil {
		return err
	}
	table := activeTable(context.Background(), season)

	if tariffsOut == "" || tariffsOut == "-" {
		return printJSON(cmd.OutOrStdout(), table)
	}

	var content []byte
	if isXLSX(tariffsOut) {
		content, err = spreadsheet.Export(table)
	} else {
		content, err = json.MarshalIndent(table, "", "  ")
	}
	if err != nil {
		return err
	}
	if err := os.WriteFile(tariffsOut, content, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tariffsOut, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %s tariffs to %s\n", season, tariffsOut)
	return nil
}

func runTariffsImport(cmd *cobra.Command, args []string) error {
	season, err := parseSeasonArg(args[0])
	if err != nil {
		return err
	}
	path := args[1]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var ov *tariff.Override
	if isXLSX(path) {
		res, err := spreadsheet.Import(data)
		if err != nil {
			return err
		}
		for _, rowErr := range res.Errors {
			fmt.Fprintf(cmd.ErrOrStderr(), "skipped: %s\n", rowErr.Error())
		}
		ov = res.Override
	} else {
		if ov, err = decodeOverride(data); err != nil {
			return err
		}
	}

	if tariffsDryRun {
		warnings, err := tariff.ValidateOverride(ov)
		if err != nil {
			return describeError(err)
		}
		printWarnings(cmd.ErrOrStderr(), warnings)
		return displayTable(cmd.OutOrStdout(), tariff.MergeOverride(tariff.Builtin(season), ov), true)
	}
	return saveOverride(cmd, season, ov)
}

func saveOverride(cmd *cobra.Command, season tariff.Season, ov *tariff.Override) error {
	return withStore(func(ctx context.Context, store *storage.OverrideStore) error {
		warnings, err := store.SetSeason(ctx, season, ov)
		if err != nil {
			return describeError(err)
		}
		printWarnings(cmd.ErrOrStderr(), warnings)

		table, err := store.Active(ctx, season)
		if err != nil {
			return err
		}
		return displayTable(cmd.OutOrStdout(), table, true)
	})
}

// decodeOverride accepts either an override or a full exported table.
func decodeOverride(data []byte) (*tariff.Override, error) {
	var ov tariff.Override
	if err := json.Unmarshal(data, &ov); err != nil {
		return nil, fmt.Errorf("invalid override JSON: %w", err)
	}
	return &ov, nil
}

func describeError(err error) error {
	verr := tariff.AsValidationError(err)
	if verr == nil {
		return err
	}
	fields := verr.Fields()
	names := make([]string, 0, len(fields))
	for field := range fields {
		names = append(names, field)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("invalid tariffs:")
	for _, field := range names {
		for _, msg := range fields[field] {
			fmt.Fprintf(&b, "\n  %s: %s", field, msg)
		}
	}
	return fmt.Errorf("%s", b.String())
}

func printWarnings(w io.Writer, warnings []tariff.Warning) {
	for _, warn := range warnings {
		fmt.Fprintf(w, "warning: %s: %s\n", warn.Field, warn.Message)
	}
}

func displayTable(out io.Writer, t tariff.Table, overridden bool) error {
	f := formatter()
	source := "built-in"
	if overridden {
		source = "override"
	}

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(w, "%s %s (%s)\n", t.Season.Emoji(), t.Season.Label(), source)
	fmt.Fprintln(w, "PEOPLE\tPRICE PER NIGHT")
	fmt.Fprintln(w, "------\t---------------")
	for _, b := range t.PeopleBands {
		fmt.Fprintf(w, "%d\t%s\n", b.People, f.Format(b.PricePerNightCents))
	}
	fmt.Fprintln(w, "\t")
	fmt.Fprintln(w, "MIN NIGHTS\tDISCOUNT")
	fmt.Fprintln(w, "----------\t--------")
	if len(t.LongStayDiscounts) == 0 {
		fmt.Fprintln(w, "-\t-")
	}
	for _, d := range t.LongStayDiscounts {
		fmt.Fprintf(w, "%d\t%d%%\n", d.MinNights, d.DiscountPercent)
	}
	return w.Flush()
}

func isXLSX(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xlsx")
}
