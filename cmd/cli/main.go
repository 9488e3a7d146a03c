package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cabanas/quote-service/config"
	"github.com/cabanas/quote-service/internal/money"
	"github.com/cabanas/quote-service/internal/storage"
	"github.com/cabanas/quote-service/internal/tariff"
)

var (
	cfgFile string
	verbose bool
	cfg     *config.Config
	logger  *zerolog.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "quote-service",
	Short: "Quote Service CLI - cabin booking quotes and tariff administration",
	Long: `A CLI tool for calculating booking quotes for seasonal cabin rentals and
managing the tariff tables behind them. Quotes use the same active tariffs,
payment schedules and share text as the HTTP API.`,
	SilenceUsage:      true,
	PersistentPreRunE: persistentPreRun,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config/config.yaml or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at the configured level instead of warnings only")
}

func initConfig() {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		// Config is optional for some commands, don't fail here
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
	}
}

// persistentPreRun runs before each command and initializes dependencies
func persistentPreRun(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "help" || cmd.Name() == "completion" {
		return nil
	}
	logger = initLogger()
	return nil
}

// initLogger logs to stderr so command output stays machine readable.
func initLogger() *zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.InfoLevel
		if cfg != nil && cfg.Logging.Level != "" {
			if parsedLevel, err := zerolog.ParseLevel(cfg.Logging.Level); err == nil {
				level = parsedLevel
			}
		}
	}

	var output io.Writer
	if cfg != nil && cfg.Logging.Format == "json" {
		output = os.Stderr
	} else {
		noColor := false
		if cfg != nil {
			noColor = cfg.Logging.NoColor
		}
		output = zerolog.ConsoleWriter{Out: os.Stderr, NoColor: noColor}
	}

	log := zerolog.New(output).Level(level).With().Timestamp().Logger()
	return &log
}

// openOverrides opens the configured storage backend.
func openOverrides(ctx context.Context) (*storage.OverrideStore, func(), error) {
	if cfg == nil {
		return nil, nil, fmt.Errorf("config required but not loaded")
	}
	backend, closeFn, err := storage.New(ctx, cfg.Storage, *logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open storage: %w", err)
	}
	store := storage.NewOverrideStore(backend,
		storage.WithKey(cfg.Storage.OverridesKey),
		storage.WithLogger(*logger),
	)
	return store, closeFn, nil
}

// activeTable returns the season's active table, falling back to the
// built-in table when storage is unavailable.
func activeTable(ctx context.Context, season tariff.Season) tariff.Table {
	store, closeFn, err := openOverrides(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("Using built-in tariffs")
		return tariff.Builtin(season)
	}
	defer closeFn()

	table, err := store.Active(ctx, season)
	if err != nil {
		logger.Warn().Err(err).Msg("Using built-in tariffs")
		return tariff.Builtin(season)
	}
	return table
}

func formatter() *money.Formatter {
	if cfg == nil {
		return money.Default()
	}
	return money.NewFormatter(cfg.Money.Locale, cfg.Money.Symbol)
}

func parseSeasonArg(s string) (tariff.Season, error) {
	season, err := tariff.ParseSeason(s)
	if err != nil {
		return "", fmt.Errorf("%w (valid: summer, spring)", err)
	}
	return season, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
