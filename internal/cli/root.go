package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"trade-planner/internal/analysis/indicators"
	"trade-planner/internal/analysis/signals"
	"trade-planner/internal/config"
	"trade-planner/internal/fetch"
	"trade-planner/internal/risk"
	"trade-planner/internal/scan"
	"trade-planner/internal/store"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2024-06-01"
)

// App holds the application dependencies.
type App struct {
	Config  *config.Config
	Logger  zerolog.Logger
	Fetcher fetch.Fetcher
	Scanner *scan.Scanner
	Store   store.Store
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	app.Fetcher = fetch.NewHTTPFetcher(cfg.Fetch, logger)

	assessor := risk.NewAssessor(cfg.Risk)
	enricher := indicators.NewEnricher(0)
	detector := signals.NewDetector()
	app.Scanner = scan.NewScanner(app.Fetcher, enricher, detector, assessor, cfg.Scan.Concurrency, logger)

	dbPath := cfg.Store.Path
	if dbPath == "" {
		dbPath = config.DefaultConfigDir() + "/planner.db"
	}
	planStore, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize store, plan persistence unavailable")
	} else {
		app.Store = planStore
		logger.Debug().Msg("SQLite store initialized")
	}

	rootCmd := &cobra.Command{
		Use:   "planner",
		Short: "Trade Planner - risk assessed trade plans from OHLCV data",
		Long: `Trade Planner analyzes price history, detects directional signals,
and assembles risk bounded trade plans: entry, stop, target, invalidation
and vehicle. When a setup fails qualification it reports every reason
the trade was suppressed instead of a plan.

Use 'planner help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/trade-planner)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newVersionCmd())
	addAnalysisCommands(rootCmd, app)
	addPlanCommands(rootCmd, app)
	addWatchlistCommands(rootCmd, app)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			} else {
				output.Printf("Trade Planner v%s\n", Version)
				output.Dim("Build date: %s", BuildDate)
			}
		},
	}
}
