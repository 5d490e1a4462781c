package cli

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"trade-planner/internal/logging"
	"trade-planner/internal/models"
	"trade-planner/internal/report"
)

// addAnalysisCommands adds the analyze and scan commands.
func addAnalysisCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newAnalyzeCmd(app))
	rootCmd.AddCommand(newScanCmd(app))
}

func newAnalyzeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <symbol>",
		Short: "Run the risk pipeline for a single symbol",
		Long: `Fetch price history, compute indicators, detect signals and run the
risk assessment pipeline. Prints either a trade plan or every reason
the setup was suppressed.`,
		Example: `  planner analyze AAPL
  planner analyze MSFT --save
  planner analyze NVDA --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			defer cancel()

			symbol := strings.ToUpper(args[0])
			save, _ := cmd.Flags().GetBool("save")

			result, err := app.Scanner.Analyze(ctx, symbol)
			if err != nil {
				output.Error("Analysis failed: %v", err)
				return err
			}

			if save && app.Store != nil {
				if err := persistResult(ctx, app, &result); err != nil {
					output.Warn("Could not save result: %v", err)
				}
			}

			if result.HasTrades {
				plan := result.TradePlans[0]
				logging.LogPlan(app.Logger, symbol, string(plan.Bias), string(plan.Timeframe), string(plan.Vehicle), plan.RiskRewardRatio)
			} else {
				codes := make([]string, 0, len(result.AllSuppressions))
				for _, r := range result.AllSuppressions {
					codes = append(codes, string(r.Code))
				}
				logging.LogSuppression(app.Logger, symbol, codes)
			}

			if output.IsJSON() {
				return output.JSON(result.ToMap())
			}
			report.PrintResult(&result)
			return nil
		},
	}

	cmd.Flags().Bool("save", false, "persist the plan or suppressions to the store")
	return cmd
}

func newScanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [symbols...]",
		Short: "Scan multiple symbols for qualified setups",
		Long: `Run the full pipeline across many symbols concurrently and rank the
results by quality and risk:reward. With no arguments the configured
scan list (or the stored watchlist) is used.`,
		Example: `  planner scan AAPL MSFT NVDA AMZN
  planner scan --watchlist
  planner scan --tradeable-only`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()

			useWatchlist, _ := cmd.Flags().GetBool("watchlist")
			tradeableOnly, _ := cmd.Flags().GetBool("tradeable-only")
			save, _ := cmd.Flags().GetBool("save")

			symbols := make([]string, 0, len(args))
			for _, arg := range args {
				symbols = append(symbols, strings.ToUpper(arg))
			}
			if useWatchlist {
				if app.Store == nil {
					output.Error("Store unavailable, cannot read watchlist")
					return nil
				}
				watched, err := app.Store.GetWatchlist(ctx)
				if err != nil {
					return err
				}
				symbols = append(symbols, watched...)
			}
			if len(symbols) == 0 {
				symbols = app.Config.Scan.Symbols
			}
			if len(symbols) == 0 {
				output.Warn("No symbols to scan. Pass symbols, configure scan.symbols, or use --watchlist.")
				return nil
			}

			output.Info("Scanning %d symbols...", len(symbols))
			results := app.Scanner.Scan(ctx, symbols)

			if tradeableOnly {
				filtered := results[:0]
				for _, r := range results {
					if r.HasTrades {
						filtered = append(filtered, r)
					}
				}
				results = filtered
			}

			if save && app.Store != nil {
				for i := range results {
					if err := persistResult(ctx, app, &results[i]); err != nil {
						output.Warn("Could not save %s: %v", results[i].Symbol, err)
					}
				}
			}

			if output.IsJSON() {
				maps := make([]map[string]interface{}, 0, len(results))
				for i := range results {
					maps = append(maps, results[i].ToMap())
				}
				return output.JSON(maps)
			}
			report.PrintScanSummary(results)
			return nil
		},
	}

	cmd.Flags().Bool("watchlist", false, "scan the stored watchlist")
	cmd.Flags().Bool("tradeable-only", false, "only show symbols with a qualified plan")
	cmd.Flags().Bool("save", false, "persist plans and suppressions to the store")
	return cmd
}

func persistResult(ctx context.Context, app *App, result *models.RiskAnalysisResult) error {
	if result.HasTrades {
		for i := range result.TradePlans {
			if err := app.Store.SavePlan(ctx, &result.TradePlans[i]); err != nil {
				return err
			}
		}
		return nil
	}
	return app.Store.SaveSuppressions(ctx, result)
}
