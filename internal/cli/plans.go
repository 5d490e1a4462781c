package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"trade-planner/internal/models"
	"trade-planner/internal/report"
	"trade-planner/internal/store"
)

// addPlanCommands adds the plans command group.
func addPlanCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "plans",
		Short: "Manage stored trade plans",
	}

	cmd.AddCommand(newPlansListCmd(app))
	cmd.AddCommand(newPlansStatusCmd(app))
	cmd.AddCommand(newSuppressionsCmd(app))

	rootCmd.AddCommand(cmd)
}

func newPlansListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored trade plans",
		Example: `  planner plans list
  planner plans list --symbol AAPL --status PENDING`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				output.Error("Store unavailable")
				return fmt.Errorf("store unavailable")
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			symbol, _ := cmd.Flags().GetString("symbol")
			status, _ := cmd.Flags().GetString("status")
			limit, _ := cmd.Flags().GetInt("limit")

			plans, err := app.Store.GetPlans(ctx, store.PlanFilter{
				Symbol: strings.ToUpper(symbol),
				Status: models.PlanStatus(strings.ToUpper(status)),
				Limit:  limit,
			})
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(plans)
			}
			if len(plans) == 0 {
				output.Dim("No stored plans match.")
				return nil
			}
			for i := range plans {
				output.Printf("%s  [%s]\n", plans[i].ID, plans[i].Status)
				report.PrintPlan(&plans[i])
			}
			return nil
		},
	}

	cmd.Flags().String("symbol", "", "filter by symbol")
	cmd.Flags().String("status", "", "filter by status (PENDING, ACTIVE, EXECUTED, CANCELLED, EXPIRED)")
	cmd.Flags().Int("limit", 20, "maximum plans to list")
	return cmd
}

func newPlansStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status <plan-id> <status>",
		Short: "Update the status of a stored plan",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				output.Error("Store unavailable")
				return fmt.Errorf("store unavailable")
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			status := models.PlanStatus(strings.ToUpper(args[1]))
			switch status {
			case models.PlanPending, models.PlanActive, models.PlanExecuted, models.PlanCancelled, models.PlanExpired:
			default:
				output.Error("Unknown status %q", args[1])
				return fmt.Errorf("unknown status %q", args[1])
			}

			if err := app.Store.UpdatePlanStatus(ctx, args[0], status); err != nil {
				return err
			}
			output.Success("✓ Plan %s marked %s", args[0], status)
			return nil
		},
	}
}

func newSuppressionsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suppressions [symbol]",
		Short: "Show recorded suppression reasons",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				output.Error("Store unavailable")
				return fmt.Errorf("store unavailable")
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			symbol := ""
			if len(args) == 1 {
				symbol = strings.ToUpper(args[0])
			}
			limit, _ := cmd.Flags().GetInt("limit")

			records, err := app.Store.GetSuppressions(ctx, symbol, limit)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(records)
			}
			if len(records) == 0 {
				output.Dim("No suppressions recorded.")
				return nil
			}
			for _, r := range records {
				output.Printf("%s  %-8s [%s] %s\n",
					r.CreatedAt.Format("2006-01-02 15:04"), r.Symbol, r.Code, r.Message)
			}
			return nil
		},
	}

	cmd.Flags().Int("limit", 50, "maximum records to show")
	return cmd
}

// addWatchlistCommands adds the watchlist command group.
func addWatchlistCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "watchlist",
		Short: "Manage the scan watchlist",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <symbol>",
		Short: "Add a symbol to the watchlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return fmt.Errorf("store unavailable")
			}
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			symbol := strings.ToUpper(args[0])
			if err := app.Store.AddToWatchlist(ctx, symbol); err != nil {
				return err
			}
			output.Success("✓ %s added to watchlist", symbol)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <symbol>",
		Short: "Remove a symbol from the watchlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return fmt.Errorf("store unavailable")
			}
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			symbol := strings.ToUpper(args[0])
			if err := app.Store.RemoveFromWatchlist(ctx, symbol); err != nil {
				return err
			}
			output.Success("✓ %s removed from watchlist", symbol)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the watchlist",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return fmt.Errorf("store unavailable")
			}
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			symbols, err := app.Store.GetWatchlist(ctx)
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(symbols)
			}
			if len(symbols) == 0 {
				output.Dim("Watchlist is empty.")
				return nil
			}
			for _, s := range symbols {
				output.Println(s)
			}
			return nil
		},
	})

	rootCmd.AddCommand(cmd)
}
