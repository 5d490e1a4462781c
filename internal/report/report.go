// Package report renders analysis results for the terminal.
package report

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"trade-planner/internal/models"
	"trade-planner/pkg/utils"
)

// PrintResult renders one analysis result: the trade plan when the
// setup qualified, otherwise every suppression reason.
func PrintResult(result *models.RiskAnalysisResult) {
	color.Cyan("📊 %s", result.Symbol)

	a := result.Assessment
	fmt.Printf("  Price: %s  Bias: %s  Timeframe: %s\n", utils.FormatPrice(a.Price), a.Bias, a.Timeframe)
	fmt.Printf("  ATR: %.2f (%.2f%%)  Regime: %s  ADX: %.1f\n",
		a.Metrics.ATR, a.Metrics.ATRPercent, a.Metrics.Regime, a.Metrics.ADX)

	if !result.HasTrades {
		color.Yellow("  No trade issued:")
		for _, reason := range result.AllSuppressions {
			fmt.Printf("    [%s] %s\n", reason.Code, reason.Message)
		}
		return
	}

	for _, plan := range result.TradePlans {
		PrintPlan(&plan)
	}
}

// PrintPlan renders a single trade plan.
func PrintPlan(plan *models.TradePlan) {
	header := color.GreenString("✓ %s %s", plan.Bias, plan.Timeframe)
	if plan.Quality == models.QualityHigh {
		header += color.GreenString(" [HIGH quality]")
	}
	fmt.Println("  " + header)

	fmt.Printf("    Entry: %s  Stop: %s  Target: %s\n",
		utils.FormatPrice(plan.EntryPrice), utils.FormatPrice(plan.StopPrice), utils.FormatPrice(plan.TargetPrice))
	if plan.InvalidationPrice > 0 {
		fmt.Printf("    Invalidation: %.2f\n", plan.InvalidationPrice)
	}
	fmt.Printf("    R:R %.2f  Expected move %.2f%%  Max loss %.2f%%\n",
		plan.RiskRewardRatio, plan.ExpectedMovePercent, plan.MaxLossPercent)

	if plan.Option != nil {
		color.Magenta("    Vehicle: %s (delta %.2f-%.2f, %d-%d DTE)",
			plan.Vehicle, plan.Option.DeltaLow, plan.Option.DeltaHigh,
			plan.Option.DTEMin, plan.Option.DTEMax)
		if plan.Option.Note != "" {
			fmt.Printf("      %s\n", plan.Option.Note)
		}
	} else {
		fmt.Printf("    Vehicle: %s\n", plan.Vehicle)
	}

	fmt.Printf("    Signal: %s\n", plan.PrimarySignal)
	if len(plan.SupportingSignals) > 0 {
		fmt.Printf("    Supporting: %s\n", strings.Join(plan.SupportingSignals, ", "))
	}
}

// PrintScanSummary renders a one line row per scanned symbol.
func PrintScanSummary(results []models.RiskAnalysisResult) {
	color.Cyan("📊 Scan Results (%d symbols)", len(results))
	for _, r := range results {
		if r.HasTrades {
			plan := r.TradePlans[0]
			color.Green("  ✓ %-8s %s %s  R:R %.2f  %s",
				r.Symbol, plan.Bias, plan.Timeframe, plan.RiskRewardRatio, plan.Quality)
		} else {
			code := ""
			if r.PrimarySuppression != nil {
				code = string(r.PrimarySuppression.Code)
			}
			color.Yellow("  ✗ %-8s suppressed: %s", r.Symbol, code)
		}
	}
}
