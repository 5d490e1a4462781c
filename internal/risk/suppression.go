package risk

import (
	"fmt"

	"trade-planner/internal/analysis/signals"
	"trade-planner/internal/config"
	"trade-planner/internal/models"
)

// SuppressionEvaluator runs the battery of qualification checks on an
// assessment. Every failing check appends a reason; the orchestrator
// treats the first reason as primary, so ordering here matters.
type SuppressionEvaluator struct {
	minRR               float64
	trendingADX         float64
	maxConflictingRatio float64
}

// NewSuppressionEvaluator creates an evaluator from the configured
// qualification thresholds.
func NewSuppressionEvaluator(cfg config.RiskConfig) *SuppressionEvaluator {
	return &SuppressionEvaluator{
		minRR:               cfg.MinRiskReward,
		trendingADX:         cfg.TrendingADX,
		maxConflictingRatio: cfg.MaxConflictingRatio,
	}
}

// Evaluate returns every reason the setup should not trade. An empty
// result means the setup is qualified. Suppression is reported as data,
// never as an error.
func (e *SuppressionEvaluator) Evaluate(assessment models.RiskAssessment, sigs []models.Signal) []models.SuppressionReason {
	var reasons []models.SuppressionReason

	if !assessment.RiskReward.IsFavorable {
		reasons = append(reasons, models.SuppressionReason{
			Code:      models.SuppressRRUnfavorable,
			Message:   fmt.Sprintf("risk:reward %.2f is below the %.2f minimum", assessment.RiskReward.Ratio, e.minRR),
			Threshold: e.minRR,
			Actual:    assessment.RiskReward.Ratio,
		})
	}

	if !assessment.Stop.IsValid {
		code := assessment.Stop.RejectionCode
		if code == "" {
			code = models.SuppressInsufficientData
		}
		reasons = append(reasons, models.SuppressionReason{
			Code:    code,
			Message: fmt.Sprintf("stop rejected at %.2fx ATR", assessment.Stop.ATRMultiple),
			Actual:  assessment.Stop.ATRMultiple,
		})
	}

	if assessment.Invalidation == nil {
		reasons = append(reasons, models.SuppressionReason{
			Code:    models.SuppressNoClearInvalidation,
			Message: "no structural level found to invalidate the thesis",
		})
	}

	if assessment.Metrics.Regime == models.VolatilityHigh {
		reasons = append(reasons, models.SuppressionReason{
			Code:    models.SuppressVolatilityTooHigh,
			Message: fmt.Sprintf("ATR at %.2f%% of price is in the high volatility regime", assessment.Metrics.ATRPercent),
			Actual:  assessment.Metrics.ATRPercent,
		})
	}

	if !assessment.Metrics.IsTrending {
		reasons = append(reasons, models.SuppressionReason{
			Code:      models.SuppressNoTrend,
			Message:   fmt.Sprintf("ADX %.1f is below the %.1f trending floor", assessment.Metrics.ADX, e.trendingADX),
			Threshold: e.trendingADX,
			Actual:    assessment.Metrics.ADX,
		})
	}

	if ratio := signals.ConflictRatio(sigs); ratio > e.maxConflictingRatio {
		reasons = append(reasons, models.SuppressionReason{
			Code:      models.SuppressConflictingSignals,
			Message:   fmt.Sprintf("directional signals split %.0f%% against the majority", ratio*100),
			Threshold: e.maxConflictingRatio,
			Actual:    ratio,
		})
	}

	return reasons
}
