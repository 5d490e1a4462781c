package risk

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"trade-planner/internal/config"
	"trade-planner/internal/models"
)

// Property: timeframe selection always yields exactly one known value,
// whatever regime string and ADX it is handed.
func TestProperty_TimeframeAlwaysSingleValue(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)
	selector := NewTimeframeSelector()

	properties.Property("selection is one of SWING, DAY, SCALP", prop.ForAll(
		func(regime string, adx float64) bool {
			got := selector.Select(models.VolatilityRegime(regime), adx)
			switch got {
			case models.TimeframeSwing, models.TimeframeDay, models.TimeframeScalp:
				return true
			}
			return false
		},
		gen.OneConstOf("LOW", "MEDIUM", "HIGH", "", "garbage"),
		gen.Float64Range(0, 100),
	))

	properties.TestingRun(t)
}

// Property: the risk:reward ratio is never negative and never faults,
// and identical entry and stop yields exactly zero.
func TestProperty_RiskRewardNonNegative(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)
	calc := NewRRCalculator(config.DefaultRisk())

	properties.Property("ratio >= 0 for any entry, stop, target", prop.ForAll(
		func(entry, stop, target float64) bool {
			rr := calc.Calculate(entry, stop, target)
			return rr.Ratio >= 0
		},
		gen.Float64Range(0.01, 10000),
		gen.Float64Range(0.01, 10000),
		gen.Float64Range(0.01, 10000),
	))

	properties.Property("entry == stop yields ratio exactly 0.0", prop.ForAll(
		func(entry, target float64) bool {
			rr := calc.Calculate(entry, entry, target)
			return rr.Ratio == 0.0 && !rr.IsFavorable
		},
		gen.Float64Range(0.01, 10000),
		gen.Float64Range(0.01, 10000),
	))

	properties.TestingRun(t)
}

// Property: a result either carries a plan or suppressions, never both
// and never neither.
func TestProperty_TradesAndSuppressionsMutuallyExclusive(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)
	assessor := NewAssessor(config.DefaultRisk())

	properties.Property("has_trades iff no suppressions", prop.ForAll(
		func(atr, adx float64, bullish, bearish int) bool {
			cols := map[string]float64{
				models.ColATR:        atr,
				models.ColADX:        adx,
				models.ColSMA20:      97.0,
				models.ColSMA50:      95.0,
				models.ColBBWidth:    0.04,
				models.ColVolumeMA20: 1000.0,
			}
			series := makeSeries(60, 100, cols)
			sigs := append(bullishSignals(bullish), bearishSignals(bearish)...)

			result := assessor.Assess(series, sigs, "TEST")

			if result.HasTrades {
				return len(result.AllSuppressions) == 0 &&
					len(result.TradePlans) == 1 &&
					result.PrimarySuppression == nil
			}
			return len(result.AllSuppressions) > 0 &&
				len(result.TradePlans) == 0 &&
				result.PrimarySuppression != nil &&
				result.PrimarySuppression.Code == result.AllSuppressions[0].Code
		},
		gen.Float64Range(0, 10),
		gen.Float64Range(0, 60),
		gen.IntRange(0, 10),
		gen.IntRange(0, 10),
	))

	properties.TestingRun(t)
}

// Property: every suppression code surfaced by an assessment traces to
// a condition that actually held.
func TestProperty_SuppressionReasonsMatchConditions(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)
	cfg := config.DefaultRisk()
	assessor := NewAssessor(cfg)

	properties.Property("codes imply their conditions", prop.ForAll(
		func(atr, adx float64) bool {
			cols := map[string]float64{
				models.ColATR:        atr,
				models.ColADX:        adx,
				models.ColSMA20:      97.0,
				models.ColSMA50:      95.0,
				models.ColBBWidth:    0.04,
				models.ColVolumeMA20: 1000.0,
			}
			series := makeSeries(60, 100, cols)
			result := assessor.Assess(series, bullishSignals(4), "TEST")

			for _, reason := range result.AllSuppressions {
				switch reason.Code {
				case models.SuppressVolatilityTooHigh:
					if result.Assessment.Metrics.Regime != models.VolatilityHigh {
						return false
					}
				case models.SuppressNoTrend:
					if result.Assessment.Metrics.ADX >= cfg.TrendingADX {
						return false
					}
				case models.SuppressRRUnfavorable:
					if result.Assessment.RiskReward.IsFavorable {
						return false
					}
				}
			}
			return true
		},
		gen.Float64Range(0, 10),
		gen.Float64Range(0, 60),
	))

	properties.TestingRun(t)
}
