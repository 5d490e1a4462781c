package risk

import (
	"trade-planner/internal/models"
)

// TimeframeSelector picks the single active trading timeframe for an
// assessment.
type TimeframeSelector struct{}

// NewTimeframeSelector creates a timeframe selector.
func NewTimeframeSelector() *TimeframeSelector {
	return &TimeframeSelector{}
}

// Select maps the volatility regime to a timeframe. High volatility
// forces short holds, low volatility allows swing holds. Trend strength
// does not gate the selection; a weak trend surfaces later as a
// NO_TREND suppression instead. Unrecognized regimes fall back to DAY.
func (s *TimeframeSelector) Select(regime models.VolatilityRegime, adx float64) models.Timeframe {
	_ = adx
	switch regime {
	case models.VolatilityHigh:
		return models.TimeframeScalp
	case models.VolatilityMedium:
		return models.TimeframeDay
	case models.VolatilityLow:
		return models.TimeframeSwing
	default:
		return models.TimeframeDay
	}
}
