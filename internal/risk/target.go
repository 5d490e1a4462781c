package risk

import (
	"math"

	"trade-planner/internal/config"
	"trade-planner/internal/models"
)

// TargetCalculator projects a target price from the stop distance and
// the preferred reward multiple.
type TargetCalculator struct {
	preferredRR float64
}

// NewTargetCalculator creates a target calculator from the configured
// preferred risk:reward.
func NewTargetCalculator(cfg config.RiskConfig) *TargetCalculator {
	return &TargetCalculator{preferredRR: cfg.PreferredRiskReward}
}

// Calculate projects the stop distance times the preferred multiple
// from entry in the bias direction.
func (c *TargetCalculator) Calculate(series *models.Series, bias models.Bias, stop models.StopLevel, metrics models.RiskMetrics) models.TargetLevel {
	if series == nil || series.Len() == 0 {
		return models.TargetLevel{}
	}

	price := series.LastClose()
	if price <= 0 {
		return models.TargetLevel{}
	}

	stopDistance := math.Abs(price - stop.Price)
	targetDistance := stopDistance * c.preferredRR

	targetPrice := price - targetDistance
	if bias == models.BiasBullish {
		targetPrice = price + targetDistance
	}

	atrMultiple := 0.0
	if metrics.ATR > 0 {
		atrMultiple = targetDistance / metrics.ATR
	}

	return models.TargetLevel{
		Price:           targetPrice,
		DistancePercent: targetDistance / price * 100,
		ATRMultiple:     atrMultiple,
	}
}
