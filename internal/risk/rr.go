package risk

import (
	"math"

	"trade-planner/internal/config"
	"trade-planner/internal/models"
)

// RRCalculator computes the risk:reward ratio for a setup.
type RRCalculator struct {
	minRR float64
}

// NewRRCalculator creates a calculator from the configured minimum
// acceptable ratio.
func NewRRCalculator(cfg config.RiskConfig) *RRCalculator {
	return &RRCalculator{minRR: cfg.MinRiskReward}
}

// Calculate derives risk and reward amounts from entry, stop and
// target. Zero or negative risk yields a ratio of exactly 0.0 rather
// than a division fault.
func (c *RRCalculator) Calculate(entry, stop, target float64) models.RiskReward {
	risk := math.Abs(entry - stop)
	reward := math.Abs(target - entry)

	ratio := 0.0
	if risk > 0 {
		ratio = reward / risk
	}

	return models.RiskReward{
		RiskAmount:   risk,
		RewardAmount: reward,
		Ratio:        ratio,
		IsFavorable:  ratio >= c.minRR,
	}
}
