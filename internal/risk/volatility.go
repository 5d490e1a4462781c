// Package risk implements the risk assessment and trade plan pipeline:
// volatility classification, timeframe selection, stop and target
// placement, invalidation detection, suppression evaluation, and
// vehicle selection. All components are pure computations over an
// enriched price series and hold no mutable cross-call state.
package risk

import (
	"trade-planner/internal/config"
	"trade-planner/internal/models"
)

// VolatilityClassifier buckets current ATR relative to price into a
// volatility regime.
type VolatilityClassifier struct {
	lowThreshold  float64
	highThreshold float64
}

// NewVolatilityClassifier creates a classifier from the configured
// regime boundaries.
func NewVolatilityClassifier(cfg config.RiskConfig) *VolatilityClassifier {
	return &VolatilityClassifier{
		lowThreshold:  cfg.VolLowThreshold,
		highThreshold: cfg.VolHighThreshold,
	}
}

// Classify reads ATR and Close from the last bar and maps ATR percent
// of price against the thresholds. A missing ATR column or non-positive
// close falls back to MEDIUM rather than failing.
func (c *VolatilityClassifier) Classify(series *models.Series) models.VolatilityRegime {
	if series == nil || series.Len() == 0 {
		return models.VolatilityMedium
	}

	atr, ok := series.LastValue(models.ColATR)
	close := series.LastClose()
	if !ok || close <= 0 {
		return models.VolatilityMedium
	}

	atrPercent := atr / close * 100
	switch {
	case atrPercent < c.lowThreshold:
		return models.VolatilityLow
	case atrPercent > c.highThreshold:
		return models.VolatilityHigh
	default:
		return models.VolatilityMedium
	}
}
