package risk

import (
	"fmt"

	"trade-planner/internal/config"
	"trade-planner/internal/models"
)

// fallbackATRPercent is used when the series carries no usable ATR.
const fallbackATRPercent = 2.0

// StopCalculator places an ATR-multiple stop and validates its distance.
type StopCalculator struct {
	multiples map[models.Timeframe]float64
	minATR    float64
	maxATR    float64
}

// NewStopCalculator creates a stop calculator from the configured
// per-timeframe multiples and the validity band.
func NewStopCalculator(cfg config.RiskConfig) *StopCalculator {
	return &StopCalculator{
		multiples: map[models.Timeframe]float64{
			models.TimeframeSwing: cfg.SwingATRMultiple,
			models.TimeframeDay:   cfg.DayATRMultiple,
			models.TimeframeScalp: cfg.ScalpATRMultiple,
		},
		minATR: cfg.MinATRMultiple,
		maxATR: cfg.MaxATRMultiple,
	}
}

// Calculate places the stop below price for bullish setups and above
// otherwise. A missing or non-positive ATR falls back to 2% of price.
// The stop is marked invalid when the multiple falls outside the
// configured band; band boundaries themselves are valid.
func (c *StopCalculator) Calculate(series *models.Series, bias models.Bias, timeframe models.Timeframe) models.StopLevel {
	if series == nil || series.Len() == 0 {
		return models.StopLevel{IsValid: false, RejectionCode: models.SuppressInsufficientData}
	}

	price := series.LastClose()
	atr, ok := series.LastValue(models.ColATR)
	if !ok || atr <= 0 {
		atr = price * fallbackATRPercent / 100
	}
	if price <= 0 || atr <= 0 {
		return models.StopLevel{IsValid: false, RejectionCode: models.SuppressInsufficientData}
	}

	multiple, ok := c.multiples[timeframe]
	if !ok {
		multiple = c.multiples[models.TimeframeDay]
	}

	stopDistance := atr * multiple
	stopPrice := price + stopDistance
	if bias == models.BiasBullish {
		stopPrice = price - stopDistance
	}

	level := models.StopLevel{
		Price:           stopPrice,
		DistancePercent: stopDistance / price * 100,
		ATRMultiple:     multiple,
		IsValid:         true,
	}

	switch {
	case multiple < c.minATR:
		level.IsValid = false
		level.RejectionCode = models.SuppressStopTooTight
	case multiple > c.maxATR:
		level.IsValid = false
		level.RejectionCode = models.SuppressStopTooWide
	}

	return level
}

// BandMessage describes the validity band for suppression messages.
func (c *StopCalculator) BandMessage(multiple float64) string {
	return fmt.Sprintf("stop at %.2fx ATR is outside the %.2fx-%.2fx band", multiple, c.minATR, c.maxATR)
}
