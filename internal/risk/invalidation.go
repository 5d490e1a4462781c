package risk

import (
	"fmt"
	"math"

	"trade-planner/internal/config"
	"trade-planner/internal/models"
)

// InvalidationDetector finds the nearest structural level that would
// invalidate the trade thesis.
type InvalidationDetector struct {
	lookback int
}

// NewInvalidationDetector creates a detector using the configured swing
// lookback.
func NewInvalidationDetector(cfg config.RiskConfig) *InvalidationDetector {
	lookback := cfg.SwingLookback
	if lookback <= 0 {
		lookback = 10
	}
	return &InvalidationDetector{lookback: lookback}
}

// Detect collects candidate levels on the supporting side of price and
// returns the one closest to it. Bullish setups look for supports below
// price (20 SMA, 50 SMA, recent swing low); bearish setups mirror with
// resistances above. Returns nil when the series is too short or no
// candidate qualifies. A nil result means "no clear invalidation", not
// an error.
func (d *InvalidationDetector) Detect(series *models.Series, bias models.Bias) *models.InvalidationLevel {
	if series == nil || series.Len() < d.lookback {
		return nil
	}

	price := series.LastClose()
	if price <= 0 {
		return nil
	}

	var candidates []models.InvalidationLevel

	sma20, ok20 := series.LastValue(models.ColSMA20)
	sma50, ok50 := series.LastValue(models.ColSMA50)

	if bias == models.BiasBullish {
		if ok20 && sma20 > 0 && price > sma20 {
			candidates = append(candidates, models.InvalidationLevel{
				Price:       sma20,
				Type:        models.InvalidationSMA20,
				Description: "close below the 20 SMA",
			})
		}
		if ok50 && sma50 > 0 && price > sma50 {
			candidates = append(candidates, models.InvalidationLevel{
				Price:       sma50,
				Type:        models.InvalidationSMA50,
				Description: "close below the 50 SMA",
			})
		}
		if low, ok := d.swingLow(series); ok && price > low {
			candidates = append(candidates, models.InvalidationLevel{
				Price:       low,
				Type:        models.InvalidationSwingLow,
				Description: fmt.Sprintf("break of the %d bar swing low", d.lookback),
			})
		}
	} else {
		if ok20 && sma20 > 0 && price < sma20 {
			candidates = append(candidates, models.InvalidationLevel{
				Price:       sma20,
				Type:        models.InvalidationSMA20,
				Description: "close above the 20 SMA",
			})
		}
		if ok50 && sma50 > 0 && price < sma50 {
			candidates = append(candidates, models.InvalidationLevel{
				Price:       sma50,
				Type:        models.InvalidationSMA50,
				Description: "close above the 50 SMA",
			})
		}
		if high, ok := d.swingHigh(series); ok && price < high {
			candidates = append(candidates, models.InvalidationLevel{
				Price:       high,
				Type:        models.InvalidationSwingHigh,
				Description: fmt.Sprintf("break of the %d bar swing high", d.lookback),
			})
		}
	}

	if len(candidates) == 0 {
		return nil
	}

	best := candidates[0]
	bestDist := math.Abs(best.Price - price)
	for _, c := range candidates[1:] {
		if dist := math.Abs(c.Price - price); dist < bestDist {
			best = c
			bestDist = dist
		}
	}
	return &best
}

func (d *InvalidationDetector) swingLow(series *models.Series) (float64, bool) {
	bars := series.Bars
	if len(bars) < d.lookback {
		return 0, false
	}
	window := bars[len(bars)-d.lookback:]
	low := window[0].Low
	for _, bar := range window[1:] {
		if bar.Low < low {
			low = bar.Low
		}
	}
	return low, true
}

func (d *InvalidationDetector) swingHigh(series *models.Series) (float64, bool) {
	bars := series.Bars
	if len(bars) < d.lookback {
		return 0, false
	}
	window := bars[len(bars)-d.lookback:]
	high := window[0].High
	for _, bar := range window[1:] {
		if bar.High > high {
			high = bar.High
		}
	}
	return high, true
}
