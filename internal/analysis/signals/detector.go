// Package signals derives directional trading signals from enriched price series.
package signals

import (
	"trade-planner/internal/models"
)

// Detector inspects the indicator columns of a series and emits the
// directional signals present at the latest bar.
type Detector struct{}

// NewDetector creates a new signal detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect returns the signals observable on the last bar of the series.
// Columns that were not computed are skipped silently.
func (d *Detector) Detect(series *models.Series) []models.Signal {
	if series == nil || series.Len() == 0 {
		return nil
	}

	var out []models.Signal

	if sig, ok := d.trendSignal(series); ok {
		out = append(out, sig)
	}
	if sig, ok := d.maCrossSignal(series); ok {
		out = append(out, sig)
	}
	if sig, ok := d.rsiSignal(series); ok {
		out = append(out, sig)
	}
	if sig, ok := d.macdSignal(series); ok {
		out = append(out, sig)
	}
	if sig, ok := d.bollingerSignal(series); ok {
		out = append(out, sig)
	}
	if sig, ok := d.adxSignal(series); ok {
		out = append(out, sig)
	}
	if sig, ok := d.volumeSignal(series); ok {
		out = append(out, sig)
	}

	return out
}

// trendSignal compares the close to the 20 and 50 period moving averages.
func (d *Detector) trendSignal(series *models.Series) (models.Signal, bool) {
	sma20, ok20 := series.LastValue(models.ColSMA20)
	sma50, ok50 := series.LastValue(models.ColSMA50)
	if !ok20 || !ok50 || sma20 == 0 || sma50 == 0 {
		return models.Signal{}, false
	}

	close := series.LastClose()
	var strength models.Strength
	switch {
	case close > sma20 && close > sma50 && sma20 > sma50:
		strength = models.StrengthStrongBullish
	case close > sma20 && close > sma50:
		strength = models.StrengthBullish
	case close < sma20 && close < sma50 && sma20 < sma50:
		strength = models.StrengthStrongBearish
	case close < sma20 && close < sma50:
		strength = models.StrengthBearish
	default:
		strength = models.StrengthNeutral
	}

	return models.Signal{
		Name:     "Moving Average Alignment",
		Strength: strength,
		Category: models.CategoryTrend,
	}, true
}

// maCrossSignal detects a 20/50 moving average crossover on the last bar.
func (d *Detector) maCrossSignal(series *models.Series) (models.Signal, bool) {
	sma20, ok20 := series.Column(models.ColSMA20)
	sma50, ok50 := series.Column(models.ColSMA50)
	n := series.Len()
	if !ok20 || !ok50 || n < 2 {
		return models.Signal{}, false
	}
	prev20, prev50 := sma20[n-2], sma50[n-2]
	curr20, curr50 := sma20[n-1], sma50[n-1]
	if prev20 == 0 || prev50 == 0 || curr20 == 0 || curr50 == 0 {
		return models.Signal{}, false
	}

	switch {
	case prev20 <= prev50 && curr20 > curr50:
		return models.Signal{
			Name:     "Golden Cross",
			Strength: models.StrengthStrongBullish,
			Category: models.CategoryTrend,
		}, true
	case prev20 >= prev50 && curr20 < curr50:
		return models.Signal{
			Name:     "Death Cross",
			Strength: models.StrengthStrongBearish,
			Category: models.CategoryTrend,
		}, true
	}
	return models.Signal{}, false
}

func (d *Detector) rsiSignal(series *models.Series) (models.Signal, bool) {
	rsi, ok := series.LastValue(models.ColRSI)
	if !ok || rsi == 0 {
		return models.Signal{}, false
	}

	var strength models.Strength
	var name string
	switch {
	case rsi >= 70:
		name = "RSI Overbought"
		strength = models.StrengthBearish
	case rsi <= 30:
		name = "RSI Oversold"
		strength = models.StrengthBullish
	case rsi > 55:
		name = "RSI Momentum Up"
		strength = models.StrengthBullish
	case rsi < 45:
		name = "RSI Momentum Down"
		strength = models.StrengthBearish
	default:
		name = "RSI Neutral"
		strength = models.StrengthNeutral
	}

	return models.Signal{
		Name:     name,
		Strength: strength,
		Category: models.CategoryMomentum,
	}, true
}

func (d *Detector) macdSignal(series *models.Series) (models.Signal, bool) {
	macd, okM := series.Column(models.ColMACD)
	signal, okS := series.Column(models.ColMACDSignal)
	n := series.Len()
	if !okM || !okS || n < 2 {
		return models.Signal{}, false
	}

	prevDiff := macd[n-2] - signal[n-2]
	currDiff := macd[n-1] - signal[n-1]

	switch {
	case prevDiff <= 0 && currDiff > 0:
		return models.Signal{
			Name:     "MACD Bullish Cross",
			Strength: models.StrengthStrongBullish,
			Category: models.CategoryMomentum,
		}, true
	case prevDiff >= 0 && currDiff < 0:
		return models.Signal{
			Name:     "MACD Bearish Cross",
			Strength: models.StrengthStrongBearish,
			Category: models.CategoryMomentum,
		}, true
	case currDiff > 0:
		return models.Signal{
			Name:     "MACD Above Signal",
			Strength: models.StrengthBullish,
			Category: models.CategoryMomentum,
		}, true
	case currDiff < 0:
		return models.Signal{
			Name:     "MACD Below Signal",
			Strength: models.StrengthBearish,
			Category: models.CategoryMomentum,
		}, true
	}
	return models.Signal{}, false
}

func (d *Detector) bollingerSignal(series *models.Series) (models.Signal, bool) {
	upper, okU := series.LastValue(models.ColBBUpper)
	lower, okL := series.LastValue(models.ColBBLower)
	if !okU || !okL || upper == 0 || lower == 0 {
		return models.Signal{}, false
	}

	close := series.LastClose()
	switch {
	case close > upper:
		return models.Signal{
			Name:     "Bollinger Breakout",
			Strength: models.StrengthBullish,
			Category: models.CategoryVolatility,
		}, true
	case close < lower:
		return models.Signal{
			Name:     "Bollinger Breakdown",
			Strength: models.StrengthBearish,
			Category: models.CategoryVolatility,
		}, true
	}
	return models.Signal{}, false
}

// adxSignal reports trend strength with direction taken from the DI lines.
func (d *Detector) adxSignal(series *models.Series) (models.Signal, bool) {
	adx, okA := series.LastValue(models.ColADX)
	plusDI, okP := series.LastValue(models.ColPlusDI)
	minusDI, okM := series.LastValue(models.ColMinusDI)
	if !okA || !okP || !okM || adx == 0 {
		return models.Signal{}, false
	}
	if adx < 25 {
		return models.Signal{}, false
	}

	strength := models.StrengthBullish
	name := "ADX Uptrend"
	if minusDI > plusDI {
		strength = models.StrengthBearish
		name = "ADX Downtrend"
	}
	if adx >= 40 {
		if strength == models.StrengthBullish {
			strength = models.StrengthStrongBullish
		} else {
			strength = models.StrengthStrongBearish
		}
	}

	return models.Signal{
		Name:     name,
		Strength: strength,
		Category: models.CategoryTrend,
	}, true
}

// volumeSignal flags volume expansion relative to its 20 bar average.
func (d *Detector) volumeSignal(series *models.Series) (models.Signal, bool) {
	volMA, ok := series.LastValue(models.ColVolumeMA20)
	if !ok || volMA <= 0 {
		return models.Signal{}, false
	}

	last, lastOK := series.Last()
	if !lastOK {
		return models.Signal{}, false
	}
	ratio := float64(last.Volume) / volMA
	if ratio < 1.5 {
		return models.Signal{}, false
	}

	strength := models.StrengthBullish
	if last.Close < last.Open {
		strength = models.StrengthBearish
	}

	return models.Signal{
		Name:     "Volume Surge",
		Strength: strength,
		Category: models.CategoryVolume,
	}, true
}
