// Package models provides domain models for the trade planning application.
package models

import (
	"time"
)

// Bar represents OHLCV data for a single time period.
type Bar struct {
	Timestamp time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    int64
}

// Well-known indicator column names on a Series.
const (
	ColATR        = "ATR"
	ColADX        = "ADX"
	ColPlusDI     = "Plus_DI"
	ColMinusDI    = "Minus_DI"
	ColSMA20      = "SMA_20"
	ColSMA50      = "SMA_50"
	ColRSI        = "RSI"
	ColMACD       = "MACD"
	ColMACDSignal = "MACD_Signal"
	ColMACDHist   = "MACD_Hist"
	ColBBWidth    = "BB_Width"
	ColBBUpper    = "BB_Upper"
	ColBBLower    = "BB_Lower"
	ColBBMiddle   = "BB_Middle"
	ColVolumeMA20 = "Volume_MA_20"
)

// Series is an ordered price history (oldest first, most recent last)
// with optional precomputed indicator columns keyed by name. Indicator
// columns are aligned with Bars: column[i] belongs to Bars[i].
type Series struct {
	Symbol  string
	Bars    []Bar
	Columns map[string][]float64
}

// Len returns the number of bars in the series.
func (s *Series) Len() int {
	return len(s.Bars)
}

// Last returns the most recent bar. The second return value is false
// when the series is empty.
func (s *Series) Last() (Bar, bool) {
	if len(s.Bars) == 0 {
		return Bar{}, false
	}
	return s.Bars[len(s.Bars)-1], true
}

// LastClose returns the most recent close price, or 0 for an empty series.
func (s *Series) LastClose() float64 {
	bar, ok := s.Last()
	if !ok {
		return 0
	}
	return bar.Close
}

// Column returns the named indicator column. The second return value is
// false when the column is absent or misaligned with the bars.
func (s *Series) Column(name string) ([]float64, bool) {
	if s.Columns == nil {
		return nil, false
	}
	col, ok := s.Columns[name]
	if !ok || len(col) != len(s.Bars) {
		return nil, false
	}
	return col, true
}

// LastValue returns the most recent value of the named indicator column.
// The second return value is false when the column is absent or empty;
// callers are expected to substitute a documented default.
func (s *Series) LastValue(name string) (float64, bool) {
	col, ok := s.Column(name)
	if !ok || len(col) == 0 {
		return 0, false
	}
	return col[len(col)-1], true
}

// SetColumn attaches an indicator column to the series.
func (s *Series) SetColumn(name string, values []float64) {
	if s.Columns == nil {
		s.Columns = make(map[string][]float64)
	}
	s.Columns[name] = values
}

// VolatilityRegime classifies ATR relative to price.
type VolatilityRegime string

const (
	VolatilityLow    VolatilityRegime = "LOW"
	VolatilityMedium VolatilityRegime = "MEDIUM"
	VolatilityHigh   VolatilityRegime = "HIGH"
)

// Timeframe represents the active trading timeframe. Exactly one is
// selected per assessment.
type Timeframe string

const (
	TimeframeSwing Timeframe = "SWING"
	TimeframeDay   Timeframe = "DAY"
	TimeframeScalp Timeframe = "SCALP"
)

// Bias represents the directional lean inferred from signal counts.
type Bias string

const (
	BiasBullish Bias = "BULLISH"
	BiasBearish Bias = "BEARISH"
	BiasNeutral Bias = "NEUTRAL"
)

// RiskQuality grades the overall quality of a trade setup.
type RiskQuality string

const (
	QualityHigh   RiskQuality = "HIGH"
	QualityMedium RiskQuality = "MEDIUM"
	QualityLow    RiskQuality = "LOW"
)

// Vehicle represents the instrument used to express a trade.
type Vehicle string

const (
	VehicleStock     Vehicle = "STOCK"
	VehicleCall      Vehicle = "CALL"
	VehiclePut       Vehicle = "PUT"
	VehicleCallSpread Vehicle = "CALL_SPREAD"
	VehiclePutSpread  Vehicle = "PUT_SPREAD"
)

// IsOption reports whether the vehicle is an option variant.
func (v Vehicle) IsOption() bool {
	return v != VehicleStock && v != ""
}
