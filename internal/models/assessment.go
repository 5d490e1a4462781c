package models

import "time"

// SuppressionCode identifies a reason a trade setup was rejected.
type SuppressionCode string

const (
	SuppressInsufficientData   SuppressionCode = "INSUFFICIENT_DATA"
	SuppressStopTooTight       SuppressionCode = "STOP_TOO_TIGHT"
	SuppressStopTooWide        SuppressionCode = "STOP_TOO_WIDE"
	SuppressRRUnfavorable      SuppressionCode = "RR_UNFAVORABLE"
	SuppressNoClearInvalidation SuppressionCode = "NO_CLEAR_INVALIDATION"
	SuppressVolatilityTooHigh  SuppressionCode = "VOLATILITY_TOO_HIGH"
	SuppressNoTrend            SuppressionCode = "NO_TREND"
	SuppressConflictingSignals SuppressionCode = "CONFLICTING_SIGNALS"
)

// SuppressionReason explains why a setup was rejected. Threshold and
// Actual carry the numeric comparison when one applies.
type SuppressionReason struct {
	Code      SuppressionCode
	Message   string
	Threshold float64
	Actual    float64
}

// StopLevel is a computed stop-loss price with its validity verdict.
type StopLevel struct {
	Price           float64
	DistancePercent float64
	ATRMultiple     float64
	IsValid         bool
	RejectionCode   SuppressionCode // empty when IsValid
}

// TargetLevel is a computed target price.
type TargetLevel struct {
	Price           float64
	DistancePercent float64
	ATRMultiple     float64
}

// InvalidationType classifies the structural level backing an invalidation.
type InvalidationType string

const (
	InvalidationSMA20     InvalidationType = "SMA_20"
	InvalidationSMA50     InvalidationType = "SMA_50"
	InvalidationSwingLow  InvalidationType = "SWING_LOW"
	InvalidationSwingHigh InvalidationType = "SWING_HIGH"
)

// InvalidationLevel is the structural level that would invalidate the
// trade thesis.
type InvalidationLevel struct {
	Price       float64
	Type        InvalidationType
	Description string
}

// RiskReward holds the risk:reward computation for a setup.
type RiskReward struct {
	RiskAmount   float64
	RewardAmount float64
	Ratio        float64
	IsFavorable  bool
}

// RiskMetrics is a snapshot of the volatility and trend metrics backing
// an assessment.
type RiskMetrics struct {
	ATR            float64
	ATRPercent     float64
	Regime         VolatilityRegime
	ADX            float64
	IsTrending     bool
	BBWidthPercent float64
	VolumeRatio    float64
}

// RiskAssessment aggregates everything computed for one symbol in one
// assessment pass. Invalidation is nil when no structural level
// qualified.
type RiskAssessment struct {
	Symbol       string
	Timestamp    time.Time
	Price        float64
	Bias         Bias
	Timeframe    Timeframe
	Metrics      RiskMetrics
	Stop         StopLevel
	Target       TargetLevel
	Invalidation *InvalidationLevel
	RiskReward   RiskReward
	IsQualified  bool
	Quality      RiskQuality
	Suppressions []SuppressionReason
}
