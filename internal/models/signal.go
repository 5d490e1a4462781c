package models

// Strength represents the directional strength of a detected signal.
type Strength string

const (
	StrengthStrongBullish Strength = "STRONG_BULLISH"
	StrengthBullish       Strength = "BULLISH"
	StrengthNeutral       Strength = "NEUTRAL"
	StrengthBearish       Strength = "BEARISH"
	StrengthStrongBearish Strength = "STRONG_BEARISH"
)

// IsBullish reports whether the strength leans bullish.
func (s Strength) IsBullish() bool {
	return s == StrengthBullish || s == StrengthStrongBullish
}

// IsBearish reports whether the strength leans bearish.
func (s Strength) IsBearish() bool {
	return s == StrengthBearish || s == StrengthStrongBearish
}

// Score returns a numeric rank used when ordering signals: stronger
// directional conviction ranks higher regardless of direction.
func (s Strength) Score() float64 {
	switch s {
	case StrengthStrongBullish, StrengthStrongBearish:
		return 2
	case StrengthBullish, StrengthBearish:
		return 1
	default:
		return 0
	}
}

// SignalCategory groups signals by the kind of analysis that produced them.
type SignalCategory string

const (
	CategoryTrend      SignalCategory = "trend"
	CategoryMomentum   SignalCategory = "momentum"
	CategoryVolatility SignalCategory = "volatility"
	CategoryVolume     SignalCategory = "volume"
	CategoryLevel      SignalCategory = "level"
)

// Signal represents a single detected technical signal. Signals are
// produced by the analysis layer and consumed by the risk core, which
// only reads Strength to infer bias and conflict.
type Signal struct {
	Name     string
	Strength Strength
	Category SignalCategory
}
