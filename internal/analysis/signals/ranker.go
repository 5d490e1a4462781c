package signals

import (
	"sort"

	"trade-planner/internal/models"
)

// Rank orders signals by descending strength score. Ordering is stable,
// so equally strong signals keep their detection order. The input slice
// is not modified.
func Rank(sigs []models.Signal) []models.Signal {
	ranked := make([]models.Signal, len(sigs))
	copy(ranked, sigs)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Strength.Score() > ranked[j].Strength.Score()
	})
	return ranked
}

// Counts tallies directional signals. Neutral signals count toward neither side.
func Counts(sigs []models.Signal) (bullish, bearish int) {
	for _, s := range sigs {
		switch {
		case s.Strength.IsBullish():
			bullish++
		case s.Strength.IsBearish():
			bearish++
		}
	}
	return bullish, bearish
}

// Bias derives the overall directional bias. A side must lead by more
// than two signals to claim the bias, otherwise the read is neutral.
func Bias(sigs []models.Signal) models.Bias {
	bullish, bearish := Counts(sigs)
	switch {
	case bullish > bearish+2:
		return models.BiasBullish
	case bearish > bullish+2:
		return models.BiasBearish
	default:
		return models.BiasNeutral
	}
}

// ConflictRatio returns the fraction of directional signals that oppose
// the majority side. With no directional signals the ratio is zero.
func ConflictRatio(sigs []models.Signal) float64 {
	bullish, bearish := Counts(sigs)
	total := bullish + bearish
	if total == 0 {
		return 0
	}
	minority := bullish
	if bearish < bullish {
		minority = bearish
	}
	return float64(minority) / float64(total)
}

// Primary returns the name of the top ranked signal, or a generic label
// when nothing was detected.
func Primary(ranked []models.Signal) string {
	if len(ranked) == 0 {
		return "Market Setup"
	}
	return ranked[0].Name
}

// Supporting returns up to three signal names after the primary.
func Supporting(ranked []models.Signal) []string {
	if len(ranked) <= 1 {
		return nil
	}
	rest := ranked[1:]
	if len(rest) > 3 {
		rest = rest[:3]
	}
	names := make([]string, 0, len(rest))
	for _, s := range rest {
		names = append(names, s.Name)
	}
	return names
}
