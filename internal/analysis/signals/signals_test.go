package signals

import (
	"testing"
	"time"

	"trade-planner/internal/models"
)

func seriesWithColumns(closes []float64, columns map[string][]float64) *models.Series {
	bars := make([]models.Bar, len(closes))
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		bars[i] = models.Bar{
			Timestamp: base.Add(time.Duration(i) * 24 * time.Hour),
			Open:      c,
			High:      c + 1,
			Low:       c - 1,
			Close:     c,
			Volume:    1000,
		}
	}
	s := &models.Series{Symbol: "TEST", Bars: bars}
	for name, col := range columns {
		s.SetColumn(name, col)
	}
	return s
}

func constant(n int, v float64) []float64 {
	col := make([]float64, n)
	for i := range col {
		col[i] = v
	}
	return col
}

func TestDetectorTrendSignal(t *testing.T) {
	series := seriesWithColumns([]float64{100, 101, 102}, map[string][]float64{
		models.ColSMA20: {98, 98, 98},
		models.ColSMA50: {95, 95, 95},
	})

	sigs := NewDetector().Detect(series)
	found := false
	for _, s := range sigs {
		if s.Name == "Moving Average Alignment" {
			found = true
			if s.Strength != models.StrengthStrongBullish {
				t.Errorf("strength = %v, want STRONG_BULLISH above aligned MAs", s.Strength)
			}
		}
	}
	if !found {
		t.Error("expected a moving average alignment signal")
	}
}

func TestDetectorGoldenCross(t *testing.T) {
	series := seriesWithColumns([]float64{100, 101}, map[string][]float64{
		models.ColSMA20: {94, 96},
		models.ColSMA50: {95, 95},
	})

	sigs := NewDetector().Detect(series)
	found := false
	for _, s := range sigs {
		if s.Name == "Golden Cross" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a golden cross, got %v", sigs)
	}
}

func TestDetectorRSIZones(t *testing.T) {
	tests := []struct {
		rsi  float64
		name string
	}{
		{75, "RSI Overbought"},
		{25, "RSI Oversold"},
		{60, "RSI Momentum Up"},
		{40, "RSI Momentum Down"},
		{50, "RSI Neutral"},
	}

	for _, tt := range tests {
		series := seriesWithColumns([]float64{100, 100}, map[string][]float64{
			models.ColRSI: constant(2, tt.rsi),
		})
		sigs := NewDetector().Detect(series)
		found := false
		for _, s := range sigs {
			if s.Name == tt.name {
				found = true
			}
		}
		if !found {
			t.Errorf("RSI %.0f: expected signal %q, got %v", tt.rsi, tt.name, sigs)
		}
	}
}

func TestDetectorEmptySeries(t *testing.T) {
	if sigs := NewDetector().Detect(&models.Series{}); sigs != nil {
		t.Errorf("Detect() on empty series = %v, want nil", sigs)
	}
}

func TestRankOrdersByStrength(t *testing.T) {
	sigs := []models.Signal{
		{Name: "weak", Strength: models.StrengthNeutral},
		{Name: "strong", Strength: models.StrengthStrongBullish},
		{Name: "mid", Strength: models.StrengthBearish},
	}

	ranked := Rank(sigs)
	if ranked[0].Name != "strong" {
		t.Errorf("top ranked = %q, want strong", ranked[0].Name)
	}
	if ranked[2].Name != "weak" {
		t.Errorf("bottom ranked = %q, want weak", ranked[2].Name)
	}
	if sigs[0].Name != "weak" {
		t.Error("Rank must not modify its input")
	}
}

func TestRankIsStableForEqualStrength(t *testing.T) {
	sigs := []models.Signal{
		{Name: "first", Strength: models.StrengthBullish},
		{Name: "second", Strength: models.StrengthBullish},
		{Name: "third", Strength: models.StrengthBullish},
	}

	ranked := Rank(sigs)
	for i, want := range []string{"first", "second", "third"} {
		if ranked[i].Name != want {
			t.Errorf("ranked[%d] = %q, want %q", i, ranked[i].Name, want)
		}
	}
}

func TestBias(t *testing.T) {
	tests := []struct {
		name    string
		bullish int
		bearish int
		want    models.Bias
	}{
		{"clear bullish", 5, 1, models.BiasBullish},
		{"clear bearish", 1, 5, models.BiasBearish},
		{"lead of exactly two is neutral", 4, 2, models.BiasNeutral},
		{"lead of three is directional", 5, 2, models.BiasBullish},
		{"empty is neutral", 0, 0, models.BiasNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sigs []models.Signal
			for i := 0; i < tt.bullish; i++ {
				sigs = append(sigs, models.Signal{Strength: models.StrengthBullish})
			}
			for i := 0; i < tt.bearish; i++ {
				sigs = append(sigs, models.Signal{Strength: models.StrengthBearish})
			}
			if got := Bias(sigs); got != tt.want {
				t.Errorf("Bias(%d bull, %d bear) = %v, want %v", tt.bullish, tt.bearish, got, tt.want)
			}
		})
	}
}

func TestConflictRatio(t *testing.T) {
	var sigs []models.Signal
	for i := 0; i < 6; i++ {
		sigs = append(sigs, models.Signal{Strength: models.StrengthBullish})
	}
	for i := 0; i < 5; i++ {
		sigs = append(sigs, models.Signal{Strength: models.StrengthBearish})
	}

	got := ConflictRatio(sigs)
	want := 5.0 / 11.0
	if got != want {
		t.Errorf("ConflictRatio = %v, want %v", got, want)
	}

	if ConflictRatio(nil) != 0 {
		t.Error("ConflictRatio with no signals must be 0")
	}

	// Neutral signals count toward neither side.
	neutral := []models.Signal{{Strength: models.StrengthNeutral}}
	if ConflictRatio(neutral) != 0 {
		t.Error("ConflictRatio with only neutral signals must be 0")
	}
}

func TestPrimaryAndSupporting(t *testing.T) {
	if Primary(nil) != "Market Setup" {
		t.Error("empty signals must fall back to Market Setup")
	}

	ranked := []models.Signal{
		{Name: "one"}, {Name: "two"}, {Name: "three"}, {Name: "four"}, {Name: "five"},
	}
	if Primary(ranked) != "one" {
		t.Errorf("Primary = %q, want one", Primary(ranked))
	}

	supporting := Supporting(ranked)
	if len(supporting) != 3 {
		t.Fatalf("Supporting returned %d names, want 3", len(supporting))
	}
	for i, want := range []string{"two", "three", "four"} {
		if supporting[i] != want {
			t.Errorf("supporting[%d] = %q, want %q", i, supporting[i], want)
		}
	}

	if Supporting(ranked[:1]) != nil {
		t.Error("a single signal has no supporting names")
	}
}
