package models

import (
	"testing"
	"time"
)

func TestStrengthPredicates(t *testing.T) {
	tests := []struct {
		strength Strength
		bullish  bool
		bearish  bool
		score    float64
	}{
		{StrengthStrongBullish, true, false, 2},
		{StrengthBullish, true, false, 1},
		{StrengthNeutral, false, false, 0},
		{StrengthBearish, false, true, 1},
		{StrengthStrongBearish, false, true, 2},
	}

	for _, tt := range tests {
		if tt.strength.IsBullish() != tt.bullish {
			t.Errorf("%s.IsBullish() = %v", tt.strength, !tt.bullish)
		}
		if tt.strength.IsBearish() != tt.bearish {
			t.Errorf("%s.IsBearish() = %v", tt.strength, !tt.bearish)
		}
		if tt.strength.Score() != tt.score {
			t.Errorf("%s.Score() = %v, want %v", tt.strength, tt.strength.Score(), tt.score)
		}
	}
}

func TestSeriesColumnAlignment(t *testing.T) {
	s := &Series{
		Bars: []Bar{{Close: 100}, {Close: 101}, {Close: 102}},
	}

	s.SetColumn(ColATR, []float64{1, 2, 3})
	if v, ok := s.LastValue(ColATR); !ok || v != 3 {
		t.Errorf("LastValue = %v %v, want 3 true", v, ok)
	}

	// A misaligned column must report absent, not a wrong value.
	s.SetColumn(ColADX, []float64{1, 2})
	if _, ok := s.Column(ColADX); ok {
		t.Error("misaligned column must not be readable")
	}
	if _, ok := s.LastValue("missing"); ok {
		t.Error("missing column must report absent")
	}
}

func TestVehicleIsOption(t *testing.T) {
	if VehicleStock.IsOption() {
		t.Error("STOCK is not an option")
	}
	for _, v := range []Vehicle{VehicleCall, VehiclePut, VehicleCallSpread, VehiclePutSpread} {
		if !v.IsOption() {
			t.Errorf("%s must be an option vehicle", v)
		}
	}
}

func TestResultToMap(t *testing.T) {
	reason := SuppressionReason{Code: SuppressNoTrend, Message: "weak trend", Threshold: 25, Actual: 15}
	result := &RiskAnalysisResult{
		Symbol:             "AAPL",
		HasTrades:          false,
		PrimarySuppression: &reason,
		AllSuppressions:    []SuppressionReason{reason},
		Assessment:         RiskAssessment{Timestamp: time.Now()},
	}

	m := result.ToMap()
	if m["symbol"] != "AAPL" || m["has_trades"] != false {
		t.Errorf("envelope fields wrong: %v", m)
	}
	if m["primary_suppression"] != "NO_TREND" {
		t.Errorf("primary_suppression = %v", m["primary_suppression"])
	}
	suppressions, ok := m["suppressions"].([]map[string]interface{})
	if !ok || len(suppressions) != 1 || suppressions[0]["code"] != "NO_TREND" {
		t.Errorf("suppressions = %v", m["suppressions"])
	}

	plan := TradePlan{
		Symbol:  "AAPL",
		Bias:    BiasBullish,
		Vehicle: VehicleCall,
		Option:  &OptionParams{DeltaLow: 0.6, DeltaHigh: 0.75, DTEMin: 30, DTEMax: 45},
	}
	tradeable := &RiskAnalysisResult{Symbol: "AAPL", HasTrades: true, TradePlans: []TradePlan{plan}}
	m = tradeable.ToMap()
	plans, ok := m["trade_plans"].([]map[string]interface{})
	if !ok || len(plans) != 1 {
		t.Fatalf("trade_plans = %v", m["trade_plans"])
	}
	if plans[0]["vehicle"] != "CALL" {
		t.Errorf("vehicle = %v, want CALL", plans[0]["vehicle"])
	}
	if _, hasOption := plans[0]["option"]; !hasOption {
		t.Error("option params missing from map")
	}
}
