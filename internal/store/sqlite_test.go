package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"trade-planner/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "planner.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func samplePlan(id string) *models.TradePlan {
	return &models.TradePlan{
		ID:                  id,
		Symbol:              "AAPL",
		CreatedAt:           time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
		Bias:                models.BiasBullish,
		Timeframe:           models.TimeframeSwing,
		EntryPrice:          100,
		StopPrice:           95,
		TargetPrice:         110,
		InvalidationPrice:   96,
		RiskRewardRatio:     2.0,
		ExpectedMovePercent: 10,
		MaxLossPercent:      5,
		Quality:             models.QualityHigh,
		Vehicle:             models.VehicleCall,
		Option: &models.OptionParams{
			DeltaLow:  0.60,
			DeltaHigh: 0.75,
			DTEMin:    30,
			DTEMax:    45,
			Note:      "in the money directional contract",
		},
		PrimarySignal:     "Golden Cross",
		SupportingSignals: []string{"ADX Uptrend", "Volume Surge"},
		Status:            models.PlanPending,
	}
}

func TestPlanRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	plan := samplePlan("AAPL-1")
	if err := s.SavePlan(ctx, plan); err != nil {
		t.Fatalf("SavePlan: %v", err)
	}

	plans, err := s.GetPlans(ctx, PlanFilter{Symbol: "AAPL"})
	if err != nil {
		t.Fatalf("GetPlans: %v", err)
	}
	if len(plans) != 1 {
		t.Fatalf("got %d plans, want 1", len(plans))
	}

	got := plans[0]
	if got.ID != plan.ID || got.Vehicle != plan.Vehicle || got.Quality != plan.Quality {
		t.Errorf("round trip mismatch: got %+v", got)
	}
	if got.Option == nil || got.Option.DeltaLow != 0.60 || got.Option.DTEMax != 45 {
		t.Errorf("option params lost in round trip: %+v", got.Option)
	}
	if len(got.SupportingSignals) != 2 || got.SupportingSignals[0] != "ADX Uptrend" {
		t.Errorf("supporting signals lost: %v", got.SupportingSignals)
	}
}

func TestPlanStockHasNoOptionParams(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	plan := samplePlan("MSFT-1")
	plan.Symbol = "MSFT"
	plan.Vehicle = models.VehicleStock
	plan.Option = nil
	if err := s.SavePlan(ctx, plan); err != nil {
		t.Fatalf("SavePlan: %v", err)
	}

	plans, err := s.GetPlans(ctx, PlanFilter{Symbol: "MSFT"})
	if err != nil {
		t.Fatalf("GetPlans: %v", err)
	}
	if plans[0].Option != nil {
		t.Errorf("stock plan came back with option params: %+v", plans[0].Option)
	}
}

func TestUpdatePlanStatus(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SavePlan(ctx, samplePlan("AAPL-2")); err != nil {
		t.Fatalf("SavePlan: %v", err)
	}

	if err := s.UpdatePlanStatus(ctx, "AAPL-2", models.PlanActive); err != nil {
		t.Fatalf("UpdatePlanStatus: %v", err)
	}

	plans, err := s.GetPlans(ctx, PlanFilter{Status: models.PlanActive})
	if err != nil {
		t.Fatalf("GetPlans: %v", err)
	}
	if len(plans) != 1 || plans[0].Status != models.PlanActive {
		t.Errorf("status not updated: %+v", plans)
	}

	if err := s.UpdatePlanStatus(ctx, "missing", models.PlanActive); err == nil {
		t.Error("updating a missing plan must error")
	}
}

func TestSuppressionRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	result := &models.RiskAnalysisResult{
		Symbol: "NVDA",
		AllSuppressions: []models.SuppressionReason{
			{Code: models.SuppressNoTrend, Message: "ADX 15.0 is below the 25.0 trending floor"},
			{Code: models.SuppressVolatilityTooHigh, Message: "ATR at 4.00% of price is in the high volatility regime"},
		},
		Assessment: models.RiskAssessment{
			Quality:   models.QualityLow,
			Timestamp: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
		},
	}

	if err := s.SaveSuppressions(ctx, result); err != nil {
		t.Fatalf("SaveSuppressions: %v", err)
	}

	records, err := s.GetSuppressions(ctx, "NVDA", 0)
	if err != nil {
		t.Fatalf("GetSuppressions: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	codes := map[models.SuppressionCode]bool{}
	for _, r := range records {
		codes[r.Code] = true
	}
	if !codes[models.SuppressNoTrend] || !codes[models.SuppressVolatilityTooHigh] {
		t.Errorf("codes lost in round trip: %v", records)
	}
}

func TestWatchlist(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, sym := range []string{"MSFT", "AAPL", "AAPL"} {
		if err := s.AddToWatchlist(ctx, sym); err != nil {
			t.Fatalf("AddToWatchlist(%s): %v", sym, err)
		}
	}

	symbols, err := s.GetWatchlist(ctx)
	if err != nil {
		t.Fatalf("GetWatchlist: %v", err)
	}
	if len(symbols) != 2 || symbols[0] != "AAPL" || symbols[1] != "MSFT" {
		t.Errorf("watchlist = %v, want [AAPL MSFT]", symbols)
	}

	if err := s.RemoveFromWatchlist(ctx, "AAPL"); err != nil {
		t.Fatalf("RemoveFromWatchlist: %v", err)
	}
	symbols, _ = s.GetWatchlist(ctx)
	if len(symbols) != 1 || symbols[0] != "MSFT" {
		t.Errorf("watchlist after remove = %v, want [MSFT]", symbols)
	}
}
