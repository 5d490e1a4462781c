// Package store provides persistence for trade plans and scan history.
package store

import (
	"context"
	"time"

	"trade-planner/internal/models"
)

// PlanFilter represents filters for querying trade plans.
type PlanFilter struct {
	Symbol string
	Status models.PlanStatus
	Limit  int
}

// SuppressionRecord is one suppressed assessment kept for review.
type SuppressionRecord struct {
	Symbol    string
	Code      models.SuppressionCode
	Message   string
	Quality   models.RiskQuality
	CreatedAt time.Time
}

// Store defines the persistence interface for the planner.
type Store interface {
	// Trade plans
	SavePlan(ctx context.Context, plan *models.TradePlan) error
	GetPlans(ctx context.Context, filter PlanFilter) ([]models.TradePlan, error)
	UpdatePlanStatus(ctx context.Context, planID string, status models.PlanStatus) error

	// Suppressed assessments
	SaveSuppressions(ctx context.Context, result *models.RiskAnalysisResult) error
	GetSuppressions(ctx context.Context, symbol string, limit int) ([]SuppressionRecord, error)

	// Watchlist
	AddToWatchlist(ctx context.Context, symbol string) error
	RemoveFromWatchlist(ctx context.Context, symbol string) error
	GetWatchlist(ctx context.Context) ([]string, error)

	// Lifecycle
	Close() error
}
