package models

import "time"

// OptionParams carries the option sub-parameters attached to a trade
// plan when the chosen vehicle is an option variant.
type OptionParams struct {
	DeltaLow  float64
	DeltaHigh float64
	DTEMin    int
	DTEMax    int
	Note      string
}

// TradePlan is the actionable output of a qualified assessment.
type TradePlan struct {
	ID                  string
	Symbol              string
	CreatedAt           time.Time
	Bias                Bias
	Timeframe           Timeframe
	EntryPrice          float64
	StopPrice           float64
	TargetPrice         float64
	InvalidationPrice   float64
	RiskRewardRatio     float64
	ExpectedMovePercent float64
	MaxLossPercent      float64
	Quality             RiskQuality
	Vehicle             Vehicle
	Option              *OptionParams // nil for stock plans
	PrimarySignal       string
	SupportingSignals   []string
	Status              PlanStatus
}

// PlanStatus represents the lifecycle status of a stored trade plan.
type PlanStatus string

const (
	PlanPending   PlanStatus = "PENDING"
	PlanActive    PlanStatus = "ACTIVE"
	PlanExecuted  PlanStatus = "EXECUTED"
	PlanCancelled PlanStatus = "CANCELLED"
	PlanExpired   PlanStatus = "EXPIRED"
)

// RiskAnalysisResult is the top-level envelope returned by the risk
// assessor: either trade plans with HasTrades true, or an empty plan
// list plus one or more suppression reasons.
type RiskAnalysisResult struct {
	Symbol             string
	HasTrades          bool
	TradePlans         []TradePlan
	PrimarySuppression *SuppressionReason
	AllSuppressions    []SuppressionReason
	Assessment         RiskAssessment
}

// ToMap flattens the result into a plain mapping suitable for JSON
// transport by a caller. Field names are stable.
func (r *RiskAnalysisResult) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"symbol":     r.Symbol,
		"has_trades": r.HasTrades,
	}

	plans := make([]map[string]interface{}, 0, len(r.TradePlans))
	for _, p := range r.TradePlans {
		plan := map[string]interface{}{
			"symbol":                p.Symbol,
			"bias":                  string(p.Bias),
			"timeframe":             string(p.Timeframe),
			"entry_price":           p.EntryPrice,
			"stop_price":            p.StopPrice,
			"target_price":          p.TargetPrice,
			"invalidation_price":    p.InvalidationPrice,
			"risk_reward_ratio":     p.RiskRewardRatio,
			"expected_move_percent": p.ExpectedMovePercent,
			"max_loss_percent":      p.MaxLossPercent,
			"quality":               string(p.Quality),
			"vehicle":               string(p.Vehicle),
			"primary_signal":        p.PrimarySignal,
			"supporting_signals":    p.SupportingSignals,
		}
		if p.Option != nil {
			plan["option"] = map[string]interface{}{
				"delta_low":  p.Option.DeltaLow,
				"delta_high": p.Option.DeltaHigh,
				"dte_min":    p.Option.DTEMin,
				"dte_max":    p.Option.DTEMax,
				"note":       p.Option.Note,
			}
		}
		plans = append(plans, plan)
	}
	m["trade_plans"] = plans

	suppressions := make([]map[string]interface{}, 0, len(r.AllSuppressions))
	for _, s := range r.AllSuppressions {
		suppressions = append(suppressions, map[string]interface{}{
			"code":      string(s.Code),
			"message":   s.Message,
			"threshold": s.Threshold,
			"actual":    s.Actual,
		})
	}
	m["suppressions"] = suppressions

	if r.PrimarySuppression != nil {
		m["primary_suppression"] = string(r.PrimarySuppression.Code)
	}

	return m
}
