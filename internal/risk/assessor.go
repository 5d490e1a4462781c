package risk

import (
	"fmt"
	"math"
	"time"

	"trade-planner/internal/analysis/signals"
	"trade-planner/internal/config"
	"trade-planner/internal/models"
)

// Assessor sequences the full risk pipeline for one symbol: metrics,
// bias, timeframe, stop, invalidation, target, risk:reward, suppression
// and vehicle selection. It holds no mutable cross-call state, so one
// instance is safe to share across concurrent scans.
type Assessor struct {
	cfg          config.RiskConfig
	volatility   *VolatilityClassifier
	timeframes   *TimeframeSelector
	stops        *StopCalculator
	invalidation *InvalidationDetector
	targets      *TargetCalculator
	riskReward   *RRCalculator
	suppression  *SuppressionEvaluator
	vehicles     *VehicleSelector

	now func() time.Time
}

// NewAssessor wires the pipeline components from one risk configuration.
func NewAssessor(cfg config.RiskConfig) *Assessor {
	return &Assessor{
		cfg:          cfg,
		volatility:   NewVolatilityClassifier(cfg),
		timeframes:   NewTimeframeSelector(),
		stops:        NewStopCalculator(cfg),
		invalidation: NewInvalidationDetector(cfg),
		targets:      NewTargetCalculator(cfg),
		riskReward:   NewRRCalculator(cfg),
		suppression:  NewSuppressionEvaluator(cfg),
		vehicles:     NewVehicleSelector(cfg),
		now:          time.Now,
	}
}

// Assess runs the pipeline over an enriched series and a ranked signal
// list. It always returns an explained result: either one trade plan or
// a non-empty suppression list. Signals must be ordered by descending
// strength; index zero is treated as the primary signal.
func (a *Assessor) Assess(series *models.Series, ranked []models.Signal, symbol string) models.RiskAnalysisResult {
	if series == nil || series.Len() == 0 || series.LastClose() <= 0 {
		reason := models.SuppressionReason{
			Code:    models.SuppressInsufficientData,
			Message: "series is empty or has no valid price",
		}
		return models.RiskAnalysisResult{
			Symbol:             symbol,
			HasTrades:          false,
			TradePlans:         nil,
			PrimarySuppression: &reason,
			AllSuppressions:    []models.SuppressionReason{reason},
			Assessment: models.RiskAssessment{
				Symbol:       symbol,
				Timestamp:    a.now(),
				IsQualified:  false,
				Quality:      models.QualityLow,
				Suppressions: []models.SuppressionReason{reason},
			},
		}
	}

	price := series.LastClose()
	metrics := a.computeMetrics(series)
	bias := signals.Bias(ranked)
	timeframe := a.timeframes.Select(metrics.Regime, metrics.ADX)

	stop := a.stops.Calculate(series, bias, timeframe)
	invalidation := a.invalidation.Detect(series, bias)
	target := a.targets.Calculate(series, bias, stop, metrics)
	rr := a.riskReward.Calculate(price, stop.Price, target.Price)

	assessment := models.RiskAssessment{
		Symbol:       symbol,
		Timestamp:    a.now(),
		Price:        price,
		Bias:         bias,
		Timeframe:    timeframe,
		Metrics:      metrics,
		Stop:         stop,
		Target:       target,
		Invalidation: invalidation,
		RiskReward:   rr,
		IsQualified:  true,
	}
	assessment.Quality = scoreQuality(rr.Ratio, metrics.ADX, metrics.Regime)

	reasons := a.suppression.Evaluate(assessment, ranked)
	if len(reasons) > 0 {
		assessment.IsQualified = false
		assessment.Suppressions = reasons
		return models.RiskAnalysisResult{
			Symbol:             symbol,
			HasTrades:          false,
			TradePlans:         nil,
			PrimarySuppression: &reasons[0],
			AllSuppressions:    reasons,
			Assessment:         assessment,
		}
	}

	plan := a.buildPlan(assessment, ranked)
	return models.RiskAnalysisResult{
		Symbol:     symbol,
		HasTrades:  true,
		TradePlans: []models.TradePlan{plan},
		Assessment: assessment,
	}
}

// computeMetrics reads the indicator columns with safe defaults for
// anything missing. A missing volume average yields a ratio of 1.0.
func (a *Assessor) computeMetrics(series *models.Series) models.RiskMetrics {
	price := series.LastClose()

	atr, _ := series.LastValue(models.ColATR)
	atrPercent := 0.0
	if price > 0 && atr > 0 {
		atrPercent = atr / price * 100
	}

	adx, _ := series.LastValue(models.ColADX)

	bbWidth, _ := series.LastValue(models.ColBBWidth)

	volumeRatio := 1.0
	if volMA, ok := series.LastValue(models.ColVolumeMA20); ok && volMA > 0 {
		if last, lastOK := series.Last(); lastOK {
			volumeRatio = float64(last.Volume) / volMA
		}
	}

	return models.RiskMetrics{
		ATR:            atr,
		ATRPercent:     atrPercent,
		Regime:         a.volatility.Classify(series),
		ADX:            adx,
		IsTrending:     adx >= a.cfg.TrendingADX,
		BBWidthPercent: bbWidth * 100,
		VolumeRatio:    volumeRatio,
	}
}

func (a *Assessor) buildPlan(assessment models.RiskAssessment, ranked []models.Signal) models.TradePlan {
	price := assessment.Price
	expectedMove := math.Abs(assessment.Target.Price-price) / price * 100
	vehicle, option := a.vehicles.Select(assessment.Timeframe, assessment.Metrics.Regime, assessment.Bias, expectedMove)

	invalidationPrice := 0.0
	if assessment.Invalidation != nil {
		invalidationPrice = assessment.Invalidation.Price
	}

	return models.TradePlan{
		ID:                  fmt.Sprintf("%s-%d", assessment.Symbol, assessment.Timestamp.UnixNano()),
		Symbol:              assessment.Symbol,
		CreatedAt:           assessment.Timestamp,
		Bias:                assessment.Bias,
		Timeframe:           assessment.Timeframe,
		EntryPrice:          price,
		StopPrice:           assessment.Stop.Price,
		TargetPrice:         assessment.Target.Price,
		InvalidationPrice:   invalidationPrice,
		RiskRewardRatio:     assessment.RiskReward.Ratio,
		ExpectedMovePercent: expectedMove,
		MaxLossPercent:      assessment.Stop.DistancePercent,
		Quality:             assessment.Quality,
		Vehicle:             vehicle,
		Option:              option,
		PrimarySignal:       signals.Primary(ranked),
		SupportingSignals:   signals.Supporting(ranked),
		Status:              models.PlanPending,
	}
}

// scoreQuality grades a setup from its ratio, trend strength and
// volatility regime.
func scoreQuality(ratio, adx float64, regime models.VolatilityRegime) models.RiskQuality {
	score := 0
	switch {
	case ratio >= 2.5:
		score += 3
	case ratio >= 2.0:
		score += 2
	case ratio >= 1.5:
		score++
	}
	switch {
	case adx >= 40:
		score += 2
	case adx >= 25:
		score++
	}
	if regime == models.VolatilityMedium {
		score++
	}

	switch {
	case score >= 4:
		return models.QualityHigh
	case score >= 2:
		return models.QualityMedium
	default:
		return models.QualityLow
	}
}
