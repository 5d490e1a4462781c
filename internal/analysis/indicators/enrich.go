package indicators

import (
	"context"

	"trade-planner/internal/models"
)

// Enricher computes the indicator columns the risk pipeline consumes
// and attaches them to a price series.
type Enricher struct {
	engine *Engine
}

// NewEnricher creates an enricher with the standard indicator set registered.
func NewEnricher(workers int) *Enricher {
	engine := NewEngine(workers)

	engine.RegisterIndicator(NewATR(14))
	engine.RegisterIndicator(NewSMA(20))
	engine.RegisterIndicator(NewSMA(50))
	engine.RegisterIndicator(NewRSI(14))
	engine.RegisterIndicator(NewVolumeMA(20))
	engine.RegisterMultiIndicator(NewADX(14))
	engine.RegisterMultiIndicator(NewMACD(12, 26, 9))
	engine.RegisterMultiIndicator(NewBollingerBands(20, 2.0))

	return &Enricher{engine: engine}
}

// Enrich calculates all registered indicators for the series and stores
// the canonical columns. Indicators that cannot be computed for the
// available history are skipped rather than failing the series.
func (e *Enricher) Enrich(ctx context.Context, series *models.Series) error {
	if series == nil || len(series.Bars) == 0 {
		return ErrInsufficientData
	}

	single, multi, err := e.engine.CalculateAll(ctx, series.Bars)
	if err != nil {
		return err
	}

	if values, ok := single["ATR_14"]; ok {
		series.SetColumn(models.ColATR, values)
	}
	if values, ok := single["SMA_20"]; ok {
		series.SetColumn(models.ColSMA20, values)
	}
	if values, ok := single["SMA_50"]; ok {
		series.SetColumn(models.ColSMA50, values)
	}
	if values, ok := single["RSI_14"]; ok {
		series.SetColumn(models.ColRSI, values)
	}
	if values, ok := single["Volume_MA_20"]; ok {
		series.SetColumn(models.ColVolumeMA20, values)
	}
	if values, ok := multi["ADX_14"]; ok {
		series.SetColumn(models.ColADX, values["adx"])
		series.SetColumn(models.ColPlusDI, values["plus_di"])
		series.SetColumn(models.ColMinusDI, values["minus_di"])
	}
	if values, ok := multi["MACD_12_26_9"]; ok {
		series.SetColumn(models.ColMACD, values["macd"])
		series.SetColumn(models.ColMACDSignal, values["signal"])
		series.SetColumn(models.ColMACDHist, values["histogram"])
	}
	if values, ok := multi["BollingerBands_20_2.0"]; ok {
		series.SetColumn(models.ColBBWidth, values["bandwidth"])
		series.SetColumn(models.ColBBUpper, values["upper"])
		series.SetColumn(models.ColBBLower, values["lower"])
		series.SetColumn(models.ColBBMiddle, values["middle"])
	}

	return nil
}
