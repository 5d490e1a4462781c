package indicators

import (
	"fmt"

	"trade-planner/internal/models"
)

// RSI calculates the Relative Strength Index.
type RSI struct {
	period int
}

// NewRSI creates a new RSI indicator.
func NewRSI(period int) *RSI {
	return &RSI{period: period}
}

func (r *RSI) Name() string {
	return fmt.Sprintf("RSI_%d", r.period)
}

func (r *RSI) Period() int {
	return r.period
}

func (r *RSI) Calculate(bars []models.Bar) ([]float64, error) {
	if r.period <= 0 {
		return nil, ErrInvalidPeriod
	}
	if len(bars) < r.period+1 {
		return nil, ErrInsufficientData
	}

	n := len(bars)
	closes := closePrices(bars)
	result := make([]float64, n)

	gains := make([]float64, n)
	losses := make([]float64, n)
	for i := 1; i < n; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains[i] = change
		} else {
			losses[i] = -change
		}
	}

	avgGain := mean(gains[1 : r.period+1])
	avgLoss := mean(losses[1 : r.period+1])

	result[r.period] = rsiValue(avgGain, avgLoss)

	for i := r.period + 1; i < n; i++ {
		avgGain = (avgGain*float64(r.period-1) + gains[i]) / float64(r.period)
		avgLoss = (avgLoss*float64(r.period-1) + losses[i]) / float64(r.period)
		result[i] = rsiValue(avgGain, avgLoss)
	}

	return result, nil
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		if avgGain == 0 {
			return 50
		}
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

// VolumeMA calculates a simple moving average over bar volume.
type VolumeMA struct {
	period int
}

// NewVolumeMA creates a new volume moving average indicator.
func NewVolumeMA(period int) *VolumeMA {
	return &VolumeMA{period: period}
}

func (v *VolumeMA) Name() string {
	return fmt.Sprintf("Volume_MA_%d", v.period)
}

func (v *VolumeMA) Period() int {
	return v.period
}

func (v *VolumeMA) Calculate(bars []models.Bar) ([]float64, error) {
	if v.period <= 0 {
		return nil, ErrInvalidPeriod
	}
	if len(bars) < v.period {
		return nil, ErrInsufficientData
	}

	n := len(bars)
	result := make([]float64, n)
	volumes := make([]float64, n)
	for i, bar := range bars {
		volumes[i] = float64(bar.Volume)
	}

	for i := v.period - 1; i < n; i++ {
		result[i] = mean(volumes[i-v.period+1 : i+1])
	}

	return result, nil
}
