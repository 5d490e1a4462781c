package risk

import (
	"trade-planner/internal/config"
	"trade-planner/internal/models"
)

// VehicleSelector chooses the instrument used to express a qualified
// trade. The policy is stock first: options are suggested only for
// swing timeframes with enough expected movement to pay for the
// premium.
type VehicleSelector struct {
	minMoveForOptions float64
}

// NewVehicleSelector creates a selector from the configured minimum
// expected move for options.
func NewVehicleSelector(cfg config.RiskConfig) *VehicleSelector {
	return &VehicleSelector{minMoveForOptions: cfg.MinMoveForOptions}
}

// Select returns the vehicle and, for option vehicles, the suggested
// delta and days-to-expiry ranges. Day and scalp timeframes always
// trade stock.
func (s *VehicleSelector) Select(timeframe models.Timeframe, regime models.VolatilityRegime, bias models.Bias, expectedMovePercent float64) (models.Vehicle, *models.OptionParams) {
	if timeframe != models.TimeframeSwing {
		return models.VehicleStock, nil
	}
	if expectedMovePercent < s.minMoveForOptions {
		return models.VehicleStock, nil
	}

	switch regime {
	case models.VolatilityMedium:
		vehicle := models.VehiclePut
		if bias == models.BiasBullish {
			vehicle = models.VehicleCall
		}
		return vehicle, &models.OptionParams{
			DeltaLow:  0.60,
			DeltaHigh: 0.75,
			DTEMin:    30,
			DTEMax:    45,
			Note:      "in the money directional contract",
		}
	case models.VolatilityHigh:
		vehicle := models.VehiclePutSpread
		if bias == models.BiasBullish {
			vehicle = models.VehicleCallSpread
		}
		return vehicle, &models.OptionParams{
			DeltaLow:  0.30,
			DeltaHigh: 0.50,
			DTEMin:    30,
			DTEMax:    60,
			Note:      "width the spread roughly to the expected move",
		}
	default:
		return models.VehicleStock, nil
	}
}
