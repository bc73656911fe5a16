package services

import (
	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"
)

// PricePerKm is the tariff applied to the great-circle distance of a route.
const PricePerKm = 1.5

var _ delivery.Pricing = PricingCalculator{}

// PricingCalculator prices a route as round(distance_km * PricePerKm, 2).
type PricingCalculator struct{}

func NewPricingCalculator() PricingCalculator {
	return PricingCalculator{}
}

func (PricingCalculator) Quote(from kernel.Location, to kernel.Location) (float64, kernel.Money, error) {
	distanceKm, err := from.DistanceTo(to)
	if err != nil {
		return 0, kernel.Money{}, err
	}

	price, err := kernel.MoneyFromAmount(distanceKm * PricePerKm)
	if err != nil {
		return 0, kernel.Money{}, err
	}

	return distanceKm, price, nil
}
