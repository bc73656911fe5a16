package services_test

import (
	"math"
	"testing"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLocation(t *testing.T, lat, lng float64) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(lat, lng)
	require.NoError(t, err)
	return loc
}

func TestPricingCalculator_Quote(t *testing.T) {
	calc := services.NewPricingCalculator()

	t.Run("one degree along the equator", func(t *testing.T) {
		km, price, err := calc.Quote(mustLocation(t, 0, 0), mustLocation(t, 0, 1))

		require.NoError(t, err)
		assert.InDelta(t, 111.19, km, 0.01)
		assert.Equal(t, "166.79", price.String())
	})

	t.Run("same point is free", func(t *testing.T) {
		km, price, err := calc.Quote(mustLocation(t, 10, 10), mustLocation(t, 10, 10))

		require.NoError(t, err)
		assert.Zero(t, km)
		assert.Equal(t, int64(0), price.Minor())
	})

	t.Run("price is distance times tariff rounded to cents", func(t *testing.T) {
		routes := [][4]float64{
			{52.52, 13.405, 48.8566, 2.3522},
			{-33.8688, 151.2093, -37.8136, 144.9631},
			{40.7128, -74.006, 34.0522, -118.2437},
			{0, 179.9, 0, -179.9},
		}
		for _, r := range routes {
			km, price, err := calc.Quote(mustLocation(t, r[0], r[1]), mustLocation(t, r[2], r[3]))
			require.NoError(t, err)
			assert.Equal(t, int64(math.Round(km*services.PricePerKm*100)), price.Minor())
		}
	})

	t.Run("unconstructed location", func(t *testing.T) {
		_, _, err := calc.Quote(kernel.Location{}, mustLocation(t, 0, 0))
		require.ErrorIs(t, err, kernel.ErrLocationIsNotConstructed)
	})
}
