package services_test

import (
	"testing"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriverDispatcher_Pick(t *testing.T) {
	dispatcher := services.NewDriverDispatcher()
	pickup := mustLocation(t, 0, 0)

	far := mustLocation(t, 10, 10)
	near := mustLocation(t, 0.1, 0.1)
	nearest := mustLocation(t, 0.01, 0)

	t.Run("nearest wins", func(t *testing.T) {
		candidates := []services.DriverCandidate{
			{ID: kernel.NewUUID(), LastKnown: &far},
			{ID: kernel.NewUUID()},
			{ID: kernel.NewUUID(), LastKnown: &nearest},
			{ID: kernel.NewUUID(), LastKnown: &near},
		}

		got, err := dispatcher.Pick(pickup, candidates)

		require.NoError(t, err)
		assert.True(t, got.ID.IsEqual(candidates[2].ID))
	})

	t.Run("unknown positions are a fallback", func(t *testing.T) {
		candidates := []services.DriverCandidate{{ID: kernel.NewUUID()}, {ID: kernel.NewUUID()}}

		got, err := dispatcher.Pick(pickup, candidates)

		require.NoError(t, err)
		assert.True(t, got.ID.IsEqual(candidates[0].ID))
	})

	t.Run("ties keep the first candidate", func(t *testing.T) {
		candidates := []services.DriverCandidate{
			{ID: kernel.NewUUID(), LastKnown: &near},
			{ID: kernel.NewUUID(), LastKnown: &near},
		}

		got, err := dispatcher.Pick(pickup, candidates)

		require.NoError(t, err)
		assert.True(t, got.ID.IsEqual(candidates[0].ID))
	})

	t.Run("no candidates", func(t *testing.T) {
		_, err := dispatcher.Pick(pickup, nil)
		require.ErrorIs(t, err, services.ErrDriverNotFound)
	})

	t.Run("invalid candidate id", func(t *testing.T) {
		_, err := dispatcher.Pick(pickup, []services.DriverCandidate{{}})
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}
