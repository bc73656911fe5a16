package services

import (
	"errors"
	"math"

	"marketplace/internal/core/domain/model/kernel"
)

// ErrDriverNotFound is returned when no candidate is available.
var ErrDriverNotFound = errors.New("driver not found")

// DriverCandidate is a free driver and, if known, their last tracked position.
type DriverCandidate struct {
	ID        kernel.UUID
	LastKnown *kernel.Location
}

// DriverDispatcher picks the driver closest to the pickup point. Drivers
// without a known position are only chosen when nobody has one; ties keep the
// first candidate.
type DriverDispatcher struct{}

func NewDriverDispatcher() DriverDispatcher {
	return DriverDispatcher{}
}

func (DriverDispatcher) Pick(pickup kernel.Location, candidates []DriverCandidate) (DriverCandidate, error) {
	if err := pickup.Validate(); err != nil {
		return DriverCandidate{}, err
	}

	var (
		best     *DriverCandidate
		bestKm   = math.MaxFloat64
		fallback *DriverCandidate
	)

	for i := range candidates {
		c := &candidates[i]
		if err := c.ID.Validate(); err != nil {
			return DriverCandidate{}, err
		}

		if c.LastKnown == nil {
			if fallback == nil {
				fallback = c
			}
			continue
		}

		km, err := c.LastKnown.DistanceTo(pickup)
		if err != nil {
			return DriverCandidate{}, err
		}
		if km < bestKm {
			bestKm = km
			best = c
		}
	}

	switch {
	case best != nil:
		return *best, nil
	case fallback != nil:
		return *fallback, nil
	default:
		return DriverCandidate{}, ErrDriverNotFound
	}
}
