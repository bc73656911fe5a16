package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetTrackingHistoryQueryIsNotConstructed = errors.New(
	"GetTrackingHistoryQuery must be created via NewGetTrackingHistoryQuery constructor",
)

type GetTrackingHistoryQuery struct {
	actor             actor.Actor
	deliveryRequestID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetTrackingHistoryQuery(a actor.Actor, deliveryRequestID kernel.UUID) (GetTrackingHistoryQuery, error) {
	if err := validateActorAndID(a, "delivery_request_id", deliveryRequestID); err != nil {
		return GetTrackingHistoryQuery{}, err
	}
	return GetTrackingHistoryQuery{
		actor:             a,
		deliveryRequestID: deliveryRequestID,
		guard:             guard.NewConstructorGuard(),
	}, nil
}

func (q GetTrackingHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetTrackingHistoryQueryIsNotConstructed)
}

type TrackingPingView struct {
	ID         kernel.UUID
	DriverID   kernel.UUID
	Latitude   float64
	Longitude  float64
	RecordedAt time.Time
}
