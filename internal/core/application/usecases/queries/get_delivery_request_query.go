package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetDeliveryRequestQueryIsNotConstructed = errors.New(
	"GetDeliveryRequestQuery must be created via NewGetDeliveryRequestQuery constructor",
)

// GetDeliveryRequestQuery reads one request together with every assignment
// attempt made for it.
//
//	query, err := NewGetDeliveryRequestQuery(caller, id)
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrAccessDenied) {
//	    // the caller is neither the owner, an admin nor an assigned driver
//	}
type GetDeliveryRequestQuery struct {
	actor actor.Actor
	id    kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetDeliveryRequestQuery(a actor.Actor, id kernel.UUID) (GetDeliveryRequestQuery, error) {
	if err := validateActorAndID(a, "delivery_request_id", id); err != nil {
		return GetDeliveryRequestQuery{}, err
	}
	return GetDeliveryRequestQuery{actor: a, id: id, guard: guard.NewConstructorGuard()}, nil
}

func (q GetDeliveryRequestQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryRequestQueryIsNotConstructed)
}

type WaypointView struct {
	Address   string
	Latitude  float64
	Longitude float64
}

type AssignmentView struct {
	ID                kernel.UUID
	DriverID          kernel.UUID
	DeliveryRequestID kernel.UUID
	AssignedAt        time.Time
	Status            string
	RejectionReason   *string
}

// DeliveryRequestView is the read model of a request. Price is nil only for
// legacy rows without a price.
type DeliveryRequestView struct {
	ID          kernel.UUID
	CustomerID  kernel.UUID
	Pickup      WaypointView
	Dropoff     WaypointView
	DistanceKm  float64
	Price       *float64
	IsPaid      bool
	Status      string
	PackageType string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Assignments []AssignmentView
}
