package queries

import (
	"context"

	"marketplace/internal/core/domain/model/assignment"
	"marketplace/internal/core/domain/model/delivery"

	"gorm.io/gorm"
)

type GetDeliveryRequestQueryHandler struct {
	db *gorm.DB
}

func NewGetDeliveryRequestQueryHandler(db *gorm.DB) GetDeliveryRequestQueryHandler {
	return GetDeliveryRequestQueryHandler{db: db}
}

// Handle returns errs.ObjectNotFoundError for unknown ids and
// errs.AccessDeniedError when the caller may not see the request.
func (h GetDeliveryRequestQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryRequestQuery,
) (DeliveryRequestView, error) {
	if err := query.Validate(); err != nil {
		return DeliveryRequestView{}, err
	}

	request, history, err := loadVisible(ctx, h.db, query.actor, query.id)
	if err != nil {
		return DeliveryRequestView{}, err
	}

	return NewDeliveryRequestView(request, history), nil
}

// NewDeliveryRequestView builds the read model from aggregates. Command
// results are rendered through it as well.
func NewDeliveryRequestView(r *delivery.Request, history []*assignment.Assignment) DeliveryRequestView {
	view := DeliveryRequestView{
		ID:          r.ID(),
		CustomerID:  r.CustomerID(),
		Pickup:      newWaypointView(r.Pickup()),
		Dropoff:     newWaypointView(r.Dropoff()),
		DistanceKm:  r.DistanceKm(),
		IsPaid:      r.IsPaid(),
		Status:      r.Status().String(),
		PackageType: r.PackageType(),
		CreatedAt:   r.CreatedAt(),
		UpdatedAt:   r.UpdatedAt(),
		Assignments: make([]AssignmentView, 0, len(history)),
	}
	if p := r.Price(); p != nil {
		amount := p.Amount()
		view.Price = &amount
	}

	for _, a := range history {
		view.Assignments = append(view.Assignments, NewAssignmentView(a))
	}
	return view
}

func NewAssignmentView(a *assignment.Assignment) AssignmentView {
	return AssignmentView{
		ID:                a.ID(),
		DriverID:          a.DriverID(),
		DeliveryRequestID: a.DeliveryRequestID(),
		AssignedAt:        a.AssignedAt(),
		Status:            a.Status().String(),
		RejectionReason:   a.RejectionReason(),
	}
}

func newWaypointView(w delivery.Waypoint) WaypointView {
	return WaypointView{
		Address:   w.Address,
		Latitude:  w.Location.Latitude(),
		Longitude: w.Location.Longitude(),
	}
}
