// Package queries contains read-only use cases. Handlers read straight from
// the database with raw SQL and never take row locks.
package queries

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/assignment"
	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type requestRow struct {
	ID             uuid.UUID
	CustomerID     uuid.UUID
	PickupAddress  string
	PickupLat      float64
	PickupLng      float64
	DropoffAddress string
	DropoffLat     float64
	DropoffLng     float64
	DistanceKm     float64
	PriceMinor     *int64
	IsPaid         bool
	Status         string
	PackageType    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type assignmentRow struct {
	ID                uuid.UUID
	DriverID          uuid.UUID
	DeliveryRequestID uuid.UUID
	AssignedAt        time.Time
	Status            string
	RejectionReason   *string
}

// loadVisible reads a request and its assignment history and checks that a
// may see it.
func loadVisible(
	ctx context.Context,
	db *gorm.DB,
	a actor.Actor,
	id kernel.UUID,
) (*delivery.Request, []*assignment.Assignment, error) {
	var rows []requestRow
	err := db.WithContext(ctx).Raw(`
		SELECT
			id, customer_id,
			pickup_address, pickup_lat, pickup_lng,
			dropoff_address, dropoff_lat, dropoff_lng,
			distance_km, price_minor, is_paid, status, package_type,
			created_at, updated_at
		FROM delivery_requests
		WHERE id = ?
	`, id.Bytes()).Scan(&rows).Error
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, errs.NewObjectNotFoundError("delivery request", id.String())
	}

	request, err := rows[0].toDomain()
	if err != nil {
		return nil, nil, err
	}

	var asgRows []assignmentRow
	err = db.WithContext(ctx).Raw(`
		SELECT id, driver_id, delivery_request_id, assigned_at, status, rejection_reason
		FROM assignments
		WHERE delivery_request_id = ?
		ORDER BY assigned_at, id
	`, id.Bytes()).Scan(&asgRows).Error
	if err != nil {
		return nil, nil, err
	}

	history := make([]*assignment.Assignment, 0, len(asgRows))
	for _, row := range asgRows {
		asg, convErr := row.toDomain()
		if convErr != nil {
			return nil, nil, convErr
		}
		history = append(history, asg)
	}

	if !services.NewAccessPolicy().CanAccess(a, request, history) {
		return nil, nil, errs.NewAccessDeniedError(roleOf(a), "view this delivery request")
	}

	return request, history, nil
}

func (r requestRow) toDomain() (*delivery.Request, error) {
	id, idErr := kernel.UUIDFromBytes(r.ID[:])
	customerID, customerErr := kernel.UUIDFromBytes(r.CustomerID[:])
	pickupLoc, pickupErr := kernel.NewLocation(r.PickupLat, r.PickupLng)
	dropoffLoc, dropoffErr := kernel.NewLocation(r.DropoffLat, r.DropoffLng)
	status, statusErr := delivery.StatusFromString(r.Status)
	if err := errors.Join(idErr, customerErr, pickupErr, dropoffErr, statusErr); err != nil {
		return nil, err
	}

	var price *kernel.Money
	if r.PriceMinor != nil {
		m, err := kernel.NewMoney(*r.PriceMinor)
		if err != nil {
			return nil, err
		}
		price = &m
	}

	return delivery.RestoreRequest(
		id,
		customerID,
		delivery.Waypoint{Address: r.PickupAddress, Location: pickupLoc},
		delivery.Waypoint{Address: r.DropoffAddress, Location: dropoffLoc},
		r.DistanceKm,
		price,
		r.IsPaid,
		status,
		r.PackageType,
		r.CreatedAt.UTC(),
		r.UpdatedAt.UTC(),
	)
}

func (r assignmentRow) toDomain() (*assignment.Assignment, error) {
	id, idErr := kernel.UUIDFromBytes(r.ID[:])
	driverID, driverErr := kernel.UUIDFromBytes(r.DriverID[:])
	requestID, requestErr := kernel.UUIDFromBytes(r.DeliveryRequestID[:])
	status, statusErr := assignment.StatusFromString(r.Status)
	if err := errors.Join(idErr, driverErr, requestErr, statusErr); err != nil {
		return nil, err
	}
	return assignment.RestoreAssignment(id, driverID, requestID, r.AssignedAt.UTC(), status, r.RejectionReason)
}

func roleOf(a actor.Actor) string {
	if a == nil {
		return ""
	}
	return a.Role().String()
}

func validateActorAndID(a actor.Actor, param string, id kernel.UUID) error {
	var actorErr, idErr error
	if a == nil {
		actorErr = errs.NewValueIsRequiredError("actor")
	}
	if err := id.Validate(); err != nil {
		idErr = errs.NewValueIsRequiredErrorWithCause(param, err)
	}
	return errors.Join(actorErr, idErr)
}
