// Package assignment models one attempt to pair a driver with a delivery request.
// Every attempt is kept, so the set of assignments of a request is its audit trail.
package assignment

import (
	"errors"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

const MaxRejectionReasonLength = 500

var (
	ErrAssignmentIsNotConstructed = errors.New("Assignment must be created via NewAssignment constructor")

	// ErrNotAccepted is returned when completing an assignment the driver never accepted.
	ErrNotAccepted = errs.NewValueIsInvalidErrorWithCause("assignment",
		errors.New("only accepted assignments can be completed"))
)

type Assignment struct {
	id                kernel.UUID
	driverID          kernel.UUID
	deliveryRequestID kernel.UUID
	assignedAt        time.Time
	status            Status
	rejectionReason   *string

	isConstructed bool
}

func NewAssignment(id, driverID, deliveryRequestID kernel.UUID, assignedAt time.Time) (*Assignment, error) {
	a := &Assignment{
		assignedAt:    assignedAt,
		status:        Assigned,
		isConstructed: true,
	}

	if err := errors.Join(
		validateID("id", id),
		validateID("driver_id", driverID),
		validateID("delivery_request_id", deliveryRequestID),
	); err != nil {
		return nil, err
	}
	a.id = id
	a.driverID = driverID
	a.deliveryRequestID = deliveryRequestID

	return a, nil
}

func RestoreAssignment(
	id, driverID, deliveryRequestID kernel.UUID,
	assignedAt time.Time,
	status Status,
	rejectionReason *string,
) (*Assignment, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	return &Assignment{
		id:                id,
		driverID:          driverID,
		deliveryRequestID: deliveryRequestID,
		assignedAt:        assignedAt,
		status:            status,
		rejectionReason:   rejectionReason,
		isConstructed:     true,
	}, nil
}

func (a *Assignment) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAssignmentIsNotConstructed
	}
	return nil
}

func (a *Assignment) ID() kernel.UUID                { return a.id }
func (a *Assignment) DriverID() kernel.UUID          { return a.driverID }
func (a *Assignment) DeliveryRequestID() kernel.UUID { return a.deliveryRequestID }
func (a *Assignment) AssignedAt() time.Time          { return a.assignedAt }
func (a *Assignment) Status() Status                 { return a.status }

// RejectionReason is non-nil iff the assignment is REJECTED.
func (a *Assignment) RejectionReason() *string {
	return a.rejectionReason
}

func (a *Assignment) IsHeldBy(driverID kernel.UUID) bool {
	return a.driverID.IsEqual(driverID)
}

// Accept is allowed once, from ASSIGNED. Accepting twice is a conflict.
func (a *Assignment) Accept() error {
	if a.status != Assigned {
		return errs.NewStateConflictError("assignment", a.status.String(), "accept")
	}
	a.status = Accepted
	return nil
}

// Reject requires a non-blank reason and is allowed only from ASSIGNED.
func (a *Assignment) Reject(reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewValueIsRequiredError("rejection_reason")
	}
	if len(reason) > MaxRejectionReasonLength {
		return errs.NewValueIsOutOfRangeError("rejection_reason length", len(reason), 1, MaxRejectionReasonLength)
	}
	if a.status != Assigned {
		return errs.NewStateConflictError("assignment", a.status.String(), "reject")
	}
	a.status = Rejected
	a.rejectionReason = &reason
	return nil
}

// EnsureCompletable fails with ErrNotAccepted unless the driver accepted the work.
func (a *Assignment) EnsureCompletable() error {
	if a.status != Accepted {
		return ErrNotAccepted
	}
	return nil
}

func validateID(param string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(param, err)
	}
	return nil
}
