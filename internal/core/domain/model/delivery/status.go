package delivery

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status is the lifecycle state of a delivery request.
//
//	PENDING ──assign──> ASSIGNED ──start──> IN_PROGRESS ──complete──> COMPLETED
//	   ^  │                │
//	   │  └──cancel──┐     │
//	   └───release───┼─────┘
//	                 v
//	             CANCELLED ──assign──> ASSIGNED
//
// PENDING and CANCELLED are both assignable.
type Status int

const (
	Unknown Status = iota
	Pending
	Assigned
	InProgress
	Completed
	Cancelled
)

func getStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "PENDING",
		Assigned:   "ASSIGNED",
		InProgress: "IN_PROGRESS",
		Completed:  "COMPLETED",
		Cancelled:  "CANCELLED",
	}
}

// Statuses lists every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{Pending, Assigned, InProgress, Completed, Cancelled}
}

func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid delivery status", s))
}

func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid delivery status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsAssignable reports whether a driver may be assigned in this status.
func (s Status) IsAssignable() bool {
	return s == Pending || s == Cancelled
}

func (s Status) Assign() (Status, error) {
	if !s.IsAssignable() {
		return 0, s.conflict("assign")
	}
	return Assigned, nil
}

func (s Status) Start() (Status, error) {
	if s != Assigned {
		return 0, s.conflict("start")
	}
	return InProgress, nil
}

// Release returns an assigned request to the pool after the driver rejected it.
func (s Status) Release() (Status, error) {
	if s != Assigned {
		return 0, s.conflict("release")
	}
	return Pending, nil
}

func (s Status) Complete() (Status, error) {
	if s != InProgress {
		return 0, s.conflict("complete")
	}
	return Completed, nil
}

func (s Status) Cancel() (Status, error) {
	if s != Pending {
		return 0, s.conflict("cancel")
	}
	return Cancelled, nil
}

func (s Status) conflict(action string) error {
	return errs.NewStateConflictError("delivery request", s.String(), action)
}
