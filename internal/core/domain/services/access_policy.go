package services

import (
	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/assignment"
	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/pkg/errs"
)

// AccessPolicy answers object-level visibility and action questions. It holds
// no state; callers load the request and its assignment history.
type AccessPolicy struct{}

func NewAccessPolicy() AccessPolicy {
	return AccessPolicy{}
}

// CanAccess reports whether a may see request. Drivers see every request they
// were ever assigned to, including rejected attempts.
func (AccessPolicy) CanAccess(a actor.Actor, request *delivery.Request, history []*assignment.Assignment) bool {
	switch a := a.(type) {
	case actor.Admin:
		return true
	case actor.Customer:
		return request.IsOwnedBy(a.ID())
	case actor.Driver:
		for _, asg := range history {
			if asg.IsHeldBy(a.ID()) && asg.DeliveryRequestID().IsEqual(request.ID()) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// AuthorizeAssign allows admins only.
func (AccessPolicy) AuthorizeAssign(a actor.Actor) error {
	if _, ok := a.(actor.Admin); ok {
		return nil
	}
	return errs.NewAccessDeniedError(roleOf(a), "assign drivers")
}

// AuthorizeCreateRequest allows customers only; the request is created on their behalf.
func (AccessPolicy) AuthorizeCreateRequest(a actor.Actor) error {
	if _, ok := a.(actor.Customer); ok {
		return nil
	}
	return errs.NewAccessDeniedError(roleOf(a), "create delivery requests")
}

// AuthorizeAssignmentAction allows only the driver holding the assignment.
func (AccessPolicy) AuthorizeAssignmentAction(a actor.Actor, asg *assignment.Assignment, action string) error {
	if d, ok := a.(actor.Driver); ok && asg.IsHeldBy(d.ID()) {
		return nil
	}
	return errs.NewAccessDeniedError(roleOf(a), action+" this assignment")
}

// AuthorizeOwnerOrAdmin allows admins and the customer who owns the request.
func (AccessPolicy) AuthorizeOwnerOrAdmin(a actor.Actor, request *delivery.Request, action string) error {
	switch a := a.(type) {
	case actor.Admin:
		return nil
	case actor.Customer:
		if request.IsOwnedBy(a.ID()) {
			return nil
		}
	}
	return errs.NewAccessDeniedError(roleOf(a), action)
}

func roleOf(a actor.Actor) string {
	if a == nil {
		return ""
	}
	return a.Role().String()
}
