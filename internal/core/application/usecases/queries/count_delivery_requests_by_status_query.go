package queries

import (
	"errors"

	"marketplace/internal/pkg/guard"
)

var ErrCountDeliveryRequestsByStatusQueryIsNotConstructed = errors.New(
	"CountDeliveryRequestsByStatusQuery must be created via NewCountDeliveryRequestsByStatusQuery constructor",
)

// CountDeliveryRequestsByStatusQuery feeds the workflow gauges. It is internal
// and carries no actor.
type CountDeliveryRequestsByStatusQuery struct {
	guard guard.ConstructorGuard
}

func NewCountDeliveryRequestsByStatusQuery() CountDeliveryRequestsByStatusQuery {
	return CountDeliveryRequestsByStatusQuery{guard: guard.NewConstructorGuard()}
}

func (q CountDeliveryRequestsByStatusQuery) Validate() error {
	return q.guard.Validate(ErrCountDeliveryRequestsByStatusQueryIsNotConstructed)
}
