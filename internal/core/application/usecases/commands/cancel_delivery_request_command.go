package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrCancelDeliveryRequestCommandIsNotConstructed = errors.New(
	"CancelDeliveryRequestCommand must be created via NewCancelDeliveryRequestCommand constructor",
)

type CancelDeliveryRequestCommand struct {
	actor             actor.Actor
	deliveryRequestID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCancelDeliveryRequestCommand(a actor.Actor, deliveryRequestID kernel.UUID) (CancelDeliveryRequestCommand, error) {
	var actorErr, idErr error
	if a == nil {
		actorErr = errs.NewValueIsRequiredError("actor")
	}
	if err := deliveryRequestID.Validate(); err != nil {
		idErr = errs.NewValueIsRequiredErrorWithCause("delivery_request_id", err)
	}
	if err := errors.Join(actorErr, idErr); err != nil {
		return CancelDeliveryRequestCommand{}, err
	}

	return CancelDeliveryRequestCommand{
		actor:             a,
		deliveryRequestID: deliveryRequestID,
		guard:             guard.NewConstructorGuard(),
	}, nil
}

func (c CancelDeliveryRequestCommand) Validate() error {
	return c.guard.Validate(ErrCancelDeliveryRequestCommandIsNotConstructed)
}

func (c CancelDeliveryRequestCommand) Actor() actor.Actor             { return c.actor }
func (c CancelDeliveryRequestCommand) DeliveryRequestID() kernel.UUID { return c.deliveryRequestID }
