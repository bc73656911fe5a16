package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrAssignDriverCommandIsNotConstructed = errors.New(
	"AssignDriverCommand must be created via NewAssignDriverCommand constructor",
)

type AssignDriverCommand struct { //nolint:recvcheck //using for validation
	actor             actor.Actor
	deliveryRequestID kernel.UUID
	driverID          kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignDriverCommand(a actor.Actor, deliveryRequestID kernel.UUID, driverID kernel.UUID) (AssignDriverCommand, error) {
	cmd := AssignDriverCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setActor(a),
		cmd.setDeliveryRequestID(deliveryRequestID),
		cmd.setDriverID(driverID),
	); err != nil {
		return AssignDriverCommand{}, err
	}

	return cmd, nil
}

func (c AssignDriverCommand) Validate() error {
	return c.guard.Validate(ErrAssignDriverCommandIsNotConstructed)
}

func (c AssignDriverCommand) Actor() actor.Actor             { return c.actor }
func (c AssignDriverCommand) DeliveryRequestID() kernel.UUID { return c.deliveryRequestID }
func (c AssignDriverCommand) DriverID() kernel.UUID          { return c.driverID }

func (c *AssignDriverCommand) setActor(a actor.Actor) error {
	if a == nil {
		return errs.NewValueIsRequiredError("actor")
	}
	c.actor = a
	return nil
}

func (c *AssignDriverCommand) setDeliveryRequestID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("delivery_request_id", err)
	}
	c.deliveryRequestID = id
	return nil
}

func (c *AssignDriverCommand) setDriverID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("driver_id", err)
	}
	c.driverID = id
	return nil
}
