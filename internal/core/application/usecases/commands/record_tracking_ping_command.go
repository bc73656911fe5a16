package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrRecordTrackingPingCommandIsNotConstructed = errors.New(
	"RecordTrackingPingCommand must be created via NewRecordTrackingPingCommand constructor",
)

type RecordTrackingPingCommand struct {
	actor             actor.Actor
	id                kernel.UUID
	deliveryRequestID kernel.UUID
	location          kernel.Location

	guard guard.ConstructorGuard
}

func NewRecordTrackingPingCommand(
	a actor.Actor,
	deliveryRequestID kernel.UUID,
	latitude *float64,
	longitude *float64,
) (RecordTrackingPingCommand, error) {
	var actorErr, idErr error
	if a == nil {
		actorErr = errs.NewValueIsRequiredError("actor")
	}
	if err := deliveryRequestID.Validate(); err != nil {
		idErr = errs.NewValueIsRequiredErrorWithCause("delivery_request_id", err)
	}

	var locErr error
	var loc kernel.Location
	switch {
	case latitude == nil || longitude == nil:
		var latErr, lngErr error
		if latitude == nil {
			latErr = errs.NewValueIsRequiredError("latitude")
		}
		if longitude == nil {
			lngErr = errs.NewValueIsRequiredError("longitude")
		}
		locErr = errors.Join(latErr, lngErr)
	default:
		loc, locErr = kernel.NewLocation(*latitude, *longitude)
	}

	if err := errors.Join(actorErr, idErr, locErr); err != nil {
		return RecordTrackingPingCommand{}, err
	}

	return RecordTrackingPingCommand{
		actor:             a,
		id:                kernel.NewUUID(),
		deliveryRequestID: deliveryRequestID,
		location:          loc,
		guard:             guard.NewConstructorGuard(),
	}, nil
}

func (c RecordTrackingPingCommand) Validate() error {
	return c.guard.Validate(ErrRecordTrackingPingCommandIsNotConstructed)
}

func (c RecordTrackingPingCommand) Actor() actor.Actor             { return c.actor }
func (c RecordTrackingPingCommand) ID() kernel.UUID                { return c.id }
func (c RecordTrackingPingCommand) DeliveryRequestID() kernel.UUID { return c.deliveryRequestID }
func (c RecordTrackingPingCommand) Location() kernel.Location      { return c.location }
