package commands

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrCreateDeliveryRequestCommandIsNotConstructed = errors.New(
	"CreateDeliveryRequestCommand must be created via NewCreateDeliveryRequestCommand constructor",
)

// WaypointInput is a caller supplied route end. Coordinates are pointers so that a
// missing value can be told apart from zero.
type WaypointInput struct {
	Address   string
	Latitude  *float64
	Longitude *float64
}

type CreateDeliveryRequestCommand struct { //nolint:recvcheck //using for validation
	actor       actor.Actor
	id          kernel.UUID
	pickup      delivery.Waypoint
	dropoff     delivery.Waypoint
	packageType string

	guard guard.ConstructorGuard
}

// NewCreateDeliveryRequestCommand validates every coordinate and reports all
// problems at once.
func NewCreateDeliveryRequestCommand(
	a actor.Actor,
	pickup WaypointInput,
	dropoff WaypointInput,
	packageType string,
) (CreateDeliveryRequestCommand, error) {
	cmd := CreateDeliveryRequestCommand{
		id:          kernel.NewUUID(),
		packageType: strings.TrimSpace(packageType),
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(a),
		cmd.setPickup(pickup),
		cmd.setDropoff(dropoff),
	); err != nil {
		return CreateDeliveryRequestCommand{}, err
	}

	return cmd, nil
}

func (c CreateDeliveryRequestCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryRequestCommandIsNotConstructed)
}

func (c CreateDeliveryRequestCommand) Actor() actor.Actor         { return c.actor }
func (c CreateDeliveryRequestCommand) ID() kernel.UUID            { return c.id }
func (c CreateDeliveryRequestCommand) Pickup() delivery.Waypoint  { return c.pickup }
func (c CreateDeliveryRequestCommand) Dropoff() delivery.Waypoint { return c.dropoff }
func (c CreateDeliveryRequestCommand) PackageType() string        { return c.packageType }

func (c *CreateDeliveryRequestCommand) setActor(a actor.Actor) error {
	if a == nil {
		return errs.NewValueIsRequiredError("actor")
	}
	c.actor = a
	return nil
}

func (c *CreateDeliveryRequestCommand) setPickup(in WaypointInput) error {
	wp, err := toWaypoint("pickup", in)
	if err != nil {
		return err
	}
	c.pickup = wp
	return nil
}

func (c *CreateDeliveryRequestCommand) setDropoff(in WaypointInput) error {
	wp, err := toWaypoint("dropoff", in)
	if err != nil {
		return err
	}
	c.dropoff = wp
	return nil
}

func toWaypoint(prefix string, in WaypointInput) (delivery.Waypoint, error) {
	loc, err := kernel.NewLocationFromOptional(prefix, in.Latitude, in.Longitude)
	if err != nil {
		return delivery.Waypoint{}, err
	}
	return delivery.NewWaypoint(in.Address, loc)
}
