package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/assignment"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
)

var (
	ErrNoAssignableRequest = errors.New("no pending delivery request found")
	ErrNoAvailableDrivers  = errors.New("no available drivers found")
)

// AutoAssignDriverCommandHandler assigns the oldest PENDING request to the
// nearest available driver, acting as actor.System. Drivers who already
// rejected that request are not offered it again.
//
//	err := handler.Handle(ctx, commands.NewAutoAssignDriverCommand())
//	switch {
//	case errors.Is(err, commands.ErrNoAssignableRequest):
//	    // nothing to do
//	case errors.Is(err, commands.ErrNoAvailableDrivers):
//	    // every driver is busy
//	}
type AutoAssignDriverCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.NotificationSink
	policy     services.AccessPolicy
	dispatcher services.DriverDispatcher
	now        Clock
}

func NewAutoAssignDriverCommandHandler(
	uowFactory UoWFactory,
	notifier ports.NotificationSink,
	clock Clock,
) AutoAssignDriverCommandHandler {
	return AutoAssignDriverCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		policy:     services.NewAccessPolicy(),
		dispatcher: services.NewDriverDispatcher(),
		now:        clockOrDefault(clock),
	}
}

func (h AutoAssignDriverCommandHandler) Handle(ctx context.Context, cmd AutoAssignDriverCommand) (*assignment.Assignment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if err := h.policy.AuthorizeAssign(actor.System); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	request, err := uow.DeliveryRequestRepository().GetFirstAssignable(ctx)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, ErrNoAssignableRequest
	}

	candidates, err := uow.UserRepository().ListAvailableDrivers(ctx, request.ID())
	if err != nil {
		return nil, err
	}

	chosen, err := h.dispatcher.Pick(request.Pickup().Location, candidates)
	if errors.Is(err, services.ErrDriverNotFound) {
		return nil, ErrNoAvailableDrivers
	}
	if err != nil {
		return nil, err
	}

	asg, err := assignDriver(ctx, uow, request, chosen.ID, h.now())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.Notify(ctx, asg.DriverID(), assignedMessage(request))

	return asg, nil
}
