package commands

import (
	"context"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/assignment"
	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/tracking"
	"marketplace/internal/pkg/errs"
)

// RecordTrackingPingCommandHandler appends a location ping. Only the driver
// holding the ACCEPTED assignment may report, and only while the request is
// IN_PROGRESS.
type RecordTrackingPingCommandHandler struct {
	uowFactory UoWFactory
	now        Clock
}

func NewRecordTrackingPingCommandHandler(uowFactory UoWFactory, clock Clock) RecordTrackingPingCommandHandler {
	return RecordTrackingPingCommandHandler{
		uowFactory: uowFactory,
		now:        clockOrDefault(clock),
	}
}

func (h RecordTrackingPingCommandHandler) Handle(ctx context.Context, cmd RecordTrackingPingCommand) (*tracking.Ping, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	driver, ok := cmd.Actor().(actor.Driver)
	if !ok {
		return nil, errs.NewAccessDeniedError(cmd.Actor().Role().String(), "record tracking")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	request, err := uow.DeliveryRequestRepository().Get(ctx, cmd.DeliveryRequestID())
	if err != nil {
		return nil, err
	}

	history, err := uow.AssignmentRepository().ListByDeliveryRequest(ctx, request.ID())
	if err != nil {
		return nil, err
	}

	if !holdsAccepted(history, driver) {
		return nil, errs.NewAccessDeniedError(driver.Role().String(), "record tracking for this delivery request")
	}

	if request.Status() != delivery.InProgress {
		return nil, errs.NewStateConflictError("delivery request", request.Status().String(), "record tracking for")
	}

	ping, err := tracking.NewPing(cmd.ID(), request.ID(), driver.ID(), cmd.Location(), h.now())
	if err != nil {
		return nil, err
	}

	if err = uow.TrackingRepository().Add(ctx, ping); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return ping, nil
}

func holdsAccepted(history []*assignment.Assignment, driver actor.Driver) bool {
	for _, asg := range history {
		if asg.IsHeldBy(driver.ID()) && asg.Status() == assignment.Accepted {
			return true
		}
	}
	return false
}
