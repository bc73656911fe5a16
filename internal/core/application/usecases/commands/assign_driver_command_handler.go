package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/assignment"
	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// AssignDriverCommandHandler lets an admin hand a PENDING or CANCELLED request
// to a driver. Each call creates a new assignment; earlier ones stay as history.
type AssignDriverCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.NotificationSink
	policy     services.AccessPolicy
	now        Clock
}

func NewAssignDriverCommandHandler(
	uowFactory UoWFactory,
	notifier ports.NotificationSink,
	clock Clock,
) AssignDriverCommandHandler {
	return AssignDriverCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		policy:     services.NewAccessPolicy(),
		now:        clockOrDefault(clock),
	}
}

func (h AssignDriverCommandHandler) Handle(ctx context.Context, cmd AssignDriverCommand) (*assignment.Assignment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if err := h.policy.AuthorizeAssign(cmd.Actor()); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	request, err := uow.DeliveryRequestRepository().GetForUpdate(ctx, cmd.DeliveryRequestID())
	if err != nil {
		return nil, err
	}

	asg, err := assignDriver(ctx, uow, request, cmd.DriverID(), h.now())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.Notify(ctx, asg.DriverID(), assignedMessage(request))

	return asg, nil
}

// assignDriver is shared by manual and automatic assignment. request must be
// locked by the caller.
func assignDriver(
	ctx context.Context,
	uow UoW,
	request *delivery.Request,
	driverID kernel.UUID,
	now time.Time,
) (*assignment.Assignment, error) {
	// A request that cannot take a driver is a conflict whoever the driver is.
	if _, err := request.Status().Assign(); err != nil {
		return nil, err
	}

	if err := ensureDriver(ctx, uow.UserRepository(), driverID); err != nil {
		return nil, err
	}

	if err := request.Assign(now); err != nil {
		return nil, err
	}

	asg, err := assignment.NewAssignment(kernel.NewUUID(), driverID, request.ID(), now)
	if err != nil {
		return nil, err
	}

	if err = uow.AssignmentRepository().Add(ctx, asg); err != nil {
		return nil, err
	}

	if err = uow.DeliveryRequestRepository().Update(ctx, request); err != nil {
		return nil, err
	}

	return asg, nil
}

func ensureDriver(ctx context.Context, users ports.UserRepository, driverID kernel.UUID) error {
	user, err := users.Get(ctx, driverID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return errs.NewValueIsInvalidErrorWithCause("driver_id", fmt.Errorf("user %s is unknown", driverID))
	}
	if err != nil {
		return err
	}

	if _, ok := user.(actor.Driver); !ok {
		return errs.NewValueIsInvalidErrorWithCause("driver_id",
			fmt.Errorf("user %s has role %s", driverID, user.Role()))
	}
	return nil
}

func assignedMessage(request *delivery.Request) string {
	return fmt.Sprintf("You have been assigned delivery request %s (%.2f km, %s).",
		request.ID(), request.DistanceKm(), priceString(request))
}

func priceString(request *delivery.Request) string {
	if request.Price() == nil {
		return "no price"
	}
	return request.Price().String()
}
