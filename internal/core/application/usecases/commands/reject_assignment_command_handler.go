package commands

import (
	"context"
	"fmt"

	"marketplace/internal/core/domain/model/assignment"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
)

// RejectAssignmentCommandHandler records the driver's refusal and returns the
// request to PENDING so that a new assignment can be made.
type RejectAssignmentCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.NotificationSink
	policy     services.AccessPolicy
	now        Clock
}

func NewRejectAssignmentCommandHandler(
	uowFactory UoWFactory,
	notifier ports.NotificationSink,
	clock Clock,
) RejectAssignmentCommandHandler {
	return RejectAssignmentCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		policy:     services.NewAccessPolicy(),
		now:        clockOrDefault(clock),
	}
}

func (h RejectAssignmentCommandHandler) Handle(ctx context.Context, cmd RejectAssignmentCommand) (*assignment.Assignment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	asg, err := uow.AssignmentRepository().GetForUpdate(ctx, cmd.AssignmentID())
	if err != nil {
		return nil, err
	}

	if err = h.policy.AuthorizeAssignmentAction(cmd.Actor(), asg, "reject"); err != nil {
		return nil, err
	}

	request, err := uow.DeliveryRequestRepository().GetForUpdate(ctx, asg.DeliveryRequestID())
	if err != nil {
		return nil, err
	}

	if err = asg.Reject(cmd.Reason()); err != nil {
		return nil, err
	}

	if err = request.Release(h.now()); err != nil {
		return nil, err
	}

	if err = uow.AssignmentRepository().Update(ctx, asg); err != nil {
		return nil, err
	}

	if err = uow.DeliveryRequestRepository().Update(ctx, request); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.Notify(ctx, request.CustomerID(),
		fmt.Sprintf("The driver could not take delivery request %s. We are finding another driver.", request.ID()))

	return asg, nil
}
