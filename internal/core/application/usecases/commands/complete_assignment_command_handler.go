package commands

import (
	"context"
	"fmt"

	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
)

// CompleteAssignmentCommandHandler marks the delivery as done. The assignment
// itself stays ACCEPTED; only the request moves to COMPLETED.
type CompleteAssignmentCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.NotificationSink
	policy     services.AccessPolicy
	now        Clock
}

func NewCompleteAssignmentCommandHandler(
	uowFactory UoWFactory,
	notifier ports.NotificationSink,
	clock Clock,
) CompleteAssignmentCommandHandler {
	return CompleteAssignmentCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		policy:     services.NewAccessPolicy(),
		now:        clockOrDefault(clock),
	}
}

func (h CompleteAssignmentCommandHandler) Handle(ctx context.Context, cmd CompleteAssignmentCommand) (*delivery.Request, error) {
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

	if err = h.policy.AuthorizeAssignmentAction(cmd.Actor(), asg, "complete"); err != nil {
		return nil, err
	}

	if err = asg.EnsureCompletable(); err != nil {
		return nil, err
	}

	request, err := uow.DeliveryRequestRepository().GetForUpdate(ctx, asg.DeliveryRequestID())
	if err != nil {
		return nil, err
	}

	if err = request.Complete(h.now()); err != nil {
		return nil, err
	}

	if err = uow.DeliveryRequestRepository().Update(ctx, request); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.Notify(ctx, request.CustomerID(),
		fmt.Sprintf("Your delivery request %s has been delivered.", request.ID()))

	return request, nil
}
