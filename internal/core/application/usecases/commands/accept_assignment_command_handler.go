package commands

import (
	"context"
	"fmt"

	"marketplace/internal/core/domain/model/assignment"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
)

// AcceptAssignmentCommandHandler lets the assigned driver take the job. The
// assignment becomes ACCEPTED and the request IN_PROGRESS in one transaction.
type AcceptAssignmentCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.NotificationSink
	policy     services.AccessPolicy
	now        Clock
}

func NewAcceptAssignmentCommandHandler(
	uowFactory UoWFactory,
	notifier ports.NotificationSink,
	clock Clock,
) AcceptAssignmentCommandHandler {
	return AcceptAssignmentCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		policy:     services.NewAccessPolicy(),
		now:        clockOrDefault(clock),
	}
}

func (h AcceptAssignmentCommandHandler) Handle(ctx context.Context, cmd AcceptAssignmentCommand) (*assignment.Assignment, error) {
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

	if err = h.policy.AuthorizeAssignmentAction(cmd.Actor(), asg, "accept"); err != nil {
		return nil, err
	}

	request, err := uow.DeliveryRequestRepository().GetForUpdate(ctx, asg.DeliveryRequestID())
	if err != nil {
		return nil, err
	}

	if err = asg.Accept(); err != nil {
		return nil, err
	}

	if err = request.Start(h.now()); err != nil {
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
		fmt.Sprintf("A driver accepted your delivery request %s and is on the way.", request.ID()))

	return asg, nil
}
