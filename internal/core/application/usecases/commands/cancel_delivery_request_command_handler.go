package commands

import (
	"context"
	"fmt"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
)

// CancelDeliveryRequestCommandHandler cancels a PENDING request. A cancelled
// request can still be assigned later by an admin.
type CancelDeliveryRequestCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.NotificationSink
	policy     services.AccessPolicy
	now        Clock
}

func NewCancelDeliveryRequestCommandHandler(
	uowFactory UoWFactory,
	notifier ports.NotificationSink,
	clock Clock,
) CancelDeliveryRequestCommandHandler {
	return CancelDeliveryRequestCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		policy:     services.NewAccessPolicy(),
		now:        clockOrDefault(clock),
	}
}

func (h CancelDeliveryRequestCommandHandler) Handle(ctx context.Context, cmd CancelDeliveryRequestCommand) (*delivery.Request, error) {
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

	request, err := uow.DeliveryRequestRepository().GetForUpdate(ctx, cmd.DeliveryRequestID())
	if err != nil {
		return nil, err
	}

	if err = h.policy.AuthorizeOwnerOrAdmin(cmd.Actor(), request, "cancel this delivery request"); err != nil {
		return nil, err
	}

	if err = request.Cancel(h.now()); err != nil {
		return nil, err
	}

	if err = uow.DeliveryRequestRepository().Update(ctx, request); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if _, byAdmin := cmd.Actor().(actor.Admin); byAdmin {
		h.notifier.Notify(ctx, request.CustomerID(),
			fmt.Sprintf("Your delivery request %s was cancelled by support.", request.ID()))
	}

	return request, nil
}
