package commands

import (
	"context"

	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/services"
)

// CreateDeliveryRequestCommandHandler registers a new PENDING request on behalf
// of the calling customer. Distance and price are derived here and nowhere else.
type CreateDeliveryRequestCommandHandler struct {
	uowFactory UoWFactory
	pricing    delivery.Pricing
	policy     services.AccessPolicy
	now        Clock
}

func NewCreateDeliveryRequestCommandHandler(
	uowFactory UoWFactory,
	pricing delivery.Pricing,
	clock Clock,
) CreateDeliveryRequestCommandHandler {
	return CreateDeliveryRequestCommandHandler{
		uowFactory: uowFactory,
		pricing:    pricing,
		policy:     services.NewAccessPolicy(),
		now:        clockOrDefault(clock),
	}
}

func (h CreateDeliveryRequestCommandHandler) Handle(
	ctx context.Context,
	cmd CreateDeliveryRequestCommand,
) (*delivery.Request, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if err := h.policy.AuthorizeCreateRequest(cmd.Actor()); err != nil {
		return nil, err
	}

	request, err := delivery.NewRequest(
		cmd.ID(),
		cmd.Actor().ID(),
		cmd.Pickup(),
		cmd.Dropoff(),
		cmd.PackageType(),
		h.pricing,
		h.now(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	// The customer row backs the foreign key of the new request.
	if err = uow.UserRepository().Save(ctx, cmd.Actor()); err != nil {
		return nil, err
	}

	if err = uow.DeliveryRequestRepository().Add(ctx, request); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return request, nil
}
