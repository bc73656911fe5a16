package commands

import (
	"context"

	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// CreatePaymentResult carries the new payment and, for gateway methods, the
// checkout reference the payer should be sent to.
type CreatePaymentResult struct {
	Payment          *payment.Payment
	GatewayReference *string
}

// CreatePaymentCommandHandler records a PENDING payment for the current price
// of a request. Gateway methods start a checkout before the transaction is
// committed, so a gateway failure leaves no payment behind.
type CreatePaymentCommandHandler struct {
	uowFactory UoWFactory
	gateway    ports.PaymentGateway
	policy     services.AccessPolicy
	now        Clock
}

func NewCreatePaymentCommandHandler(
	uowFactory UoWFactory,
	gateway ports.PaymentGateway,
	clock Clock,
) CreatePaymentCommandHandler {
	return CreatePaymentCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
		policy:     services.NewAccessPolicy(),
		now:        clockOrDefault(clock),
	}
}

func (h CreatePaymentCommandHandler) Handle(ctx context.Context, cmd CreatePaymentCommand) (CreatePaymentResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreatePaymentResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreatePaymentResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	request, err := uow.DeliveryRequestRepository().GetForUpdate(ctx, cmd.DeliveryRequestID())
	if err != nil {
		return CreatePaymentResult{}, err
	}

	if err = h.policy.AuthorizeOwnerOrAdmin(cmd.Actor(), request, "create payments for this delivery request"); err != nil {
		return CreatePaymentResult{}, err
	}

	if request.IsPaid() {
		return CreatePaymentResult{}, errs.NewStateConflictError("delivery request", "PAID", "create a payment for")
	}

	amount, err := request.PriceForPayment()
	if err != nil {
		return CreatePaymentResult{}, err
	}

	p, err := payment.NewPayment(cmd.ID(), request.ID(), amount, cmd.Currency(), cmd.Method(), h.now())
	if err != nil {
		return CreatePaymentResult{}, err
	}

	if err = uow.PaymentRepository().Add(ctx, p); err != nil {
		return CreatePaymentResult{}, err
	}

	result := CreatePaymentResult{Payment: p}
	if p.Method().RequiresGateway() {
		ref, err := h.gateway.Initiate(ctx, p)
		if err != nil {
			return CreatePaymentResult{}, err
		}
		result.GatewayReference = &ref
	}

	if err = uow.Commit(ctx); err != nil {
		return CreatePaymentResult{}, err
	}

	return result, nil
}
