package commands

import (
	"context"
	"fmt"

	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/core/ports"
)

// ReconcilePaymentCommandHandler applies a gateway status update. When the
// payment becomes SUCCESS the delivery request is marked paid in the same
// transaction. The payment row is locked before the request row.
type ReconcilePaymentCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.NotificationSink
	now        Clock
}

func NewReconcilePaymentCommandHandler(
	uowFactory UoWFactory,
	notifier ports.NotificationSink,
	clock Clock,
) ReconcilePaymentCommandHandler {
	return ReconcilePaymentCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		now:        clockOrDefault(clock),
	}
}

func (h ReconcilePaymentCommandHandler) Handle(ctx context.Context, cmd ReconcilePaymentCommand) (*payment.Payment, error) {
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

	p, err := uow.PaymentRepository().GetForUpdate(ctx, cmd.PaymentID())
	if err != nil {
		return nil, err
	}

	request, err := uow.DeliveryRequestRepository().GetForUpdate(ctx, p.DeliveryRequestID())
	if err != nil {
		return nil, err
	}

	becamePaid, err := p.Reconcile(cmd.Status(), cmd.TransactionID())
	if err != nil {
		return nil, err
	}

	if err = uow.PaymentRepository().Update(ctx, p); err != nil {
		return nil, err
	}

	if becamePaid {
		request.MarkPaid(h.now())
		if err = uow.DeliveryRequestRepository().Update(ctx, request); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	switch {
	case becamePaid:
		h.notifier.Notify(ctx, request.CustomerID(),
			fmt.Sprintf("Payment of %s %s for delivery request %s succeeded.",
				p.Amount(), p.Currency(), request.ID()))
	case p.Status() == payment.StatusFailed:
		h.notifier.Notify(ctx, request.CustomerID(),
			fmt.Sprintf("Payment for delivery request %s failed.", request.ID()))
	}

	return p, nil
}
