package commands

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrReconcilePaymentCommandIsNotConstructed = errors.New(
	"ReconcilePaymentCommand must be created via NewReconcilePaymentCommand constructor",
)

// ReconcilePaymentCommand is a gateway callback. It carries no actor: the
// gateway is authenticated by the transport.
type ReconcilePaymentCommand struct {
	paymentID     kernel.UUID
	status        payment.Status
	transactionID *string

	guard guard.ConstructorGuard
}

func NewReconcilePaymentCommand(
	paymentID kernel.UUID,
	status string,
	transactionID *string,
) (ReconcilePaymentCommand, error) {
	var idErr, statusErr error
	if err := paymentID.Validate(); err != nil {
		idErr = errs.NewValueIsRequiredErrorWithCause("payment_id", err)
	}

	s, err := payment.StatusFromString(strings.ToUpper(strings.TrimSpace(status)))
	if err != nil {
		statusErr = err
	}

	if err = errors.Join(idErr, statusErr); err != nil {
		return ReconcilePaymentCommand{}, err
	}

	return ReconcilePaymentCommand{
		paymentID:     paymentID,
		status:        s,
		transactionID: transactionID,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c ReconcilePaymentCommand) Validate() error {
	return c.guard.Validate(ErrReconcilePaymentCommandIsNotConstructed)
}

func (c ReconcilePaymentCommand) PaymentID() kernel.UUID { return c.paymentID }
func (c ReconcilePaymentCommand) Status() payment.Status { return c.status }
func (c ReconcilePaymentCommand) TransactionID() *string { return c.transactionID }
