package commands

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrCreatePaymentCommandIsNotConstructed = errors.New(
	"CreatePaymentCommand must be created via NewCreatePaymentCommand constructor",
)

type CreatePaymentCommand struct {
	actor             actor.Actor
	id                kernel.UUID
	deliveryRequestID kernel.UUID
	method            payment.Method
	currency          string

	guard guard.ConstructorGuard
}

// NewCreatePaymentCommand parses the payment method name (CARD, MOBILE_MONEY,
// PAYPAL or ON_DELIVERY). An empty currency falls back to payment.DefaultCurrency.
func NewCreatePaymentCommand(
	a actor.Actor,
	deliveryRequestID kernel.UUID,
	method string,
	currency string,
) (CreatePaymentCommand, error) {
	var actorErr, idErr, methodErr error
	if a == nil {
		actorErr = errs.NewValueIsRequiredError("actor")
	}
	if err := deliveryRequestID.Validate(); err != nil {
		idErr = errs.NewValueIsRequiredErrorWithCause("delivery_request_id", err)
	}

	m, err := payment.MethodFromString(strings.ToUpper(strings.TrimSpace(method)))
	if err != nil {
		methodErr = err
	}

	if err = errors.Join(actorErr, idErr, methodErr); err != nil {
		return CreatePaymentCommand{}, err
	}

	return CreatePaymentCommand{
		actor:             a,
		id:                kernel.NewUUID(),
		deliveryRequestID: deliveryRequestID,
		method:            m,
		currency:          currency,
		guard:             guard.NewConstructorGuard(),
	}, nil
}

func (c CreatePaymentCommand) Validate() error {
	return c.guard.Validate(ErrCreatePaymentCommandIsNotConstructed)
}

func (c CreatePaymentCommand) Actor() actor.Actor             { return c.actor }
func (c CreatePaymentCommand) ID() kernel.UUID                { return c.id }
func (c CreatePaymentCommand) DeliveryRequestID() kernel.UUID { return c.deliveryRequestID }
func (c CreatePaymentCommand) Method() payment.Method         { return c.method }
func (c CreatePaymentCommand) Currency() string               { return c.currency }
