// Package payment tracks money owed for a delivery request and its reconciliation
// with an external payment gateway.
package payment

import (
	"errors"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

const (
	DefaultCurrency        = "USD"
	MaxTransactionIDLength = 255
	currencyCodeMinLength  = 3
	currencyCodeMaxLength  = 5
)

var ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment constructor")

type Payment struct {
	id                kernel.UUID
	deliveryRequestID kernel.UUID
	amount            kernel.Money
	currency          string
	method            Method
	transactionID     *string
	status            Status
	createdAt         time.Time

	isConstructed bool
}

// NewPayment creates a PENDING payment. amount is the delivery price at the time
// of creation and never changes afterwards. An empty currency means DefaultCurrency.
func NewPayment(
	id kernel.UUID,
	deliveryRequestID kernel.UUID,
	amount kernel.Money,
	currency string,
	method Method,
	createdAt time.Time,
) (*Payment, error) {
	p := &Payment{
		status:        StatusPending,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setDeliveryRequestID(deliveryRequestID),
		p.setAmount(amount),
		p.setCurrency(currency),
		p.setMethod(method),
	); err != nil {
		return nil, err
	}

	return p, nil
}

func RestorePayment(
	id kernel.UUID,
	deliveryRequestID kernel.UUID,
	amount kernel.Money,
	currency string,
	method Method,
	transactionID *string,
	status Status,
	createdAt time.Time,
) (*Payment, error) {
	if err := errors.Join(method.Validate(), status.Validate()); err != nil {
		return nil, err
	}
	return &Payment{
		id:                id,
		deliveryRequestID: deliveryRequestID,
		amount:            amount,
		currency:          currency,
		method:            method,
		transactionID:     transactionID,
		status:            status,
		createdAt:         createdAt,
		isConstructed:     true,
	}, nil
}

func (p *Payment) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPaymentIsNotConstructed
	}
	return nil
}

func (p *Payment) ID() kernel.UUID                { return p.id }
func (p *Payment) DeliveryRequestID() kernel.UUID { return p.deliveryRequestID }
func (p *Payment) Amount() kernel.Money           { return p.amount }
func (p *Payment) Currency() string               { return p.currency }
func (p *Payment) Method() Method                 { return p.method }
func (p *Payment) TransactionID() *string         { return p.transactionID }
func (p *Payment) Status() Status                 { return p.status }
func (p *Payment) CreatedAt() time.Time           { return p.createdAt }

// Reconcile applies a gateway callback.
//
// Once SUCCESS, a payment stays SUCCESS: a repeated SUCCESS with the same (or no)
// transaction id is a no-op, anything else is a conflict. A FAILED payment may
// still succeed on a later retry.
//
// It reports whether the payment became successful with this call.
func (p *Payment) Reconcile(status Status, transactionID *string) (bool, error) {
	if err := status.Validate(); err != nil {
		return false, err
	}

	var txID *string
	if transactionID != nil {
		trimmed := strings.TrimSpace(*transactionID)
		if trimmed != "" {
			if len(trimmed) > MaxTransactionIDLength {
				return false, errs.NewValueIsOutOfRangeError("transaction_id length",
					len(trimmed), 1, MaxTransactionIDLength)
			}
			txID = &trimmed
		}
	}

	if p.status == StatusSuccess {
		if status != StatusSuccess {
			return false, errs.NewStateConflictError("payment", p.status.String(), "mark as "+status.String())
		}
		if txID != nil && p.transactionID != nil && *txID != *p.transactionID {
			return false, errs.NewStateConflictError("payment", p.status.String(), "change transaction id of")
		}
		if txID != nil && p.transactionID == nil {
			p.transactionID = txID
		}
		return false, nil
	}

	p.status = status
	if txID != nil {
		p.transactionID = txID
	}
	return status == StatusSuccess, nil
}

func (p *Payment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Payment) setDeliveryRequestID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("delivery_request_id", err)
	}
	p.deliveryRequestID = id
	return nil
}

func (p *Payment) setAmount(amount kernel.Money) error {
	if err := amount.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("amount", err)
	}
	p.amount = amount
	return nil
}

func (p *Payment) setCurrency(currency string) error {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = DefaultCurrency
	}
	if len(currency) < currencyCodeMinLength || len(currency) > currencyCodeMaxLength {
		return errs.NewValueIsOutOfRangeError("currency length", len(currency),
			currencyCodeMinLength, currencyCodeMaxLength)
	}
	p.currency = currency
	return nil
}

func (p *Payment) setMethod(method Method) error {
	if err := method.Validate(); err != nil {
		return err
	}
	p.method = method
	return nil
}
