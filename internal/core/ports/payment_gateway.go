package ports

import (
	"context"

	"marketplace/internal/core/domain/model/payment"
)

// PaymentGateway starts an external checkout and returns the reference the
// payer needs to complete it. The outcome arrives later as a reconciliation.
type PaymentGateway interface {
	Initiate(ctx context.Context, p *payment.Payment) (string, error)
}
