// Package ports defines the contracts between the workflow core and the
// adapters that persist, notify and talk to payment gateways.
package ports

import (
	"context"

	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"
)

// DeliveryRequestRepository persists delivery request aggregates.
type DeliveryRequestRepository interface {
	Add(ctx context.Context, aggregate *delivery.Request) error

	Update(ctx context.Context, aggregate *delivery.Request) error

	// Get returns errs.ObjectNotFoundError when the request does not exist.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Request, error)

	// GetForUpdate is Get plus a row lock held until the unit of work ends.
	// Concurrent writers of the same request are serialized through it.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*delivery.Request, error)

	// GetFirstAssignable locks and returns the oldest PENDING request, or nil
	// when there is none. Rows locked by other transactions are skipped.
	GetFirstAssignable(ctx context.Context) (*delivery.Request, error)
}
