package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/tracking"
)

// TrackingRepository is append-only.
type TrackingRepository interface {
	Add(ctx context.Context, ping *tracking.Ping) error

	// ListByDeliveryRequest returns pings oldest first.
	ListByDeliveryRequest(ctx context.Context, deliveryRequestID kernel.UUID) ([]*tracking.Ping, error)
}
