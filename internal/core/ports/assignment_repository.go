package ports

import (
	"context"

	"marketplace/internal/core/domain/model/assignment"
	"marketplace/internal/core/domain/model/kernel"
)

type AssignmentRepository interface {
	Add(ctx context.Context, aggregate *assignment.Assignment) error
	Update(ctx context.Context, aggregate *assignment.Assignment) error
	Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error)
	GetForUpdate(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error)

	// ListByDeliveryRequest returns every attempt for the request, oldest first.
	ListByDeliveryRequest(ctx context.Context, deliveryRequestID kernel.UUID) ([]*assignment.Assignment, error)
}
