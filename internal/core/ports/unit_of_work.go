package ports

import (
	"context"
)

// UnitOfWorkFactory creates one UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories returned by it
// are bound to the transaction started by Begin; nothing is visible to other
// units of work before Commit.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit returns an error if there is no active transaction.
	Commit(ctx context.Context) error

	// Rollback is a no-op after a successful Commit.
	Rollback(ctx context.Context) error

	DeliveryRequestRepository() DeliveryRequestRepository
	AssignmentRepository() AssignmentRepository
	PaymentRepository() PaymentRepository
	TrackingRepository() TrackingRepository
	UserRepository() UserRepository
}
