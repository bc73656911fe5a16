// Package commands contains the workflow operations that modify state. Every
// handler validates its command, runs inside one unit of work and only talks
// to the outside world (notifications) after a successful commit.
package commands

import (
	"context"
	"time"

	"marketplace/internal/core/ports"
)

type (
	// TxManager handles the transaction lifecycle of a unit of work.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// UoW bundles the repositories bound to one transaction.
	//
	//   uow := factory.Create()
	//   if err := uow.Begin(ctx); err != nil { return err }
	//   defer func() { _ = uow.Rollback(ctx) }()
	//   ...
	//   return uow.Commit(ctx)
	UoW interface {
		TxManager
		DeliveryRequestRepository() ports.DeliveryRequestRepository
		AssignmentRepository() ports.AssignmentRepository
		PaymentRepository() ports.PaymentRepository
		TrackingRepository() ports.TrackingRepository
		UserRepository() ports.UserRepository
	}

	UoWFactory interface {
		Create() UoW
	}

	// Clock returns the current time. A nil Clock means time.Now in UTC.
	Clock func() time.Time
)

func clockOrDefault(clock Clock) Clock {
	if clock == nil {
		return func() time.Time { return time.Now().UTC() }
	}
	return clock
}
