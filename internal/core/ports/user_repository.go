package ports

import (
	"context"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"
)

// UserRepository mirrors the users known to the identity provider so that
// driver and customer references can be checked for role.
type UserRepository interface {
	// Get returns errs.ObjectNotFoundError when the user has never been seen.
	Get(ctx context.Context, id kernel.UUID) (actor.Actor, error)

	// Save inserts the user or updates its role.
	Save(ctx context.Context, user actor.Actor) error

	// ListAvailableDrivers returns drivers without an ASSIGNED or in-progress
	// assignment, excluding those who already rejected excludeRejectedFor.
	// LastKnown is filled from the newest tracking ping of each driver.
	ListAvailableDrivers(ctx context.Context, excludeRejectedFor kernel.UUID) ([]services.DriverCandidate, error)
}
