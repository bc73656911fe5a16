package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrSyncActorCommandIsNotConstructed = errors.New(
	"SyncActorCommand must be created via NewSyncActorCommand constructor",
)

// SyncActorCommand records an authenticated caller in the user directory.
type SyncActorCommand struct {
	actor actor.Actor

	guard guard.ConstructorGuard
}

func NewSyncActorCommand(a actor.Actor) (SyncActorCommand, error) {
	if a == nil {
		return SyncActorCommand{}, errs.NewValueIsRequiredError("actor")
	}
	return SyncActorCommand{actor: a, guard: guard.NewConstructorGuard()}, nil
}

func (c SyncActorCommand) Validate() error {
	return c.guard.Validate(ErrSyncActorCommandIsNotConstructed)
}

func (c SyncActorCommand) Actor() actor.Actor { return c.actor }
