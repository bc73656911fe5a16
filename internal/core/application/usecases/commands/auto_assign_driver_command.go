package commands

import (
	"errors"

	"marketplace/internal/pkg/guard"
)

var ErrAutoAssignDriverCommandIsNotConstructed = errors.New(
	"AutoAssignDriverCommand must be created via NewAutoAssignDriverCommand constructor",
)

// AutoAssignDriverCommand carries no input: the oldest PENDING request and the
// nearest free driver are looked up by the handler.
type AutoAssignDriverCommand struct {
	guard guard.ConstructorGuard
}

func NewAutoAssignDriverCommand() AutoAssignDriverCommand {
	return AutoAssignDriverCommand{guard: guard.NewConstructorGuard()}
}

func (c AutoAssignDriverCommand) Validate() error {
	return c.guard.Validate(ErrAutoAssignDriverCommandIsNotConstructed)
}
