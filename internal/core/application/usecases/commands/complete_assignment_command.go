package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrCompleteAssignmentCommandIsNotConstructed = errors.New(
	"CompleteAssignmentCommand must be created via NewCompleteAssignmentCommand constructor",
)

type CompleteAssignmentCommand struct {
	actor        actor.Actor
	assignmentID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCompleteAssignmentCommand(a actor.Actor, assignmentID kernel.UUID) (CompleteAssignmentCommand, error) {
	if err := validateAssignmentAction(a, assignmentID); err != nil {
		return CompleteAssignmentCommand{}, err
	}
	return CompleteAssignmentCommand{
		actor:        a,
		assignmentID: assignmentID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c CompleteAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrCompleteAssignmentCommandIsNotConstructed)
}

func (c CompleteAssignmentCommand) Actor() actor.Actor        { return c.actor }
func (c CompleteAssignmentCommand) AssignmentID() kernel.UUID { return c.assignmentID }
