package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrAcceptAssignmentCommandIsNotConstructed = errors.New(
	"AcceptAssignmentCommand must be created via NewAcceptAssignmentCommand constructor",
)

type AcceptAssignmentCommand struct {
	actor        actor.Actor
	assignmentID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAcceptAssignmentCommand(a actor.Actor, assignmentID kernel.UUID) (AcceptAssignmentCommand, error) {
	if err := validateAssignmentAction(a, assignmentID); err != nil {
		return AcceptAssignmentCommand{}, err
	}
	return AcceptAssignmentCommand{
		actor:        a,
		assignmentID: assignmentID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c AcceptAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrAcceptAssignmentCommandIsNotConstructed)
}

func (c AcceptAssignmentCommand) Actor() actor.Actor        { return c.actor }
func (c AcceptAssignmentCommand) AssignmentID() kernel.UUID { return c.assignmentID }

func validateAssignmentAction(a actor.Actor, assignmentID kernel.UUID) error {
	var actorErr, idErr error
	if a == nil {
		actorErr = errs.NewValueIsRequiredError("actor")
	}
	if err := assignmentID.Validate(); err != nil {
		idErr = errs.NewValueIsRequiredErrorWithCause("assignment_id", err)
	}
	return errors.Join(actorErr, idErr)
}
