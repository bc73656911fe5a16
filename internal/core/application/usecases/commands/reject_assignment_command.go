package commands

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/assignment"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrRejectAssignmentCommandIsNotConstructed = errors.New(
	"RejectAssignmentCommand must be created via NewRejectAssignmentCommand constructor",
)

type RejectAssignmentCommand struct {
	actor        actor.Actor
	assignmentID kernel.UUID
	reason       string

	guard guard.ConstructorGuard
}

// NewRejectAssignmentCommand requires a non-blank reason.
func NewRejectAssignmentCommand(a actor.Actor, assignmentID kernel.UUID, reason string) (RejectAssignmentCommand, error) {
	reason = strings.TrimSpace(reason)

	var reasonErr error
	switch {
	case reason == "":
		reasonErr = errs.NewValueIsRequiredError("rejection_reason")
	case len(reason) > assignment.MaxRejectionReasonLength:
		reasonErr = errs.NewValueIsOutOfRangeError("rejection_reason length",
			len(reason), 1, assignment.MaxRejectionReasonLength)
	}

	if err := errors.Join(validateAssignmentAction(a, assignmentID), reasonErr); err != nil {
		return RejectAssignmentCommand{}, err
	}

	return RejectAssignmentCommand{
		actor:        a,
		assignmentID: assignmentID,
		reason:       reason,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c RejectAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrRejectAssignmentCommandIsNotConstructed)
}

func (c RejectAssignmentCommand) Actor() actor.Actor        { return c.actor }
func (c RejectAssignmentCommand) AssignmentID() kernel.UUID { return c.assignmentID }
func (c RejectAssignmentCommand) Reason() string            { return c.reason }
