// Package actor models the authenticated caller of a workflow operation.
//
// Actor is a closed variant: only Admin, Driver and Customer implement it, so
// authorization code can switch over the concrete type instead of comparing
// role strings.
package actor

import (
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// Actor is implemented by Admin, Driver and Customer only.
type Actor interface {
	ID() kernel.UUID
	Role() Role
	isActor()
}

type Admin struct{ id kernel.UUID }

type Driver struct{ id kernel.UUID }

type Customer struct{ id kernel.UUID }

func (a Admin) ID() kernel.UUID    { return a.id }
func (a Driver) ID() kernel.UUID   { return a.id }
func (a Customer) ID() kernel.UUID { return a.id }

func (Admin) Role() Role    { return RoleAdmin }
func (Driver) Role() Role   { return RoleDriver }
func (Customer) Role() Role { return RoleCustomer }

func (Admin) isActor()    {}
func (Driver) isActor()   {}
func (Customer) isActor() {}

// System is the admin identity used by background jobs.
var System = Admin{id: kernel.UUIDFrom([16]byte{15: 1})}

// New builds the variant matching role. id must be a constructed UUID.
func New(id kernel.UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("actor id", err)
	}

	switch role {
	case RoleAdmin:
		return Admin{id: id}, nil
	case RoleDriver:
		return Driver{id: id}, nil
	case RoleCustomer:
		return Customer{id: id}, nil
	default:
		return nil, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", role))
	}
}

func NewAdmin(id kernel.UUID) Admin       { return Admin{id: id} }
func NewDriver(id kernel.UUID) Driver     { return Driver{id: id} }
func NewCustomer(id kernel.UUID) Customer { return Customer{id: id} }
