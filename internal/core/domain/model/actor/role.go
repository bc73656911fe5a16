package actor

import (
	"fmt"
	"strings"

	"marketplace/internal/pkg/errs"
)

type Role int

const (
	RoleUnknown Role = iota
	RoleAdmin
	RoleDriver
	RoleCustomer
)

func getRoleStrings() map[Role]string {
	//nolint:exhaustive // RoleUnknown is never persisted
	return map[Role]string{
		RoleAdmin:    "ADMIN",
		RoleDriver:   "DRIVER",
		RoleCustomer: "CUSTOMER",
	}
}

// RoleFromString is case-insensitive and surrounding whitespace is ignored.
func RoleFromString(s string) (Role, error) {
	needle := strings.ToUpper(strings.TrimSpace(s))
	for role, str := range getRoleStrings() {
		if str == needle {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "UNKNOWN"
}

func (r Role) Validate() error {
	if _, ok := getRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}
