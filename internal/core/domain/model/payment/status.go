package payment

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

type Status int

const (
	StatusUnknown Status = iota
	StatusPending
	StatusSuccess
	StatusFailed
)

func getStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusPending: "PENDING",
		StatusSuccess: "SUCCESS",
		StatusFailed:  "FAILED",
	}
}

func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not one of PENDING, SUCCESS, FAILED", s))
}

func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}
