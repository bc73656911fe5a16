package assignment

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status of a single assignment attempt. REJECTED is terminal, ACCEPTED stays
// ACCEPTED after the delivery is completed.
type Status int

const (
	Unknown Status = iota
	Assigned
	Accepted
	Rejected
)

func getStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Assigned: "ASSIGNED",
		Accepted: "ACCEPTED",
		Rejected: "REJECTED",
	}
}

func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid assignment status", s))
}

func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid assignment status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}
