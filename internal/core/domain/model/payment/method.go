package payment

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

type Method int

const (
	MethodUnknown Method = iota
	MethodCard
	MethodMobileMoney
	MethodPayPal
	MethodOnDelivery
)

func getMethodStrings() map[Method]string {
	//nolint:exhaustive // MethodUnknown is intentionally excluded as it's invalid
	return map[Method]string{
		MethodCard:        "CARD",
		MethodMobileMoney: "MOBILE_MONEY",
		MethodPayPal:      "PAYPAL",
		MethodOnDelivery:  "ON_DELIVERY",
	}
}

func MethodFromString(s string) (Method, error) {
	for m, str := range getMethodStrings() {
		if str == s {
			return m, nil
		}
	}
	return MethodUnknown, errs.NewValueIsInvalidErrorWithCause("payment_method",
		fmt.Errorf("%q is not a valid payment method", s))
}

func (m Method) Validate() error {
	if _, ok := getMethodStrings()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("payment_method",
			fmt.Errorf("%d is not a valid payment method", m))
	}
	return nil
}

func (m Method) String() string {
	if str, ok := getMethodStrings()[m]; ok {
		return str
	}
	return "UNKNOWN"
}

// RequiresGateway reports whether the payer completes the payment on an external
// checkout page. Payments on delivery are settled by the driver.
func (m Method) RequiresGateway() bool {
	return m == MethodCard || m == MethodMobileMoney || m == MethodPayPal
}
