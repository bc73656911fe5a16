package kernel

import (
	"fmt"
	"math"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("money must be created via NewMoney or MoneyFromAmount")

// Money is a non-negative amount kept in minor units (cents) so that prices copied
// into payments never drift through float arithmetic.
type Money struct {
	minor int64
	guard guard.ConstructorGuard
}

func NewMoney(minor int64) (Money, error) {
	if minor < 0 {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", minor, 0, math.MaxInt64)
	}
	return Money{minor: minor, guard: guard.NewConstructorGuard()}, nil
}

// MoneyFromAmount rounds a decimal amount half away from zero to 2 decimal places.
func MoneyFromAmount(amount float64) (Money, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Money{}, errs.NewValueIsInvalidError("amount")
	}
	return NewMoney(int64(math.Round(amount * 100)))
}

func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

func (m Money) Minor() int64 {
	return m.minor
}

func (m Money) Amount() float64 {
	return float64(m.minor) / 100
}

func (m Money) IsEqual(other Money) bool {
	return m.minor == other.minor
}

// String renders the amount with two decimals, e.g. "166.79".
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.minor/100, m.minor%100)
}
