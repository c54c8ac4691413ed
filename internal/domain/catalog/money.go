package catalog

import (
	"math"

	"booking-engine/internal/pkg/errs"
)

type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errs.Mark(errs.New("price cannot be negative"), errs.ErrValidation)
	}
	return Money{cents: cents}, nil
}

// MoneyFromDecimal rounds a decimal amount such as 49.9 to the nearest cent.
func MoneyFromDecimal(amount float64) (Money, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Money{}, errs.Mark(errs.New("price must be a finite number"), errs.ErrValidation)
	}
	return NewMoney(int64(math.Round(amount * 100)))
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Decimal() float64 {
	return float64(m.cents) / 100.0
}
