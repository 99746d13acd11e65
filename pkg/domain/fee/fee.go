// Package fee computes fees from a fixed or percentage fee specification.
package fee

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Kind is the fee computation strategy.
type Kind string

const (
	KindFixed      Kind = "fixed"
	KindPercentage Kind = "percentage"
)

var (
	ErrUnknownKind   = errors.New("unknown fee type")
	ErrNegativeValue = errors.New("fee value must not be negative")

	hundred = decimal.NewFromInt(100)
)

// Spec is a fixed amount or a percentage (0-100) of the transacted amount.
type Spec struct {
	Kind  Kind
	Value decimal.Decimal
}

// Fixed returns a fixed-amount fee spec.
func Fixed(v decimal.Decimal) Spec {
	return Spec{Kind: KindFixed, Value: v}
}

// Percentage returns a percentage fee spec, e.g. Percentage(2) is 2%.
func Percentage(rate decimal.Decimal) Spec {
	return Spec{Kind: KindPercentage, Value: rate}
}

// Validate checks the spec is usable.
func (s Spec) Validate() error {
	if s.Value.IsNegative() {
		return ErrNegativeValue
	}
	switch s.Kind {
	case KindFixed, KindPercentage:
		return nil
	}
	return ErrUnknownKind
}

// Compute returns the fee for amount, rounded to 8 decimal places.
func (s Spec) Compute(amount decimal.Decimal) decimal.Decimal {
	switch s.Kind {
	case KindPercentage:
		return amount.Mul(s.Value).Div(hundred).Round(8)
	case KindFixed:
		return s.Value
	}
	return decimal.Zero
}

// Schedule holds the fee specs applied to the transfer variants.
type Schedule struct {
	Internal      Spec
	Local         Spec
	International Spec
}

// DefaultSchedule charges nothing internally, 1% locally and 2% internationally.
func DefaultSchedule() Schedule {
	return Schedule{
		Internal:      Percentage(decimal.Zero),
		Local:         Percentage(decimal.NewFromInt(1)),
		International: Percentage(decimal.NewFromInt(2)),
	}
}
