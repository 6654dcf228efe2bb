/*
Package generic provides the domain-agnostic primitives of the tracker.

PURPOSE:
  The time-off engine needs two kinds of values that have nothing to do with
  vacations specifically: calendar dates and quantities of time. They live
  here so the timeoff package can stay focused on ledgers and balances.

KEY CONCEPTS IN THIS FILE (types.go):
  - Amount: A decimal quantity with a unit (hours or days)
  - Hours/Days: Shorthand constructors
  - ParseHours: Lenient text-to-hours parsing used by commands

DESIGN PRINCIPLES:
  1. Precision: Uses decimal.Decimal so 116.25 - 23.25 is exactly 93
  2. Derived views: Day conversions never feed back into stored hours
  3. Plain dates: Date has day granularity and no zone (see time.go)

USAGE:
  used := generic.Hours(23.25)
  left := generic.Hours(116.25).Sub(used)
  left.InDays(decimal.NewFromFloat(7.75)).Display() // "12.00"

SEE ALSO:
  - time.go: Date, business-day counting, month bounds
  - period.go: Inclusive date ranges
  - errors.go: Sentinel and structured errors
*/
package generic

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// AMOUNT - Quantity with unit
// =============================================================================

type Amount struct {
	Value decimal.Decimal
	Unit  Unit
}

type Unit string

const (
	UnitHours Unit = "hours"
	UnitDays  Unit = "days"
)

// DisplayPlaces is the rounding applied to amounts shown to people.
const DisplayPlaces = 2

// MaxHours bounds user-entered hours. Larger values lose their meaning as
// time off and cannot be represented as JSON numbers.
var MaxHours = decimal.NewFromInt(100_000)

func NewAmount(value float64, unit Unit) Amount {
	return Amount{Value: decimal.NewFromFloat(value), Unit: unit}
}

func Hours(value float64) Amount { return NewAmount(value, UnitHours) }

func HoursOf(value decimal.Decimal) Amount { return Amount{Value: value, Unit: UnitHours} }

func ZeroHours() Amount { return Amount{Value: decimal.Zero, Unit: UnitHours} }

func (a Amount) Add(b Amount) Amount          { return Amount{Value: a.Value.Add(b.Value), Unit: a.Unit} }
func (a Amount) Sub(b Amount) Amount          { return Amount{Value: a.Value.Sub(b.Value), Unit: a.Unit} }
func (a Amount) Mul(s decimal.Decimal) Amount { return Amount{Value: a.Value.Mul(s), Unit: a.Unit} }
func (a Amount) IsNegative() bool             { return a.Value.IsNegative() }
func (a Amount) IsZero() bool                 { return a.Value.IsZero() }
func (a Amount) Equal(b Amount) bool          { return a.Unit == b.Unit && a.Value.Equal(b.Value) }
func (a Amount) Float64() float64             { return a.Value.InexactFloat64() }

// InDays converts an hour amount to days. The result is a view; callers must
// not store it back as hours.
func (a Amount) InDays(hoursPerDay decimal.Decimal) Amount {
	if a.Unit == UnitDays || hoursPerDay.IsZero() {
		return a
	}
	return Amount{Value: a.Value.Div(hoursPerDay), Unit: UnitDays}
}

// Rounded returns the amount rounded to DisplayPlaces.
func (a Amount) Rounded() Amount {
	return Amount{Value: a.Value.Round(DisplayPlaces), Unit: a.Unit}
}

// Display formats with exactly two decimals, e.g. "93.00".
func (a Amount) Display() string { return a.Value.StringFixed(DisplayPlaces) }

func (a Amount) String() string { return fmt.Sprintf("%s %s", a.Display(), a.Unit) }

// =============================================================================
// PARSING
// =============================================================================

// ParseHours parses user-entered hours. Empty input is ErrMissingHours and
// negatives are ErrNegativeHours. Anything that is not a number, or is above
// MaxHours, is ErrInvalidHours.
func ParseHours(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}, ErrMissingHours
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("%w: %q", ErrInvalidHours, s)
	}
	if v.IsNegative() {
		return Amount{}, fmt.Errorf("%w: %s", ErrNegativeHours, v)
	}
	if v.GreaterThan(MaxHours) {
		return Amount{}, fmt.Errorf("%w: %q exceeds %s", ErrInvalidHours, s, MaxHours)
	}
	return HoursOf(v), nil
}

// ParseHoursOrZero is ParseHours with empty input coerced to zero hours.
// Used for allocation fields, where clearing the input means "none".
func ParseHoursOrZero(s string) (Amount, error) {
	if strings.TrimSpace(s) == "" {
		return ZeroHours(), nil
	}
	return ParseHours(s)
}
