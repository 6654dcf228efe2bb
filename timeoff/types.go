// Package timeoff implements the per-year paid time-off engine.
// It keeps allocation and entries per calendar year, derives balances from
// them and maps dates onto a monthly calendar grid.
package timeoff

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/warp/timeoff-tracker/generic"
)

// =============================================================================
// CATEGORY - Closed set of time-off kinds
// =============================================================================

type Category int

const (
	Vacation Category = iota
	Personal
	Floater
	Stat
)

// Descriptor is the static presentation data of a category.
type Descriptor struct {
	Name    string // wire name
	Label   string
	Color   string
	Icon    string
	Deducts bool // false means entries never reduce a balance
}

var descriptors = [...]Descriptor{
	Vacation: {Name: "vacation", Label: "Vacation", Color: "blue", Icon: "sun", Deducts: true},
	Personal: {Name: "personal", Label: "Personal", Color: "purple", Icon: "user", Deducts: true},
	Floater:  {Name: "floater", Label: "Floater", Color: "amber", Icon: "star", Deducts: true},
	Stat:     {Name: "stat", Label: "Stat Holiday", Color: "green", Icon: "gift", Deducts: false},
}

// Categories lists every category in display order.
var Categories = []Category{Vacation, Personal, Floater, Stat}

// DeductingCategories are the categories that carry an allocation.
var DeductingCategories = []Category{Vacation, Personal, Floater}

func (c Category) Valid() bool { return c >= Vacation && c <= Stat }

func (c Category) Descriptor() Descriptor {
	if !c.Valid() {
		return Descriptor{}
	}
	return descriptors[c]
}

func (c Category) Deducts() bool { return c.Descriptor().Deducts }

func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return descriptors[c].Name
}

// ParseCategory maps a wire name back to its Category.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if descriptors[c].Name == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", generic.ErrUnknownCategory, s)
}

func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", generic.ErrUnknownCategory, int(c))
	}
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(b []byte) error {
	parsed, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// =============================================================================
// ALLOCATION - Hours granted per deducting category for one year
// =============================================================================

type Allocation struct {
	Vacation generic.Amount
	Personal generic.Amount
	Floater  generic.Amount
}

// DefaultAllocation is what a year looks like before anyone edits it.
func DefaultAllocation() Allocation {
	return Allocation{
		Vacation: generic.Hours(116.25),
		Personal: generic.Hours(23.25),
		Floater:  generic.Hours(15.5),
	}
}

// For returns the allocation of c. Stat has no allocation and yields zero.
func (a Allocation) For(c Category) generic.Amount {
	switch c {
	case Vacation:
		return a.Vacation
	case Personal:
		return a.Personal
	case Floater:
		return a.Floater
	default:
		return generic.ZeroHours()
	}
}

// With returns a copy of a with c set to hours. Stat is ignored.
func (a Allocation) With(c Category, hours generic.Amount) Allocation {
	switch c {
	case Vacation:
		a.Vacation = hours
	case Personal:
		a.Personal = hours
	case Floater:
		a.Floater = hours
	}
	return a
}

// Validate rejects negative hours.
func (a Allocation) Validate() error {
	for _, c := range DeductingCategories {
		if a.For(c).IsNegative() {
			return &generic.FieldError{Field: c.String(), Err: generic.ErrNegativeHours}
		}
	}
	return nil
}

// AllocationInput is the raw, user-typed form of an Allocation.
type AllocationInput struct {
	Vacation string
	Personal string
	Floater  string
}

// Parse converts raw input. Empty fields become zero; anything else that is
// not a non-negative number fails the whole allocation.
func (in AllocationInput) Parse() (Allocation, error) {
	var out Allocation
	fields := []struct {
		c   Category
		raw string
	}{{Vacation, in.Vacation}, {Personal, in.Personal}, {Floater, in.Floater}}

	for _, f := range fields {
		h, err := generic.ParseHoursOrZero(f.raw)
		if err != nil {
			return Allocation{}, &generic.FieldError{Field: f.c.String(), Err: err}
		}
		out = out.With(f.c, h)
	}
	return out, nil
}

// =============================================================================
// ENTRY - One scheduled block of time off
// =============================================================================

type EntryID string

// Entry is immutable once created. Edits are a remove followed by an add.
type Entry struct {
	ID          EntryID
	Start       generic.Date
	End         generic.Date
	Description string
	Category    Category
	Hours       generic.Amount // always zero for Stat
	Days        int            // business days in [Start, End], fixed at creation
}

// Period is the entry's date range.
func (e Entry) Period() generic.Period { return generic.Period{Start: e.Start, End: e.End} }

// Covers reports whether date falls inside the entry, inclusive at both ends.
func (e Entry) Covers(date generic.Date) bool { return e.Period().Contains(date) }

// =============================================================================
// YEAR LEDGER - Allocation plus entries for one calendar year
// =============================================================================

// YearLedger is treated as a value: every mutation produces a new one.
// Entries are kept sorted ascending by Start, ties in insertion order.
type YearLedger struct {
	Allocation Allocation
	Entries    []Entry
}

// DefaultLedger is the view of a year that has never been written.
func DefaultLedger() YearLedger {
	return YearLedger{Allocation: DefaultAllocation(), Entries: []Entry{}}
}

// Clone returns a ledger that shares no backing array with l.
func (l YearLedger) Clone() YearLedger {
	entries := make([]Entry, len(l.Entries))
	copy(entries, l.Entries)
	return YearLedger{Allocation: l.Allocation, Entries: entries}
}

// Entry looks up an entry by id.
func (l YearLedger) Entry(id EntryID) (Entry, bool) {
	for _, e := range l.Entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// hoursPerDayDefault is the standard workday used when no config is given.
var hoursPerDayDefault = decimal.RequireFromString("7.75")

// DefaultHoursPerDay returns the standard workday length (7.75 hours).
func DefaultHoursPerDay() decimal.Decimal { return hoursPerDayDefault }
