package generic

import (
	"fmt"
	"time"
)

// =============================================================================
// DATE - Plain calendar date (no time of day, no zone)
// =============================================================================

// DateLayout is the wire and storage form of a Date.
const DateLayout = "2006-01-02"

// Years accepted by ParseDate. The zero Date (0001-01-01) means "unset",
// so real dates must stay clear of it.
const (
	MinYear = 1900
	MaxYear = 9999
)

// Date is a calendar day. The zero value means "unset".
// Internally it is always midnight UTC so day arithmetic never crosses DST.
type Date struct {
	t time.Time
}

// Constructors
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func DateOf(t time.Time) Date { return NewDate(t.Year(), t.Month(), t.Day()) }

// ParseDate parses a YYYY-MM-DD string. Empty input is reported as
// ErrMissingDate; years outside MinYear..MaxYear are ErrInvalidDate.
func ParseDate(s string) (Date, error) {
	if s == "" {
		return Date{}, ErrMissingDate
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	if t.Year() < MinYear || t.Year() > MaxYear {
		return Date{}, fmt.Errorf("%w: %q outside years %d-%d", ErrInvalidDate, s, MinYear, MaxYear)
	}
	return Date{t: t}, nil
}

// MustParseDate is for tests and static tables.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Comparison
func (d Date) Before(other Date) bool        { return d.t.Before(other.t) }
func (d Date) After(other Date) bool         { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool         { return d.t.Equal(other.t) }
func (d Date) BeforeOrEqual(other Date) bool { return !d.After(other) }
func (d Date) AfterOrEqual(other Date) bool  { return !d.Before(other) }

// Between reports whether d lies in [from, to], inclusive at both ends.
func (d Date) Between(from, to Date) bool { return d.AfterOrEqual(from) && d.BeforeOrEqual(to) }

// Arithmetic
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

// Properties
func (d Date) Year() int             { return d.t.Year() }
func (d Date) Month() time.Month     { return d.t.Month() }
func (d Date) Day() int              { return d.t.Day() }
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }
func (d Date) IsWeekend() bool       { wd := d.Weekday(); return wd == time.Saturday || wd == time.Sunday }
func (d Date) IsWorkday() bool       { return !d.IsWeekend() }
func (d Date) IsZero() bool          { return d.t.IsZero() }

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

// Display renders the date for humans, e.g. "Jun 3, 2024".
func (d Date) Display() string { return d.t.Format("Jan 2, 2006") }

// MarshalText lets Date travel as "YYYY-MM-DD" in JSON and SQL.
func (d Date) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Date) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// =============================================================================
// BUSINESS DAYS
// =============================================================================

// BusinessDays counts Monday-Friday dates in [start, end] inclusive.
// No holiday calendar is consulted. When start is after end the walk never
// runs and the result is 0.
func BusinessDays(start, end Date) int {
	count := 0
	for d := start; d.BeforeOrEqual(end); d = d.AddDays(1) {
		if d.IsWorkday() {
			count++
		}
	}
	return count
}

// =============================================================================
// MONTH UTILITIES
// =============================================================================

func StartOfMonth(year int, month time.Month) Date { return NewDate(year, month, 1) }

func EndOfMonth(year int, month time.Month) Date {
	return Date{t: time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)}
}

func DaysInMonth(year int, month time.Month) int { return EndOfMonth(year, month).Day() }

// ValidMonth reports whether m is January..December.
func ValidMonth(m time.Month) bool { return m >= time.January && m <= time.December }

func StartOfYear(year int) Date { return NewDate(year, time.January, 1) }
func EndOfYear(year int) Date   { return NewDate(year, time.December, 31) }
