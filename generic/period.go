package generic

import "time"

// =============================================================================
// PERIOD - An inclusive range of calendar dates
// =============================================================================

// Period is [Start, End], both ends included. A Period whose End is before
// its Start is inverted; it contains no dates.
//
// Examples:
//   - A one-day entry: Start == End
//   - A calendar month: MonthPeriod(2024, time.June)
//   - A ledger year: YearPeriod(2024)
type Period struct {
	Start Date
	End   Date
}

// NewPeriod validates the order of start and end.
func NewPeriod(start, end Date) (Period, error) {
	p := Period{Start: start, End: end}
	if p.Inverted() {
		return Period{}, ErrInvertedRange
	}
	return p, nil
}

func MonthPeriod(year int, month time.Month) Period {
	return Period{Start: StartOfMonth(year, month), End: EndOfMonth(year, month)}
}

func YearPeriod(year int) Period {
	return Period{Start: StartOfYear(year), End: EndOfYear(year)}
}

func (p Period) Inverted() bool { return p.End.Before(p.Start) }

// Contains returns true if date is within the period [Start, End].
func (p Period) Contains(date Date) bool {
	return date.Between(p.Start, p.End)
}

// Overlaps reports whether the two periods share at least one date.
func (p Period) Overlaps(other Period) bool {
	return !p.Inverted() && !other.Inverted() &&
		p.Start.BeforeOrEqual(other.End) && other.Start.BeforeOrEqual(p.End)
}

// Days returns every date in the period. Inverted periods yield none.
func (p Period) Days() []Date {
	var days []Date
	for current := p.Start; current.BeforeOrEqual(p.End); current = current.AddDays(1) {
		days = append(days, current)
	}
	return days
}

// BusinessDays counts the Monday-Friday dates in the period.
func (p Period) BusinessDays() int {
	return BusinessDays(p.Start, p.End)
}

// String returns a string representation of the period.
func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}

// Display renders "Jun 3, 2024 - Jun 5, 2024", or a single date for
// one-day periods.
func (p Period) Display() string {
	if p.Start.Equal(p.End) {
		return p.Start.Display()
	}
	return p.Start.Display() + " - " + p.End.Display()
}
