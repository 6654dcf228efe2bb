package timeoff

import (
	"fmt"
	"strings"
	"time"

	"github.com/warp/timeoff-tracker/generic"
)

// =============================================================================
// CALENDAR AGGREGATOR - Dates to grid cells
// =============================================================================

// MonthGrid is the layout of one month on a seven-column grid.
type MonthGrid struct {
	Year              int
	Month             time.Month
	DaysInMonth       int
	LeadingBlankCells int          // column of day 1, 0 = WeekStart
	WeekStart         time.Weekday
}

// DayCell is one populated square of the grid.
type DayCell struct {
	Date    generic.Date
	Entries []Entry // ledger order, ascending by start date
}

// MonthView is a grid plus the entries of every day in it.
type MonthView struct {
	Grid MonthGrid
	Days []DayCell
}

// CalendarAggregator answers "what is scheduled on this day" questions.
type CalendarAggregator struct {
	WeekStart time.Weekday
}

// MonthGrid returns the grid metadata of year/month.
func (ca CalendarAggregator) MonthGrid(year int, month time.Month) (MonthGrid, error) {
	if !generic.ValidMonth(month) {
		return MonthGrid{}, fmt.Errorf("%w: %d", generic.ErrInvalidMonth, int(month))
	}
	first := generic.StartOfMonth(year, month)
	return MonthGrid{
		Year:              year,
		Month:             month,
		DaysInMonth:       generic.DaysInMonth(year, month),
		LeadingBlankCells: (int(first.Weekday()) - int(ca.WeekStart) + 7) % 7,
		WeekStart:         ca.WeekStart,
	}, nil
}

// EntriesForDate returns every entry whose range contains date, in ledger
// order. Overlapping entries are all returned.
func (ca CalendarAggregator) EntriesForDate(l YearLedger, date generic.Date) []Entry {
	out := []Entry{}
	for _, e := range l.Entries {
		if e.Covers(date) {
			out = append(out, e)
		}
	}
	return out
}

// MonthView builds the grid and the per-day entry lists of a month.
func (ca CalendarAggregator) MonthView(l YearLedger, year int, month time.Month) (MonthView, error) {
	grid, err := ca.MonthGrid(year, month)
	if err != nil {
		return MonthView{}, err
	}
	view := MonthView{Grid: grid, Days: make([]DayCell, 0, grid.DaysInMonth)}
	for _, date := range generic.MonthPeriod(year, month).Days() {
		view.Days = append(view.Days, DayCell{Date: date, Entries: ca.EntriesForDate(l, date)})
	}
	return view, nil
}

// WeekdayHeaders returns short day names starting at WeekStart.
func (ca CalendarAggregator) WeekdayHeaders() []string {
	headers := make([]string, 7)
	for i := range headers {
		headers[i] = time.Weekday((int(ca.WeekStart) + i) % 7).String()[:3]
	}
	return headers
}

// ParseWeekStart accepts "sunday" or "monday" (any case). Empty means Sunday.
func ParseWeekStart(s string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sunday":
		return time.Sunday, nil
	case "monday":
		return time.Monday, nil
	default:
		return time.Sunday, fmt.Errorf("unsupported week start %q", s)
	}
}
