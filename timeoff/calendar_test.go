package timeoff_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/timeoff-tracker/generic"
	"github.com/warp/timeoff-tracker/timeoff"
)

// =============================================================================
// MONTH GRID
// =============================================================================

func TestMonthGrid(t *testing.T) {
	tests := []struct {
		name      string
		weekStart time.Weekday
		year      int
		month     time.Month
		days      int
		leading   int
	}{
		{"june 2024 starts saturday", time.Sunday, 2024, time.June, 30, 6},
		{"june 2024 monday weeks", time.Monday, 2024, time.June, 30, 5},
		{"leap february", time.Sunday, 2024, time.February, 29, 4},
		{"plain february", time.Sunday, 2023, time.February, 28, 3},
		{"september 2024 starts sunday", time.Sunday, 2024, time.September, 30, 0},
		{"september 2024 monday weeks", time.Monday, 2024, time.September, 30, 6},
		{"january 2024 starts monday", time.Monday, 2024, time.January, 31, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid, err := timeoff.CalendarAggregator{WeekStart: tt.weekStart}.MonthGrid(tt.year, tt.month)
			require.NoError(t, err)
			assert.Equal(t, tt.days, grid.DaysInMonth)
			assert.Equal(t, tt.leading, grid.LeadingBlankCells)
		})
	}
}

func TestMonthGrid_InvalidMonth(t *testing.T) {
	ca := timeoff.CalendarAggregator{}

	_, err := ca.MonthGrid(2024, 0)
	assert.ErrorIs(t, err, generic.ErrInvalidMonth)

	_, err = ca.MonthGrid(2024, 13)
	assert.ErrorIs(t, err, generic.ErrInvalidMonth)
}

func TestWeekdayHeaders(t *testing.T) {
	assert.Equal(t, []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}, timeoff.CalendarAggregator{}.WeekdayHeaders())
	assert.Equal(t, []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
		timeoff.CalendarAggregator{WeekStart: time.Monday}.WeekdayHeaders())
}

func TestParseWeekStart(t *testing.T) {
	ws, err := timeoff.ParseWeekStart("Monday")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, ws)

	ws, err = timeoff.ParseWeekStart("")
	require.NoError(t, err)
	assert.Equal(t, time.Sunday, ws)

	_, err = timeoff.ParseWeekStart("wednesday")
	assert.Error(t, err)
}

// =============================================================================
// ENTRIES FOR DATE
// =============================================================================

func TestEntriesForDate_InclusiveAndOrdered(t *testing.T) {
	ca := timeoff.CalendarAggregator{}

	// GIVEN: A week of vacation (entry-1) overlapped by a stat day (entry-2)
	// and a personal block running past the weekend (entry-3)
	l := ledgerWith(t,
		vacation("2024-06-03", "2024-06-07", "38.75"),
		timeoff.Draft{Start: "2024-06-05", End: "2024-06-05", Category: timeoff.Stat},
		timeoff.Draft{Start: "2024-06-07", End: "2024-06-10", Category: timeoff.Personal, Hours: "8"},
	)

	assert.Equal(t, []timeoff.EntryID{"entry-1"}, entryIDs(ca.EntriesForDate(l, date("2024-06-03"))))
	assert.Equal(t, []timeoff.EntryID{"entry-1", "entry-2"}, entryIDs(ca.EntriesForDate(l, date("2024-06-05"))))
	assert.Equal(t, []timeoff.EntryID{"entry-1", "entry-3"}, entryIDs(ca.EntriesForDate(l, date("2024-06-07"))))
	assert.Equal(t, []timeoff.EntryID{"entry-3"}, entryIDs(ca.EntriesForDate(l, date("2024-06-08"))))
	assert.Equal(t, []timeoff.EntryID{"entry-3"}, entryIDs(ca.EntriesForDate(l, date("2024-06-10"))))
	assert.Empty(t, ca.EntriesForDate(l, date("2024-06-02")))
	assert.Empty(t, ca.EntriesForDate(l, date("2024-06-11")))
}

func TestEntriesForDate_MatchesCoverage(t *testing.T) {
	ca := timeoff.CalendarAggregator{}
	l := ledgerWith(t,
		vacation("2024-06-03", "2024-06-07", "38.75"),
		vacation("2024-06-20", "2024-06-21", "15.5"),
		timeoff.Draft{Start: "2024-06-14", End: "2024-06-14", Category: timeoff.Stat},
	)

	for day := generic.NewDate(2024, time.May, 25); day.BeforeOrEqual(generic.NewDate(2024, time.July, 5)); day = day.AddDays(1) {
		var want []timeoff.EntryID
		for _, e := range l.Entries {
			if !day.Before(e.Start) && !day.After(e.End) {
				want = append(want, e.ID)
			}
		}
		got := entryIDs(ca.EntriesForDate(l, day))
		if len(want) == 0 {
			assert.Empty(t, got, day.String())
		} else {
			assert.Equal(t, want, got, day.String())
		}
	}
}

// =============================================================================
// MONTH VIEW
// =============================================================================

func TestMonthView(t *testing.T) {
	ca := timeoff.CalendarAggregator{}
	l := ledgerWith(t,
		vacation("2024-05-30", "2024-06-04", "31"),
		timeoff.Draft{Start: "2024-07-01", End: "2024-07-01", Category: timeoff.Stat},
	)

	view, err := ca.MonthView(l, 2024, time.June)

	require.NoError(t, err)
	assert.Equal(t, 6, view.Grid.LeadingBlankCells)
	require.Len(t, view.Days, 30)
	assert.Equal(t, "2024-06-01", view.Days[0].Date.String())
	assert.Equal(t, "2024-06-30", view.Days[29].Date.String())

	for i, cell := range view.Days {
		if i < 4 {
			assert.Len(t, cell.Entries, 1, cell.Date.String())
		} else {
			assert.Empty(t, cell.Entries, cell.Date.String())
		}
	}

	_, err = ca.MonthView(l, 2024, 13)
	assert.ErrorIs(t, err, generic.ErrInvalidMonth)
}
