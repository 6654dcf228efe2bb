package timeoff_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/warp/timeoff-tracker/generic"
	"github.com/warp/timeoff-tracker/timeoff"
)

// =============================================================================
// TEST SETUP
// =============================================================================

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

func date(s string) generic.Date { return generic.MustParseDate(s) }

func assertHours(t *testing.T, want string, got generic.Amount) {
	t.Helper()
	assert.Truef(t, decimal.RequireFromString(want).Equal(got.Value), "want %s hours, got %s", want, got.Value)
}

func vacation(start, end, hours string) timeoff.Draft {
	return timeoff.Draft{Start: start, End: end, Category: timeoff.Vacation, Hours: hours}
}

func entryIDs(entries []timeoff.Entry) []timeoff.EntryID {
	ids := make([]timeoff.EntryID, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}
