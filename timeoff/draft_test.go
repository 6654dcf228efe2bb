package timeoff_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/timeoff-tracker/timeoff"
)

func TestDraft_SuggestHours(t *testing.T) {
	hpd := timeoff.DefaultHoursPerDay()

	// GIVEN: Both dates set on a deducting draft
	hours, ok := vacation("2024-06-03", "2024-06-07", "").SuggestHours(hpd)

	// THEN: Business days times hours per day
	require.True(t, ok)
	assertHours(t, "38.75", hours)

	hours, ok = vacation("2024-06-07", "2024-06-10", "").SuggestHours(decimal.NewFromInt(8))
	require.True(t, ok)
	assertHours(t, "16", hours)
}

func TestDraft_SuggestHours_NeedsBothDates(t *testing.T) {
	hpd := timeoff.DefaultHoursPerDay()

	_, ok := vacation("2024-06-03", "", "").SuggestHours(hpd)
	assert.False(t, ok)

	_, ok = vacation("", "2024-06-03", "").SuggestHours(hpd)
	assert.False(t, ok)

	_, ok = vacation("2024-06-07", "2024-06-03", "").SuggestHours(hpd)
	assert.False(t, ok, "inverted range has no suggestion")
}

func TestDraft_SuggestHours_NoneForStat(t *testing.T) {
	_, ok := timeoff.Draft{Start: "2024-12-25", End: "2024-12-26", Category: timeoff.Stat}.SuggestHours(timeoff.DefaultHoursPerDay())
	assert.False(t, ok)
}
