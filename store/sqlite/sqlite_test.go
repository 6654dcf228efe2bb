package sqlite_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/timeoff-tracker/generic"
	"github.com/warp/timeoff-tracker/store/sqlite"
	"github.com/warp/timeoff-tracker/timeoff"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestStore(t *testing.T) *sqlite.Store {
	store, err := sqlite.New()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func entry(id, start, end string, c timeoff.Category, hours string) timeoff.Entry {
	s, e := generic.MustParseDate(start), generic.MustParseDate(end)
	return timeoff.Entry{
		ID:          timeoff.EntryID(id),
		Start:       s,
		End:         e,
		Description: "desc " + id,
		Category:    c,
		Hours:       generic.HoursOf(decimal.RequireFromString(hours)),
		Days:        generic.BusinessDays(s, e),
	}
}

// =============================================================================
// STORE CONTRACT
// =============================================================================

func TestStore_LoadMissingYear(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, found, err := store.Load(ctx, 2030)
	require.NoError(t, err)
	assert.False(t, found)

	ys, err := store.Years(ctx)
	require.NoError(t, err)
	assert.Empty(t, ys)
}

func TestStore_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// GIVEN: A ledger with a custom allocation and mixed entries
	ledger := timeoff.YearLedger{
		Allocation: timeoff.Allocation{
			Vacation: generic.Hours(100.5),
			Personal: generic.Hours(0),
			Floater:  generic.Hours(15.5),
		},
		Entries: []timeoff.Entry{
			entry("a", "2024-06-03", "2024-06-05", timeoff.Vacation, "23.25"),
			entry("b", "2024-06-03", "2024-06-03", timeoff.Personal, "7.75"),
			entry("c", "2024-12-25", "2024-12-25", timeoff.Stat, "0"),
		},
	}

	// WHEN: Saved and loaded back
	require.NoError(t, store.Save(ctx, 2024, ledger))
	got, found, err := store.Load(ctx, 2024)

	// THEN: Everything survives, order included
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, got.Allocation.Vacation.Value.Equal(decimal.RequireFromString("100.5")))
	assert.True(t, got.Allocation.Personal.IsZero())
	assert.True(t, got.Allocation.Floater.Value.Equal(decimal.RequireFromString("15.5")))

	require.Len(t, got.Entries, 3)
	for i, want := range ledger.Entries {
		g := got.Entries[i]
		assert.Equal(t, want.ID, g.ID)
		assert.True(t, want.Start.Equal(g.Start))
		assert.True(t, want.End.Equal(g.End))
		assert.Equal(t, want.Description, g.Description)
		assert.Equal(t, want.Category, g.Category)
		assert.True(t, want.Hours.Value.Equal(g.Hours.Value))
		assert.Equal(t, want.Days, g.Days)
	}
}

func TestStore_SaveReplacesWholeLedger(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := timeoff.DefaultLedger()
	first.Entries = []timeoff.Entry{
		entry("a", "2024-06-03", "2024-06-03", timeoff.Vacation, "7.75"),
		entry("b", "2024-06-04", "2024-06-04", timeoff.Vacation, "7.75"),
	}
	require.NoError(t, store.Save(ctx, 2024, first))

	second := timeoff.DefaultLedger()
	second.Entries = []timeoff.Entry{entry("b", "2024-06-04", "2024-06-04", timeoff.Vacation, "7.75")}
	require.NoError(t, store.Save(ctx, 2024, second))

	got, _, err := store.Load(ctx, 2024)
	require.NoError(t, err)
	require.Len(t, got.Entries, 1)
	assert.Equal(t, timeoff.EntryID("b"), got.Entries[0].ID)
}

func TestStore_FailedSaveLeavesPreviousLedger(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	good := timeoff.DefaultLedger()
	good.Entries = []timeoff.Entry{entry("a", "2024-06-03", "2024-06-03", timeoff.Vacation, "7.75")}
	require.NoError(t, store.Save(ctx, 2024, good))

	// Duplicate ids violate the primary key halfway through the insert.
	bad := timeoff.DefaultLedger()
	bad.Entries = []timeoff.Entry{
		entry("x", "2024-07-01", "2024-07-01", timeoff.Vacation, "1"),
		entry("x", "2024-07-02", "2024-07-02", timeoff.Vacation, "1"),
	}
	assert.Error(t, store.Save(ctx, 2024, bad))

	got, _, err := store.Load(ctx, 2024)
	require.NoError(t, err)
	require.Len(t, got.Entries, 1)
	assert.Equal(t, timeoff.EntryID("a"), got.Entries[0].ID)
}

func TestStore_YearsSorted(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, y := range []int{2026, 2023, 2024} {
		require.NoError(t, store.Save(ctx, y, timeoff.DefaultLedger()))
	}

	ys, err := store.Years(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{2023, 2024, 2026}, ys)
}

func TestStore_BacksRepository(t *testing.T) {
	store := newTestStore(t)
	repo := timeoff.NewRepository(store, timeoff.DefaultSettings(), timeoff.WithIDGenerator(&timeoff.SequenceIDs{}))
	ctx := context.Background()

	e, err := repo.AddEntry(ctx, 2024, timeoff.Draft{Start: "2024-06-03", End: "2024-06-05", Category: timeoff.Vacation, Hours: "23.25"})
	require.NoError(t, err)

	view, err := repo.YearView(ctx, 2024)
	require.NoError(t, err)
	assert.Equal(t, "93.00", view.RemainingHours(timeoff.Vacation).Display())

	_, err = repo.YearView(ctx, 2030)
	require.NoError(t, err)
	ys, err := repo.Years(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{2024}, ys)

	removed, err := repo.RemoveEntry(ctx, 2024, e.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	view, err = repo.YearView(ctx, 2024)
	require.NoError(t, err)
	assert.Empty(t, view.Entries)
}

func TestStore_RejectedDateKeepsYearReadable(t *testing.T) {
	store := newTestStore(t)
	repo := timeoff.NewRepository(store, timeoff.DefaultSettings(), timeoff.WithIDGenerator(&timeoff.SequenceIDs{}))
	ctx := context.Background()

	// GIVEN: A written year
	_, err := repo.AddEntry(ctx, 2024, timeoff.Draft{Start: "2024-06-03", End: "2024-06-03", Category: timeoff.Vacation, Hours: "7.75"})
	require.NoError(t, err)

	// WHEN: A draft starts on the date that stands for "unset"
	_, err = repo.AddEntry(ctx, 2024, timeoff.Draft{Start: "0001-01-01", End: "2024-06-05", Category: timeoff.Vacation, Hours: "8"})
	assert.ErrorIs(t, err, generic.ErrInvalidDate)

	// THEN: The year still loads and later commands work
	e, err := repo.AddEntry(ctx, 2024, timeoff.Draft{Start: "2024-07-01", End: "2024-07-01", Category: timeoff.Personal, Hours: "7.75"})
	require.NoError(t, err)

	view, err := repo.YearView(ctx, 2024)
	require.NoError(t, err)
	require.Len(t, view.Entries, 2)
	assert.Equal(t, "2024-06-03", view.Entries[0].Start.String())
	assert.Equal(t, "2024-07-01", view.Entries[1].Start.String())

	removed, err := repo.RemoveEntry(ctx, 2024, e.ID)
	require.NoError(t, err)
	assert.True(t, removed)
}

func TestStore_CorruptHoursFailLoad(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ledger := timeoff.YearLedger{
		Allocation: timeoff.DefaultAllocation(),
		Entries:    []timeoff.Entry{entry("a", "2024-06-03", "2024-06-03", timeoff.Vacation, "7.75")},
	}
	require.NoError(t, store.Save(ctx, 2024, ledger))

	// GIVEN: An entry row whose hours are not a decimal
	require.NoError(t, store.Exec(ctx, "UPDATE entries SET hours = 'lots' WHERE id = 'a'"))

	_, _, err := store.Load(ctx, 2024)
	assert.ErrorContains(t, err, "corrupt hours")

	// GIVEN: An allocation column that is not a decimal
	require.NoError(t, store.Save(ctx, 2025, timeoff.DefaultLedger()))
	require.NoError(t, store.Exec(ctx, "UPDATE ledgers SET floater_hours = '' WHERE year = 2025"))

	_, _, err = store.Load(ctx, 2025)
	assert.ErrorContains(t, err, "floater allocation")
}
