/*
repository.go - Year-keyed ledgers plus the commands that change them

PURPOSE:
  Repository is the one object a presentation layer talks to. Queries return
  derived, read-only views; commands validate input, apply a pure transform
  from ledger.go and save the resulting ledger whole.

READ/WRITE ASYMMETRY:
  Reading a year nobody has written returns the default ledger without saving
  it. Only a successful write (allocation change, entry added, entry removed)
  makes a year known to the store. Browsing years therefore never changes
  Years().

COMMAND RESULTS:
  AddEntry      -> (Entry, error)   validation error = nothing changed
  RemoveEntry   -> (bool, error)    false = id not found, nothing changed
  SetAllocation -> error            validation error = nothing changed

CONCURRENCY:
  Commands are serialized by a mutex so each load-transform-save cycle is
  atomic with respect to other commands. Reads go straight to the store,
  which guarantees whole-ledger visibility.

SEE ALSO:
  - ledger.go: The transforms
  - balance.go, calendar.go: The derived views
  - store.go: Where ledgers live
*/
package timeoff

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/warp/timeoff-tracker/generic"
)

// Settings are the engine-wide knobs.
type Settings struct {
	HoursPerDay       decimal.Decimal
	WeekStart         time.Weekday
	DefaultAllocation Allocation
}

// DefaultSettings uses a 7.75 hour day, Sunday-first weeks and the standard allocation.
func DefaultSettings() Settings {
	return Settings{
		HoursPerDay:       DefaultHoursPerDay(),
		WeekStart:         time.Sunday,
		DefaultAllocation: DefaultAllocation(),
	}
}

// Clock supplies "now" for picking the initial year.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Option customizes a Repository.
type Option func(*Repository)

func WithIDGenerator(ids IDGenerator) Option { return func(r *Repository) { r.ids = ids } }
func WithClock(c Clock) Option               { return func(r *Repository) { r.clock = c } }

// =============================================================================
// REPOSITORY
// =============================================================================

type Repository struct {
	store    Store
	settings Settings
	ids      IDGenerator
	clock    Clock
	balances BalanceCalculator
	calendar CalendarAggregator
	logger   *log.Entry

	writeMu sync.Mutex

	selMu    sync.RWMutex
	selected int
}

func NewRepository(store Store, settings Settings, opts ...Option) *Repository {
	if !settings.HoursPerDay.IsPositive() {
		settings.HoursPerDay = DefaultHoursPerDay()
	}
	r := &Repository{
		store:    store,
		settings: settings,
		ids:      UUIDs{},
		clock:    SystemClock{},
		balances: NewBalanceCalculator(settings.HoursPerDay),
		calendar: CalendarAggregator{WeekStart: settings.WeekStart},
		logger:   log.WithField("component", "timeoff"),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.selected = r.clock.Now().Year()
	return r
}

func (r *Repository) Settings() Settings           { return r.settings }
func (r *Repository) Balances() BalanceCalculator  { return r.balances }
func (r *Repository) Calendar() CalendarAggregator { return r.calendar }

// =============================================================================
// QUERIES
// =============================================================================

// Ledger returns the ledger of year, or the default ledger if the year was
// never written. The default is not saved.
func (r *Repository) Ledger(ctx context.Context, year int) (YearLedger, error) {
	l, found, err := r.store.Load(ctx, year)
	if err != nil {
		return YearLedger{}, fmt.Errorf("load year %d: %w", year, err)
	}
	if !found {
		return r.defaultLedger(), nil
	}
	return l, nil
}

func (r *Repository) defaultLedger() YearLedger {
	return YearLedger{Allocation: r.settings.DefaultAllocation, Entries: []Entry{}}
}

// YearView is the read-only snapshot of one year.
type YearView struct {
	Year        int
	Allocation  Allocation
	Balances    Balances
	Entries     []Entry
	HoursPerDay decimal.Decimal
}

func (v YearView) UsedHours(c Category) generic.Amount      { return v.Balances.For(c).Used }
func (v YearView) RemainingHours(c Category) generic.Amount { return v.Balances.For(c).Remaining }
func (v YearView) StatCount() int                           { return v.Balances.StatCount }

// YearView derives allocation, balances and entries for year.
func (r *Repository) YearView(ctx context.Context, year int) (YearView, error) {
	l, err := r.Ledger(ctx, year)
	if err != nil {
		return YearView{}, err
	}
	return YearView{
		Year:        year,
		Allocation:  l.Allocation,
		Balances:    r.balances.Calculate(l),
		Entries:     l.Entries,
		HoursPerDay: r.settings.HoursPerDay,
	}, nil
}

// MonthGrid returns grid metadata; it does not depend on any ledger.
func (r *Repository) MonthGrid(year int, month time.Month) (MonthGrid, error) {
	return r.calendar.MonthGrid(year, month)
}

// MonthView returns the grid of year/month with each day's entries.
func (r *Repository) MonthView(ctx context.Context, year int, month time.Month) (MonthView, error) {
	l, err := r.Ledger(ctx, year)
	if err != nil {
		return MonthView{}, err
	}
	return r.calendar.MonthView(l, year, month)
}

// EntriesForDate returns the entries of year's ledger that cover date.
func (r *Repository) EntriesForDate(ctx context.Context, year int, date generic.Date) ([]Entry, error) {
	l, err := r.Ledger(ctx, year)
	if err != nil {
		return nil, err
	}
	return r.calendar.EntriesForDate(l, date), nil
}

// Years lists the years that have been written.
func (r *Repository) Years(ctx context.Context) ([]int, error) {
	return r.store.Years(ctx)
}

// SuggestHours proposes an hours value for a draft from its date range.
func (r *Repository) SuggestHours(d Draft) (generic.Amount, bool) {
	return d.SuggestHours(r.settings.HoursPerDay)
}

// =============================================================================
// COMMANDS
// =============================================================================

// SetAllocation replaces the allocation of year.
func (r *Repository) SetAllocation(ctx context.Context, year int, a Allocation) error {
	return r.mutate(ctx, year, func(l YearLedger) (YearLedger, bool, error) {
		next, err := WithAllocation(l, a)
		if err != nil {
			return l, false, err
		}
		r.logger.WithFields(log.Fields{
			"year":     year,
			"vacation": a.Vacation.Display(),
			"personal": a.Personal.Display(),
			"floater":  a.Floater.Display(),
		}).Debug("allocation updated")
		return next, true, nil
	})
}

// SetAllocationInput parses raw allocation input and applies it.
// Empty fields count as zero; non-numeric fields reject the whole update.
func (r *Repository) SetAllocationInput(ctx context.Context, year int, in AllocationInput) error {
	a, err := in.Parse()
	if err != nil {
		r.logger.WithFields(log.Fields{"year": year, "reason": err.Error()}).Debug("allocation rejected")
		return err
	}
	return r.SetAllocation(ctx, year, a)
}

// AddEntry validates draft and records it in year. A validation error means
// the ledger and the store are untouched.
func (r *Repository) AddEntry(ctx context.Context, year int, draft Draft) (Entry, error) {
	var added Entry
	err := r.mutate(ctx, year, func(l YearLedger) (YearLedger, bool, error) {
		next, entry, err := AddEntry(l, draft, r.ids)
		if err != nil {
			r.logger.WithFields(log.Fields{"year": year, "reason": err.Error()}).Debug("entry rejected")
			return l, false, err
		}
		added = entry
		fields := log.Fields{
			"year":     year,
			"entry_id": entry.ID,
			"category": entry.Category.String(),
			"days":     entry.Days,
		}
		if !generic.YearPeriod(year).Overlaps(entry.Period()) {
			r.logger.WithFields(fields).Warn("entry added outside its ledger year")
		} else {
			r.logger.WithFields(fields).Debug("entry added")
		}
		return next, true, nil
	})
	if err != nil {
		return Entry{}, err
	}
	return added, nil
}

// RemoveEntry deletes id from year. Unknown ids report false and write nothing.
func (r *Repository) RemoveEntry(ctx context.Context, year int, id EntryID) (bool, error) {
	var removed bool
	err := r.mutate(ctx, year, func(l YearLedger) (YearLedger, bool, error) {
		gone, ok := l.Entry(id)
		if !ok {
			return l, false, nil
		}
		next, _ := RemoveEntry(l, id)
		removed = true
		r.logger.WithFields(log.Fields{
			"year":     year,
			"entry_id": id,
			"category": gone.Category.String(),
			"range":    gone.Period().String(),
		}).Debug("entry removed")
		return next, true, nil
	})
	return removed, err
}

// mutate runs one load-transform-save cycle under the write lock. fn reports
// whether anything changed; unchanged ledgers are not saved.
func (r *Repository) mutate(ctx context.Context, year int, fn func(YearLedger) (YearLedger, bool, error)) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	current, err := r.Ledger(ctx, year)
	if err != nil {
		return err
	}
	next, changed, err := fn(current)
	if err != nil || !changed {
		return err
	}
	if err := r.store.Save(ctx, year, next); err != nil {
		return fmt.Errorf("save year %d: %w", year, err)
	}
	return nil
}

// =============================================================================
// YEAR SELECTION
// =============================================================================
// Selection is navigation state only; it never touches the store.

func (r *Repository) SelectedYear() int {
	r.selMu.RLock()
	defer r.selMu.RUnlock()
	return r.selected
}

func (r *Repository) SelectYear(year int) {
	r.selMu.Lock()
	defer r.selMu.Unlock()
	r.selected = year
}

// ShiftYear moves the selection by delta years and returns the new year.
func (r *Repository) ShiftYear(delta int) int {
	r.selMu.Lock()
	defer r.selMu.Unlock()
	r.selected += delta
	return r.selected
}

// CurrentView is YearView for the selected year.
func (r *Repository) CurrentView(ctx context.Context) (YearView, error) {
	return r.YearView(ctx, r.SelectedYear())
}
