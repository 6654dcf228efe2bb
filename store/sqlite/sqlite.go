/*
Package sqlite provides a timeoff.Store backed by an in-memory SQLite database.

PURPOSE:
  Same contract as store/memory, but every Save runs inside a SQL
  transaction: the allocation row and the full entry list of a year are
  replaced together or not at all. The database lives in process memory
  and is gone when the Store is closed; no file is ever opened.

KEY TABLES:
  ledgers: One row per written year with its allocation
  entries: Entries of every year; seq keeps the ledger's order

CONNECTIONS:
  An in-memory SQLite database belongs to a single connection, so the pool
  is pinned to exactly one connection that is never recycled.

USAGE:
  store, err := sqlite.New()
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  repo := timeoff.NewRepository(store, timeoff.DefaultSettings())

SEE ALSO:
  - timeoff/store.go: Interface definition
  - store/memory: Map-backed implementation
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/warp/timeoff-tracker/generic"
	"github.com/warp/timeoff-tracker/timeoff"
)

// Store implements timeoff.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New opens a fresh in-memory database and creates the schema.
func New() (*Store, error) {
	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection, discarding all data.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS ledgers (
		year INTEGER PRIMARY KEY,
		vacation_hours TEXT NOT NULL,
		personal_hours TEXT NOT NULL,
		floater_hours TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS entries (
		id TEXT PRIMARY KEY,
		year INTEGER NOT NULL REFERENCES ledgers(year) ON DELETE CASCADE,
		seq INTEGER NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL,
		hours TEXT NOT NULL,
		days INTEGER NOT NULL
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_entries_year_seq ON entries(year, seq);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// timeoff.Store
// =============================================================================

// Load reads the ledger of year. A missing year is not created.
func (s *Store) Load(ctx context.Context, year int) (timeoff.YearLedger, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var vacation, personal, floater string
	err := s.db.QueryRowContext(ctx,
		"SELECT vacation_hours, personal_hours, floater_hours FROM ledgers WHERE year = ?",
		year,
	).Scan(&vacation, &personal, &floater)
	if err == sql.ErrNoRows {
		return timeoff.YearLedger{}, false, nil
	}
	if err != nil {
		return timeoff.YearLedger{}, false, fmt.Errorf("failed to load ledger: %w", err)
	}

	var ledger timeoff.YearLedger
	for _, f := range []struct {
		c   timeoff.Category
		raw string
	}{{timeoff.Vacation, vacation}, {timeoff.Personal, personal}, {timeoff.Floater, floater}} {
		h, err := parseHours(f.raw)
		if err != nil {
			return timeoff.YearLedger{}, false, fmt.Errorf("year %d %s allocation: %w", year, f.c, err)
		}
		ledger.Allocation = ledger.Allocation.With(f.c, h)
	}

	ledger.Entries, err = s.queryEntries(ctx, year)
	if err != nil {
		return timeoff.YearLedger{}, false, err
	}
	return ledger, true, nil
}

// Save replaces allocation and entries of year in one SQL transaction.
func (s *Store) Save(ctx context.Context, year int, ledger timeoff.YearLedger) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	_, err = sqlTx.ExecContext(ctx, `
		INSERT INTO ledgers (year, vacation_hours, personal_hours, floater_hours)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(year) DO UPDATE SET
			vacation_hours = excluded.vacation_hours,
			personal_hours = excluded.personal_hours,
			floater_hours = excluded.floater_hours
	`,
		year,
		ledger.Allocation.Vacation.Value.String(),
		ledger.Allocation.Personal.Value.String(),
		ledger.Allocation.Floater.Value.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to save allocation: %w", err)
	}

	if _, err := sqlTx.ExecContext(ctx, "DELETE FROM entries WHERE year = ?", year); err != nil {
		return fmt.Errorf("failed to clear entries: %w", err)
	}

	stmt, err := sqlTx.PrepareContext(ctx, `
		INSERT INTO entries (id, year, seq, start_date, end_date, description, category, hours, days)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare entry insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range ledger.Entries {
		_, err := stmt.ExecContext(ctx,
			string(e.ID),
			year,
			i,
			e.Start.String(),
			e.End.String(),
			e.Description,
			e.Category.String(),
			e.Hours.Value.String(),
			e.Days,
		)
		if err != nil {
			return fmt.Errorf("failed to save entry %s: %w", e.ID, err)
		}
	}

	return sqlTx.Commit()
}

// Years lists written years in ascending order.
func (s *Store) Years(ctx context.Context) ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT year FROM ledgers ORDER BY year ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query years: %w", err)
	}
	defer rows.Close()

	years := []int{}
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, fmt.Errorf("failed to scan year: %w", err)
		}
		years = append(years, y)
	}
	return years, rows.Err()
}

func (s *Store) queryEntries(ctx context.Context, year int) ([]timeoff.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, start_date, end_date, description, category, hours, days
		FROM entries
		WHERE year = ?
		ORDER BY seq ASC
	`, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	entries := []timeoff.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func scanEntry(rows *sql.Rows) (timeoff.Entry, error) {
	var (
		e          timeoff.Entry
		id         string
		start, end string
		category   string
		hours      string
	)
	if err := rows.Scan(&id, &start, &end, &e.Description, &category, &hours, &e.Days); err != nil {
		return e, fmt.Errorf("failed to scan entry: %w", err)
	}

	var err error
	e.ID = timeoff.EntryID(id)
	if e.Start, err = generic.ParseDate(start); err != nil {
		return e, fmt.Errorf("entry %s: %w", id, err)
	}
	if e.End, err = generic.ParseDate(end); err != nil {
		return e, fmt.Errorf("entry %s: %w", id, err)
	}
	if e.Category, err = timeoff.ParseCategory(category); err != nil {
		return e, fmt.Errorf("entry %s: %w", id, err)
	}
	if e.Hours, err = parseHours(hours); err != nil {
		return e, fmt.Errorf("entry %s: %w", id, err)
	}
	return e, nil
}

// parseHours reads a stored decimal. Values are written by Save, so a
// failure means the row was corrupted outside this package.
func parseHours(s string) (generic.Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return generic.Amount{}, fmt.Errorf("corrupt hours %q: %w", s, err)
	}
	return generic.HoursOf(d), nil
}

var _ timeoff.Store = (*Store)(nil)
