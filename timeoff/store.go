/*
store.go - Persistence interface for year ledgers

PURPOSE:
  Separates the repository's bookkeeping from where ledgers are kept. All
  implementations hold state in process memory only; nothing survives a
  restart.

CONTRACT:
  - Load reports found=false for a year that was never saved and must not
    create it as a side effect.
  - Save replaces the whole ledger of a year in one step. A concurrent Load
    sees the old ledger or the new one, never a mix.
  - Ledgers handed in or out are not shared with the store's internal state.

IMPLEMENTATIONS:
  - store/memory: map guarded by a RWMutex (default)
  - store/sqlite: in-memory SQLite, Save runs in a SQL transaction
*/
package timeoff

import "context"

type Store interface {
	// Load returns the saved ledger of year, if any.
	Load(ctx context.Context, year int) (YearLedger, bool, error)

	// Save replaces the ledger of year.
	Save(ctx context.Context, year int, ledger YearLedger) error

	// Years lists saved years in ascending order.
	Years(ctx context.Context) ([]int, error)
}
