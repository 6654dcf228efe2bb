// Package memory provides the default, map-backed timeoff.Store.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/timeoff-tracker/timeoff"
)

// =============================================================================
// MEMORY STORE - Year ledgers held in a map
// =============================================================================

type Memory struct {
	mu      sync.RWMutex
	ledgers map[int]timeoff.YearLedger
}

func New() *Memory {
	return &Memory{ledgers: make(map[int]timeoff.YearLedger)}
}

// Load returns a copy so callers cannot reach the stored slice.
func (m *Memory) Load(_ context.Context, year int) (timeoff.YearLedger, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	l, ok := m.ledgers[year]
	if !ok {
		return timeoff.YearLedger{}, false, nil
	}
	return l.Clone(), true, nil
}

// Save swaps in a copy of ledger under the write lock.
func (m *Memory) Save(_ context.Context, year int, ledger timeoff.YearLedger) error {
	snapshot := ledger.Clone()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.ledgers[year] = snapshot
	return nil
}

func (m *Memory) Years(_ context.Context) ([]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	years := make([]int, 0, len(m.ledgers))
	for y := range m.ledgers {
		years = append(years, y)
	}
	sort.Ints(years)
	return years, nil
}

var _ timeoff.Store = (*Memory)(nil)
