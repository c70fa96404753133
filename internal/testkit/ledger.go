package testkit

import (
	"context"
	"sort"
	"sync"

	"golehmer/domain/core"
	"golehmer/ports"
)

// InMemoryRunLedger implements RunLedgerPort with a map. Used by tests
// and by entrypoints running without a DATABASE_URL.
type InMemoryRunLedger struct {
	mu      sync.RWMutex
	records map[core.RunID]ports.RunRecord
}

// NewInMemoryRunLedger creates an empty in-memory ledger
func NewInMemoryRunLedger() *InMemoryRunLedger {
	return &InMemoryRunLedger{records: make(map[core.RunID]ports.RunRecord)}
}

// SaveRun inserts or updates a run record
func (l *InMemoryRunLedger) SaveRun(ctx context.Context, record ports.RunRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records[record.ID] = record
	return nil
}

// GetRun retrieves a run record by ID
func (l *InMemoryRunLedger) GetRun(ctx context.Context, id core.RunID) (*ports.RunRecord, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	record, ok := l.records[id]
	if !ok {
		return nil, core.NewRunNotFoundError(id.String())
	}
	return &record, nil
}

// ListRuns returns the most recently updated records, newest first
func (l *InMemoryRunLedger) ListRuns(ctx context.Context, limit int) ([]ports.RunRecord, error) {
	if limit < 1 {
		limit = 50
	}
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]ports.RunRecord, 0, len(l.records))
	for _, r := range l.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Len returns the number of stored records
func (l *InMemoryRunLedger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}

// Ensure InMemoryRunLedger implements RunLedgerPort
var _ ports.RunLedgerPort = (*InMemoryRunLedger)(nil)
