package ports

import (
	"context"
	"time"

	"golehmer/domain/core"
	"golehmer/domain/lehmer"
)

// RunRecord is the persisted reproducibility tuple for one generator
// run. The configuration plus the selected stream index and that
// stream's advance count are sufficient to reconstruct LastValue (and
// any future value) exactly; no other serialization format exists.
type RunRecord struct {
	ID           core.RunID `db:"id" json:"id"`
	Modulus      int64      `db:"modulus" json:"modulus"`
	Multiplier   int64      `db:"multiplier" json:"multiplier"`
	Seed         int64      `db:"seed" json:"seed"`
	StreamCount  int        `db:"stream_count" json:"stream_count"`
	Policy       string     `db:"policy" json:"policy"`
	JumpExp      int        `db:"jump_exp" json:"jump_exp"`
	StreamIndex  int        `db:"stream_index" json:"stream_index"`
	AdvanceCount int64      `db:"advance_count" json:"advance_count"`
	LastValue    int64      `db:"last_value" json:"last_value"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// LehmerConfig reconstructs the generator configuration the record was
// produced under.
func (r RunRecord) LehmerConfig() lehmer.Config {
	return lehmer.Config{
		Modulus:     r.Modulus,
		Multiplier:  r.Multiplier,
		Seed:        r.Seed,
		StreamCount: r.StreamCount,
		Policy:      lehmer.SeedingPolicy(r.Policy),
		JumpExp:     uint(r.JumpExp),
	}
}

// RunLedgerPort persists run records for later replay
type RunLedgerPort interface {
	// SaveRun inserts or updates a run record
	SaveRun(ctx context.Context, record RunRecord) error

	// GetRun retrieves a run record by ID; core.ErrRunNotFound when absent
	GetRun(ctx context.Context, id core.RunID) (*RunRecord, error)

	// ListRuns returns the most recently updated records, newest first
	ListRuns(ctx context.Context, limit int) ([]RunRecord, error)
}
