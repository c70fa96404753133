package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golehmer/domain/core"
	"golehmer/domain/lehmer"
	"golehmer/internal"
	"golehmer/ports"
)

// RunService owns the live generators behind recorded runs. Every draw
// updates the run's reproducibility tuple in the ledger, so any recorded
// value can be reconstructed later from the record alone.
type RunService struct {
	mu      sync.RWMutex
	active  map[core.RunID]*activeRun
	ledger  ports.RunLedgerPort
	quality ports.QualityPort
	logger  *internal.Logger
}

// activeRun pairs a live generator with its persisted record. counts
// tracks advances per stream; the record carries the count for the
// currently selected stream.
type activeRun struct {
	gen    *lehmer.SequenceGenerator
	record ports.RunRecord
	counts []int64
}

// NewRunService creates a run service backed by the given ledger and
// quality battery.
func NewRunService(ledger ports.RunLedgerPort, quality ports.QualityPort, logger *internal.Logger) *RunService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &RunService{
		active:  make(map[core.RunID]*activeRun),
		ledger:  ledger,
		quality: quality,
		logger:  logger,
	}
}

// CreateRun validates cfg, builds the generator, and persists the
// initial record. Configuration and seed errors surface here, before any
// value is produced.
func (s *RunService) CreateRun(ctx context.Context, cfg lehmer.Config) (ports.RunRecord, error) {
	gen, err := lehmer.New(cfg)
	if err != nil {
		return ports.RunRecord{}, err
	}

	normalized := gen.Config()
	now := time.Now().UTC()
	record := ports.RunRecord{
		ID:          core.NewRunID(),
		Modulus:     normalized.Modulus,
		Multiplier:  normalized.Multiplier,
		Seed:        normalized.Seed,
		StreamCount: normalized.StreamCount,
		Policy:      string(normalized.Policy),
		JumpExp:     int(normalized.JumpExp),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	run := &activeRun{
		gen:    gen,
		record: record,
		counts: make([]int64, gen.Streams()),
	}

	if err := s.ledger.SaveRun(ctx, record); err != nil {
		return ports.RunRecord{}, fmt.Errorf("saving run record: %w", err)
	}

	s.mu.Lock()
	s.active[record.ID] = run
	s.mu.Unlock()

	s.logger.Info("created run %s (m=%d a=%d streams=%d policy=%s)",
		record.ID, record.Modulus, record.Multiplier, record.StreamCount, record.Policy)
	return record, nil
}

// Draw advances the run's selected stream n times and returns the values
// produced. The updated tuple is written back to the ledger.
func (s *RunService) Draw(ctx context.Context, id core.RunID, n int) ([]int64, error) {
	if n < 1 {
		return nil, fmt.Errorf("draw count must be positive, got %d", n)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	run, ok := s.active[id]
	if !ok {
		return nil, core.NewRunNotFoundError(id.String())
	}

	values := run.gen.Draw(n)
	idx := run.gen.Selected()
	run.counts[idx] += int64(n)
	run.record.StreamIndex = idx
	run.record.AdvanceCount = run.counts[idx]
	run.record.LastValue = values[len(values)-1]
	run.record.UpdatedAt = time.Now().UTC()

	if err := s.ledger.SaveRun(ctx, run.record); err != nil {
		return nil, fmt.Errorf("updating run record: %w", err)
	}
	return values, nil
}

// DrawNormalized is Draw with the values scaled into [0.0, 1.0).
func (s *RunService) DrawNormalized(ctx context.Context, id core.RunID, n int) ([]float64, error) {
	values, err := s.Draw(ctx, id, n)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	run, ok := s.active[id]
	s.mu.RUnlock()
	if !ok {
		return nil, core.NewRunNotFoundError(id.String())
	}
	m := float64(run.record.Modulus)

	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v) / m
	}
	return out, nil
}

// SelectStream switches the run's selected stream, wrapping the index
// modulo the stream count. Returns the effective index.
func (s *RunService) SelectStream(ctx context.Context, id core.RunID, index int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, ok := s.active[id]
	if !ok {
		return 0, core.NewRunNotFoundError(id.String())
	}

	run.gen.Select(index)
	idx := run.gen.Selected()
	run.record.StreamIndex = idx
	run.record.AdvanceCount = run.counts[idx]
	run.record.LastValue = run.gen.Current()
	run.record.UpdatedAt = time.Now().UTC()

	if err := s.ledger.SaveRun(ctx, run.record); err != nil {
		return 0, fmt.Errorf("updating run record: %w", err)
	}
	return idx, nil
}

// GetRun returns the persisted record for a run.
func (s *RunService) GetRun(ctx context.Context, id core.RunID) (*ports.RunRecord, error) {
	return s.ledger.GetRun(ctx, id)
}

// ListRuns returns the most recent run records.
func (s *RunService) ListRuns(ctx context.Context, limit int) ([]ports.RunRecord, error) {
	return s.ledger.ListRuns(ctx, limit)
}

// Replay reconstructs the run from its persisted tuple alone and checks
// that stepping the recorded stream AdvanceCount times reproduces
// LastValue. A divergence is a determinism violation, not a recoverable
// condition.
func (s *RunService) Replay(ctx context.Context, id core.RunID) error {
	record, err := s.ledger.GetRun(ctx, id)
	if err != nil {
		return err
	}
	if record.AdvanceCount == 0 {
		return nil // nothing drawn yet, nothing to verify
	}

	gen, err := lehmer.New(record.LehmerConfig())
	if err != nil {
		return fmt.Errorf("reconstructing generator: %w", err)
	}
	gen.Select(record.StreamIndex)

	var v int64
	for i := int64(0); i < record.AdvanceCount; i++ {
		v = gen.Next()
	}
	if v != record.LastValue {
		return fmt.Errorf("%w: run %s replayed %d, recorded %d",
			core.ErrReplayMismatch, id, v, record.LastValue)
	}
	return nil
}

// Report assesses the run's output quality over sampleSize normalized
// draws. The assessment uses a fresh generator built from the run's
// config so the live run state is not perturbed.
func (s *RunService) Report(ctx context.Context, id core.RunID, sampleSize int) (*ports.QualityReport, error) {
	record, err := s.ledger.GetRun(ctx, id)
	if err != nil {
		return nil, err
	}
	if sampleSize < 1 {
		sampleSize = 10000
	}

	gen, err := lehmer.New(record.LehmerConfig())
	if err != nil {
		return nil, fmt.Errorf("reconstructing generator: %w", err)
	}
	gen.Select(record.StreamIndex)
	return s.quality.Assess(ctx, gen.DrawNormalized(sampleSize))
}
