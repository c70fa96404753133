package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterstats "golehmer/adapters/stats"
	"golehmer/domain/lehmer"
	"golehmer/internal/testkit"
)

func TestSweepLeapfroggedStreamsAreDistinctAndUniform(t *testing.T) {
	ctx := context.Background()
	svc := NewSweepService(adapterstats.NewQualityBattery(), nil)

	cfg := testkit.MinimalStandardConfig(lehmer.DefaultSeed)
	cfg.StreamCount = 4
	cfg.Policy = lehmer.PolicyLeapfrogged

	assessments, err := svc.Sweep(ctx, cfg, 10000)
	require.NoError(t, err)
	require.Len(t, assessments, 4)

	seen := make(map[int64]bool)
	for _, a := range assessments {
		assert.True(t, a.Report.Uniform, "stream %d flagged non-uniform", a.StreamIndex)
		assert.False(t, seen[a.StartSeed], "stream %d shares a start seed", a.StreamIndex)
		seen[a.StartSeed] = true
	}
}

func TestSweepReplicatedStreamsAreIdentical(t *testing.T) {
	ctx := context.Background()
	svc := NewSweepService(adapterstats.NewQualityBattery(), nil)

	cfg := testkit.MinimalStandardConfig(lehmer.DefaultSeed)
	cfg.StreamCount = 3
	cfg.Policy = lehmer.PolicyReplicated

	assessments, err := svc.Sweep(ctx, cfg, 5000)
	require.NoError(t, err)
	require.Len(t, assessments, 3)

	first := assessments[0]
	for _, a := range assessments[1:] {
		assert.Equal(t, first.StartSeed, a.StartSeed)
		assert.Equal(t, first.Report.ChiSquare, a.Report.ChiSquare,
			"replicated streams must produce identical output")
	}
}

func TestSweepRejectsBadConfig(t *testing.T) {
	ctx := context.Background()
	svc := NewSweepService(adapterstats.NewQualityBattery(), nil)

	_, err := svc.Sweep(ctx, lehmer.Config{Seed: 0}, 1000)
	require.Error(t, err)
}
