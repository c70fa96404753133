package bench

import (
	"context"
	"testing"

	"golehmer/domain/lehmer"
)

func TestRunMatchesSequentialReference(t *testing.T) {
	const streams = 8
	const draws = 2000

	cfg := lehmer.Config{Seed: lehmer.DefaultSeed, StreamCount: streams}

	// Sequential reference.
	ref := lehmer.MustNew(cfg)
	want := make([]int64, streams)
	for i := 0; i < streams; i++ {
		for d := 0; d < draws; d++ {
			want[i] = ref.NextAt(i)
		}
	}

	for _, workers := range []int64{1, 3, 8} {
		gen := lehmer.MustNew(cfg)
		result, err := Run(context.Background(), gen, draws, workers)
		if err != nil {
			t.Fatalf("Run(workers=%d): %v", workers, err)
		}
		if result.Streams != streams || result.DrawsPerStream != draws {
			t.Errorf("workers=%d: dimensions %d/%d", workers, result.Streams, result.DrawsPerStream)
		}
		for i := 0; i < streams; i++ {
			if result.FinalValues[i] != want[i] {
				t.Errorf("workers=%d stream %d: final value %d, want %d",
					workers, i, result.FinalValues[i], want[i])
			}
		}
	}
}

func TestRunRejectsBadDrawCount(t *testing.T) {
	gen := lehmer.MustNew(lehmer.Config{Seed: 1})
	if _, err := Run(context.Background(), gen, 0, 4); err == nil {
		t.Error("expected error for zero draws")
	}
}

func TestRunHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gen := lehmer.MustNew(lehmer.Config{Seed: 1, StreamCount: 4})
	if _, err := Run(ctx, gen, 100, 1); err == nil {
		t.Error("expected error from cancelled context")
	}
}
