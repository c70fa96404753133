// Package bench is the throughput harness for multi-stream generation.
// It fans out one worker per stream index, which is the only partition
// of work the generator supports: a stream's sequential state must never
// be split across workers, but distinct streams share nothing.
package bench

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/semaphore"

	"golehmer/domain/lehmer"
)

// Result summarizes one harness execution.
type Result struct {
	Streams        int
	DrawsPerStream int
	Workers        int64
	Elapsed        time.Duration
	ValuesPerSec   float64

	// FinalValues holds each stream's last drawn value, in stream order.
	// Deterministic regardless of scheduling: the harness exists to
	// prove that fan-out does not change the output.
	FinalValues []int64
}

// Run draws drawsPerStream values from every stream of gen, at most
// workers streams in flight at once. Each stream is advanced by exactly
// one goroutine, satisfying the generator's exclusivity rule.
func Run(ctx context.Context, gen *lehmer.SequenceGenerator, drawsPerStream int, workers int64) (Result, error) {
	if drawsPerStream < 1 {
		return Result{}, fmt.Errorf("draws per stream must be positive, got %d", drawsPerStream)
	}
	if workers < 1 {
		workers = 1
	}

	streams := gen.Streams()
	final := make([]int64, streams)
	sem := semaphore.NewWeighted(workers)
	start := time.Now()

	for i := 0; i < streams; i++ {
		if err := sem.Acquire(ctx, 1); err != nil {
			return Result{}, fmt.Errorf("acquiring worker slot: %w", err)
		}
		go func(i int) {
			defer sem.Release(1)
			var v int64
			for d := 0; d < drawsPerStream; d++ {
				v = gen.NextAt(i)
			}
			final[i] = v
		}(i)
	}

	// Draining the full weight waits for every in-flight worker.
	if err := sem.Acquire(ctx, workers); err != nil {
		return Result{}, fmt.Errorf("waiting for workers: %w", err)
	}
	sem.Release(workers)

	elapsed := time.Since(start)
	total := float64(streams) * float64(drawsPerStream)
	return Result{
		Streams:        streams,
		DrawsPerStream: drawsPerStream,
		Workers:        workers,
		Elapsed:        elapsed,
		ValuesPerSec:   total / elapsed.Seconds(),
		FinalValues:    final,
	}, nil
}
