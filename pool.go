package resumepdf

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Worker count bounds for batch rendering.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps concurrent layouts; each holds a whole PDF in memory.
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for the caller's own goroutines.
	cpuDivisor = 2
)

// Job is one render request of a batch.
type Job struct {
	Name     string // caller-chosen label, e.g. the input file
	Resume   *Resume
	Template string
}

// JobResult pairs a Job with its outcome. Exactly one of Result and Err is
// set.
type JobResult struct {
	Job    Job
	Result *Result
	Err    error
}

// RenderBatch renders jobs with at most workers concurrent renders (see
// ResolvePoolSize). Results are returned in job order. A failed job does not
// stop the others; a cancelled context does.
func (c *Converter) RenderBatch(ctx context.Context, jobs []Job, workers int) []JobResult {
	results := make([]JobResult, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ResolvePoolSize(workers))

	for i, job := range jobs {
		results[i].Job = job
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Result, results[i].Err = c.Render(gctx, job.Resume, job.Template)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors
	return results
}

// ResolvePoolSize determines the worker count.
// Priority: explicit workers > GOMAXPROCS-based calculation.
// Exported for use by servers and CLIs.
func ResolvePoolSize(workers int) int {
	// Explicit value takes priority
	if workers > 0 {
		return workers
	}

	// Auto-calculate based on GOMAXPROCS (adjusted by automaxprocs for containers)
	available := runtime.GOMAXPROCS(0)
	n := available / cpuDivisor

	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
