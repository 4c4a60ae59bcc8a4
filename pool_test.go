package resumepdf

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"testing"
)

func TestResolvePoolSize(t *testing.T) {
	t.Parallel()

	gomaxprocs := runtime.GOMAXPROCS(0)

	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{
			name:    "explicit takes priority",
			workers: 4,
			want:    4,
		},
		{
			name:    "explicit=1 for sequential",
			workers: 1,
			want:    1,
		},
		{
			name:    "zero uses auto calculation",
			workers: 0,
			want:    min(max(gomaxprocs/cpuDivisor, MinPoolSize), MaxPoolSize),
		},
		{
			name:    "negative uses auto calculation",
			workers: -3,
			want:    min(max(gomaxprocs/cpuDivisor, MinPoolSize), MaxPoolSize),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ResolvePoolSize(tt.workers)
			if got != tt.want {
				t.Errorf("ResolvePoolSize(%d) = %d, want %d", tt.workers, got, tt.want)
			}
		})
	}
}

func TestResolvePoolSize_Bounds(t *testing.T) {
	t.Parallel()

	t.Run("auto stays within bounds", func(t *testing.T) {
		t.Parallel()

		got := ResolvePoolSize(0)
		if got < MinPoolSize || got > MaxPoolSize {
			t.Errorf("ResolvePoolSize(0) = %d, want within [%d, %d]", got, MinPoolSize, MaxPoolSize)
		}
	})

	t.Run("explicit can exceed max", func(t *testing.T) {
		t.Parallel()

		got := ResolvePoolSize(16)
		if got != 16 {
			t.Errorf("ResolvePoolSize(16) = %d, want 16", got)
		}
	})
}

func TestRenderBatch(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t, WithConfig(builtinConfig(t)))

	var jobs []Job
	for i, id := range TemplateNames() {
		jobs = append(jobs, Job{Name: fmt.Sprintf("job-%d", i), Resume: sampleResume(), Template: id})
	}
	jobs = append(jobs, Job{Name: "broken", Resume: nil, Template: TemplateDefault})

	results := conv.RenderBatch(context.Background(), jobs, 3)
	if len(results) != len(jobs) {
		t.Fatalf("len(results) = %d, want %d", len(results), len(jobs))
	}
	for i, res := range results[:len(results)-1] {
		if res.Job.Name != jobs[i].Name {
			t.Errorf("results[%d] is %q, want %q", i, res.Job.Name, jobs[i].Name)
		}
		if res.Err != nil || res.Result == nil || res.Result.Template != jobs[i].Template {
			t.Errorf("results[%d] = %+v", i, res)
		}
	}
	last := results[len(results)-1]
	if !errors.Is(last.Err, ErrNilResume) || last.Result != nil {
		t.Errorf("broken job = %+v, want ErrNilResume", last)
	}
}

func TestRenderBatch_Cancelled(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t, WithConfig(builtinConfig(t)))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := conv.RenderBatch(ctx, []Job{{Resume: sampleResume()}, {Resume: sampleResume()}}, 1)
	for i, res := range results {
		if !errors.Is(res.Err, context.Canceled) {
			t.Errorf("results[%d].Err = %v, want context.Canceled", i, res.Err)
		}
	}
}
