package pipeline

import (
	"context"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/jarinstall/pkg/metadata"
	"github.com/matzehuels/jarinstall/pkg/observability"
)

// Runner executes strategies in order. It holds no per-run state, so one
// Runner can serve several runs.
type Runner struct {
	Strategies []Strategy
	Logger     *log.Logger
}

// NewRunner creates a runner. A nil logger falls back to log.Default().
func NewRunner(logger *log.Logger, strategies ...Strategy) *Runner {
	return &Runner{Strategies: strategies, Logger: orDefault(logger)}
}

// Step records the outcome of one strategy.
type Step struct {
	Strategy string
	Resolved int // archives installed by this strategy
	Complete int // archives with a complete record afterwards
	Partial  int
	Progress int // installed share of all archives, see Progress
	Duration time.Duration
}

// Result is the outcome of a run.
type Result struct {
	// Installed lists installed archives in discovery order.
	Installed []string
	// Unresolved lists archives still pending after the last strategy.
	Unresolved []string
	// Store holds the metadata gathered for every archive.
	Store *metadata.Store
	Steps []Step
}

// Total returns the number of archives the run started with.
func (r *Result) Total() int {
	return len(r.Installed) + len(r.Unresolved)
}

// Run executes every strategy once over archives. Per-archive failures are
// absorbed by the strategies; Run only fails when ctx is canceled between
// strategies, in which case the partial result is returned with the error.
func (r *Runner) Run(ctx context.Context, archives []string) (*Result, error) {
	st := NewState(archives)
	result := &Result{Store: st.Store}
	hooks := observability.Pipeline()

	var err error
	for _, s := range r.Strategies {
		if err = ctx.Err(); err != nil {
			break
		}
		name := s.Name()
		r.Logger.Info("running strategy", "strategy", name, "pending", len(st.Pending))
		hooks.OnStrategyStart(ctx, name, len(st.Pending))

		start := time.Now()
		resolved := s.Resolve(ctx, st)
		st.shrink(resolved)

		complete, partial := st.Store.Partition(st.All)
		step := Step{
			Strategy: name,
			Resolved: len(resolved),
			Complete: len(complete),
			Partial:  len(partial),
			Progress: Progress(len(st.All)-len(st.Pending), len(st.All)),
			Duration: time.Since(start),
		}
		result.Steps = append(result.Steps, step)

		r.Logger.Info("strategy complete",
			"strategy", name,
			"installed", step.Resolved,
			"pending", len(st.Pending),
			"progress", step.Progress,
			"complete_records", step.Complete,
			"duration", step.Duration)
		hooks.OnStrategyComplete(ctx, name, step.Resolved, len(st.Pending), step.Duration)
	}

	r.Logger.Info("run complete",
		"installed", len(st.All)-len(st.Pending),
		"remaining", len(st.Pending),
		"records", st.Store.Len())

	pending := make(map[string]bool, len(st.Pending))
	for _, a := range st.Pending {
		pending[a] = true
	}
	for _, a := range st.All {
		if pending[a] {
			result.Unresolved = append(result.Unresolved, a)
		} else {
			result.Installed = append(result.Installed, a)
		}
	}
	return result, err
}

// Progress returns installed/total as a percentage: the ratio is rounded to
// two decimals, scaled by 100 and truncated, so 29 of 100 reports 28.
func Progress(installed, total int) int {
	if total == 0 {
		return 0
	}
	ratio := math.Round(float64(installed)/float64(total)*100) / 100
	return int(ratio * 100)
}
