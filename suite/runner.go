package suite

import (
	"errors"
	"fmt"
	"regexp"
	"runtime"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"dispatch-cost/stopwatch"
)

// DefaultBenchTime is the framework's own default minimum run time.
const DefaultBenchTime = "1s"

var (
	// ErrNoProbes is returned when a filter selects no probe.
	ErrNoProbes = errors.New("no probes match")
	// ErrProbeFailed is returned when the framework reports a probe as failed.
	ErrProbeFailed = errors.New("probe failed")
)

// Options controls a Runner.
type Options struct {
	// Filter selects probes by name. Nil runs every probe.
	Filter *regexp.Regexp
	// BenchTime is the minimum run time per probe, a duration or "Nx".
	BenchTime string
	// Count is how many times each probe is run. Values below 1 mean 1.
	Count int
	// Budget makes the runner warn once the run has been measuring for that
	// long. Zero disables it. The run is never cut short.
	Budget time.Duration
}

// Runner runs probes one after the other through testing.Benchmark.
type Runner struct {
	probes []Probe
	opts   Options
	log    *zap.Logger
}

// NewRunner creates a Runner. A nil logger discards everything.
func NewRunner(probes []Probe, opts Options, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.BenchTime == "" {
		opts.BenchTime = DefaultBenchTime
	}
	if opts.Count < 1 {
		opts.Count = 1
	}
	return &Runner{
		probes: probes,
		opts:   opts,
		log:    log,
	}
}

// Run times every selected probe Count times and returns the collected results.
func (r *Runner) Run() (*Report, error) {
	selected, err := Select(r.probes, r.opts.Filter)
	if err != nil {
		return nil, err
	}

	prev, err := setBenchTime(r.opts.BenchTime)
	if err != nil {
		return nil, err
	}
	defer func() {
		if _, err := setBenchTime(prev); err != nil {
			r.log.Warn("Failed to restore benchtime", zap.String("benchtime", prev), zap.Error(err))
		}
	}()

	report := &Report{
		RunID:     uuid.New(),
		StartedAt: time.Now(),
		GoVersion: runtime.Version(),
		GOOS:      runtime.GOOS,
		GOARCH:    runtime.GOARCH,
		CPUs:      runtime.NumCPU(),
		BenchTime: r.opts.BenchTime,
		Results:   make([]Result, 0, len(selected)*r.opts.Count),
	}
	log := r.log.With(zap.Stringer("run_id", report.RunID))
	log.Info("Starting suite",
		zap.Int("probes", len(selected)),
		zap.Int("count", r.opts.Count),
		zap.String("benchtime", r.opts.BenchTime))

	var before runtime.MemStats
	runtime.ReadMemStats(&before)

	watch := stopwatch.New(r.opts.Budget, func() {
		log.Warn("Suite exceeded its time budget", zap.Duration("budget", r.opts.Budget))
	})
	watch.Start()
	defer watch.Pause()

	for round := 1; round <= r.opts.Count; round++ {
		for _, p := range selected {
			res := testing.Benchmark(p.Bench)
			watch.Pause()

			if res.N == 0 {
				log.Error("Probe failed", zap.String("probe", p.Name), zap.Int("round", round))
				return nil, fmt.Errorf("%s: %w", p.Name, ErrProbeFailed)
			}

			result := newResult(p, round, res)
			report.Results = append(report.Results, result)
			log.Info("Probe finished",
				zap.String("probe", result.Name),
				zap.Int("round", result.Round),
				zap.Int("iterations", result.Iterations),
				zap.Float64("ns_per_op", result.NsPerOp),
				zap.Int64("allocs_per_op", result.AllocsPerOp))

			watch.Resume()
		}
	}

	watch.Pause()
	report.Elapsed = watch.Elapsed()

	var after runtime.MemStats
	runtime.ReadMemStats(&after)
	report.TotalAllocBytes = after.TotalAlloc - before.TotalAlloc

	log.Info("Suite finished",
		zap.Int("results", len(report.Results)),
		zap.Duration("elapsed", report.Elapsed),
		zap.Uint64("total_alloc_bytes", report.TotalAllocBytes))
	return report, nil
}
