package suite

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

// Result is one timed run of one probe.
type Result struct {
	Name        string        `json:"name"`
	Group       string        `json:"group"`
	Round       int           `json:"round"`
	Iterations  int           `json:"iterations"`
	NsPerOp     float64       `json:"ns_per_op"`
	BytesPerOp  int64         `json:"bytes_per_op"`
	AllocsPerOp int64         `json:"allocs_per_op"`
	Duration    time.Duration `json:"duration_ns"`
}

func newResult(p Probe, round int, res testing.BenchmarkResult) Result {
	r := Result{
		Name:        p.Name,
		Group:       p.Group,
		Round:       round,
		Iterations:  res.N,
		BytesPerOp:  res.AllocedBytesPerOp(),
		AllocsPerOp: res.AllocsPerOp(),
		Duration:    res.T,
	}
	if res.N > 0 {
		r.NsPerOp = float64(res.T.Nanoseconds()) / float64(res.N)
	}
	return r
}

// Report is a finished suite run.
type Report struct {
	RunID     uuid.UUID `json:"run_id"`
	StartedAt time.Time `json:"started_at"`
	GoVersion string    `json:"go_version"`
	GOOS      string    `json:"goos"`
	GOARCH    string    `json:"goarch"`
	CPUs      int       `json:"cpus"`
	BenchTime string    `json:"benchtime"`
	Results   []Result  `json:"results"`

	// Elapsed is the time spent inside the benchmark framework, excluding the
	// runner's own logging between probes.
	Elapsed time.Duration `json:"elapsed_ns"`

	// TotalAllocBytes is how much the run allocated in total. The heap
	// construction probes never free what they allocate, so most of it is theirs.
	TotalAllocBytes uint64 `json:"total_alloc_bytes"`
}
