// Package report renders a finished suite run.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog"

	"dispatch-cost/suite"
)

// Writer renders a report to w.
type Writer interface {
	Write(w io.Writer, r *suite.Report) error
}

// New returns the writer for a format: "table", "json" or "jsonl".
func New(format string) (Writer, error) {
	switch format {
	case "table":
		return tableWriter{}, nil
	case "json":
		return jsonWriter{}, nil
	case "jsonl":
		return jsonlWriter{}, nil
	default:
		return nil, fmt.Errorf("unknown report format %q", format)
	}
}

// tableWriter prints a header line and one row per result, the layout of the
// go test benchmark output.
type tableWriter struct{}

func (tableWriter) Write(w io.Writer, r *suite.Report) error {
	title := color.New(color.Bold, color.FgCyan)
	if _, err := title.Fprintf(w, "run %s  %s %s/%s  cpus=%d  benchtime=%s\n",
		r.RunID, r.GoVersion, r.GOOS, r.GOARCH, r.CPUs, r.BenchTime); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Probe", "Group", "Iterations", "ns/op", "B/op", "allocs/op"})
	table.SetAutoFormatHeaders(false)
	table.SetBorder(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
	})
	for _, res := range r.Results {
		table.Append([]string{
			res.Name,
			res.Group,
			humanize.Comma(int64(res.Iterations)),
			strconv.FormatFloat(res.NsPerOp, 'f', 2, 64),
			strconv.FormatInt(res.BytesPerOp, 10),
			strconv.FormatInt(res.AllocsPerOp, 10),
		})
	}
	table.Render()

	_, err := fmt.Fprintf(w, "elapsed %s, allocated %s\n",
		r.Elapsed.Round(time.Millisecond), humanize.IBytes(r.TotalAllocBytes))
	return err
}

type jsonWriter struct{}

func (jsonWriter) Write(w io.Writer, r *suite.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// jsonlWriter emits one JSON object per result, tagged with the run id, then a
// summary object.
type jsonlWriter struct{}

func (jsonlWriter) Write(w io.Writer, r *suite.Report) error {
	log := zerolog.New(w).With().Str("run_id", r.RunID.String()).Logger()

	for _, res := range r.Results {
		log.Log().
			Str("probe", res.Name).
			Str("group", res.Group).
			Int("round", res.Round).
			Int("iterations", res.Iterations).
			Float64("ns_per_op", res.NsPerOp).
			Int64("bytes_per_op", res.BytesPerOp).
			Int64("allocs_per_op", res.AllocsPerOp).
			Msg("result")
	}

	log.Log().
		Str("go_version", r.GoVersion).
		Str("goos", r.GOOS).
		Str("goarch", r.GOARCH).
		Int("cpus", r.CPUs).
		Str("benchtime", r.BenchTime).
		Int64("elapsed_ns", r.Elapsed.Nanoseconds()).
		Uint64("total_alloc_bytes", r.TotalAllocBytes).
		Msg("summary")
	return nil
}
