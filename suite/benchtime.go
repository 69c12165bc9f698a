package suite

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

const benchTimeFlag = "test.benchtime"

var initOnce sync.Once

// ParseBenchTime validates a minimum run time in the form the benchmark
// framework accepts: a positive duration ("1s", "250ms") or a fixed iteration
// count ("1000x").
func ParseBenchTime(s string) error {
	if n, ok := strings.CutSuffix(s, "x"); ok {
		count, err := strconv.ParseUint(n, 10, 64)
		if err != nil || count == 0 {
			return fmt.Errorf("invalid benchtime %q: iteration count must be a positive integer", s)
		}
		return nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid benchtime %q: %w", s, err)
	}
	if d <= 0 {
		return fmt.Errorf("invalid benchtime %q: must be positive", s)
	}
	return nil
}

// setBenchTime points testing.Benchmark at a new minimum run time and returns
// the previous value. The framework reads it from its own flag, which only
// exists once testing.Init has run.
func setBenchTime(s string) (string, error) {
	if err := ParseBenchTime(s); err != nil {
		return "", err
	}

	initOnce.Do(testing.Init)

	f := flag.Lookup(benchTimeFlag)
	if f == nil {
		return "", fmt.Errorf("flag %s not registered", benchTimeFlag)
	}
	prev := f.Value.String()
	if err := flag.Set(benchTimeFlag, s); err != nil {
		return "", fmt.Errorf("set %s: %w", benchTimeFlag, err)
	}
	return prev, nil
}
