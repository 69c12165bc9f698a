// Package config holds the costbench run configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"dispatch-cost/suite"
)

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
)

// Log encodings.
const (
	LogJSON    = "json"
	LogConsole = "console"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is a costbench run.
type Config struct {
	// Filter is a regular expression matched against probe names.
	Filter    string `yaml:"filter" toml:"filter"`
	BenchTime string `yaml:"benchtime" toml:"benchtime"`
	Count     int    `yaml:"count" toml:"count"`
	// Budget is a duration after which the run logs a warning. Empty disables it.
	Budget  string `yaml:"budget" toml:"budget"`
	Format  string `yaml:"format" toml:"format"`
	Output  string `yaml:"output" toml:"output"`
	NoColor bool   `yaml:"no_color" toml:"no_color"`
	Log     Log    `yaml:"log" toml:"log"`
}

// Log configures the diagnostic logger.
type Log struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

// Default returns the configuration used when nothing else is given.
func Default() Config {
	return Config{
		BenchTime: suite.DefaultBenchTime,
		Count:     1,
		Format:    FormatTable,
		Log: Log{
			Level:  "warn",
			Format: LogConsole,
		},
	}
}

// Load reads a YAML (.yaml, .yml) or TOML (.toml) file over the defaults.
// Keys missing from the file keep their default value.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("%w: unsupported config extension %q", ErrInvalid, ext)
	}
	return cfg, nil
}

// Validate reports every problem in the configuration at once.
func (c Config) Validate() error {
	var err error

	if _, e := c.FilterRegexp(); e != nil {
		err = multierr.Append(err, e)
	}
	if e := suite.ParseBenchTime(c.BenchTime); e != nil {
		err = multierr.Append(err, e)
	}
	if c.Count < 1 {
		err = multierr.Append(err, fmt.Errorf("count must be at least 1, got %d", c.Count))
	}
	if _, e := c.BudgetDuration(); e != nil {
		err = multierr.Append(err, e)
	}
	switch c.Format {
	case FormatTable, FormatJSON, FormatJSONL:
	default:
		err = multierr.Append(err, fmt.Errorf("unknown format %q", c.Format))
	}
	if _, e := zapcore.ParseLevel(c.Log.Level); e != nil {
		err = multierr.Append(err, fmt.Errorf("bad log level: %w", e))
	}
	switch c.Log.Format {
	case LogJSON, LogConsole:
	default:
		err = multierr.Append(err, fmt.Errorf("unknown log format %q", c.Log.Format))
	}

	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// FilterRegexp compiles Filter. An empty filter yields nil, which selects
// every probe.
func (c Config) FilterRegexp() (*regexp.Regexp, error) {
	if c.Filter == "" {
		return nil, nil
	}
	re, err := regexp.Compile(c.Filter)
	if err != nil {
		return nil, fmt.Errorf("bad filter %q: %w", c.Filter, err)
	}
	return re, nil
}

// BudgetDuration parses Budget. An empty budget yields zero.
func (c Config) BudgetDuration() (time.Duration, error) {
	if c.Budget == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Budget)
	if err != nil {
		return 0, fmt.Errorf("bad budget %q: %w", c.Budget, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("bad budget %q: must not be negative", c.Budget)
	}
	return d, nil
}

// Options converts a validated configuration for the suite runner.
func (c Config) Options() (suite.Options, error) {
	if err := c.Validate(); err != nil {
		return suite.Options{}, err
	}
	filter, _ := c.FilterRegexp()
	budget, _ := c.BudgetDuration()
	return suite.Options{
		Filter:    filter,
		BenchTime: c.BenchTime,
		Count:     c.Count,
		Budget:    budget,
	}, nil
}
