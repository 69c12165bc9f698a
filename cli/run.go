package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"dispatch-cost/config"
	"dispatch-cost/logger"
	"dispatch-cost/report"
	"dispatch-cost/suite"
)

// runFlags holds the run command line. Only flags the user set override the
// config file.
type runFlags struct {
	configPath string
	filter     string
	benchTime  string
	count      int
	budget     string
	format     string
	output     string
	noColor    bool
	logLevel   string
	logFormat  string
}

func (f *runFlags) register(fs *pflag.FlagSet) {
	def := config.Default()

	fs.StringVarP(&f.configPath, "config", "c", "", "YAML or TOML config file")
	fs.StringVar(&f.filter, "filter", def.Filter, "regular expression selecting probes by name")
	fs.StringVar(&f.benchTime, "benchtime", def.BenchTime, "minimum run time per probe, a duration or Nx")
	fs.IntVar(&f.count, "count", def.Count, "number of times each probe runs")
	fs.StringVar(&f.budget, "budget", def.Budget, "warn once the run has measured for this long")
	fs.StringVarP(&f.format, "format", "f", def.Format, "report format: table, json or jsonl")
	fs.StringVarP(&f.output, "output", "o", def.Output, "report file, stdout when empty")
	fs.BoolVar(&f.noColor, "no-color", def.NoColor, "disable colored output")
	fs.StringVar(&f.logLevel, "log-level", def.Log.Level, "log level")
	fs.StringVar(&f.logFormat, "log-format", def.Log.Format, "log format: json or console")
}

func (f *runFlags) apply(fs *pflag.FlagSet, cfg *config.Config) {
	if fs.Changed("filter") {
		cfg.Filter = f.filter
	}
	if fs.Changed("benchtime") {
		cfg.BenchTime = f.benchTime
	}
	if fs.Changed("count") {
		cfg.Count = f.count
	}
	if fs.Changed("budget") {
		cfg.Budget = f.budget
	}
	if fs.Changed("format") {
		cfg.Format = f.format
	}
	if fs.Changed("output") {
		cfg.Output = f.output
	}
	if fs.Changed("no-color") {
		cfg.NoColor = f.noColor
	}
	if fs.Changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if fs.Changed("log-format") {
		cfg.Log.Format = f.logFormat
	}
}

func (f *runFlags) load(fs *pflag.FlagSet) (config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		var err error
		if cfg, err = config.Load(f.configPath); err != nil {
			return cfg, err
		}
	}
	f.apply(fs, &cfg)
	return cfg, nil
}

func newRunCommand() *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:     "run",
		Short:   "Run the probes and print a report",
		Example: `costbench run --filter '^Check' --benchtime 500ms --count 3 --format jsonl`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd.Flags())
			if err != nil {
				return err
			}
			opts, err := cfg.Options()
			if err != nil {
				return err
			}

			log, err := logger.New(cfg.Log, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			writer, err := report.New(cfg.Format)
			if err != nil {
				return err
			}
			if cfg.NoColor {
				color.NoColor = true
			}

			out := cmd.OutOrStdout()
			if cfg.Output != "" {
				file, err := os.Create(cfg.Output)
				if err != nil {
					return fmt.Errorf("create report file: %w", err)
				}
				defer file.Close()
				out = file
			}

			return run(log, opts, writer, out)
		},
	}

	flags.register(cmd.Flags())
	return cmd
}

func run(log *zap.Logger, opts suite.Options, writer report.Writer, out io.Writer) error {
	rep, err := suite.NewRunner(suite.Probes(), opts, log).Run()
	if err != nil {
		return err
	}
	if err := writer.Write(out, rep); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
