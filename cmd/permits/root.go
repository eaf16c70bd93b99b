package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/permit-availability/internal/config"
	"github.com/preston-bernstein/permit-availability/internal/logging"
	"github.com/preston-bernstein/permit-availability/internal/output"
	"github.com/preston-bernstein/permit-availability/internal/runner"
	"github.com/preston-bernstein/permit-availability/internal/timeutil"
)

type rootFlags struct {
	configPath  string
	format      string
	today       string
	source      string
	timezone    string
	windowDays  int
	concurrency int
	rateLimit   float64
	metricsFile string
	logLevel    string
	logFormat   string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var f rootFlags

	cmd := &cobra.Command{
		Use:          appName,
		Short:        "Print remaining wilderness permit availability per trailhead and date",
		Version:      appVersion,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(f.configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			applyFlags(cmd, &f, &cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}

			var today time.Time
			if f.today != "" {
				today, err = timeutil.ParseDate(f.today)
				if err != nil {
					return fmt.Errorf("invalid --today %q: %w", f.today, err)
				}
			}

			logger := logging.NewLogger(logging.Config{
				Level:   cfg.Log.Level,
				Format:  cfg.Log.Format,
				Service: appName,
				Version: appVersion,
				Output:  stderr,
			})
			return runner.New(cfg, logger, stdout, runner.Options{Today: today}).Run(cmd.Context())
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.StringVar(&f.configPath, "config", config.DefaultPath, "Path to TOML configuration file")
	flags.StringVar(&f.format, "format", output.FormatCSV, "Output format: csv or json")
	flags.StringVar(&f.today, "today", "", "Reference date (YYYY-MM-DD); defaults to today in the configured timezone")
	flags.StringVar(&f.source, "source", config.SourceWildtrails, "Data source: wildtrails or fixture")
	flags.StringVar(&f.timezone, "timezone", "", "IANA timezone that defines today")
	flags.IntVar(&f.windowDays, "window-days", 0, "Days ahead before quota replaces capacity")
	flags.IntVar(&f.concurrency, "concurrency", 0, "Maximum concurrent report fetches (0 = one per region)")
	flags.Float64Var(&f.rateLimit, "rate-limit", 0, "Upstream requests per second (0 = unlimited)")
	flags.StringVar(&f.metricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile after the run")
	flags.StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&f.logFormat, "log-format", "", "Log format: text or json")

	return cmd
}

// applyFlags lets explicitly set flags win over file and environment values.
func applyFlags(cmd *cobra.Command, f *rootFlags, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("format") {
		cfg.Format = f.format
	}
	if changed("source") {
		cfg.Source = f.source
	}
	if changed("timezone") {
		cfg.Timezone = f.timezone
	}
	if changed("window-days") {
		cfg.WindowDays = f.windowDays
	}
	if changed("concurrency") {
		cfg.Upstream.Concurrency = f.concurrency
	}
	if changed("rate-limit") {
		cfg.Upstream.RateLimit = f.rateLimit
	}
	if changed("metrics-file") {
		cfg.Metrics.Textfile = f.metricsFile
	}
	if changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if changed("log-format") {
		cfg.Log.Format = f.logFormat
	}
}
