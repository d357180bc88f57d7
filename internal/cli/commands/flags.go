package commands

import (
	"github.com/spf13/cobra"

	"github.com/ccollicutt/xmllog2json/pkg/config"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// SharedOptions holds the conversion flags common to convert and watch.
type SharedOptions struct {
	OutputDir    string
	Severity     string
	Start        string
	Stop         string
	SkipEmpty    bool
	CounterScope string
}

func addSharedFlags(cmd *cobra.Command, opts *SharedOptions) {
	cmd.Flags().StringVar(&opts.OutputDir, "output-dir", "", "Directory for per-severity JSON files (default \"output\")")
	cmd.Flags().StringVar(&opts.Severity, "severity", "", "Severities to keep: all, or a comma-separated list of warning,info,error")
	cmd.Flags().StringVar(&opts.Start, "start", "", "Drop records before this ISO-8601 date-time")
	cmd.Flags().StringVar(&opts.Stop, "stop", "", "Drop records after this ISO-8601 date-time")
	cmd.Flags().BoolVar(&opts.SkipEmpty, "skip-empty", false, "Only write severities that have records")
	cmd.Flags().StringVar(&opts.CounterScope, "counter-scope", "", "Severity tally scope (run|file)")
}

// apply overrides cfg with every flag the user set explicitly.
func (o *SharedOptions) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("output-dir") {
		cfg.OutputDir = o.OutputDir
	}
	if flags.Changed("severity") {
		cfg.Filter.Severity = o.Severity
	}
	if flags.Changed("start") {
		cfg.Filter.Start = o.Start
	}
	if flags.Changed("stop") {
		cfg.Filter.Stop = o.Stop
	}
	if flags.Changed("skip-empty") {
		cfg.SkipEmpty = o.SkipEmpty
	}
	if flags.Changed("counter-scope") {
		cfg.CounterScope = o.CounterScope
	}
}

// loadConfig reads the --config file (or defaults), applies flag overrides
// and validates the result.
func loadConfig(cmd *cobra.Command, opts *SharedOptions) (*config.Config, string, error) {
	ctx := cmd.Context()
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return nil, configPath, err
	}

	if opts != nil {
		opts.apply(cmd, cfg)
	}
	return cfg, configPath, nil
}
