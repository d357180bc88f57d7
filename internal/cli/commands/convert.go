package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/xmllog2json/pkg/config"
	"github.com/ccollicutt/xmllog2json/pkg/converter"
	"github.com/ccollicutt/xmllog2json/pkg/input"
	"github.com/ccollicutt/xmllog2json/pkg/output"
	"github.com/ccollicutt/xmllog2json/pkg/webhook"
)

// ConvertOptions holds command-line options for the convert command.
type ConvertOptions struct {
	SharedOptions

	Format  string
	Verbose bool
	Quiet   bool

	// Webhook options
	WebhookURL     string
	WebhookToken   string
	WebhookTrigger string
}

// NewConvertCommand creates the convert command.
func NewConvertCommand() *cobra.Command {
	opts := &ConvertOptions{}

	cmd := &cobra.Command{
		Use:   "convert [inputs...]",
		Short: "Convert XML log files to per-severity JSON",
		Long: `Convert XML log documents into one JSON file per severity.

Inputs may be files, directories (searched recursively for *.xml) or glob
patterns such as logs/**/*.xml. With no inputs, the configured inputs are
used, defaulting to input/**/*.xml.

Each record must carry timestamp, severity and message elements. Records
with missing or invalid fields are skipped; a document with an unknown
element is not converted at all.

Exit codes:
  0 - All files converted
  1 - At least one file could not be converted
  2 - Configuration or runtime error`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, opts)
		},
	}

	addSharedFlags(cmd, &opts.SharedOptions)
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "text", "Report format (text|json)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show output files and run details")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no details")

	// Webhook flags
	cmd.Flags().StringVar(&opts.WebhookURL, "webhook-url", "", "Webhook endpoint URL")
	cmd.Flags().StringVar(&opts.WebhookToken, "webhook-token", "", "Bearer token for webhook auth")
	cmd.Flags().StringVar(&opts.WebhookTrigger, "webhook-trigger", string(config.WebhookTriggerOnFailure), "When to fire webhook (on_failure|always|never)")

	return cmd
}

func runConvert(cmd *cobra.Command, args []string, opts *ConvertOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, configPath, err := loadConfig(cmd, &opts.SharedOptions)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if len(args) > 0 {
		cfg.Inputs = args
	}
	if opts.WebhookURL != "" {
		cfg.Webhooks = append(cfg.Webhooks, config.WebhookConfig{
			Name:    "cli",
			URL:     opts.WebhookURL,
			Token:   opts.WebhookToken,
			Trigger: config.WebhookTrigger(opts.WebhookTrigger),
		})
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	formatter, err := output.NewFormatter(opts.Format, output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
	})
	if err != nil {
		return err
	}

	files, err := input.ExpandGlobs(cfg.Inputs)
	if err != nil {
		return fmt.Errorf("expanding inputs: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no XML files matched inputs: %v", cfg.Inputs)
	}

	conv := newConverter(cfg)
	writer := output.NewWriter(cfg.OutputDir, output.WithSkipEmpty(cfg.SkipEmpty))

	run, err := conv.Run(ctx, files, func(_ context.Context, index int, result *converter.FileResult) error {
		paths, err := writer.Write(index, result.Buckets)
		result.Outputs = paths
		return err
	})
	if err != nil {
		return fmt.Errorf("conversion interrupted: %w", err)
	}

	report := output.NewReport(run, output.Metadata{
		ConfigFile:   configPath,
		OutputDir:    writer.Dir(),
		CounterScope: conv.Scope(),
		Filter:       output.NewFilterInfo(conv.Filter()),
	})

	if err := formatter.Format(ctx, report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	// Webhook failures are logged but don't fail the run
	if len(cfg.Webhooks) > 0 {
		webhook.NewClient().Notify(ctx, cfg.Webhooks, report, slog.Default())
	}

	if report.HasFailures() {
		ExitCode = 1
	}

	return nil
}

// newConverter builds a converter from cfg. Unusable filter values are
// logged and ignored.
func newConverter(cfg *config.Config) *converter.Converter {
	filter, warnings := cfg.Filter.Build()
	for _, w := range warnings {
		slog.Warn("filter setting ignored", "reason", w)
	}

	return converter.New(
		converter.WithFilter(filter),
		converter.WithCounterScope(converter.CounterScope(cfg.CounterScope)),
		converter.WithLogger(slog.Default()),
	)
}
