package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/xmllog2json/pkg/config"
	"github.com/ccollicutt/xmllog2json/pkg/output"
	"github.com/ccollicutt/xmllog2json/pkg/watch"
)

// WatchOptions holds command-line options for the watch command.
type WatchOptions struct {
	SharedOptions

	Debounce time.Duration
}

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	opts := &WatchOptions{}

	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Convert XML files as they appear in a directory",
		Long: `Watch a directory tree and convert each new or changed *.xml file.

Files are handled one at a time once they have stopped changing for the
debounce period. Runs until interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args, opts)
		},
	}

	addSharedFlags(cmd, &opts.SharedOptions)
	cmd.Flags().DurationVar(&opts.Debounce, "debounce", watch.DefaultDebounce, "Quiet period before a changed file is converted")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string, opts *WatchOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, _, err := loadConfig(cmd, &opts.SharedOptions)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg.Inputs = args
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	logger := slog.Default()
	conv := newConverter(cfg)
	writer := output.NewWriter(cfg.OutputDir, output.WithSkipEmpty(cfg.SkipEmpty))

	w, err := watch.New(args[0], watch.WithDebounce(opts.Debounce), watch.WithLogger(logger))
	if err != nil {
		return err
	}

	logger.Info("watching for XML files", "dir", w.Root(), "output", writer.Dir())

	index := 0
	return w.Run(ctx, func(ctx context.Context, path string) error {
		result, err := conv.ConvertFile(ctx, path)
		if err != nil {
			return err
		}

		index++
		paths, err := writer.Write(index, result.Buckets)
		if err != nil {
			return err
		}

		logger.Info("file converted",
			"source", path,
			"accepted", result.Accepted,
			"rejected", result.Rejected,
			"outputs", len(paths))
		return nil
	})
}
