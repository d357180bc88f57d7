// Package cli provides the command-line interface for xmllog2json.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ccollicutt/xmllog2json/internal/cli/commands"
	"github.com/ccollicutt/xmllog2json/internal/logging"
)

// EnvPrefix prefixes environment variables that stand in for flags, so
// XMLLOG2JSON_OUTPUT_DIR supplies --output-dir.
const EnvPrefix = "XMLLOG2JSON"

// Execute runs the root command and returns the exit code.
func Execute() int {
	commands.ExitCode = 0

	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2 // Configuration or runtime error
	}
	return commands.ExitCode
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	var (
		logLevel  string
		logFormat string
	)

	v := newEnv()

	rootCmd := &cobra.Command{
		Use:   "xmllog2json",
		Short: "Convert XML log files to per-severity JSON",
		Long: `xmllog2json converts XML log documents into JSON files grouped by severity.

Every record carries a timestamp, a severity (WARNING, INFO or ERROR) and a
message. Valid records are written to one file per severity; invalid ones
are skipped and reported.

Any flag can also be set through the environment: --output-dir is read from
XMLLOG2JSON_OUTPUT_DIR when not given on the command line.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := bindEnv(v, cmd.Flags()); err != nil {
				return err
			}
			logging.Init(os.Stderr, logFormat, logging.ParseLevel(logLevel))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", logging.FormatText, "Log format (text|json)")

	// Add subcommands
	rootCmd.AddCommand(commands.NewConvertCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewWatchCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}

func newEnv() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// bindEnv fills every flag not set on the command line from its
// environment variable, if present.
func bindEnv(v *viper.Viper, flags *pflag.FlagSet) error {
	var firstErr error
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Changed || firstErr != nil {
			return
		}
		if err := v.BindEnv(f.Name); err != nil {
			firstErr = err
			return
		}
		if !v.IsSet(f.Name) {
			return
		}
		if err := flags.Set(f.Name, v.GetString(f.Name)); err != nil {
			firstErr = fmt.Errorf("invalid value for %s_%s: %w",
				EnvPrefix, strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_")), err)
		}
	})
	return firstErr
}
