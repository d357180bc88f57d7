package cli

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestNewRootCommand(t *testing.T) {
	root := NewRootCommand()

	for _, name := range []string{"convert", "validate", "watch", "version"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("missing subcommand %s", name)
		}
	}

	for _, flag := range []string{"config", "log-level", "log-format"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("missing persistent flag %s", flag)
		}
	}
}

func TestBindEnv(t *testing.T) {
	t.Setenv("XMLLOG2JSON_OUTPUT_DIR", "/env/out")
	t.Setenv("XMLLOG2JSON_SEVERITY", "error")
	t.Setenv("XMLLOG2JSON_SKIP_EMPTY", "true")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	outputDir := flags.String("output-dir", "", "")
	sev := flags.String("severity", "", "")
	skip := flags.Bool("skip-empty", false, "")
	format := flags.String("format", "text", "")

	if err := flags.Parse([]string{"--severity", "warning"}); err != nil {
		t.Fatal(err)
	}
	if err := bindEnv(newEnv(), flags); err != nil {
		t.Fatalf("bindEnv() error = %v", err)
	}

	if *outputDir != "/env/out" {
		t.Errorf("output-dir = %q, want /env/out", *outputDir)
	}
	if *sev != "warning" {
		t.Errorf("severity = %q, command line should win over env", *sev)
	}
	if !*skip {
		t.Error("skip-empty not read from env")
	}
	if *format != "text" {
		t.Errorf("format = %q, unset env should keep default", *format)
	}
	if !flags.Changed("output-dir") {
		t.Error("env-supplied flag should count as changed")
	}
}

func TestBindEnv_InvalidValue(t *testing.T) {
	t.Setenv("XMLLOG2JSON_SKIP_EMPTY", "maybe")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Bool("skip-empty", false, "")

	if err := bindEnv(newEnv(), flags); err == nil {
		t.Error("bindEnv() expected error for non-boolean value")
	}
}
