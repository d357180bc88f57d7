package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ccollicutt/xmllog2json/pkg/input"
	"github.com/ccollicutt/xmllog2json/pkg/output"
)

// Default values for configuration.
const (
	DefaultCounterScope   = "run"
	DefaultWebhookTimeout = 10 * time.Second
)

// DefaultInput is searched when no inputs are configured.
var DefaultInput = filepath.Join(input.DefaultDir, input.XMLPattern)

// Environment variable names.
const (
	EnvInputs    = "XMLLOG2JSON_INPUTS"
	EnvOutputDir = "XMLLOG2JSON_OUTPUT_DIR"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Inputs:       []string{DefaultInput},
		OutputDir:    output.DefaultDir,
		CounterScope: DefaultCounterScope,
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if v := os.Getenv(EnvInputs); v != "" {
		var inputs []string
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				inputs = append(inputs, p)
			}
		}
		if len(inputs) > 0 {
			c.Inputs = inputs
		}
	}

	if dir := os.Getenv(EnvOutputDir); dir != "" {
		c.OutputDir = dir
	}
}
