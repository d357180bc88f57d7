// Package config provides configuration loading and validation for xmllog2json.
package config

import (
	"time"

	"github.com/ccollicutt/xmllog2json/pkg/entry"
)

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// Inputs are files, directories or glob patterns of XML documents.
	Inputs []string `yaml:"inputs"`

	// OutputDir receives the per-severity JSON files.
	OutputDir string `yaml:"output_dir"`

	Filter FilterConfig `yaml:"filter,omitempty"`

	// SkipEmpty writes only severities that have at least one record.
	SkipEmpty bool `yaml:"skip_empty,omitempty"`

	// CounterScope is "run" (default) or "file".
	CounterScope string `yaml:"counter_scope,omitempty"`

	Webhooks []WebhookConfig `yaml:"webhooks,omitempty"`
}

// FilterConfig restricts which records are converted. All fields are
// optional; values that cannot be parsed disable that part of the filter.
type FilterConfig struct {
	// Severity is "all", a single severity, or a comma-separated list.
	Severity string `yaml:"severity,omitempty"`

	// Start and Stop are ISO-8601 date-times bounding accepted records.
	Start string `yaml:"start,omitempty"`
	Stop  string `yaml:"stop,omitempty"`
}

// Build converts the filter settings into an entry.Filter. Unusable values
// are reported as warnings rather than errors.
func (f FilterConfig) Build() (entry.Filter, []string) {
	return entry.ParseFilter(f.Severity, f.Start, f.Stop)
}

// WebhookTrigger determines when a webhook fires.
type WebhookTrigger string

const (
	// WebhookTriggerOnFailure fires only when at least one file failed (default).
	WebhookTriggerOnFailure WebhookTrigger = "on_failure"
	// WebhookTriggerAlways fires after every run.
	WebhookTriggerAlways WebhookTrigger = "always"
	// WebhookTriggerNever disables the webhook.
	WebhookTriggerNever WebhookTrigger = "never"
)

// WebhookConfig defines a webhook endpoint for sending run reports.
type WebhookConfig struct {
	// Name is an optional identifier for the webhook.
	Name string `yaml:"name,omitempty"`

	// URL is the webhook endpoint (required).
	URL string `yaml:"url"`

	// Token is an optional bearer token for authentication.
	Token string `yaml:"token,omitempty"`

	// Trigger determines when the webhook fires.
	// Defaults to "on_failure" if not specified.
	Trigger WebhookTrigger `yaml:"trigger,omitempty"`

	// Timeout is the HTTP request timeout.
	// Defaults to 10s if not specified.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// ShouldFire reports whether a webhook with trigger t fires for a run.
func (t WebhookTrigger) ShouldFire(hasFailures bool) bool {
	switch t {
	case WebhookTriggerAlways:
		return true
	case WebhookTriggerNever:
		return false
	default:
		return hasFailures
	}
}
