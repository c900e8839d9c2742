// Package types provides configuration and order types for stepwise
package types

import "github.com/stepwise/stepwise/pkg/builders"

// ConfigVersion is the only supported configuration version
const ConfigVersion = "1.0"

// LogLevel represents logging verbosity levels
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// Config is the root of a stepwise configuration file
type Config struct {
	Version        string              `json:"version" yaml:"version"`
	DefaultVariant string              `json:"defaultVariant,omitempty" yaml:"defaultVariant,omitempty"`
	LogLevel       LogLevel            `json:"logLevel,omitempty" yaml:"logLevel,omitempty"`
	Variants       []VariantConfig     `json:"variants,omitempty" yaml:"variants,omitempty"`
	Recipes        []RecipeConfig      `json:"recipes,omitempty" yaml:"recipes,omitempty"`
	Orders         []Order             `json:"orders,omitempty" yaml:"orders,omitempty"`
	Batch          *BatchConfig        `json:"batch,omitempty" yaml:"batch,omitempty"`
	Notifications  *NotificationConfig `json:"notifications,omitempty" yaml:"notifications,omitempty"`
}

// VariantConfig declares a custom label set
type VariantConfig struct {
	Name   string          `json:"name" yaml:"name"`
	Labels builders.Labels `json:"labels" yaml:"labels"`
}

// RecipeConfig declares a custom step sequence
type RecipeConfig struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Steps       []string `json:"steps" yaml:"steps"`
}

// Order requests Count products of a recipe built with a variant.
// An empty Variant selects the default variant.
type Order struct {
	Recipe  string `json:"recipe" yaml:"recipe"`
	Variant string `json:"variant,omitempty" yaml:"variant,omitempty"`
	Count   int    `json:"count,omitempty" yaml:"count,omitempty"`
}

// Units returns the number of products the order asks for; at least 1
func (o Order) Units() int {
	if o.Count < 1 {
		return 1
	}
	return o.Count
}

// BatchConfig tunes the batch assembly engine
type BatchConfig struct {
	Parallelism int `json:"parallelism,omitempty" yaml:"parallelism,omitempty"`
}

// NotificationConfig toggles desktop notifications
type NotificationConfig struct {
	Enabled *bool `json:"enabled,omitempty" yaml:"enabled,omitempty"`
}

// NotificationsEnabled reports whether notifications are switched on
func (c *Config) NotificationsEnabled() bool {
	return c.Notifications != nil && c.Notifications.Enabled != nil && *c.Notifications.Enabled
}

// Parallelism returns the configured batch parallelism, or 0 when unset
func (c *Config) Parallelism() int {
	if c.Batch == nil || c.Batch.Parallelism < 0 {
		return 0
	}
	return c.Batch.Parallelism
}
