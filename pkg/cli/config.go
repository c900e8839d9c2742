package cli

import (
	"context"
	"time"

	scontext "github.com/stepwise/stepwise/pkg/context"
)

// Config holds the global flag values
type Config struct {
	ConfigFile  string
	ProjectRoot string
	Verbosity   string
	Notify      bool
	Version     string
}

// NewConfig creates a new CLI configuration with defaults
func NewConfig() *Config {
	return &Config{
		ProjectRoot: ".",
		Verbosity:   "info",
	}
}

// RuntimeConfig carries per-invocation state into a command
type RuntimeConfig struct {
	Config        *Config
	Context       context.Context
	StartTime     time.Time
	CorrelationID string
}

// NewRuntimeConfig creates a runtime configuration whose context carries
// a fresh correlation ID
func NewRuntimeConfig(cfg *Config, ctx context.Context) *RuntimeConfig {
	if ctx == nil {
		ctx = context.Background()
	}

	id := scontext.GenerateCorrelationID()
	now := time.Now()
	ctx = scontext.WithCorrelationID(ctx, id)
	ctx = scontext.WithStartTime(ctx, now)

	return &RuntimeConfig{
		Config:        cfg,
		Context:       ctx,
		StartTime:     now,
		CorrelationID: id,
	}
}

// Elapsed returns the time since the command started
func (rc *RuntimeConfig) Elapsed() time.Duration {
	return time.Since(rc.StartTime)
}
