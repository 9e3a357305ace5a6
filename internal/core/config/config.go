// Package config provides configuration management for the escalation service.
package config

import (
	"fmt"
	"time"

	"github.com/loopdesk/escalate/internal/engine"
)

// Config holds runtime configuration for the escalation engine and its
// rule store.
type Config struct {
	DatabaseURL   string
	BusinessHours BusinessHoursConfig
	MaxRuleBatch  int
}

// BusinessHoursConfig is the raw, file/env form of the support team's
// working window. It is resolved into an engine.BusinessHours (with a
// loaded *time.Location) at startup, not inside the evaluator.
type BusinessHoursConfig struct {
	Start    int
	End      int
	Timezone string
}

// Default returns configuration with default values: a 9-to-5 UTC working
// window and SQLite in the working directory.
func Default() *Config {
	return &Config{
		DatabaseURL: "sqlite://escalate.db",
		BusinessHours: BusinessHoursConfig{
			Start:    9,
			End:      17,
			Timezone: "UTC",
		},
		MaxRuleBatch: 500,
	}
}

// Window resolves the configured hours and timezone into the value the
// engine consumes. Fails on unknown IANA zone names.
func (b BusinessHoursConfig) Window() (engine.BusinessHours, error) {
	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		return engine.BusinessHours{}, fmt.Errorf("invalid business_hours timezone %q: %w", b.Timezone, err)
	}
	return engine.BusinessHours{Start: b.Start, End: b.End, Location: loc}, nil
}

// Validate checks hour ranges, timezone resolvability, and batch limits.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("database_url is required")
	}
	if c.BusinessHours.Start < 0 || c.BusinessHours.Start > 23 {
		return fmt.Errorf("business_hours.start must be 0-23, got %d", c.BusinessHours.Start)
	}
	if c.BusinessHours.End < 0 || c.BusinessHours.End > 23 {
		return fmt.Errorf("business_hours.end must be 0-23, got %d", c.BusinessHours.End)
	}
	if _, err := c.BusinessHours.Window(); err != nil {
		return err
	}
	if c.MaxRuleBatch <= 0 {
		return fmt.Errorf("rules.max_batch must be positive, got %d", c.MaxRuleBatch)
	}
	return nil
}
