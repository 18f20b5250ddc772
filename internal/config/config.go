// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers a YAML file and RIDER_* environment variables on top.
// - External errors are wrapped with this package's sentinel kinds.
package config

import (
	"runtime"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log output.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// MixerCapacity is the number of physical inputs on the house mixer.
	MixerCapacity int `koanf:"mixer_capacity"`

	// TemplatePath optionally points at a YAML or JSON mixer template used
	// when a request carries none. Empty means the built-in standard template.
	TemplatePath string `koanf:"template_path"`

	// BatchConcurrency bounds how many bookings of a batch are allocated at once.
	BatchConcurrency int `koanf:"batch_concurrency"`

	// MaxBatchSize caps POST /allocations/batch.
	MaxBatchSize int `koanf:"max_batch_size"`

	// SingleFamilyOrder overrides the order single-channel families are
	// visited in, e.g. ["vocals", "guitar", "bass"].
	SingleFamilyOrder []string `koanf:"single_family_order"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		Addr:             ":9080",
		MixerCapacity:    32,
		BatchConcurrency: runtime.NumCPU(),
		MaxBatchSize:     100,
	}
}
