// Package config provides the translation service settings and their
// file-based loader.
package config

import (
	"fmt"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Default settings.
const (
	DefaultSourceDialect = "sqlite"
	DefaultTargetDialect = "bigquery"
	DefaultModel         = "gemini-2.5-flash"
	DefaultTemperature   = 0.5
	DefaultCandidates    = 1
	DefaultBatchTimeout  = 60 * time.Second
	DefaultMaxRetries    = 5
	DefaultPort          = 8080
)

// Settings holds every tunable of the translation service. Zero values are
// not meaningful; start from Default and override.
type Settings struct {
	SourceDialect string `koanf:"source_dialect"`
	TargetDialect string `koanf:"target_dialect"`

	Model       string  `koanf:"model"`
	Temperature float32 `koanf:"temperature"`

	ProcessInputErrors  bool `koanf:"process_input_errors"`
	ProcessOutputErrors bool `koanf:"process_output_errors"`

	NumberOfCandidates   int           `koanf:"number_of_candidates"`
	RevalidateCandidates bool          `koanf:"revalidate_candidates"`
	BatchTimeout         time.Duration `koanf:"batch_timeout"`
	MaxRetriesPerRequest int           `koanf:"max_retries_per_request"`

	// ExecCheck enables the dry-run execution check against an in-memory
	// engine in addition to the parse/semantic validation.
	ExecCheck bool `koanf:"exec_check"`

	Port     int    `koanf:"port"`
	LogLevel string `koanf:"log_level"`
}

// Default returns the settings used when no config file is given.
func Default() Settings {
	return Settings{
		SourceDialect:        DefaultSourceDialect,
		TargetDialect:        DefaultTargetDialect,
		Model:                DefaultModel,
		Temperature:          DefaultTemperature,
		ProcessInputErrors:   true,
		ProcessOutputErrors:  false,
		NumberOfCandidates:   DefaultCandidates,
		RevalidateCandidates: false,
		BatchTimeout:         DefaultBatchTimeout,
		MaxRetriesPerRequest: DefaultMaxRetries,
		Port:                 DefaultPort,
		LogLevel:             "info",
	}
}

// Load reads a YAML settings file over the defaults and validates the
// result.
func Load(path string) (Settings, error) {
	settings := Default()

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return Settings{}, fmt.Errorf("failed to load settings from %q: %w", path, err)
	}
	if err := k.UnmarshalWithConf("", &settings, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Settings{}, fmt.Errorf("failed to parse settings from %q: %w", path, err)
	}

	if err := settings.Validate(); err != nil {
		return Settings{}, fmt.Errorf("settings validation failed for %q: %w", path, err)
	}
	return settings, nil
}

// Validate checks the settings for values the pipeline cannot run with.
func (s Settings) Validate() error {
	if s.SourceDialect == "" {
		return fmt.Errorf("source_dialect must not be empty")
	}
	if s.TargetDialect == "" {
		return fmt.Errorf("target_dialect must not be empty")
	}
	if s.Model == "" {
		return fmt.Errorf("model must not be empty")
	}
	if s.Temperature < 0 || s.Temperature > 2 {
		return fmt.Errorf("temperature %v out of range [0, 2]", s.Temperature)
	}
	if s.NumberOfCandidates < 1 {
		return fmt.Errorf("number_of_candidates must be at least 1, got %d", s.NumberOfCandidates)
	}
	if s.BatchTimeout <= 0 {
		return fmt.Errorf("batch_timeout must be positive, got %v", s.BatchTimeout)
	}
	if s.MaxRetriesPerRequest < 0 {
		return fmt.Errorf("max_retries_per_request must not be negative, got %d", s.MaxRetriesPerRequest)
	}
	if s.Port < 1 || s.Port > 65535 {
		return fmt.Errorf("port %d out of range", s.Port)
	}
	return nil
}
