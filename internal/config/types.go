// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"

	"github.com/invowk/skillpack/pkg/skill"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"

	LogFormatText   LogFormat = "text"
	LogFormatJSON   LogFormat = "json"
	LogFormatLogfmt LogFormat = "logfmt"

	minConcurrency = 1
	maxConcurrency = 64
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidLogFormat is returned when a LogFormat value is not recognized.
	ErrInvalidLogFormat = errors.New("invalid log format")
	// ErrInvalidConcurrency is returned when batch.concurrency is out of range.
	ErrInvalidConcurrency = errors.New("invalid batch concurrency")
)

type (
	// ColorScheme selects the palette for rendered output.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// LogLevel is the minimum level written by the logger.
	LogLevel string

	// InvalidLogLevelError is returned when a LogLevel value is not recognized.
	InvalidLogLevelError struct {
		Value LogLevel
	}

	// LogFormat selects the log line encoding.
	LogFormat string

	// InvalidLogFormatError is returned when a LogFormat value is not recognized.
	InvalidLogFormatError struct {
		Value LogFormat
	}

	// InvalidConcurrencyError is returned when batch.concurrency is out of range.
	InvalidConcurrencyError struct {
		Value int
	}

	// Config holds the application configuration.
	Config struct {
		Packaging PackagingConfig `json:"packaging" yaml:"packaging" toml:"packaging" mapstructure:"packaging"`
		Batch     BatchConfig     `json:"batch" yaml:"batch" toml:"batch" mapstructure:"batch"`
		UI        UIConfig        `json:"ui" yaml:"ui" toml:"ui" mapstructure:"ui"`
		Log       LogConfig       `json:"log" yaml:"log" toml:"log" mapstructure:"log"`
		PR        PRConfig        `json:"pr" yaml:"pr" toml:"pr" mapstructure:"pr"`
	}

	// PackagingConfig holds defaults for the package and package-all commands.
	PackagingConfig struct {
		// OutputDir receives archives; empty selects the working directory.
		OutputDir string `json:"output_dir" yaml:"output_dir" toml:"output_dir" mapstructure:"output_dir"`
		// Exclude lists doublestar patterns left out of every archive.
		Exclude []string `json:"exclude" yaml:"exclude" toml:"exclude" mapstructure:"exclude"`
		// KeepPartial leaves incomplete archives on disk after a write failure.
		KeepPartial bool `json:"keep_partial" yaml:"keep_partial" toml:"keep_partial" mapstructure:"keep_partial"`
	}

	// BatchConfig configures package-all.
	BatchConfig struct {
		Concurrency int `json:"concurrency" yaml:"concurrency" toml:"concurrency" mapstructure:"concurrency"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		ColorScheme ColorScheme `json:"color_scheme" yaml:"color_scheme" toml:"color_scheme" mapstructure:"color_scheme"`
		Verbose     bool        `json:"verbose" yaml:"verbose" toml:"verbose" mapstructure:"verbose"`
	}

	// LogConfig configures diagnostic logging on stderr.
	LogConfig struct {
		Level  LogLevel  `json:"level" yaml:"level" toml:"level" mapstructure:"level"`
		Format LogFormat `json:"format" yaml:"format" toml:"format" mapstructure:"format"`
	}

	// PRConfig configures the pull request description helper.
	PRConfig struct {
		Dir  string `json:"dir" yaml:"dir" toml:"dir" mapstructure:"dir"`
		Base string `json:"base" yaml:"base" toml:"base" mapstructure:"base"`
	}
)

// Error implements the error interface.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// Validate returns an *InvalidColorSchemeError for unknown schemes.
func (cs ColorScheme) Validate() error {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return nil
	default:
		return &InvalidColorSchemeError{Value: cs}
	}
}

// Error implements the error interface.
func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: debug, info, warn, error)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidLogLevelError) Unwrap() error { return ErrInvalidLogLevel }

// Validate returns an *InvalidLogLevelError for unknown levels.
func (l LogLevel) Validate() error {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return nil
	default:
		return &InvalidLogLevelError{Value: l}
	}
}

// Error implements the error interface.
func (e *InvalidLogFormatError) Error() string {
	return fmt.Sprintf("invalid log format %q (valid: text, json, logfmt)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidLogFormatError) Unwrap() error { return ErrInvalidLogFormat }

// Validate returns an *InvalidLogFormatError for unknown formats.
func (f LogFormat) Validate() error {
	switch f {
	case LogFormatText, LogFormatJSON, LogFormatLogfmt:
		return nil
	default:
		return &InvalidLogFormatError{Value: f}
	}
}

// Error implements the error interface.
func (e *InvalidConcurrencyError) Error() string {
	return fmt.Sprintf("invalid batch concurrency %d (valid: %d-%d)", e.Value, minConcurrency, maxConcurrency)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidConcurrencyError) Unwrap() error { return ErrInvalidConcurrency }

// Validate checks the values that environment overrides can bypass the CUE
// schema for. All problems are joined into one error.
func (c *Config) Validate() error {
	var errs []error
	if err := c.UI.ColorScheme.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Log.Level.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Log.Format.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Batch.Concurrency < minConcurrency || c.Batch.Concurrency > maxConcurrency {
		errs = append(errs, &InvalidConcurrencyError{Value: c.Batch.Concurrency})
	}
	return errors.Join(errs...)
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Packaging: PackagingConfig{
			Exclude: []string{},
		},
		Batch: BatchConfig{
			Concurrency: skill.DefaultConcurrency,
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
		Log: LogConfig{
			Level:  LogLevelInfo,
			Format: LogFormatText,
		},
		PR: PRConfig{
			Dir:  "docs/prs",
			Base: "main",
		},
	}
}
