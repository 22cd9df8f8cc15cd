package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Iron-Ham/scrolldash/internal/autoscroll"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "scroll.cadence_ms")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidThemes returns the list of built-in themes
func ValidThemes() []string {
	return []string{"default", "mono"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateScroll()...)
	errors = append(errors, c.validateTUI()...)
	errors = append(errors, c.validateWatch()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

// validateScroll validates the ScrollConfig
func (c *Config) validateScroll() []ValidationError {
	var errors []ValidationError

	minMs := int(autoscroll.MinCadence.Milliseconds())
	maxMs := int(autoscroll.MaxCadence.Milliseconds())
	if c.Scroll.CadenceMs < minMs || c.Scroll.CadenceMs > maxMs {
		errors = append(errors, ValidationError{
			Field:   "scroll.cadence_ms",
			Value:   c.Scroll.CadenceMs,
			Message: fmt.Sprintf("must be between %d and %d", minMs, maxMs),
		})
	}

	if c.Scroll.DwellMs < 0 {
		errors = append(errors, ValidationError{
			Field:   "scroll.dwell_ms",
			Value:   c.Scroll.DwellMs,
			Message: "must be non-negative",
		})
	}

	if c.Scroll.TolerancePx < 0 {
		errors = append(errors, ValidationError{
			Field:   "scroll.tolerance_px",
			Value:   c.Scroll.TolerancePx,
			Message: "must be non-negative",
		})
	}

	if _, err := autoscroll.ParseSpeed(c.Scroll.InitialSpeed); err != nil {
		labels := make([]string, 0, len(autoscroll.Speeds()))
		for _, s := range autoscroll.Speeds() {
			labels = append(labels, s.Label())
		}
		errors = append(errors, ValidationError{
			Field:   "scroll.initial_speed",
			Value:   c.Scroll.InitialSpeed,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(labels, ", ")),
		})
	}

	if c.Scroll.PixelsPerRow < 1 {
		errors = append(errors, ValidationError{
			Field:   "scroll.pixels_per_row",
			Value:   c.Scroll.PixelsPerRow,
			Message: "must be at least 1",
		})
	}

	return errors
}

// validateTUI validates the TUIConfig
func (c *Config) validateTUI() []ValidationError {
	var errors []ValidationError

	if c.TUI.Theme != "" && !slices.Contains(ValidThemes(), c.TUI.Theme) {
		errors = append(errors, ValidationError{
			Field:   "tui.theme",
			Value:   c.TUI.Theme,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidThemes(), ", ")),
		})
	}

	return errors
}

// validateWatch validates the WatchConfig
func (c *Config) validateWatch() []ValidationError {
	var errors []ValidationError

	if c.Watch.DebounceMs < 0 {
		errors = append(errors, ValidationError{
			Field:   "watch.debounce_ms",
			Value:   c.Watch.DebounceMs,
			Message: "must be non-negative",
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	if c.Logging.Enabled && c.Logging.Dir == "" {
		errors = append(errors, ValidationError{
			Field:   "logging.dir",
			Value:   c.Logging.Dir,
			Message: "is required when logging is enabled",
		})
	}

	return errors
}
