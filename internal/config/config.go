package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// AppName is used for the config directory and the environment prefix.
const AppName = "scrolldash"

// Config represents the complete scrolldash configuration
type Config struct {
	Scroll  ScrollConfig  `mapstructure:"scroll" yaml:"scroll"`
	TUI     TUIConfig     `mapstructure:"tui" yaml:"tui"`
	Watch   WatchConfig   `mapstructure:"watch" yaml:"watch"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// ScrollConfig controls the panel auto-scroll engine
type ScrollConfig struct {
	// CadenceMs is the tick interval in milliseconds (default: 30, range: 16-50)
	CadenceMs int `mapstructure:"cadence_ms" yaml:"cadence_ms"`
	// DwellMs is the pause at the top and bottom of a panel (default: 800)
	DwellMs int `mapstructure:"dwell_ms" yaml:"dwell_ms"`
	// TolerancePx is the band near an extreme that counts as reaching it (default: 2)
	TolerancePx int `mapstructure:"tolerance_px" yaml:"tolerance_px"`
	// InitialSpeed is the speed every panel starts at: "0.5x", "1x", "1.5x" or "2x"
	InitialSpeed string `mapstructure:"initial_speed" yaml:"initial_speed"`
	// PixelsPerRow is how many scroll pixels make up one terminal row (default: 16)
	PixelsPerRow int `mapstructure:"pixels_per_row" yaml:"pixels_per_row"`
}

// TUIConfig controls the terminal UI
type TUIConfig struct {
	// Theme is the color theme: "default" or "mono"
	Theme string `mapstructure:"theme" yaml:"theme"`
	// AnimateCounters eases the metric cards up from zero after each load
	AnimateCounters bool `mapstructure:"animate_counters" yaml:"animate_counters"`
}

// WatchConfig controls reloading when the spreadsheet changes on disk
type WatchConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// DebounceMs coalesces bursts of file events (default: 200)
	DebounceMs int `mapstructure:"debounce_ms" yaml:"debounce_ms"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled writes a JSON debug log to Dir
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// Level is the minimum level: "debug", "info", "warn" or "error"
	Level string `mapstructure:"level" yaml:"level"`
	// Dir is the log directory (default: {config dir}/logs)
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Scroll: ScrollConfig{
			CadenceMs:    30,
			DwellMs:      800,
			TolerancePx:  2,
			InitialSpeed: "1x",
			PixelsPerRow: 16,
		},
		TUI: TUIConfig{
			Theme:           "default",
			AnimateCounters: true,
		},
		Watch: WatchConfig{
			Enabled:    true,
			DebounceMs: 200,
		},
		Logging: LoggingConfig{
			Enabled: false,
			Level:   "info",
			Dir:     filepath.Join(ConfigDir(), "logs"),
		},
	}
}

// Cadence returns the scroll tick interval as a time.Duration
func (c *ScrollConfig) Cadence() time.Duration {
	return time.Duration(c.CadenceMs) * time.Millisecond
}

// Dwell returns the boundary pause as a time.Duration
func (c *ScrollConfig) Dwell() time.Duration {
	return time.Duration(c.DwellMs) * time.Millisecond
}

// Debounce returns the watch debounce as a time.Duration
func (c *WatchConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("scroll.cadence_ms", defaults.Scroll.CadenceMs)
	viper.SetDefault("scroll.dwell_ms", defaults.Scroll.DwellMs)
	viper.SetDefault("scroll.tolerance_px", defaults.Scroll.TolerancePx)
	viper.SetDefault("scroll.initial_speed", defaults.Scroll.InitialSpeed)
	viper.SetDefault("scroll.pixels_per_row", defaults.Scroll.PixelsPerRow)

	viper.SetDefault("tui.theme", defaults.TUI.Theme)
	viper.SetDefault("tui.animate_counters", defaults.TUI.AnimateCounters)

	viper.SetDefault("watch.enabled", defaults.Watch.Enabled)
	viper.SetDefault("watch.debounce_ms", defaults.Watch.DebounceMs)

	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
