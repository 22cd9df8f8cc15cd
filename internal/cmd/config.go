package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/scrolldash/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or validate scrolldash configuration",
	Long: `View or validate scrolldash configuration.

Without arguments, displays the current configuration.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration for invalid values",
	RunE:  runConfigValidate,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/scrolldash/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	var cfg config.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to read configuration: %w", err)
	}

	out := cmd.OutOrStdout()
	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "# Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintln(out, "# Config file: (none - using defaults)")
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(&cfg); err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	return enc.Close()
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	_, err := config.Load()
	var verrs config.ValidationErrors
	if errors.As(err, &verrs) {
		out := cmd.OutOrStdout()
		for _, e := range verrs {
			fmt.Fprintf(out, "  %s\n", e.Error())
		}
		return fmt.Errorf("configuration has %d invalid value(s)", len(verrs))
	}
	if err != nil {
		return fmt.Errorf("failed to read configuration: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Configuration is valid.")
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configFile := config.ConfigFile()

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s", configFile)
	}

	if err := os.MkdirAll(filepath.Dir(configFile), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Generate a commented config file
	configContent := `# Scrolldash Configuration

# Panel auto-scrolling
scroll:
  # Tick interval in milliseconds (16-50)
  cadence_ms: 30
  # Pause at the top and bottom of each panel in milliseconds
  dwell_ms: 800
  # Pixels from an edge that count as reaching it
  tolerance_px: 2
  # Starting speed for every panel: 0.5x, 1x, 1.5x or 2x
  initial_speed: 1x
  # Scroll pixels per terminal row; higher is smoother and slower
  pixels_per_row: 16

# Terminal UI
tui:
  # Color theme: default or mono
  theme: default
  # Count the metric cards up from zero after each load
  animate_counters: true

# Reload the spreadsheet when it changes on disk
watch:
  enabled: true
  debounce_ms: 200

# Debug logging (JSON lines written to {dir}/debug.log)
logging:
  enabled: false
  level: info
`

	if err := os.WriteFile(configFile, []byte(configContent), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created config file at %s\n", configFile)
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", config.ConfigFile())
	}

	// Also show config search paths
	fmt.Fprintln(out, "\nSearch paths:")
	fmt.Fprintf(out, "  1. %s\n", config.ConfigFile())
	fmt.Fprintln(out, "  2. ./config.yaml (current directory)")
	fmt.Fprintln(out, "\nEnvironment variables: SCROLLDASH_* (e.g., SCROLLDASH_SCROLL_DWELL_MS)")

	return nil
}
