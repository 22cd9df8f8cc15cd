package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Iron-Ham/scrolldash/internal/logging"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "View debug logs",
	Long: `View and filter the debug log written while logging.enabled is true.

Examples:
  # Show the last 50 entries
  scrolldash logs

  # Follow logs in real-time
  scrolldash logs -f

  # Only one panel's scroll events
  scrolldash logs --panel 2 --level debug

  # Show logs from the last hour matching a pattern
  scrolldash logs --since 1h --grep "reload|failed"`,
	Args: cobra.NoArgs,
	RunE: runLogs,
}

var (
	logsTail   int
	logsFollow bool
	logsLevel  string
	logsSince  string
	logsGrep   string
	logsPanel  int
)

func init() {
	rootCmd.AddCommand(logsCmd)

	logsCmd.Flags().IntVarP(&logsTail, "tail", "n", 50, "Number of lines to show (0 for all)")
	logsCmd.Flags().BoolVarP(&logsFollow, "follow", "f", false, "Follow log output (like tail -f)")
	logsCmd.Flags().StringVar(&logsLevel, "level", "", "Filter by minimum level (debug/info/warn/error)")
	logsCmd.Flags().StringVar(&logsSince, "since", "", "Show logs since duration ago (e.g., 1h, 30m)")
	logsCmd.Flags().StringVar(&logsGrep, "grep", "", "Filter logs matching pattern (regex)")
	logsCmd.Flags().IntVar(&logsPanel, "panel", 0, "Only show entries for this panel (1-3)")
}

// logEntry represents a parsed JSON log line
type logEntry struct {
	Time      time.Time      `json:"time"`
	Level     string         `json:"level"`
	Msg       string         `json:"msg"`
	Component string         `json:"component,omitempty"`
	Panel     int            `json:"panel,omitempty"`
	Extra     map[string]any `json:"-"` // Captures additional fields
}

// UnmarshalJSON implements custom unmarshaling to capture extra fields
func (e *logEntry) UnmarshalJSON(data []byte) error {
	// First, unmarshal known fields using a type alias to avoid recursion
	type Alias logEntry
	aux := &struct {
		*Alias
	}{
		Alias: (*Alias)(e),
	}
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}

	// Then unmarshal all fields to capture extras
	var all map[string]any
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}

	for _, known := range []string{"time", "level", "msg", "component", "panel"} {
		delete(all, known)
	}
	if len(all) > 0 {
		e.Extra = all
	}

	return nil
}

var (
	logTimeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	logFieldStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	logLevelStyle = map[string]lipgloss.Style{
		logging.LevelDebug: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		logging.LevelInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		logging.LevelWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		logging.LevelError: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
)

// levelPriority returns the priority of a log level for filtering
func levelPriority(level string) int {
	switch strings.ToUpper(level) {
	case logging.LevelDebug:
		return 0
	case logging.LevelInfo:
		return 1
	case logging.LevelWarn:
		return 2
	case logging.LevelError:
		return 3
	default:
		return -1
	}
}

// formatLogEntry formats a log entry for terminal output
func formatLogEntry(entry *logEntry) string {
	var sb strings.Builder

	sb.WriteString(logTimeStyle.Render("[" + entry.Time.Format("15:04:05.000") + "]"))

	level := strings.ToUpper(entry.Level)
	style, ok := logLevelStyle[level]
	if !ok {
		style = lipgloss.NewStyle()
	}
	sb.WriteString(" ")
	sb.WriteString(style.Render("[" + level + "]"))

	sb.WriteString(" ")
	sb.WriteString(entry.Msg)

	if entry.Component != "" {
		sb.WriteString(" ")
		sb.WriteString(logFieldStyle.Render("component=" + entry.Component))
	}
	if entry.Panel != 0 {
		sb.WriteString(" ")
		sb.WriteString(logFieldStyle.Render(fmt.Sprintf("panel=%d", entry.Panel)))
	}

	// Extra fields, sorted for stable output
	keys := make([]string, 0, len(entry.Extra))
	for k := range entry.Extra {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		sb.WriteString(" ")
		sb.WriteString(logFieldStyle.Render(k + "="))
		fmt.Fprintf(&sb, "%v", entry.Extra[k])
	}

	return sb.String()
}

// logFilter holds the entry filters from the command line.
type logFilter struct {
	minLevel int
	since    time.Time
	grep     *regexp.Regexp
	panel    int
}

func runLogs(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	logPath := filepath.Join(cfg.Logging.Dir, logging.LogFileName)
	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		fmt.Fprintln(out, "No logs found.")
		fmt.Fprintln(out, "Logs are stored at:", logPath)
		if !cfg.Logging.Enabled {
			fmt.Fprintln(out, "Set logging.enabled to true to write them.")
		}
		return nil
	}

	filter := logFilter{minLevel: -1, panel: logsPanel}
	if logsLevel != "" {
		filter.minLevel = levelPriority(logging.ParseLevel(logsLevel))
	}

	if logsSince != "" {
		duration, err := time.ParseDuration(logsSince)
		if err != nil {
			return fmt.Errorf("invalid duration format: %w", err)
		}
		filter.since = time.Now().Add(-duration)
	}

	if logsGrep != "" {
		filter.grep, err = regexp.Compile(logsGrep)
		if err != nil {
			return fmt.Errorf("invalid grep pattern: %w", err)
		}
	}

	if logsFollow {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		return followLogs(ctx, out, logPath, filter)
	}
	return displayLogs(out, logPath, logsTail, filter)
}

// formatLine renders one raw log line, or reports false if it is filtered out.
// Lines that are not JSON are shown as-is.
func formatLine(line string, filter logFilter) (string, bool) {
	var entry logEntry
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		return line, true
	}
	if !filter.passes(&entry) {
		return "", false
	}
	return formatLogEntry(&entry), true
}

// displayLogs reads the log file and displays filtered entries
func displayLogs(w io.Writer, logPath string, tail int, filter logFilter) error {
	file, err := os.Open(logPath)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer file.Close()

	var entries []string
	scanner := bufio.NewScanner(file)

	// Increase buffer size for potentially long log lines
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if formatted, ok := formatLine(line, filter); ok {
			entries = append(entries, formatted)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading log file: %w", err)
	}

	// Apply tail limit
	if tail > 0 && len(entries) > tail {
		entries = entries[len(entries)-tail:]
	}

	for _, entry := range entries {
		fmt.Fprintln(w, entry)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No matching log entries found.")
	}

	return nil
}

// followLogs implements tail -f behavior for the log file until ctx is done.
func followLogs(ctx context.Context, w io.Writer, logPath string, filter logFilter) error {
	file, err := os.Open(logPath)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer file.Close()

	// Seek to end of file
	if _, err := file.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("failed to seek to end: %w", err)
	}

	fmt.Fprintf(w, "Following logs... (Ctrl+C to stop)\n\n")

	reader := bufio.NewReader(file)
	var partial string
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if err != io.EOF {
				return fmt.Errorf("error reading log file: %w", err)
			}
			// Keep a half-written line until its newline arrives.
			partial += line
			// No new data, wait briefly and try again
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(100 * time.Millisecond):
			}
			continue
		}

		line = strings.TrimSpace(partial + line)
		partial = ""
		if line == "" {
			continue
		}
		if formatted, ok := formatLine(line, filter); ok {
			fmt.Fprintln(w, formatted)
		}
	}
}

// passes checks if a log entry passes all filter criteria
func (f logFilter) passes(entry *logEntry) bool {
	if f.minLevel >= 0 && levelPriority(entry.Level) < f.minLevel {
		return false
	}

	if !f.since.IsZero() && entry.Time.Before(f.since) {
		return false
	}

	if f.panel != 0 && entry.Panel != f.panel {
		return false
	}

	// Grep filter - search in message and extra fields
	if f.grep != nil {
		searchText := entry.Msg + " " + entry.Component
		for _, v := range entry.Extra {
			searchText += " " + fmt.Sprintf("%v", v)
		}
		if !f.grep.MatchString(searchText) {
			return false
		}
	}

	return true
}
