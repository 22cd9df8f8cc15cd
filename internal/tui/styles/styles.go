// Package styles holds the lipgloss styles for the dashboard.
package styles

import "github.com/charmbracelet/lipgloss"

// Palette is the set of colors a theme supplies.
type Palette struct {
	Primary lipgloss.TerminalColor
	Accent  lipgloss.TerminalColor
	Warning lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Muted   lipgloss.TerminalColor
	Text    lipgloss.TerminalColor
	Border  lipgloss.TerminalColor
}

var palettes = map[string]Palette{
	"default": {
		Primary: lipgloss.Color("#A78BFA"), // Purple
		Accent:  lipgloss.Color("#10B981"), // Green
		Warning: lipgloss.Color("#F59E0B"), // Amber
		Error:   lipgloss.Color("#F87171"), // Red
		Muted:   lipgloss.Color("#9CA3AF"), // Gray
		Text:    lipgloss.Color("#F9FAFB"),
		Border:  lipgloss.Color("#6B7280"),
	},
	"mono": {
		Primary: lipgloss.NoColor{},
		Accent:  lipgloss.NoColor{},
		Warning: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Muted:   lipgloss.NoColor{},
		Text:    lipgloss.NoColor{},
		Border:  lipgloss.NoColor{},
	},
}

// Styles are the rendered styles for one theme.
type Styles struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	MetricCard  lipgloss.Style
	MetricLabel lipgloss.Style
	MetricValue lipgloss.Style
	Panel       lipgloss.Style
	PanelTitle  lipgloss.Style
	Badge       lipgloss.Style
	Speed       lipgloss.Style
	Client      lipgloss.Style
	Amount      lipgloss.Style
	Muted       lipgloss.Style
	Empty       lipgloss.Style
	Error       lipgloss.Style
	Paused      lipgloss.Style
}

// ForTheme builds the styles for a theme name, falling back to "default".
func ForTheme(name string) Styles {
	p, ok := palettes[name]
	if !ok {
		p = palettes["default"]
	}

	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary),
		Subtitle: lipgloss.NewStyle().
			Foreground(p.Muted).
			Italic(true),
		MetricCard: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),
		MetricLabel: lipgloss.NewStyle().Foreground(p.Muted),
		MetricValue: lipgloss.NewStyle().Bold(true).Foreground(p.Text),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border),
		PanelTitle: lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		Badge: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Accent).
			Padding(0, 1),
		Speed:  lipgloss.NewStyle().Foreground(p.Warning),
		Client: lipgloss.NewStyle().Bold(true).Foreground(p.Text),
		Amount: lipgloss.NewStyle().Foreground(p.Accent),
		Muted:  lipgloss.NewStyle().Foreground(p.Muted),
		Empty:  lipgloss.NewStyle().Foreground(p.Muted).Italic(true),
		Error:  lipgloss.NewStyle().Bold(true).Foreground(p.Error),
		Paused: lipgloss.NewStyle().Bold(true).Foreground(p.Warning),
	}
}

// Themes lists the built-in theme names.
func Themes() []string {
	return []string{"default", "mono"}
}
