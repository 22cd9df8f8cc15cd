package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/Iron-Ham/scrolldash/internal/analytics"
	"github.com/Iron-Ham/scrolldash/internal/autoscroll"
	"github.com/Iron-Ham/scrolldash/internal/tui/styles"
)

// Empty-state messages.
const (
	NoRenewals     = "No renewals this month"
	NoSalesTargets = "No sales targets found"
)

// panelFrameHeight is the border plus the title row.
const panelFrameHeight = 3

// renderRenewals renders one month's renewals as panel content.
func renderRenewals(s styles.Styles, month analytics.MonthRenewals, width int) string {
	if len(month.Items) == 0 {
		return s.Empty.Render(fit(NoRenewals, width))
	}

	var b strings.Builder
	for i, item := range month.Items {
		if i > 0 {
			b.WriteString("\n")
		}
		amount := analytics.FormatINR(item.Premium)
		date := "📅 " + item.Date
		gap := max(1, width-lipgloss.Width(date)-lipgloss.Width(amount))

		b.WriteString(s.Client.Render(fit(item.Client, width)))
		b.WriteString("\n")
		b.WriteString(fit(s.Muted.Render(date)+strings.Repeat(" ", gap)+s.Amount.Render(amount), width))
		b.WriteString("\n")
		b.WriteString(s.Muted.Render(fit("Policy: "+item.Policy, width)))
		b.WriteString("\n")
	}
	return b.String()
}

// renderTargets renders the distinct sales targets.
func renderTargets(s styles.Styles, targets []string, width int) string {
	if len(targets) == 0 {
		return s.Empty.Render(fit(NoSalesTargets, width))
	}
	lines := make([]string, len(targets))
	for i, t := range targets {
		lines[i] = s.Client.Render(fit("• "+t, width))
	}
	return strings.Join(lines, "\n")
}

// renewalsTitle is the panel title for a month, e.g. "Dec Renewals".
func renewalsTitle(month analytics.MonthRenewals) string {
	name := month.Month
	if name == "" {
		name = "Month"
	}
	return name + " Renewals"
}

// panelHeader renders the title row: title, item-count badge, then the
// speed indicator, with a pause marker while dwelling at an extreme.
func panelHeader(s styles.Styles, title string, count int, speed autoscroll.Speed, state autoscroll.State, width int) string {
	left := s.PanelTitle.Render(title) + s.Badge.Render(strconv.Itoa(count))

	right := s.Speed.Render(speed.Icon() + " " + speed.Label())
	switch state {
	case autoscroll.PausedAtBottom, autoscroll.PausedAtTop:
		right = s.Paused.Render("⏸ ") + right
	case autoscroll.Idle:
		right = s.Muted.Render("■ ") + right
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return fit(left, width)
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderPanel frames a panel body under its header.
func renderPanel(s styles.Styles, header, body string, width, height int) string {
	inner := max(0, width-2)
	content := lipgloss.JoinVertical(lipgloss.Left, header, body)
	return s.Panel.
		Width(inner).
		Height(max(0, height-2)).
		MaxHeight(height).
		Render(content)
}

// renderMetrics renders the four metric cards in a row.
func renderMetrics(s styles.Styles, m analytics.Metrics, width int) string {
	cards := []struct{ label, value string }{
		{"Total Premium", analytics.FormatINR(m.TotalPremium)},
		{"Policies", strconv.Itoa(m.TotalPolicies)},
		{"Gross Premium", analytics.FormatINR(m.GrossPremium)},
		{"Avg Premium", analytics.FormatINR(m.AvgPremium)},
	}

	cardWidth := max(12, width/len(cards)-2)
	rendered := make([]string, len(cards))
	for i, c := range cards {
		rendered[i] = s.MetricCard.Width(cardWidth).Render(
			s.MetricLabel.Render(fit(c.label, cardWidth-2)) + "\n" +
				s.MetricValue.Render(fit(c.value, cardWidth-2)),
		)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// renderError renders a load failure in place of the panels.
func renderError(s styles.Styles, path string, err error, width int) string {
	return s.Error.Render(fit(fmt.Sprintf("Failed to load %s: %v", path, err), width))
}

// fit truncates s to width cells, ANSI-aware.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}
