package tui

// Layout offsets, in terminal rows.
const (
	// HeaderHeight is the title row plus the source/subtitle row.
	HeaderHeight = 2

	// MetricsHeight is one row of metric cards: border, label, value, border.
	MetricsHeight = 4

	// PanelMinHeight keeps at least one body row visible.
	PanelMinHeight = panelFrameHeight + 1

	// StackThreshold is the terminal width below which panels are stacked
	// vertically instead of side by side.
	StackThreshold = 90
)

// panelRect is the outer size of one panel, borders included.
type panelRect struct {
	width  int
	height int
}

// layoutPanels splits the area between the metrics and the help bar
// between n panels.
func layoutPanels(width, height, helpRows, n int) []panelRect {
	avail := max(0, height-HeaderHeight-MetricsHeight-helpRows)
	rects := make([]panelRect, n)
	if n == 0 {
		return rects
	}

	if width < StackThreshold {
		h := max(PanelMinHeight, avail/n)
		for i := range rects {
			rects[i] = panelRect{width: width, height: h}
		}
		return rects
	}

	w := width / n
	for i := range rects {
		rects[i] = panelRect{width: w, height: max(PanelMinHeight, avail)}
	}
	// The last panel absorbs the remainder.
	rects[n-1].width = width - w*(n-1)
	return rects
}

// bodySize is the viewport size inside a panel of the given outer size.
func (r panelRect) bodySize() (width, height int) {
	return max(0, r.width-2), max(0, r.height-panelFrameHeight)
}

// stacked reports whether panels are laid out vertically at this width.
func stacked(width int) bool {
	return width < StackThreshold
}
