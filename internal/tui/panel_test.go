package tui

import (
	"strings"
	"testing"
)

func lines(n int) string {
	rows := make([]string, n)
	for i := range rows {
		rows[i] = "row"
	}
	return strings.Join(rows, "\n")
}

func TestScrollPanelMeasuresInPixels(t *testing.T) {
	p := newScrollPanel(16)
	p.SetSize(20, 10)
	p.SetContent(lines(30))

	if got := p.ContentHeight(); got != 30*16 {
		t.Errorf("ContentHeight() = %d, want %d", got, 30*16)
	}
	if got := p.VisibleHeight(); got != 10*16 {
		t.Errorf("VisibleHeight() = %d, want %d", got, 10*16)
	}
}

func TestScrollPanelSetScrollOffset(t *testing.T) {
	tests := []struct {
		name       string
		offset     int
		wantOffset int
		wantRow    int
	}{
		{"within a row", 15, 15, 0},
		{"row boundary", 32, 32, 2},
		{"negative clamps to top", -5, 0, 0},
		{"past end clamps to extent", 10000, 20 * 16, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newScrollPanel(16)
			p.SetSize(20, 10)
			p.SetContent(lines(30))

			p.SetScrollOffset(tt.offset)
			if got := p.ScrollOffset(); got != tt.wantOffset {
				t.Errorf("ScrollOffset() = %d, want %d", got, tt.wantOffset)
			}
			if got := p.Row(); got != tt.wantRow {
				t.Errorf("Row() = %d, want %d", got, tt.wantRow)
			}
		})
	}
}

func TestScrollPanelReclampsWhenContentShrinks(t *testing.T) {
	p := newScrollPanel(16)
	p.SetSize(20, 10)
	p.SetContent(lines(30))
	p.SetScrollOffset(300)

	p.SetContent(lines(12))
	if got, want := p.ScrollOffset(), 2*16; got != want {
		t.Errorf("ScrollOffset() = %d, want %d", got, want)
	}

	p.SetContent(lines(5))
	if got := p.ScrollOffset(); got != 0 {
		t.Errorf("ScrollOffset() = %d, want 0 once content fits", got)
	}
}

func TestScrollPanelDefaultResolution(t *testing.T) {
	p := newScrollPanel(0)
	if p.pixelsPerRow != DefaultPixelsPerRow {
		t.Errorf("pixelsPerRow = %d, want %d", p.pixelsPerRow, DefaultPixelsPerRow)
	}
}
