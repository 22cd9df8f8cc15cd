package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
)

// DefaultPixelsPerRow is the scroll resolution of one terminal row.
const DefaultPixelsPerRow = 16

// scrollPanel adapts a viewport to autoscroll.Panel. The engine moves in
// pixels; the viewport shows whole rows, so the visible row is the pixel
// offset divided by pixelsPerRow.
type scrollPanel struct {
	vp           viewport.Model
	pixelsPerRow int
	offset       int
}

func newScrollPanel(pixelsPerRow int) *scrollPanel {
	if pixelsPerRow < 1 {
		pixelsPerRow = DefaultPixelsPerRow
	}
	vp := viewport.New(0, 0)
	// Input belongs to the dashboard, not the panel.
	vp.KeyMap = viewport.KeyMap{}
	vp.MouseWheelEnabled = false
	return &scrollPanel{vp: vp, pixelsPerRow: pixelsPerRow}
}

func (p *scrollPanel) ScrollOffset() int {
	return p.offset
}

func (p *scrollPanel) SetScrollOffset(px int) {
	p.offset = max(0, min(p.maxOffset(), px))
	p.vp.SetYOffset(p.offset / p.pixelsPerRow)
}

func (p *scrollPanel) ContentHeight() int {
	return p.vp.TotalLineCount() * p.pixelsPerRow
}

func (p *scrollPanel) VisibleHeight() int {
	return p.vp.Height * p.pixelsPerRow
}

func (p *scrollPanel) maxOffset() int {
	return max(0, p.ContentHeight()-p.VisibleHeight())
}

// SetContent replaces the panel text and re-clamps the offset, which can be
// out of range when the content shrank.
func (p *scrollPanel) SetContent(s string) {
	p.vp.SetContent(s)
	p.SetScrollOffset(p.offset)
}

// SetSize sets the visible area in cells.
func (p *scrollPanel) SetSize(width, height int) {
	p.vp.Width = max(0, width)
	p.vp.Height = max(0, height)
	p.SetScrollOffset(p.offset)
}

// Row is the first visible content row.
func (p *scrollPanel) Row() int {
	return p.vp.YOffset
}

func (p *scrollPanel) View() string {
	return p.vp.View()
}
