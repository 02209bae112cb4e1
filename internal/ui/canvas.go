package ui

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/cellbuf"
)

// Canvas composes lipgloss-rendered blocks into a cell buffer so overlays
// (the error banner, the copy toast) can be drawn on top of a finished frame.
type Canvas struct {
	screen *cellbuf.Screen
	writer *cellbuf.ScreenWriter
	width  int
	height int
}

// NewCanvas creates a width x height canvas.
func NewCanvas(width, height int) *Canvas {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	screen := cellbuf.NewScreen(io.Discard, width, height, &cellbuf.ScreenOptions{
		ShowCursor: false,
		AltScreen:  false,
	})
	return &Canvas{
		screen: screen,
		writer: cellbuf.NewScreenWriter(screen),
		width:  width,
		height: height,
	}
}

// DrawStringAt writes content starting at x,y. Each line begins at column x.
func (c *Canvas) DrawStringAt(x, y int, content string) {
	if content == "" || c == nil || c.writer == nil {
		return
	}
	c.drawBlockAt(x, y, splitOverlayLines(content))
}

// topRightOverlay anchors overlay to the top-right corner, padding cells in
// from the right edge and starting at row top. It returns the covered area.
func (c *Canvas) topRightOverlay(overlay string, top, padding int) Rect {
	lines := splitOverlayLines(overlay)
	if len(lines) == 0 || c == nil {
		return Rect{}
	}
	if padding < 0 {
		padding = 0
	}
	width := maxLineWidth(lines)
	x := c.width - width - padding
	if x < 0 {
		x = 0
	}
	if top < 0 {
		top = 0
	}
	c.drawBlockAt(x, top, lines)
	return Rect{X: x, Y: top, W: width, H: len(lines)}
}

// bottomRightOverlay anchors overlay to the bottom-right corner with padding.
func (c *Canvas) bottomRightOverlay(overlay string, padding int) Rect {
	lines := splitOverlayLines(overlay)
	if len(lines) == 0 || c == nil {
		return Rect{}
	}
	if padding < 0 {
		padding = 0
	}
	y := c.height - len(lines) - padding
	if y < 0 {
		y = 0
	}
	width := maxLineWidth(lines)
	x := c.width - width - padding
	if x < 0 {
		x = 0
	}
	c.drawBlockAt(x, y, lines)
	return Rect{X: x, Y: y, W: width, H: len(lines)}
}

func (c *Canvas) drawBlockAt(x, y int, lines []string) {
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	for i, line := range lines {
		row := y + i
		if row >= c.height {
			break
		}
		if line == "" {
			continue
		}
		c.writer.PrintCropAt(x, row, line, "")
	}
}

// Render returns the composed frame as a newline-delimited string.
func (c *Canvas) Render() string {
	if c == nil || c.screen == nil {
		return ""
	}
	raw := cellbuf.Render(c.screen)
	_ = c.screen.Close()
	return strings.ReplaceAll(raw, "\r\n", "\n")
}

func splitOverlayLines(content string) []string {
	if content == "" {
		return nil
	}
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	return strings.Split(normalized, "\n")
}

func maxLineWidth(lines []string) int {
	width := 0
	for _, l := range lines {
		if w := lipgloss.Width(l); w > width {
			width = w
		}
	}
	return width
}
