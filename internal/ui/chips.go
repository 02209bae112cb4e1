package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"jobmatch/internal/ui/theme"
)

// chipFlashClearMsg clears the duplicate flash.
type chipFlashClearMsg struct{}

const flashDuration = 150 * time.Millisecond

// ChipList is an ordered set of committed values, compared by exact string
// equality and capped at MaxItems.
type ChipList struct {
	Width    int // available width for wrapping
	MaxItems int

	chips      []string
	flashIndex int // chip flashed after a duplicate add, -1 for none
	navIndex   int // chip highlighted for removal, -1 for none
}

// NewChipList creates an empty ChipList holding at most maxItems chips.
func NewChipList(maxItems int) ChipList {
	return ChipList{
		Width:      40,
		MaxItems:   maxItems,
		flashIndex: -1,
		navIndex:   -1,
	}
}

// Add appends label if it is non-empty, absent and the list has room.
// Returns whether the list changed.
func (c *ChipList) Add(label string) bool {
	if label == "" || c.Full() {
		return false
	}
	if i := c.index(label); i >= 0 {
		c.flashIndex = i
		return false
	}
	c.chips = append(c.chips, label)
	return true
}

// Remove drops label. Returns whether the list changed.
func (c *ChipList) Remove(label string) bool {
	i := c.index(label)
	if i < 0 {
		return false
	}
	c.chips = append(c.chips[:i:i], c.chips[i+1:]...)
	c.flashIndex = -1
	c.navIndex = -1
	return true
}

// RemoveLast drops the most recently added chip and returns it.
func (c *ChipList) RemoveLast() (string, bool) {
	if len(c.chips) == 0 {
		return "", false
	}
	last := c.chips[len(c.chips)-1]
	c.chips = c.chips[:len(c.chips)-1]
	c.flashIndex = -1
	c.navIndex = -1
	return last, true
}

// Set replaces the chips, applying the same rules as repeated Add calls.
func (c *ChipList) Set(labels []string) {
	c.chips = nil
	c.flashIndex = -1
	c.navIndex = -1
	for _, l := range labels {
		c.Add(l)
	}
}

// Contains reports whether label is a chip.
func (c ChipList) Contains(label string) bool {
	return c.index(label) >= 0
}

// Full reports whether the list reached MaxItems.
func (c ChipList) Full() bool {
	return c.MaxItems > 0 && len(c.chips) >= c.MaxItems
}

// Len returns the number of chips.
func (c ChipList) Len() int {
	return len(c.chips)
}

// Values returns a copy of the chips in insertion order.
func (c ChipList) Values() []string {
	out := make([]string, len(c.chips))
	copy(out, c.chips)
	return out
}

// ClearFlash clears the duplicate flash.
func (c *ChipList) ClearFlash() {
	c.flashIndex = -1
}

// FlashIndex returns the flashed chip, or -1.
func (c ChipList) FlashIndex() int {
	return c.flashIndex
}

// Highlighted returns the chip highlighted for removal, or -1.
func (c ChipList) Highlighted() int {
	return c.navIndex
}

// HighlightLast highlights the most recent chip. Returns false when there are
// no chips.
func (c *ChipList) HighlightLast() bool {
	if len(c.chips) == 0 {
		return false
	}
	c.navIndex = len(c.chips) - 1
	return true
}

// MoveHighlight moves the highlight by delta, stopping at the first chip.
// Moving past the last chip ends highlighting and returns false.
func (c *ChipList) MoveHighlight(delta int) bool {
	if c.navIndex < 0 {
		return false
	}
	next := c.navIndex + delta
	if next >= len(c.chips) {
		c.navIndex = -1
		return false
	}
	if next < 0 {
		next = 0
	}
	c.navIndex = next
	return true
}

// ClearHighlight ends highlighting.
func (c *ChipList) ClearHighlight() {
	c.navIndex = -1
}

// RemoveHighlighted removes the highlighted chip. The highlight stays on the
// chip that slides into its place, or the new last chip.
func (c *ChipList) RemoveHighlighted() (string, bool) {
	i := c.navIndex
	if i < 0 || i >= len(c.chips) {
		return "", false
	}
	removed := c.chips[i]
	c.chips = append(c.chips[:i:i], c.chips[i+1:]...)
	c.flashIndex = -1
	switch {
	case len(c.chips) == 0:
		c.navIndex = -1
	case i >= len(c.chips):
		c.navIndex = len(c.chips) - 1
	}
	return removed, true
}

// ChipAt returns the index of the chip drawn at (x, y) relative to the top
// left of View, or -1.
func (c ChipList) ChipAt(x, y int) int {
	for i, span := range c.spans(c.rendered()) {
		if span.line == y && x >= span.x && x < span.x+span.w {
			return i
		}
	}
	return -1
}

func (c ChipList) index(label string) int {
	for i, chip := range c.chips {
		if chip == label {
			return i
		}
	}
	return -1
}

// View renders the chips as pills wrapped to Width.
func (c ChipList) View() string {
	if len(c.chips) == 0 {
		return ""
	}
	return c.wrapChips(c.rendered())
}

func (c ChipList) rendered() []string {
	out := make([]string, len(c.chips))
	for i, chip := range c.chips {
		state := chipStateNormal
		switch i {
		case c.flashIndex:
			state = chipStateFlash
		case c.navIndex:
			state = chipStateHighlight
		}
		out[i] = renderPillChip(chip+" "+glyphClose, state)
	}
	return out
}

// Height returns the number of lines View occupies.
func (c ChipList) Height() int {
	if len(c.chips) == 0 {
		return 0
	}
	return lipgloss.Height(c.View())
}

// chipSpan is where one chip lands after wrapping.
type chipSpan struct {
	line, x, w int
}

func (c ChipList) spans(renderedChips []string) []chipSpan {
	spans := make([]chipSpan, len(renderedChips))
	line, x := 0, 0
	for i, chip := range renderedChips {
		w := lipgloss.Width(chip)
		if x > 0 {
			if c.Width > 0 && x+1+w > c.Width {
				line++
				x = 0
			} else {
				x++
			}
		}
		spans[i] = chipSpan{line: line, x: x, w: w}
		x += w
	}
	return spans
}

func (c ChipList) wrapChips(renderedChips []string) string {
	var lines [][]string
	for i, span := range c.spans(renderedChips) {
		if span.line == len(lines) {
			lines = append(lines, nil)
		}
		lines[span.line] = append(lines[span.line], renderedChips[i])
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = strings.Join(l, " ")
	}
	return strings.Join(out, "\n")
}

func flashCmd() tea.Cmd {
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return chipFlashClearMsg{}
	})
}

type chipState int

const (
	chipStateNormal chipState = iota
	chipStateFlash
	chipStateHighlight
)

// Powerline characters for pill-shaped chips
const (
	pillLeft  = "\ue0b6" // rounded left edge
	pillRight = "\ue0b4" // rounded right edge
)

// renderPillChip renders a label as a pill with rounded powerline caps.
func renderPillChip(label string, state chipState) string {
	t := theme.Current()
	bgColor, fgColor := t.Info, t.Background
	switch state {
	case chipStateFlash:
		bgColor, fgColor = t.Warning, t.Text
	case chipStateHighlight:
		bgColor, fgColor = t.Error, t.Background
	}

	leftCap := lipgloss.NewStyle().Foreground(bgColor).Render(pillLeft)
	labelStyle := lipgloss.NewStyle().
		Foreground(fgColor).
		Background(bgColor)
	if state != chipStateNormal {
		labelStyle = labelStyle.Bold(true)
	}
	rightCap := lipgloss.NewStyle().Foreground(bgColor).Render(pillRight)

	return leftCap + labelStyle.Render(label) + rightCap
}
