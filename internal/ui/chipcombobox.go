package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"jobmatch/internal/suggest"
)

// DefaultMaxChips caps a ChipComboBox created with maxItems <= 0.
const DefaultMaxChips = 10

// ChipComboBox collects multiple values as chips. Typing filters the catalog
// minus the chips already committed; Enter or a click adds a chip and clears
// the query. Nothing is committed on blur. Left on an empty query highlights
// the last chip; Backspace or Delete removes the highlighted chip.
type ChipComboBox struct {
	Field       FieldID
	Placeholder string
	Width       int

	chips   ChipList
	catalog []string
	input   textinput.Model
	state   suggest.State
	focused bool
}

// NewChipComboBox creates a ChipComboBox over catalog holding at most
// maxItems chips.
func NewChipComboBox(field FieldID, catalog []string, maxItems int) ChipComboBox {
	if maxItems <= 0 {
		maxItems = DefaultMaxChips
	}
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 100

	c := ChipComboBox{
		Field:   field,
		Width:   40,
		chips:   NewChipList(maxItems),
		catalog: catalog,
		input:   ti,
	}
	c.input.Width = c.Width - 4
	c.chips.Width = c.Width
	return c
}

// WithPlaceholder sets the placeholder shown while there are no chips.
func (c ChipComboBox) WithPlaceholder(s string) ChipComboBox {
	c.Placeholder = s
	c.input.Placeholder = s
	return c
}

// WithWidth sets the display width including the border.
func (c ChipComboBox) WithWidth(w int) ChipComboBox {
	c.Width = w
	c.input.Width = w - 4
	c.chips.Width = w
	return c
}

// WithMaxItems changes the chip cap.
func (c ChipComboBox) WithMaxItems(n int) ChipComboBox {
	if n > 0 {
		c.chips.MaxItems = n
	}
	return c
}

func (c ChipComboBox) env() suggest.Env {
	return suggest.Env{
		Catalog:  c.catalog,
		Excluded: c.chips.chips,
		Freeform: true,
	}
}

func (c *ChipComboBox) apply(ev suggest.Event) tea.Cmd {
	var out suggest.Outcome
	c.state, out = suggest.Transition(c.env(), c.state, ev)
	c.syncInput()
	if out.Committed {
		return c.commit(out.Value)
	}
	return nil
}

func (c *ChipComboBox) commit(value string) tea.Cmd {
	if !c.chips.Add(value) {
		if c.chips.FlashIndex() >= 0 {
			return flashCmd()
		}
		return nil
	}
	c.state.Query = ""
	c.syncInput()
	c.state, _ = suggest.Transition(c.env(), c.state, suggest.ListChanged{})
	return chipsChanged(c.Field, c.chips.chips)
}

func (c *ChipComboBox) syncInput() {
	if c.input.Value() != c.state.Query {
		c.input.SetValue(c.state.Query)
		c.input.CursorEnd()
	}
}

// Init implements tea.Model.
func (c ChipComboBox) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (c ChipComboBox) Update(msg tea.Msg) (ChipComboBox, tea.Cmd) {
	switch msg := msg.(type) {
	case chipFlashClearMsg:
		c.chips.ClearFlash()
		return c, nil
	case tea.KeyMsg:
		if !c.focused {
			return c, nil
		}
		return c.handleKey(msg)
	}

	if !c.focused {
		return c, nil
	}
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

func (c ChipComboBox) handleKey(msg tea.KeyMsg) (ChipComboBox, tea.Cmd) {
	if c.chips.Highlighted() >= 0 {
		if handled, out := c.handleChipNav(msg); handled {
			return c, out
		}
	}

	if c.input.Value() == "" {
		switch msg.Type {
		case tea.KeyBackspace:
			out := c.removeLast()
			return c, out
		case tea.KeyLeft:
			if c.chips.HighlightLast() {
				c.state, _ = suggest.Transition(c.env(), c.state, suggest.Escape{})
			}
			return c, nil
		}
	}

	if c.chips.Full() {
		if msg.Type == tea.KeyEsc {
			out := c.apply(suggest.Escape{})
			return c, out
		}
		return c, nil
	}

	switch msg.Type {
	case tea.KeyDown:
		out := c.apply(suggest.ArrowDown{})
		return c, out
	case tea.KeyUp:
		out := c.apply(suggest.ArrowUp{})
		return c, out
	case tea.KeyEsc:
		out := c.apply(suggest.Escape{})
		return c, out
	case tea.KeyEnter:
		out := c.apply(suggest.Enter{})
		return c, out
	}

	before := c.input.Value()
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	if after := c.input.Value(); after != before {
		out := tea.Batch(cmd, c.apply(suggest.Input{Query: after}))
		return c, out
	}
	return c, cmd
}

// handleChipNav handles keys while a chip is highlighted. Keys it does not
// consume end highlighting and fall through to the input.
func (c *ChipComboBox) handleChipNav(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.Type {
	case tea.KeyLeft:
		c.chips.MoveHighlight(-1)
		return true, nil
	case tea.KeyRight:
		c.chips.MoveHighlight(1)
		return true, nil
	case tea.KeyBackspace, tea.KeyDelete:
		if _, ok := c.chips.RemoveHighlighted(); !ok {
			return true, nil
		}
		c.state, _ = suggest.Transition(c.env(), c.state, suggest.ListChanged{})
		return true, chipsChanged(c.Field, c.chips.chips)
	case tea.KeyEsc, tea.KeyDown:
		c.chips.ClearHighlight()
		return true, nil
	}
	c.chips.ClearHighlight()
	return false, nil
}

func (c *ChipComboBox) removeLast() tea.Cmd {
	if _, ok := c.chips.RemoveLast(); !ok {
		return nil
	}
	c.state, _ = suggest.Transition(c.env(), c.state, suggest.ListChanged{})
	return chipsChanged(c.Field, c.chips.chips)
}

// Focus moves focus into the field. The panel opens unless the field is full.
func (c *ChipComboBox) Focus() tea.Cmd {
	c.focused = true
	cmd := c.input.Focus()
	if c.chips.Full() {
		return cmd
	}
	return tea.Batch(cmd, c.apply(suggest.Focus{}))
}

// Blur moves focus out of the field and closes the panel.
func (c *ChipComboBox) Blur() tea.Cmd {
	if !c.focused {
		return nil
	}
	c.focused = false
	c.chips.ClearHighlight()
	c.input.Blur()
	return c.apply(suggest.Blur{})
}

// SelectRow adds the visible suggestion at row as a chip.
func (c *ChipComboBox) SelectRow(row int) tea.Cmd {
	list := c.Suggestions()
	if row < 0 || row >= len(list) {
		return nil
	}
	return c.apply(suggest.Select{Value: list[row]})
}

// DismissOutside closes the panel after a press outside the field.
func (c *ChipComboBox) DismissOutside() {
	c.apply(suggest.PointerDownOutside{})
}

// Teardown closes the field.
func (c *ChipComboBox) Teardown() {
	c.focused = false
	c.chips.ClearHighlight()
	c.input.Blur()
	c.apply(suggest.Teardown{})
}

// AddChip adds s unless it is empty, already present, or the field is full.
// A successful add closes the panel.
func (c *ChipComboBox) AddChip(s string) (bool, tea.Cmd) {
	before := c.chips.Len()
	cmd := c.commit(s)
	if c.chips.Len() == before {
		return false, cmd
	}
	c.state, _ = suggest.Transition(c.env(), c.state, suggest.Escape{})
	return true, cmd
}

// RemoveChipAt removes the chip drawn at (x, y) relative to the top left of
// the chip rows.
func (c *ChipComboBox) RemoveChipAt(x, y int) tea.Cmd {
	i := c.chips.ChipAt(x, y)
	if i < 0 {
		return nil
	}
	_, cmd := c.RemoveChip(c.chips.chips[i])
	return cmd
}

// RemoveChip removes s if present.
func (c *ChipComboBox) RemoveChip(s string) (bool, tea.Cmd) {
	if !c.chips.Remove(s) {
		return false, nil
	}
	c.state, _ = suggest.Transition(c.env(), c.state, suggest.ListChanged{})
	return true, chipsChanged(c.Field, c.chips.chips)
}

// SetValues replaces the chips without notifying.
func (c *ChipComboBox) SetValues(vs []string) {
	c.chips.Set(vs)
	c.state.Query = ""
	c.syncInput()
	c.state, _ = suggest.Transition(c.env(), c.state, suggest.ListChanged{})
}

// SelectAll adds catalog entries in order until the field is full.
func (c *ChipComboBox) SelectAll() tea.Cmd {
	changed := false
	for _, entry := range c.catalog {
		if c.chips.Full() {
			break
		}
		if c.chips.Add(entry) {
			changed = true
		}
	}
	c.chips.ClearFlash()
	if !changed {
		return nil
	}
	c.state, _ = suggest.Transition(c.env(), c.state, suggest.ListChanged{})
	if c.chips.Full() {
		c.state, _ = suggest.Transition(c.env(), c.state, suggest.Escape{})
	}
	return chipsChanged(c.Field, c.chips.chips)
}

// Clear removes every chip.
func (c *ChipComboBox) Clear() tea.Cmd {
	if c.chips.Len() == 0 {
		return nil
	}
	c.chips.Set(nil)
	c.state, _ = suggest.Transition(c.env(), c.state, suggest.ListChanged{})
	return chipsChanged(c.Field, nil)
}

// SetCatalog replaces the suggestion catalog.
func (c *ChipComboBox) SetCatalog(catalog []string) {
	c.catalog = catalog
	c.state, _ = suggest.Transition(c.env(), c.state, suggest.ListChanged{})
}

// Values returns the chips in insertion order.
func (c ChipComboBox) Values() []string {
	return c.chips.Values()
}

// MaxItems returns the chip cap.
func (c ChipComboBox) MaxItems() int {
	return c.chips.MaxItems
}

// Full reports whether the field holds MaxItems chips.
func (c ChipComboBox) Full() bool {
	return c.chips.Full()
}

// Query returns the live text.
func (c ChipComboBox) Query() string {
	return c.state.Query
}

// Focused reports whether the field has focus.
func (c ChipComboBox) Focused() bool {
	return c.focused
}

// IsOpen reports whether the suggestion panel is open.
func (c ChipComboBox) IsOpen() bool {
	return c.state.Open && !c.chips.Full()
}

// Highlight returns the highlighted row.
func (c ChipComboBox) Highlight() int {
	return c.state.Highlight
}

// Suggestions returns the suggestions for the current query, excluding chips.
func (c ChipComboBox) Suggestions() []string {
	return c.env().Suggestions(c.state.Query)
}

func (c ChipComboBox) panelRows() int {
	if !c.IsOpen() {
		return 0
	}
	return len(c.Suggestions())
}

func (c ChipComboBox) caption() string {
	if !c.chips.Full() {
		return ""
	}
	return styleCaption().Render(fmt.Sprintf("Maximum %d items reached", c.chips.MaxItems))
}

// View renders chips, the input box, the open panel and the cap caption.
func (c ChipComboBox) View() string {
	var parts []string
	if chips := c.chips.View(); chips != "" {
		parts = append(parts, chips)
	}

	in := c.input
	if c.chips.Len() > 0 {
		in.Placeholder = ""
	}
	parts = append(parts, renderInputBox(in.View(), c.Width, c.focused, false))

	if c.panelRows() > 0 {
		parts = append(parts, renderPanel(c.Suggestions(), c.state.Highlight, "", c.Width))
	}
	if caption := c.caption(); caption != "" {
		parts = append(parts, caption)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (c ChipComboBox) layout() Region {
	top := c.chips.Height()
	r := Region{
		Field: c.Field,
		Input: Rect{Y: top, W: c.Width, H: inputHeight},
	}
	if top > 0 {
		r.Chips = Rect{W: c.Width, H: top}
	}
	height := top + inputHeight
	if rows := c.panelRows(); rows > 0 {
		r.Panel = Rect{Y: height, W: c.Width, H: rows + 2}
		r.PanelRows = rows
		height += r.Panel.H
	}
	if c.chips.Full() {
		height++
	}
	r.Bounds = Rect{W: c.Width, H: height}
	return r
}
