package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"jobmatch/internal/suggest"
)

// DefaultBlurGrace is the delay between focus leaving a field and its
// freeform text being committed.
const DefaultBlurGrace = 150 * time.Millisecond

// inputHeight is the height of a bordered single-line input.
const inputHeight = 3

// ComboBox is a single-value autocomplete field. The text the user types is
// the query; the value changes only when a suggestion is selected, Enter is
// pressed, or focus leaves with freeform text pending.
type ComboBox struct {
	Field       FieldID
	Placeholder string
	Width       int
	// Freeform permits committing text that matches no suggestion.
	Freeform  bool
	BlurGrace time.Duration
	Invalid   bool

	catalog []string
	input   textinput.Model
	state   suggest.State
	value   string
	focused bool
	// pending is set while a blur commit tick is outstanding.
	pending bool
}

// NewComboBox creates a ComboBox offering catalog.
func NewComboBox(field FieldID, catalog []string) ComboBox {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 100

	c := ComboBox{
		Field:     field,
		Width:     40,
		Freeform:  true,
		BlurGrace: DefaultBlurGrace,
		catalog:   catalog,
		input:     ti,
	}
	c.input.Width = c.Width - 4
	return c
}

// WithPlaceholder sets the placeholder text.
func (c ComboBox) WithPlaceholder(s string) ComboBox {
	c.Placeholder = s
	c.input.Placeholder = s
	return c
}

// WithWidth sets the display width including the border.
func (c ComboBox) WithWidth(w int) ComboBox {
	c.Width = w
	c.input.Width = w - 4
	return c
}

// WithFreeform toggles freeform commits.
func (c ComboBox) WithFreeform(allow bool) ComboBox {
	c.Freeform = allow
	return c
}

// WithBlurGrace sets the blur commit delay.
func (c ComboBox) WithBlurGrace(d time.Duration) ComboBox {
	if d > 0 {
		c.BlurGrace = d
	}
	return c
}

func (c ComboBox) env() suggest.Env {
	return suggest.Env{
		Catalog:      c.catalog,
		Freeform:     c.Freeform,
		CommitOnBlur: true,
	}
}

// apply runs one transition and turns its outcome into commands.
func (c *ComboBox) apply(ev suggest.Event) tea.Cmd {
	var out suggest.Outcome
	c.state, out = suggest.Transition(c.env(), c.state, ev)
	c.syncInput()

	var cmds []tea.Cmd
	if out.Committed {
		c.value = out.Value
		cmds = append(cmds, fieldCommitted(c.Field, out.Value, out.Source))
	}
	if out.ScheduleBlur {
		c.pending = true
		cmds = append(cmds, scheduleBlurCommit(c.Field, out.Token, c.BlurGrace))
	}
	return tea.Batch(cmds...)
}

func (c *ComboBox) syncInput() {
	if c.input.Value() != c.state.Query {
		c.input.SetValue(c.state.Query)
		c.input.CursorEnd()
	}
}

// Init implements tea.Model.
func (c ComboBox) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (c ComboBox) Update(msg tea.Msg) (ComboBox, tea.Cmd) {
	switch msg := msg.(type) {
	case blurCommitMsg:
		if msg.Field != c.Field {
			return c, nil
		}
		c.pending = false
		out := c.apply(suggest.BlurTimeout{Token: msg.Token})
		return c, out
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

func (c ComboBox) handleKey(msg tea.KeyMsg) (ComboBox, tea.Cmd) {
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

// Focus moves focus into the field and opens its panel.
func (c *ComboBox) Focus() tea.Cmd {
	c.focused = true
	c.pending = false
	cmd := c.input.Focus()
	return tea.Batch(cmd, c.apply(suggest.Focus{}))
}

// Blur moves focus out of the field. Pending freeform text is committed
// after BlurGrace unless something commits first.
func (c *ComboBox) Blur() tea.Cmd {
	if !c.focused {
		return nil
	}
	c.focused = false
	c.input.Blur()
	return c.apply(suggest.Blur{})
}

// Select commits value as if its suggestion row had been clicked.
func (c *ComboBox) Select(value string) tea.Cmd {
	return c.apply(suggest.Select{Value: value})
}

// SelectRow commits the visible suggestion at row.
func (c *ComboBox) SelectRow(row int) tea.Cmd {
	list := c.Suggestions()
	if row < 0 || row >= len(list) {
		return nil
	}
	return c.Select(list[row])
}

// DismissOutside closes the panel after a press outside the field.
func (c *ComboBox) DismissOutside() {
	c.apply(suggest.PointerDownOutside{})
}

// Teardown closes the field and drops any pending blur commit.
func (c *ComboBox) Teardown() {
	c.focused = false
	c.pending = false
	c.input.Blur()
	c.apply(suggest.Teardown{})
}

// Flush commits pending freeform text immediately, as the blur timer would.
// Used right before the form reads values for submission.
func (c *ComboBox) Flush() tea.Cmd {
	if c.focused {
		c.focused = false
		c.input.Blur()
		var out suggest.Outcome
		c.state, out = suggest.Transition(c.env(), c.state, suggest.Blur{})
		c.pending = out.ScheduleBlur
	}
	if !c.pending {
		return nil
	}
	c.pending = false
	return c.apply(suggest.BlurTimeout{Token: c.state.Token()})
}

// SetValue replaces the committed value and query without notifying.
func (c *ComboBox) SetValue(v string) {
	c.pending = false
	c.state, _ = suggest.Transition(c.env(), c.state, suggest.Teardown{})
	c.state.Query = v
	c.value = v
	c.syncInput()
}

// SetCatalog replaces the suggestion catalog.
func (c *ComboBox) SetCatalog(catalog []string) {
	c.catalog = catalog
	c.apply(suggest.ListChanged{})
}

// Value returns the committed value.
func (c ComboBox) Value() string {
	return c.value
}

// Query returns the live text.
func (c ComboBox) Query() string {
	return c.state.Query
}

// Focused reports whether the field has focus.
func (c ComboBox) Focused() bool {
	return c.focused
}

// IsOpen reports whether the suggestion panel is open.
func (c ComboBox) IsOpen() bool {
	return c.state.Open
}

// Highlight returns the highlighted row.
func (c ComboBox) Highlight() int {
	return c.state.Highlight
}

// Suggestions returns the suggestions for the current query.
func (c ComboBox) Suggestions() []string {
	return c.env().Suggestions(c.state.Query)
}

// panelRows returns the number of visible suggestion rows.
func (c ComboBox) panelRows() int {
	if !c.state.Open {
		return 0
	}
	return len(c.Suggestions())
}

// View renders the input box and, when open, the suggestion panel.
func (c ComboBox) View() string {
	box := renderInputBox(c.input.View(), c.Width, c.focused, c.Invalid)
	if c.panelRows() == 0 {
		return box
	}
	panel := renderPanel(c.Suggestions(), c.state.Highlight, c.value, c.Width)
	return lipgloss.JoinVertical(lipgloss.Left, box, panel)
}

// layout returns the field's regions relative to its own top-left corner.
func (c ComboBox) layout() Region {
	r := Region{
		Field: c.Field,
		Input: Rect{W: c.Width, H: inputHeight},
	}
	if rows := c.panelRows(); rows > 0 {
		r.Panel = Rect{Y: inputHeight, W: c.Width, H: rows + 2}
		r.PanelRows = rows
	}
	r.Bounds = Rect{W: c.Width, H: inputHeight + r.Panel.H}
	return r
}

func renderInputBox(content string, width int, focused, invalid bool) string {
	style := styleFieldInput()
	switch {
	case invalid:
		style = styleFieldInputInvalid()
	case focused:
		style = styleFieldInputFocused()
	}
	return style.Width(width - 2).Render(content)
}

// renderPanel draws the suggestion list. The row equal to committed carries a
// check mark.
func renderPanel(list []string, highlight int, committed string, width int) string {
	inner := width - 2
	textWidth := inner - lipgloss.Width(glyphHighlight) - lipgloss.Width(glyphCommitted)
	if textWidth < 1 {
		textWidth = 1
	}

	rows := make([]string, len(list))
	for i, opt := range list {
		text := ansi.Truncate(opt, textWidth, "…")
		text += strings.Repeat(" ", textWidth-lipgloss.Width(text))

		mark := glyphBlank
		if committed != "" && opt == committed {
			mark = styleCommittedMark().Render(glyphCommitted)
		}

		if i == highlight {
			rows[i] = styleSuggestionHighlight().Render(glyphHighlight+text) + mark
			continue
		}
		rows[i] = styleSuggestion().Render(glyphBlank+text) + mark
	}
	return styleSuggestionPanel().Width(inner).Render(strings.Join(rows, "\n"))
}
