package ui

import (
	"errors"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"jobmatch/internal/debug"
	apperrors "jobmatch/internal/errors"
	"jobmatch/internal/jobs"
)

const (
	defaultFormWidth = 80
	minFormWidth     = 44
	colGap           = 2
	maxYears         = 50
	defaultMaxSkills = 15
)

// fieldOrder is the Tab order of the form.
var fieldOrder = []FieldID{
	FieldRole,
	FieldCompany,
	FieldYears,
	FieldSalary,
	FieldSkills,
	FieldLocation,
	FieldTargets,
}

// formRows groups fields into visual rows.
var formRows = [][]FieldID{
	{FieldRole, FieldCompany},
	{FieldYears, FieldSalary},
	{FieldSkills},
	{FieldLocation},
	{FieldTargets},
}

var fieldLabels = map[FieldID]string{
	FieldRole:     "Current role",
	FieldCompany:  "Current company",
	FieldYears:    "Years of experience",
	FieldSalary:   "Expected salary (USD)",
	FieldSkills:   "Skills",
	FieldLocation: "Preferred location",
	FieldTargets:  "Target companies",
}

var requiredFields = map[FieldID]bool{
	FieldRole:    true,
	FieldCompany: true,
	FieldYears:   true,
}

// ValidationErrors maps fields to their validation message.
type ValidationErrors map[FieldID]string

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, f := range fieldOrder {
		if msg, ok := v[f]; ok {
			msgs = append(msgs, msg)
		}
	}
	return strings.Join(msgs, "; ")
}

// FormOptions configures a ProfileForm.
type FormOptions struct {
	Skills    []string
	Locations []string
	Companies []string
	// Targets is the union of the searchable job-board catalogs.
	Targets   []string
	MaxSkills int
	BlurGrace time.Duration
	Width     int
}

// ProfileForm collects the profile submitted for analysis.
type ProfileForm struct {
	keys  KeyMap
	width int

	role   textinput.Model
	years  textinput.Model
	salary textinput.Model

	company  ComboBox
	location ComboBox
	skills   ChipComboBox
	targets  ChipComboBox

	focus  int
	errors ValidationErrors
}

// NewProfileForm creates a form with focus on the first field.
func NewProfileForm(opts FormOptions) ProfileForm {
	if opts.MaxSkills <= 0 {
		opts.MaxSkills = defaultMaxSkills
	}
	if opts.BlurGrace <= 0 {
		opts.BlurGrace = DefaultBlurGrace
	}

	f := ProfileForm{
		keys:   DefaultKeyMap(),
		role:   newPlainInput("e.g. Senior Frontend Engineer", 100),
		years:  newPlainInput("e.g. 5", 2),
		salary: newPlainInput("e.g. 150000", 9),
		company: NewComboBox(FieldCompany, opts.Companies).
			WithPlaceholder("e.g. Google").
			WithBlurGrace(opts.BlurGrace),
		location: NewComboBox(FieldLocation, opts.Locations).
			WithPlaceholder("e.g. Remote, San Francisco").
			WithBlurGrace(opts.BlurGrace),
		skills: NewChipComboBox(FieldSkills, opts.Skills, opts.MaxSkills).
			WithPlaceholder("Type a skill and press Enter"),
		targets: NewChipComboBox(FieldTargets, opts.Targets, len(opts.Targets)).
			WithPlaceholder("Leave empty to search every company"),
		errors: ValidationErrors{},
	}
	f.SetWidth(opts.Width)
	f.role.Focus()
	return f
}

func newPlainInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	return ti
}

// SetWidth resizes the form.
func (f *ProfileForm) SetWidth(width int) {
	if width <= 0 {
		width = defaultFormWidth
	}
	if width < minFormWidth {
		width = minFormWidth
	}
	f.width = width
	col := f.columnWidth()
	f.role.Width = col - 4
	f.years.Width = col - 4
	f.salary.Width = col - 4
	f.company = f.company.WithWidth(col)
	f.location = f.location.WithWidth(width)
	f.skills = f.skills.WithWidth(width)
	f.targets = f.targets.WithWidth(width)
}

func (f ProfileForm) columnWidth() int {
	return (f.width - colGap) / 2
}

// SetTargets replaces the target-company catalog. The chip cap follows the
// catalog size.
func (f *ProfileForm) SetTargets(targets []string) {
	f.targets.SetCatalog(targets)
	f.targets = f.targets.WithMaxItems(len(targets))
}

// FocusedField returns the field holding focus.
func (f ProfileForm) FocusedField() FieldID {
	return fieldOrder[f.focus]
}

// PanelOpen reports whether any suggestion panel is open.
func (f ProfileForm) PanelOpen() bool {
	return f.company.IsOpen() || f.location.IsOpen() || f.skills.IsOpen() || f.targets.IsOpen()
}

// Errors returns the current validation messages.
func (f ProfileForm) Errors() ValidationErrors {
	return f.errors
}

// Update implements tea.Model.
func (f ProfileForm) Update(msg tea.Msg) (ProfileForm, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case blurCommitMsg:
		switch msg.Field {
		case FieldCompany:
			f.company, cmd = f.company.Update(msg)
		case FieldLocation:
			f.location, cmd = f.location.Update(msg)
		}
		return f, cmd

	case chipFlashClearMsg:
		f.skills, _ = f.skills.Update(msg)
		f.targets, _ = f.targets.Update(msg)
		return f, nil

	case FieldCommittedMsg:
		debug.Log("field committed", "field", msg.Field, "value", msg.Value, "source", msg.Source)
		f.clearError(msg.Field)
		return f, nil

	case ChipsChangedMsg:
		debug.Log("chips changed", "field", msg.Field, "count", len(msg.Values))
		return f, nil

	case tea.MouseMsg:
		return f.handleMouse(msg)

	case tea.KeyMsg:
		return f.handleKey(msg)
	}

	return f.routeToFocused(msg)
}

func (f ProfileForm) handleKey(msg tea.KeyMsg) (ProfileForm, tea.Cmd) {
	switch {
	case key.Matches(msg, f.keys.NextField):
		out := f.setFocus((f.focus + 1) % len(fieldOrder))
		return f, out
	case key.Matches(msg, f.keys.PrevField):
		out := f.setFocus((f.focus + len(fieldOrder) - 1) % len(fieldOrder))
		return f, out
	case key.Matches(msg, f.keys.Submit):
		out := f.Submit()
		return f, out
	case key.Matches(msg, f.keys.SelectAll):
		out := f.targets.SelectAll()
		return f, out
	case key.Matches(msg, f.keys.ClearAll):
		out := f.targets.Clear()
		return f, out
	}

	switch f.FocusedField() {
	case FieldRole, FieldYears, FieldSalary:
		if msg.Type == tea.KeyEnter {
			out := f.Submit()
			return f, out
		}
	}
	return f.routeToFocused(msg)
}

func (f ProfileForm) routeToFocused(msg tea.Msg) (ProfileForm, tea.Cmd) {
	var cmd tea.Cmd
	switch field := f.FocusedField(); field {
	case FieldRole:
		f.role, cmd = f.updatePlain(field, f.role, msg)
	case FieldYears:
		f.years, cmd = f.updatePlain(field, f.years, msg)
	case FieldSalary:
		f.salary, cmd = f.updatePlain(field, f.salary, msg)
	case FieldCompany:
		f.company, cmd = f.company.Update(msg)
	case FieldLocation:
		f.location, cmd = f.location.Update(msg)
	case FieldSkills:
		f.skills, cmd = f.skills.Update(msg)
	case FieldTargets:
		f.targets, cmd = f.targets.Update(msg)
	}
	return f, cmd
}

// updatePlain feeds msg to a plain input. Numeric fields drop non-digit runes.
func (f *ProfileForm) updatePlain(field FieldID, ti textinput.Model, msg tea.Msg) (textinput.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.Type == tea.KeyRunes && field != FieldRole {
		for _, r := range km.Runes {
			if !unicode.IsDigit(r) {
				return ti, nil
			}
		}
	}
	before := ti.Value()
	var cmd tea.Cmd
	ti, cmd = ti.Update(msg)
	if ti.Value() != before {
		f.clearError(field)
	}
	return ti, cmd
}

func (f *ProfileForm) clearError(field FieldID) {
	delete(f.errors, field)
}

// setFocus moves focus to fieldOrder[i], blurring the previous field.
func (f *ProfileForm) setFocus(i int) tea.Cmd {
	if i == f.focus {
		return nil
	}
	blur := f.blurField(f.FocusedField())
	f.focus = i
	return tea.Batch(blur, f.focusField(f.FocusedField()))
}

func (f *ProfileForm) blurField(field FieldID) tea.Cmd {
	switch field {
	case FieldRole:
		f.role.Blur()
	case FieldYears:
		f.years.Blur()
	case FieldSalary:
		f.salary.Blur()
	case FieldCompany:
		return f.company.Blur()
	case FieldLocation:
		return f.location.Blur()
	case FieldSkills:
		return f.skills.Blur()
	case FieldTargets:
		return f.targets.Blur()
	}
	return nil
}

func (f *ProfileForm) focusField(field FieldID) tea.Cmd {
	switch field {
	case FieldRole:
		return f.role.Focus()
	case FieldYears:
		return f.years.Focus()
	case FieldSalary:
		return f.salary.Focus()
	case FieldCompany:
		return f.company.Focus()
	case FieldLocation:
		return f.location.Focus()
	case FieldSkills:
		return f.skills.Focus()
	case FieldTargets:
		return f.targets.Focus()
	}
	return nil
}

// Focus gives focus back to the current field, e.g. when the form is shown
// again.
func (f *ProfileForm) Focus() tea.Cmd {
	return f.focusField(f.FocusedField())
}

// Teardown closes every field and drops pending blur commits.
func (f *ProfileForm) Teardown() {
	f.role.Blur()
	f.years.Blur()
	f.salary.Blur()
	f.company.Teardown()
	f.location.Teardown()
	f.skills.Teardown()
	f.targets.Teardown()
}

// Submit commits pending text, validates, and on success emits
// SubmitRequestedMsg. On failure focus moves to the first invalid field.
func (f *ProfileForm) Submit() tea.Cmd {
	cmds := []tea.Cmd{f.company.Flush(), f.location.Flush()}

	if err := f.Validate(); err != nil {
		var verrs ValidationErrors
		if errors.As(err, &verrs) {
			f.errors = verrs
		}
		debug.Log("profile invalid", "code", apperrors.CodeOf(err), "fields", len(f.errors))
		for i, field := range fieldOrder {
			if _, bad := f.errors[field]; bad {
				if i == f.focus {
					cmds = append(cmds, f.focusField(field))
				} else {
					cmds = append(cmds, f.setFocus(i))
				}
				break
			}
		}
		return tea.Batch(cmds...)
	}

	f.errors = ValidationErrors{}
	profile := f.Profile()
	cmds = append(cmds, func() tea.Msg {
		return SubmitRequestedMsg{Profile: profile}
	})
	return tea.Batch(cmds...)
}

// Validate checks the required fields and numeric ranges.
func (f ProfileForm) Validate() error {
	errs := ValidationErrors{}
	if strings.TrimSpace(f.role.Value()) == "" {
		errs[FieldRole] = "Role is required"
	}
	if strings.TrimSpace(f.company.Value()) == "" {
		errs[FieldCompany] = "Company is required"
	}

	years := strings.TrimSpace(f.years.Value())
	if years == "" {
		errs[FieldYears] = "Experience is required"
	} else if n, err := strconv.Atoi(years); err != nil {
		errs[FieldYears] = "Experience must be a whole number"
	} else if n < 0 || n > maxYears {
		errs[FieldYears] = "Experience must be between 0 and 50"
	}

	if salary := strings.TrimSpace(f.salary.Value()); salary != "" {
		if _, err := strconv.Atoi(salary); err != nil {
			errs[FieldSalary] = "Salary must be a whole number"
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return apperrors.New(apperrors.CodeValidation, "Please fill in the required fields.", errs)
}

// Profile builds the submission record. Empty optional fields are left nil.
func (f ProfileForm) Profile() jobs.Profile {
	years, _ := strconv.Atoi(strings.TrimSpace(f.years.Value()))
	p := jobs.Profile{
		Role:              strings.TrimSpace(f.role.Value()),
		Company:           strings.TrimSpace(f.company.Value()),
		YearsOfExperience: years,
	}
	if skills := f.skills.Values(); len(skills) > 0 {
		p.Skills = skills
	}
	if salary, err := strconv.Atoi(strings.TrimSpace(f.salary.Value())); err == nil {
		p.ExpectedSalary = &salary
	}
	if loc := strings.TrimSpace(f.location.Value()); loc != "" {
		p.Location = &loc
	}
	if targets := f.targets.Values(); len(targets) > 0 {
		p.TargetCompanies = targets
	}
	return p
}

func (f ProfileForm) handleMouse(msg tea.MouseMsg) (ProfileForm, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return f, nil
	}
	lay := f.layout()
	press := NewDismissal(lay.regions).Resolve(msg.X, msg.Y)

	for _, field := range press.Dismiss {
		f.dismiss(field)
	}

	if lay.submit.Contains(msg.X, msg.Y) {
		out := f.Submit()
		return f, out
	}
	if press.Target == "" {
		return f, nil
	}

	var cmds []tea.Cmd
	if idx := indexOfField(press.Target); idx != f.focus {
		cmds = append(cmds, f.setFocus(idx))
	}
	if press.PanelRow >= 0 {
		cmds = append(cmds, f.selectRow(press.Target, press.PanelRow))
	}
	if region, ok := NewDismissal(lay.regions).Region(press.Target); ok && region.Chips.Contains(msg.X, msg.Y) {
		cmds = append(cmds, f.removeChipAt(press.Target, msg.X-region.Chips.X, msg.Y-region.Chips.Y))
	}
	return f, tea.Batch(cmds...)
}

func (f *ProfileForm) removeChipAt(field FieldID, x, y int) tea.Cmd {
	switch field {
	case FieldSkills:
		return f.skills.RemoveChipAt(x, y)
	case FieldTargets:
		return f.targets.RemoveChipAt(x, y)
	}
	return nil
}

func (f *ProfileForm) dismiss(field FieldID) {
	switch field {
	case FieldCompany:
		f.company.DismissOutside()
	case FieldLocation:
		f.location.DismissOutside()
	case FieldSkills:
		f.skills.DismissOutside()
	case FieldTargets:
		f.targets.DismissOutside()
	}
}

func (f *ProfileForm) selectRow(field FieldID, row int) tea.Cmd {
	switch field {
	case FieldCompany:
		return f.company.SelectRow(row)
	case FieldLocation:
		return f.location.SelectRow(row)
	case FieldSkills:
		return f.skills.SelectRow(row)
	case FieldTargets:
		return f.targets.SelectRow(row)
	}
	return nil
}

func indexOfField(field FieldID) int {
	for i, f := range fieldOrder {
		if f == field {
			return i
		}
	}
	return 0
}

// formLayout is the rendered form plus the screen regions used for mouse
// hit-testing, both relative to the form's top-left corner.
type formLayout struct {
	view    string
	regions []Region
	submit  Rect
}

func (f ProfileForm) layout() formLayout {
	var (
		lay  formLayout
		rows []string
		y    int
	)
	for _, row := range formRows {
		width := f.width
		if len(row) > 1 {
			width = f.columnWidth()
		}
		var cells []string
		x, height := 0, 0
		for i, field := range row {
			if i > 0 {
				cells = append(cells, strings.Repeat(" ", colGap))
				x += colGap
			}
			view, region := f.block(field, width)
			cells = append(cells, view)
			lay.regions = append(lay.regions, offsetRegion(region, x, y))
			x += width
			if h := lipgloss.Height(view); h > height {
				height = h
			}
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		y += height + 1
	}

	button := styleAppHeader().Render("Find matching jobs")
	lay.submit = Rect{Y: y, W: lipgloss.Width(button), H: 1}
	rows = append(rows, button)
	rows = append(rows, "", helpLine(f.keys.NextField, f.keys.Submit, f.keys.SelectAll, f.keys.ClearAll))

	lay.view = strings.Join(rows, "\n\n")
	return lay
}

// block renders one field with its label and validation message.
func (f ProfileForm) block(field FieldID, width int) (string, Region) {
	_, invalid := f.errors[field]
	focused := f.FocusedField() == field

	var (
		widget string
		region Region
	)
	switch field {
	case FieldRole:
		widget, region = plainBlock(field, f.role, width, focused, invalid)
	case FieldYears:
		widget, region = plainBlock(field, f.years, width, focused, invalid)
	case FieldSalary:
		widget, region = plainBlock(field, f.salary, width, focused, invalid)
	case FieldCompany:
		c := f.company
		c.Invalid = invalid
		widget, region = c.View(), c.layout()
	case FieldLocation:
		widget, region = f.location.View(), f.location.layout()
	case FieldSkills:
		widget, region = f.skills.View(), f.skills.layout()
	case FieldTargets:
		widget, region = f.targets.View(), f.targets.layout()
	}

	lines := []string{f.labelView(field, focused), widget}
	if msg := f.errors[field]; msg != "" {
		lines = append(lines, styleValidation().Render(wordwrap.String(msg, width)))
	}
	view := lipgloss.NewStyle().Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))

	region = offsetRegion(region, 0, 1)
	region.Bounds = Rect{W: width, H: region.Bounds.H + 1}
	return view, region
}

func (f ProfileForm) labelView(field FieldID, focused bool) string {
	style := styleLabel()
	if focused {
		style = styleLabelFocused()
	}
	label := style.Render(fieldLabels[field])
	if requiredFields[field] {
		label += styleValidation().Render(" *")
	}
	if field == FieldTargets {
		label += styleOptional().Render(" (Ctrl+A all, Ctrl+X none)")
	}
	return label
}

func plainBlock(field FieldID, ti textinput.Model, width int, focused, invalid bool) (string, Region) {
	r := Rect{W: width, H: inputHeight}
	return renderInputBox(ti.View(), width, focused, invalid), Region{Field: field, Bounds: r, Input: r}
}

func offsetRegion(r Region, dx, dy int) Region {
	r.Bounds = r.Bounds.Offset(dx, dy)
	r.Input = r.Input.Offset(dx, dy)
	if !r.Chips.Empty() {
		r.Chips = r.Chips.Offset(dx, dy)
	}
	if !r.Panel.Empty() {
		r.Panel = r.Panel.Offset(dx, dy)
	}
	return r
}

// View renders the form.
func (f ProfileForm) View() string {
	return f.layout().view
}
