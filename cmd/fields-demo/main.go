// Demo program to visually test the suggestion fields
package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"jobmatch/internal/catalog"
	"jobmatch/internal/ui"
)

type model struct {
	location ui.ComboBox
	skills   ui.ChipComboBox
	onSkills bool
	log      []string
	width    int
}

func initialModel(lists catalog.WordLists) model {
	loc := ui.NewComboBox(ui.FieldLocation, lists.Locations).
		WithWidth(50).
		WithPlaceholder("Type a city or pick one...")
	loc.Focus()

	sk := ui.NewChipComboBox(ui.FieldSkills, lists.Skills, 5).
		WithWidth(50).
		WithPlaceholder("Type a skill and press Enter")

	return model{
		location: loc,
		skills:   sk,
		width:    50,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "tab", "shift+tab":
			m.onSkills = !m.onSkills
			if m.onSkills {
				cmds = append(cmds, m.location.Blur(), m.skills.Focus())
			} else {
				cmds = append(cmds, m.skills.Blur(), m.location.Focus())
			}
			m.addLog("Focus: " + m.focusName())
			return m, tea.Batch(cmds...)
		case "ctrl+up":
			m.width += 10
			m.resize()
			return m, nil
		case "ctrl+down":
			if m.width > 30 {
				m.width -= 10
				m.resize()
			}
			return m, nil
		}

	case ui.FieldCommittedMsg:
		m.addLog(fmt.Sprintf("Committed %s = %q via %s", msg.Field, msg.Value, msg.Source))
		return m, nil

	case ui.ChipsChangedMsg:
		m.addLog(fmt.Sprintf("Chips %s: [%s]", msg.Field, strings.Join(msg.Values, ", ")))
		return m, nil
	}

	// Both fields see every message; each ignores keys while unfocused and
	// blur commits meant for other fields.
	var cmd tea.Cmd
	m.location, cmd = m.location.Update(msg)
	cmds = append(cmds, cmd)
	m.skills, cmd = m.skills.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *model) resize() {
	m.location = m.location.WithWidth(m.width)
	m.skills = m.skills.WithWidth(m.width)
	m.addLog(fmt.Sprintf("Width: %d", m.width))
}

func (m model) focusName() string {
	if m.onSkills {
		return "skills"
	}
	return "location"
}

func (m *model) addLog(entry string) {
	m.log = append(m.log, entry)
	if len(m.log) > 8 {
		m.log = m.log[1:]
	}
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	logStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			MarginTop(1)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))
)

func (m model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Suggestion Fields Demo"))
	s.WriteString("\n\n")

	s.WriteString(labelStyle.Render("LOCATION"))
	s.WriteString("\n")
	s.WriteString(m.location.View())
	s.WriteString("\n")
	if v := m.location.Value(); v != "" {
		s.WriteString(valueStyle.Render("Value: " + v))
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(labelStyle.Render("SKILLS"))
	s.WriteString("\n")
	s.WriteString(m.skills.View())
	s.WriteString("\n")

	s.WriteString(helpStyle.Render("Tab switch field • ↑/↓ highlight • Enter commit • ← chips, Del remove • ctrl+↑/↓ width • ctrl+c quit"))
	s.WriteString("\n")

	if len(m.log) > 0 {
		s.WriteString(logStyle.Render("Event log:\n" + strings.Join(m.log, "\n")))
		s.WriteString("\n")
	}

	return s.String()
}

func main() {
	lists, err := catalog.Defaults()
	if err != nil {
		fmt.Printf("Error loading word lists: %v\n", err)
		os.Exit(1)
	}
	p := tea.NewProgram(initialModel(lists))
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
