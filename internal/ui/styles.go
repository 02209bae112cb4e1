package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"jobmatch/internal/ui/theme"
)

// Glyphs used across the form.
const (
	glyphHighlight = "▸ "
	glyphCommitted = "✓ "
	glyphBlank     = "  "
	glyphClose     = "×"
)

func styleAppHeader() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Background).
		Background(theme.Current().Primary).
		Bold(true).
		Padding(0, 1)
}

func styleLabel() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Secondary).
		Bold(true)
}

func styleLabelFocused() lipgloss.Style {
	return styleLabel().Foreground(theme.Current().Primary)
}

func styleOptional() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().TextMuted).
		Italic(true)
}

func styleFieldInput() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current().BorderNormal).
		Padding(0, 1)
}

func styleFieldInputFocused() lipgloss.Style {
	return styleFieldInput().BorderForeground(theme.Current().BorderFocused)
}

func styleFieldInputInvalid() lipgloss.Style {
	return styleFieldInput().BorderForeground(theme.Current().Error)
}

func styleSuggestionPanel() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current().BorderDim)
}

func styleSuggestion() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Text)
}

func styleSuggestionHighlight() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Accent).
		Background(theme.Current().BackgroundSecondary).
		Bold(true)
}

func styleCommittedMark() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Success)
}

func styleCaption() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Warning)
}

func styleValidation() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Error)
}

func styleHelp() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().TextMuted)
}

func styleBanner() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current().Error).
		Foreground(theme.Current().Error).
		Padding(0, 1)
}

func styleToast() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Success).
		Bold(true)
}

func styleScore(score int) lipgloss.Style {
	t := theme.Current()
	color := t.Error
	switch {
	case score >= 80:
		color = t.Success
	case score >= 60:
		color = t.Info
	case score >= 40:
		color = t.Warning
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true)
}

func buildMarkdownRenderer(format string, width int) func(string) string {
	fallback := func(input string) string {
		return wordwrap.String(input, width)
	}

	style := strings.ToLower(strings.TrimSpace(format))
	if style == "" || style == "rich" || style == "dark" {
		style = "dark"
	}
	if style == "plain" {
		return fallback
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fallback
	}
	return func(input string) string {
		out, err := renderer.Render(input)
		if err != nil {
			return fallback(input)
		}
		return strings.TrimSpace(out)
	}
}
