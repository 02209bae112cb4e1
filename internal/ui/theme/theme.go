// Package theme provides the semantic color palettes for the jobmatch UI.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme is a set of semantic colors. Every color adapts to light and dark
// terminals.
type Theme struct {
	Primary   lipgloss.AdaptiveColor // focused borders, header background
	Secondary lipgloss.AdaptiveColor // field labels
	Accent    lipgloss.AdaptiveColor // highlighted suggestion marker

	Error   lipgloss.AdaptiveColor // validation messages, error banner
	Warning lipgloss.AdaptiveColor // cardinality caption
	Success lipgloss.AdaptiveColor // committed check mark
	Info    lipgloss.AdaptiveColor // hints

	Text           lipgloss.AdaptiveColor
	TextMuted      lipgloss.AdaptiveColor // placeholders, help line
	TextEmphasized lipgloss.AdaptiveColor

	Background          lipgloss.AdaptiveColor
	BackgroundSecondary lipgloss.AdaptiveColor // highlighted suggestion row
	BackgroundDarker    lipgloss.AdaptiveColor // chips

	BorderNormal  lipgloss.AdaptiveColor
	BorderFocused lipgloss.AdaptiveColor
	BorderDim     lipgloss.AdaptiveColor // suggestion panel
}

func c(dark, light string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Dark: dark, Light: light}
}

// TokyoNight is the default palette.
var TokyoNight = Theme{
	Primary:             c("#82aaff", "#2e7de9"),
	Secondary:           c("#c099ff", "#9854f1"),
	Accent:              c("#ff966c", "#b15c00"),
	Error:               c("#ff757f", "#f52a65"),
	Warning:             c("#ff966c", "#b15c00"),
	Success:             c("#c3e88d", "#587539"),
	Info:                c("#7dcfff", "#0db9d7"),
	Text:                c("#c8d3f5", "#3760bf"),
	TextMuted:           c("#636da6", "#848cb5"),
	TextEmphasized:      c("#ffc777", "#8c6c3e"),
	Background:          c("#222436", "#e1e2e7"),
	BackgroundSecondary: c("#2f334d", "#c8c9ce"),
	BackgroundDarker:    c("#1e2030", "#d5d6db"),
	BorderNormal:        c("#3b4261", "#a8aecb"),
	BorderFocused:       c("#82aaff", "#2e7de9"),
	BorderDim:           c("#292e42", "#c8c9ce"),
}

// Catppuccin is the Mocha/Latte palette.
var Catppuccin = Theme{
	Primary:             c("#89b4fa", "#1e66f5"),
	Secondary:           c("#cba6f7", "#8839ef"),
	Accent:              c("#fab387", "#fe640b"),
	Error:               c("#f38ba8", "#d20f39"),
	Warning:             c("#fab387", "#fe640b"),
	Success:             c("#a6e3a1", "#40a02b"),
	Info:                c("#89b4fa", "#1e66f5"),
	Text:                c("#cdd6f4", "#4c4f69"),
	TextMuted:           c("#6c7086", "#9ca0b0"),
	TextEmphasized:      c("#f5e0dc", "#dc8a78"),
	Background:          c("#1e1e2e", "#eff1f5"),
	BackgroundSecondary: c("#313244", "#e6e9ef"),
	BackgroundDarker:    c("#181825", "#dce0e8"),
	BorderNormal:        c("#6c7086", "#9ca0b0"),
	BorderFocused:       c("#89b4fa", "#1e66f5"),
	BorderDim:           c("#45475a", "#ccd0da"),
}

// Gruvbox is the retro groove palette.
var Gruvbox = Theme{
	Primary:             c("#83a598", "#076678"),
	Secondary:           c("#d3869b", "#8f3f71"),
	Accent:              c("#fabd2f", "#b57614"),
	Error:               c("#fb4934", "#9d0006"),
	Warning:             c("#fe8019", "#af3a03"),
	Success:             c("#b8bb26", "#79740e"),
	Info:                c("#83a598", "#076678"),
	Text:                c("#ebdbb2", "#3c3836"),
	TextMuted:           c("#a89984", "#7c6f64"),
	TextEmphasized:      c("#fabd2f", "#b57614"),
	Background:          c("#282828", "#fbf1c7"),
	BackgroundSecondary: c("#504945", "#ebdbb2"),
	BackgroundDarker:    c("#1d2021", "#d5c4a1"),
	BorderNormal:        c("#504945", "#bdae93"),
	BorderFocused:       c("#83a598", "#076678"),
	BorderDim:           c("#3c3836", "#d5c4a1"),
}
