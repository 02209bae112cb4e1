package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/go-cmp/cmp"
)

func restoreTheme(t *testing.T) {
	t.Helper()
	name := CurrentName()
	t.Cleanup(func() { SetTheme(name) })
}

func TestAllThemesRegistered(t *testing.T) {
	want := []string{"catppuccin", "gruvbox", "tokyonight"}
	if diff := cmp.Diff(want, Available()); diff != "" {
		t.Errorf("available themes mismatch (-want +got):\n%s", diff)
	}
}

func TestThemesDefineEveryColor(t *testing.T) {
	for _, name := range Available() {
		restoreTheme(t)
		SetTheme(name)
		th := Current()
		colors := map[string]lipgloss.AdaptiveColor{
			"Primary": th.Primary, "Secondary": th.Secondary, "Accent": th.Accent,
			"Error": th.Error, "Warning": th.Warning, "Success": th.Success, "Info": th.Info,
			"Text": th.Text, "TextMuted": th.TextMuted, "TextEmphasized": th.TextEmphasized,
			"Background": th.Background, "BackgroundSecondary": th.BackgroundSecondary,
			"BackgroundDarker": th.BackgroundDarker, "BorderNormal": th.BorderNormal,
			"BorderFocused": th.BorderFocused, "BorderDim": th.BorderDim,
		}
		for field, col := range colors {
			if col.Dark == "" || col.Light == "" {
				t.Errorf("theme %s: %s has empty variant %+v", name, field, col)
			}
		}
	}
}

func TestSetThemeUnknownKeepsCurrent(t *testing.T) {
	restoreTheme(t)
	SetTheme("gruvbox")
	if SetTheme("does-not-exist") {
		t.Fatal("expected unknown theme to be rejected")
	}
	if CurrentName() != "gruvbox" {
		t.Fatalf("expected gruvbox to stay active, got %s", CurrentName())
	}
}

func TestCycleThemeWraps(t *testing.T) {
	restoreTheme(t)
	SetTheme("tokyonight")
	if got := CycleTheme(); got != "catppuccin" {
		t.Fatalf("expected wrap to catppuccin, got %s", got)
	}
	if got := CycleTheme(); got != "gruvbox" {
		t.Fatalf("expected gruvbox, got %s", got)
	}
}
