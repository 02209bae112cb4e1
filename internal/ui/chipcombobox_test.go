package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
)

var skills = []string{"Go", "GraphQL", "React", "Rust", "TypeScript"}

func newFocusedChips(t *testing.T, catalog []string, maxItems int) ChipComboBox {
	t.Helper()
	c := NewChipComboBox(FieldSkills, catalog, maxItems)
	c.Focus()
	return c
}

func TestNewChipComboBox(t *testing.T) {
	c := NewChipComboBox(FieldSkills, skills, 0)
	if c.MaxItems() != DefaultMaxChips {
		t.Errorf("expected default max %d, got %d", DefaultMaxChips, c.MaxItems())
	}
	if len(c.Values()) != 0 {
		t.Errorf("expected no chips, got %v", c.Values())
	}
	c = c.WithWidth(60).WithMaxItems(3).WithPlaceholder("Add skills")
	if c.Width != 60 || c.MaxItems() != 3 || c.Placeholder != "Add skills" {
		t.Errorf("builders not applied: %+v", c)
	}
}

func TestChipComboBoxEnterAddsHighlighted(t *testing.T) {
	c := newFocusedChips(t, skills, 5)
	c, _ = typeChips(t, c, "r")
	c, _ = c.Update(keyOf(tea.KeyDown))

	c, cmd := c.Update(keyOf(tea.KeyEnter))
	got := chipMsgs(collectMsgs(t, cmd))
	want := []ChipsChangedMsg{{Field: FieldSkills, Values: []string{"React"}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("chips message mismatch (-want +got):\n%s", diff)
	}
	if c.Query() != "" {
		t.Errorf("expected query cleared, got %q", c.Query())
	}
	if c.IsOpen() {
		t.Error("expected panel closed after adding")
	}

	c, _ = typeChips(t, c, "r")
	if diff := cmp.Diff([]string{"GraphQL", "Rust", "TypeScript"}, c.Suggestions()); diff != "" {
		t.Errorf("expected committed chip excluded (-want +got):\n%s", diff)
	}
}

func TestChipComboBoxEnterFreeform(t *testing.T) {
	c := newFocusedChips(t, skills, 5)
	c, _ = typeChips(t, c, " Elixir ")
	c, _ = c.Update(keyOf(tea.KeyEnter))
	if diff := cmp.Diff([]string{"Elixir"}, c.Values()); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestChipComboBoxAddChipRules(t *testing.T) {
	c := NewChipComboBox(FieldSkills, skills, 2)

	if ok, _ := c.AddChip(""); ok {
		t.Error("expected empty chip to be rejected")
	}
	if ok, cmd := c.AddChip("Go"); !ok || cmd == nil {
		t.Fatal("expected Go to be added with a notification")
	}
	if ok, _ := c.AddChip("Go"); ok {
		t.Error("expected duplicate to be rejected")
	}
	if ok, _ := c.AddChip("go"); !ok {
		t.Error("expected case variant to be a distinct chip")
	}
	if ok, _ := c.AddChip("Rust"); ok {
		t.Error("expected add beyond MaxItems to be rejected")
	}
	if diff := cmp.Diff([]string{"Go", "go"}, c.Values()); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestChipComboBoxAddChipClosesPanel(t *testing.T) {
	c := newFocusedChips(t, skills, 5)
	if !c.IsOpen() {
		t.Fatal("expected panel open after focus")
	}
	if ok, _ := c.AddChip("Go"); !ok {
		t.Fatal("expected Go to be added")
	}
	if c.IsOpen() {
		t.Error("expected panel closed after adding")
	}

	c.Focus()
	if ok, _ := c.AddChip("Go"); ok {
		t.Fatal("expected duplicate to be rejected")
	}
	if !c.IsOpen() {
		t.Error("expected a rejected add to leave the panel open")
	}
}

func TestChipComboBoxRemoveChip(t *testing.T) {
	c := NewChipComboBox(FieldSkills, skills, 5)
	c.SetValues([]string{"Go", "Rust"})

	if ok, _ := c.RemoveChip("Java"); ok {
		t.Error("expected removing an absent chip to be a no-op")
	}
	ok, cmd := c.RemoveChip("Go")
	if !ok {
		t.Fatal("expected Go to be removed")
	}
	got := chipMsgs(collectMsgs(t, cmd))
	if len(got) != 1 || !cmp.Equal(got[0].Values, []string{"Rust"}) {
		t.Errorf("unexpected notification %+v", got)
	}
}

func TestChipComboBoxBackspaceRemovesLast(t *testing.T) {
	c := newFocusedChips(t, skills, 5)
	c.SetValues([]string{"Go", "Rust"})

	c, cmd := c.Update(keyOf(tea.KeyBackspace))
	if diff := cmp.Diff([]string{"Go"}, c.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if got := chipMsgs(collectMsgs(t, cmd)); len(got) != 1 {
		t.Errorf("expected one notification, got %d", len(got))
	}

	c, _ = typeChips(t, c, "Ty")
	c, _ = c.Update(keyOf(tea.KeyBackspace))
	if len(c.Values()) != 1 || c.Query() != "T" {
		t.Errorf("expected backspace to edit the query, got values %v query %q", c.Values(), c.Query())
	}
}

func TestChipComboBoxArrowNavigationRemovesChip(t *testing.T) {
	c := newFocusedChips(t, skills, 5)
	c.SetValues([]string{"Go", "Rust", "Python"})

	c, _ = c.Update(keyOf(tea.KeyLeft))
	if c.chips.Highlighted() != 2 {
		t.Fatalf("expected last chip highlighted, got %d", c.chips.Highlighted())
	}
	if c.IsOpen() {
		t.Error("expected panel closed while a chip is highlighted")
	}
	c, _ = c.Update(keyOf(tea.KeyLeft))

	c, cmd := c.Update(keyOf(tea.KeyBackspace))
	want := []ChipsChangedMsg{{Field: FieldSkills, Values: []string{"Go", "Python"}}}
	if diff := cmp.Diff(want, chipMsgs(collectMsgs(t, cmd))); diff != "" {
		t.Fatalf("chips message mismatch (-want +got):\n%s", diff)
	}
	if c.chips.Highlighted() != 1 {
		t.Errorf("expected highlight to stay on Python, got %d", c.chips.Highlighted())
	}

	c, _ = c.Update(keyOf(tea.KeyDelete))
	if diff := cmp.Diff([]string{"Go"}, c.Values()); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
	if c.chips.Highlighted() != 0 {
		t.Errorf("expected highlight to move to Go, got %d", c.chips.Highlighted())
	}
}

func TestChipComboBoxNavigationExits(t *testing.T) {
	c := newFocusedChips(t, skills, 5)
	c.SetValues([]string{"Go", "Rust"})

	c, _ = c.Update(keyOf(tea.KeyLeft))
	c, _ = c.Update(keyOf(tea.KeyRight))
	if c.chips.Highlighted() != -1 {
		t.Errorf("expected Right past the last chip to end highlighting, got %d", c.chips.Highlighted())
	}

	c, _ = c.Update(keyOf(tea.KeyLeft))
	c, _ = typeChips(t, c, "T")
	if c.chips.Highlighted() != -1 || c.Query() != "T" {
		t.Errorf("expected typing to end highlighting and edit the query, got %d %q", c.chips.Highlighted(), c.Query())
	}

	c, _ = c.Update(keyOf(tea.KeyBackspace))
	c, _ = c.Update(keyOf(tea.KeyLeft))
	c.Blur()
	if c.chips.Highlighted() != -1 {
		t.Error("expected blur to end highlighting")
	}
	if diff := cmp.Diff([]string{"Go", "Rust"}, c.Values()); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestChipComboBoxRemoveChipAt(t *testing.T) {
	c := newFocusedChips(t, skills, 5)
	c.SetValues([]string{"Go", "Rust", "Python"})

	region := c.layout()
	if region.Chips.Empty() {
		t.Fatalf("expected chip rows in layout, got %+v", region)
	}
	if cmd := c.RemoveChipAt(c.Width-1, 0); cmd != nil {
		t.Error("expected a press past the chips to remove nothing")
	}

	cmd := c.RemoveChipAt(0, 0)
	want := []ChipsChangedMsg{{Field: FieldSkills, Values: []string{"Rust", "Python"}}}
	if diff := cmp.Diff(want, chipMsgs(collectMsgs(t, cmd))); diff != "" {
		t.Errorf("chips message mismatch (-want +got):\n%s", diff)
	}
}

func TestChipComboBoxAtCapacity(t *testing.T) {
	c := newFocusedChips(t, skills, 2)
	c.AddChip("Go")
	c.AddChip("Rust")

	if !c.Full() {
		t.Fatal("expected field to be full")
	}
	c, _ = typeChips(t, c, "Re")
	if c.Query() != "" {
		t.Errorf("expected keystrokes to be ignored, got query %q", c.Query())
	}
	c, _ = c.Update(keyOf(tea.KeyEnter))
	if len(c.Values()) != 2 {
		t.Errorf("expected no change at capacity, got %v", c.Values())
	}
	if c.IsOpen() {
		t.Error("expected panel closed at capacity")
	}
	if view := c.View(); !strings.Contains(view, "Maximum 2 items reached") {
		t.Errorf("expected capacity caption:\n%s", view)
	}

	c, _ = c.Update(keyOf(tea.KeyBackspace))
	if c.Full() {
		t.Fatal("expected backspace to free a slot")
	}
	if view := c.View(); strings.Contains(view, "Maximum") {
		t.Errorf("expected caption to disappear:\n%s", view)
	}
	c, _ = typeChips(t, c, "Ty")
	if c.Query() != "Ty" {
		t.Errorf("expected typing to resume, got %q", c.Query())
	}
}

func TestChipComboBoxNoBlurCommit(t *testing.T) {
	c := newFocusedChips(t, skills, 5)
	c, _ = typeChips(t, c, "Elixir")
	if cmd := c.Blur(); cmd != nil {
		if got := blurMsgs(collectMsgs(t, cmd)); len(got) != 0 {
			t.Fatalf("expected no blur commit, got %+v", got)
		}
	}
	if len(c.Values()) != 0 {
		t.Errorf("expected no chips, got %v", c.Values())
	}
}

func TestChipComboBoxSelectRow(t *testing.T) {
	c := newFocusedChips(t, skills, 5)
	cmd := c.SelectRow(2)
	if got := chipMsgs(collectMsgs(t, cmd)); len(got) != 1 {
		t.Fatalf("expected a notification, got %d", len(got))
	}
	if diff := cmp.Diff([]string{"React"}, c.Values()); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
	if !c.Focused() {
		t.Error("expected field to keep focus after a click")
	}
	if cmd := c.SelectRow(99); cmd != nil {
		t.Error("expected out-of-range row to be ignored")
	}
}

func TestChipComboBoxSelectAllAndClear(t *testing.T) {
	c := NewChipComboBox(FieldTargets, skills, 3)
	c.AddChip("Rust")

	if got := chipMsgs(collectMsgs(t, c.SelectAll())); len(got) != 1 {
		t.Fatalf("expected one notification, got %d", len(got))
	}
	if diff := cmp.Diff([]string{"Rust", "Go", "GraphQL"}, c.Values()); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
	if cmd := c.SelectAll(); cmd != nil {
		t.Error("expected select all on a full field to be a no-op")
	}

	if got := chipMsgs(collectMsgs(t, c.Clear())); len(got) != 1 || len(got[0].Values) != 0 {
		t.Fatalf("expected empty notification, got %+v", got)
	}
	if cmd := c.Clear(); cmd != nil {
		t.Error("expected clearing an empty field to be a no-op")
	}
}

func TestChipComboBoxDuplicateFlash(t *testing.T) {
	c := newFocusedChips(t, skills, 5)
	c.AddChip("Go")
	_, cmd := c.AddChip("Go")
	if c.chips.FlashIndex() != 0 {
		t.Fatalf("expected duplicate chip to flash, got %d", c.chips.FlashIndex())
	}
	if cmd == nil {
		t.Fatal("expected a flash clear command")
	}
	c, _ = c.Update(chipFlashClearMsg{})
	if c.chips.FlashIndex() != -1 {
		t.Error("expected flash to clear")
	}
}

func TestChipComboBoxLayout(t *testing.T) {
	c := newFocusedChips(t, skills, 5)
	c.SetValues([]string{"Go"})

	region := c.layout()
	if region.Input.Y != 1 {
		t.Errorf("expected input below the chip row, got %+v", region.Input)
	}
	if region.Panel.Y != 1+inputHeight || region.PanelRows != len(c.Suggestions()) {
		t.Errorf("unexpected panel %+v", region)
	}
	if got := len(strings.Split(c.View(), "\n")); got != region.Bounds.H {
		t.Errorf("expected view height %d, got %d", region.Bounds.H, got)
	}
}

func TestChipListWraps(t *testing.T) {
	l := NewChipList(10)
	l.Width = 12
	l.Add("alpha")
	l.Add("beta")
	l.Add("gamma")
	if l.Height() < 2 {
		t.Errorf("expected chips to wrap onto several lines, got %d", l.Height())
	}
	if got, ok := l.RemoveLast(); !ok || got != "gamma" {
		t.Errorf("expected gamma removed, got %q", got)
	}
}

func TestChipListChipAt(t *testing.T) {
	l := NewChipList(10)
	l.Width = 12
	l.Add("alpha")
	l.Add("beta")
	l.Add("gamma")

	tests := []struct {
		name string
		x, y int
		want int
	}{
		{"FirstChip", 0, 0, 0},
		{"PastFirstChip", 10, 0, -1},
		{"SecondLine", 0, 1, 1},
		{"ThirdLine", 1, 2, 2},
		{"BelowChips", 0, 3, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.ChipAt(tt.x, tt.y); got != tt.want {
				t.Errorf("ChipAt(%d, %d) = %d, want %d", tt.x, tt.y, got, tt.want)
			}
		})
	}
}
