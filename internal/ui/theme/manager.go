package theme

import (
	"sort"
	"sync"
)

// DefaultName is the theme active until SetTheme picks another.
const DefaultName = "tokyonight"

var globalManager = newManager()

type manager struct {
	mu          sync.RWMutex
	themes      map[string]Theme
	currentName string
}

func newManager() *manager {
	return &manager{
		themes: map[string]Theme{
			"tokyonight": TokyoNight,
			"catppuccin": Catppuccin,
			"gruvbox":    Gruvbox,
		},
		currentName: DefaultName,
	}
}

// RegisterTheme adds or replaces a theme in the registry.
func RegisterTheme(name string, t Theme) {
	globalManager.mu.Lock()
	defer globalManager.mu.Unlock()
	globalManager.themes[name] = t
}

// SetTheme switches to a registered theme by name.
// Returns true if the theme was found and set.
func SetTheme(name string) bool {
	globalManager.mu.Lock()
	defer globalManager.mu.Unlock()
	if _, ok := globalManager.themes[name]; ok {
		globalManager.currentName = name
		return true
	}
	return false
}

// Current returns the active theme.
func Current() Theme {
	globalManager.mu.RLock()
	defer globalManager.mu.RUnlock()
	return globalManager.themes[globalManager.currentName]
}

// CurrentName returns the name of the active theme.
func CurrentName() string {
	globalManager.mu.RLock()
	defer globalManager.mu.RUnlock()
	return globalManager.currentName
}

// Available returns all registered theme names in sorted order.
func Available() []string {
	globalManager.mu.RLock()
	defer globalManager.mu.RUnlock()
	names := make([]string, 0, len(globalManager.themes))
	for name := range globalManager.themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CycleTheme switches to the next theme in the sorted list and returns its
// name.
func CycleTheme() string {
	names := Available()
	if len(names) == 0 {
		return ""
	}

	globalManager.mu.Lock()
	defer globalManager.mu.Unlock()
	next := names[0]
	for i, name := range names {
		if name == globalManager.currentName {
			next = names[(i+1)%len(names)]
			break
		}
	}
	globalManager.currentName = next
	return next
}
