// Package catalog provides the suggestion word-lists the profile form offers:
// the built-in skill, location and company lists, plus helpers for shaping
// catalogs fetched from the job service.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed wordlists.yaml
var wordlistsYAML string

// WordLists holds the static catalogs shipped with the binary.
type WordLists struct {
	Skills    []string `yaml:"skills"`
	Locations []string `yaml:"locations"`
	Companies []string `yaml:"companies"`
}

var (
	defaultsOnce sync.Once
	defaults     WordLists
	defaultsErr  error
)

// Defaults returns the embedded word-lists. The result is parsed once and
// shared; callers must not modify the returned slices.
func Defaults() (WordLists, error) {
	defaultsOnce.Do(func() {
		defaults, defaultsErr = Load(strings.NewReader(wordlistsYAML))
	})
	return defaults, defaultsErr
}

// Load parses word-lists from YAML. Blank entries are dropped and exact
// duplicates keep their first position.
func Load(r io.Reader) (WordLists, error) {
	var wl WordLists
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&wl); err != nil {
		if errors.Is(err, io.EOF) {
			return WordLists{}, nil
		}
		return WordLists{}, fmt.Errorf("decode word-lists: %w", err)
	}
	wl.Skills = Normalize(wl.Skills)
	wl.Locations = Normalize(wl.Locations)
	wl.Companies = Normalize(wl.Companies)
	return wl, nil
}

// Normalize trims entries, drops blanks and removes exact duplicates while
// preserving order.
func Normalize(entries []string) []string {
	out := make([]string, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}

// Union merges catalogs into one sorted list without duplicates. Used for the
// target-company selector, which offers every board's companies at once.
func Union(lists ...[]string) []string {
	var all []string
	for _, l := range lists {
		all = append(all, l...)
	}
	all = Normalize(all)
	sort.Strings(all)
	return all
}
