// Package suggest holds the UI-independent core of the suggestion fields:
// catalog filtering and the input state machine that both the single-value
// and the multi-value field are built on.
package suggest

import "strings"

// MaxSuggestions caps the number of entries a panel ever shows.
const MaxSuggestions = 8

// Filter returns the catalog entries whose lowercase form contains the
// lowercase query and that are not in excluded, in catalog order, capped at
// MaxSuggestions. An empty query yields the first entries of the catalog.
// Exclusion is by exact string equality; the query is matched untrimmed.
func Filter(catalog []string, query string, excluded []string) []string {
	if len(catalog) == 0 {
		return nil
	}
	var skip map[string]struct{}
	if len(excluded) > 0 {
		skip = make(map[string]struct{}, len(excluded))
		for _, e := range excluded {
			skip[e] = struct{}{}
		}
	}

	needle := strings.ToLower(query)
	out := make([]string, 0, min(len(catalog), MaxSuggestions))
	for _, entry := range catalog {
		if _, ok := skip[entry]; ok {
			continue
		}
		if !strings.Contains(strings.ToLower(entry), needle) {
			continue
		}
		out = append(out, entry)
		if len(out) == MaxSuggestions {
			break
		}
	}
	return out
}
