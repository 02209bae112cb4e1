package suggest

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFilter(t *testing.T) {
	companies := []string{"Google", "Meta", "Microsoft"}
	many := []string{"a1", "a2", "a3", "a4", "a5", "a6", "a7", "a8", "a9", "a10"}

	tests := []struct {
		name     string
		catalog  []string
		query    string
		excluded []string
		want     []string
	}{
		{
			name:    "CaseInsensitiveSubstring",
			catalog: companies,
			query:   "me",
			want:    []string{"Meta"},
		},
		{
			name:    "UppercaseQuery",
			catalog: companies,
			query:   "GOO",
			want:    []string{"Google"},
		},
		{
			name:    "CatalogOrderKept",
			catalog: []string{"Rust", "TypeScript", "JavaScript", "Ruby"},
			query:   "r",
			want:    []string{"Rust", "TypeScript", "JavaScript", "Ruby"},
		},
		{
			name:    "EmptyQueryReturnsFirstEight",
			catalog: many,
			query:   "",
			want:    many[:8],
		},
		{
			name:    "TruncatedToEight",
			catalog: many,
			query:   "a",
			want:    many[:8],
		},
		{
			name:     "ExcludedEntriesSkippedBeforeTruncation",
			catalog:  many,
			query:    "a",
			excluded: []string{"a1", "a2"},
			want:     many[2:10],
		},
		{
			name:     "ExclusionIsExactMatch",
			catalog:  []string{"Go", "go"},
			query:    "",
			excluded: []string{"Go"},
			want:     []string{"go"},
		},
		{
			name:    "QueryNotTrimmed",
			catalog: []string{"San Francisco", "Remote"},
			query:   " f",
			want:    []string{"San Francisco"},
		},
		{
			name:    "NoMatch",
			catalog: companies,
			query:   "zzz",
			want:    []string{},
		},
		{
			name:    "EmptyCatalog",
			catalog: nil,
			query:   "x",
			want:    nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Filter(tc.catalog, tc.query, tc.excluded)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Filter(%q) mismatch (-want +got):\n%s", tc.query, diff)
			}
		})
	}
}

func TestFilterDoesNotMutateCatalog(t *testing.T) {
	catalog := []string{"B", "A", "C"}
	_ = Filter(catalog, "", []string{"A"})
	if diff := cmp.Diff([]string{"B", "A", "C"}, catalog); diff != "" {
		t.Fatalf("catalog mutated (-want +got):\n%s", diff)
	}
}

func TestFilterProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	alphabet := []rune("abcAB ")
	word := func(n int) string {
		r := make([]rune, n)
		for i := range r {
			r[i] = alphabet[rng.Intn(len(alphabet))]
		}
		return string(r)
	}

	for i := 0; i < 500; i++ {
		catalog := make([]string, rng.Intn(20))
		for j := range catalog {
			catalog[j] = word(1 + rng.Intn(6))
		}
		query := word(rng.Intn(3))

		got := Filter(catalog, query, nil)
		if len(got) > MaxSuggestions {
			t.Fatalf("len(Filter) = %d > %d for catalog %q query %q", len(got), MaxSuggestions, catalog, query)
		}
		for _, entry := range got {
			if !strings.Contains(strings.ToLower(entry), strings.ToLower(query)) {
				t.Fatalf("entry %q does not contain query %q", entry, query)
			}
		}
	}
}
