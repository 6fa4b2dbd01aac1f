package match

import (
	"cmp"
	"slices"
)

const (
	// DefaultSuggestions is the number of names offered for an unresolved feature.
	DefaultSuggestions = 3
	// minSuggestionScore drops candidates that share too little with the wanted name.
	minSuggestionScore = 0.5
)

type scored struct {
	name  string
	score float64
}

// Suggest returns up to limit candidate names most similar to want, best
// first. Ties are broken by name; duplicates and poor matches are dropped.
func Suggest(want string, candidates []string, limit int) []string {
	if limit <= 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(candidates))

	var ranked []scored

	for _, c := range candidates {
		if _, ok := seen[c]; ok {
			continue
		}

		seen[c] = struct{}{}

		if s := NameScore(want, c); s >= minSuggestionScore {
			ranked = append(ranked, scored{name: c, score: s})
		}
	}

	slices.SortFunc(ranked, func(a, b scored) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}

		return cmp.Compare(a.name, b.name)
	})

	out := make([]string, 0, min(limit, len(ranked)))
	for _, r := range ranked[:min(limit, len(ranked))] {
		out = append(out, r.name)
	}

	return out
}
