package search

import (
	"sort"

	"ecogenius/internal/textutil"
)

// minSuggestScore filters out items that only share noise with the term.
const minSuggestScore = 0.2

// Suggest ranks table items by token similarity to term and returns at most
// limit of them. It is used to offer "did you mean" items when nothing
// matched by name.
func (g *Guide) Suggest(term string, limit int) []Item {
	query := textutil.NewFingerprint(term)
	if query == nil || limit <= 0 {
		return nil
	}
	type scored struct {
		item  Item
		score float64
	}
	ranked := make([]scored, 0, len(g.items))
	for _, item := range g.items {
		doc := textutil.NewFingerprint(item.Name + " " + string(item.Category) + " " + item.Tip + " " + item.Explanation)
		if score := textutil.CosineSimilarity(query, doc); score >= minSuggestScore {
			ranked = append(ranked, scored{item: item, score: score})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	out := make([]Item, len(ranked))
	for i, r := range ranked {
		out[i] = r.item
	}
	return out
}
