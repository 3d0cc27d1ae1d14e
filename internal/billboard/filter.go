package billboard

import (
	"slices"
	"strings"
)

// Filter narrows the post list the way the board's filter panel does.
type Filter struct {
	// Categories to include. Empty means all.
	Categories []Category
	// Suburb must match exactly (case-insensitive) when set.
	Suburb string
	// Search matches title or description, case-insensitive.
	Search string
}

// Match reports whether p passes the filter.
func (f Filter) Match(p Post) bool {
	if len(f.Categories) > 0 {
		found := false
		for _, c := range f.Categories {
			if c == p.Category {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if suburb := strings.TrimSpace(f.Suburb); suburb != "" && !strings.EqualFold(suburb, strings.TrimSpace(p.Suburb)) {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		if !strings.Contains(strings.ToLower(p.Title), q) && !strings.Contains(strings.ToLower(p.Description), q) {
			return false
		}
	}
	return true
}

// Apply returns the posts that match, preserving order.
func (f Filter) Apply(posts []Post) []Post {
	out := make([]Post, 0, len(posts))
	for _, p := range posts {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

// Suburbs returns the distinct suburbs in posts, sorted.
func Suburbs(posts []Post) []string {
	seen := make(map[string]struct{}, len(posts))
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		s := strings.TrimSpace(p.Suburb)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}
