package bins_test

import (
	"testing"

	"ecogenius/internal/bins"
)

func TestLookupCoversExactlyFourBins(t *testing.T) {
	if got := len(bins.Types()); got != 4 {
		t.Fatalf("expected 4 bin types, got %d", got)
	}
	for _, typ := range bins.Types() {
		info, ok := bins.Lookup(typ)
		if !ok {
			t.Fatalf("missing info for %s", typ)
		}
		if info.Name == "" || info.Icon == "" || info.Description == "" || info.Color == "" {
			t.Fatalf("incomplete info for %s: %+v", typ, info)
		}
	}
	if _, ok := bins.Lookup(bins.None); ok {
		t.Fatal("none must not have display info")
	}
}

func TestParseTypeNormalizes(t *testing.T) {
	if got := bins.ParseType("  Yellow_Recycling "); got != bins.YellowRecycling {
		t.Fatalf("unexpected type: %q", got)
	}
	if bins.ParseType("blue_bin").Valid() {
		t.Fatal("blue_bin must not be valid")
	}
}

func TestCategoryEmoji(t *testing.T) {
	if bins.CategoryGlass.Emoji() != "🥃" {
		t.Fatalf("unexpected glass emoji %q", bins.CategoryGlass.Emoji())
	}
	if bins.ParseCategory("E-Waste") != bins.CategoryEWaste {
		t.Fatal("expected e-waste to parse")
	}
	if bins.Category("styrofoam").Emoji() != "❔" {
		t.Fatal("expected fallback emoji for unknown category")
	}
	if len(bins.Categories()) != 9 {
		t.Fatalf("expected 9 categories, got %d", len(bins.Categories()))
	}
}
