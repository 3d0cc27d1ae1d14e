package advice_test

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"ecogenius/internal/advice"
	"ecogenius/internal/bins"
	"ecogenius/internal/classify"
)

func glassJar() classify.Result {
	return classify.Result{
		ItemName:           "Glass jar",
		Category:           bins.CategoryGlass,
		BinType:            bins.YellowRecycling,
		AlternativeBinType: bins.None,
		ConfidenceScore:    92,
		CO2SavedGrams:      180,
		RecyclingTip:       "Rinse and remove the lid.",
		Explanation:        "Glass jars are accepted in kerbside recycling.",
	}
}

func TestBuildGlassJar(t *testing.T) {
	card := advice.Build(glassJar(), advice.Options{Picker: advice.FixedPicker(0)})
	if card.Primary.Name != "Yellow Recycling Bin" || card.Primary.Icon != "🟡" {
		t.Fatalf("primary = %+v", card.Primary)
	}
	if card.Alternative != nil {
		t.Fatalf("alternative should be absent, got %+v", card.Alternative)
	}
	if card.Confidence != "92% confident" || card.Band != advice.BandGreen {
		t.Fatalf("confidence = %q band %q", card.Confidence, card.Band)
	}
	if card.CategoryLabel != "Glass" {
		t.Fatalf("category label = %q", card.CategoryLabel)
	}
	if card.CategoryEmoji != "🥃" {
		t.Fatalf("emoji = %q", card.CategoryEmoji)
	}
	if card.Impact != "That's like powering a LED light bulb for 20.0 hours!" {
		t.Fatalf("impact = %q", card.Impact)
	}
	if card.Unrecognized {
		t.Fatal("known bin flagged unrecognized")
	}
}

func TestBuildAlternativeRules(t *testing.T) {
	cases := []struct {
		name string
		alt  bins.Type
		want bool
	}{
		{"empty", "", false},
		{"none", bins.None, false},
		{"same as primary", bins.YellowRecycling, false},
		{"distinct", bins.GreenOrganics, true},
		{"unknown", "purple_bin", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := glassJar()
			r.AlternativeBinType = tc.alt
			card := advice.Build(r, advice.Options{})
			if got := card.Alternative != nil; got != tc.want {
				t.Fatalf("alternative present = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestBuildUnknownBinFallsBack(t *testing.T) {
	r := glassJar()
	r.BinType = "blue_bin"
	card := advice.Build(r, advice.Options{})
	if !card.Unrecognized {
		t.Fatal("expected Unrecognized")
	}
	if card.Primary.Name != advice.UnknownBin.Name {
		t.Fatalf("primary = %q", card.Primary.Name)
	}
}

func TestConfidenceBand(t *testing.T) {
	cases := map[float64]advice.Band{
		100: advice.BandGreen,
		80:  advice.BandGreen,
		79:  advice.BandYellow,
		60:  advice.BandYellow,
		59:  advice.BandRed,
		-3:  advice.BandRed,
	}
	for score, want := range cases {
		if got := advice.ConfidenceBand(score); got != want {
			t.Fatalf("ConfidenceBand(%v) = %q, want %q", score, got, want)
		}
	}
}

func TestImpact(t *testing.T) {
	cases := []struct {
		grams float64
		idx   int
		want  string
	}{
		{180, 0, "That's like powering a LED light bulb for 20.0 hours!"},
		{180, 1, "That's like powering a laptop for 2.5 hours of work!"},
		{180, 2, "That's like powering a car travel for 1.20 km!"},
		{0, 0, ""},
		{-10, 1, ""},
	}
	for _, tc := range cases {
		if got := advice.Impact(tc.grams, tc.idx); got != tc.want {
			t.Fatalf("Impact(%v, %d) = %q, want %q", tc.grams, tc.idx, got, tc.want)
		}
	}
}

func TestSeededPickerIsStable(t *testing.T) {
	r := glassJar()
	first := advice.SeededPicker{}.Pick(r)
	for i := 0; i < 10; i++ {
		if got := (advice.SeededPicker{}).Pick(r); got != first {
			t.Fatalf("pick changed from %d to %d", first, got)
		}
	}
	if first < 0 || first >= len(advice.Equivalences) {
		t.Fatalf("pick out of range: %d", first)
	}
	if got := (advice.RandomPicker{}).Pick(r); got < 0 || got >= len(advice.Equivalences) {
		t.Fatalf("random pick out of range: %d", got)
	}
}

func TestRenderText(t *testing.T) {
	r := glassJar()
	r.AlternativeBinType = bins.SpecialCollection
	card := advice.Build(r, advice.Options{Picker: advice.FixedPicker(1)})

	var plain bytes.Buffer
	if err := advice.RenderText(&plain, card, false); err != nil {
		t.Fatalf("RenderText: %v", err)
	}
	out := plain.String()
	for _, want := range []string{"Glass jar", "92% confident", "Yellow Recycling Bin", "Special Collection", "Tip: Rinse", "laptop"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Fatal("plain output contains ANSI codes")
	}

	var colored bytes.Buffer
	if err := advice.RenderText(&colored, card, true); err != nil {
		t.Fatalf("RenderText: %v", err)
	}
	if !strings.Contains(colored.String(), "\033[32m92% confident") {
		t.Fatalf("expected green confidence badge:\n%s", colored.String())
	}
}

func TestCategoryLabelHandlesNonASCII(t *testing.T) {
	result := glassJar()
	result.Category = bins.Category("émballage")
	card := advice.Build(result, advice.Options{Picker: advice.FixedPicker(0)})
	if card.CategoryLabel != "Émballage" {
		t.Fatalf("category label = %q", card.CategoryLabel)
	}
	if !utf8.ValidString(card.CategoryLabel) {
		t.Fatalf("category label is not valid UTF-8: %q", card.CategoryLabel)
	}
}
