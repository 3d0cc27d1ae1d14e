package textutil

import (
	"math"
	"testing"
)

func TestCosineSimilarityNil(t *testing.T) {
	tests := []struct {
		name string
		a    *Fingerprint
		b    *Fingerprint
	}{
		{"both nil", nil, nil},
		{"a nil", nil, NewFingerprint("glass jar")},
		{"b nil", NewFingerprint("glass jar"), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CosineSimilarity(tt.a, tt.b); got != 0 {
				t.Errorf("CosineSimilarity() = %v, want 0", got)
			}
		})
	}
}

func TestCosineSimilarityIdentical(t *testing.T) {
	text := "Plastic water bottle with cap"
	got := CosineSimilarity(NewFingerprint(text), NewFingerprint(text))
	if math.Abs(got-1) > 1e-9 {
		t.Errorf("CosineSimilarity(identical) = %v, want 1", got)
	}
}

func TestCosineSimilarityPartialOverlap(t *testing.T) {
	got := CosineSimilarity(NewFingerprint("plastic bottle"), NewFingerprint("plastic bag"))
	if got <= 0 || got >= 1 {
		t.Errorf("CosineSimilarity(partial) = %v, want between 0 and 1", got)
	}
	if disjoint := CosineSimilarity(NewFingerprint("banana peel"), NewFingerprint("mobile phone")); disjoint != 0 {
		t.Errorf("CosineSimilarity(disjoint) = %v, want 0", disjoint)
	}
}

func TestTokenizeDropsShortTokens(t *testing.T) {
	got := Tokenize("An old TV, a box & 2 jars")
	want := []string{"old", "box", "jars"}
	if len(got) != len(want) {
		t.Fatalf("Tokenize() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Tokenize() = %v, want %v", got, want)
		}
	}
	if NewFingerprint("a b c") != nil {
		t.Fatal("expected nil fingerprint for short tokens")
	}
	fp := NewFingerprint("Milk Carton")
	if !fp.Contains("MILK") || fp.TokenCount() != 2 {
		t.Fatalf("fingerprint = %+v", fp)
	}
}

func TestTitleCase(t *testing.T) {
	cases := map[string]string{
		"st  kilda":     "St Kilda",
		"":              "",
		"CITY of yarra": "City Of Yarra",
	}
	for in, want := range cases {
		if got := TitleCase(in); got != want {
			t.Errorf("TitleCase(%q) = %q, want %q", in, got, want)
		}
	}
}
