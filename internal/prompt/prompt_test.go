package prompt_test

import (
	"strings"
	"testing"

	"ecogenius/internal/prompt"
)

func TestImageClassificationMentionsEveryField(t *testing.T) {
	text := prompt.ImageClassification()
	for _, field := range prompt.ClassificationSchema().FieldNames() {
		if !strings.Contains(text, field) {
			t.Fatalf("prompt missing field %q", field)
		}
	}
	if !strings.Contains(text, "Don't default everything to red_landfill") {
		t.Fatal("prompt missing landfill warning")
	}
}

func TestClassificationSchemaRequiredSubset(t *testing.T) {
	schema := prompt.ClassificationSchema()
	if schema.Type != "object" {
		t.Fatalf("unexpected type %q", schema.Type)
	}
	if schema.IsRequired("alternative_bin_type") {
		t.Fatal("alternative_bin_type must be optional")
	}
	if len(schema.Required) != len(schema.Properties)-1 {
		t.Fatalf("expected all but one field required, got %v", schema.Required)
	}
	alt := schema.Properties["alternative_bin_type"]
	if alt.Enum[len(alt.Enum)-1] != "none" {
		t.Fatalf("expected none in alternative enum, got %v", alt.Enum)
	}
	if got := len(schema.Properties["category"].Enum); got != 9 {
		t.Fatalf("expected 9 categories, got %d", got)
	}
}

func TestWithJSONInstruction(t *testing.T) {
	if got := prompt.WithJSONInstruction("hello", nil); got != "hello" {
		t.Fatalf("expected unchanged prompt, got %q", got)
	}
	got := prompt.WithJSONInstruction("hello", prompt.ClassificationSchema())
	if !strings.HasSuffix(got, prompt.JSONInstruction) {
		t.Fatalf("expected instruction suffix, got %q", got)
	}
}

func TestTextSearchQuotesTerm(t *testing.T) {
	got := prompt.TextSearch("  pizza box ")
	if !strings.Contains(got, `recycle "pizza box"`) {
		t.Fatalf("expected quoted term, got %q", got)
	}
	if strings.Contains(got, "confidence") {
		t.Fatal("search prompt must not request confidence")
	}
}
