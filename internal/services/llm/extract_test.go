package llm

import (
	"errors"
	"testing"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare", `{"a":1}`, `{"a":1}`},
		{"prose around", `Sure! Here it is: {"a":1} Hope that helps {"b":2}`, `{"a":1}`},
		{"code fence", "```json\n{\"a\":{\"b\":[1,2]}}\n```", `{"a":{"b":[1,2]}}`},
		{"braces in strings", `{"tip":"use } and { freely","q":"say \"}\""}`, `{"tip":"use } and { freely","q":"say \"}\""}`},
		{"skips invalid candidate", `{not json} then {"ok":true}`, `{"ok":true}`},
		{"prose with braces first", `Use {curly} style. {"item_name":"jar"}`, `{"item_name":"jar"}`},
		{"object after fenced note", "```\nnote: analysing image\n```\nResult: {\"item_name\":\"jar\"}", `{"item_name":"jar"}`},
		{"nested returns outer", `{"outer":{"inner":1}}`, `{"outer":{"inner":1}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSONObject(tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %q want %q", got, tt.want)
			}
		})
	}
}

func TestExtractJSONObjectMalformed(t *testing.T) {
	for _, in := range []string{"", "no json here", `{"unterminated": "x"`, `[1,2,3]`} {
		if _, err := ExtractJSONObject(in); !errors.Is(err, ErrMalformedResponse) {
			t.Fatalf("expected ErrMalformedResponse for %q, got %v", in, err)
		}
	}
}

func TestDecodeLLMJSON(t *testing.T) {
	var target struct {
		ItemName string `json:"item_name"`
	}
	if err := DecodeLLMJSON("Result:\n```json\n{\"item_name\":\"Glass Jar\"}\n```", &target); err != nil {
		t.Fatalf("DecodeLLMJSON: %v", err)
	}
	if target.ItemName != "Glass Jar" {
		t.Fatalf("unexpected item name %q", target.ItemName)
	}
	fencedNote := "```\nnote: analysing image\n```\nResult: {\"item_name\":\"jar\"}"
	if err := DecodeLLMJSON(fencedNote, &target); err != nil {
		t.Fatalf("DecodeLLMJSON after fenced note: %v", err)
	}
	if target.ItemName != "jar" {
		t.Fatalf("unexpected item name after fenced note %q", target.ItemName)
	}
	if err := DecodeLLMJSON("  ", &target); !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected malformed for empty payload, got %v", err)
	}
	var wrongType struct {
		ItemName int `json:"item_name"`
	}
	if err := DecodeLLMJSON(`{"item_name":"x"}`, &wrongType); !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected malformed for type mismatch, got %v", err)
	}
	if UserMessage(ErrMalformedResponse) != MessageMalformed {
		t.Fatal("unexpected malformed message")
	}
}
