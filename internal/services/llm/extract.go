package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSONObject returns the first balanced top-level JSON object in text.
// Braces inside JSON strings (including escaped quotes) do not affect nesting,
// so prose, code fences, and trailing commentary around the object are ignored.
// Candidates that balance but fail to parse are skipped.
func ExtractJSONObject(text string) (string, error) {
	for start := strings.IndexByte(text, '{'); start >= 0; {
		if end, ok := scanObject(text, start); ok {
			candidate := text[start : end+1]
			if json.Valid([]byte(candidate)) {
				return candidate, nil
			}
		}
		next := strings.IndexByte(text[start+1:], '{')
		if next < 0 {
			break
		}
		start += next + 1
	}
	return "", fmt.Errorf("%w: no JSON object (payload snippet: %s)", ErrMalformedResponse, summarizePayloadSnippet(text))
}

// scanObject returns the index of the brace closing the object opened at start.
func scanObject(text string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// DecodeLLMJSON decodes the first JSON object found anywhere in an LLM response.
func DecodeLLMJSON(content string, target any) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("%w: empty payload", ErrMalformedResponse)
	}
	object, err := ExtractJSONObject(content)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(object), target); err != nil {
		return fmt.Errorf("%w: %v (payload snippet: %s)", ErrMalformedResponse, err, summarizePayloadSnippet(object))
	}
	return nil
}

func summarizePayloadSnippet(content string) string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "<empty>"
	}
	clean := strings.Join(strings.Fields(trimmed), " ")
	const limit = 160
	runes := []rune(clean)
	if len(runes) > limit {
		clean = string(runes[:limit]) + "..."
	}
	return clean
}
