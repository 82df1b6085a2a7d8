// Package jsonextract isolates a JSON payload from free text returned by a
// generative model. It is a heuristic, not a parser: the returned substring
// may be malformed, so callers must attempt a full parse and fall back on
// failure.
package jsonextract

import "strings"

// Extract returns a best-effort JSON-shaped substring of text.
// A fenced code block labeled json wins; otherwise the greedy span from the
// first '{' to the last '}' is returned. ok is false when neither is found.
func Extract(text string) (string, bool) {
	if inner, ok := fencedJSON(text); ok {
		return inner, true
	}
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		return text[start : end+1], true
	}
	return "", false
}

func fencedJSON(text string) (string, bool) {
	lower := strings.ToLower(text)
	i := strings.Index(lower, "```json")
	if i < 0 {
		return "", false
	}
	rest := text[i+len("```json"):]
	j := strings.Index(rest, "```")
	if j < 0 {
		return "", false
	}
	return strings.TrimSpace(rest[:j]), true
}
