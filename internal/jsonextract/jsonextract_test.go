package jsonextract

import "testing"

func TestExtractFencedBlock(t *testing.T) {
	got, ok := Extract("Sure, here you go:\n```json\n{\"a\": 1}\n```\nLet me know if you need more.")
	if !ok || got != `{"a": 1}` {
		t.Fatalf("fenced extract: got %q ok=%v", got, ok)
	}
}

func TestExtractFencedBlockWinsOverBraces(t *testing.T) {
	text := "{stray} prose\n```json\n[1, 2]\n```"
	got, ok := Extract(text)
	if !ok || got != "[1, 2]" {
		t.Fatalf("fence priority: got %q ok=%v", got, ok)
	}
}

func TestExtractBraceSpan(t *testing.T) {
	got, ok := Extract(`The result is {"items": [{"name": "flask"}]} as requested.`)
	if !ok || got != `{"items": [{"name": "flask"}]}` {
		t.Fatalf("brace span: got %q ok=%v", got, ok)
	}
}

func TestExtractGreedySpanAcrossFragments(t *testing.T) {
	// Two JSON-looking fragments collapse into one greedy span; the caller's
	// parse attempt is what catches the resulting garbage.
	got, ok := Extract(`first {"a":1} then {"b":2}`)
	if !ok || got != `{"a":1} then {"b":2}` {
		t.Fatalf("greedy span: got %q ok=%v", got, ok)
	}
}

func TestExtractAbsent(t *testing.T) {
	if got, ok := Extract("no json here at all"); ok {
		t.Fatalf("expected absence, got %q", got)
	}
	if got, ok := Extract("} reversed {"); ok {
		t.Fatalf("expected absence for reversed braces, got %q", got)
	}
}

func TestExtractUnterminatedFenceFallsThrough(t *testing.T) {
	got, ok := Extract("```json\n{\"a\":1}")
	if !ok || got != `{"a":1}` {
		t.Fatalf("unterminated fence: got %q ok=%v", got, ok)
	}
}
