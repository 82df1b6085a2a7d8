package providers

import "testing"

func TestParseProviderList(t *testing.T) {
	refs := ParseProviderList("gemini|openai:backup|mock")
	if len(refs) != 3 {
		t.Fatalf("expected 3 providers got %d", len(refs))
	}
	if refs[1].Name != "openai" || refs[1].KeyAlias != "backup" {
		t.Fatalf("unexpected parse result: %+v", refs[1])
	}
}

func TestParseProviderListEmptyDefaultsToGemini(t *testing.T) {
	refs := ParseProviderList("  ")
	if len(refs) != 1 || refs[0].Name != "gemini" {
		t.Fatalf("unexpected default: %+v", refs)
	}
}

func TestGeminiProviderUnconfigured(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	p := NewGeminiProvider("", "", "")
	if p.Configured() {
		t.Fatalf("expected provider without key to report unconfigured")
	}
}
