package providers

import (
	"testing"

	"buildlens/internal/config"
)

func TestFirstConfiguredLLMSkipsUnconfigured(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	cfg := config.Config{LLMProviders: "gemini|mock"}
	m, err := NewManager(cfg)
	if err != nil {
		t.Fatal(err)
	}
	p, ref, ok := m.FirstConfiguredLLM()
	if !ok {
		t.Fatal("expected the mock provider to be usable")
	}
	if ref.Name != "mock" {
		t.Fatalf("expected mock, got %q", ref.Name)
	}
	if p == nil || !p.Configured() {
		t.Fatal("returned provider must hold a credential")
	}
}

func TestFirstConfiguredLLMNoneUsable(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	m, err := NewManager(config.Config{LLMProviders: "gemini"})
	if err != nil {
		t.Fatal(err)
	}
	if _, _, ok := m.FirstConfiguredLLM(); ok {
		t.Fatal("no provider holds a key; ok must be false")
	}
}

func TestNewManagerRejectsUnknownProvider(t *testing.T) {
	if _, err := NewManager(config.Config{LLMProviders: "bedrock"}); err == nil {
		t.Fatal("expected error for unsupported provider")
	}
}
