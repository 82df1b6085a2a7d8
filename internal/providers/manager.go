package providers

import (
	"fmt"
	"strings"

	"buildlens/internal/config"
)

type NamedLLMProvider struct {
	Ref      ProviderRef
	Provider LLMProvider
}

// Manager holds the configured generation providers in list order.
type Manager struct {
	llmProviders []NamedLLMProvider
}

func NewManager(cfg config.Config) (*Manager, error) {
	refs := ParseProviderList(cfg.LLMProviders)
	m := &Manager{}
	for _, ref := range refs {
		p, err := buildProvider(ref, cfg)
		if err != nil {
			return nil, err
		}
		m.llmProviders = append(m.llmProviders, NamedLLMProvider{Ref: ref, Provider: p})
	}
	return m, nil
}

// FirstConfiguredLLM returns the first provider in list order holding a
// credential. ok is false when no provider is usable; callers treat that as
// a permanent capability-unavailable condition rather than retrying per call.
func (m *Manager) FirstConfiguredLLM() (LLMProvider, ProviderRef, bool) {
	for i := range m.llmProviders {
		if m.llmProviders[i].Provider.Configured() {
			return m.llmProviders[i].Provider, m.llmProviders[i].Ref, true
		}
	}
	return nil, ProviderRef{}, false
}

func buildProvider(ref ProviderRef, cfg config.Config) (LLMProvider, error) {
	switch strings.ToLower(ref.Name) {
	case "mock":
		return NewMockProvider(), nil
	case "gemini":
		key := ""
		if ref.KeyAlias == "" {
			key = cfg.GeminiAPIKey
		}
		return NewGeminiProvider(ref.KeyAlias, key, cfg.GeminiModel), nil
	case "openai":
		return NewOpenAIProvider(ref.KeyAlias), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", ref.Name)
	}
}
