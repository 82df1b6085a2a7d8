package providers

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	genai "google.golang.org/genai"
)

// GeminiProvider wraps the official genai client. The client is dialed
// lazily on first Generate so construction never needs a context or network.
type GeminiProvider struct {
	keyName string
	apiKey  string
	model   string

	once    sync.Once
	cli     *genai.Client
	initErr error
}

func NewGeminiProvider(keyName, apiKey, model string) *GeminiProvider {
	if strings.TrimSpace(apiKey) == "" {
		apiKey = resolveGeminiKey(keyName)
	}
	if strings.TrimSpace(model) == "" {
		model = "gemini-2.5-flash"
	}
	return &GeminiProvider{keyName: keyName, apiKey: apiKey, model: model}
}

func (g *GeminiProvider) Configured() bool {
	return g.apiKey != ""
}

func (g *GeminiProvider) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, ProviderInfo, error) {
	info := ProviderInfo{Name: "gemini", Model: g.model, Key: g.keyName}
	if g.apiKey == "" {
		return GenerateResponse{}, info, fmt.Errorf("gemini key missing for alias %q", g.keyName)
	}
	g.once.Do(func() {
		g.cli, g.initErr = genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  g.apiKey,
			Backend: genai.BackendGeminiAPI,
		})
	})
	if g.initErr != nil {
		return GenerateResponse{}, info, fmt.Errorf("gemini client init failed: %w", g.initErr)
	}
	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: req.Prompt}}}},
		nil,
	)
	if err != nil {
		return GenerateResponse{}, info, fmt.Errorf("gemini generate request failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return GenerateResponse{}, info, fmt.Errorf("gemini returned empty candidates")
	}
	return GenerateResponse{Text: resp.Candidates[0].Content.Parts[0].Text}, info, nil
}

func resolveGeminiKey(alias string) string {
	if alias != "" {
		k := os.Getenv("BUILDLENS_GEMINI_KEY_" + strings.ToUpper(alias))
		if k != "" {
			return k
		}
	}
	return os.Getenv("GEMINI_API_KEY")
}
