package providers

import "context"

type ProviderInfo struct {
	Name  string `json:"name"`
	Model string `json:"model"`
	Key   string `json:"key"`
}

type GenerateRequest struct {
	Operation string `json:"operation"`
	Prompt    string `json:"prompt"`
}

type GenerateResponse struct {
	Text string `json:"text"`
}

// LLMProvider is the single remote capability this service depends on:
// generate text from an opaque instruction string. Configured reports
// whether a credential is present; callers check it once at wiring time and
// treat false as a permanent capability-unavailable condition.
type LLMProvider interface {
	Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, ProviderInfo, error)
	Configured() bool
}
