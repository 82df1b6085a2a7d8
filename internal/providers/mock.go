package providers

import (
	"context"
	"strings"
)

// MockProvider returns deterministic canned responses per operation for
// offline development and tests. Responses deliberately vary in framing
// (fenced block, prose-wrapped JSON) to exercise the extraction path the
// way a real model would.
type MockProvider struct{}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (m *MockProvider) Configured() bool { return true }

func (m *MockProvider) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, ProviderInfo, error) {
	_ = ctx
	info := ProviderInfo{Name: "mock", Model: "mock-llm-v1", Key: "mock"}
	op := strings.ToLower(req.Operation)
	switch {
	case strings.Contains(op, "recipe"):
		return GenerateResponse{Text: "```json\n" +
			`[{"instruction":"FROM golang:1.24-alpine","description":"Start from the Alpine Go toolchain image.","impact":"Small base layer, fast pulls.","buildTime":"5-10 seconds","computeIntensity":"low"},` + "\n" +
			`{"instruction":"RUN go build ./...","description":"Compile every package in the module.","impact":"CPU-bound; dominates build time.","buildTime":"1-2 minutes","computeIntensity":"high"}]` +
			"\n```"}, info, nil
	case strings.Contains(op, "manifest"):
		return GenerateResponse{Text: "Here is the analysis you asked for:\n" +
			`{"items":[{"name":"flask","estimatedSize":"2.1 MB","description":"Lightweight WSGI web framework."},` +
			`{"name":"numpy","estimatedSize":"15.8 MB","description":"N-dimensional array computing.","compilationRequired":true,"buildTime":"2-4 minutes"}],"totalSize":"17.9 MB"}`}, info, nil
	case strings.Contains(op, "compilation"):
		return GenerateResponse{Text: `{"totalEstimatedTime":"6-9 minutes","bottlenecks":["numpy builds C extensions from source"],"recommendations":["Prefer prebuilt wheels"],"parallelizable":true}`}, info, nil
	}
	return GenerateResponse{Text: "{}"}, info, nil
}
