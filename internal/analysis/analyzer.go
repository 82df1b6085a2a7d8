package analysis

import (
	"context"
	"encoding/json"
	"fmt"

	"buildlens/internal/jsonextract"
	"buildlens/internal/models"
	"buildlens/internal/providers"

	"github.com/sirupsen/logrus"
)

// Source records whether a result came from the remote model or from the
// static fallback dataset, so callers never have to infer degraded mode from
// incidental equality with the fallback values.
type Source string

const (
	SourceModel    Source = "model"
	SourceFallback Source = "fallback"
)

type RecipeAnalysis struct {
	Steps    []models.RecipeStep `json:"steps"`
	Source   Source              `json:"source"`
	Provider string              `json:"provider,omitempty"`
	Model    string              `json:"model,omitempty"`
}

type ManifestAnalysis struct {
	Result   models.ManifestAnalysisResult `json:"result"`
	Source   Source                        `json:"source"`
	Provider string                        `json:"provider,omitempty"`
	Model    string                        `json:"model,omitempty"`
}

type CompilationAnalysis struct {
	Result   models.CompilationAnalysisResult `json:"result"`
	Source   Source                           `json:"source"`
	Provider string                           `json:"provider,omitempty"`
	Model    string                           `json:"model,omitempty"`
}

// Analyzer forwards raw file text into natural-language prompts and parses
// whatever JSON-like text comes back. Every operation degrades to its static
// fallback on any transport, parse or shape failure; no error ever reaches
// the caller.
type Analyzer struct {
	provider providers.LLMProvider
	log      *logrus.Logger
}

// NewAnalyzer wires the remote capability. A nil provider means no
// credential is configured; that is decided once here, warn-logged once, and
// every subsequent operation substitutes its fallback without attempting a
// call.
func NewAnalyzer(provider providers.LLMProvider, log *logrus.Logger) *Analyzer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if provider == nil {
		log.Warn("no generative provider credential configured; all analyses will return fallback datasets")
	}
	return &Analyzer{provider: provider, log: log}
}

// Available reports whether a remote capability is wired.
func (a *Analyzer) Available() bool {
	return a.provider != nil
}

func (a *Analyzer) AnalyzeRecipe(ctx context.Context, recipeText string) RecipeAnalysis {
	if a.provider == nil {
		return RecipeAnalysis{Steps: FallbackRecipeSteps(), Source: SourceFallback}
	}
	resp, info, err := a.provider.Generate(ctx, providers.GenerateRequest{
		Operation: OpRecipeBreakdown,
		Prompt:    BuildRecipePrompt(recipeText),
	})
	if err != nil {
		a.logFailure(OpRecipeBreakdown, info, err)
		return RecipeAnalysis{Steps: FallbackRecipeSteps(), Source: SourceFallback}
	}
	steps, err := parseRecipeSteps(resp.Text)
	if err != nil {
		a.logFailure(OpRecipeBreakdown, info, err)
		return RecipeAnalysis{Steps: FallbackRecipeSteps(), Source: SourceFallback}
	}
	return RecipeAnalysis{Steps: steps, Source: SourceModel, Provider: info.Name, Model: info.Model}
}

func (a *Analyzer) AnalyzeManifest(ctx context.Context, manifestText string) ManifestAnalysis {
	if a.provider == nil {
		return ManifestAnalysis{Result: FallbackManifestAnalysis(), Source: SourceFallback}
	}
	resp, info, err := a.provider.Generate(ctx, providers.GenerateRequest{
		Operation: OpManifestSizes,
		Prompt:    BuildManifestPrompt(manifestText),
	})
	if err != nil {
		a.logFailure(OpManifestSizes, info, err)
		return ManifestAnalysis{Result: FallbackManifestAnalysis(), Source: SourceFallback}
	}
	result, err := parseManifestResult(resp.Text)
	if err != nil {
		a.logFailure(OpManifestSizes, info, err)
		return ManifestAnalysis{Result: FallbackManifestAnalysis(), Source: SourceFallback}
	}
	return ManifestAnalysis{Result: result, Source: SourceModel, Provider: info.Name, Model: info.Model}
}

func (a *Analyzer) AnalyzeCompilationProfile(ctx context.Context, recipeText, manifestText string, caps models.ComputeCapabilities) CompilationAnalysis {
	if a.provider == nil {
		return CompilationAnalysis{Result: FallbackCompilationAnalysis(), Source: SourceFallback}
	}
	resp, info, err := a.provider.Generate(ctx, providers.GenerateRequest{
		Operation: OpCompilationProfile,
		Prompt:    BuildCompilationPrompt(recipeText, manifestText, caps),
	})
	if err != nil {
		a.logFailure(OpCompilationProfile, info, err)
		return CompilationAnalysis{Result: FallbackCompilationAnalysis(), Source: SourceFallback}
	}
	result, err := parseCompilationResult(resp.Text)
	if err != nil {
		a.logFailure(OpCompilationProfile, info, err)
		return CompilationAnalysis{Result: FallbackCompilationAnalysis(), Source: SourceFallback}
	}
	return CompilationAnalysis{Result: result, Source: SourceModel, Provider: info.Name, Model: info.Model}
}

func (a *Analyzer) logFailure(operation string, info providers.ProviderInfo, err error) {
	a.log.WithFields(logrus.Fields{
		"operation":  operation,
		"provider":   info.Name,
		"model":      info.Model,
		"error_type": providers.ClassifyError(err),
	}).WithError(err).Warn("analysis degraded to fallback dataset")
}

// candidates returns the parse attempts in priority order: the extracted
// JSON-shaped substring first, then the raw response when extraction trimmed
// it. A bare top-level array has no outer braces, so the greedy brace span
// cuts it apart; retrying the raw text recovers that case.
func candidates(text string) []string {
	extracted, ok := jsonextract.Extract(text)
	if !ok || extracted == text {
		return []string{text}
	}
	return []string{extracted, text}
}

func parseRecipeSteps(text string) ([]models.RecipeStep, error) {
	for _, c := range candidates(text) {
		var steps []models.RecipeStep
		if err := json.Unmarshal([]byte(c), &steps); err == nil {
			return steps, nil
		}
	}
	return nil, fmt.Errorf("recipe response is not a JSON sequence")
}

func parseManifestResult(text string) (models.ManifestAnalysisResult, error) {
	for _, c := range candidates(text) {
		var payload struct {
			Items     *[]models.DependencyInfo `json:"items"`
			TotalSize *string                  `json:"totalSize"`
		}
		if err := json.Unmarshal([]byte(c), &payload); err != nil {
			continue
		}
		if payload.Items == nil || payload.TotalSize == nil {
			continue
		}
		return models.ManifestAnalysisResult{Items: *payload.Items, TotalSize: *payload.TotalSize}, nil
	}
	return models.ManifestAnalysisResult{}, fmt.Errorf("manifest response is not JSON with items and totalSize")
}

func parseCompilationResult(text string) (models.CompilationAnalysisResult, error) {
	for _, c := range candidates(text) {
		var payload struct {
			TotalEstimatedTime *string  `json:"totalEstimatedTime"`
			Bottlenecks        []string `json:"bottlenecks"`
			Recommendations    []string `json:"recommendations"`
			Parallelizable     bool     `json:"parallelizable"`
		}
		if err := json.Unmarshal([]byte(c), &payload); err != nil {
			continue
		}
		if payload.TotalEstimatedTime == nil {
			continue
		}
		return models.CompilationAnalysisResult{
			TotalEstimatedTime: *payload.TotalEstimatedTime,
			Bottlenecks:        payload.Bottlenecks,
			Recommendations:    payload.Recommendations,
			Parallelizable:     payload.Parallelizable,
		}, nil
	}
	return models.CompilationAnalysisResult{}, fmt.Errorf("compilation response missing totalEstimatedTime")
}
