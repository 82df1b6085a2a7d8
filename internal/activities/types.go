package activities

import "buildlens/internal/models"

type AnalyzeRecipeInput struct {
	RunID      string `json:"run_id"`
	RecipeText string `json:"recipe_text"`
}

type AnalyzeRecipeOutput struct {
	Steps        []models.RecipeStep `json:"steps"`
	Source       string              `json:"source"`
	ProviderName string              `json:"provider_name"`
	Model        string              `json:"model"`
}

type AnalyzeManifestInput struct {
	RunID        string `json:"run_id"`
	ManifestText string `json:"manifest_text"`
}

type AnalyzeManifestOutput struct {
	Result       models.ManifestAnalysisResult `json:"result"`
	Source       string                        `json:"source"`
	ProviderName string                        `json:"provider_name"`
	Model        string                        `json:"model"`
}

type AnalyzeCompilationInput struct {
	RunID        string                     `json:"run_id"`
	RecipeText   string                     `json:"recipe_text"`
	ManifestText string                     `json:"manifest_text"`
	Capabilities models.ComputeCapabilities `json:"capabilities"`
}

type AnalyzeCompilationOutput struct {
	Result       models.CompilationAnalysisResult `json:"result"`
	Source       string                           `json:"source"`
	ProviderName string                           `json:"provider_name"`
	Model        string                           `json:"model"`
}

type MeasureThroughputInput struct {
	// TotalSize is the manifest analysis total, used for the download-time
	// estimate. May be empty or non-numeric; the estimate is then omitted.
	TotalSize string `json:"total_size"`
}

type MeasureThroughputOutput struct {
	Result models.SpeedTestResult `json:"result"`
}

type LogLLMCallInput struct {
	CallID       string `json:"call_id"`
	Operation    string `json:"operation"`
	RunID        string `json:"run_id"`
	ProviderName string `json:"provider_name"`
	Model        string `json:"model"`
	Status       string `json:"status"`
	ErrorType    string `json:"error_type"`
}

type UpdateRunStatusInput struct {
	RunID  string `json:"run_id"`
	Status string `json:"status"`
}

type SaveReportInput struct {
	RunID  string                `json:"run_id"`
	Report models.AnalysisReport `json:"report"`
}
