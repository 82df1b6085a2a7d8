package workflows

import "buildlens/internal/models"

type BuildAnalysisInput struct {
	RunID        string                     `json:"run_id"`
	RecipeText   string                     `json:"recipe_text"`
	ManifestText string                     `json:"manifest_text"`
	Capabilities models.ComputeCapabilities `json:"capabilities"`
}

type BuildAnalysisProgress struct {
	RunID string            `json:"run_id"`
	Total int               `json:"total"`
	Done  int               `json:"done"`
	Steps map[string]string `json:"step_status"`
}
