package models

import "time"

// Tier is a user-declared capability level for CPU or memory.
type Tier string

const (
	TierLow     Tier = "low"
	TierMedium  Tier = "medium"
	TierHigh    Tier = "high"
	TierExtreme Tier = "extreme"
)

type Architecture string

const (
	ArchX8664 Architecture = "x86_64"
	ArchARM64 Architecture = "arm64"
	ArchMulti Architecture = "multi"
)

type Environment string

const (
	EnvLocal Environment = "local"
	EnvCICD  Environment = "ci_cd"
	EnvCloud Environment = "cloud"
)

// ComputeCapabilities conditions the compilation-time analysis prompt.
type ComputeCapabilities struct {
	CPU          Tier         `json:"cpu"`
	Memory       Tier         `json:"memory"`
	Architecture Architecture `json:"architecture"`
	Environment  Environment  `json:"environment"`
}

func DefaultCapabilities() ComputeCapabilities {
	return ComputeCapabilities{
		CPU:          TierMedium,
		Memory:       TierMedium,
		Architecture: ArchX8664,
		Environment:  EnvLocal,
	}
}

func (c ComputeCapabilities) Valid() bool {
	return validTier(c.CPU) && validTier(c.Memory) && validArch(c.Architecture) && validEnv(c.Environment)
}

func validTier(t Tier) bool {
	switch t {
	case TierLow, TierMedium, TierHigh, TierExtreme:
		return true
	}
	return false
}

func validArch(a Architecture) bool {
	switch a {
	case ArchX8664, ArchARM64, ArchMulti:
		return true
	}
	return false
}

func validEnv(e Environment) bool {
	switch e {
	case EnvLocal, EnvCICD, EnvCloud:
		return true
	}
	return false
}

// RecipeStep is one analyzed instruction of a container build recipe.
// Ordering mirrors the instruction order of the uploaded recipe.
type RecipeStep struct {
	Instruction      string `json:"instruction"`
	Description      string `json:"description"`
	Impact           string `json:"impact"`
	BuildTime        string `json:"buildTime,omitempty"`
	ComputeIntensity Tier   `json:"computeIntensity,omitempty"`
}

// DependencyInfo is one analyzed entry of a package-dependency manifest.
// Size and time fields are free-form human-readable strings as emitted by
// the model (e.g. "15.8 MB"), not structured quantities.
type DependencyInfo struct {
	Name                string `json:"name"`
	EstimatedSize       string `json:"estimatedSize"`
	Description         string `json:"description"`
	CompilationRequired bool   `json:"compilationRequired,omitempty"`
	BuildTime           string `json:"buildTime,omitempty"`
}

// ManifestAnalysisResult carries per-dependency estimates plus a model- or
// fallback-supplied total. TotalSize is not recomputed from the items; the
// two are allowed to disagree.
type ManifestAnalysisResult struct {
	Items     []DependencyInfo `json:"items"`
	TotalSize string           `json:"totalSize"`
}

type CompilationAnalysisResult struct {
	TotalEstimatedTime string   `json:"totalEstimatedTime"`
	Bottlenecks        []string `json:"bottlenecks"`
	Recommendations    []string `json:"recommendations"`
	Parallelizable     bool     `json:"parallelizable"`
}

// SpeedTestResult is derived fresh on every measurement.
// EstimatedDownloadTime is omitted when the known total size has no
// parseable numeric prefix.
type SpeedTestResult struct {
	ThroughputMbps        float64 `json:"throughputMbps"`
	EstimatedDownloadTime string  `json:"estimatedDownloadTime,omitempty"`
}

// AnalysisRun is the server-side record of one orchestrated full analysis.
type AnalysisRun struct {
	RunID            string    `json:"run_id"`
	RecipeFilename   string    `json:"recipe_filename"`
	ManifestFilename string    `json:"manifest_filename"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// AnalysisReport is the aggregate the display layer consumes. Each pipeline
// writes only its own section.
type AnalysisReport struct {
	RecipeSteps       []RecipeStep              `json:"recipeSteps"`
	RecipeSource      string                    `json:"recipeSource"`
	Manifest          ManifestAnalysisResult    `json:"manifest"`
	ManifestSource    string                    `json:"manifestSource"`
	Compilation       CompilationAnalysisResult `json:"compilation"`
	CompilationSource string                    `json:"compilationSource"`
	SpeedTest         SpeedTestResult           `json:"speedTest"`
	Capabilities      ComputeCapabilities       `json:"capabilities"`
}
