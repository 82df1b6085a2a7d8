package analysis

import (
	"fmt"

	"buildlens/internal/models"
)

const (
	OpRecipeBreakdown    = "recipe_breakdown"
	OpManifestSizes      = "manifest_sizes"
	OpCompilationProfile = "compilation_profile"
)

const recipePromptTemplate = `You are a container build analyst.
Analyze the following container build recipe instruction by instruction.

Output STRICT JSON: an array with one object per instruction, in the order
the instructions appear in the recipe:
[
  {
    "instruction": "the verbatim instruction line",
    "description": "what this instruction does",
    "impact": "effect on image size, layers or caching",
    "buildTime": "human-readable estimate, e.g. '10-20 seconds'",
    "computeIntensity": "low|medium|high|extreme"
  }
]

Rules:
- One entry per instruction, preserving order.
- Keep descriptions to one or two sentences.
- If the recipe is empty, return [].

Recipe:
%s`

const manifestPromptTemplate = `You are a package dependency analyst.
For each entry of the following dependency manifest, estimate its download
size and describe it briefly.

Output STRICT JSON with this schema:
{
  "items": [
    {
      "name": "package name",
      "estimatedSize": "human-readable size, e.g. '15.8 MB'",
      "description": "one sentence",
      "compilationRequired": false,
      "buildTime": "only when compilationRequired is true"
    }
  ],
  "totalSize": "human-readable combined size, e.g. '51.0 MB'"
}

Rules:
- One entry per manifest line that names a package.
- Mark compilationRequired true for packages that build native extensions.
- If the manifest is empty, return {"items":[],"totalSize":"0 MB"}.

Manifest:
%s`

const compilationPromptTemplate = `You are a build performance analyst.
Given a container build recipe, a dependency manifest and the declared
compute capabilities, estimate total compilation time and identify
bottlenecks.

Compute capabilities:
- CPU tier: %s
- Memory tier: %s
- Architecture: %s
- Execution environment: %s

Output STRICT JSON with this schema:
{
  "totalEstimatedTime": "human-readable estimate, e.g. '8-12 minutes'",
  "bottlenecks": ["ordered list of the slowest steps and why"],
  "recommendations": ["ordered list of concrete speedups"],
  "parallelizable": true
}

Rules:
- Condition every estimate on the declared capabilities.
- Call out architecture-specific costs (e.g. missing arm64 wheels).
- Keep each bottleneck and recommendation to one sentence.

Recipe:
%s

Manifest:
%s`

func BuildRecipePrompt(recipeText string) string {
	return fmt.Sprintf(recipePromptTemplate, recipeText)
}

func BuildManifestPrompt(manifestText string) string {
	return fmt.Sprintf(manifestPromptTemplate, manifestText)
}

func BuildCompilationPrompt(recipeText, manifestText string, caps models.ComputeCapabilities) string {
	return fmt.Sprintf(compilationPromptTemplate,
		caps.CPU, caps.Memory, caps.Architecture, caps.Environment,
		recipeText, manifestText)
}
