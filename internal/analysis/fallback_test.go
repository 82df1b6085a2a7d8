package analysis

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFallbackManifestShape(t *testing.T) {
	got := FallbackManifestAnalysis()
	require.Equal(t, "51.0 MB", got.TotalSize)
	require.Len(t, got.Items, 5)

	names := make([]string, 0, len(got.Items))
	for _, item := range got.Items {
		names = append(names, item.Name)
	}
	require.Equal(t, []string{"flask", "numpy", "pandas", "requests", "sqlalchemy"}, names)
}

func TestFallbackRecipeStepsOrdered(t *testing.T) {
	steps := FallbackRecipeSteps()
	require.NotEmpty(t, steps)
	require.Equal(t, "FROM python:3.11-slim", steps[0].Instruction)
	for _, s := range steps {
		require.NotEmpty(t, s.Description)
		require.NotEmpty(t, s.Impact)
	}
}

func TestFallbackCompilationPopulated(t *testing.T) {
	got := FallbackCompilationAnalysis()
	require.NotEmpty(t, got.TotalEstimatedTime)
	require.NotEmpty(t, got.Bottlenecks)
	require.NotEmpty(t, got.Recommendations)
}
