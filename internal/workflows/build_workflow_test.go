package workflows

import (
	"context"
	"errors"
	"testing"

	"buildlens/internal/activities"
	"buildlens/internal/models"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/testsuite"
)

func registerActivityName[T any](env *testsuite.TestWorkflowEnvironment, name string, fn T) {
	env.RegisterActivityWithOptions(fn, activity.RegisterOptions{Name: name})
}

func registerAllActivities(env *testsuite.TestWorkflowEnvironment) {
	registerActivityName(env, "UpdateRunStatusActivity", func(context.Context, activities.UpdateRunStatusInput) error { return nil })
	registerActivityName(env, "AnalyzeRecipeActivity", func(context.Context, activities.AnalyzeRecipeInput) (activities.AnalyzeRecipeOutput, error) {
		return activities.AnalyzeRecipeOutput{}, nil
	})
	registerActivityName(env, "AnalyzeManifestActivity", func(context.Context, activities.AnalyzeManifestInput) (activities.AnalyzeManifestOutput, error) {
		return activities.AnalyzeManifestOutput{}, nil
	})
	registerActivityName(env, "MeasureThroughputActivity", func(context.Context, activities.MeasureThroughputInput) (activities.MeasureThroughputOutput, error) {
		return activities.MeasureThroughputOutput{}, nil
	})
	registerActivityName(env, "AnalyzeCompilationActivity", func(context.Context, activities.AnalyzeCompilationInput) (activities.AnalyzeCompilationOutput, error) {
		return activities.AnalyzeCompilationOutput{}, nil
	})
	registerActivityName(env, "LogLLMCallActivity", func(context.Context, activities.LogLLMCallInput) error { return nil })
	registerActivityName(env, "SaveReportActivity", func(context.Context, activities.SaveReportInput) error { return nil })
}

func TestBuildAnalysisWorkflowSuccess(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(BuildAnalysisWorkflow)
	registerAllActivities(env)

	env.OnActivity("UpdateRunStatusActivity", mock.Anything, mock.Anything).Return(nil)
	env.OnActivity("AnalyzeRecipeActivity", mock.Anything, mock.Anything).Return(activities.AnalyzeRecipeOutput{
		Steps:        []models.RecipeStep{{Instruction: "FROM python:3.11-slim"}},
		Source:       "model",
		ProviderName: "gemini",
		Model:        "gemini-2.5-flash",
	}, nil)
	env.OnActivity("AnalyzeManifestActivity", mock.Anything, mock.Anything).Return(activities.AnalyzeManifestOutput{
		Result: models.ManifestAnalysisResult{
			Items:     []models.DependencyInfo{{Name: "flask", EstimatedSize: "2.1 MB"}},
			TotalSize: "51.0 MB",
		},
		Source: "model",
	}, nil)
	env.OnActivity("MeasureThroughputActivity", mock.Anything, activities.MeasureThroughputInput{TotalSize: "51.0 MB"}).Return(activities.MeasureThroughputOutput{
		Result: models.SpeedTestResult{ThroughputMbps: 8.0, EstimatedDownloadTime: "51 seconds"},
	}, nil)
	env.OnActivity("AnalyzeCompilationActivity", mock.Anything, mock.Anything).Return(activities.AnalyzeCompilationOutput{
		Result: models.CompilationAnalysisResult{TotalEstimatedTime: "8-12 minutes", Parallelizable: true},
		Source: "fallback",
	}, nil)
	env.OnActivity("LogLLMCallActivity", mock.Anything, mock.Anything).Return(nil)
	env.OnActivity("SaveReportActivity", mock.Anything, mock.MatchedBy(func(in activities.SaveReportInput) bool {
		return in.Report.Manifest.TotalSize == "51.0 MB" &&
			in.Report.SpeedTest.EstimatedDownloadTime == "51 seconds" &&
			in.Report.RecipeSource == "model" &&
			in.Report.CompilationSource == "fallback"
	})).Return(nil)

	env.ExecuteWorkflow(BuildAnalysisWorkflow, BuildAnalysisInput{
		RunID:        "run1",
		RecipeText:   "FROM python:3.11-slim",
		ManifestText: "flask",
		Capabilities: models.DefaultCapabilities(),
	})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var out string
	require.NoError(t, env.GetWorkflowResult(&out))
	require.Equal(t, "completed", out)
}

func TestBuildAnalysisWorkflowActivityFailureSettlesAsFailed(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(BuildAnalysisWorkflow)
	registerAllActivities(env)

	env.OnActivity("UpdateRunStatusActivity", mock.Anything, mock.Anything).Return(nil)
	env.OnActivity("AnalyzeRecipeActivity", mock.Anything, mock.Anything).Return(activities.AnalyzeRecipeOutput{}, errors.New("worker lost"))
	env.OnActivity("AnalyzeManifestActivity", mock.Anything, mock.Anything).Return(activities.AnalyzeManifestOutput{}, nil)
	env.OnActivity("LogLLMCallActivity", mock.Anything, mock.Anything).Return(nil)

	env.ExecuteWorkflow(BuildAnalysisWorkflow, BuildAnalysisInput{
		RunID:        "run2",
		RecipeText:   "FROM scratch",
		ManifestText: "",
		Capabilities: models.DefaultCapabilities(),
	})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var out string
	require.NoError(t, env.GetWorkflowResult(&out))
	require.Equal(t, "failed", out)
}
