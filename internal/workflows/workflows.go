package workflows

import (
	"time"

	"buildlens/internal/activities"
	"buildlens/internal/analysis"
	"buildlens/internal/models"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

const QueryGetProgress = "GetProgress"

const (
	stepRecipe      = "recipe"
	stepManifest    = "manifest"
	stepSpeedTest   = "speedtest"
	stepCompilation = "compilation"
)

// BuildAnalysisWorkflow orchestrates one full analysis of an uploaded recipe
// and manifest. The recipe and manifest analyses run concurrently; the speed
// test follows the manifest (its total size feeds the download estimate);
// the compute-aware compilation analysis runs last. Analysis activities
// degrade internally instead of erroring, so they run with a single attempt.
func BuildAnalysisWorkflow(ctx workflow.Context, input BuildAnalysisInput) (string, error) {
	progress := BuildAnalysisProgress{
		RunID: input.RunID,
		Total: 4,
		Steps: map[string]string{
			stepRecipe:      "pending",
			stepManifest:    "pending",
			stepSpeedTest:   "pending",
			stepCompilation: "pending",
		},
	}
	if err := workflow.SetQueryHandler(ctx, QueryGetProgress, func() (BuildAnalysisProgress, error) {
		return progress, nil
	}); err != nil {
		return "", err
	}

	storeOpts := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2,
			MaximumInterval:    20 * time.Second,
			MaximumAttempts:    3,
		},
	}
	// One attempt: the remote model is invoked exactly once per operation,
	// and a failed invocation already settles as fallback.
	analyzeOpts := workflow.ActivityOptions{
		StartToCloseTimeout: 2 * time.Minute,
		RetryPolicy:         &temporal.RetryPolicy{MaximumAttempts: 1},
	}
	storeCtx := workflow.WithActivityOptions(ctx, storeOpts)
	analyzeCtx := workflow.WithActivityOptions(ctx, analyzeOpts)

	if err := workflow.ExecuteActivity(storeCtx, "UpdateRunStatusActivity", activities.UpdateRunStatusInput{
		RunID:  input.RunID,
		Status: "running",
	}).Get(ctx, nil); err != nil {
		return "", err
	}

	report := models.AnalysisReport{Capabilities: input.Capabilities}

	progress.Steps[stepRecipe] = "running"
	progress.Steps[stepManifest] = "running"
	recipeFuture := workflow.ExecuteActivity(analyzeCtx, "AnalyzeRecipeActivity", activities.AnalyzeRecipeInput{
		RunID:      input.RunID,
		RecipeText: input.RecipeText,
	})
	manifestFuture := workflow.ExecuteActivity(analyzeCtx, "AnalyzeManifestActivity", activities.AnalyzeManifestInput{
		RunID:        input.RunID,
		ManifestText: input.ManifestText,
	})

	var recipeOut activities.AnalyzeRecipeOutput
	if err := recipeFuture.Get(ctx, &recipeOut); err != nil {
		return failRun(storeCtx, ctx, input.RunID, &progress, stepRecipe, err)
	}
	report.RecipeSteps = recipeOut.Steps
	report.RecipeSource = recipeOut.Source
	progress.Steps[stepRecipe] = "done"
	progress.Done++
	auditCall(storeCtx, ctx, input.RunID, analysis.OpRecipeBreakdown, recipeOut.ProviderName, recipeOut.Model, recipeOut.Source)

	var manifestOut activities.AnalyzeManifestOutput
	if err := manifestFuture.Get(ctx, &manifestOut); err != nil {
		return failRun(storeCtx, ctx, input.RunID, &progress, stepManifest, err)
	}
	report.Manifest = manifestOut.Result
	report.ManifestSource = manifestOut.Source
	progress.Steps[stepManifest] = "done"
	progress.Done++
	auditCall(storeCtx, ctx, input.RunID, analysis.OpManifestSizes, manifestOut.ProviderName, manifestOut.Model, manifestOut.Source)

	progress.Steps[stepSpeedTest] = "running"
	var speedOut activities.MeasureThroughputOutput
	if err := workflow.ExecuteActivity(analyzeCtx, "MeasureThroughputActivity", activities.MeasureThroughputInput{
		TotalSize: manifestOut.Result.TotalSize,
	}).Get(ctx, &speedOut); err != nil {
		return failRun(storeCtx, ctx, input.RunID, &progress, stepSpeedTest, err)
	}
	report.SpeedTest = speedOut.Result
	progress.Steps[stepSpeedTest] = "done"
	progress.Done++

	progress.Steps[stepCompilation] = "running"
	var compOut activities.AnalyzeCompilationOutput
	if err := workflow.ExecuteActivity(analyzeCtx, "AnalyzeCompilationActivity", activities.AnalyzeCompilationInput{
		RunID:        input.RunID,
		RecipeText:   input.RecipeText,
		ManifestText: input.ManifestText,
		Capabilities: input.Capabilities,
	}).Get(ctx, &compOut); err != nil {
		return failRun(storeCtx, ctx, input.RunID, &progress, stepCompilation, err)
	}
	report.Compilation = compOut.Result
	report.CompilationSource = compOut.Source
	progress.Steps[stepCompilation] = "done"
	progress.Done++
	auditCall(storeCtx, ctx, input.RunID, analysis.OpCompilationProfile, compOut.ProviderName, compOut.Model, compOut.Source)

	if err := workflow.ExecuteActivity(storeCtx, "SaveReportActivity", activities.SaveReportInput{
		RunID:  input.RunID,
		Report: report,
	}).Get(ctx, nil); err != nil {
		return failRun(storeCtx, ctx, input.RunID, &progress, "save", err)
	}
	if err := workflow.ExecuteActivity(storeCtx, "UpdateRunStatusActivity", activities.UpdateRunStatusInput{
		RunID:  input.RunID,
		Status: "completed",
	}).Get(ctx, nil); err != nil {
		return "", err
	}
	return "completed", nil
}

func auditCall(storeCtx workflow.Context, ctx workflow.Context, runID, operation, provider, model, status string) {
	_ = workflow.ExecuteActivity(storeCtx, "LogLLMCallActivity", activities.LogLLMCallInput{
		Operation:    operation,
		RunID:        runID,
		ProviderName: provider,
		Model:        model,
		Status:       status,
	}).Get(ctx, nil)
}

func failRun(storeCtx workflow.Context, ctx workflow.Context, runID string, progress *BuildAnalysisProgress, step string, _ error) (string, error) {
	progress.Steps[step] = "failed"
	_ = workflow.ExecuteActivity(storeCtx, "UpdateRunStatusActivity", activities.UpdateRunStatusInput{
		RunID:  runID,
		Status: "failed",
	}).Get(ctx, nil)
	return "failed", nil
}
