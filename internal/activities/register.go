package activities

import "go.temporal.io/sdk/worker"

func Register(w worker.Worker, a *Activities) {
	w.RegisterActivity(a.AnalyzeRecipeActivity)
	w.RegisterActivity(a.AnalyzeManifestActivity)
	w.RegisterActivity(a.AnalyzeCompilationActivity)
	w.RegisterActivity(a.MeasureThroughputActivity)
	w.RegisterActivity(a.LogLLMCallActivity)
	w.RegisterActivity(a.UpdateRunStatusActivity)
	w.RegisterActivity(a.SaveReportActivity)
}
