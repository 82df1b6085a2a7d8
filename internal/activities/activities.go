package activities

import (
	"context"

	"buildlens/internal/analysis"
	"buildlens/internal/config"
	"buildlens/internal/providers"
	"buildlens/internal/speedtest"
	"buildlens/internal/storage"

	"github.com/sirupsen/logrus"
)

type Activities struct {
	cfg       config.Config
	analyzer  *analysis.Analyzer
	estimator *speedtest.Estimator
	runRepo   *storage.RunRepo
	auditRepo *storage.LLMAuditRepo
}

func New(cfg config.Config, db *storage.DB, log *logrus.Logger) (*Activities, error) {
	pm, err := providers.NewManager(cfg)
	if err != nil {
		return nil, err
	}
	var llm providers.LLMProvider
	if p, ref, ok := pm.FirstConfiguredLLM(); ok {
		log.WithField("provider", ref.Name).Info("generative provider configured")
		llm = p
	}
	return &Activities{
		cfg:       cfg,
		analyzer:  analysis.NewAnalyzer(llm, log),
		estimator: speedtest.New(cfg.SpeedTestURL, cfg.SpeedTestBytes, log),
		runRepo:   storage.NewRunRepo(db),
		auditRepo: storage.NewLLMAuditRepo(db),
	}, nil
}

// The three analysis activities never return an error: degradation to the
// static fallback happens inside the Analyzer and is reported via Source.

func (a *Activities) AnalyzeRecipeActivity(ctx context.Context, in AnalyzeRecipeInput) (AnalyzeRecipeOutput, error) {
	res := a.analyzer.AnalyzeRecipe(ctx, in.RecipeText)
	return AnalyzeRecipeOutput{
		Steps:        res.Steps,
		Source:       string(res.Source),
		ProviderName: res.Provider,
		Model:        res.Model,
	}, nil
}

func (a *Activities) AnalyzeManifestActivity(ctx context.Context, in AnalyzeManifestInput) (AnalyzeManifestOutput, error) {
	res := a.analyzer.AnalyzeManifest(ctx, in.ManifestText)
	return AnalyzeManifestOutput{
		Result:       res.Result,
		Source:       string(res.Source),
		ProviderName: res.Provider,
		Model:        res.Model,
	}, nil
}

func (a *Activities) AnalyzeCompilationActivity(ctx context.Context, in AnalyzeCompilationInput) (AnalyzeCompilationOutput, error) {
	res := a.analyzer.AnalyzeCompilationProfile(ctx, in.RecipeText, in.ManifestText, in.Capabilities)
	return AnalyzeCompilationOutput{
		Result:       res.Result,
		Source:       string(res.Source),
		ProviderName: res.Provider,
		Model:        res.Model,
	}, nil
}

func (a *Activities) MeasureThroughputActivity(ctx context.Context, in MeasureThroughputInput) (MeasureThroughputOutput, error) {
	result := a.estimator.MeasureThroughput(ctx)
	if in.TotalSize != "" {
		if est, ok := speedtest.EstimateDownloadTime(in.TotalSize, result.ThroughputMbps); ok {
			result.EstimatedDownloadTime = est
		}
	}
	return MeasureThroughputOutput{Result: result}, nil
}

func (a *Activities) LogLLMCallActivity(ctx context.Context, in LogLLMCallInput) error {
	return a.auditRepo.Insert(ctx, storage.LLMCallRecord{
		CallID:       in.CallID,
		Operation:    in.Operation,
		RunID:        in.RunID,
		ProviderName: in.ProviderName,
		Model:        in.Model,
		Status:       in.Status,
		ErrorType:    in.ErrorType,
	})
}

func (a *Activities) UpdateRunStatusActivity(ctx context.Context, in UpdateRunStatusInput) error {
	return a.runRepo.UpdateRunStatus(ctx, in.RunID, in.Status)
}

func (a *Activities) SaveReportActivity(ctx context.Context, in SaveReportInput) error {
	return a.runRepo.SaveReport(ctx, in.RunID, in.Report)
}
