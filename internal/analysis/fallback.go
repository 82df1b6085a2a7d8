package analysis

import "buildlens/internal/models"

// Static substitute results, returned whenever genuine analysis cannot be
// obtained or validated. They describe a small Python web service and are
// representative demonstration data, never derived from the uploaded input.

func FallbackRecipeSteps() []models.RecipeStep {
	return []models.RecipeStep{
		{
			Instruction:      "FROM python:3.11-slim",
			Description:      "Starts from the slim Python 3.11 base image.",
			Impact:           "Keeps the base layer around 45 MB instead of the full image's 380 MB.",
			BuildTime:        "10-30 seconds",
			ComputeIntensity: models.TierLow,
		},
		{
			Instruction:      "WORKDIR /app",
			Description:      "Sets the working directory for subsequent instructions.",
			Impact:           "No size impact; creates a single metadata layer.",
			BuildTime:        "under 1 second",
			ComputeIntensity: models.TierLow,
		},
		{
			Instruction:      "COPY requirements.txt .",
			Description:      "Copies only the dependency manifest before the application code.",
			Impact:           "Lets the dependency install layer stay cached while code changes.",
			BuildTime:        "under 1 second",
			ComputeIntensity: models.TierLow,
		},
		{
			Instruction:      "RUN pip install -r requirements.txt",
			Description:      "Installs all declared Python dependencies.",
			Impact:           "Largest layer of the image; dominated by compiled packages.",
			BuildTime:        "2-6 minutes",
			ComputeIntensity: models.TierHigh,
		},
		{
			Instruction:      "COPY . .",
			Description:      "Copies the application source into the image.",
			Impact:           "Small layer that invalidates on every code change.",
			BuildTime:        "1-5 seconds",
			ComputeIntensity: models.TierLow,
		},
		{
			Instruction:      "EXPOSE 8000",
			Description:      "Documents the port the service listens on.",
			Impact:           "Metadata only; no runtime effect.",
			BuildTime:        "under 1 second",
			ComputeIntensity: models.TierLow,
		},
		{
			Instruction:      `CMD ["gunicorn", "app:app", "--bind", "0.0.0.0:8000"]`,
			Description:      "Runs the service under gunicorn at container start.",
			Impact:           "Metadata only; defines the default process.",
			BuildTime:        "under 1 second",
			ComputeIntensity: models.TierLow,
		},
	}
}

func FallbackManifestAnalysis() models.ManifestAnalysisResult {
	return models.ManifestAnalysisResult{
		Items: []models.DependencyInfo{
			{
				Name:          "flask",
				EstimatedSize: "2.1 MB",
				Description:   "Lightweight WSGI web application framework.",
			},
			{
				Name:                "numpy",
				EstimatedSize:       "15.8 MB",
				Description:         "Fundamental package for N-dimensional array computing.",
				CompilationRequired: true,
				BuildTime:           "2-4 minutes",
			},
			{
				Name:                "pandas",
				EstimatedSize:       "21.5 MB",
				Description:         "Data analysis library built on labeled tabular structures.",
				CompilationRequired: true,
				BuildTime:           "3-5 minutes",
			},
			{
				Name:          "requests",
				EstimatedSize: "1.5 MB",
				Description:   "HTTP client library with a simple high-level API.",
			},
			{
				Name:          "sqlalchemy",
				EstimatedSize: "7.8 MB",
				Description:   "SQL toolkit and object-relational mapper.",
			},
		},
		TotalSize: "51.0 MB",
	}
}

func FallbackCompilationAnalysis() models.CompilationAnalysisResult {
	return models.CompilationAnalysisResult{
		TotalEstimatedTime: "8-12 minutes",
		Bottlenecks: []string{
			"numpy compiles C extensions from source when no matching wheel exists",
			"pandas Cython modules dominate the remaining install time",
			"single pip process installs packages sequentially by default",
		},
		Recommendations: []string{
			"Prefer prebuilt wheels by pinning versions with published binaries",
			"Mount a pip cache between builds to skip repeated downloads",
			"On arm64 hosts verify wheel availability before building from source",
		},
		Parallelizable: true,
	}
}
