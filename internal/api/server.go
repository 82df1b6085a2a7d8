package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"buildlens/internal/analysis"
	"buildlens/internal/config"
	"buildlens/internal/models"
	"buildlens/internal/providers"
	"buildlens/internal/speedtest"
	"buildlens/internal/storage"
	"buildlens/internal/workflows"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	enumspb "go.temporal.io/api/enums/v1"
	tclient "go.temporal.io/sdk/client"
)

type Server struct {
	cfg       config.Config
	log       *logrus.Logger
	analyzer  *analysis.Analyzer
	estimator *speedtest.Estimator
	db        *storage.DB
	runRepo   *storage.RunRepo
	temporal  tclient.Client
}

func NewServer(cfg config.Config, log *logrus.Logger) *Server {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	db, err := storage.NewDB(ctx, cfg.PostgresURL)
	if err != nil {
		panic(err)
	}
	if err := db.EnsureSchema(ctx); err != nil {
		panic(err)
	}
	pm, err := providers.NewManager(cfg)
	if err != nil {
		panic(err)
	}
	var llm providers.LLMProvider
	if p, ref, ok := pm.FirstConfiguredLLM(); ok {
		log.WithField("provider", ref.Name).Info("generative provider configured")
		llm = p
	}
	tc, err := tclient.Dial(tclient.Options{HostPort: cfg.TemporalAddress})
	if err != nil {
		panic(err)
	}
	return &Server{
		cfg:       cfg,
		log:       log,
		analyzer:  analysis.NewAnalyzer(llm, log),
		estimator: speedtest.New(cfg.SpeedTestURL, cfg.SpeedTestBytes, log),
		db:        db,
		runRepo:   storage.NewRunRepo(db),
		temporal:  tc,
	}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/analyze/recipe", s.handleAnalyzeRecipe)
	mux.HandleFunc("/analyze/manifest", s.handleAnalyzeManifest)
	mux.HandleFunc("/analyze/compilation", s.handleAnalyzeCompilation)
	mux.HandleFunc("/speedtest", s.handleSpeedTest)
	mux.HandleFunc("/runs", s.handleRuns)
	mux.HandleFunc("/runs/", s.handleRunsScoped)
	return withCORS(mux)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "analyzer": s.analyzer.Available()})
}

// Analysis endpoints always answer 200 with a fully populated result,
// genuine or fallback; degraded analysis is not an HTTP error.

func (s *Server) handleAnalyzeRecipe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	var req struct {
		Recipe string `json:"recipe"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid json: %w", err))
		return
	}
	if strings.TrimSpace(req.Recipe) == "" {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("recipe is required"))
		return
	}
	writeJSON(w, http.StatusOK, s.analyzer.AnalyzeRecipe(r.Context(), req.Recipe))
}

func (s *Server) handleAnalyzeManifest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	var req struct {
		Manifest string `json:"manifest"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid json: %w", err))
		return
	}
	if strings.TrimSpace(req.Manifest) == "" {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("manifest is required"))
		return
	}
	writeJSON(w, http.StatusOK, s.analyzer.AnalyzeManifest(r.Context(), req.Manifest))
}

func (s *Server) handleAnalyzeCompilation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	var req struct {
		Recipe       string                      `json:"recipe"`
		Manifest     string                      `json:"manifest"`
		Capabilities *models.ComputeCapabilities `json:"capabilities"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid json: %w", err))
		return
	}
	if strings.TrimSpace(req.Recipe) == "" || strings.TrimSpace(req.Manifest) == "" {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("recipe and manifest are required"))
		return
	}
	caps := models.DefaultCapabilities()
	if req.Capabilities != nil {
		caps = *req.Capabilities
		if !caps.Valid() {
			writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid capabilities"))
			return
		}
	}
	writeJSON(w, http.StatusOK, s.analyzer.AnalyzeCompilationProfile(r.Context(), req.Recipe, req.Manifest, caps))
}

func (s *Server) handleSpeedTest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	result := s.estimator.MeasureThroughput(r.Context())
	if totalSize := r.URL.Query().Get("total_size"); totalSize != "" {
		if est, ok := speedtest.EstimateDownloadTime(totalSize, result.ThroughputMbps); ok {
			result.EstimatedDownloadTime = est
		}
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("parse multipart: %w", err))
		return
	}

	recipeText, recipeName, err := readFilePart(r.MultipartForm, "recipe", s.cfg.MaxUploadBytes)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	manifestText, manifestName, err := readFilePart(r.MultipartForm, "manifest", s.cfg.MaxUploadBytes)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	caps, err := capabilitiesFromForm(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}

	runID := uuid.NewString()
	if err := s.runRepo.CreateRun(r.Context(), runID, recipeName, manifestName); err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}

	we, err := s.temporal.ExecuteWorkflow(r.Context(), tclient.StartWorkflowOptions{
		ID:                                       "analysis-" + runID,
		TaskQueue:                                s.cfg.TemporalTaskQueue,
		WorkflowIDReusePolicy:                    enumspb.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE,
		WorkflowExecutionErrorWhenAlreadyStarted: true,
	}, workflows.BuildAnalysisWorkflow, workflows.BuildAnalysisInput{
		RunID:        runID,
		RecipeText:   recipeText,
		ManifestText: manifestText,
		Capabilities: caps,
	})
	if err != nil {
		writeErr(w, http.StatusConflict, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{
		"run_id":       runID,
		"workflow_id":  we.GetID(),
		"workflow_run": we.GetRunID(),
	})
}

func (s *Server) handleRunsScoped(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/runs/"), "/"), "/")
	if len(parts) < 1 || parts[0] == "" {
		writeErr(w, http.StatusNotFound, fmt.Errorf("not found"))
		return
	}
	runID := parts[0]

	if len(parts) == 2 && parts[1] == "progress" {
		var prog workflows.BuildAnalysisProgress
		resp, err := s.temporal.QueryWorkflow(r.Context(), "analysis-"+runID, "", workflows.QueryGetProgress)
		if err != nil {
			// No queryable workflow; answer from the stored run status.
			run, dbErr := s.runRepo.GetRun(r.Context(), runID)
			if dbErr != nil {
				writeErr(w, http.StatusNotFound, dbErr)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"run_id": run.RunID, "status": run.Status})
			return
		}
		if err := resp.Get(&prog); err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, prog)
		return
	}

	if len(parts) == 1 {
		report, status, ready, err := s.runRepo.GetReport(r.Context(), runID)
		if err != nil {
			writeErr(w, http.StatusNotFound, err)
			return
		}
		if !ready {
			writeJSON(w, http.StatusOK, map[string]any{"status": status})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"status": status, "report": report})
		return
	}

	writeErr(w, http.StatusNotFound, fmt.Errorf("not found"))
}

func readFilePart(form *multipart.Form, field string, limit int64) (string, string, error) {
	files := form.File[field]
	if len(files) == 0 {
		return "", "", fmt.Errorf("%s file is required", field)
	}
	fh := files[0]
	src, err := fh.Open()
	if err != nil {
		return "", "", fmt.Errorf("open %s upload: %w", field, err)
	}
	defer src.Close()
	b, err := io.ReadAll(io.LimitReader(src, limit))
	if err != nil {
		return "", "", fmt.Errorf("read %s upload: %w", field, err)
	}
	return string(b), fh.Filename, nil
}

func capabilitiesFromForm(r *http.Request) (models.ComputeCapabilities, error) {
	caps := models.DefaultCapabilities()
	if v := r.FormValue("cpu"); v != "" {
		caps.CPU = models.Tier(v)
	}
	if v := r.FormValue("memory"); v != "" {
		caps.Memory = models.Tier(v)
	}
	if v := r.FormValue("architecture"); v != "" {
		caps.Architecture = models.Architecture(v)
	}
	if v := r.FormValue("environment"); v != "" {
		caps.Environment = models.Environment(v)
	}
	if !caps.Valid() {
		return models.ComputeCapabilities{}, fmt.Errorf("invalid capabilities")
	}
	return caps, nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, err error) {
	apiErr := toAPIError(code, err)
	writeJSON(w, code, map[string]any{
		"error": map[string]any{
			"code":    apiErr.Code,
			"message": apiErr.Message,
		},
	})
}

type apiError struct {
	Code    string
	Message string
}

func toAPIError(status int, err error) apiError {
	msg := "Request failed."
	code := "BL-API-4000"
	raw := ""
	if err != nil {
		raw = strings.ToLower(err.Error())
	}

	switch {
	case status >= 500:
		switch {
		case strings.Contains(raw, "relation") && strings.Contains(raw, "does not exist"):
			return apiError{
				Code:    "BL-DB-5001",
				Message: "Database schema is not initialized. Run migrations and retry.",
			}
		case strings.Contains(raw, "connect"), strings.Contains(raw, "dial tcp"), strings.Contains(raw, "connection refused"):
			return apiError{
				Code:    "BL-DB-5002",
				Message: "Database connection is unavailable. Check local services and retry.",
			}
		default:
			return apiError{
				Code:    "BL-API-5000",
				Message: "Internal server error. Please retry or check service logs.",
			}
		}
	case status == http.StatusBadRequest:
		code = "BL-API-4001"
		msg = "Invalid request. Check inputs and retry."
	case status == http.StatusNotFound:
		code = "BL-API-4004"
		msg = "Requested resource was not found."
	case status == http.StatusConflict:
		code = "BL-API-4009"
		msg = "Operation conflicts with current state. Retry after checking status."
	case status == http.StatusMethodNotAllowed:
		code = "BL-API-4005"
		msg = "This endpoint does not support the requested method."
	}

	// For 4xx, keep user-safe validation context only.
	if status >= 400 && status < 500 && err != nil {
		switch {
		case strings.Contains(raw, "recipe file is required"):
			msg = "A recipe file upload is required."
		case strings.Contains(raw, "manifest file is required"):
			msg = "A manifest file upload is required."
		case strings.Contains(raw, "recipe is required"):
			msg = "Recipe text is required."
		case strings.Contains(raw, "manifest is required"):
			msg = "Manifest text is required."
		case strings.Contains(raw, "invalid capabilities"):
			msg = "Capabilities must use the documented tier values."
		case strings.Contains(raw, "invalid json"):
			msg = "Malformed JSON request body."
		}
	}

	return apiError{Code: code, Message: msg}
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
