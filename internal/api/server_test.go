package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"buildlens/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formRequest(values url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/runs", strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func TestCapabilitiesFromFormDefaults(t *testing.T) {
	caps, err := capabilitiesFromForm(formRequest(url.Values{}))
	require.NoError(t, err)
	assert.Equal(t, models.DefaultCapabilities(), caps)
}

func TestCapabilitiesFromFormOverrides(t *testing.T) {
	caps, err := capabilitiesFromForm(formRequest(url.Values{
		"cpu":          {"high"},
		"memory":       {"extreme"},
		"architecture": {"arm64"},
		"environment":  {"ci_cd"},
	}))
	require.NoError(t, err)
	assert.Equal(t, models.TierHigh, caps.CPU)
	assert.Equal(t, models.TierExtreme, caps.Memory)
	assert.Equal(t, models.ArchARM64, caps.Architecture)
	assert.Equal(t, models.EnvCICD, caps.Environment)
}

func TestCapabilitiesFromFormRejectsUnknownTier(t *testing.T) {
	_, err := capabilitiesFromForm(formRequest(url.Values{"cpu": {"gigantic"}}))
	require.Error(t, err)
}

func TestToAPIErrorHidesInternals(t *testing.T) {
	apiErr := toAPIError(http.StatusInternalServerError, fmt.Errorf(`ERROR: relation "analysis_runs" does not exist (SQLSTATE 42P01)`))
	assert.Equal(t, "BL-DB-5001", apiErr.Code)
	assert.NotContains(t, apiErr.Message, "SQLSTATE")

	apiErr = toAPIError(http.StatusInternalServerError, fmt.Errorf("dial tcp [::1]:5432: connection refused"))
	assert.Equal(t, "BL-DB-5002", apiErr.Code)

	apiErr = toAPIError(http.StatusBadRequest, fmt.Errorf("manifest file is required"))
	assert.Equal(t, "BL-API-4001", apiErr.Code)
	assert.Equal(t, "A manifest file upload is required.", apiErr.Message)
}

func TestWithCORSPreflight(t *testing.T) {
	h := withCORS(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/analyze/recipe", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
