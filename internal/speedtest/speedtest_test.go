package speedtest

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestMeasureThroughputFromFetch(t *testing.T) {
	payload := make([]byte, 64<<10)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	e := New(srv.URL, int64(len(payload)), quietLogger())
	got := e.MeasureThroughput(context.Background())
	require.GreaterOrEqual(t, got.ThroughputMbps, 1.0)
	require.Empty(t, got.EstimatedDownloadTime)
}

func TestMeasureThroughputSimulatedOnHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	e := New(srv.URL, 1<<20, quietLogger())
	e.randFloat = func() float64 { return 0.5 }
	got := e.MeasureThroughput(context.Background())
	require.Equal(t, 50.0, got.ThroughputMbps)
}

func TestMeasureThroughputSimulatedRange(t *testing.T) {
	// Unreachable address: connection refused forces the simulated path.
	e := New("http://127.0.0.1:1", 1<<20, quietLogger())
	for _, r := range []float64{0, 0.2, 0.5, 0.7, 0.9, 0.999} {
		e.randFloat = func() float64 { return r }
		got := e.MeasureThroughput(context.Background())
		require.GreaterOrEqual(t, got.ThroughputMbps, 25.0)
		require.Less(t, got.ThroughputMbps, 75.0)
	}
}

func TestEstimateDownloadTimeSeconds(t *testing.T) {
	got, ok := EstimateDownloadTime("51.0 MB", 8.0)
	require.True(t, ok)
	require.Equal(t, "51 seconds", got)
}

func TestEstimateDownloadTimeMinutes(t *testing.T) {
	got, ok := EstimateDownloadTime("120.0 MB", 10.0)
	require.True(t, ok)
	require.Equal(t, "1m 36s", got)
}

func TestEstimateDownloadTimeNoNumericPrefix(t *testing.T) {
	_, ok := EstimateDownloadTime("unknown", 10.0)
	require.False(t, ok)

	_, ok = EstimateDownloadTime("", 10.0)
	require.False(t, ok)

	_, ok = EstimateDownloadTime("approx 50 MB", 10.0)
	require.False(t, ok)
}
