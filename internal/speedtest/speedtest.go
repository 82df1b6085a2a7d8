// Package speedtest derives a throughput figure from a single timed fetch of
// a fixed-size resource, and independently estimates download time for a
// previously known total size.
package speedtest

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/rand"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"buildlens/internal/models"

	"github.com/sirupsen/logrus"
)

const minThroughputMbps = 1.0

type Estimator struct {
	client       *http.Client
	url          string
	payloadBytes int64
	randFloat    func() float64
	log          *logrus.Logger
}

// New builds an estimator against a fixed-size resource of payloadBytes
// (nominally 1 MiB).
func New(url string, payloadBytes int64, log *logrus.Logger) *Estimator {
	if payloadBytes <= 0 {
		payloadBytes = 1 << 20
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Estimator{
		client:       &http.Client{Timeout: 30 * time.Second},
		url:          url,
		payloadBytes: payloadBytes,
		randFloat:    rand.Float64,
		log:          log,
	}
}

// MeasureThroughput times one cache-bypassing fetch and converts elapsed
// seconds to megabits per second, floored at 1 and rounded to one decimal.
// When the fetch fails for any reason the result is a uniformly random value
// in [25, 75) — a simulated placeholder, not a measurement.
func (e *Estimator) MeasureThroughput(ctx context.Context) models.SpeedTestResult {
	mbps, err := e.timedFetch(ctx)
	if err != nil {
		e.log.WithError(err).Warn("speed test fetch failed; substituting simulated throughput")
		// Clamp after rounding: a draw near 1.0 rounds to 75.0, which
		// sits outside the half-open simulated range.
		return models.SpeedTestResult{ThroughputMbps: math.Min(roundOne(25+e.randFloat()*50), 74.9)}
	}
	return models.SpeedTestResult{ThroughputMbps: roundOne(mbps)}
}

func (e *Estimator) timedFetch(ctx context.Context) (float64, error) {
	// Cache buster plus no-cache header so intermediaries cannot answer
	// from cache and shortcut the timing.
	sep := "?"
	if strings.Contains(e.url, "?") {
		sep = "&"
	}
	url := fmt.Sprintf("%s%st=%d", e.url, sep, time.Now().UnixNano())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Cache-Control", "no-cache")

	start := time.Now()
	resp, err := e.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("speed test resource returned status %d", resp.StatusCode)
	}
	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		return 0, err
	}
	elapsed := time.Since(start).Seconds()

	sizeMB := float64(e.payloadBytes) / (1 << 20)
	mbps := (sizeMB / elapsed) * 8
	if mbps < minThroughputMbps {
		mbps = minThroughputMbps
	}
	return mbps, nil
}

var leadingNumber = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?`)

// EstimateDownloadTime renders how long totalSize would take at mbps.
// totalSize is a free-form human-readable string such as "51.0 MB"; only its
// leading numeric prefix is used. ok is false when no numeric prefix exists,
// in which case no estimate should be shown at all.
func EstimateDownloadTime(totalSize string, mbps float64) (string, bool) {
	if mbps <= 0 {
		return "", false
	}
	match := leadingNumber.FindString(strings.TrimSpace(totalSize))
	if match == "" {
		return "", false
	}
	sizeMB, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return "", false
	}
	seconds := int(math.Round(sizeMB * 8 / mbps))
	if seconds < 60 {
		return fmt.Sprintf("%d seconds", seconds), true
	}
	return fmt.Sprintf("%dm %ds", seconds/60, seconds%60), true
}

func roundOne(v float64) float64 {
	return math.Round(v*10) / 10
}
