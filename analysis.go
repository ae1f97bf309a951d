package ascent

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-kit/kit/log"
)

// FallbackAnalysis is returned whenever the remote analysis service cannot
// be reached. Analysis failures are never fatal to a run.
const FallbackAnalysis = "Mission analysis is unavailable right now. Review the flight statistics and telemetry export for details."

// MissionStats is the final summary of a run, handed to the analysis
// collaborator and to telemetry consumers.
type MissionStats struct {
	Vehicle            string  `json:"vehicle"`
	FlightTime         float64 `json:"flightTime"`
	FinalPhase         string  `json:"finalPhase"`
	MaxAltitude        float64 `json:"maxAltitude"`
	MaxVelocity        float64 `json:"maxVelocity"`
	MaxGForce          float64 `json:"maxGForce"`
	MaxDynamicPressure float64 `json:"maxDynamicPressure"`
	MaxTemperature     float64 `json:"maxTemperature"`
	DeltaVSpent        float64 `json:"deltaVSpent"`
	DeltaVRemaining    float64 `json:"deltaVRemaining"`
	OrbitAchieved      bool    `json:"orbitAchieved"`
	Apogee             float64 `json:"apogee"`
	Perigee            float64 `json:"perigee"`
	LandingAccuracy    float64 `json:"landingAccuracy"`
	RecoveryPercent    float64 `json:"recoveryPercent"`
}

// Analyzer turns final mission statistics into a human readable debrief. It
// is an opaque text service: implementations return a string, never an
// error, substituting a fallback on failure.
type Analyzer interface {
	Analyze(ctx context.Context, stats MissionStats) string
}

// HTTPAnalyzer posts the statistics as JSON to a remote text generation
// service and returns its plain text response.
type HTTPAnalyzer struct {
	URL    string
	Client *http.Client
	Logger log.Logger
}

// NewHTTPAnalyzer returns an analyzer with a sane request timeout.
func NewHTTPAnalyzer(url string, logger log.Logger) *HTTPAnalyzer {
	return &HTTPAnalyzer{
		URL:    url,
		Client: &http.Client{Timeout: 15 * time.Second},
		Logger: logger,
	}
}

// Analyze implements the Analyzer interface. Any failure, malformed reply or
// non-200 status degrades to the fixed fallback string.
func (a *HTTPAnalyzer) Analyze(ctx context.Context, stats MissionStats) string {
	body, err := json.Marshal(stats)
	if err != nil {
		return FallbackAnalysis
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.URL, bytes.NewReader(body))
	if err != nil {
		return FallbackAnalysis
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := a.Client.Do(req)
	if err != nil {
		a.Logger.Log("level", "warning", "subsys", "analysis", "err", err)
		return FallbackAnalysis
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		a.Logger.Log("level", "warning", "subsys", "analysis", "status", resp.StatusCode)
		return FallbackAnalysis
	}
	text, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil || len(text) == 0 {
		return FallbackAnalysis
	}
	return string(text)
}

// StaticAnalyzer always returns the same text. Useful offline and in tests.
type StaticAnalyzer struct {
	Text string
}

// Analyze implements the Analyzer interface.
func (a StaticAnalyzer) Analyze(context.Context, MissionStats) string {
	if a.Text == "" {
		return FallbackAnalysis
	}
	return a.Text
}
