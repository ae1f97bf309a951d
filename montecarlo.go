package ascent

import (
	"fmt"
	"math/rand"

	"github.com/gonum/matrix/mat64"
	"github.com/gonum/stat/distmv"
)

// DispersionConfig drives a Monte Carlo campaign over a nominal vehicle:
// each run perturbs thrust, drag coefficient and stage 1 Isp with a
// multivariate normal dispersion and propagates to a terminal phase.
type DispersionConfig struct {
	Runs          int
	Seed          int64
	ThrustσPct    float64 // 1σ thrust dispersion, fraction of nominal
	DragσPct      float64 // 1σ drag coefficient dispersion, fraction of nominal
	IspσPct       float64 // 1σ Isp dispersion, fraction of nominal
	MaxFlightTime float64 // s, 0 means the default hard limit
}

// DispersionSummary aggregates a campaign.
type DispersionSummary struct {
	Runs            int
	Orbits          int // Runs that reached a stable orbit.
	Landings        int // Runs that ended LANDED.
	Crashes         int
	MeanMaxAltitude float64
	MeanRecovery    float64 // Mean recovery percentage over landed runs.
	WorstAccuracy   float64 // m
}

// RunDispersions executes the campaign. The sampler is seeded, so a given
// seed reproduces the same campaign exactly.
func RunDispersions(nominal RocketConfig, dc DispersionConfig) (DispersionSummary, error) {
	if dc.Runs <= 0 {
		return DispersionSummary{}, fmt.Errorf("dispersion campaign needs at least one run")
	}
	if err := nominal.Validate(); err != nil {
		return DispersionSummary{}, err
	}
	σ := []float64{dc.ThrustσPct, dc.DragσPct, dc.IspσPct}
	cov := mat64.NewSymDense(3, nil)
	for i, s := range σ {
		if s <= 0 {
			s = 1e-6
		}
		cov.SetSym(i, i, s*s)
	}
	src := rand.New(rand.NewSource(dc.Seed))
	normal, ok := distmv.NewNormal([]float64{0, 0, 0}, cov, src)
	if !ok {
		return DispersionSummary{}, fmt.Errorf("dispersion covariance is not positive definite")
	}

	var summary DispersionSummary
	summary.Runs = dc.Runs
	sample := make([]float64, 3)
	for run := 0; run < dc.Runs; run++ {
		normal.Rand(sample)
		cfg := nominal
		cfg.Stage1.Thrust *= 1 + sample[0]
		cfg.Stage2.Thrust *= 1 + sample[0]
		cfg.DragCoefficient *= 1 + sample[1]
		cfg.Stage1.IspSeaLevel *= 1 + sample[2]
		cfg.Stage1.IspVacuum *= 1 + sample[2]
		if err := cfg.Validate(); err != nil {
			// A wild draw made the vehicle unphysical; count it as a loss.
			summary.Crashes++
			continue
		}

		state := NewSimulationState(cfg)
		limit := dc.MaxFlightTime
		if limit <= 0 {
			limit = maxFlightTime
		}
		for !state.Phase.Terminal() && state.MissionTime < limit {
			state = Step(state, cfg, DefaultStepSize)
		}

		summary.MeanMaxAltitude += state.MaxAltitude
		if state.Orbiting {
			summary.Orbits++
		}
		switch state.Phase {
		case Landed:
			summary.Landings++
			summary.MeanRecovery += state.RecoveryPercent
			if state.LandingAccuracy > summary.WorstAccuracy {
				summary.WorstAccuracy = state.LandingAccuracy
			}
		case Crashed:
			summary.Crashes++
		}
	}
	summary.MeanMaxAltitude /= float64(dc.Runs)
	if summary.Landings > 0 {
		summary.MeanRecovery /= float64(summary.Landings)
	}
	return summary, nil
}
