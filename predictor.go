package ascent

import "math"

const (
	// PredictorStepSize is the coarse step of the forecast model, in seconds.
	PredictorStepSize = 0.5
	// PredictorHorizon bounds how far ahead the forecast looks, in seconds.
	PredictorHorizon = 600.0
)

// PredictionSample is one point of a forecast trajectory.
type PredictionSample struct {
	Time     float64 // s from the snapshot
	Altitude float64 // m
}

// Prediction is a lazy, finite, non-restartable sequence of forecast
// samples. It owns a deep copy of the state it was created from and never
// touches the live state.
type Prediction struct {
	state   SimulationState
	cfg     RocketConfig
	elapsed float64
	done    bool
}

// PredictTrajectory forward-simulates a snapshot of the provided state with
// a reduced vertical-only force model (thrust, drag, constant surface
// gravity) at a coarse fixed step, for display purposes. Call Next until it
// reports no more samples; the sequence ends at the horizon or when the
// forecast reaches the ground.
func PredictTrajectory(s SimulationState, cfg RocketConfig) *Prediction {
	return &Prediction{state: s.Clone(), cfg: cfg}
}

// Next advances the forecast by one coarse step and returns the sample.
// The second return value is false once the sequence is exhausted.
func (p *Prediction) Next() (PredictionSample, bool) {
	if p.done {
		return PredictionSample{}, false
	}
	s := &p.state
	g := p.cfg.Body.Gravity(0)
	mass := TotalMass(*s, p.cfg)

	var thrust float64
	if s.Phase.Powered() && activeFuel(*s) > 0 {
		stage := activeStageConfig(*s, p.cfg)
		thrust = stage.Thrust * math.Max(s.Throttle, minLandingThrottle)
		if s.Phase == Burning {
			thrust = stage.Thrust
		}
		burned := math.Min(stage.BurnRate*PredictorStepSize, activeFuel(*s))
		if s.ActiveStage == 1 {
			s.Stage1Fuel -= burned
		} else {
			s.Stage2Fuel -= burned
		}
	}

	ρ := Atmosphere(s.Altitude).Density
	drag := 0.5 * ρ * s.VerticalVelocity * s.VerticalVelocity *
		p.cfg.DragCoefficient * p.cfg.ReferenceArea * -sign(s.VerticalVelocity)
	accel := (thrust+drag)/mass - g

	s.VerticalVelocity += accel * PredictorStepSize
	s.Altitude += s.VerticalVelocity * PredictorStepSize
	p.elapsed += PredictorStepSize

	if s.Altitude <= 0 {
		s.Altitude = 0
		p.done = true
	}
	if p.elapsed >= PredictorHorizon {
		p.done = true
	}
	return PredictionSample{Time: p.elapsed, Altitude: s.Altitude}, true
}

// Samples drains the remaining sequence into a slice, mostly for transport
// to a display layer.
func (p *Prediction) Samples() []PredictionSample {
	var out []PredictionSample
	for {
		sample, ok := p.Next()
		if !ok {
			return out
		}
		out = append(out, sample)
	}
}
