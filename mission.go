package ascent

import (
	"fmt"
	"math"
	"os"
	"sync"
	"time"

	"github.com/go-kit/kit/log"
)

/* Drives the flight dynamics propagation. */

const (
	// maxFlightTime is a hard kill limit on a runaway propagation.
	maxFlightTime = 4 * 3600.0 // s
	// predictionCadence is how many live ticks pass between forecasts.
	predictionCadence = 100
	// statusCadence is how much mission time passes between status log lines.
	statusCadence = 30.0 // s
)

// Mission owns a run: the configuration, the single live state, and the
// collaborators fed from it each tick. The core never retains the state
// between ticks; it flows through Step and comes back replaced wholesale.
type Mission struct {
	Config RocketConfig
	State  SimulationState
	Step   float64 // s

	logger     log.Logger
	sink       EventSink
	histChan   chan SimulationState
	wg         sync.WaitGroup
	prediction []PredictionSample
	ticks      uint64
	telemetry  bool
	lastStatus float64
}

// NewMission returns a mission on the pad with the default step size. A nil
// sink discards events; a useless export config writes no file.
func NewMission(cfg RocketConfig, sink EventSink, conf ExportConfig) *Mission {
	if sink == nil {
		sink = NopSink{}
	}
	m := &Mission{
		Config: cfg,
		State:  NewSimulationState(cfg),
		Step:   DefaultStepSize,
		logger: log.NewLogfmtLogger(log.NewSyncWriter(os.Stdout)),
		sink:   sink,
	}
	if !conf.IsUseless() {
		m.histChan = make(chan SimulationState, 1000) // a 1k entry buffer
		m.wg.Add(1)
		// The channel is captured as an argument: the goroutine must not
		// read m.histChan, which Close nils out from the caller's side.
		go func(states <-chan SimulationState) {
			defer m.wg.Done()
			if err := StreamStates(conf, states); err != nil {
				m.logger.Log("level", "error", "subsys", "export", "err", err)
			}
		}(m.histChan)
		m.histChan <- m.State
	}
	return m
}

// SetLogger replaces the mission logger.
func (m *Mission) SetLogger(l log.Logger) {
	m.logger = l
}

// EnableTelemetry turns on per-tick prometheus gauge updates.
func (m *Mission) EnableTelemetry() {
	m.telemetry = true
}

// LogStatus logs the state of the flight.
func (m *Mission) LogStatus() {
	m.logger.Log("level", "info", "subsys", "astro",
		"t", fmt.Sprintf("%.2f", m.State.MissionTime),
		"phase", m.State.Phase,
		"alt(m)", fmt.Sprintf("%.0f", m.State.Altitude),
		"vel(m/s)", fmt.Sprintf("%.1f", m.State.Velocity),
		"fuel1(kg)", fmt.Sprintf("%.0f", m.State.Stage1Fuel),
		"fuel2(kg)", fmt.Sprintf("%.0f", m.State.Stage2Fuel),
		"Δv(m/s)", fmt.Sprintf("%.0f", m.State.DeltaVSpent))
}

// Tick advances the mission by one fixed step, fans the new state out to the
// event sink, telemetry, exporter and (on its coarser cadence) the
// trajectory predictor, and returns the new state.
func (m *Mission) Tick() SimulationState {
	prev := m.State
	next := Step(prev, m.Config, m.Step)
	m.State = next
	m.ticks++

	for _, e := range phaseEvents(prev, next) {
		m.sink.Publish(e)
	}
	if m.telemetry {
		PublishTelemetry(next, m.Config)
	}
	if m.histChan != nil {
		select {
		case m.histChan <- next:
		default: // Never block the tick loop on a slow writer.
		}
	}
	if m.ticks%predictionCadence == 0 && !next.Phase.Terminal() {
		m.prediction = PredictTrajectory(next, m.Config).Samples()
	}
	if next.MissionTime-m.lastStatus >= statusCadence {
		m.lastStatus = next.MissionTime
		m.LogStatus()
	}
	return next
}

// Prediction returns the most recent forecast, or nil before the first one.
func (m *Mission) Prediction() []PredictionSample {
	return m.prediction
}

// Run propagates until a terminal phase or the hard time limit, then closes
// the export stream and returns the final statistics. Pausing a mission is
// simply withholding Tick calls, so Run is only a convenience for
// non-interactive drivers.
func (m *Mission) Run() MissionStats {
	m.LogStatus()
	for !m.State.Phase.Terminal() && m.State.MissionTime < maxFlightTime {
		m.Tick()
		if m.State.MissionTime >= maxFlightTime {
			m.logger.Log("level", "critical", "subsys", "astro", "status", "killed")
		}
	}
	m.Close()
	stats := m.Stats()
	m.logger.Log("level", "notice", "subsys", "astro", "status", "finished",
		"duration", fmt.Sprintf("%s", time.Duration(m.State.MissionTime*float64(time.Second))),
		"phase", m.State.Phase,
		"Δv(m/s)", fmt.Sprintf("%.0f", stats.DeltaVSpent),
		"maxAlt(m)", fmt.Sprintf("%.0f", stats.MaxAltitude))
	m.LogStatus()
	return stats
}

// Close flushes and closes the export stream. Safe to call once.
func (m *Mission) Close() {
	if m.histChan != nil {
		close(m.histChan)
	}
	m.wg.Wait() // Don't return until the export file is fully written.
	m.histChan = nil
}

// Stats summarizes the run so far.
func (m *Mission) Stats() MissionStats {
	s := m.State
	stats := MissionStats{
		Vehicle:            m.Config.Name,
		FlightTime:         s.MissionTime,
		FinalPhase:         s.Phase.String(),
		MaxAltitude:        s.MaxAltitude,
		MaxVelocity:        s.MaxVelocity,
		MaxGForce:          s.MaxGForce,
		MaxDynamicPressure: s.MaxDynamicPressure,
		MaxTemperature:     s.MaxTemperature,
		DeltaVSpent:        s.DeltaVSpent,
		DeltaVRemaining:    s.DeltaVRemaining,
		OrbitAchieved:      s.Orbiting,
		Apogee:             s.Orbit.Apogee,
		Perigee:            s.Orbit.Perigee,
		LandingAccuracy:    s.LandingAccuracy,
		RecoveryPercent:    s.RecoveryPercent,
	}
	if math.IsNaN(stats.MaxTemperature) {
		stats.MaxTemperature = 0
	}
	return stats
}
