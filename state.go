package ascent

// OrbitalElements is the planar orbital element set derived from a
// position/velocity state vector. Apogee and perigee are altitudes above the
// surface, floored at zero.
type OrbitalElements struct {
	Apogee        float64 // m above surface
	Perigee       float64 // m above surface
	Eccentricity  float64
	SemiMajorAxis float64 // m
	Period        float64 // s
	Inclination   float64 // degrees, heading-derived proxy
	Energy        float64 // J/kg, specific mechanical energy
	Stable        bool
}

// SimulationState is the full physical state of one run. It is a value: the
// integrator never mutates a state in place, it returns a fresh one with
// every field set deliberately.
type SimulationState struct {
	MissionTime float64 // s since ignition command

	// Position and velocity, split into a vertical altitude channel and a
	// horizontal downrange channel.
	Altitude           float64 // m above surface
	Downrange          float64 // m
	VerticalVelocity   float64 // m/s, positive up
	HorizontalVelocity float64 // m/s, positive away from the pad
	Velocity           float64 // m/s, magnitude

	Stage1Fuel  float64 // kg
	Stage2Fuel  float64 // kg
	ActiveStage int     // 1 or 2
	Separated   bool
	Phase       Phase

	Acceleration    float64 // m/s^2, magnitude of the last net acceleration
	GForce          float64
	Mach            float64
	DynamicPressure float64 // Pa
	SkinTemperature float64 // K
	StructuralLoad  float64 // percent of the structural Q limit
	ThrustAngle     float64 // degrees from vertical
	Throttle        float64 // [0, 1]

	DeltaVSpent     float64 // m/s
	DeltaVRemaining float64 // m/s

	Orbit    OrbitalElements
	Orbiting bool // Derived display state, never a phase transition target.

	// Running maxima.
	MaxAltitude        float64
	MaxVelocity        float64
	MaxGForce          float64
	MaxDynamicPressure float64
	MaxTemperature     float64

	// Booster recovery subsystems.
	LegsDeployed      bool
	GridFinsDeployed  bool
	BoostbackComplete bool
	ReentryComplete   bool
	SeparationTime    float64 // s, zero until staging
	LandingAccuracy   float64 // m from the pad at touchdown
	LandingTilt       float64 // degrees at touchdown
	RecoveryPercent   float64 // [0, 100]
}

// NewSimulationState returns the pre-launch state for the given vehicle:
// full tanks, zero velocity, on the pad.
func NewSimulationState(cfg RocketConfig) SimulationState {
	s := SimulationState{
		Stage1Fuel:      cfg.Stage1.PropellantMass,
		Stage2Fuel:      cfg.Stage2.PropellantMass,
		ActiveStage:     1,
		Phase:           PreLaunch,
		SkinTemperature: Atmosphere(0).Temperature,
	}
	s.DeltaVRemaining = remainingDeltaV(s, cfg, seaLevelPressure)
	return s
}

// Clone returns a deep copy. SimulationState is a value type so the copy is
// trivial, but the predictor takes one through this method to make the
// snapshot intent explicit.
func (s SimulationState) Clone() SimulationState {
	return s
}

// Grounded returns whether the vehicle sits on the surface.
func (s SimulationState) Grounded() bool {
	return s.Altitude <= 0
}
