package ascent

// Phase defines an enum of flight phases.
type Phase uint8

const (
	// PreLaunch is the initial phase, on the pad with full tanks.
	PreLaunch Phase = iota + 1
	// Burning means the active stage is producing thrust.
	Burning
	// Staging is the dwell between first stage burnout and second stage ignition.
	Staging
	// Coasting is unpowered flight above the sensible atmosphere.
	Coasting
	// Boostback is the booster burn reversing downrange velocity.
	Boostback
	// ReentryBurn is the booster burn shielding the vehicle through reentry.
	ReentryBurn
	// Descent is unpowered falling flight.
	Descent
	// Landing is the terminal suicide burn.
	Landing
	// Landed is terminal: touchdown at a survivable velocity.
	Landed
	// Crashed is terminal: ground contact above the survivable velocity.
	Crashed
)

func (p Phase) String() string {
	switch p {
	case PreLaunch:
		return "pre-launch"
	case Burning:
		return "burning"
	case Staging:
		return "staging"
	case Coasting:
		return "coasting"
	case Boostback:
		return "boostback"
	case ReentryBurn:
		return "reentry-burn"
	case Descent:
		return "descent"
	case Landing:
		return "landing"
	case Landed:
		return "landed"
	case Crashed:
		return "crashed"
	}
	panic("cannot stringify unknown phase")
}

// Terminal returns whether this phase ends the run. Once terminal, the
// integrator no longer updates kinematics.
func (p Phase) Terminal() bool {
	return p == Landed || p == Crashed
}

// Powered returns whether the vehicle consumes propellant in this phase.
func (p Phase) Powered() bool {
	switch p {
	case Burning, Boostback, ReentryBurn, Landing:
		return true
	}
	return false
}

// phaseTransitions is the closed transition table of the flight state
// machine. Any transition absent from this table is illegal. ORBITING is a
// derived display state, not a phase, so it never appears here.
var phaseTransitions = map[Phase][]Phase{
	PreLaunch:   {Burning, Landed},
	Burning:     {Staging, Coasting, Landed, Crashed},
	Staging:     {Burning, Coasting, Landed, Crashed},
	Coasting:    {Boostback, ReentryBurn, Descent, Landed, Crashed},
	Boostback:   {Coasting, Crashed},
	ReentryBurn: {Descent, Crashed},
	Descent:     {Landing, Landed, Crashed},
	Landing:     {Landed, Crashed},
	Landed:      {},
	Crashed:     {},
}

// CanTransition returns whether the phase machine allows p → to.
func (p Phase) CanTransition(to Phase) bool {
	for _, next := range phaseTransitions[p] {
		if next == to {
			return true
		}
	}
	return false
}

// transition moves to the requested phase, panicking on an illegal request.
// The integrator is the only caller and only requests table entries, so a
// panic here is a programming error, not a flight condition.
func transition(from, to Phase) Phase {
	if !from.CanTransition(to) {
		panic("illegal phase transition: " + from.String() + " -> " + to.String())
	}
	return to
}
