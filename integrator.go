package ascent

import "math"

const (
	// DefaultStepSize is the live tick of the integrator, in seconds.
	DefaultStepSize = 0.05
	// stagingDwell is how long the vehicle dwells between first stage
	// burnout and the next phase.
	stagingDwell = 2.0 // s
	// separationImpulse is the velocity bump imparted by the pushers at
	// stage separation.
	separationImpulse = 2.0 // m/s
	// startupGrace suppresses ground contact handling right after ignition.
	startupGrace = 1.0 // s
	// survivableTouchdown splits LANDED from CRASHED.
	survivableTouchdown = 10.0 // m/s
	// maxPitchSlew bounds the gravity turn steering rate, degrees per tick.
	maxPitchSlew = 0.5
	// structuralQLimit is the dynamic pressure the airframe is rated for.
	structuralQLimit = 80e3 // Pa
	// skinHeatLag is the sea level thermal time constant of the skin.
	skinHeatLag = 5.0 // s
)

// gravityTurnPitch is the target pitch angle (degrees from vertical) of the
// ascent schedule: vertical below 1 km, 45° by 10 km, easing to a 70°
// ceiling by 40 km. The breakpoints are tuned constants, not physical law.
func gravityTurnPitch(altitude float64) float64 {
	switch {
	case altitude < 1e3:
		return 0
	case altitude < 10e3:
		return 45 * (altitude - 1e3) / 9e3
	case altitude < 40e3:
		return 45 + 25*(altitude-10e3)/30e3
	default:
		return 70
	}
}

// Step advances the state by one fixed timestep. It is a pure function: the
// input state is never mutated, and every field of the returned state is set
// deliberately. dt is expected to be DefaultStepSize but any positive value
// works.
func Step(s SimulationState, cfg RocketConfig, dt float64) SimulationState {
	n := s
	n.MissionTime = s.MissionTime + dt
	if s.Phase.Terminal() {
		// Terminal states freeze kinematics; only the clock moves.
		return n
	}

	n = advancePhase(n, cfg)

	mass := TotalMass(n, cfg)
	atm := Atmosphere(n.Altitude)
	g := cfg.Body.Gravity(n.Altitude)

	// Attitude: the ascent steers toward the gravity turn schedule, the
	// landing burn holds the commanded pad-correction tilt. Other phases
	// keep their last attitude.
	switch n.Phase {
	case Burning:
		target := gravityTurnPitch(n.Altitude)
		n.ThrustAngle += clamp(target-n.ThrustAngle, -maxPitchSlew, maxPitchSlew)
	case Landing:
		n.ThrustAngle = LateralCommand(n, cfg)
	}

	throttle := Throttle(n, cfg)
	thrustV, thrustH, burnRate := resolveThrust(n, cfg)
	if !n.Phase.Powered() || activeFuel(n) <= 0 {
		thrustV, thrustH, burnRate, throttle = 0, 0, 0, 0
	}

	// Propellant and Δv bookkeeping (rocket equation increment).
	if burnRate > 0 {
		burned := math.Min(burnRate*throttle*dt, activeFuel(n))
		if n.ActiveStage == 1 {
			n.Stage1Fuel -= burned
		} else {
			n.Stage2Fuel -= burned
		}
		n.DeltaVSpent += norm(thrustH, thrustV) * throttle * dt / mass
	}

	// Drag opposes the velocity vector.
	speed := norm(n.HorizontalVelocity, n.VerticalVelocity)
	q := 0.5 * atm.Density * speed * speed
	dragMag := q * cfg.DragCoefficient * cfg.ReferenceArea
	uH, uV := unit(n.HorizontalVelocity, n.VerticalVelocity)
	dragH, dragV := -dragMag*uH, -dragMag*uV

	accelH := (thrustH*throttle + dragH) / mass
	accelV := (thrustV*throttle+dragV)/mass - g

	// Semi-implicit Euler: velocity first, then position with the updated
	// velocity, which keeps the energy drift bounded over long runs.
	n.VerticalVelocity += accelV * dt
	n.HorizontalVelocity += accelH * dt
	n.Altitude += n.VerticalVelocity * dt
	n.Downrange += n.HorizontalVelocity * dt
	n.Velocity = norm(n.HorizontalVelocity, n.VerticalVelocity)
	n.Acceleration = norm(accelH, accelV)
	n.GForce = n.Acceleration / g0
	n.Throttle = throttle

	n.Mach = n.Velocity / atm.SpeedOfSound()
	n.DynamicPressure = q
	n.StructuralLoad = q / structuralQLimit * 100
	n = updateSkinTemperature(n, atm, throttle, dt)

	n.DeltaVRemaining = remainingDeltaV(n, cfg, atm.Pressure)
	n = updateOrbit(n, cfg)
	n = resolveGroundContact(n, cfg)
	n = updateRecoverySystems(n, cfg)

	n.MaxAltitude = math.Max(n.MaxAltitude, n.Altitude)
	n.MaxVelocity = math.Max(n.MaxVelocity, n.Velocity)
	n.MaxGForce = math.Max(n.MaxGForce, n.GForce)
	n.MaxDynamicPressure = math.Max(n.MaxDynamicPressure, n.DynamicPressure)
	n.MaxTemperature = math.Max(n.MaxTemperature, n.SkinTemperature)
	return n
}

// advancePhase runs the discrete part of the state machine ahead of the
// force resolution, so that this tick's forces match this tick's phase.
func advancePhase(n SimulationState, cfg RocketConfig) SimulationState {
	switch n.Phase {
	case PreLaunch:
		if cfg.Stage1.Thrust > 0 && n.Stage1Fuel > 0 {
			n.Phase = transition(n.Phase, Burning)
		}
	case Burning:
		if n.ActiveStage == 1 && n.Stage1Fuel <= cfg.Stage1.PropellantMass*cfg.Stage1.LandingReserve {
			n.Phase = transition(n.Phase, Staging)
			n.SeparationTime = n.MissionTime
			n.Separated = true
			if !cfg.RecoverStage1 {
				n.ActiveStage = 2
			} else {
				// The booster nulls its ascent pitch for the flip; the
				// gravity turn angle means nothing to the descent.
				n.ThrustAngle = 0
			}
			// Separation pushers along the velocity vector; straight up
			// when there is no velocity to speak of.
			uH, uV := unit(n.HorizontalVelocity, n.VerticalVelocity)
			if uH == 0 && uV == 0 {
				uV = 1
			}
			n.HorizontalVelocity += separationImpulse * uH
			n.VerticalVelocity += separationImpulse * uV
		} else if n.ActiveStage == 2 && n.Stage2Fuel <= 0 {
			n.Phase = transition(n.Phase, Coasting)
		}
	case Staging:
		if n.MissionTime-n.SeparationTime >= stagingDwell {
			if !cfg.RecoverStage1 && cfg.Stage2.Thrust > 0 && n.Stage2Fuel > 0 {
				n.Phase = transition(n.Phase, Burning)
			} else {
				n.Phase = transition(n.Phase, Coasting)
			}
		}
	case Coasting:
		if ShouldBoostback(n) {
			n.Phase = transition(n.Phase, Boostback)
		} else if ShouldReentryBurn(n) {
			n.Phase = transition(n.Phase, ReentryBurn)
		} else if n.VerticalVelocity < 0 && n.Altitude > 0 {
			if cfg.RecoverStage1 && n.ActiveStage == 1 && !n.ReentryComplete && n.Altitude >= reentryFloor {
				// Hold: the reentry burn window is still ahead.
			} else {
				n.Phase = transition(n.Phase, Descent)
			}
		}
	case Boostback:
		// Boostback is done once the downrange rate is reversed, or the
		// tanks run dry trying.
		if n.HorizontalVelocity <= 0 || n.Stage1Fuel <= 0 {
			n.BoostbackComplete = true
			n.Phase = transition(n.Phase, Coasting)
		}
	case ReentryBurn:
		if n.VerticalVelocity > -reentryBurnRate/2 || n.Stage1Fuel <= 0 || n.Altitude < reentryFloor {
			n.ReentryComplete = true
			n.Phase = transition(n.Phase, Descent)
		}
	case Descent:
		if ShouldLandingBurn(n, cfg) {
			n.Phase = transition(n.Phase, Landing)
		}
	}
	return n
}

// resolveThrust returns the vertical and horizontal thrust components and
// the propellant flow for the current phase, before throttling.
func resolveThrust(n SimulationState, cfg RocketConfig) (thrustV, thrustH, burnRate float64) {
	stage := activeStageConfig(n, cfg)
	switch n.Phase {
	case Burning:
		angle := Deg2rad(n.ThrustAngle)
		return stage.Thrust * math.Cos(angle), stage.Thrust * math.Sin(angle), stage.BurnRate
	case Boostback:
		// Kill the downrange rate: thrust horizontally against it, or
		// toward the pad when practically stopped.
		dir := -sign(n.HorizontalVelocity)
		if math.Abs(n.HorizontalVelocity) < 1 {
			dir = sign(cfg.LandingTarget - n.Downrange)
		}
		return 0, cfg.Stage1.Thrust * dir, cfg.Stage1.BurnRate
	case ReentryBurn:
		// Retrograde.
		uH, uV := unit(n.HorizontalVelocity, n.VerticalVelocity)
		return -cfg.Stage1.Thrust * uV, -cfg.Stage1.Thrust * uH, cfg.Stage1.BurnRate
	case Landing:
		tilt := Deg2rad(n.ThrustAngle)
		return cfg.Stage1.Thrust * math.Cos(tilt), cfg.Stage1.Thrust * math.Sin(tilt), cfg.Stage1.BurnRate
	}
	return 0, 0, 0
}

func activeStageConfig(n SimulationState, cfg RocketConfig) StageConfig {
	if n.ActiveStage == 1 {
		return cfg.Stage1
	}
	return cfg.Stage2
}

func activeFuel(n SimulationState) float64 {
	if n.ActiveStage == 1 {
		return n.Stage1Fuel
	}
	return n.Stage2Fuel
}

// updateSkinTemperature relaxes the skin toward the recovery temperature
// (ambient scaled by Mach², plus engine soak while burning) through a first
// order lag whose rate scales with the density ratio: thick air equalizes
// fast, vacuum barely at all.
func updateSkinTemperature(n SimulationState, atm AtmosphereSample, throttle, dt float64) SimulationState {
	target := atm.Temperature * (1 + 0.2*n.Mach*n.Mach)
	if throttle > 0 {
		target += 800 * throttle
	}
	ratio := atm.Density / seaLevelDensity
	α := clamp(dt*ratio/skinHeatLag, 0, 1)
	n.SkinTemperature += (target - n.SkinTemperature) * α
	return n
}

// remainingDeltaV applies the rocket equation Δv = Isp·g0·ln(m0/m1) to the
// unspent propellant of the current stage, plus the full potential of
// stage 2 while it is still attached. The booster's Isp is blended by the
// local backpressure; stage 2 always burns in vacuum. Degenerate masses
// return zero rather than failing.
func remainingDeltaV(s SimulationState, cfg RocketConfig, pressure float64) float64 {
	Δv := stageDeltaV(cfg.Stage2.IspVacuum,
		cfg.Stage2.DryMass+s.Stage2Fuel+cfg.PayloadMass, s.Stage2Fuel)
	if s.Separated && s.ActiveStage == 2 {
		return Δv
	}
	if s.ActiveStage == 1 {
		m0 := TotalMass(s, cfg)
		s1 := stageDeltaV(cfg.Stage1.Isp(pressure), m0, s.Stage1Fuel)
		if s.Separated {
			return s1 // Booster flying alone.
		}
		return s1 + Δv
	}
	return Δv
}

func stageDeltaV(isp, m0, fuel float64) float64 {
	m1 := m0 - fuel
	if m0 <= 0 || m1 <= 0 || fuel <= 0 || isp <= 0 {
		return 0
	}
	return isp * g0 * math.Log(m0/m1)
}

// updateOrbit refreshes the orbital elements opportunistically: only in
// actual flight with a non-degenerate velocity vector, since the element
// math is undefined on zero vectors.
func updateOrbit(n SimulationState, cfg RocketConfig) SimulationState {
	if n.Altitude <= 0 || n.Velocity < 1e-6 {
		n.Orbit = OrbitalElements{}
		n.Orbiting = false
		return n
	}
	rx, ry := n.Downrange, cfg.Body.Radius+n.Altitude
	n.Orbit = ElementsFromRV(rx, ry, n.HorizontalVelocity, n.VerticalVelocity, cfg.Body)
	n.Orbiting = n.Orbit.Stable
	return n
}

// resolveGroundContact clamps the state onto the surface and decides the
// terminal phase once past the startup grace period.
func resolveGroundContact(n SimulationState, cfg RocketConfig) SimulationState {
	if n.Altitude > 0 {
		return n
	}
	n.Altitude = 0
	impact := norm(n.HorizontalVelocity, n.VerticalVelocity)
	if n.VerticalVelocity < 0 || n.Phase == PreLaunch || n.MissionTime > startupGrace {
		n.VerticalVelocity = 0
		n.HorizontalVelocity = 0
		n.Velocity = 0
	}
	if n.MissionTime <= startupGrace || n.Phase.Terminal() {
		return n
	}
	n.LandingAccuracy = math.Abs(cfg.LandingTarget - n.Downrange)
	n.LandingTilt = math.Abs(n.ThrustAngle)
	if impact <= survivableTouchdown {
		n.Phase = transition(n.Phase, Landed)
	} else {
		n.Phase = transition(n.Phase, Crashed)
	}
	n.RecoveryPercent = RecoveryScore(impact, n.LandingAccuracy, n.LandingTilt)
	n.VerticalVelocity = 0
	n.HorizontalVelocity = 0
	n.Velocity = 0
	n.Throttle = 0
	return n
}

// updateRecoverySystems deploys legs and grid fins per the guidance triggers.
func updateRecoverySystems(n SimulationState, cfg RocketConfig) SimulationState {
	if n.ActiveStage != 1 || !cfg.RecoverStage1 {
		return n
	}
	if ShouldDeployGridFins(n) {
		n.GridFinsDeployed = true
	}
	if ShouldDeployLegs(n) {
		n.LegsDeployed = true
	}
	return n
}
