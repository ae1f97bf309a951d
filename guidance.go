package ascent

import "math"

// Landing guidance for the booster: burn triggers, throttle laws and the
// touchdown score. All functions are total; impossible situations come back
// as sentinel values (0, +Inf) rather than errors.

const (
	suicideBurnMargin  = 100.0 // m added to the ideal ignition altitude
	boostbackFloor     = 60e3  // m
	boostbackCeiling   = 80e3  // m
	reentryFloor       = 60e3  // m
	reentryCeiling     = 75e3  // m
	reentryBurnRate    = 500.0 // m/s of descent rate before the reentry burn arms
	landingBurnFloor   = 100.0 // m, below this the landing burn is pointless
	legDeployAltitude  = 1e3   // m
	finDeployAltitude  = 70e3  // m
	lateralDeadband    = 50.0  // m of pad offset tolerated without tilting
	maxLateralTilt     = 10.0  // degrees
	reentryThrottle    = 0.7
	minLandingThrottle = 0.1
	// dragGravityFactor slightly reduces gravity in the impact solver as a
	// crude stand-in for aerodynamic braking.
	dragGravityFactor = 0.9
)

// SuicideBurnAltitude returns the altitude at which the landing burn must
// ignite to null the current descent rate at the surface, plus a fixed
// margin. Because propellant burned during the braking burn lightens the
// vehicle, the burn duration and average mass are refined over three fixed
// passes; more passes do not meaningfully move the answer. Returns 0 when
// the stage cannot decelerate at all.
func SuicideBurnAltitude(s SimulationState, cfg RocketConfig) float64 {
	v := math.Abs(s.VerticalVelocity)
	if v == 0 {
		return suicideBurnMargin
	}
	thrust := cfg.Stage1.Thrust
	g := cfg.Body.Gravity(s.Altitude)
	mass := TotalMass(s, cfg)
	decel := thrust/mass - g
	if decel <= 0 {
		return 0
	}
	for i := 0; i < 3; i++ {
		burnTime := v / decel
		burned := math.Min(cfg.Stage1.BurnRate*burnTime, s.Stage1Fuel)
		avgMass := mass - burned/2
		decel = thrust/avgMass - g
		if decel <= 0 {
			return 0
		}
	}
	return v*v/(2*decel) + suicideBurnMargin
}

// TimeToImpact solves h + v·t - ½·g·t² = 0 for the surface contact time,
// with gravity slightly reduced as drag compensation. Ascending states
// return +Inf, a negative discriminant returns 0.
func TimeToImpact(altitude, verticalVelocity float64, body Body) float64 {
	if verticalVelocity >= 0 {
		return math.Inf(1)
	}
	gEff := body.Gravity(altitude) * dragGravityFactor
	disc := verticalVelocity*verticalVelocity + 2*gEff*altitude
	if disc < 0 {
		return 0
	}
	return (verticalVelocity + math.Sqrt(disc)) / gEff
}

// ShouldBoostback arms the boostback burn: booster only, coasting, inside
// the altitude window, not yet done.
func ShouldBoostback(s SimulationState) bool {
	return s.ActiveStage == 1 && s.Phase == Coasting && !s.BoostbackComplete &&
		s.Altitude >= boostbackFloor && s.Altitude <= boostbackCeiling
}

// ShouldReentryBurn arms the reentry burn: booster only, falling fast inside
// the window, after boostback, not yet done.
func ShouldReentryBurn(s SimulationState) bool {
	return s.ActiveStage == 1 && s.BoostbackComplete && !s.ReentryComplete &&
		s.Altitude >= reentryFloor && s.Altitude <= reentryCeiling &&
		s.VerticalVelocity < -reentryBurnRate
}

// ShouldLandingBurn arms the terminal burn once the vehicle falls to the
// suicide burn altitude.
func ShouldLandingBurn(s SimulationState, cfg RocketConfig) bool {
	if !s.ReentryComplete || s.VerticalVelocity >= 0 || s.Altitude <= landingBurnFloor {
		return false
	}
	return s.Altitude <= SuicideBurnAltitude(s, cfg)
}

// ShouldDeployLegs arms the landing legs below 1 km while still falling.
func ShouldDeployLegs(s SimulationState) bool {
	return !s.LegsDeployed && s.Altitude < legDeployAltitude && s.VerticalVelocity < 0
}

// ShouldDeployGridFins arms the grid fins on the way down, after boostback.
func ShouldDeployGridFins(s SimulationState) bool {
	return !s.GridFinsDeployed && s.BoostbackComplete && s.Altitude < finDeployAltitude &&
		s.VerticalVelocity < 0
}

// Throttle returns the commanded throttle for the current phase. Boostback
// runs flat out, reentry at a fixed partial setting, and the landing burn
// under a PID style law: the error between the descent rate and an altitude
// scaled target feeds the proportional term, the current acceleration damps
// it, and the hover throttle anchors the output as feed forward.
func Throttle(s SimulationState, cfg RocketConfig) float64 {
	switch s.Phase {
	case Boostback:
		return 1.0
	case ReentryBurn:
		return reentryThrottle
	case Landing:
		// Target descent rate shrinks with the remaining altitude, floored
		// so the final meters are walked down, not hovered forever.
		target := math.Max(2.0, s.Altitude/10)
		errRate := -s.VerticalVelocity - target
		hover := TotalMass(s, cfg) * cfg.Body.Gravity(s.Altitude) / cfg.Stage1.Thrust
		throttle := hover + 0.05*errRate - 0.01*s.Acceleration
		return clamp(throttle, minLandingThrottle, 1.0)
	case Burning:
		return 1.0
	}
	return 0
}

// LateralCommand returns the tilt (degrees, signed toward the pad) commanded
// during the landing burn when the horizontal offset from the target exceeds
// the deadband.
func LateralCommand(s SimulationState, cfg RocketConfig) float64 {
	if s.Phase != Landing {
		return 0
	}
	offset := cfg.LandingTarget - s.Downrange
	if math.Abs(offset) <= lateralDeadband {
		return 0
	}
	return clamp(offset/100, -maxLateralTilt, maxLateralTilt)
}

// RecoveryScore grades a touchdown: velocity banded into five tiers, scaled
// down by accuracy and tilt penalties, clamped onto [0, 100].
func RecoveryScore(velocity, accuracy, tilt float64) float64 {
	v := math.Abs(velocity)
	var score float64
	switch {
	case v < 2:
		score = 100
	case v < 5:
		score = 85
	case v < 10:
		score = 60
	case v < 15:
		score = 35
	case v < 20:
		score = 15
	default:
		score = 0
	}
	accuracy = math.Abs(accuracy)
	if accuracy > 100 {
		score *= 0.7
	} else if accuracy > 50 {
		score *= 0.85
	}
	tilt = math.Abs(tilt)
	if tilt > 10 {
		score *= 0.5
	} else if tilt > 5 {
		score *= 0.8
	}
	return clamp(score, 0, 100)
}
