package ascent

// The stage mass model. Pure functions of state and configuration: stage 1
// carries stage 2 and the payload until separation, after which the tracked
// vehicle is either the upper stage with the payload, or the booster alone
// when the run follows the first stage home.

// TotalMass returns the instantaneous vehicle mass, including remaining
// propellant.
func TotalMass(s SimulationState, cfg RocketConfig) float64 {
	if !s.Separated {
		return cfg.Stage1.DryMass + s.Stage1Fuel + cfg.Stage2.DryMass + s.Stage2Fuel + cfg.PayloadMass
	}
	if s.ActiveStage == 1 {
		return cfg.Stage1.DryMass + s.Stage1Fuel
	}
	return cfg.Stage2.DryMass + s.Stage2Fuel + cfg.PayloadMass
}

// DryMass returns the vehicle mass with no propellant, used for
// thrust-to-weight and recovery checks.
func DryMass(s SimulationState, cfg RocketConfig) float64 {
	if !s.Separated {
		return cfg.Stage1.DryMass + cfg.Stage2.DryMass + cfg.PayloadMass
	}
	if s.ActiveStage == 1 {
		return cfg.Stage1.DryMass
	}
	return cfg.Stage2.DryMass + cfg.PayloadMass
}
