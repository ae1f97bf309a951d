package ascent

import "testing"

// testConfig is a Falcon-9-ish two stage vehicle with a comfortable
// liftoff TWR, shared across the package tests.
func testConfig() RocketConfig {
	return RocketConfig{
		Name: "testbird",
		Stage1: StageConfig{
			PropellantMass: 400000,
			DryMass:        25000,
			Thrust:         7.6e6,
			BurnRate:       2500,
			Propellant:     "RP-1/LOX",
			IspSeaLevel:    282,
			IspVacuum:      311,
			Engines:        9,
		},
		Stage2: StageConfig{
			PropellantMass: 100000,
			DryMass:        4000,
			Thrust:         934e3,
			BurnRate:       287,
			Propellant:     "RP-1/LOX",
			IspSeaLevel:    348,
			IspVacuum:      348,
			Engines:        1,
		},
		PayloadMass:     8000,
		DragCoefficient: 0.5,
		ReferenceArea:   10.0,
		Body:            Earth,
	}
}

// deadConfig has no propellant and no thrust anywhere.
func deadConfig() RocketConfig {
	cfg := testConfig()
	cfg.Stage1.PropellantMass = 0
	cfg.Stage1.Thrust = 0
	cfg.Stage1.BurnRate = 0
	cfg.Stage2.PropellantMass = 0
	cfg.Stage2.Thrust = 0
	cfg.Stage2.BurnRate = 0
	return cfg
}

func assertPanic(t *testing.T, f func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected a panic")
		}
	}()
	f()
}
