package ascent

import (
	"math"
	"testing"

	"github.com/gonum/floats"
)

func TestStepIsPure(t *testing.T) {
	cfg := testConfig()
	s := NewSimulationState(cfg)
	before := s
	Step(s, cfg, DefaultStepSize)
	if s != before {
		t.Fatal("Step mutated its input state")
	}
}

func TestLiftoffClimbs(t *testing.T) {
	cfg := testConfig()
	s := NewSimulationState(cfg)
	s = Step(s, cfg, DefaultStepSize)
	if s.Phase != Burning {
		t.Fatalf("ignition should leave the pad burning, got %s", s.Phase)
	}
	prevAlt := s.Altitude
	for i := 0; i < 5000; i++ {
		s = Step(s, cfg, DefaultStepSize)
		if s.Phase != Burning {
			break
		}
		if s.Altitude <= prevAlt {
			t.Fatalf("altitude stalled at t=%.2f: %f m", s.MissionTime, s.Altitude)
		}
		prevAlt = s.Altitude
	}
	if s.Phase != Staging {
		t.Fatalf("the climb should end at stage 1 burnout, got %s", s.Phase)
	}
	if s.MaxAltitude < 1e3 {
		t.Fatalf("vehicle barely left the pad: max altitude %f m", s.MaxAltitude)
	}
}

func TestUnderpoweredVehicleStaysDown(t *testing.T) {
	cfg := testConfig()
	cfg.Stage1.Thrust = 4e6 // TWR well under 1 for a 537 t stack.
	s := NewSimulationState(cfg)
	for i := 0; i < 100; i++ {
		s = Step(s, cfg, DefaultStepSize)
		if s.Altitude != 0 {
			t.Fatalf("underpowered vehicle left the ground: %f m at t=%.2f", s.Altitude, s.MissionTime)
		}
		if s.VerticalVelocity > 0 {
			t.Fatalf("underpowered vehicle gained upward velocity: %f m/s", s.VerticalVelocity)
		}
	}
	for !s.Phase.Terminal() && s.MissionTime < 30 {
		s = Step(s, cfg, DefaultStepSize)
	}
	if s.Phase != Landed {
		t.Fatalf("a vehicle that never lifts should settle as landed, got %s", s.Phase)
	}
}

func TestNoPropellantNeverIgnites(t *testing.T) {
	cfg := deadConfig()
	s := NewSimulationState(cfg)
	for i := 0; i < 60; i++ {
		s = Step(s, cfg, DefaultStepSize)
	}
	if s.Phase != Landed {
		t.Fatalf("an empty vehicle should end landed on the pad, got %s", s.Phase)
	}
	if s.Altitude != 0 || s.Velocity != 0 {
		t.Fatalf("an empty vehicle must not move: alt %f, vel %f", s.Altitude, s.Velocity)
	}
}

func TestStagingHappensOnce(t *testing.T) {
	cfg := testConfig()
	s := NewSimulationState(cfg)
	stagings := 0
	prev := s.Phase
	for i := 0; i < 200000 && !s.Phase.Terminal(); i++ {
		s = Step(s, cfg, DefaultStepSize)
		if s.Phase == Staging && prev != Staging {
			stagings++
		}
		prev = s.Phase
		if stagings > 0 && s.ActiveStage == 2 && s.Stage2Fuel <= 0 {
			break
		}
	}
	if stagings != 1 {
		t.Fatalf("expected exactly one staging event, got %d", stagings)
	}
	if !s.Separated {
		t.Fatal("separation flag never latched")
	}
}

func TestFuelNeverIncreases(t *testing.T) {
	cfg := testConfig()
	s := NewSimulationState(cfg)
	f1, f2 := s.Stage1Fuel, s.Stage2Fuel
	for i := 0; i < 50000 && !s.Phase.Terminal(); i++ {
		s = Step(s, cfg, DefaultStepSize)
		if s.Stage1Fuel > f1 || s.Stage2Fuel > f2 {
			t.Fatalf("propellant increased at t=%.2f", s.MissionTime)
		}
		if s.Stage1Fuel < 0 || s.Stage2Fuel < 0 {
			t.Fatalf("propellant went negative at t=%.2f", s.MissionTime)
		}
		f1, f2 = s.Stage1Fuel, s.Stage2Fuel
	}
}

func TestTerminalStateFreezes(t *testing.T) {
	cfg := deadConfig()
	s := NewSimulationState(cfg)
	for i := 0; i < 60; i++ {
		s = Step(s, cfg, DefaultStepSize)
	}
	if !s.Phase.Terminal() {
		t.Fatalf("expected a terminal phase, got %s", s.Phase)
	}
	frozen := s
	s = Step(s, cfg, DefaultStepSize)
	if s.Phase != frozen.Phase || s.Altitude != frozen.Altitude || s.Velocity != frozen.Velocity {
		t.Fatal("terminal state kinematics changed")
	}
	if s.MissionTime <= frozen.MissionTime {
		t.Fatal("the clock must keep running after touchdown")
	}
}

func TestDeltaVBookkeeping(t *testing.T) {
	cfg := testConfig()
	s := NewSimulationState(cfg)
	initial := s.DeltaVRemaining
	for i := 0; i < 2000; i++ {
		s = Step(s, cfg, DefaultStepSize)
	}
	if s.DeltaVSpent <= 0 {
		t.Fatalf("a burning vehicle spends Δv, got %f", s.DeltaVSpent)
	}
	if s.DeltaVRemaining >= initial {
		t.Fatalf("remaining Δv should shrink: %f ≥ %f", s.DeltaVRemaining, initial)
	}
}

func TestGentleTouchdownScoresFull(t *testing.T) {
	cfg := testConfig()
	cfg.RecoverStage1 = true
	cfg.LandingTarget = 0
	s := NewSimulationState(cfg)
	s.MissionTime = 400
	s.Phase = Landing
	s.Altitude = 0.05
	s.VerticalVelocity = -1.5
	s.Stage1Fuel = 20e3
	s.Separated = true
	s.BoostbackComplete = true
	s.ReentryComplete = true
	s.LegsDeployed = true
	s.GridFinsDeployed = true
	s.ThrustAngle = 65 // Stale ascent attitude; must not taint the score.
	s = Step(s, cfg, DefaultStepSize)
	if s.Phase != Landed {
		t.Fatalf("a 1.5 m/s arrival at 5 cm should touch down, got %s", s.Phase)
	}
	if s.LandingTilt > 1 {
		t.Fatalf("touchdown tilt must be the commanded attitude, got %f deg", s.LandingTilt)
	}
	if s.RecoveryPercent != 100 {
		t.Fatalf("a slow, centered, upright touchdown scores 100, got %f", s.RecoveryPercent)
	}
}

func TestSeparationResetsBoosterAttitude(t *testing.T) {
	cfg := testConfig()
	cfg.RecoverStage1 = true
	cfg.Stage1.LandingReserve = 0.1
	s := NewSimulationState(cfg)
	s.Phase = Burning
	s.MissionTime = 120
	s.Altitude = 60e3
	s.VerticalVelocity = 800
	s.HorizontalVelocity = 1200
	s.ThrustAngle = 60
	s.Stage1Fuel = cfg.Stage1.PropellantMass * cfg.Stage1.LandingReserve
	s = Step(s, cfg, DefaultStepSize)
	if s.Phase != Staging || !s.Separated {
		t.Fatalf("reserve-level fuel should stage, got %s", s.Phase)
	}
	if s.ThrustAngle != 0 {
		t.Fatalf("the recovered booster must drop its ascent pitch, got %f", s.ThrustAngle)
	}
}

func TestRemainingDeltaVTracksBackpressure(t *testing.T) {
	cfg := testConfig()
	s := NewSimulationState(cfg)
	pad := remainingDeltaV(s, cfg, seaLevelPressure)
	vac := remainingDeltaV(s, cfg, 0)
	if vac <= pad {
		t.Fatalf("vacuum Isp must buy more Δv than sea level: %f vs %f", vac, pad)
	}
	// On the pad the booster term uses the sea level Isp exactly.
	m0 := TotalMass(s, cfg)
	expS1 := cfg.Stage1.IspSeaLevel * g0 * math.Log(m0/(m0-s.Stage1Fuel))
	m0 = cfg.Stage2.DryMass + s.Stage2Fuel + cfg.PayloadMass
	expS2 := cfg.Stage2.IspVacuum * g0 * math.Log(m0/(m0-s.Stage2Fuel))
	if !floats.EqualWithinAbs(pad, expS1+expS2, 1e-6) {
		t.Fatalf("pad Δv budget %f, expected %f", pad, expS1+expS2)
	}
}

func TestGravityTurnSchedule(t *testing.T) {
	if p := gravityTurnPitch(500); p != 0 {
		t.Fatalf("vertical below 1 km, got %f", p)
	}
	if p := gravityTurnPitch(10e3); !floats.EqualWithinAbs(p, 45, 1e-9) {
		t.Fatalf("45 degrees at 10 km, got %f", p)
	}
	if p := gravityTurnPitch(100e3); p != 70 {
		t.Fatalf("70 degree ceiling, got %f", p)
	}
	prev := -1.0
	for alt := 0.0; alt <= 50e3; alt += 500 {
		p := gravityTurnPitch(alt)
		if p < prev {
			t.Fatalf("pitch schedule not monotonic at %f m", alt)
		}
		prev = p
	}
}

func TestSkinTemperatureStaysFinite(t *testing.T) {
	cfg := testConfig()
	s := NewSimulationState(cfg)
	for i := 0; i < 20000 && !s.Phase.Terminal(); i++ {
		s = Step(s, cfg, DefaultStepSize)
		if math.IsNaN(s.SkinTemperature) || s.SkinTemperature < 0 {
			t.Fatalf("skin temperature invalid at t=%.2f: %f", s.MissionTime, s.SkinTemperature)
		}
	}
	if s.MaxTemperature <= 0 {
		t.Fatalf("a powered ascent heats the skin, got max %f", s.MaxTemperature)
	}
}
