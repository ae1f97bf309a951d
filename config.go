package ascent

import (
	"fmt"

	"github.com/spf13/viper"
)

// StageConfig defines one stage of the launch vehicle. It is immutable for
// the duration of a run.
type StageConfig struct {
	PropellantMass float64 // kg
	DryMass        float64 // kg
	Thrust         float64 // N, total across all engines
	BurnRate       float64 // kg/s, total across all engines
	Propellant     string  // e.g. "RP-1/LOX", "CH4/LOX"
	IspSeaLevel    float64 // s
	IspVacuum      float64 // s
	Engines        int
	LandingReserve float64 // Fraction of propellant withheld for recovery burns.
}

// RocketConfig defines the full vehicle. Supplied once per run and read-only
// once the run starts.
type RocketConfig struct {
	Name            string
	Stage1          StageConfig
	Stage2          StageConfig
	PayloadMass     float64 // kg
	DragCoefficient float64
	ReferenceArea   float64 // m^2
	LandingTarget   float64 // Downrange offset of the landing pad in m.
	RecoverStage1   bool    // Track the booster after separation instead of the upper stage.
	Body            Body
}

// Validate checks the physical sanity of the configuration.
func (c RocketConfig) Validate() error {
	for i, s := range []StageConfig{c.Stage1, c.Stage2} {
		if s.PropellantMass < 0 || s.DryMass < 0 {
			return fmt.Errorf("stage %d: masses must be non-negative", i+1)
		}
		if s.Thrust < 0 {
			return fmt.Errorf("stage %d: thrust must be non-negative", i+1)
		}
		if s.Thrust > 0 && s.BurnRate <= 0 {
			return fmt.Errorf("stage %d: burn rate must be positive when thrust is positive", i+1)
		}
		if s.LandingReserve < 0 || s.LandingReserve >= 1 {
			return fmt.Errorf("stage %d: landing reserve must be in [0, 1)", i+1)
		}
	}
	if c.PayloadMass < 0 {
		return fmt.Errorf("payload mass must be non-negative")
	}
	if c.DragCoefficient < 0 || c.ReferenceArea < 0 {
		return fmt.Errorf("drag coefficient and reference area must be non-negative")
	}
	if c.Body.Radius <= 0 || c.Body.μ <= 0 {
		return fmt.Errorf("body is not defined")
	}
	return nil
}

// Isp returns the stage's specific impulse blended between sea level and
// vacuum by the local static pressure ratio.
func (s StageConfig) Isp(pressure float64) float64 {
	ratio := clamp(pressure/seaLevelPressure, 0, 1)
	return s.IspVacuum + (s.IspSeaLevel-s.IspVacuum)*ratio
}

// LoadConfig loads a vehicle configuration from a TOML file.
func LoadConfig(path, name string) (RocketConfig, error) {
	v := viper.New()
	v.SetConfigName(name)
	v.SetConfigType("toml")
	v.AddConfigPath(path)
	if err := v.ReadInConfig(); err != nil {
		return RocketConfig{}, fmt.Errorf("could not read %s/%s.toml: %s", path, name, err)
	}
	body, err := BodyFromString(withDefaultStr(v.GetString("vehicle.body"), "Earth"))
	if err != nil {
		return RocketConfig{}, err
	}
	cfg := RocketConfig{
		Name:            withDefaultStr(v.GetString("vehicle.name"), name),
		Stage1:          stageFromViper(v, "stage1"),
		Stage2:          stageFromViper(v, "stage2"),
		PayloadMass:     v.GetFloat64("vehicle.payload_mass"),
		DragCoefficient: withDefault(v.GetFloat64("vehicle.drag_coefficient"), 0.5),
		ReferenceArea:   withDefault(v.GetFloat64("vehicle.reference_area"), 10.0),
		LandingTarget:   v.GetFloat64("mission.landing_target"),
		RecoverStage1:   v.GetBool("mission.recover_stage1"),
		Body:            body,
	}
	if err := cfg.Validate(); err != nil {
		return RocketConfig{}, err
	}
	return cfg, nil
}

func stageFromViper(v *viper.Viper, key string) StageConfig {
	return StageConfig{
		PropellantMass: v.GetFloat64(key + ".propellant_mass"),
		DryMass:        v.GetFloat64(key + ".dry_mass"),
		Thrust:         v.GetFloat64(key + ".thrust"),
		BurnRate:       v.GetFloat64(key + ".burn_rate"),
		Propellant:     withDefaultStr(v.GetString(key+".propellant"), "RP-1/LOX"),
		IspSeaLevel:    withDefault(v.GetFloat64(key+".isp_sea_level"), 282),
		IspVacuum:      withDefault(v.GetFloat64(key+".isp_vacuum"), 311),
		Engines:        v.GetInt(key + ".engines"),
		LandingReserve: v.GetFloat64(key + ".landing_reserve"),
	}
}

func withDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

func withDefaultStr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
