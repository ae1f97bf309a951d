package ascent

import "github.com/prometheus/client_golang/prometheus"

// Per-channel telemetry gauges, refreshed once per tick by the mission
// driver. Exposed over promhttp by cmd/ascentsim.
var (
	altitudeGauge        = prometheus.NewGauge(prometheus.GaugeOpts{Name: "ascent_altitude_meters"})
	downrangeGauge       = prometheus.NewGauge(prometheus.GaugeOpts{Name: "ascent_downrange_meters"})
	velocityGauge        = prometheus.NewGauge(prometheus.GaugeOpts{Name: "ascent_velocity_mps"})
	accelerationGauge    = prometheus.NewGauge(prometheus.GaugeOpts{Name: "ascent_acceleration_mps2"})
	gforceGauge          = prometheus.NewGauge(prometheus.GaugeOpts{Name: "ascent_gforce"})
	machGauge            = prometheus.NewGauge(prometheus.GaugeOpts{Name: "ascent_mach"})
	dynamicPressureGauge = prometheus.NewGauge(prometheus.GaugeOpts{Name: "ascent_dynamic_pressure_pa"})
	skinTempGauge        = prometheus.NewGauge(prometheus.GaugeOpts{Name: "ascent_skin_temperature_kelvin"})
	massGauge            = prometheus.NewGauge(prometheus.GaugeOpts{Name: "ascent_mass_kg"})
	fuelGauge            = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ascent_fuel_kg",
			Help: "Remaining propellant of each stage (in kg)",
		},
		[]string{"stage"},
	)
	deltaVSpentGauge     = prometheus.NewGauge(prometheus.GaugeOpts{Name: "ascent_delta_v_spent_mps"})
	deltaVRemainingGauge = prometheus.NewGauge(prometheus.GaugeOpts{Name: "ascent_delta_v_remaining_mps"})
	apogeeGauge          = prometheus.NewGauge(prometheus.GaugeOpts{Name: "ascent_apogee_meters"})
	perigeeGauge         = prometheus.NewGauge(prometheus.GaugeOpts{Name: "ascent_perigee_meters"})
	phaseGauge           = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "ascent_flight_phase",
		Help: "Numeric flight phase (1=pre-launch ... 10=crashed)",
	})
	throttleGauge = prometheus.NewGauge(prometheus.GaugeOpts{Name: "ascent_throttle"})
)

func init() {
	prometheus.MustRegister(
		altitudeGauge, downrangeGauge, velocityGauge, accelerationGauge,
		gforceGauge, machGauge, dynamicPressureGauge, skinTempGauge,
		massGauge, fuelGauge, deltaVSpentGauge, deltaVRemainingGauge,
		apogeeGauge, perigeeGauge, phaseGauge, throttleGauge,
	)
}

// PublishTelemetry pushes one state onto the telemetry gauges.
func PublishTelemetry(s SimulationState, cfg RocketConfig) {
	altitudeGauge.Set(s.Altitude)
	downrangeGauge.Set(s.Downrange)
	velocityGauge.Set(s.Velocity)
	accelerationGauge.Set(s.Acceleration)
	gforceGauge.Set(s.GForce)
	machGauge.Set(s.Mach)
	dynamicPressureGauge.Set(s.DynamicPressure)
	skinTempGauge.Set(s.SkinTemperature)
	massGauge.Set(TotalMass(s, cfg))
	fuelGauge.WithLabelValues("1").Set(s.Stage1Fuel)
	fuelGauge.WithLabelValues("2").Set(s.Stage2Fuel)
	deltaVSpentGauge.Set(s.DeltaVSpent)
	deltaVRemainingGauge.Set(s.DeltaVRemaining)
	apogeeGauge.Set(s.Orbit.Apogee)
	perigeeGauge.Set(s.Orbit.Perigee)
	phaseGauge.Set(float64(s.Phase))
	throttleGauge.Set(s.Throttle)
}
