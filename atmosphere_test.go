package ascent

import (
	"math"
	"testing"

	"github.com/gonum/floats"
)

func TestAtmosphereSeaLevel(t *testing.T) {
	sample := Atmosphere(0)
	if !floats.EqualWithinAbs(sample.Density, 1.225, 1e-3) {
		t.Fatalf("sea level density invalid: %f", sample.Density)
	}
	if !floats.EqualWithinAbs(sample.Pressure, 101325, 1) {
		t.Fatalf("sea level pressure invalid: %f", sample.Pressure)
	}
	if !floats.EqualWithinAbs(sample.Temperature, 288.15, 1e-6) {
		t.Fatalf("sea level temperature invalid: %f", sample.Temperature)
	}
	if sample.Layer != "troposphere" {
		t.Fatalf("wrong layer: %s", sample.Layer)
	}
	if !floats.EqualWithinAbs(sample.SpeedOfSound(), 340.3, 0.5) {
		t.Fatalf("sea level speed of sound invalid: %f", sample.SpeedOfSound())
	}
}

func TestAtmosphereTropopause(t *testing.T) {
	sample := Atmosphere(11000)
	if !floats.EqualWithinAbs(sample.Temperature, 216.65, 1e-3) {
		t.Fatalf("tropopause temperature invalid: %f", sample.Temperature)
	}
	if !floats.EqualWithinAbs(sample.Pressure, 22632, 50) {
		t.Fatalf("tropopause pressure invalid: %f", sample.Pressure)
	}
}

func TestAtmosphereNonNegative(t *testing.T) {
	for _, alt := range []float64{-10, 0, 5e3, 11e3, 25e3, 40e3, 50e3, 60e3, 80e3, 84852, 100e3, 400e3, 500e3, 1e6, 1e8} {
		sample := Atmosphere(alt)
		if sample.Density < 0 {
			t.Fatalf("negative density %f at %f m", sample.Density, alt)
		}
		if sample.Pressure < 0 {
			t.Fatalf("negative pressure %f at %f m", sample.Pressure, alt)
		}
		if sample.Temperature <= 0 {
			t.Fatalf("non-positive temperature %f at %f m", sample.Temperature, alt)
		}
		if math.IsNaN(sample.Density) || math.IsNaN(sample.Pressure) {
			t.Fatalf("NaN sample at %f m", alt)
		}
	}
}

func TestAtmosphereMonotonicDecay(t *testing.T) {
	// Density must not increase with altitude anywhere in the table.
	prev := Atmosphere(0).Density
	for alt := 500.0; alt <= 600e3; alt += 500 {
		d := Atmosphere(alt).Density
		if d > prev {
			t.Fatalf("density increased from %g to %g at %f m", prev, d, alt)
		}
		prev = d
	}
}

func TestAtmosphereVacuum(t *testing.T) {
	sample := Atmosphere(700e3)
	if sample.Density != 0 || sample.Pressure != 0 {
		t.Fatalf("exosphere is not a vacuum: ρ=%g P=%g", sample.Density, sample.Pressure)
	}
	if sample.Layer != "exosphere" {
		t.Fatalf("wrong layer: %s", sample.Layer)
	}
}
