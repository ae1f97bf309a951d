package ascent

import "math"

const (
	// g0 is the standard gravity used for Isp conversions and g-force
	// normalization. It is *not* the gravity term of the dynamics, which
	// uses the inverse square law.
	g0 = 9.80665
	// gasConstantAir is the specific gas constant of dry air in J/(kg·K).
	gasConstantAir = 287.053
	// γAir is the heat capacity ratio of dry air.
	γAir = 1.4
	// seaLevelDensity is the ISA density at zero altitude in kg/m^3.
	seaLevelDensity = 1.225
	// seaLevelPressure is the ISA pressure at zero altitude in Pa.
	seaLevelPressure = 101325.0
)

// AtmosphereSample is the state of the atmosphere at a given altitude.
type AtmosphereSample struct {
	Density     float64 // kg/m^3
	Temperature float64 // K
	Pressure    float64 // Pa
	Layer       string
}

// SpeedOfSound returns the local speed of sound from the sampled temperature.
func (s AtmosphereSample) SpeedOfSound() float64 {
	return math.Sqrt(γAir * gasConstantAir * s.Temperature)
}

// atmLayer defines one layer of the layered atmosphere. Base temperatures
// and pressures follow the International Standard Atmosphere; the
// thermosphere and exosphere extend the table to an effective vacuum.
type atmLayer struct {
	name         string
	base         float64 // Base altitude in m.
	ceiling      float64 // Ceiling altitude in m.
	baseTemp     float64 // Temperature at base altitude in K.
	basePressure float64 // Pressure at base altitude in Pa.
	lapse        float64 // Temperature gradient in K/m.
}

var atmLayers = []atmLayer{
	{"troposphere", 0, 11000, 288.15, 101325.0, -0.0065},
	{"tropopause", 11000, 20000, 216.65, 22632.06, 0},
	{"stratosphere", 20000, 32000, 216.65, 5474.889, 0.001},
	{"stratosphere", 32000, 47000, 228.65, 868.0187, 0.0028},
	{"stratopause", 47000, 51000, 270.65, 110.9063, 0},
	{"mesosphere", 51000, 71000, 270.65, 66.93887, -0.0028},
	{"mesosphere", 71000, 84852, 214.65, 3.956420, -0.002},
	{"thermosphere", 84852, 500000, 186.946, 0.373384, 0.004},
	{"exosphere", 500000, math.Inf(1), 1847.538, 0, 0},
}

// Atmosphere samples the layered atmosphere at the provided altitude above
// the surface. Temperature is linear within a layer; pressure follows the
// barometric formula (power law form for a non-zero gradient, exponential
// form otherwise); density derives from the ideal gas law. Density and
// pressure are floored at zero so extreme altitudes cannot go negative.
func Atmosphere(altitude float64) AtmosphereSample {
	if altitude < 0 {
		altitude = 0
	}
	layer := atmLayers[len(atmLayers)-1]
	for _, l := range atmLayers {
		if altitude < l.ceiling {
			layer = l
			break
		}
	}
	Δh := altitude - layer.base
	temp := layer.baseTemp + layer.lapse*Δh
	var pressure float64
	if layer.lapse != 0 {
		pressure = layer.basePressure * math.Pow(layer.baseTemp/temp, g0/(gasConstantAir*layer.lapse))
	} else {
		pressure = layer.basePressure * math.Exp(-g0*Δh/(gasConstantAir*layer.baseTemp))
	}
	if pressure < 0 || math.IsNaN(pressure) {
		pressure = 0
	}
	density := pressure / (gasConstantAir * temp)
	if density < 0 {
		density = 0
	}
	return AtmosphereSample{Density: density, Temperature: temp, Pressure: pressure, Layer: layer.name}
}
