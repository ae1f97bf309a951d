package ascent

import (
	"fmt"
	"math"
)

// Body defines the celestial body a flight takes place around.
// The flight model is planar, so a body is fully described by its
// gravitational parameter and mean radius.
type Body struct {
	Name   string
	Radius float64 // Mean radius in meters.
	μ      float64 // Gravitational parameter in m^3/s^2.
}

// GM returns μ (which is unexported because it's a lowercase letter).
func (b Body) GM() float64 {
	return b.μ
}

// Gravity returns the gravitational acceleration at the given altitude
// above the surface, via the inverse square law.
func (b Body) Gravity(altitude float64) float64 {
	r := b.Radius + altitude
	return b.μ / (r * r)
}

// CircularVelocity returns the circular orbital velocity at the given altitude.
func (b Body) CircularVelocity(altitude float64) float64 {
	return math.Sqrt(b.μ / (b.Radius + altitude))
}

// EscapeVelocity returns the escape velocity at the given altitude.
func (b Body) EscapeVelocity(altitude float64) float64 {
	return math.Sqrt(2 * b.μ / (b.Radius + altitude))
}

// String implements the Stringer interface.
func (b Body) String() string {
	return b.Name + " body"
}

// Equals returns whether the provided body is the same.
func (b Body) Equals(o Body) bool {
	return b.Name == o.Name && b.Radius == o.Radius && b.μ == o.μ
}

// BodyFromString returns the body from its name.
func BodyFromString(name string) (Body, error) {
	switch name {
	case "Earth", "earth":
		return Earth, nil
	case "Moon", "moon":
		return Moon, nil
	case "Mars", "mars":
		return Mars, nil
	default:
		return Body{}, fmt.Errorf("undefined body '%s'", name)
	}
}

/* Definitions */

// Earth is home, and the default launch site.
var Earth = Body{"Earth", 6371000.0, 3.986004418e14}

// Moon has no atmosphere, which makes landing burns mandatory.
var Moon = Body{"Moon", 1737400.0, 4.9048695e12}

// Mars is the vacation place.
var Mars = Body{"Mars", 3389500.0, 4.282837e13}
