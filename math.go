package ascent

import (
	"math"

	"github.com/gonum/floats"
	"github.com/gonum/matrix/mat64"
)

const deg2rad = math.Pi / 180

// norm returns the norm of a planar vector.
func norm(x, y float64) float64 {
	return math.Hypot(x, y)
}

// unit returns the unit vector of a given planar vector.
// A zero magnitude vector normalizes to the zero vector.
func unit(x, y float64) (ux, uy float64) {
	n := norm(x, y)
	if floats.EqualWithinAbs(n, 0, 1e-12) {
		return 0, 0
	}
	return x / n, y / n
}

// dot performs the inner product via mat64/BLAS.
func dot(a, b []float64) float64 {
	return mat64.Dot(mat64.NewVector(len(a), a), mat64.NewVector(len(b), b))
}

// cross2 performs the planar cross product, i.e. the z component of a × b.
func cross2(ax, ay, bx, by float64) float64 {
	return ax*by - ay*bx
}

// sign returns the sign of a given number.
func sign(v float64) float64 {
	if floats.EqualWithinAbs(v, 0, 1e-12) {
		return 1
	}
	return v / math.Abs(v)
}

// clamp restricts v to the [min, max] interval.
func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// clampAcos is math.Acos with its argument clamped onto [-1, 1], so that
// rounding noise on near-degenerate vectors cannot produce NaN.
func clampAcos(v float64) float64 {
	return math.Acos(clamp(v, -1, 1))
}

// Deg2rad converts degrees to radians, and enforces only positive numbers.
func Deg2rad(a float64) float64 {
	if a < 0 {
		a += 360
	}
	return math.Mod(a*deg2rad, 2*math.Pi)
}

// Rad2deg converts radians to degrees, and enforces only positive numbers.
func Rad2deg(a float64) float64 {
	if a < 0 {
		a += 2 * math.Pi
	}
	return math.Mod(a/deg2rad, 360)
}
