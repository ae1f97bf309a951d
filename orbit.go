package ascent

import (
	"math"
	"time"
)

// orbitStabilityMargin is the perigee clearance above the surface required
// before a trajectory counts as a stable orbit.
const orbitStabilityMargin = 100e3 // m

// ElementsFromRV computes the planar orbital elements from a position and
// velocity vector relative to the body center (cf. Vallado's RV2COE,
// page 113, collapsed to two dimensions). Callers must not feed zero
// magnitude vectors.
func ElementsFromRV(rx, ry, vx, vy float64, body Body) OrbitalElements {
	r := norm(rx, ry)
	v := norm(vx, vy)
	μ := body.GM()
	ξ := v*v/2 - μ/r
	h := cross2(rx, ry, vx, vy)
	a := -μ / (2 * ξ)
	e := math.Sqrt(math.Max(0, 1+2*ξ*h*h/(μ*μ)))

	elems := OrbitalElements{
		Eccentricity:  e,
		SemiMajorAxis: a,
		Energy:        ξ,
		Period:        2 * math.Pi * math.Sqrt(math.Pow(math.Abs(a), 3)/μ),
		Inclination:   Rad2deg(math.Abs(math.Atan2(vy, vx))),
	}
	// Apsides as altitudes above the surface, floored at zero. Only
	// meaningful for closed trajectories.
	if e < 1 {
		elems.Apogee = math.Max(0, a*(1+e)-body.Radius)
		elems.Perigee = math.Max(0, a*(1-e)-body.Radius)
	}

	alt := r - body.Radius
	vCirc := body.CircularVelocity(alt)
	vEsc := body.EscapeVelocity(alt)
	elems.Stable = v >= 0.9*vCirc && v < vEsc && elems.Perigee > orbitStabilityMargin && e < 1
	return elems
}

// TimeToApsides returns the time until the next apogee and perigee passage,
// from the true anomaly and mean motion. Open trajectories (e ≥ 1) return
// +Inf for both: there is no next apsis to wait for.
func TimeToApsides(rx, ry, vx, vy float64, body Body) (toApogee, toPerigee float64) {
	elems := ElementsFromRV(rx, ry, vx, vy, body)
	if elems.Eccentricity >= 1 {
		return math.Inf(1), math.Inf(1)
	}
	e := math.Max(elems.Eccentricity, 1e-9)
	r := norm(rx, ry)
	// True anomaly from the orbit equation, signed by the r·v dot product:
	// positive radial velocity means we are past perigee, climbing.
	cosν := (elems.SemiMajorAxis*(1-e*e)/r - 1) / e
	ν := clampAcos(cosν)
	if dot([]float64{rx, ry}, []float64{vx, vy}) < 0 {
		ν = 2*math.Pi - ν
	}
	// Mean anomaly via the eccentric anomaly.
	sinν, cosν2 := math.Sincos(ν)
	E := math.Atan2(math.Sqrt(1-e*e)*sinν, e+cosν2)
	if E < 0 {
		E += 2 * math.Pi
	}
	M := E - e*math.Sin(E)
	n := 2 * math.Pi / elems.Period // mean motion
	// Sitting on an apsis means the next passage is a full revolution away,
	// so the wrap to zero must map back onto 2π.
	toPerigee = (2*math.Pi - M) / n
	toApogee = math.Mod(3*math.Pi-M, 2*math.Pi) / n
	if toApogee == 0 {
		toApogee = elems.Period
	}
	return
}

// Hohmann computes a Hohmann transfer between two circular radii about the
// given body. It returns the departure and arrival velocities on the
// transfer ellipse, and the time of flight.
func Hohmann(rI, rF float64, body Body) (vDeparture, vArrival float64, tof time.Duration) {
	aTransfer := 0.5 * (rI + rF)
	vDeparture = math.Sqrt((2 * body.GM() / rI) - (body.GM() / aTransfer))
	vArrival = math.Sqrt((2 * body.GM() / rF) - (body.GM() / aTransfer))
	tof = time.Duration(math.Pi*math.Sqrt(math.Pow(aTransfer, 3)/body.GM())) * time.Second
	return
}

// HohmannTransfer is the two-burn transfer between circular orbits at the
// provided altitudes: the Δv to leave the initial circle, the Δv to
// circularize at the target, and the coast time between them.
func HohmannTransfer(currentAlt, targetAlt float64, body Body) (Δv1, Δv2 float64, transferTime time.Duration) {
	rI := body.Radius + currentAlt
	rF := body.Radius + targetAlt
	vDep, vArr, tof := Hohmann(rI, rF, body)
	Δv1 = math.Abs(vDep - body.CircularVelocity(currentAlt))
	Δv2 = math.Abs(body.CircularVelocity(targetAlt) - vArr)
	return Δv1, Δv2, tof
}
