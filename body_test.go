package ascent

import (
	"testing"

	"github.com/gonum/floats"
)

func TestBodyGravity(t *testing.T) {
	if g := Earth.Gravity(0); !floats.EqualWithinAbs(g, 9.82, 5e-3) {
		t.Fatalf("surface gravity %f", g)
	}
	// Inverse square: gravity at one radius of altitude is a quarter of surface.
	if g := Earth.Gravity(Earth.Radius); !floats.EqualWithinAbs(g, Earth.Gravity(0)/4, 1e-9) {
		t.Fatalf("gravity at one radius %f", g)
	}
}

func TestBodyVelocities(t *testing.T) {
	vCirc := Earth.CircularVelocity(400e3)
	if !floats.EqualWithinAbs(vCirc, 7672, 5) {
		t.Fatalf("LEO circular velocity %f", vCirc)
	}
	vEsc := Earth.EscapeVelocity(0)
	if !floats.EqualWithinAbs(vEsc, 11186, 5) {
		t.Fatalf("surface escape velocity %f", vEsc)
	}
	if !floats.EqualWithinAbs(vEsc, Earth.CircularVelocity(0)*1.41421356, 1) {
		t.Fatal("escape velocity must be sqrt(2) times circular")
	}
}

func TestBodyFromString(t *testing.T) {
	for name, exp := range map[string]Body{"Earth": Earth, "moon": Moon, "Mars": Mars} {
		got, err := BodyFromString(name)
		if err != nil {
			t.Fatalf("%s: %s", name, err)
		}
		if !got.Equals(exp) {
			t.Fatalf("%s resolved to %s", name, got)
		}
	}
	if _, err := BodyFromString("Vulcan"); err == nil {
		t.Fatal("expected an error for an undefined body")
	}
}
