package ascent

import "testing"

func TestPhaseStrings(t *testing.T) {
	names := map[Phase]string{
		PreLaunch:   "pre-launch",
		Burning:     "burning",
		Staging:     "staging",
		Coasting:    "coasting",
		Boostback:   "boostback",
		ReentryBurn: "reentry-burn",
		Descent:     "descent",
		Landing:     "landing",
		Landed:      "landed",
		Crashed:     "crashed",
	}
	for p, exp := range names {
		if got := p.String(); got != exp {
			t.Fatalf("%d stringified as %s, expected %s", p, got, exp)
		}
	}
	assertPanic(t, func() {
		_ = Phase(0).String()
	})
}

func TestPhaseTerminal(t *testing.T) {
	for _, p := range []Phase{PreLaunch, Burning, Staging, Coasting, Boostback, ReentryBurn, Descent, Landing} {
		if p.Terminal() {
			t.Fatalf("%s must not be terminal", p)
		}
	}
	if !Landed.Terminal() || !Crashed.Terminal() {
		t.Fatal("landed and crashed are terminal")
	}
}

func TestPhasePowered(t *testing.T) {
	powered := map[Phase]bool{
		PreLaunch: false, Burning: true, Staging: false, Coasting: false,
		Boostback: true, ReentryBurn: true, Descent: false, Landing: true,
		Landed: false, Crashed: false,
	}
	for p, exp := range powered {
		if got := p.Powered(); got != exp {
			t.Fatalf("%s powered=%v, expected %v", p, got, exp)
		}
	}
}

func TestPhaseTransitionTable(t *testing.T) {
	legal := []struct{ from, to Phase }{
		{PreLaunch, Burning},
		{Burning, Staging},
		{Staging, Burning},
		{Staging, Coasting},
		{Coasting, Boostback},
		{Boostback, Coasting},
		{Coasting, ReentryBurn},
		{ReentryBurn, Descent},
		{Descent, Landing},
		{Landing, Landed},
		{Landing, Crashed},
	}
	for _, tc := range legal {
		if !tc.from.CanTransition(tc.to) {
			t.Fatalf("%s -> %s should be legal", tc.from, tc.to)
		}
	}
	illegal := []struct{ from, to Phase }{
		{PreLaunch, Coasting},
		{Burning, Boostback},
		{Burning, Descent},
		{Coasting, Burning},
		{Boostback, Descent},
		{ReentryBurn, Landing},
		{Landed, Burning},
		{Crashed, Descent},
		{Landing, Coasting},
	}
	for _, tc := range illegal {
		if tc.from.CanTransition(tc.to) {
			t.Fatalf("%s -> %s should be illegal", tc.from, tc.to)
		}
	}
}

func TestTransitionPanicsOnIllegalMove(t *testing.T) {
	assertPanic(t, func() {
		transition(Landed, Burning)
	})
	if got := transition(PreLaunch, Burning); got != Burning {
		t.Fatalf("legal transition returned %s", got)
	}
}
