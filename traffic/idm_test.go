package traffic

import (
	"testing"

	"github.com/chewxy/math32"
)

func testPersonality() Personality {
	p := archetypeTable[0].base
	p.AccelerationExponent = 4
	return p
}

func TestFreeRoadAccelMatchesModel(t *testing.T) {
	p := testPersonality()
	v := float32(20)
	want := p.MaxAccel * (1 - math32.Pow(v/p.DesiredSpeed, 4))
	if got := freeRoadAccel(&p, v); math32.Abs(got-want) > 1e-5 {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestFreeRoadAccelVanishesAtDesiredSpeed(t *testing.T) {
	p := testPersonality()
	if got := freeRoadAccel(&p, p.DesiredSpeed); math32.Abs(got) > 1e-4 {
		t.Fatalf("expected zero acceleration at desired speed, got %v", got)
	}
	if got := freeRoadAccel(&p, p.DesiredSpeed*1.1); got >= 0 {
		t.Fatalf("expected deceleration above desired speed, got %v", got)
	}
}

func TestIDMBrakesHardAtTinyGap(t *testing.T) {
	p := testPersonality()
	got := idmAccel(&p, 25, 0.01, 5)
	want := -1.5 * p.ComfortDecel
	if got != want {
		t.Fatalf("expected braking clamped at %v, got %v", want, got)
	}
}

func TestIDMComfortableAtLargeGap(t *testing.T) {
	p := testPersonality()
	free := freeRoadAccel(&p, 20)
	got := idmAccel(&p, 20, 500, 0)
	if math32.Abs(got-free) > 0.05 {
		t.Fatalf("expected near free-road acceleration at a huge gap, free=%v got=%v", free, got)
	}
}

func TestFrustrationRelaxesTimeGap(t *testing.T) {
	calm := testPersonality()
	angry := testPersonality()
	angry.Frustration = angry.MaxFrustration

	calmAccel := idmAccel(&calm, 20, 30, 0)
	angryAccel := idmAccel(&angry, 20, 30, 0)
	if angryAccel <= calmAccel {
		t.Fatalf("expected frustration to close the gap: calm=%v angry=%v", calmAccel, angryAccel)
	}
}

func TestFrustrationBuildAndDecay(t *testing.T) {
	p := testPersonality()
	for i := 0; i < 10; i++ {
		p.updateFrustration(0.1, 0.5*p.DesiredSpeed)
	}
	if math32.Abs(p.Frustration-1) > 1e-4 {
		t.Fatalf("expected 1s of frustration, got %v", p.Frustration)
	}

	// Decay runs at twice the build rate.
	for i := 0; i < 6; i++ {
		p.updateFrustration(0.1, p.DesiredSpeed)
	}
	if p.Frustration != 0 {
		t.Fatalf("expected frustration cleared, got %v", p.Frustration)
	}
}
