package game

import "testing"

func TestPassiveFearGrowthRates(t *testing.T) {
	moving := &Player{ID: "a", Moving: true}
	idle := &Player{ID: "b"}

	moving.advanceShadow(1)
	idle.advanceShadow(1)

	if moving.Fear != FearRateMoving {
		t.Fatalf("moving fear = %v, want %v", moving.Fear, FearRateMoving)
	}
	if idle.Fear != FearRateIdle {
		t.Fatalf("idle fear = %v, want %v", idle.Fear, FearRateIdle)
	}
}

func TestFearActivatesShadowExactlyOnce(t *testing.T) {
	p := &Player{ID: "a", Moving: true}

	activations := 0
	for tick := int64(1); tick <= 500; tick++ {
		if p.advanceShadow(tick) {
			activations++
			if tick != 400 {
				t.Errorf("activated on tick %d, want 400", tick)
			}
		}
	}

	if activations != 1 {
		t.Fatalf("activations = %d, want 1", activations)
	}
	if !p.ShadowActive {
		t.Fatal("shadow not active after reaching full fear")
	}
	if p.Fear != FearMax {
		t.Fatalf("fear = %v, want clamped at %v", p.Fear, FearMax)
	}
	if p.ShadowSince != 400 {
		t.Fatalf("ShadowSince = %d, want 400", p.ShadowSince)
	}
}

func TestShadowStrengthGrowsAndCaps(t *testing.T) {
	p := &Player{ID: "a", ShadowActive: true}

	p.advanceShadow(1)
	if p.ShadowStrength != ShadowGrowthRate {
		t.Fatalf("strength = %v, want %v", p.ShadowStrength, ShadowGrowthRate)
	}

	prev := p.ShadowStrength
	for tick := int64(2); tick <= 400; tick++ {
		p.advanceShadow(tick)
		if p.ShadowStrength < prev {
			t.Fatalf("strength decreased from %v to %v", prev, p.ShadowStrength)
		}
		prev = p.ShadowStrength
	}
	if p.ShadowStrength != ShadowMax {
		t.Fatalf("strength = %v, want capped at %v", p.ShadowStrength, ShadowMax)
	}
}

func TestUnleashThreshold(t *testing.T) {
	p := &Player{ID: "a", Fear: UnleashThreshold - 0.1}
	if p.tryUnleash(1) {
		t.Fatal("unleash below threshold should be ignored")
	}
	if p.ShadowActive {
		t.Fatal("shadow active after rejected unleash")
	}

	p.Fear = 85
	if !p.tryUnleash(2) {
		t.Fatal("unleash at fear 85 should activate")
	}
	if !p.ShadowActive || p.ShadowSince != 2 {
		t.Fatalf("unexpected state after unleash: active=%v since=%d", p.ShadowActive, p.ShadowSince)
	}

	// repeating the request must not report a second activation
	if p.tryUnleash(3) {
		t.Fatal("unleash on active shadow re-activated")
	}
}

func TestShadowActiveIsMonotonic(t *testing.T) {
	p := &Player{ID: "a", Fear: 90}
	if !p.tryUnleash(1) {
		t.Fatal("unleash at fear 90 should activate")
	}
	for tick := int64(2); tick <= 1000; tick++ {
		p.advanceShadow(tick)
		p.tryUnleash(tick)
		if !p.ShadowActive {
			t.Fatalf("shadow deactivated on tick %d", tick)
		}
	}
}
