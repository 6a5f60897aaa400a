package game

// advanceShadow runs one tick of the escalation machine: passive fear
// growth, activation at full fear, and strength growth while active.
// Returns true when the shadow activated on this tick.
func (p *Player) advanceShadow(tick int64) bool {
	rate := FearRateIdle
	if p.Moving {
		rate = FearRateMoving
	}
	p.Fear = Clamp(p.Fear+rate, 0, FearMax)

	activated := false
	if p.Fear >= FearMax && !p.ShadowActive {
		p.ShadowActive = true
		p.ShadowSince = tick
		activated = true
	}

	if p.ShadowActive {
		p.ShadowStrength = Clamp(p.ShadowStrength+ShadowGrowthRate, 0, ShadowMax)
	}
	return activated
}

// tryUnleash handles an explicit unleash request. Below the fear threshold
// the request is a silent no-op; a repeat request on an active shadow does
// not re-activate.
func (p *Player) tryUnleash(tick int64) bool {
	if p.ShadowActive || p.Fear < UnleashThreshold {
		return false
	}
	p.ShadowActive = true
	p.ShadowSince = tick
	return true
}
