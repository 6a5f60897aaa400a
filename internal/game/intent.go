package game

import "time"

// Intent is the fixed schema for one client input message. The gateway
// leaves Dir zero when the client omitted or malformed the vector.
type Intent struct {
	Dir     Vec2
	Moving  bool
	Unleash bool
	Ping    bool
}

// ApplyIntent validates and applies one intent to the named member.
// Unknown members and malformed fields are silent no-ops; intent handling
// is best-effort and never surfaces an error to the client.
func (r *Room) ApplyIntent(memberID string, in Intent, now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.players[memberID]
	if !ok || r.closed {
		return
	}

	p.Moving = in.Moving
	p.LastInput = now

	if in.Dir.Finite() {
		speed := 0.0
		if in.Moving {
			speed = MoveSpeed
		}
		step := in.Dir.Norm().Scale(speed / TickHz)
		p.Pos = p.Pos.Add(step)
		p.Pos.X = Clamp(p.Pos.X, 0, ArenaW)
		p.Pos.Y = Clamp(p.Pos.Y, 0, ArenaH)
	}

	if in.Unleash && p.tryUnleash(r.tick) {
		r.broadcastLocked(Event{Type: EventUnleashed, MemberID: p.ID}, "")
	}

	if in.Ping {
		r.pingLocked(p)
	}
}

// pingLocked raises fear on every other member within PingRadius.
func (r *Room) pingLocked(from *Player) {
	for id, other := range r.players {
		if id == from.ID {
			continue
		}
		if other.Pos.Sub(from.Pos).LenSq() < PingRadius*PingRadius {
			other.Fear = Clamp(other.Fear+PingFearBoost, 0, FearMax)
		}
	}
}
