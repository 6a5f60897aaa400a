package game

import (
	"math"
	"math/rand"
	"time"
)

// Player is the authoritative per-room state for one session.
type Player struct {
	ID   string
	Name string
	Pos  Vec2

	Fear           float64 // [0, FearMax]
	Moving         bool
	ShadowActive   bool  // one-way for the lifetime of this Player
	ShadowSince    int64 // tick index of activation
	ShadowStrength float64

	LastInput time.Time
}

// PlayerView is the public projection broadcast to clients. Fear and
// strength are rounded; LastInput is not exposed.
type PlayerView struct {
	ID             string
	Name           string
	Pos            Vec2
	Fear           int
	ShadowActive   bool
	ShadowStrength int
}

func newPlayer(id, name string, now time.Time, rng *rand.Rand) *Player {
	return &Player{
		ID:   id,
		Name: name,
		Pos: Vec2{
			X: 100 + rng.Float64()*400,
			Y: 100 + rng.Float64()*300,
		},
		LastInput: now,
	}
}

func (p *Player) View() PlayerView {
	return PlayerView{
		ID:             p.ID,
		Name:           p.Name,
		Pos:            p.Pos,
		Fear:           int(math.Round(p.Fear)),
		ShadowActive:   p.ShadowActive,
		ShadowStrength: int(math.Round(p.ShadowStrength)),
	}
}
