package game

import "time"

const (
	TickHz       = 20.0 // server simulation rate
	Dt           = 1.0 / TickHz
	TickInterval = time.Second / 20

	ArenaW  = 800.0
	ArenaH  = 600.0
	RoomCap = 4

	MoveSpeed = 140.0 // units/s while moving

	FearMax          = 100.0
	FearRateMoving   = 0.25 // per tick
	FearRateIdle     = 0.08 // per tick
	UnleashThreshold = 80.0

	ShadowMax        = 100.0
	ShadowGrowthRate = 0.6 // per tick while active

	PingRadius    = 200.0
	PingFearBoost = 10.0
)
