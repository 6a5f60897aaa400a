package game

import (
	"context"
	"errors"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

var ErrRoomExists = errors.New("room exists")

// Registry owns the process-wide room table and each room's tick
// scheduler. The registry mutex guards only the table; it is never held
// across per-room work.
type Registry struct {
	clock clockwork.Clock

	mu    sync.Mutex
	rooms map[string]*Room
}

func NewRegistry(clock clockwork.Clock) *Registry {
	return &Registry{
		clock: clock,
		rooms: make(map[string]*Room),
	}
}

// CreateRoom creates an empty room and starts its scheduler. Reports
// ErrRoomExists when the identifier is already live.
func (g *Registry) CreateRoom(id string) (*Room, error) {
	g.mu.Lock()
	if _, ok := g.rooms[id]; ok {
		g.mu.Unlock()
		return nil, ErrRoomExists
	}
	r := g.startRoomLocked(id)
	g.mu.Unlock()

	log.Info().Str("room", id).Msg("room created")
	return r, nil
}

// EnsureRoom returns the live room for id, creating it if needed.
func (g *Registry) EnsureRoom(id string) *Room {
	g.mu.Lock()
	r, ok := g.rooms[id]
	if !ok {
		r = g.startRoomLocked(id)
	}
	g.mu.Unlock()

	if !ok {
		log.Info().Str("room", id).Msg("room created")
	}
	return r
}

func (g *Registry) Lookup(id string) (*Room, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	r, ok := g.rooms[id]
	return r, ok
}

func (g *Registry) RoomCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.rooms)
}

// DeleteRoom stops the room's scheduler and removes it from the table.
// Safe to call on an unknown id. Returns only after the scheduler
// goroutine has exited and the timer is released.
func (g *Registry) DeleteRoom(id string) {
	g.mu.Lock()
	r, ok := g.rooms[id]
	if ok {
		delete(g.rooms, id)
	}
	g.mu.Unlock()

	if !ok {
		return
	}
	g.stopRoom(r)
}

// DeleteRoomIfEmpty tears down r only when it is still the registered
// room for its id and nobody joined since the caller observed it empty.
func (g *Registry) DeleteRoomIfEmpty(r *Room) {
	g.mu.Lock()
	if g.rooms[r.ID] != r || !r.markClosedIfEmpty() {
		g.mu.Unlock()
		return
	}
	delete(g.rooms, r.ID)
	g.mu.Unlock()

	g.stopRoom(r)
}

// startRoomLocked registers a room and launches its tick loop. Caller
// holds g.mu.
func (g *Registry) startRoomLocked(id string) *Room {
	r := newRoom(id)
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	g.rooms[id] = r
	go g.runRoom(ctx, r)
	return r
}

func (g *Registry) runRoom(ctx context.Context, r *Room) {
	defer close(r.done)
	ticker := g.clock.NewTicker(TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.Chan():
			r.Tick(now)
		}
	}
}

func (g *Registry) stopRoom(r *Room) {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()

	r.cancel()
	<-r.done
	log.Info().Str("room", r.ID).Msg("room deleted")
}
