package game

import (
	"context"
	"errors"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	ErrRoomFull   = errors.New("room full")
	ErrRoomClosed = errors.New("room closed")
)

// Room is an isolated group of up to RoomCap players sharing one
// simulation clock. All member and player mutation goes through r.mu.
type Room struct {
	ID string

	mu      sync.Mutex
	players map[string]*Player
	sinks   map[string]chan<- Event
	tick    int64
	closed  bool
	rng     *rand.Rand

	// scheduler handle, owned by the registry that created the room
	cancel context.CancelFunc
	done   chan struct{}
}

func newRoom(id string) *Room {
	return &Room{
		ID:      id,
		players: make(map[string]*Player),
		sinks:   make(map[string]chan<- Event),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		done:    make(chan struct{}),
	}
}

// Join adds a member with a randomized spawn position. Events for this
// member are delivered to sink with non-blocking sends. Returns the new
// member's own view and the views of everyone currently in the room
// (including the joiner); everyone else receives member-joined.
func (r *Room) Join(id, name string, sink chan<- Event, now time.Time) (PlayerView, []PlayerView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return PlayerView{}, nil, ErrRoomClosed
	}
	if len(r.players) >= RoomCap {
		return PlayerView{}, nil, ErrRoomFull
	}

	p := newPlayer(id, name, now, r.rng)
	r.players[id] = p
	r.sinks[id] = sink

	self := p.View()
	r.broadcastLocked(Event{Type: EventMemberJoined, MemberID: id, Member: &self}, id)
	log.Info().Str("room", r.ID).Str("member", id).Str("name", name).Msg("member joined")
	return self, r.viewsLocked(), nil
}

// Leave removes the member if present (silent no-op otherwise) and tells
// the caller whether the room is now empty.
func (r *Room) Leave(id string) (empty bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.players[id]; !ok {
		return false
	}
	delete(r.players, id)
	delete(r.sinks, id)
	r.broadcastLocked(Event{Type: EventMemberLeft, MemberID: id}, "")
	log.Info().Str("room", r.ID).Str("member", id).Msg("member left")
	return len(r.players) == 0
}

func (r *Room) MemberCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players)
}

// Tick advances every member's shadow machine once, then broadcasts one
// snapshot. A closed room never ticks again.
func (r *Room) Tick(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.tick++

	for _, p := range r.players {
		if p.advanceShadow(r.tick) {
			r.broadcastLocked(Event{Type: EventUnleashed, MemberID: p.ID}, "")
		}
	}

	r.broadcastLocked(Event{
		Type:       EventSnapshot,
		Members:    r.viewsLocked(),
		ServerTime: now.UnixMilli(),
	}, "")
}

// markClosedIfEmpty flips the room to closed when no members remain, so
// an in-flight tick can no longer observe it open.
func (r *Room) markClosedIfEmpty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.players) > 0 || r.closed {
		return false
	}
	r.closed = true
	return true
}

func (r *Room) viewsLocked() []PlayerView {
	views := make([]PlayerView, 0, len(r.players))
	for _, p := range r.players {
		views = append(views, p.View())
	}
	sort.Slice(views, func(i, j int) bool { return views[i].ID < views[j].ID })
	return views
}

// broadcastLocked delivers ev to every member sink except exceptID. Sends
// never block; a member whose buffer is full misses the event rather than
// stalling the room.
func (r *Room) broadcastLocked(ev Event, exceptID string) {
	for id, sink := range r.sinks {
		if id == exceptID {
			continue
		}
		select {
		case sink <- ev:
		default:
		}
	}
}
