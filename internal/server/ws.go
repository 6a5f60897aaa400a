package server

import (
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"shadowbound/internal/game"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096

	eventBufferSize = 64
	ackBufferSize   = 16
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type gateway struct {
	reg     *game.Registry
	limiter *ipLimiter
}

// session is one live client attachment: identity, current room
// membership, and the outbound channels feeding its write pump.
type session struct {
	id   string
	conn *websocket.Conn
	reg  *game.Registry

	mu   sync.Mutex
	room *game.Room

	events chan game.Event // room broadcasts
	out    chan serverMsg  // acks and direct replies
	done   chan struct{}

	closeOnce sync.Once
}

func (gw *gateway) handleWS(w http.ResponseWriter, r *http.Request) {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	if !gw.limiter.Allow(ip) {
		http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("ip", ip).Msg("websocket upgrade failed")
		return
	}

	s := &session{
		id:     uuid.New().String(),
		conn:   conn,
		reg:    gw.reg,
		events: make(chan game.Event, eventBufferSize),
		out:    make(chan serverMsg, ackBufferSize),
		done:   make(chan struct{}),
	}
	log.Info().Str("session", s.id).Str("ip", ip).Msg("session connected")

	go s.writePump()
	s.readPump()
}

func (s *session) readPump() {
	defer s.teardown()

	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg clientMsg
		if err := s.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Str("session", s.id).Msg("read error")
			}
			return
		}
		s.dispatch(msg)
	}
}

func (s *session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case <-s.done:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = s.conn.WriteMessage(websocket.CloseMessage, nil)
			return
		case msg := <-s.out:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteJSON(msg); err != nil {
				return
			}
		case ev := <-s.events:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteJSON(eventMsg(ev)); err != nil {
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *session) dispatch(msg clientMsg) {
	switch msg.Type {
	case "create-room":
		var req createRoomReq
		_ = unmarshalPayload(msg, &req)
		s.handleCreate(req)
	case "join-room":
		var req joinRoomReq
		_ = unmarshalPayload(msg, &req)
		s.handleJoin(req)
	case "leave-room":
		s.handleLeave()
	case "intent":
		var req intentReq
		if unmarshalPayload(msg, &req) != nil {
			return // best-effort, drop malformed intents
		}
		s.handleIntent(req)
	default:
		log.Debug().Str("session", s.id).Str("type", msg.Type).Msg("unknown message")
	}
}

func (s *session) handleCreate(req createRoomReq) {
	if req.RoomID == "" {
		s.ack("create-room", false, "roomId required")
		return
	}
	if _, err := s.reg.CreateRoom(req.RoomID); errors.Is(err, game.ErrRoomExists) {
		s.ack("create-room", false, "room exists")
		return
	}
	s.ack("create-room", true, "")
}

func (s *session) handleJoin(req joinRoomReq) {
	if req.RoomID == "" || req.Name == "" {
		s.ack("join-room", false, "roomId & name required")
		return
	}
	if old := s.swapRoom(nil); old != nil {
		s.leaveRoom(old)
	}

	for {
		room := s.reg.EnsureRoom(req.RoomID)
		self, members, err := room.Join(s.id, req.Name, s.events, time.Now())
		switch {
		case errors.Is(err, game.ErrRoomClosed):
			// lost a race with room teardown, resolve a fresh room
			continue
		case errors.Is(err, game.ErrRoomFull):
			s.ack("join-room", false, "room full")
			return
		}

		s.setRoom(room)
		s.reply(serverMsg{Type: "joined", Payload: joinedMsg{
			Ok:      true,
			Members: membersFromViews(members),
			Self:    memberFromView(self),
		}})
		s.ack("join-room", true, "")
		return
	}
}

func (s *session) handleLeave() {
	if old := s.swapRoom(nil); old != nil {
		s.leaveRoom(old)
	}
}

func (s *session) handleIntent(req intentReq) {
	room := s.currentRoom()
	if room == nil {
		return
	}
	in := game.Intent{
		Moving:  req.Moving,
		Unleash: req.Unleash,
		Ping:    req.Ping,
	}
	if req.Dir != nil {
		in.Dir = game.Vec2{X: req.Dir.X, Y: req.Dir.Y}
	}
	room.ApplyIntent(s.id, in, time.Now())
}

// leaveRoom removes this session from r and reaps r when it emptied.
func (s *session) leaveRoom(r *game.Room) {
	if r.Leave(s.id) {
		s.reg.DeleteRoomIfEmpty(r)
	}
}

func (s *session) teardown() {
	s.closeOnce.Do(func() {
		if old := s.swapRoom(nil); old != nil {
			s.leaveRoom(old)
		}
		close(s.done)
		s.conn.Close()
		log.Info().Str("session", s.id).Msg("session disconnected")
	})
}

func (s *session) ack(op string, ok bool, reason string) {
	s.reply(serverMsg{Type: "ack", Payload: ackMsg{Op: op, Ok: ok, Msg: reason}})
}

// reply queues a direct message; drops it when the write pump is backed
// up, the same policy as room broadcasts.
func (s *session) reply(msg serverMsg) {
	select {
	case s.out <- msg:
	default:
	}
}

func (s *session) currentRoom() *game.Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.room
}

func (s *session) setRoom(r *game.Room) {
	s.mu.Lock()
	s.room = r
	s.mu.Unlock()
}

func (s *session) swapRoom(r *game.Room) *game.Room {
	s.mu.Lock()
	old := s.room
	s.room = r
	s.mu.Unlock()
	return old
}
