package server

import (
	"encoding/json"

	"shadowbound/internal/game"
)

type clientMsg struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type serverMsg struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type createRoomReq struct {
	RoomID string `json:"roomId"`
}

type joinRoomReq struct {
	RoomID string `json:"roomId"`
	Name   string `json:"name"`
}

type vecDTO struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type intentReq struct {
	Dir     *vecDTO `json:"dir"`
	Moving  bool    `json:"moving"`
	Unleash bool    `json:"unleash"`
	Ping    bool    `json:"ping"`
}

type ackMsg struct {
	Op  string `json:"op"`
	Ok  bool   `json:"ok"`
	Msg string `json:"msg,omitempty"`
}

type memberDTO struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
	Fear           int     `json:"fear"`
	ShadowActive   bool    `json:"shadowActive"`
	ShadowStrength int     `json:"shadowStrength"`
}

type joinedMsg struct {
	Ok      bool        `json:"ok"`
	Members []memberDTO `json:"members"`
	Self    memberDTO   `json:"self"`
}

type memberJoinedMsg struct {
	ID     string    `json:"id"`
	Member memberDTO `json:"member"`
}

type memberLeftMsg struct {
	ID string `json:"id"`
}

type snapshotMsg struct {
	Members    []memberDTO `json:"members"`
	ServerTime int64       `json:"serverTime"`
}

type unleashedMsg struct {
	ID string `json:"id"`
}

func memberFromView(v game.PlayerView) memberDTO {
	return memberDTO{
		ID:             v.ID,
		Name:           v.Name,
		X:              v.Pos.X,
		Y:              v.Pos.Y,
		Fear:           v.Fear,
		ShadowActive:   v.ShadowActive,
		ShadowStrength: v.ShadowStrength,
	}
}

func membersFromViews(views []game.PlayerView) []memberDTO {
	out := make([]memberDTO, 0, len(views))
	for _, v := range views {
		out = append(out, memberFromView(v))
	}
	return out
}

func unmarshalPayload(msg clientMsg, dst any) error {
	if len(msg.Payload) == 0 {
		return nil
	}
	return json.Unmarshal(msg.Payload, dst)
}

// eventMsg converts a room event into its wire form. Event type constants
// double as wire message names.
func eventMsg(ev game.Event) serverMsg {
	switch ev.Type {
	case game.EventSnapshot:
		return serverMsg{Type: ev.Type, Payload: snapshotMsg{
			Members:    membersFromViews(ev.Members),
			ServerTime: ev.ServerTime,
		}}
	case game.EventMemberJoined:
		return serverMsg{Type: ev.Type, Payload: memberJoinedMsg{
			ID:     ev.MemberID,
			Member: memberFromView(*ev.Member),
		}}
	case game.EventMemberLeft:
		return serverMsg{Type: ev.Type, Payload: memberLeftMsg{ID: ev.MemberID}}
	case game.EventUnleashed:
		return serverMsg{Type: ev.Type, Payload: unleashedMsg{ID: ev.MemberID}}
	default:
		return serverMsg{Type: ev.Type}
	}
}
