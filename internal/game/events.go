package game

const (
	EventSnapshot     = "state-snapshot"
	EventMemberJoined = "member-joined"
	EventMemberLeft   = "member-left"
	EventUnleashed    = "threat-unleashed"
)

// Event is a room-originated notification delivered to member sinks.
// Which fields are set depends on Type.
type Event struct {
	Type       string
	MemberID   string       // member-joined, member-left, threat-unleashed
	Member     *PlayerView  // member-joined
	Members    []PlayerView // state-snapshot
	ServerTime int64        // state-snapshot, Unix millis
}
