package core

import "github.com/pavithrapri/collab-code-editor/internal/domain"

// SessionID identifies one live connection.
type SessionID string

// SignalConn abstracts the session's transport endpoint.
// Owned by the adapter; the adapter must Close() it.
type SignalConn interface {
	TrySend([]byte) error
	Close()
}

// Session binds one client connection to the room it joined. A session
// belongs to exactly one room for its whole lifetime.
type Session struct {
	SID  SessionID
	Room domain.RoomID
	Conn SignalConn
}

func NewSession(sid SessionID, room domain.RoomID, conn SignalConn) *Session {
	return &Session{SID: sid, Room: room, Conn: conn}
}
