package core

import (
	"encoding/json"

	"github.com/pavithrapri/collab-code-editor/internal/domain"
)

// Type tags on the collaboration wire. One JSON object per frame,
// discriminated by the "type" field; unknown tags are ignored upstream.
const (
	TypeInitialState    = "initial_state"
	TypeCodeUpdate      = "code_update"
	TypeCursorPosition  = "cursor_position"
	TypeTypingIndicator = "typing_indicator"
	TypePing            = "ping"
	TypePong            = "pong"
	TypeUserJoined      = "user_joined"
	TypeUserLeft        = "user_left"
)

// InitialState is pushed to a joining session alone, never broadcast.
type InitialState struct {
	Type     string `json:"type"`
	Code     string `json:"code"`
	Language string `json:"language"`
}

type CodeUpdate struct {
	Type string `json:"type"`
	Code string `json:"code"`
}

// TypingIndicator is the canonical re-wrapped payload; inbound frames
// may omit either field.
type TypingIndicator struct {
	Type     string `json:"type"`
	IsTyping bool   `json:"isTyping"`
	UserID   string `json:"userId"`
}

type Pong struct {
	Type      string      `json:"type"`
	Timestamp json.Number `json:"timestamp"`
}

// Presence carries the live member count after an admit or evict.
type Presence struct {
	Type      string        `json:"type"`
	RoomID    domain.RoomID `json:"room_id"`
	UserCount int           `json:"user_count"`
}

// MessageType peeks at the tag of an inbound frame. Returns "" for
// frames that are not JSON objects, which callers treat as unknown.
func MessageType(data []byte) string {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return ""
	}
	return env.Type
}

// CanonicalTyping re-wraps a typing frame, defaulting missing fields.
func CanonicalTyping(data []byte) TypingIndicator {
	out := TypingIndicator{Type: TypeTypingIndicator, UserID: "unknown"}
	var in struct {
		IsTyping *bool   `json:"isTyping"`
		UserID   *string `json:"userId"`
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return out
	}
	if in.IsTyping != nil {
		out.IsTyping = *in.IsTyping
	}
	if in.UserID != nil {
		out.UserID = *in.UserID
	}
	return out
}

// PongFor echoes the ping's timestamp, defaulting to 0.
func PongFor(data []byte) Pong {
	var in struct {
		Timestamp json.Number `json:"timestamp"`
	}
	_ = json.Unmarshal(data, &in)
	if in.Timestamp == "" {
		in.Timestamp = "0"
	}
	return Pong{Type: TypePong, Timestamp: in.Timestamp}
}
