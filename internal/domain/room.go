// Package domain contains entities without logic, just meta-data.
package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const DefaultLanguage = "python"

var ErrRoomNotFound = errors.New("room not found")

type RoomID string

// Room is the persisted document context of one collaboration room.
type Room struct {
	ID        RoomID    `json:"room_id"`
	Code      string    `json:"code"`
	Language  string    `json:"language"`
	CreatedAt time.Time `json:"created_at"`
}

// NewRoomID keeps the room_<hex12> token format clients already rely on.
func NewRoomID() RoomID {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return RoomID("room_" + hex[:12])
}

// WelcomeCode is the banner every fresh room document starts with.
func WelcomeCode(language string) string {
	return fmt.Sprintf("# Welcome to CodeSync Pro\n# Language: %s\n# Start coding together!\n\n", language)
}

// NewRoom avoids raw literals in adapters and keeps construction obvious.
func NewRoom(language string) *Room {
	if language == "" {
		language = DefaultLanguage
	}
	return &Room{
		ID:        NewRoomID(),
		Code:      WelcomeCode(language),
		Language:  language,
		CreatedAt: time.Now().UTC(),
	}
}
