package core

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/pavithrapri/collab-code-editor/internal/domain"
)

// Hub is the threadsafe room registry and broadcast engine. Membership
// per room is an ordered slice (join order) so fan-out iteration is
// deterministic. Room entries exist only while they have members; an
// empty room is deleted and recreated lazily on the next admit.
type Hub struct {
	mu    sync.RWMutex
	rooms map[domain.RoomID][]*Session
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[domain.RoomID][]*Session)}
}

// Admit adds sess to the room, creating the entry lazily, then announces
// user_joined with the post-mutation count to everyone already present.
func (h *Hub) Admit(roomID domain.RoomID, sess *Session) {
	h.mu.Lock()
	members := h.rooms[roomID]
	for _, m := range members {
		if m == sess {
			h.mu.Unlock()
			return
		}
	}
	members = append(members, sess)
	h.rooms[roomID] = members
	count := len(members)
	h.mu.Unlock()

	log.Info().Str("module", "core.hub").Str("sid", string(sess.SID)).Str("room", string(roomID)).Int("count", count).Msg("member admitted")
	h.announce(roomID, TypeUserJoined, count, sess)
}

// Evict removes sess from the room. Absent sessions and unknown rooms
// are a no-op, so double-disconnect cleanup stays idempotent. The room
// entry is deleted once its last member leaves; otherwise the remainder
// is told user_left with the post-mutation count.
func (h *Hub) Evict(roomID domain.RoomID, sess *Session) {
	h.mu.Lock()
	members, ok := h.rooms[roomID]
	if !ok {
		h.mu.Unlock()
		return
	}
	idx := -1
	for i, m := range members {
		if m == sess {
			idx = i
			break
		}
	}
	if idx < 0 {
		h.mu.Unlock()
		return
	}
	members = append(members[:idx], members[idx+1:]...)
	if len(members) == 0 {
		delete(h.rooms, roomID)
		h.mu.Unlock()
		log.Info().Str("module", "core.hub").Str("room", string(roomID)).Msg("room emptied, entry removed")
		return
	}
	h.rooms[roomID] = members
	count := len(members)
	h.mu.Unlock()

	log.Info().Str("module", "core.hub").Str("sid", string(sess.SID)).Str("room", string(roomID)).Int("count", count).Msg("member evicted")
	h.announce(roomID, TypeUserLeft, count, nil)
}

// Members returns a snapshot of the room's membership in join order.
func (h *Hub) Members(roomID domain.RoomID) []*Session {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]*Session, len(h.rooms[roomID]))
	copy(out, h.rooms[roomID])
	return out
}

func (h *Hub) Count(roomID domain.RoomID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}

// Broadcast delivers frame to every member of the room except exclude.
// Delivery is best effort and independent per recipient; a recipient
// whose send fails is treated as dead and evicted after the fan-out
// completes, never mid-iteration.
func (h *Hub) Broadcast(roomID domain.RoomID, frame []byte, exclude *Session) {
	h.mu.RLock()
	members := make([]*Session, len(h.rooms[roomID]))
	copy(members, h.rooms[roomID])
	h.mu.RUnlock()

	var dead []*Session
	sent := 0
	for _, m := range members {
		if m == exclude {
			continue
		}
		if err := m.Conn.TrySend(frame); err != nil {
			dead = append(dead, m)
			continue
		}
		sent++
	}
	log.Debug().Str("module", "core.hub").Str("room", string(roomID)).Int("sent_to", sent).Int("dropped", len(dead)).Msg("broadcast result")

	for _, m := range dead {
		log.Warn().Str("module", "core.hub").Str("sid", string(m.SID)).Str("room", string(roomID)).Msg("send failed, dropping member")
		m.Conn.Close()
		h.Evict(roomID, m)
	}
}

// CloseAll force-closes every session and clears the registry. Used at
// shutdown; no presence events are emitted and failures are swallowed.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	rooms := h.rooms
	h.rooms = make(map[domain.RoomID][]*Session)
	h.mu.Unlock()

	for roomID, members := range rooms {
		for _, m := range members {
			m.Conn.Close()
		}
		log.Info().Str("module", "core.hub").Str("room", string(roomID)).Int("count", len(members)).Msg("room closed on shutdown")
	}
}

func (h *Hub) announce(roomID domain.RoomID, typ string, count int, exclude *Session) {
	frame, err := json.Marshal(Presence{Type: typ, RoomID: roomID, UserCount: count})
	if err != nil {
		log.Error().Err(err).Str("module", "core.hub").Msg("presence marshal")
		return
	}
	h.Broadcast(roomID, frame, exclude)
}
