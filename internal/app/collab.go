// Package app drives the collaboration protocol: session lifecycle,
// inbound frame dispatch, and shutdown of the real-time plane.
package app

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/pavithrapri/collab-code-editor/internal/core"
	"github.com/pavithrapri/collab-code-editor/internal/domain"
	"github.com/pavithrapri/collab-code-editor/internal/stores"
)

type Collab struct {
	Hub   *core.Hub
	Store stores.Store
}

func NewCollab(hub *core.Hub, store stores.Store) *Collab {
	return &Collab{Hub: hub, Store: store}
}

// SessionHandler is the per-connection state machine. Connect moves the
// session from connecting to active; Close is the terminal transition,
// after which frames are no longer processed.
type SessionHandler struct {
	collab *Collab
	sess   *core.Session

	// docFound remembers whether the room document existed at join
	// time. When it did not, later code_updates are broadcast but
	// never persisted; the room is not created on write.
	docFound bool
	closed   bool
}

// Connect loads the room document, pushes initial_state to the joiner
// alone when a document exists, and admits the session into the room.
// A storage miss is not an error: the session still joins the
// broadcast room with an empty document context.
func (c *Collab) Connect(ctx context.Context, sess *core.Session) *SessionHandler {
	h := &SessionHandler{collab: c, sess: sess}

	room, err := c.Store.Load(ctx, sess.Room)
	switch {
	case err == nil:
		h.docFound = true
		frame, merr := json.Marshal(core.InitialState{
			Type:     core.TypeInitialState,
			Code:     room.Code,
			Language: room.Language,
		})
		if merr == nil {
			if serr := sess.Conn.TrySend(frame); serr != nil {
				log.Warn().Err(serr).Str("module", "app.collab").Str("sid", string(sess.SID)).Msg("initial_state send failed")
			}
		}
	case errors.Is(err, domain.ErrRoomNotFound):
		log.Info().Str("module", "app.collab").Str("room", string(sess.Room)).Msg("no stored document, joining empty room")
	default:
		log.Error().Err(err).Str("module", "app.collab").Str("room", string(sess.Room)).Msg("document load failed")
	}

	c.Hub.Admit(sess.Room, sess)
	return h
}

// HandleFrame dispatches one inbound frame by its type tag. Unknown
// tags and malformed frames are ignored, not errors.
func (h *SessionHandler) HandleFrame(ctx context.Context, raw []byte) {
	if h.closed {
		return
	}
	sess := h.sess

	switch core.MessageType(raw) {
	case core.TypeCodeUpdate:
		if h.docFound {
			var upd core.CodeUpdate
			if err := json.Unmarshal(raw, &upd); err == nil {
				if err := h.collab.Store.SaveCode(ctx, sess.Room, upd.Code); err != nil {
					// Update is lost for persistence only; peers still get it.
					log.Error().Err(err).Str("module", "app.collab").Str("room", string(sess.Room)).Msg("code save failed")
				}
			}
		}
		h.collab.Hub.Broadcast(sess.Room, raw, sess)

	case core.TypeCursorPosition:
		h.collab.Hub.Broadcast(sess.Room, raw, sess)

	case core.TypeTypingIndicator:
		frame, err := json.Marshal(core.CanonicalTyping(raw))
		if err != nil {
			return
		}
		h.collab.Hub.Broadcast(sess.Room, frame, sess)

	case core.TypePing:
		frame, err := json.Marshal(core.PongFor(raw))
		if err != nil {
			return
		}
		if serr := sess.Conn.TrySend(frame); serr != nil {
			log.Warn().Err(serr).Str("module", "app.collab").Str("sid", string(sess.SID)).Msg("pong send failed")
		}

	default:
		log.Debug().Str("module", "app.collab").Str("type", core.MessageType(raw)).Msg("unknown message type ignored")
	}
}

// Close is the terminal transition: the session leaves its room and no
// further frames are processed. Safe to call more than once.
func (h *SessionHandler) Close() {
	if h.closed {
		return
	}
	h.closed = true
	h.collab.Hub.Evict(h.sess.Room, h.sess)
}

// Shutdown force-closes every active session without presence fan-out.
func (c *Collab) Shutdown() {
	c.Hub.CloseAll()
}
