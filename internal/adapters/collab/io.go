package collab

import (
	"context"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/pavithrapri/collab-code-editor/internal/app"
	"github.com/pavithrapri/collab-code-editor/internal/core"
)

const writeTimeout = 5 * time.Second

func (ctl *Controller) writePump(ctx context.Context, c *wsConn) {
	for {
		select {
		case <-ctx.Done():
			log.Debug().Str("module", "adapters.collab").Msg("writePump ctx done")
			return
		case data, ok := <-c.send:
			if !ok {
				log.Debug().Str("module", "adapters.collab").Msg("writePump channel closed")
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
				log.Error().Err(err).Str("module", "adapters.collab").Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "adapters.collab").Msg("writePump write error")
				return
			}
		}
	}
}

// readPump owns the session teardown: any read error, expected close or
// not, ends the session the same way.
func (ctl *Controller) readPump(ctx context.Context, cancel context.CancelFunc, handler *app.SessionHandler, sess *core.Session, c *wsConn) {
	defer func() {
		log.Info().Str("module", "adapters.collab").Str("sid", string(sess.SID)).Msg("readPump closing")
		handler.Close()
		c.Close()
		ctl.limiter.Forget(sess.SID)
		cancel()
	}()

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "adapters.collab").Str("sid", string(sess.SID)).Msg("readPump ctx done")
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				log.Info().Err(err).Str("module", "adapters.collab").Str("sid", string(sess.SID)).Msg("connection closed")
				return
			}
			if !ctl.limiter.Allow(sess.SID) {
				log.Warn().Str("module", "adapters.collab").Str("sid", string(sess.SID)).Msg("frame rate limit exceeded, dropping frame")
				continue
			}
			handler.HandleFrame(ctx, data)
		}
	}
}
