package collab

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/pavithrapri/collab-code-editor/internal/app"
	"github.com/pavithrapri/collab-code-editor/internal/config"
	"github.com/pavithrapri/collab-code-editor/internal/core"
	"github.com/pavithrapri/collab-code-editor/internal/domain"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Controller struct {
	Collab  *app.Collab
	limiter *FrameLimiter

	readLimit  int64
	sendBuffer int
}

func NewController(collab *app.Collab, cfg *config.Config) *Controller {
	return &Controller{
		Collab:     collab,
		limiter:    NewFrameLimiter(cfg.FrameRateLimit, cfg.FrameRateWindow),
		readLimit:  cfg.ReadLimit,
		sendBuffer: cfg.SendBuffer,
	}
}

// HandleWS upgrades the request and runs one session's lifetime: join,
// pump loop, departure. The read loop is the session's only suspension
// point; writes go through the buffered send channel.
func (ctl *Controller) HandleWS(ctx context.Context, c *gin.Context) {
	roomID := domain.RoomID(c.Param("room_id"))
	sid := core.SessionID(uuid.NewString())
	log.Info().Str("module", "adapters.collab").Str("sid", string(sid)).Str("room", string(roomID)).Msg("new WS connection")

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.collab").Msg("ws upgrade")
		return
	}
	if ctl.readLimit > 0 {
		ws.SetReadLimit(ctl.readLimit)
	}

	conn := newWSConn(ws, ctl.sendBuffer)
	sess := core.NewSession(sid, roomID, conn)

	ctx, cancel := context.WithCancel(ctx)
	handler := ctl.Collab.Connect(ctx, sess)

	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, cancel, handler, sess, conn)
}
