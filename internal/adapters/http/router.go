// Package http wires the REST surface and the websocket upgrade route.
package http

import (
	"context"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/pavithrapri/collab-code-editor/internal/adapters/collab"
	"github.com/pavithrapri/collab-code-editor/internal/app/suggest"
	"github.com/pavithrapri/collab-code-editor/internal/config"
	"github.com/pavithrapri/collab-code-editor/internal/stores"
)

func genClientToken() string {
	return uuid.NewString()
}

// ClientTokenMiddleware tags every browser with a stable token used as
// the userId default on the client side.
func ClientTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie("ct")
		if token == "" {
			token = genClientToken()
			c.SetCookie("ct", token, 3600*24*7, "/", "", false, true)
		}
		c.Set("client_token", token)
		c.Next()
	}
}

func SetupRouter(ctx context.Context, cfg *config.Config, store stores.Store, suggester *suggest.Service, ws *collab.Controller) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	cookieStore := cookie.NewStore([]byte(cfg.Secret))
	r.Use(sessions.Sessions("CodeSyncSessions", cookieStore))
	r.Use(ClientTokenMiddleware())

	h := &Handlers{Store: store, Suggester: suggester}

	r.GET("/", h.Root)
	r.GET("/health", h.Health)

	api := r.Group("/api")
	api.POST("/rooms", h.CreateRoom)
	api.GET("/rooms/:room_id", h.GetRoom)
	api.PUT("/rooms/:room_id/code", h.UpdateCode)
	api.DELETE("/rooms/:room_id", h.DeleteRoom)
	api.POST("/autocomplete", h.Autocomplete)

	r.GET("/ws/:room_id", func(c *gin.Context) {
		log.Info().Str("module", "adapters.http").Str("room", c.Param("room_id")).Msg("ws endpoint hit")
		ws.HandleWS(ctx, c)
	})

	log.Info().Str("module", "adapters.http").Msg("router setup")
	return r
}
