package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/pavithrapri/collab-code-editor/internal/app/suggest"
	"github.com/pavithrapri/collab-code-editor/internal/domain"
	"github.com/pavithrapri/collab-code-editor/internal/stores"
)

type Handlers struct {
	Store     stores.Store
	Suggester *suggest.Service
}

type RoomCreateRequest struct {
	Language string `json:"language"`
}

type RoomResponse struct {
	RoomID    string    `json:"room_id"`
	Code      string    `json:"code"`
	Language  string    `json:"language"`
	CreatedAt time.Time `json:"created_at"`
}

type CodeUpdateRequest struct {
	Code           string `json:"code"`
	CursorPosition int    `json:"cursor_position"`
}

func roomResponse(room *domain.Room) RoomResponse {
	return RoomResponse{
		RoomID:    string(room.ID),
		Code:      room.Code,
		Language:  room.Language,
		CreatedAt: room.CreatedAt,
	}
}

func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "CodeSync Pro API",
		"version": "1.0.0",
		"status":  "running",
		"endpoints": gin.H{
			"rooms":        "/api/rooms",
			"autocomplete": "/api/autocomplete",
			"websocket":    "/ws/{room_id}",
		},
	})
}

func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (h *Handlers) CreateRoom(c *gin.Context) {
	var req RoomCreateRequest
	// Body is optional; an empty one falls back to the default language.
	_ = c.ShouldBindJSON(&req)

	room := domain.NewRoom(req.Language)
	if err := h.Store.Create(c.Request.Context(), room); err != nil {
		log.Error().Err(err).Str("module", "adapters.http").Msg("room create failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create room"})
		return
	}

	log.Info().Str("module", "adapters.http").Str("room", string(room.ID)).Str("language", room.Language).Msg("room created")
	c.JSON(http.StatusCreated, roomResponse(room))
}

func (h *Handlers) GetRoom(c *gin.Context) {
	id := domain.RoomID(c.Param("room_id"))
	room, err := h.Store.Load(c.Request.Context(), id)
	if errors.Is(err, domain.ErrRoomNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.http").Str("room", string(id)).Msg("room load failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load room"})
		return
	}
	c.JSON(http.StatusOK, roomResponse(room))
}

func (h *Handlers) UpdateCode(c *gin.Context) {
	id := domain.RoomID(c.Param("room_id"))
	var req CodeUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	err := h.Store.SaveCode(c.Request.Context(), id, req.Code)
	if errors.Is(err, domain.ErrRoomNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.http").Str("room", string(id)).Msg("code update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update code"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Code updated"})
}

func (h *Handlers) DeleteRoom(c *gin.Context) {
	id := domain.RoomID(c.Param("room_id"))
	err := h.Store.Delete(c.Request.Context(), id)
	if errors.Is(err, domain.ErrRoomNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.http").Str("room", string(id)).Msg("room delete failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete room"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Room deleted"})
}
