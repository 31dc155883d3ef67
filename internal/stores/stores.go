// Package stores selects the document store backend for room documents.
package stores

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/pavithrapri/collab-code-editor/internal/config"
	"github.com/pavithrapri/collab-code-editor/internal/domain"
	"github.com/pavithrapri/collab-code-editor/internal/stores/memory"
	"github.com/pavithrapri/collab-code-editor/internal/stores/postgres"
	"github.com/pavithrapri/collab-code-editor/internal/stores/redis"
	"github.com/pavithrapri/collab-code-editor/internal/stores/sqlite"
)

// Store is the synchronous load/save collaborator the collaboration
// core writes documents through. Load and SaveCode return
// domain.ErrRoomNotFound for unknown or deleted rooms.
type Store interface {
	Create(ctx context.Context, room *domain.Room) error
	Load(ctx context.Context, id domain.RoomID) (*domain.Room, error)
	SaveCode(ctx context.Context, id domain.RoomID, code string) error
	Delete(ctx context.Context, id domain.RoomID) error
	Close() error
}

// Open builds the store named by the config, defaulting to in-memory.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Storage.Type {
	case "sqlite":
		log.Info().Str("module", "stores").Str("storage", "sqlite").Str("dsn", cfg.Storage.DSN).Msg("using storage")
		return sqlite.New(cfg.Storage.DSN)
	case "postgres":
		log.Info().Str("module", "stores").Str("storage", "postgres").Msg("using storage")
		return postgres.New(ctx, cfg.Storage.DSN)
	case "redis":
		log.Info().Str("module", "stores").Str("storage", "redis").Str("addr", cfg.Storage.Addr).Msg("using storage")
		return redis.New(ctx, cfg.Storage.Addr)
	default:
		log.Info().Str("module", "stores").Str("storage", "memory").Msg("using storage")
		return memory.New(), nil
	}
}
