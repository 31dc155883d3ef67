// Package postgres stores room documents in PostgreSQL via a pgx pool.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pavithrapri/collab-code-editor/internal/domain"
)

const schema = `CREATE TABLE IF NOT EXISTS rooms (
	room_id    TEXT PRIMARY KEY,
	code       TEXT NOT NULL,
	language   TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	is_active  BOOLEAN NOT NULL DEFAULT TRUE
);`

type Store struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create rooms table: %w", err)
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Create(ctx context.Context, room *domain.Room) error {
	_, err := s.pool.Exec(ctx,
		"INSERT INTO rooms (room_id, code, language, created_at) VALUES ($1, $2, $3, $4)",
		string(room.ID), room.Code, room.Language, room.CreatedAt)
	return err
}

func (s *Store) Load(ctx context.Context, id domain.RoomID) (*domain.Room, error) {
	room := domain.Room{ID: id}
	err := s.pool.QueryRow(ctx,
		"SELECT code, language, created_at FROM rooms WHERE room_id = $1 AND is_active",
		string(id)).Scan(&room.Code, &room.Language, &room.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *Store) SaveCode(ctx context.Context, id domain.RoomID, code string) error {
	tag, err := s.pool.Exec(ctx,
		"UPDATE rooms SET code = $1 WHERE room_id = $2 AND is_active", code, string(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRoomNotFound
	}
	return nil
}

// Delete deactivates the room; the row stays around for history.
func (s *Store) Delete(ctx context.Context, id domain.RoomID) error {
	tag, err := s.pool.Exec(ctx,
		"UPDATE rooms SET is_active = FALSE WHERE room_id = $1 AND is_active", string(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRoomNotFound
	}
	return nil
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}
