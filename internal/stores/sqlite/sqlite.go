// Package sqlite stores room documents in a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pavithrapri/collab-code-editor/internal/domain"
)

const schema = `CREATE TABLE IF NOT EXISTS rooms (
	room_id    TEXT PRIMARY KEY,
	code       TEXT NOT NULL,
	language   TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL,
	is_active  INTEGER NOT NULL DEFAULT 1
);`

type Store struct {
	db *sql.DB
}

func New(dataSourceName string) (*Store, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create rooms table: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Create(ctx context.Context, room *domain.Room) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO rooms (room_id, code, language, created_at) VALUES (?, ?, ?, ?)",
		string(room.ID), room.Code, room.Language, room.CreatedAt)
	return err
}

func (s *Store) Load(ctx context.Context, id domain.RoomID) (*domain.Room, error) {
	room := domain.Room{ID: id}
	err := s.db.QueryRowContext(ctx,
		"SELECT code, language, created_at FROM rooms WHERE room_id = ? AND is_active = 1",
		string(id)).Scan(&room.Code, &room.Language, &room.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *Store) SaveCode(ctx context.Context, id domain.RoomID, code string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE rooms SET code = ? WHERE room_id = ? AND is_active = 1",
		code, string(id))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrRoomNotFound
	}
	return nil
}

// Delete deactivates the room; the row stays around for history.
func (s *Store) Delete(ctx context.Context, id domain.RoomID) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE rooms SET is_active = 0 WHERE room_id = ? AND is_active = 1", string(id))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrRoomNotFound
	}
	return nil
}

func (s *Store) Close() error { return s.db.Close() }
