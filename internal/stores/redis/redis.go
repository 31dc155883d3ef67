// Package redis stores room documents as Redis hashes, one per room.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pavithrapri/collab-code-editor/internal/domain"
)

type Store struct {
	rdb *redis.Client
}

func New(ctx context.Context, addr string) (*Store, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return &Store{rdb: rdb}, nil
}

func key(id domain.RoomID) string { return "room:" + string(id) }

func (s *Store) Create(ctx context.Context, room *domain.Room) error {
	return s.rdb.HSet(ctx, key(room.ID),
		"code", room.Code,
		"language", room.Language,
		"created_at", room.CreatedAt.Format(time.RFC3339Nano),
	).Err()
}

func (s *Store) Load(ctx context.Context, id domain.RoomID) (*domain.Room, error) {
	fields, err := s.rdb.HGetAll(ctx, key(id)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, domain.ErrRoomNotFound
	}
	room := domain.Room{
		ID:       id,
		Code:     fields["code"],
		Language: fields["language"],
	}
	if ts, perr := time.Parse(time.RFC3339Nano, fields["created_at"]); perr == nil {
		room.CreatedAt = ts
	}
	return &room, nil
}

func (s *Store) SaveCode(ctx context.Context, id domain.RoomID, code string) error {
	n, err := s.rdb.Exists(ctx, key(id)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrRoomNotFound
	}
	return s.rdb.HSet(ctx, key(id), "code", code).Err()
}

func (s *Store) Delete(ctx context.Context, id domain.RoomID) error {
	n, err := s.rdb.Del(ctx, key(id)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrRoomNotFound
	}
	return nil
}

func (s *Store) Close() error { return s.rdb.Close() }
