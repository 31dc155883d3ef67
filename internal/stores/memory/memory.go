// Package memory is the default, dependency-free document store.
package memory

import (
	"context"
	"sync"

	"github.com/pavithrapri/collab-code-editor/internal/domain"
)

type Store struct {
	mu    sync.RWMutex
	rooms map[domain.RoomID]domain.Room
}

func New() *Store {
	return &Store{rooms: make(map[domain.RoomID]domain.Room)}
}

func (s *Store) Create(ctx context.Context, room *domain.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[room.ID] = *room
	return nil
}

func (s *Store) Load(ctx context.Context, id domain.RoomID) (*domain.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[id]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	return &room, nil
}

func (s *Store) SaveCode(ctx context.Context, id domain.RoomID, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[id]
	if !ok {
		return domain.ErrRoomNotFound
	}
	room.Code = code
	s.rooms[id] = room
	return nil
}

func (s *Store) Delete(ctx context.Context, id domain.RoomID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[id]; !ok {
		return domain.ErrRoomNotFound
	}
	delete(s.rooms, id)
	return nil
}

func (s *Store) Close() error { return nil }
