package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavithrapri/collab-code-editor/internal/domain"
)

func TestCreateAndLoad(t *testing.T) {
	s := New()
	ctx := context.Background()

	room := domain.NewRoom("python")
	require.NoError(t, s.Create(ctx, room))

	got, err := s.Load(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, room.ID, got.ID)
	assert.Equal(t, room.Code, got.Code)
	assert.Equal(t, "python", got.Language)
}

func TestLoadUnknownRoom(t *testing.T) {
	s := New()
	_, err := s.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)
}

func TestSaveCodeOverwrites(t *testing.T) {
	s := New()
	ctx := context.Background()
	room := domain.NewRoom("javascript")
	require.NoError(t, s.Create(ctx, room))

	require.NoError(t, s.SaveCode(ctx, room.ID, "let x = 1"))
	require.NoError(t, s.SaveCode(ctx, room.ID, "let x = 2"))

	got, err := s.Load(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, "let x = 2", got.Code)
}

func TestSaveCodeUnknownRoom(t *testing.T) {
	s := New()
	err := s.SaveCode(context.Background(), "nope", "x")
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)
}

func TestDelete(t *testing.T) {
	s := New()
	ctx := context.Background()
	room := domain.NewRoom("")
	require.NoError(t, s.Create(ctx, room))

	require.NoError(t, s.Delete(ctx, room.ID))

	_, err := s.Load(ctx, room.ID)
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)
	assert.ErrorIs(t, s.Delete(ctx, room.ID), domain.ErrRoomNotFound)
}

func TestLoadReturnsCopy(t *testing.T) {
	s := New()
	ctx := context.Background()
	room := domain.NewRoom("python")
	require.NoError(t, s.Create(ctx, room))

	got, err := s.Load(ctx, room.ID)
	require.NoError(t, err)
	got.Code = "mutated"

	again, err := s.Load(ctx, room.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", again.Code)
}
