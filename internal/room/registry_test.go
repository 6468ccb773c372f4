package room

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/rocketscienceinc/gridroom-backend/internal/apperror"
	"github.com/rocketscienceinc/gridroom-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(grace time.Duration) *Registry {
	return NewRegistry(slog.New(slog.NewTextHandler(io.Discard, nil)), grace)
}

func TestRegistry_CreateRoom(t *testing.T) {
	t.Run("Creates a pvp room in waiting status", func(t *testing.T) {
		// Given: a registry
		registry := newTestRegistry(time.Minute)

		// When: creating a 3x3 pvp room
		created, err := registry.CreateRoom(3, entity.ModePVP)

		// Then: the room exists, waits for players and is findable by id
		require.NoError(t, err)
		assert.Equal(t, entity.StatusWaiting, created.Snapshot().Status)

		found, err := registry.GetRoom(created.ID())
		require.NoError(t, err)
		assert.Same(t, created, found)
	})

	t.Run("Creates a pvc room already playing", func(t *testing.T) {
		registry := newTestRegistry(time.Minute)

		created, err := registry.CreateRoom(4, entity.ModePVC)

		require.NoError(t, err)
		assert.Equal(t, entity.StatusPlaying, created.Snapshot().Status)
	})

	t.Run("Mints distinct ids", func(t *testing.T) {
		registry := newTestRegistry(time.Minute)

		first, err := registry.CreateRoom(3, entity.ModePVP)
		require.NoError(t, err)
		second, err := registry.CreateRoom(3, entity.ModePVP)
		require.NoError(t, err)

		assert.NotEqual(t, first.ID(), second.ID())
	})

	t.Run("Rejects an unsupported size", func(t *testing.T) {
		// Given: a registry
		registry := newTestRegistry(time.Minute)

		// When: asking for a 5x5 board
		_, err := registry.CreateRoom(5, entity.ModePVP)

		// Then: InvalidConfig, nothing stored
		require.ErrorIs(t, err, apperror.ErrInvalidConfig)
	})

	t.Run("Rejects an unknown mode", func(t *testing.T) {
		registry := newTestRegistry(time.Minute)

		_, err := registry.CreateRoom(3, "tournament")

		require.ErrorIs(t, err, apperror.ErrInvalidConfig)
	})
}

func TestRegistry_GetRoom(t *testing.T) {
	t.Run("Unknown id returns RoomNotFound", func(t *testing.T) {
		registry := newTestRegistry(time.Minute)

		_, err := registry.GetRoom("missing")

		require.ErrorIs(t, err, apperror.ErrRoomNotFound)
	})
}

func TestRegistry_Eviction(t *testing.T) {
	t.Run("Sweep removes a room idle beyond the grace interval", func(t *testing.T) {
		// Given: a registry with zero grace and a room nobody is attached to
		registry := newTestRegistry(0)
		created, err := registry.CreateRoom(3, entity.ModePVP)
		require.NoError(t, err)

		// When: sweeping a moment later
		registry.sweep(time.Now().Add(time.Second))

		// Then: the room is gone
		_, err = registry.GetRoom(created.ID())
		require.ErrorIs(t, err, apperror.ErrRoomNotFound)
	})

	t.Run("Sweep keeps a room while a connection is attached", func(t *testing.T) {
		// Given: a room with one live connection
		registry := newTestRegistry(0)
		created, err := registry.CreateRoom(3, entity.ModePVP)
		require.NoError(t, err)
		created.Attach()

		// When: sweeping well past the grace interval
		registry.sweep(time.Now().Add(time.Hour))

		// Then: the room survives
		_, err = registry.GetRoom(created.ID())
		require.NoError(t, err)
	})

	t.Run("Sweep keeps a recently idled room within the grace interval", func(t *testing.T) {
		// Given: a generous grace interval
		registry := newTestRegistry(time.Hour)
		created, err := registry.CreateRoom(3, entity.ModePVP)
		require.NoError(t, err)

		created.Attach()
		created.Detach()

		// When: sweeping right away
		registry.sweep(time.Now())

		// Then: the room is still there, refreshes are tolerated
		_, err = registry.GetRoom(created.ID())
		require.NoError(t, err)
	})
}
