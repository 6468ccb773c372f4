package room

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/gridroom-backend/internal/apperror"
	"github.com/rocketscienceinc/gridroom-backend/internal/entity"
	"github.com/rocketscienceinc/gridroom-backend/internal/metrics"
)

const roomIDLength = 8

// Registry is the process-wide mapping from room id to room. The map itself
// is guarded by its own mutex; each room's state is confined to the room's
// lock, so lookups never contend with gameplay.
type Registry struct {
	logger *slog.Logger

	mu    sync.RWMutex
	rooms map[string]*Room

	grace time.Duration
}

func NewRegistry(logger *slog.Logger, grace time.Duration) *Registry {
	return &Registry{
		logger: logger.With("component", "registry"),
		rooms:  make(map[string]*Room),
		grace:  grace,
	}
}

// CreateRoom - validates the configuration, mints a fresh shareable id and
// stores the new room.
func (that *Registry) CreateRoom(size int, mode string) (*Room, error) {
	if size < entity.MinBoardSize || size > entity.MaxBoardSize {
		return nil, fmt.Errorf("%w: size %d", apperror.ErrInvalidConfig, size)
	}

	if mode != entity.ModePVP && mode != entity.ModePVC {
		return nil, fmt.Errorf("%w: mode %q", apperror.ErrInvalidConfig, mode)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	id := that.newRoomIDLocked()
	newRoom := New(id, size, mode)
	that.rooms[id] = newRoom

	metrics.ActiveRooms.Inc()
	that.logger.Info("room created", "roomID", id, "size", size, "mode", mode)

	return newRoom, nil
}

// GetRoom - looks a room up by id.
func (that *Registry) GetRoom(id string) (*Room, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	existingRoom, ok := that.rooms[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrRoomNotFound, id)
	}

	return existingRoom, nil
}

func (that *Registry) newRoomIDLocked() string {
	for {
		id := uuid.NewString()[:roomIDLength]
		if _, exists := that.rooms[id]; !exists {
			return id
		}
	}
}

// StartJanitor - runs the idle-eviction sweep until the context is
// cancelled.
func (that *Registry) StartJanitor(done <-chan struct{}, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				that.sweep(time.Now())
			}
		}
	}()
}

// sweep - removes rooms that have had zero attached connections for longer
// than the grace interval. Evictable takes the room lock, so any in-flight
// operation finishes before its room is judged.
func (that *Registry) sweep(now time.Time) {
	that.mu.Lock()
	defer that.mu.Unlock()

	for id, idleRoom := range that.rooms {
		if idleRoom.Evictable(now, that.grace) {
			delete(that.rooms, id)
			metrics.ActiveRooms.Dec()
			that.logger.Info("evicted idle room", "roomID", id)
		}
	}
}
