package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/gridroom-backend/internal/apperror"
	"github.com/rocketscienceinc/gridroom-backend/internal/entity"
	"github.com/rocketscienceinc/gridroom-backend/internal/metrics"
	"github.com/rocketscienceinc/gridroom-backend/internal/repository"
	"github.com/rocketscienceinc/gridroom-backend/internal/room"
)

const historyWriteTimeout = 5 * time.Second

type roomGetter interface {
	GetRoom(id string) (*room.Room, error)
}

type historyRecorder interface {
	Record(ctx context.Context, result *repository.GameResult) error
}

// Gateway accepts websocket connections, binds each to a (room, identity,
// role) and fans room snapshots back out to every connection on the room.
type Gateway struct {
	logger   *slog.Logger
	registry roomGetter
	history  historyRecorder
	upgrader websocket.Upgrader

	mu    sync.RWMutex
	conns map[string]map[*client]struct{}
}

// New - builds the gateway. history may be nil when no result log is wired.
func New(logger *slog.Logger, registry roomGetter, history historyRecorder) *Gateway {
	return &Gateway{
		logger:   logger.With("component", "gateway"),
		registry: registry,
		history:  history,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(_ *http.Request) bool { return true },
		},
		conns: make(map[string]map[*client]struct{}),
	}
}

// Handle - upgrades the request and drives the whole session: join, initial
// snapshot, intent loop, disconnect.
func (that *Gateway) Handle(w http.ResponseWriter, r *http.Request, roomID, identity, role, preferred string) {
	log := that.logger.With("roomID", roomID, "identity", identity)

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	gameRoom, err := that.registry.GetRoom(roomID)
	if err != nil {
		message := websocket.FormatCloseMessage(closeRoomNotFound, "room not found")
		_ = conn.WriteControl(websocket.CloseMessage, message, time.Now().Add(writeWait))
		conn.Close()
		return
	}

	if role != room.RoleSpectator {
		role = room.RolePlayer
	}

	granted, changed, err := gameRoom.Join(identity, role, preferred)
	if errors.Is(err, apperror.ErrRoomFull) {
		// Not a hard failure: the caller observes the game instead.
		log.Warn("room full, downgrading to spectator")
	}

	connClient := newClient(conn, roomID, identity, granted)

	gameRoom.Attach()
	that.register(connClient)
	metrics.ActiveConnections.Inc()
	go connClient.writePump()

	defer func() {
		that.unregister(connClient)
		close(connClient.send)
		metrics.ActiveConnections.Dec()

		if connClient.role == room.RolePlayer {
			if snapshot, ok := gameRoom.Disconnect(identity); ok {
				that.broadcast(roomID, snapshot)
			}
		}

		gameRoom.Detach()
		log.Info("connection closed")
	}()

	// A joining client never waits for the next state change to see where
	// the game stands.
	that.sendSnapshot(connClient, gameRoom.Snapshot())

	if changed {
		that.broadcast(roomID, gameRoom.Snapshot())
	}

	log.Info("connection established", "role", granted)

	that.readLoop(connClient, gameRoom)
}

// readLoop - pulls intents off the socket until it drops.
func (that *Gateway) readLoop(connClient *client, gameRoom *room.Room) {
	log := that.logger.With("roomID", connClient.roomID, "identity", connClient.identity)

	connClient.conn.SetReadLimit(maxIntentSize)
	_ = connClient.conn.SetReadDeadline(time.Now().Add(pongWait))
	connClient.conn.SetPongHandler(func(string) error {
		return connClient.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := connClient.conn.ReadMessage()
		if err != nil {
			return
		}

		var intent Intent
		if err = json.Unmarshal(raw, &intent); err != nil {
			that.sendError(connClient, "malformed intent")
			continue
		}

		switch intent.Type {
		case intentMove:
			that.handleMove(connClient, gameRoom, intent)
		case intentReset:
			that.handleReset(connClient, gameRoom)
		default:
			log.Debug("unknown intent", "type", intent.Type)
			that.sendError(connClient, "unknown intent type")
		}
	}
}

func (that *Gateway) handleMove(connClient *client, gameRoom *room.Room, intent Intent) {
	if connClient.role != room.RolePlayer {
		that.sendError(connClient, "spectators cannot move")
		return
	}

	if intent.Index == nil {
		that.sendError(connClient, "move requires an index")
		return
	}

	snapshot, err := gameRoom.Move(connClient.identity, *intent.Index)
	if err != nil {
		that.sendError(connClient, err.Error())
		return
	}

	metrics.MovesTotal.WithLabelValues(snapshot.Mode).Inc()
	that.broadcast(connClient.roomID, snapshot)

	if snapshot.Status == entity.StatusFinished {
		metrics.GamesFinishedTotal.WithLabelValues(snapshot.Winner).Inc()
		go that.recordResult(snapshot)
	}
}

func (that *Gateway) handleReset(connClient *client, gameRoom *room.Room) {
	snapshot, applied := gameRoom.Reset(connClient.identity)
	if !applied {
		return
	}

	that.broadcast(connClient.roomID, snapshot)
}

// broadcast - delivers one serialized snapshot to every connection on the
// room. A slow or dead connection is forced closed and cleaned up by its own
// session goroutine, never blocking the others.
func (that *Gateway) broadcast(roomID string, snapshot room.Snapshot) {
	message, err := json.Marshal(snapshot)
	if err != nil {
		that.logger.Error("failed to marshal snapshot", "roomID", roomID, "error", err)
		return
	}

	that.mu.RLock()
	defer that.mu.RUnlock()

	for connClient := range that.conns[roomID] {
		if !connClient.enqueue(message) {
			connClient.conn.Close()
		}
	}
}

func (that *Gateway) sendSnapshot(connClient *client, snapshot room.Snapshot) {
	message, err := json.Marshal(snapshot)
	if err != nil {
		that.logger.Error("failed to marshal snapshot", "error", err)
		return
	}

	connClient.enqueue(message)
}

func (that *Gateway) sendError(connClient *client, errorMsg string) {
	message, err := json.Marshal(ErrorReply{Type: errorReplyType, Error: errorMsg})
	if err != nil {
		return
	}

	connClient.enqueue(message)
}

func (that *Gateway) recordResult(snapshot room.Snapshot) {
	if that.history == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), historyWriteTimeout)
	defer cancel()

	result := &repository.GameResult{
		RoomID:      snapshot.RoomID,
		Size:        snapshot.Size,
		Mode:        snapshot.Mode,
		Winner:      snapshot.Winner,
		WinningLine: snapshot.WinningLine,
		FinishedAt:  time.Now().UTC(),
	}

	if err := that.history.Record(ctx, result); err != nil {
		that.logger.Error("failed to record game result", "roomID", snapshot.RoomID, "error", err)
	}
}

func (that *Gateway) register(connClient *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.conns[connClient.roomID] == nil {
		that.conns[connClient.roomID] = make(map[*client]struct{})
	}
	that.conns[connClient.roomID][connClient] = struct{}{}
}

func (that *Gateway) unregister(connClient *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.conns[connClient.roomID], connClient)
	if len(that.conns[connClient.roomID]) == 0 {
		delete(that.conns, connClient.roomID)
	}
}
