package room

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rocketscienceinc/gridroom-backend/internal/apperror"
	"github.com/rocketscienceinc/gridroom-backend/internal/entity"
)

const (
	RolePlayer    = "player"
	RoleSpectator = "spectator"
)

const maxPlayers = 2

// Room owns one game's authoritative state. Every mutation runs under the
// room's own mutex, so intents against the same room never interleave while
// separate rooms proceed in parallel.
type Room struct {
	mu sync.Mutex

	id     string
	size   int
	mode   string
	board  entity.Board
	status string
	turn   string
	winner string
	line   []int

	players map[string]*entity.Player

	attached  int
	idleSince time.Time
}

func New(id string, size int, mode string) *Room {
	that := &Room{
		id:        id,
		size:      size,
		mode:      mode,
		board:     entity.NewBoard(size),
		status:    entity.StatusWaiting,
		turn:      entity.SymbolX,
		players:   make(map[string]*entity.Player),
		idleSince: time.Now(),
	}

	// A pvc room never waits: the computer occupies the O slot up front.
	if mode == entity.ModePVC {
		that.players[entity.ComputerPlayerID] = &entity.Player{
			ID:        entity.ComputerPlayerID,
			Symbol:    entity.SymbolO,
			Connected: true,
		}
		that.status = entity.StatusPlaying
	}

	return that
}

func (that *Room) ID() string { return that.id }

// Join - registers an identity in the room. Spectators are pure observers
// and never touch game state. A player identity that already holds a slot is
// reconnected with its symbol intact; a fresh identity takes a free slot,
// honoring the preferred symbol when it is untaken. When both slots belong
// to other identities the caller is downgraded to spectator and ErrRoomFull
// reported alongside.
//
// The returned role is the one actually granted; changed reports whether the
// roster or status mutated and a broadcast is due.
func (that *Room) Join(identity, role, preferred string) (granted string, changed bool, err error) {
	if role == RoleSpectator {
		return RoleSpectator, false, nil
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	// The computer's slot can never be claimed over the wire.
	if that.mode == entity.ModePVC && identity == entity.ComputerPlayerID {
		return RoleSpectator, false, nil
	}

	if player, ok := that.players[identity]; ok {
		player.Connected = true
		return RolePlayer, true, nil
	}

	if len(that.players) >= maxPlayers {
		return RoleSpectator, false, fmt.Errorf("%w: %s", apperror.ErrRoomFull, that.id)
	}

	that.players[identity] = &entity.Player{
		ID:        identity,
		Symbol:    that.assignSymbol(preferred),
		Connected: true,
	}

	if that.mode == entity.ModePVP && len(that.players) == maxPlayers {
		that.status = entity.StatusPlaying
	}

	return RolePlayer, true, nil
}

// assignSymbol - honors the preferred symbol when free, otherwise falls back
// to X-then-O. Callers hold the lock.
func (that *Room) assignSymbol(preferred string) string {
	taken := make(map[string]bool, maxPlayers)
	for _, player := range that.players {
		taken[player.Symbol] = true
	}

	preferred = strings.ToUpper(preferred)
	if (preferred == entity.SymbolX || preferred == entity.SymbolO) && !taken[preferred] {
		return preferred
	}

	if !taken[entity.SymbolX] {
		return entity.SymbolX
	}
	return entity.SymbolO
}

// Disconnect - marks the player's slot as disconnected. The slot and its
// symbol are kept so the same identity can rejoin, and the game status never
// changes because of a dropped socket.
func (that *Room) Disconnect(identity string) (Snapshot, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	player, ok := that.players[identity]
	if !ok {
		return Snapshot{}, false
	}

	player.Connected = false

	return that.snapshotLocked(), true
}

// Move - validates and applies one move for the identity. In pvc mode the
// computer's reply is computed synchronously, so the returned snapshot never
// shows the turn pointing at the computer while the game is still on.
func (that *Room) Move(identity string, index int) (Snapshot, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.status != entity.StatusPlaying {
		return Snapshot{}, apperror.ErrNotYourTurn
	}

	player, ok := that.players[identity]
	if !ok || player.Symbol != that.turn {
		return Snapshot{}, apperror.ErrNotYourTurn
	}

	if err := that.board.Apply(index, player.Symbol); err != nil {
		return Snapshot{}, err
	}

	that.advanceLocked()

	if that.status == entity.StatusPlaying && that.mode == entity.ModePVC {
		if computer, ok := that.players[entity.ComputerPlayerID]; ok && computer.Symbol == that.turn {
			that.computerMoveLocked(computer)
		}
	}

	return that.snapshotLocked(), nil
}

// advanceLocked - evaluates the board after a move and either finishes the
// game or hands the turn over.
func (that *Room) advanceLocked() {
	switch winner, line := that.board.Evaluate(); winner {
	case entity.SymbolX, entity.SymbolO:
		that.winner = winner
		that.line = line
		that.status = entity.StatusFinished
	case entity.WinnerDraw:
		that.winner = entity.WinnerDraw
		that.status = entity.StatusFinished
	default:
		that.turn = entity.ToggleSymbol(that.turn)
	}
}

func (that *Room) computerMoveLocked(computer *entity.Player) {
	cell := chooseCell(&that.board, computer.Symbol, entity.ToggleSymbol(computer.Symbol))
	if cell < 0 {
		return
	}

	// chooseCell only ever returns an empty cell, so Apply cannot fail here.
	if err := that.board.Apply(cell, computer.Symbol); err != nil {
		return
	}

	that.advanceLocked()
}

// Reset - starts a fresh game in a finished room. Only a registered player
// may reset, the board is cleared, symbols stay put and X opens again. It is
// a no-op while the game is not finished.
func (that *Room) Reset(identity string) (Snapshot, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.players[identity]; !ok {
		return Snapshot{}, false
	}

	if that.status != entity.StatusFinished {
		return Snapshot{}, false
	}

	that.board.Clear()
	that.status = entity.StatusPlaying
	that.turn = entity.SymbolX
	that.winner = ""
	that.line = nil

	return that.snapshotLocked(), true
}

func (that *Room) Snapshot() Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.snapshotLocked()
}

// Attach - accounts for one more live connection on this room.
func (that *Room) Attach() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.attached++
}

// Detach - drops the connection count and stamps the moment the room went
// idle so the janitor can apply the eviction grace interval.
func (that *Room) Detach() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.attached--
	if that.attached <= 0 {
		that.attached = 0
		that.idleSince = time.Now()
	}
}

// Evictable reports whether the room has been without connections for longer
// than the grace interval.
func (that *Room) Evictable(now time.Time, grace time.Duration) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.attached == 0 && now.Sub(that.idleSince) > grace
}
