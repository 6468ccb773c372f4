package room

import "github.com/rocketscienceinc/gridroom-backend/internal/entity"

const snapshotType = "game_state"

// PlayerInfo is the public slice of a player slot. Connection state stays
// server-side.
type PlayerInfo struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
}

// Snapshot is the full room state sent wholesale to every connection after a
// mutation. The protocol is state-based: receivers never get diffs, so a
// client that missed updates converges on the next delivery.
type Snapshot struct {
	Type        string                `json:"type"`
	RoomID      string                `json:"room_id"`
	Board       []string              `json:"board"`
	Size        int                   `json:"size"`
	Mode        string                `json:"mode"`
	Status      string                `json:"status"`
	CurrentTurn string                `json:"current_turn"`
	Winner      string                `json:"winner"`
	WinningLine []int                 `json:"winning_line"`
	Players     map[string]PlayerInfo `json:"players"`
}

// snapshotLocked - builds an immutable copy of the room state. Callers hold
// the lock.
func (that *Room) snapshotLocked() Snapshot {
	players := make(map[string]PlayerInfo, len(that.players))
	for id, player := range that.players {
		players[id] = PlayerInfo{ID: player.ID, Symbol: player.Symbol}
	}

	line := make([]int, len(that.line))
	copy(line, that.line)

	return Snapshot{
		Type:        snapshotType,
		RoomID:      that.id,
		Board:       that.board.Clone(),
		Size:        that.size,
		Mode:        that.mode,
		Status:      that.status,
		CurrentTurn: that.turn,
		Winner:      that.winner,
		WinningLine: line,
		Players:     players,
	}
}

// Symbol returns the symbol held by the identity, or an empty string for
// spectators and unknown identities.
func (that *Room) Symbol(identity string) string {
	that.mu.Lock()
	defer that.mu.Unlock()

	if player, ok := that.players[identity]; ok {
		return player.Symbol
	}
	return entity.EmptyCell
}
