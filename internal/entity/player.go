package entity

// ComputerPlayerID is the synthetic identity that fills the second slot of a
// pvc room. It is created together with the room and never disconnects.
const ComputerPlayerID = "computer"

type Player struct {
	ID        string `json:"id"`
	Symbol    string `json:"symbol,omitempty"`
	Connected bool   `json:"-"`
}
