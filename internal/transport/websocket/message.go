package websocket

// Intent is a client-submitted request to change room state. Index is a
// pointer so a missing field is distinguishable from cell 0.
type Intent struct {
	Type  string `json:"type"`
	Index *int   `json:"index,omitempty"`
}

const (
	intentMove  = "move"
	intentReset = "reset"
)

// ErrorReply is answered privately to the sender; rejected intents are never
// broadcast.
type ErrorReply struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

const errorReplyType = "error"

// Close codes mirrored from the session protocol.
const (
	closeRoomNotFound = 4004
)
