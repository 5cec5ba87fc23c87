package websocket

import (
	"encoding/json"

	"github.com/pixelforge/tictactoe-backend/internal/entity"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Payload carries requests and responses for every action. Cell is a
// pointer so that cell 0 is distinguishable from a missing field.
type Payload struct {
	Game     *entity.Game `json:"game,omitempty"`
	Cell     *int         `json:"cell,omitempty"`
	Theme    string       `json:"theme,omitempty"`
	Accepted *bool        `json:"accepted,omitempty"`
	Error    string       `json:"error,omitempty"`
}
