package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-minimax/transport"
)

const (
	actionNewGame = "game:new"
	actionState   = "game:state"
	actionTurn    = "game:turn"
	actionReset   = "game:reset"
	actionError   = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type RequestPayload struct {
	GameID string `json:"game_id,omitempty"`
	Human  string `json:"human,omitempty"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
}

type ResponsePayload struct {
	Game   *transport.GameResponse `json:"game,omitempty"`
	Error  string                  `json:"error,omitempty"`
	Status int                     `json:"status,omitempty"`
}
