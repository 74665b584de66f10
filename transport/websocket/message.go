package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/flowlink-backend/internal/entity"
)

const (
	actionError = "error"

	actionNewGame    = "game:new"
	actionJoinGame   = "game:join"
	actionStartGame  = "game:start"
	actionDifficulty = "game:difficulty"
	actionGameState  = "game:state"

	actionPointerDown = "pointer:down"
	actionPointerMove = "pointer:move"
	actionPointerUp   = "pointer:up"

	actionWon           = "game:won"
	actionFailedAttempt = "game:failed_attempt"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// RequestPayload carries the arguments of every client action; each action reads its own fields.
type RequestPayload struct {
	GameID string `json:"game_id,omitempty"`
	Level  int    `json:"level,omitempty"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Lang   string `json:"lang,omitempty"`
}

func (that RequestPayload) Coord() entity.Coord {
	return entity.Coord{Row: that.Row, Col: that.Col}
}

type ResponsePayload struct {
	Game    *entity.Game    `json:"game,omitempty"`
	Outcome *entity.Outcome `json:"outcome,omitempty"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
}

func decodePayload(message *Message) (RequestPayload, error) {
	var payload RequestPayload
	if len(message.Payload) == 0 {
		return payload, nil
	}

	if err := json.Unmarshal(message.Payload, &payload); err != nil {
		return payload, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return payload, nil
}

func newResponse(action string, payload ResponsePayload) (*Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	return &Message{Action: action, Payload: raw}, nil
}
