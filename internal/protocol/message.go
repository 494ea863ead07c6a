package protocol

import (
	"encoding/json"
	"fmt"
	"slices"

	"briscola-game/internal/shared"
)

// Message types.
const (
	TypeNewGame    = "new_game"
	TypePlayCard   = "play_card"
	TypePing       = "ping"
	TypePong       = "pong"
	TypeGameStart  = "game_start"
	TypeHand       = "hand"
	TypeYourTurn   = "your_turn"
	TypeCardPlayed = "card_played"
	TypeTrickEnd   = "trick_end"
	TypeCardDrawn  = "card_drawn"
	TypeLastDraw   = "last_draw"
	TypeGameOver   = "game_over"
	TypeError      = "error"
)

// Message represents a generic WebSocket message structure.
type Message struct {
	Type    string          `json:"type"`              // Type of the message (e.g., "new_game", "play_card")
	Payload json.RawMessage `json:"payload,omitempty"` // Raw JSON payload, decoded according to Type
}

// --- Client -> Server Payload Structs ---

type NewGamePayload struct {
	Name       string `json:"name"`
	Difficulty string `json:"difficulty"` // "easy", "medium" or "hard"; empty for the server default
}

type PlayCardPayload struct {
	Suit shared.Suit `json:"suit"`
	Rank shared.Rank `json:"rank"`
}

// Card returns the card named by the payload. Unknown suits or ranks are an
// ErrInvalidMove.
func (p PlayCardPayload) Card() (shared.Card, error) {
	if !slices.Contains(shared.Suits, p.Suit) || !p.Rank.Valid() {
		return shared.Card{}, fmt.Errorf("no such card %q %d: %w", p.Suit, p.Rank, shared.ErrInvalidMove)
	}
	return shared.NewCard(p.Suit, p.Rank), nil
}

// --- Server -> Client Payload Structs ---

type PlayerInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	CPU  bool   `json:"cpu"`
}

type GameStartPayload struct {
	GameID     string       `json:"game_id"`
	Players    []PlayerInfo `json:"players"`
	Trump      shared.Card  `json:"trump"`
	DeckSize   int          `json:"deck_size"`
	Difficulty string       `json:"difficulty"`
}

type HandPayload struct {
	Hand []shared.Card `json:"hand"`
}

type YourTurnPayload struct {
	PlayerID   string        `json:"player_id"`
	Leading    bool          `json:"leading"`
	Table      []shared.Card `json:"table,omitempty"`
	ValidMoves []shared.Card `json:"valid_moves"`
}

type CardPlayedPayload struct {
	PlayerID string      `json:"player_id"`
	Card     shared.Card `json:"card"`
}

type TrickEndPayload struct {
	WinnerID string         `json:"winner_id"`
	Cards    []shared.Card  `json:"cards"`
	Points   int            `json:"points"`
	Scores   map[string]int `json:"scores"` // player ID -> points
}

type CardDrawnPayload struct {
	PlayerID string       `json:"player_id"`
	Card     *shared.Card `json:"card,omitempty"` // only sent for the receiving player's own draws and the trump
	DeckSize int          `json:"deck_size"`
}

type LastDrawPayload struct {
	Trump shared.Card `json:"trump"`
}

type GameOverPayload struct {
	WinnerID string         `json:"winner_id,omitempty"`
	Draw     bool           `json:"draw"`
	Scores   map[string]int `json:"scores"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

// NewMessage encodes a message of the given type with an optional payload.
func NewMessage(msgType string, payload interface{}) ([]byte, error) {
	if payload == nil {
		return json.Marshal(Message{Type: msgType})
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Message{Type: msgType, Payload: payloadBytes})
}
