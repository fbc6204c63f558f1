package model

import (
	"encoding/json"
	"time"
)

// Game represents a match between two players.
type Game struct {
	ID         string       `json:"id"`
	Seed       int64        `json:"seed"`
	Status     string       `json:"status"` // waiting, active, finished
	Winner     string       `json:"winner,omitempty"`
	Turn       int          `json:"turn"`
	CreatedAt  time.Time    `json:"created_at"`
	StartedAt  *time.Time   `json:"started_at,omitempty"`
	FinishedAt *time.Time   `json:"finished_at,omitempty"`
	Players    []GamePlayer `json:"players,omitempty"`
}

// Game statuses.
const (
	StatusWaiting  = "waiting"
	StatusActive   = "active"
	StatusFinished = "finished"
)

// GamePlayer represents a player's seat in a game.
type GamePlayer struct {
	GameID        string    `json:"game_id"`
	PlayerID      string    `json:"player_id"`
	Slot          int       `json:"slot"`
	IsBot         bool      `json:"is_bot"`
	BotDifficulty string    `json:"bot_difficulty,omitempty"`
	JoinedAt      time.Time `json:"joined_at"`
}

// Turn represents one resolved turn of a game. StateBefore is the snapshot
// the turn opened with, StateAfter the snapshot once orders were folded in,
// and Report the world events shown to players between the two.
type Turn struct {
	ID          string          `json:"id"`
	GameID      string          `json:"game_id"`
	Number      int             `json:"number"`
	StateBefore json.RawMessage `json:"state_before"`
	StateAfter  json.RawMessage `json:"state_after,omitempty"`
	Report      json.RawMessage `json:"report,omitempty"`
	OrderErrors json.RawMessage `json:"order_errors,omitempty"`
	ResolvedAt  *time.Time      `json:"resolved_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
