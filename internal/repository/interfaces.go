package repository

import (
	"context"
	"encoding/json"

	"github.com/voidhaven/starhold/internal/model"
)

// GameRepository defines game and seat data operations.
type GameRepository interface {
	Create(ctx context.Context, seed int64) (*model.Game, error)
	FindByID(ctx context.Context, id string) (*model.Game, error)
	ListActive(ctx context.Context) ([]model.Game, error)
	ListFinished(ctx context.Context) ([]model.Game, error)
	AddPlayer(ctx context.Context, gameID, playerID string, slot int, isBot bool, difficulty string) error
	SetActive(ctx context.Context, gameID string) error
	SetTurn(ctx context.Context, gameID string, turn int) error
	SetFinished(ctx context.Context, gameID, winner string) error
	Delete(ctx context.Context, gameID string) error
}

// TurnRepository defines turn history operations.
type TurnRepository interface {
	CreateTurn(ctx context.Context, gameID string, number int, stateBefore, report json.RawMessage) (*model.Turn, error)
	CurrentTurn(ctx context.Context, gameID string) (*model.Turn, error)
	ListTurns(ctx context.Context, gameID string) ([]model.Turn, error)
	ResolveTurn(ctx context.Context, turnID string, stateAfter, orderErrors json.RawMessage) error
}

// GameCache defines live game state operations (Redis).
type GameCache interface {
	SetGameState(ctx context.Context, gameID string, state json.RawMessage) error
	GetGameState(ctx context.Context, gameID string) (json.RawMessage, error)
	SetOrders(ctx context.Context, gameID, playerID string, orders json.RawMessage) error
	GetOrders(ctx context.Context, gameID, playerID string) (json.RawMessage, error)
	GetAllOrders(ctx context.Context, gameID string, playerIDs []string) (map[string]json.RawMessage, error)
	MarkReady(ctx context.Context, gameID, playerID string) error
	UnmarkReady(ctx context.Context, gameID, playerID string) error
	ReadyCount(ctx context.Context, gameID string) (int64, error)
	ReadyPlayers(ctx context.Context, gameID string) ([]string, error)
	AcquireTurnLock(ctx context.Context, gameID string) (bool, error)
	ReleaseTurnLock(ctx context.Context, gameID string) error
	ClearTurnData(ctx context.Context, gameID string, playerIDs []string) error
	DeleteGameData(ctx context.Context, gameID string, playerIDs []string) error
}
