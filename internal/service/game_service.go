package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/voidhaven/starhold/internal/galaxy"
	"github.com/voidhaven/starhold/internal/model"
	"github.com/voidhaven/starhold/internal/repository"
	"github.com/voidhaven/starhold/pkg/engine"
)

var (
	ErrGameNotFound   = errors.New("game not found")
	ErrGameNotWaiting = errors.New("game is not in waiting status")
	ErrGameNotActive  = errors.New("game is not active")
	ErrNotInGame      = errors.New("you are not in this game")
)

// Seat describes one side of a match at creation time.
type Seat struct {
	PlayerID   string
	IsBot      bool
	Difficulty string
}

// GameService handles game lifecycle operations.
type GameService struct {
	games  repository.GameRepository
	turns  repository.TurnRepository
	cache  repository.GameCache
	params galaxy.Params
}

// NewGameService creates a GameService generating maps with the given params.
func NewGameService(games repository.GameRepository, turns repository.TurnRepository, cache repository.GameCache, params galaxy.Params) *GameService {
	return &GameService{games: games, turns: turns, cache: cache, params: params}
}

// CreateGame creates a game in "waiting" status with both seats filled.
func (s *GameService) CreateGame(ctx context.Context, seed int64, seats [2]Seat) (*model.Game, error) {
	for slot, seat := range seats {
		if seat.PlayerID == "" {
			return nil, fmt.Errorf("seat %d has no player id", slot)
		}
	}
	if seats[0].PlayerID == seats[1].PlayerID {
		return nil, fmt.Errorf("seats must hold distinct players")
	}

	game, err := s.games.Create(ctx, seed)
	if err != nil {
		return nil, err
	}
	for slot, seat := range seats {
		if err := s.games.AddPlayer(ctx, game.ID, seat.PlayerID, slot, seat.IsBot, seat.Difficulty); err != nil {
			return nil, fmt.Errorf("seat player %s: %w", seat.PlayerID, err)
		}
	}
	return s.games.FindByID(ctx, game.ID)
}

// StartGame generates the map from the game's seed, caches the opening
// snapshot, and marks the game active. The first turn opens separately.
func (s *GameService) StartGame(ctx context.Context, gameID string) (*engine.Snapshot, error) {
	game, err := s.games.FindByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, ErrGameNotFound
	}
	if game.Status != model.StatusWaiting {
		return nil, ErrGameNotWaiting
	}
	if len(game.Players) != 2 {
		return nil, fmt.Errorf("game %s has %d seats, want 2", gameID, len(game.Players))
	}

	g, err := galaxy.Generate(game.Seed, s.params, game.Players[0].PlayerID, game.Players[1].PlayerID)
	if err != nil {
		return nil, fmt.Errorf("generate galaxy: %w", err)
	}
	snap := g.Snapshot()
	raw, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := s.cache.SetGameState(ctx, gameID, raw); err != nil {
		return nil, fmt.Errorf("cache opening state: %w", err)
	}
	if err := s.games.SetActive(ctx, gameID); err != nil {
		return nil, err
	}

	log.Info().Str("gameId", gameID).Int64("seed", game.Seed).
		Int("stars", len(snap.Stars)).Msg("Game started")
	return snap, nil
}

// GetGame returns a game with its seats.
func (s *GameService) GetGame(ctx context.Context, gameID string) (*model.Game, error) {
	game, err := s.games.FindByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, ErrGameNotFound
	}
	return game, nil
}

// GameState returns the cached live snapshot, falling back to the latest
// persisted turn when the cache is cold.
func (s *GameService) GameState(ctx context.Context, gameID string) (json.RawMessage, error) {
	raw, err := s.cache.GetGameState(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if raw != nil {
		return raw, nil
	}

	turn, err := s.turns.CurrentTurn(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if turn == nil {
		return nil, ErrGameNotFound
	}
	if turn.StateAfter != nil {
		return turn.StateAfter, nil
	}
	return turn.StateBefore, nil
}

// History returns the persisted turns of a game in play order.
func (s *GameService) History(ctx context.Context, gameID string) ([]model.Turn, error) {
	return s.turns.ListTurns(ctx, gameID)
}

// DeleteGame removes a game from the database and the cache.
func (s *GameService) DeleteGame(ctx context.Context, gameID string) error {
	game, err := s.games.FindByID(ctx, gameID)
	if err != nil {
		return err
	}
	if game == nil {
		return ErrGameNotFound
	}
	ids := make([]string, 0, len(game.Players))
	for _, p := range game.Players {
		ids = append(ids, p.PlayerID)
	}
	if err := s.cache.DeleteGameData(ctx, gameID, ids); err != nil {
		log.Warn().Err(err).Str("gameId", gameID).Msg("Failed to clear cache on delete")
	}
	return s.games.Delete(ctx, gameID)
}
