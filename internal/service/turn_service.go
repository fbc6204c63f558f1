package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/voidhaven/starhold/internal/bot"
	"github.com/voidhaven/starhold/internal/model"
	"github.com/voidhaven/starhold/internal/repository"
	"github.com/voidhaven/starhold/pkg/engine"
)

var (
	ErrTurnLocked   = errors.New("turn resolution already in progress")
	ErrNoOpenTurn   = errors.New("no open turn")
	ErrTurnResolved = errors.New("turn already resolved")
	ErrTurnOpen     = errors.New("a turn is already awaiting orders")
	ErrGameOver     = errors.New("game already has a winner")
)

// TurnService drives games through the two-call turn contract: OpenTurn runs
// the world-reactive half and leaves the game awaiting orders; ResolveOpenTurn
// folds in the submitted orders and production and closes the turn.
type TurnService struct {
	games  repository.GameRepository
	turns  repository.TurnRepository
	cache  repository.GameCache
	engine *engine.Engine
}

// NewTurnService creates a TurnService.
func NewTurnService(games repository.GameRepository, turns repository.TurnRepository, cache repository.GameCache, eng *engine.Engine) *TurnService {
	return &TurnService{games: games, turns: turns, cache: cache, engine: eng}
}

// OpenTurn runs movement, combat, rebellion, and the victory check, persists
// the open turn with its world report, and caches the mid-turn snapshot. The
// returned report is what players see before ordering.
func (s *TurnService) OpenTurn(ctx context.Context, gameID string) (*engine.WorldReport, error) {
	_, g, err := s.loadActive(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if g.Winner != engine.Unowned {
		return nil, ErrGameOver
	}

	// A cached snapshot always reloads at idle, so the open/awaiting-orders
	// distinction lives in the turn history.
	current, err := s.turns.CurrentTurn(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if current != nil && current.ResolvedAt == nil {
		return nil, ErrTurnOpen
	}

	ok, err := s.cache.AcquireTurnLock(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrTurnLocked
	}
	defer s.releaseLock(ctx, gameID)

	report, err := s.engine.RunWorldPhases(g)
	if err != nil {
		return nil, err
	}

	snap := g.Snapshot()
	raw, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	reportRaw, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}

	if _, err := s.turns.CreateTurn(ctx, gameID, g.Turn, raw, reportRaw); err != nil {
		return nil, err
	}
	if err := s.cache.SetGameState(ctx, gameID, raw); err != nil {
		return nil, fmt.Errorf("cache mid-turn state: %w", err)
	}
	if err := s.games.SetTurn(ctx, gameID, g.Turn); err != nil {
		return nil, err
	}

	if report.Winner != "" {
		if err := s.games.SetFinished(ctx, gameID, report.Winner); err != nil {
			return nil, err
		}
		log.Info().Str("gameId", gameID).Str("winner", report.Winner).
			Int("turn", g.Turn).Msg("Game finished")
	}

	log.Debug().Str("gameId", gameID).Int("turn", g.Turn).
		Int("combats", len(report.Combats)).
		Int("rebellions", len(report.Rebellions)).Msg("Turn opened")
	return report, nil
}

// SubmitOrders stores a player's order batch for the open turn and marks the
// player ready. When every seat is ready the turn resolves.
func (s *TurnService) SubmitOrders(ctx context.Context, gameID, playerID string, orders []engine.Order) error {
	game, err := s.games.FindByID(ctx, gameID)
	if err != nil {
		return err
	}
	if game == nil {
		return ErrGameNotFound
	}
	if game.Status != model.StatusActive {
		return ErrGameNotActive
	}
	seated := false
	for _, p := range game.Players {
		if p.PlayerID == playerID {
			seated = true
		}
	}
	if !seated {
		return ErrNotInGame
	}

	for _, o := range orders {
		if o.From == "" || o.To == "" {
			return fmt.Errorf("order missing star id")
		}
	}
	raw, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("marshal orders: %w", err)
	}
	if err := s.cache.SetOrders(ctx, gameID, playerID, raw); err != nil {
		return err
	}
	if err := s.cache.MarkReady(ctx, gameID, playerID); err != nil {
		return err
	}

	count, err := s.cache.ReadyCount(ctx, gameID)
	if err != nil {
		return err
	}
	if int(count) >= len(game.Players) {
		_, err = s.ResolveOpenTurn(ctx, gameID)
		return err
	}
	return nil
}

// SubmitBotOrders generates and submits orders for every bot seat that has
// not marked ready yet.
func (s *TurnService) SubmitBotOrders(ctx context.Context, gameID string) error {
	game, g, err := s.loadActive(ctx, gameID)
	if err != nil {
		return err
	}

	ready, err := s.cache.ReadyPlayers(ctx, gameID)
	if err != nil {
		return err
	}
	done := make(map[string]bool, len(ready))
	for _, id := range ready {
		done[id] = true
	}

	for _, seat := range game.Players {
		if !seat.IsBot || done[seat.PlayerID] {
			continue
		}
		slot, ok := g.SlotOf(seat.PlayerID)
		if !ok {
			return fmt.Errorf("bot %s has no slot in game %s", seat.PlayerID, gameID)
		}
		strategy := bot.StrategyForDifficulty(seat.BotDifficulty)
		orders := strategy.GenerateOrders(g, slot, s.engine.Config())
		if err := s.SubmitOrders(ctx, gameID, seat.PlayerID, orders); err != nil {
			return fmt.Errorf("bot %s: %w", seat.PlayerID, err)
		}
	}
	return nil
}

// ResolveOpenTurn folds the submitted orders and production into the open
// turn, persists the closing snapshot, and clears per-turn cache data.
func (s *TurnService) ResolveOpenTurn(ctx context.Context, gameID string) (map[string][]engine.OrderError, error) {
	game, g, err := s.loadActive(ctx, gameID)
	if err != nil {
		return nil, err
	}

	turn, err := s.turns.CurrentTurn(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if turn == nil {
		return nil, ErrNoOpenTurn
	}
	if turn.ResolvedAt != nil {
		return nil, ErrTurnResolved
	}

	ok, err := s.cache.AcquireTurnLock(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrTurnLocked
	}
	defer s.releaseLock(ctx, gameID)

	playerIDs := make([]string, 0, len(game.Players))
	for _, p := range game.Players {
		playerIDs = append(playerIDs, p.PlayerID)
	}
	rawOrders, err := s.cache.GetAllOrders(ctx, gameID, playerIDs)
	if err != nil {
		return nil, err
	}
	batches := make(map[string][]engine.Order, len(rawOrders))
	for playerID, raw := range rawOrders {
		var orders []engine.Order
		if err := json.Unmarshal(raw, &orders); err != nil {
			return nil, fmt.Errorf("unmarshal orders for %s: %w", playerID, err)
		}
		batches[playerID] = orders
	}

	// The cached snapshot was taken mid-turn, after the world phases; a
	// reloaded game sits in idle, so place it back at order intake.
	g.Phase = engine.PhaseOrderIntake
	orderErrors, err := s.engine.RunOrderPhases(g, batches)
	if err != nil {
		return nil, err
	}

	after, err := json.Marshal(g.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	var errsRaw json.RawMessage
	if len(orderErrors) > 0 {
		errsRaw, err = json.Marshal(orderErrors)
		if err != nil {
			return nil, fmt.Errorf("marshal order errors: %w", err)
		}
	}
	if err := s.turns.ResolveTurn(ctx, turn.ID, after, errsRaw); err != nil {
		return nil, err
	}
	if err := s.cache.SetGameState(ctx, gameID, after); err != nil {
		return nil, fmt.Errorf("cache resolved state: %w", err)
	}
	if err := s.cache.ClearTurnData(ctx, gameID, playerIDs); err != nil {
		log.Warn().Err(err).Str("gameId", gameID).Msg("Failed to clear turn data")
	}

	log.Debug().Str("gameId", gameID).Int("turn", turn.Number).
		Int("rejectedPlayers", len(orderErrors)).Msg("Turn resolved")
	return orderErrors, nil
}

// loadActive fetches an active game row and rebuilds the engine aggregate
// from the cached snapshot.
func (s *TurnService) loadActive(ctx context.Context, gameID string) (*model.Game, *engine.Game, error) {
	game, err := s.games.FindByID(ctx, gameID)
	if err != nil {
		return nil, nil, err
	}
	if game == nil {
		return nil, nil, ErrGameNotFound
	}
	if game.Status != model.StatusActive {
		return nil, nil, ErrGameNotActive
	}

	raw, err := s.cache.GetGameState(ctx, gameID)
	if err != nil {
		return nil, nil, err
	}
	if raw == nil {
		// Cache cold after a restart; rehydrate from the turn history.
		turn, err := s.turns.CurrentTurn(ctx, gameID)
		if err != nil {
			return nil, nil, err
		}
		if turn == nil {
			return nil, nil, ErrNoOpenTurn
		}
		raw = turn.StateBefore
		if turn.StateAfter != nil {
			raw = turn.StateAfter
		}
		if err := s.cache.SetGameState(ctx, gameID, raw); err != nil {
			log.Warn().Err(err).Str("gameId", gameID).Msg("Failed to rehydrate cache")
		}
	}

	var snap engine.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	g, err := engine.FromSnapshot(&snap)
	if err != nil {
		return nil, nil, err
	}
	return game, g, nil
}

func (s *TurnService) releaseLock(ctx context.Context, gameID string) {
	if err := s.cache.ReleaseTurnLock(ctx, gameID); err != nil {
		log.Warn().Err(err).Str("gameId", gameID).Msg("Failed to release turn lock")
	}
}
