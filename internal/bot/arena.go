package bot

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/voidhaven/starhold/internal/galaxy"
	"github.com/voidhaven/starhold/internal/repository"
	"github.com/voidhaven/starhold/pkg/engine"
)

// ArenaConfig configures a single bot-vs-bot game.
type ArenaConfig struct {
	Difficulties [2]string     // difficulty per seat
	MaxTurns     int           // cap turn before draw
	Seed         int64         // galaxy and engine seed
	Tuning       engine.Config // engine tuning knobs
	Params       galaxy.Params // map generation parameters
	DryRun       bool          // skip DB writes
}

// ArenaResult describes the outcome of a completed arena game.
type ArenaResult struct {
	GameID     string `json:"game_id,omitempty"`
	Seed       int64  `json:"seed"`
	Winner     string `json:"winner"` // player id or "" for draw
	WinnerTier string `json:"winner_tier,omitempty"`
	Turns      int    `json:"turns"`
	Stars      [2]int `json:"stars"` // stars controlled per seat at the end
	Ships      [2]int `json:"ships"` // stationed ships per seat at the end
}

// RunMatch plays a full game between two bot strategies, persisting each
// turn to Postgres. Pass nil repos for dry-run mode.
func RunMatch(
	ctx context.Context,
	cfg ArenaConfig,
	gameRepo repository.GameRepository,
	turnRepo repository.TurnRepository,
) (*ArenaResult, error) {
	if cfg.MaxTurns == 0 {
		cfg.MaxTurns = 200
	}

	var strategies [2]Strategy
	var playerIDs [2]string
	for i := range strategies {
		diff := cfg.Difficulties[i]
		if diff == "" {
			diff = "easy"
		}
		cfg.Difficulties[i] = diff
		strategies[i] = StrategyForDifficulty(diff)
		playerIDs[i] = fmt.Sprintf("bot-%d-%s", i+1, diff)
	}

	g, err := galaxy.Generate(cfg.Seed, cfg.Params, playerIDs[0], playerIDs[1])
	if err != nil {
		return nil, fmt.Errorf("generate galaxy: %w", err)
	}
	eng := engine.NewEngine(cfg.Tuning, nil)

	var gameID string
	if !cfg.DryRun {
		gameID, err = createArenaGame(ctx, cfg, gameRepo, playerIDs)
		if err != nil {
			return nil, fmt.Errorf("create arena game: %w", err)
		}
	}

	result := &ArenaResult{GameID: gameID, Seed: cfg.Seed}

	for {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		report, err := eng.RunWorldPhases(g)
		if err != nil {
			return nil, fmt.Errorf("world phases (turn %d): %w", g.Turn, err)
		}

		var turnID string
		if !cfg.DryRun {
			stateBefore, err := json.Marshal(g.Snapshot())
			if err != nil {
				return nil, fmt.Errorf("marshal state before: %w", err)
			}
			reportRaw, err := json.Marshal(report)
			if err != nil {
				return nil, fmt.Errorf("marshal report: %w", err)
			}
			turn, err := turnRepo.CreateTurn(ctx, gameID, g.Turn, stateBefore, reportRaw)
			if err != nil {
				return nil, fmt.Errorf("create turn: %w", err)
			}
			turnID = turn.ID
			if err := gameRepo.SetTurn(ctx, gameID, g.Turn); err != nil {
				return nil, fmt.Errorf("set turn: %w", err)
			}
		}

		if report.Winner != "" || g.Turn >= cfg.MaxTurns {
			fillStandings(result, g)
			result.Turns = g.Turn
			result.Winner = report.Winner
			if slot, ok := g.SlotOf(report.Winner); ok {
				result.WinnerTier = cfg.Difficulties[slot]
			}

			if !cfg.DryRun {
				if err := gameRepo.SetFinished(ctx, gameID, report.Winner); err != nil {
					return nil, fmt.Errorf("set finished: %w", err)
				}
			}
			if report.Winner != "" {
				log.Info().Str("gameId", gameID).Str("winner", report.Winner).Int("turn", g.Turn).Msg("Arena game won")
			} else {
				log.Info().Str("gameId", gameID).Int("turn", g.Turn).Msg("Arena game ended as draw (turn limit)")
			}
			return result, nil
		}

		batches := make(map[string][]engine.Order, 2)
		for i, strategy := range strategies {
			orders := strategy.GenerateOrders(g, engine.PlayerSlot(i), eng.Config())
			if len(orders) > 0 {
				batches[playerIDs[i]] = orders
			}
		}

		orderErrs, err := eng.RunOrderPhases(g, batches)
		if err != nil {
			return nil, fmt.Errorf("order phases (turn %d): %w", g.Turn, err)
		}

		if !cfg.DryRun {
			stateAfter, err := json.Marshal(g.Snapshot())
			if err != nil {
				return nil, fmt.Errorf("marshal state after: %w", err)
			}
			var errsRaw json.RawMessage
			if len(orderErrs) > 0 {
				errsRaw, err = json.Marshal(orderErrs)
				if err != nil {
					return nil, fmt.Errorf("marshal order errors: %w", err)
				}
			}
			if err := turnRepo.ResolveTurn(ctx, turnID, stateAfter, errsRaw); err != nil {
				return nil, fmt.Errorf("resolve turn in DB: %w", err)
			}
		}
	}
}

// createArenaGame creates a finished-to-be game row with both bot seats.
func createArenaGame(
	ctx context.Context,
	cfg ArenaConfig,
	gameRepo repository.GameRepository,
	playerIDs [2]string,
) (string, error) {
	game, err := gameRepo.Create(ctx, cfg.Seed)
	if err != nil {
		return "", fmt.Errorf("create game: %w", err)
	}
	for i, id := range playerIDs {
		if err := gameRepo.AddPlayer(ctx, game.ID, id, i, true, cfg.Difficulties[i]); err != nil {
			return "", fmt.Errorf("seat bot %s: %w", id, err)
		}
	}
	if err := gameRepo.SetActive(ctx, game.ID); err != nil {
		return "", fmt.Errorf("activate game: %w", err)
	}
	return game.ID, nil
}

// fillStandings records final star and ship tallies per seat.
func fillStandings(result *ArenaResult, g *engine.Game) {
	for _, star := range g.Stars {
		if star.Owner == engine.Unowned {
			continue
		}
		slot := engine.PlayerSlot(star.Owner)
		result.Stars[slot]++
		result.Ships[slot] += star.Garrison(slot)
	}
	for _, fleet := range g.Fleets {
		result.Ships[fleet.Owner] += fleet.Ships
	}
}
