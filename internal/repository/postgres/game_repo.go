package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/voidhaven/starhold/internal/model"
)

// GameRepo handles game and game_player database operations.
type GameRepo struct {
	db *sql.DB
}

// NewGameRepo creates a GameRepo.
func NewGameRepo(db *sql.DB) *GameRepo {
	return &GameRepo{db: db}
}

// Create inserts a new game.
func (r *GameRepo) Create(ctx context.Context, seed int64) (*model.Game, error) {
	var g model.Game
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO games (seed) VALUES ($1)
		 RETURNING id, seed, status, turn, created_at`,
		seed,
	).Scan(&g.ID, &g.Seed, &g.Status, &g.Turn, &g.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create game: %w", err)
	}
	return &g, nil
}

// FindByID returns a game by ID with its seats.
func (r *GameRepo) FindByID(ctx context.Context, id string) (*model.Game, error) {
	var g model.Game
	var winner sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT id, seed, status, winner, turn, created_at, started_at, finished_at
		 FROM games WHERE id = $1`, id,
	).Scan(&g.ID, &g.Seed, &g.Status, &winner, &g.Turn, &g.CreatedAt, &g.StartedAt, &g.FinishedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find game: %w", err)
	}
	g.Winner = winner.String

	players, err := r.ListPlayers(ctx, id)
	if err != nil {
		return nil, err
	}
	g.Players = players
	return &g, nil
}

// ListPlayers returns the seats of a game in slot order.
func (r *GameRepo) ListPlayers(ctx context.Context, gameID string) ([]model.GamePlayer, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT game_id, player_id, slot, is_bot, bot_difficulty, joined_at
		 FROM game_players WHERE game_id = $1 ORDER BY slot`, gameID)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer rows.Close()

	var players []model.GamePlayer
	for rows.Next() {
		var p model.GamePlayer
		var difficulty sql.NullString
		if err := rows.Scan(&p.GameID, &p.PlayerID, &p.Slot, &p.IsBot, &difficulty, &p.JoinedAt); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		p.BotDifficulty = difficulty.String
		players = append(players, p)
	}
	return players, rows.Err()
}

// AddPlayer seats a player (or bot) in a game slot.
func (r *GameRepo) AddPlayer(ctx context.Context, gameID, playerID string, slot int, isBot bool, difficulty string) error {
	var diff sql.NullString
	if difficulty != "" {
		diff = sql.NullString{String: difficulty, Valid: true}
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO game_players (game_id, player_id, slot, is_bot, bot_difficulty)
		 VALUES ($1, $2, $3, $4, $5)`,
		gameID, playerID, slot, isBot, diff)
	if err != nil {
		return fmt.Errorf("add player: %w", err)
	}
	return nil
}

// ListActive returns games currently being played.
func (r *GameRepo) ListActive(ctx context.Context) ([]model.Game, error) {
	return r.listByStatus(ctx, model.StatusActive)
}

// ListFinished returns completed games, newest first.
func (r *GameRepo) ListFinished(ctx context.Context) ([]model.Game, error) {
	return r.listByStatus(ctx, model.StatusFinished)
}

func (r *GameRepo) listByStatus(ctx context.Context, status string) ([]model.Game, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, seed, status, winner, turn, created_at, started_at, finished_at
		 FROM games WHERE status = $1 ORDER BY created_at DESC LIMIT 50`, status)
	if err != nil {
		return nil, fmt.Errorf("list %s games: %w", status, err)
	}
	defer rows.Close()

	var games []model.Game
	for rows.Next() {
		var g model.Game
		var winner sql.NullString
		if err := rows.Scan(&g.ID, &g.Seed, &g.Status, &winner, &g.Turn, &g.CreatedAt, &g.StartedAt, &g.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		g.Winner = winner.String
		games = append(games, g)
	}
	return games, rows.Err()
}

// SetActive marks a game as started.
func (r *GameRepo) SetActive(ctx context.Context, gameID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE games SET status = 'active', started_at = now() WHERE id = $1`, gameID)
	if err != nil {
		return fmt.Errorf("set active: %w", err)
	}
	return nil
}

// SetTurn records the game's current turn number.
func (r *GameRepo) SetTurn(ctx context.Context, gameID string, turn int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE games SET turn = $2 WHERE id = $1`, gameID, turn)
	if err != nil {
		return fmt.Errorf("set turn: %w", err)
	}
	return nil
}

// SetFinished marks a game as finished with its winner.
func (r *GameRepo) SetFinished(ctx context.Context, gameID, winner string) error {
	var w sql.NullString
	if winner != "" {
		w = sql.NullString{String: winner, Valid: true}
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE games SET status = 'finished', winner = $2, finished_at = now() WHERE id = $1`,
		gameID, w)
	if err != nil {
		return fmt.Errorf("set finished: %w", err)
	}
	return nil
}

// Delete removes a game and, via cascade, its seats and turns.
func (r *GameRepo) Delete(ctx context.Context, gameID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM games WHERE id = $1`, gameID)
	if err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	return nil
}
