package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/voidhaven/starhold/internal/model"
)

// TurnRepo handles turn history database operations.
type TurnRepo struct {
	db *sql.DB
}

// NewTurnRepo creates a TurnRepo.
func NewTurnRepo(db *sql.DB) *TurnRepo {
	return &TurnRepo{db: db}
}

// CreateTurn inserts an open turn with its opening snapshot and world report.
func (r *TurnRepo) CreateTurn(ctx context.Context, gameID string, number int, stateBefore, report json.RawMessage) (*model.Turn, error) {
	var t model.Turn
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO turns (game_id, number, state_before, report)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, game_id, number, state_before, report, created_at`,
		gameID, number, []byte(stateBefore), []byte(report),
	).Scan(&t.ID, &t.GameID, &t.Number, &t.StateBefore, &t.Report, &t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create turn: %w", err)
	}
	return &t, nil
}

// CurrentTurn returns the latest turn of a game, resolved or not.
func (r *TurnRepo) CurrentTurn(ctx context.Context, gameID string) (*model.Turn, error) {
	var t model.Turn
	err := r.db.QueryRowContext(ctx,
		`SELECT id, game_id, number, state_before, state_after, report, order_errors, resolved_at, created_at
		 FROM turns WHERE game_id = $1 ORDER BY number DESC LIMIT 1`, gameID,
	).Scan(&t.ID, &t.GameID, &t.Number, &t.StateBefore, &t.StateAfter, &t.Report, &t.OrderErrors, &t.ResolvedAt, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("current turn: %w", err)
	}
	return &t, nil
}

// ListTurns returns a game's turns in play order.
func (r *TurnRepo) ListTurns(ctx context.Context, gameID string) ([]model.Turn, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, game_id, number, state_before, state_after, report, order_errors, resolved_at, created_at
		 FROM turns WHERE game_id = $1 ORDER BY number`, gameID)
	if err != nil {
		return nil, fmt.Errorf("list turns: %w", err)
	}
	defer rows.Close()

	var turns []model.Turn
	for rows.Next() {
		var t model.Turn
		if err := rows.Scan(&t.ID, &t.GameID, &t.Number, &t.StateBefore, &t.StateAfter, &t.Report, &t.OrderErrors, &t.ResolvedAt, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan turn: %w", err)
		}
		turns = append(turns, t)
	}
	return turns, rows.Err()
}

// ResolveTurn closes a turn with the snapshot after orders and production.
func (r *TurnRepo) ResolveTurn(ctx context.Context, turnID string, stateAfter, orderErrors json.RawMessage) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE turns SET state_after = $2, order_errors = $3, resolved_at = now()
		 WHERE id = $1 AND resolved_at IS NULL`,
		turnID, []byte(stateAfter), nullableJSON(orderErrors))
	if err != nil {
		return fmt.Errorf("resolve turn: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("resolve turn: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("resolve turn: turn %s not open", turnID)
	}
	return nil
}

func nullableJSON(raw json.RawMessage) interface{} {
	if len(raw) == 0 {
		return nil
	}
	return []byte(raw)
}
