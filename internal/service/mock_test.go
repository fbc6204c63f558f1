package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/voidhaven/starhold/internal/model"
)

type mockGameRepo struct {
	games   map[string]*model.Game
	players map[string][]model.GamePlayer
}

func newMockGameRepo() *mockGameRepo {
	return &mockGameRepo{
		games:   make(map[string]*model.Game),
		players: make(map[string][]model.GamePlayer),
	}
}

func (m *mockGameRepo) Create(_ context.Context, seed int64) (*model.Game, error) {
	g := &model.Game{
		ID:        fmt.Sprintf("game-%d", len(m.games)+1),
		Seed:      seed,
		Status:    model.StatusWaiting,
		CreatedAt: time.Now(),
	}
	m.games[g.ID] = g
	return g, nil
}

func (m *mockGameRepo) FindByID(_ context.Context, id string) (*model.Game, error) {
	g, ok := m.games[id]
	if !ok {
		return nil, nil
	}
	cp := *g
	cp.Players = m.players[id]
	return &cp, nil
}

func (m *mockGameRepo) ListActive(_ context.Context) ([]model.Game, error) {
	return m.listByStatus(model.StatusActive), nil
}

func (m *mockGameRepo) ListFinished(_ context.Context) ([]model.Game, error) {
	return m.listByStatus(model.StatusFinished), nil
}

func (m *mockGameRepo) listByStatus(status string) []model.Game {
	var result []model.Game
	for _, g := range m.games {
		if g.Status == status {
			result = append(result, *g)
		}
	}
	return result
}

func (m *mockGameRepo) AddPlayer(_ context.Context, gameID, playerID string, slot int, isBot bool, difficulty string) error {
	m.players[gameID] = append(m.players[gameID], model.GamePlayer{
		GameID:        gameID,
		PlayerID:      playerID,
		Slot:          slot,
		IsBot:         isBot,
		BotDifficulty: difficulty,
		JoinedAt:      time.Now(),
	})
	return nil
}

func (m *mockGameRepo) SetActive(_ context.Context, gameID string) error {
	g, ok := m.games[gameID]
	if !ok {
		return fmt.Errorf("game %s not found", gameID)
	}
	now := time.Now()
	g.Status = model.StatusActive
	g.StartedAt = &now
	return nil
}

func (m *mockGameRepo) SetTurn(_ context.Context, gameID string, turn int) error {
	g, ok := m.games[gameID]
	if !ok {
		return fmt.Errorf("game %s not found", gameID)
	}
	g.Turn = turn
	return nil
}

func (m *mockGameRepo) SetFinished(_ context.Context, gameID, winner string) error {
	g, ok := m.games[gameID]
	if !ok {
		return fmt.Errorf("game %s not found", gameID)
	}
	now := time.Now()
	g.Status = model.StatusFinished
	g.Winner = winner
	g.FinishedAt = &now
	return nil
}

func (m *mockGameRepo) Delete(_ context.Context, gameID string) error {
	delete(m.games, gameID)
	delete(m.players, gameID)
	return nil
}

type mockTurnRepo struct {
	turns map[string][]*model.Turn // by game id, in creation order
}

func newMockTurnRepo() *mockTurnRepo {
	return &mockTurnRepo{turns: make(map[string][]*model.Turn)}
}

func (m *mockTurnRepo) CreateTurn(_ context.Context, gameID string, number int, stateBefore, report json.RawMessage) (*model.Turn, error) {
	t := &model.Turn{
		ID:          fmt.Sprintf("%s-turn-%d", gameID, number),
		GameID:      gameID,
		Number:      number,
		StateBefore: stateBefore,
		Report:      report,
		CreatedAt:   time.Now(),
	}
	m.turns[gameID] = append(m.turns[gameID], t)
	return t, nil
}

func (m *mockTurnRepo) CurrentTurn(_ context.Context, gameID string) (*model.Turn, error) {
	list := m.turns[gameID]
	if len(list) == 0 {
		return nil, nil
	}
	cp := *list[len(list)-1]
	return &cp, nil
}

func (m *mockTurnRepo) ListTurns(_ context.Context, gameID string) ([]model.Turn, error) {
	var result []model.Turn
	for _, t := range m.turns[gameID] {
		result = append(result, *t)
	}
	return result, nil
}

func (m *mockTurnRepo) ResolveTurn(_ context.Context, turnID string, stateAfter, orderErrors json.RawMessage) error {
	for _, list := range m.turns {
		for _, t := range list {
			if t.ID != turnID {
				continue
			}
			if t.ResolvedAt != nil {
				return fmt.Errorf("turn %s already resolved", turnID)
			}
			now := time.Now()
			t.StateAfter = stateAfter
			t.OrderErrors = orderErrors
			t.ResolvedAt = &now
			return nil
		}
	}
	return fmt.Errorf("turn %s not found", turnID)
}

type mockCache struct {
	state  map[string]json.RawMessage
	orders map[string]json.RawMessage // gameID:playerID
	ready  map[string]map[string]bool
	locks  map[string]bool
}

func newMockCache() *mockCache {
	return &mockCache{
		state:  make(map[string]json.RawMessage),
		orders: make(map[string]json.RawMessage),
		ready:  make(map[string]map[string]bool),
		locks:  make(map[string]bool),
	}
}

func (m *mockCache) SetGameState(_ context.Context, gameID string, state json.RawMessage) error {
	m.state[gameID] = state
	return nil
}

func (m *mockCache) GetGameState(_ context.Context, gameID string) (json.RawMessage, error) {
	return m.state[gameID], nil
}

func (m *mockCache) SetOrders(_ context.Context, gameID, playerID string, orders json.RawMessage) error {
	m.orders[gameID+":"+playerID] = orders
	return nil
}

func (m *mockCache) GetOrders(_ context.Context, gameID, playerID string) (json.RawMessage, error) {
	return m.orders[gameID+":"+playerID], nil
}

func (m *mockCache) GetAllOrders(_ context.Context, gameID string, playerIDs []string) (map[string]json.RawMessage, error) {
	result := make(map[string]json.RawMessage)
	for _, id := range playerIDs {
		if raw, ok := m.orders[gameID+":"+id]; ok {
			result[id] = raw
		}
	}
	return result, nil
}

func (m *mockCache) MarkReady(_ context.Context, gameID, playerID string) error {
	if m.ready[gameID] == nil {
		m.ready[gameID] = make(map[string]bool)
	}
	m.ready[gameID][playerID] = true
	return nil
}

func (m *mockCache) UnmarkReady(_ context.Context, gameID, playerID string) error {
	delete(m.ready[gameID], playerID)
	return nil
}

func (m *mockCache) ReadyCount(_ context.Context, gameID string) (int64, error) {
	return int64(len(m.ready[gameID])), nil
}

func (m *mockCache) ReadyPlayers(_ context.Context, gameID string) ([]string, error) {
	var ids []string
	for id := range m.ready[gameID] {
		ids = append(ids, id)
	}
	return ids, nil
}

func (m *mockCache) AcquireTurnLock(_ context.Context, gameID string) (bool, error) {
	if m.locks[gameID] {
		return false, nil
	}
	m.locks[gameID] = true
	return true, nil
}

func (m *mockCache) ReleaseTurnLock(_ context.Context, gameID string) error {
	delete(m.locks, gameID)
	return nil
}

func (m *mockCache) ClearTurnData(_ context.Context, gameID string, playerIDs []string) error {
	for _, id := range playerIDs {
		delete(m.orders, gameID+":"+id)
	}
	delete(m.ready, gameID)
	return nil
}

func (m *mockCache) DeleteGameData(_ context.Context, gameID string, playerIDs []string) error {
	delete(m.state, gameID)
	m.ClearTurnData(context.Background(), gameID, playerIDs)
	return nil
}
