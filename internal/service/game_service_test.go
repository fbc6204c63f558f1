package service

import (
	"context"
	"errors"
	"testing"

	"github.com/voidhaven/starhold/internal/galaxy"
)

func newGameService() (*GameService, *mockGameRepo, *mockTurnRepo, *mockCache) {
	games := newMockGameRepo()
	turns := newMockTurnRepo()
	cache := newMockCache()
	return NewGameService(games, turns, cache, galaxy.DefaultParams()), games, turns, cache
}

func twoSeats() [2]Seat {
	return [2]Seat{
		{PlayerID: "alice"},
		{PlayerID: "bot-1", IsBot: true, Difficulty: "medium"},
	}
}

func TestCreateGame(t *testing.T) {
	svc, _, _, _ := newGameService()

	game, err := svc.CreateGame(context.Background(), 42, twoSeats())
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	if game.Status != "waiting" || game.Seed != 42 {
		t.Errorf("game = %+v", game)
	}
	if len(game.Players) != 2 {
		t.Fatalf("got %d seats, want 2", len(game.Players))
	}
	if !game.Players[1].IsBot || game.Players[1].BotDifficulty != "medium" {
		t.Errorf("bot seat = %+v", game.Players[1])
	}
}

func TestCreateGame_Rejects(t *testing.T) {
	svc, _, _, _ := newGameService()
	ctx := context.Background()

	if _, err := svc.CreateGame(ctx, 1, [2]Seat{{PlayerID: "a"}, {PlayerID: "a"}}); err == nil {
		t.Error("expected error for duplicate player ids")
	}
	if _, err := svc.CreateGame(ctx, 1, [2]Seat{{PlayerID: "a"}, {}}); err == nil {
		t.Error("expected error for empty seat")
	}
}

func TestStartGame(t *testing.T) {
	svc, _, _, cache := newGameService()
	ctx := context.Background()

	game, err := svc.CreateGame(ctx, 42, twoSeats())
	if err != nil {
		t.Fatal(err)
	}
	snap, err := svc.StartGame(ctx, game.ID)
	if err != nil {
		t.Fatalf("StartGame: %v", err)
	}
	if len(snap.Stars) != galaxy.DefaultParams().Stars {
		t.Errorf("snapshot has %d stars", len(snap.Stars))
	}
	if cache.state[game.ID] == nil {
		t.Error("opening state not cached")
	}

	started, err := svc.GetGame(ctx, game.ID)
	if err != nil {
		t.Fatal(err)
	}
	if started.Status != "active" {
		t.Errorf("status = %s, want active", started.Status)
	}

	if _, err := svc.StartGame(ctx, game.ID); !errors.Is(err, ErrGameNotWaiting) {
		t.Errorf("second start err = %v, want ErrGameNotWaiting", err)
	}
}

func TestStartGame_NotFound(t *testing.T) {
	svc, _, _, _ := newGameService()
	if _, err := svc.StartGame(context.Background(), "ghost"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("err = %v, want ErrGameNotFound", err)
	}
}

func TestGameState_FallsBackToHistory(t *testing.T) {
	svc, _, turns, cache := newGameService()
	ctx := context.Background()

	game, err := svc.CreateGame(ctx, 42, twoSeats())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.StartGame(ctx, game.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := turns.CreateTurn(ctx, game.ID, 1, []byte(`{"turn":1}`), nil); err != nil {
		t.Fatal(err)
	}
	delete(cache.state, game.ID)

	raw, err := svc.GameState(ctx, game.ID)
	if err != nil {
		t.Fatalf("GameState: %v", err)
	}
	if string(raw) != `{"turn":1}` {
		t.Errorf("state = %s", raw)
	}
}

func TestDeleteGame(t *testing.T) {
	svc, games, _, cache := newGameService()
	ctx := context.Background()

	game, err := svc.CreateGame(ctx, 42, twoSeats())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.StartGame(ctx, game.ID); err != nil {
		t.Fatal(err)
	}

	if err := svc.DeleteGame(ctx, game.ID); err != nil {
		t.Fatalf("DeleteGame: %v", err)
	}
	if _, ok := games.games[game.ID]; ok {
		t.Error("game row survived delete")
	}
	if cache.state[game.ID] != nil {
		t.Error("cached state survived delete")
	}
}
