package bot

import (
	"context"
	"testing"

	"github.com/voidhaven/starhold/internal/galaxy"
	"github.com/voidhaven/starhold/pkg/engine"
)

func arenaConfig(seed int64) ArenaConfig {
	return ArenaConfig{
		Difficulties: [2]string{"easy", "medium"},
		MaxTurns:     80,
		Seed:         seed,
		Tuning:       engine.DefaultConfig(),
		Params:       galaxy.DefaultParams(),
		DryRun:       true,
	}
}

func TestRunMatch_DryRun(t *testing.T) {
	SeedBotRng(42)
	defer ResetBotRng()

	result, err := RunMatch(context.Background(), arenaConfig(42), nil, nil)
	if err != nil {
		t.Fatalf("RunMatch: %v", err)
	}
	if result.Turns < 1 || result.Turns > 80 {
		t.Errorf("Turns = %d, want 1..80", result.Turns)
	}
	if result.Seed != 42 {
		t.Errorf("Seed = %d, want 42", result.Seed)
	}
	if result.GameID != "" {
		t.Errorf("dry run should not assign a game id, got %q", result.GameID)
	}

	total := result.Stars[0] + result.Stars[1]
	if total > galaxy.DefaultParams().Stars {
		t.Errorf("claimed %d stars, map only has %d", total, galaxy.DefaultParams().Stars)
	}

	switch result.Winner {
	case "":
		if result.WinnerTier != "" {
			t.Errorf("draw should have no winner tier, got %q", result.WinnerTier)
		}
	case "bot-1-easy":
		if result.WinnerTier != "easy" {
			t.Errorf("WinnerTier = %q, want easy", result.WinnerTier)
		}
	case "bot-2-medium":
		if result.WinnerTier != "medium" {
			t.Errorf("WinnerTier = %q, want medium", result.WinnerTier)
		}
	default:
		t.Errorf("unexpected winner %q", result.Winner)
	}
}

func TestRunMatch_Deterministic(t *testing.T) {
	run := func() *ArenaResult {
		SeedBotRng(7)
		defer ResetBotRng()
		result, err := RunMatch(context.Background(), arenaConfig(7), nil, nil)
		if err != nil {
			t.Fatalf("RunMatch: %v", err)
		}
		return result
	}

	a := run()
	b := run()
	if *a != *b {
		t.Errorf("same seed diverged: %+v vs %+v", a, b)
	}
}

func TestRunMatch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := RunMatch(ctx, arenaConfig(1), nil, nil); err == nil {
		t.Fatal("expected error from cancelled context")
	}
}

func TestRunMatch_DefaultsEmptyTiers(t *testing.T) {
	SeedBotRng(3)
	defer ResetBotRng()

	cfg := arenaConfig(3)
	cfg.Difficulties = [2]string{"", ""}
	result, err := RunMatch(context.Background(), cfg, nil, nil)
	if err != nil {
		t.Fatalf("RunMatch: %v", err)
	}
	if result.Winner != "" && result.Winner != "bot-1-easy" && result.Winner != "bot-2-easy" {
		t.Errorf("empty tiers should seat easy bots, winner %q", result.Winner)
	}
}
