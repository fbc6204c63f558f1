package engine

import "testing"

// alwaysRebel returns an engine where every under-garrisoned star rebels.
func alwaysRebel() *Engine {
	cfg := DefaultConfig()
	cfg.RebellionChance = 1.0
	return NewEngine(cfg, nil)
}

// neverRebel returns an engine where rebellion never fires.
func neverRebel() *Engine {
	cfg := DefaultConfig()
	cfg.RebellionChance = 0
	return NewEngine(cfg, nil)
}

func TestCheckRebellions_HomeStarExempt(t *testing.T) {
	g := newTestGame(t)
	g.StarByID("sol").Stationed[P1] = 1 // far below threshold, but it's home

	rebellions, combats := alwaysRebel().CheckRebellions(g)
	if len(rebellions) != 0 || len(combats) != 0 {
		t.Fatalf("home stars must never rebel, got %v", rebellions)
	}
}

func TestCheckRebellions_WellGarrisonedStarHolds(t *testing.T) {
	g := newTestGame(t)
	rigel := g.StarByID("rigel") // RU 4
	rigel.Owner = Owner(P1)
	rigel.Stationed[P1] = 4 // meets the threshold exactly

	rebellions, _ := alwaysRebel().CheckRebellions(g)
	if len(rebellions) != 0 {
		t.Fatalf("garrison at threshold must not rebel, got %v", rebellions)
	}
}

func TestCheckRebellions_UnderGarrisonedFires(t *testing.T) {
	g := newTestGame(t)
	rigel := g.StarByID("rigel") // RU 4
	rigel.Owner = Owner(P1)
	rigel.Stationed[P1] = 2

	rebellions, combats := alwaysRebel().CheckRebellions(g)
	if len(rebellions) != 1 {
		t.Fatalf("got %d rebellions, want 1", len(rebellions))
	}
	ev := rebellions[0]
	if ev.Star != "rigel" || ev.Owner != "p1" || ev.RU != 4 || ev.GarrisonBefore != 2 {
		t.Errorf("event = %+v", ev)
	}
	if ev.RebelShips < 5 || ev.RebelShips > 8 {
		t.Errorf("rebel force = %d, want within [RU+1, 2*RU] = [5, 8]", ev.RebelShips)
	}
	if ev.Outcome != RebellionWon {
		t.Errorf("outcome = %s, want %s (rebels outnumber the garrison)", ev.Outcome, RebellionWon)
	}
	if rigel.Owner != Unowned {
		t.Error("a won rebellion reverts the star to neutral")
	}
	if rigel.NPCShips != ev.RebelSurvivors {
		t.Errorf("npc garrison = %d, want rebel survivors %d", rigel.NPCShips, ev.RebelSurvivors)
	}
	if !rigel.rebelled {
		t.Error("star must be flagged rebelled for the production phase")
	}

	if len(combats) != 1 {
		t.Fatalf("rebellion must also log a combat event, got %d", len(combats))
	}
	if combats[0].CombatType != CombatRebellion || combats[0].Attacker != RebelSide {
		t.Errorf("combat = %+v", combats[0])
	}
}

func TestCheckRebellions_Suppressed(t *testing.T) {
	g := newTestGame(t)
	rigel := g.StarByID("rigel") // RU 4, threshold 4
	rigel.Owner = Owner(P2)
	rigel.Stationed[P2] = 3

	// Force suppression deterministically with a custom resolver.
	cfg := DefaultConfig()
	cfg.RebellionChance = 1.0
	e := NewEngine(cfg, resolverFunc(func(att, def int, _ *RNG) (int, int) {
		return 0, def
	}))

	rebellions, _ := e.CheckRebellions(g)
	if len(rebellions) != 1 {
		t.Fatalf("got %d rebellions, want 1", len(rebellions))
	}
	if got := rebellions[0].Outcome; got != RebellionSuppressed {
		t.Errorf("outcome = %s, want %s", got, RebellionSuppressed)
	}
	if got := rebellions[0].GarrisonAfter; got != 3 {
		t.Errorf("garrison after = %d, want 3", got)
	}
	if rigel.Owner != Owner(P2) {
		t.Error("suppressed rebellion must not change control")
	}
	if rigel.rebelled != true {
		t.Error("even a suppressed rebellion skips production this turn")
	}
}

// resolverFunc adapts a function to the CombatResolver interface for tests.
type resolverFunc func(att, def int, rng *RNG) (int, int)

func (f resolverFunc) Resolve(att, def int, rng *RNG) (int, int) { return f(att, def, rng) }

func TestCheckRebellions_NeverFiresAtZeroChance(t *testing.T) {
	g := newTestGame(t)
	rigel := g.StarByID("rigel")
	rigel.Owner = Owner(P1)
	rigel.Stationed[P1] = 0

	rebellions, _ := neverRebel().CheckRebellions(g)
	if len(rebellions) != 0 {
		t.Fatalf("zero rebellion chance must never fire, got %v", rebellions)
	}
}

func TestCheckRebellions_Deterministic(t *testing.T) {
	run := func(seed int64) []RebellionEvent {
		g := newTestGame(t)
		g.RNG = NewRNG(seed)
		for _, id := range []string{"vega", "rigel", "deneb"} {
			s := g.StarByID(id)
			s.Owner = Owner(P1)
			s.NPCShips = 0
			s.Stationed[P1] = 1
		}
		rebellions, _ := NewEngine(DefaultConfig(), nil).CheckRebellions(g)
		return rebellions
	}

	a := run(77)
	b := run(77)
	if len(a) != len(b) {
		t.Fatalf("rebellion count diverged for equal seeds: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("rebellion %d diverged: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestCheckRebellions_ClearsPreviousFlags(t *testing.T) {
	g := newTestGame(t)
	rigel := g.StarByID("rigel")
	rigel.Owner = Owner(P1)
	rigel.Stationed[P1] = 99
	rigel.rebelled = true // left over from a previous turn

	neverRebel().CheckRebellions(g)
	if rigel.rebelled {
		t.Error("rebellion phase must clear stale rebelled flags")
	}
}
