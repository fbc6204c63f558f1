package engine

import "testing"

func TestCheckVictory_OpponentHomeCaptured(t *testing.T) {
	g := newTestGame(t)
	g.StarByID("alt").Owner = Owner(P1)

	CheckVictory(g)
	if g.Winner != Owner(P1) {
		t.Fatalf("winner = %d, want P1", g.Winner)
	}
	if g.WinnerID() != "p1" {
		t.Errorf("WinnerID() = %q, want p1", g.WinnerID())
	}
}

func TestCheckVictory_NoWinnerWhileHomesHeld(t *testing.T) {
	g := newTestGame(t)
	CheckVictory(g)
	if g.Winner != Unowned {
		t.Fatalf("winner = %d, want Unowned", g.Winner)
	}
}

func TestCheckVictory_WinnerNeverReverts(t *testing.T) {
	g := newTestGame(t)
	g.StarByID("alt").Owner = Owner(P1)
	CheckVictory(g)

	// p2 retakes their home; the terminal result stands.
	g.StarByID("alt").Owner = Owner(P2)
	g.StarByID("sol").Owner = Owner(P2)
	CheckVictory(g)

	if g.Winner != Owner(P1) {
		t.Fatalf("winner reverted: %d", g.Winner)
	}
}

func TestCheckVictory_SameTurnAsCapture(t *testing.T) {
	// A capture resolving in the combat phase must be detected by the
	// victory check of the same RunWorldPhases pass.
	g := newTestGame(t)
	e := NewEngine(DefaultConfig(), nil)
	g.StarByID("alt").Stationed[P1] = 25 // overwhelms the garrison of 10

	report, err := e.RunWorldPhases(g)
	if err != nil {
		t.Fatalf("RunWorldPhases: %v", err)
	}
	if report.Winner != "p1" {
		t.Fatalf("report winner = %q, want p1", report.Winner)
	}
	if len(report.Combats) == 0 {
		t.Fatal("the winning capture must be visible in the turn's combat log")
	}
	if len(g.LastCombats) == 0 {
		t.Fatal("event logs must be populated before the victory check runs")
	}
}
