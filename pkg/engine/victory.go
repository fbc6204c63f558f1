package engine

// CheckVictory evaluates the terminal condition: a player controls the
// opponent's home star. It runs after combat and rebellion so a capture this
// turn is detected immediately, with its combat already in the turn's event
// logs. Once Winner is set it never reverts; later calls are no-ops. Should
// both players somehow hold each other's homes in the same turn, the lower
// slot wins (stars resolve in list order, so this favors no one in practice).
func CheckVictory(g *Game) {
	if g.Winner != Unowned {
		return
	}
	for slot := P1; slot <= P2; slot++ {
		oppHome := g.StarByID(g.Players[slot.Opponent()].HomeStar)
		if oppHome != nil && oppHome.Owner == Owner(slot) {
			g.Winner = Owner(slot)
			return
		}
	}
}
