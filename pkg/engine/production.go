package engine

// Produce grows garrisons at player-controlled stars. Home stars receive the
// fixed home bonus; every other star produces its base RU. Stars that
// rebelled this turn produce nothing; combat already settled their garrison.
func (e *Engine) Produce(g *Game) {
	for _, star := range g.Stars {
		if star.Owner == Unowned || star.rebelled {
			continue
		}
		slot := PlayerSlot(star.Owner)
		if star.ID == g.Players[slot].HomeStar {
			star.Stationed[slot] += e.cfg.HomeProduction
		} else {
			star.Stationed[slot] += star.BaseRU
		}
	}
}
