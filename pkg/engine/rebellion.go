package engine

import "math"

// GarrisonFloor is the minimum garrison that keeps a star of the given RU
// safe from rebellion rolls.
func GarrisonFloor(baseRU int, cfg Config) int {
	return int(math.Ceil(float64(baseRU) * cfg.GarrisonThreshold))
}

// CheckRebellions rolls rebellion at every under-garrisoned player-held star,
// in star-list order for determinism. Home stars are exempt. A star that
// rebels raises a rebel force sized from its RU and fights the garrison
// through the combat resolver; the clash is logged both as a RebellionEvent
// and as a rebellion-typed CombatEvent, and the star is flagged so production
// skips it this turn.
func (e *Engine) CheckRebellions(g *Game) ([]RebellionEvent, []CombatEvent) {
	var rebellions []RebellionEvent
	var combats []CombatEvent

	for _, star := range g.Stars {
		star.rebelled = false
		if star.Owner == Unowned {
			continue
		}
		slot := PlayerSlot(star.Owner)
		owner := g.Players[slot]
		if star.ID == owner.HomeStar {
			continue
		}
		garrison := star.Stationed[slot]
		if garrison >= GarrisonFloor(star.BaseRU, e.cfg) {
			continue
		}
		if g.RNG.Float64() >= e.cfg.RebellionChance {
			continue
		}

		star.rebelled = true
		rebels := star.BaseRU + g.RNG.IntN(1, star.BaseRU)
		attSurv, defSurv := e.resolver.Resolve(rebels, garrison, g.RNG)

		ev := RebellionEvent{
			Star:           star.ID,
			StarName:       star.Name,
			Owner:          owner.ID,
			RU:             star.BaseRU,
			GarrisonBefore: garrison,
			RebelShips:     rebels,
			GarrisonAfter:  defSurv,
			RebelSurvivors: attSurv,
		}
		combat := CombatEvent{
			StarID:            star.ID,
			StarName:          star.Name,
			CombatType:        CombatRebellion,
			Attacker:          RebelSide,
			Defender:          owner.ID,
			AttackerShips:     rebels,
			DefenderShips:     garrison,
			AttackerSurvivors: attSurv,
			DefenderSurvivors: defSurv,
			AttackerLosses:    rebels - attSurv,
			DefenderLosses:    garrison - defSurv,
			ControlBefore:     owner.ID,
		}

		star.Stationed[slot] = defSurv
		switch {
		case attSurv > 0 && defSurv == 0:
			// Rebels take the star; it reverts to neutral with a rebel garrison.
			star.Owner = Unowned
			star.NPCShips = attSurv
			ev.Outcome = RebellionWon
			combat.Winner = WinAttacker
		case defSurv > 0 && attSurv == 0:
			ev.Outcome = RebellionSuppressed
			combat.Winner = WinDefender
		default:
			star.Owner = Unowned
			star.NPCShips = 0
			ev.Outcome = RebellionMutual
			combat.Winner = WinNone
			combat.Simultaneous = true
		}
		combat.ControlAfter = g.PlayerID(star.Owner)

		rebellions = append(rebellions, ev)
		combats = append(combats, combat)
	}

	return rebellions, combats
}
