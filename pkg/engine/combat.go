package engine

// CombatResolver computes survivors from two opposing ship counts. It must be
// a pure function of its inputs and any RNG draws it makes; no hidden state
// beyond what ends up in the logged event.
type CombatResolver interface {
	Resolve(attackers, defenders int, rng *RNG) (attackerSurvivors, defenderSurvivors int)
}

// AttritionResolver is the default combat model: forces annihilate each other
// one for one, the larger force keeps the difference, and equal forces
// destroy each other completely. Deterministic, so combat outcomes depend
// only on the two ship counts.
type AttritionResolver struct{}

// Resolve implements CombatResolver.
func (AttritionResolver) Resolve(attackers, defenders int, _ *RNG) (int, int) {
	switch {
	case attackers > defenders:
		return attackers - defenders, 0
	case defenders > attackers:
		return 0, defenders - attackers
	default:
		return 0, 0
	}
}

// ResolveCombats resolves every star where more than one contender has ships
// present after movement, producing at most one CombatEvent per contested
// star. It also claims empty unowned stars for a sole occupying player; a
// quiet claim emits no event. Side effects: star owner and garrisons reflect
// each outcome, with the losing side's presence zeroed.
func (e *Engine) ResolveCombats(g *Game) []CombatEvent {
	var events []CombatEvent
	for _, star := range g.Stars {
		p1, p2 := star.Stationed[P1], star.Stationed[P2]
		switch {
		case p1 > 0 && p2 > 0:
			events = append(events, e.resolvePlayers(g, star))
		case star.Owner == Unowned && star.NPCShips > 0 && (p1 > 0) != (p2 > 0):
			events = append(events, e.resolveNeutral(g, star))
		case p1 > 0 && star.Owner == Owner(P2) && p2 == 0:
			// Undefended enemy star: capture is still a combat outcome so
			// control changes are always visible in the combat log.
			events = append(events, e.resolvePlayers(g, star))
		case p2 > 0 && star.Owner == Owner(P1) && p1 == 0:
			events = append(events, e.resolvePlayers(g, star))
		case star.Owner == Unowned && star.NPCShips == 0 && (p1 > 0) != (p2 > 0):
			if p1 > 0 {
				star.Owner = Owner(P1)
			} else {
				star.Owner = Owner(P2)
			}
		}
	}
	return events
}

// resolvePlayers handles player-vs-player combat at a star. The star's owner
// defends when present; on neutral ground the arriving slots clash with the
// lower slot defending.
func (e *Engine) resolvePlayers(g *Game, star *Star) CombatEvent {
	defender := P1
	if star.Owner == Owner(P2) {
		defender = P2
	}
	attacker := defender.Opponent()

	attShips := star.Stationed[attacker]
	defShips := star.Stationed[defender]
	attSurv, defSurv := e.resolver.Resolve(attShips, defShips, g.RNG)

	before := star.Owner
	ev := CombatEvent{
		StarID:            star.ID,
		StarName:          star.Name,
		CombatType:        CombatPlayers,
		Attacker:          g.PlayerID(Owner(attacker)),
		Defender:          g.PlayerID(Owner(defender)),
		AttackerShips:     attShips,
		DefenderShips:     defShips,
		AttackerSurvivors: attSurv,
		DefenderSurvivors: defSurv,
		AttackerLosses:    attShips - attSurv,
		DefenderLosses:    defShips - defSurv,
		ControlBefore:     g.PlayerID(before),
	}

	star.Stationed[attacker] = attSurv
	star.Stationed[defender] = defSurv
	switch {
	case attSurv > 0 && defSurv == 0:
		ev.Winner = WinAttacker
		// An NPC garrison keeps the star neutral until it too is cleared.
		if star.NPCShips == 0 {
			star.Owner = Owner(attacker)
		}
	case defSurv > 0 && attSurv == 0:
		ev.Winner = WinDefender
		if star.NPCShips == 0 {
			star.Owner = Owner(defender)
		}
	default:
		// Mutual annihilation: control does not change hands.
		ev.Winner = WinNone
		ev.Simultaneous = true
	}
	ev.ControlAfter = g.PlayerID(star.Owner)
	return ev
}

// resolveNeutral handles a single player assaulting an NPC garrison.
func (e *Engine) resolveNeutral(g *Game, star *Star) CombatEvent {
	attacker := P1
	if star.Stationed[P2] > 0 {
		attacker = P2
	}

	attShips := star.Stationed[attacker]
	defShips := star.NPCShips
	attSurv, defSurv := e.resolver.Resolve(attShips, defShips, g.RNG)

	ev := CombatEvent{
		StarID:            star.ID,
		StarName:          star.Name,
		CombatType:        CombatNeutral,
		Attacker:          g.PlayerID(Owner(attacker)),
		Defender:          NeutralSide,
		AttackerShips:     attShips,
		DefenderShips:     defShips,
		AttackerSurvivors: attSurv,
		DefenderSurvivors: defSurv,
		AttackerLosses:    attShips - attSurv,
		DefenderLosses:    defShips - defSurv,
		ControlBefore:     "",
	}

	star.Stationed[attacker] = attSurv
	star.NPCShips = defSurv
	switch {
	case attSurv > 0 && defSurv == 0:
		ev.Winner = WinAttacker
		star.Owner = Owner(attacker)
	case defSurv > 0 && attSurv == 0:
		ev.Winner = WinDefender
	default:
		ev.Winner = WinNone
		ev.Simultaneous = true
	}
	ev.ControlAfter = g.PlayerID(star.Owner)
	return ev
}
