package bot

import (
	"sort"

	"github.com/voidhaven/starhold/pkg/engine"
)

// GreedyStrategy scores every (surplus garrison, target) pair and assigns
// fleets greedily, one per target. It hunts the opponent's home star when it
// knows where that is, weighs expansion targets by RU over distance, sends
// small probes into the fog, and reinforces its own stars that showed up in
// recent combat.
type GreedyStrategy struct{}

func (GreedyStrategy) Name() string { return "medium" }

type moveCandidate struct {
	from  *engine.Star
	to    *engine.Star
	ships int
	score float64
}

func (s GreedyStrategy) GenerateOrders(g *engine.Game, slot engine.PlayerSlot, cfg engine.Config) []engine.Order {
	player := g.Players[slot]

	surplus := make(map[string]int)
	for _, star := range ownedStars(g, slot) {
		floor := garrisonFloor(star, star.ID == player.HomeStar, cfg)
		if extra := star.Stationed[slot] - floor; extra > 0 {
			surplus[star.ID] = extra
		}
	}
	if len(surplus) == 0 {
		return nil
	}

	hot := s.contestedStars(g, slot)
	candidates := s.scoreMoves(g, slot, surplus, hot, cfg)
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	// Greedy assignment: one fleet per target, drawing each fleet from its
	// source star's remaining surplus.
	assignedTargets := make(map[string]bool)
	var orders []engine.Order
	for _, c := range candidates {
		if assignedTargets[c.to.ID] {
			continue
		}
		remaining := surplus[c.from.ID]
		if remaining <= 0 {
			continue
		}
		ships := c.ships
		if ships > remaining {
			ships = remaining
		}
		if ships <= 0 {
			continue
		}
		assignedTargets[c.to.ID] = true
		surplus[c.from.ID] -= ships
		orders = append(orders, engine.Order{
			From:      c.from.ID,
			To:        c.to.ID,
			Ships:     ships,
			Rationale: s.rationale(g, slot, c.to),
		})
	}

	return orders
}

// scoreMoves builds the candidate list. Only stars the player has visited
// contribute their garrison and RU to scoring; unvisited stars are scored
// blind on distance alone.
func (s GreedyStrategy) scoreMoves(g *engine.Game, slot engine.PlayerSlot, surplus map[string]int, hot map[string]bool, cfg engine.Config) []moveCandidate {
	player := g.Players[slot]
	opponent := g.Players[slot.Opponent()]
	var candidates []moveCandidate

	for fromID, extra := range surplus {
		from := g.StarByID(fromID)
		for _, to := range g.Stars {
			if to.ID == from.ID {
				continue
			}
			dist := engine.Chebyshev(from, to)
			if dist == 0 {
				continue
			}
			decay := 1.0 / float64(1+dist)

			if !player.HasVisited(to.ID) {
				// Blind probe: a couple of ships to lift the fog.
				ships := 2
				if ships > extra {
					ships = extra
				}
				candidates = append(candidates, moveCandidate{
					from: from, to: to, ships: ships,
					score: 0.5 * decay,
				})
				continue
			}

			switch {
			case to.Owner == engine.Owner(slot):
				if !hot[to.ID] {
					continue
				}
				// Reinforce a star of ours that just saw combat.
				ships := extra/2 + 1
				candidates = append(candidates, moveCandidate{
					from: from, to: to, ships: ships,
					score: 2.0 * decay,
				})
			case to.Owner == engine.Unowned:
				need := to.NPCShips + 1
				if need > extra {
					continue
				}
				candidates = append(candidates, moveCandidate{
					from: from, to: to, ships: need,
					score: float64(to.BaseRU) * decay,
				})
			default:
				// Enemy star. Capturing the home star wins the game.
				enemyGarrison := to.Stationed[slot.Opponent()]
				need := enemyGarrison + 1
				if need > extra {
					continue
				}
				score := float64(to.BaseRU) * 1.5 * decay
				if to.ID == opponent.HomeStar {
					score = 100 * decay
				}
				candidates = append(candidates, moveCandidate{
					from: from, to: to, ships: need,
					score: score,
				})
			}
		}
	}
	return candidates
}

// contestedStars collects ids of the player's stars that appear in the recent
// combat window, so reinforcement can chase actual pressure.
func (s GreedyStrategy) contestedStars(g *engine.Game, slot engine.PlayerSlot) map[string]bool {
	hot := make(map[string]bool)
	for _, turn := range g.CombatHistory {
		for _, ev := range turn {
			star := g.StarByID(ev.StarID)
			if star != nil && star.Owner == engine.Owner(slot) {
				hot[ev.StarID] = true
			}
		}
	}
	return hot
}

func (s GreedyStrategy) rationale(g *engine.Game, slot engine.PlayerSlot, to *engine.Star) string {
	player := g.Players[slot]
	opponent := g.Players[slot.Opponent()]
	switch {
	case to.ID == opponent.HomeStar && player.HasVisited(to.ID):
		return "strike enemy home"
	case !player.HasVisited(to.ID):
		return "probe"
	case to.Owner == engine.Owner(slot):
		return "reinforce"
	case to.Owner == engine.Unowned:
		return "expand"
	default:
		return "attack"
	}
}
