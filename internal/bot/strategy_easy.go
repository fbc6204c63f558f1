package bot

import (
	"github.com/voidhaven/starhold/pkg/engine"
)

// RandomStrategy expands at random: every owned star with a surplus above its
// garrison floor has a chance to fling the surplus at a random other star,
// preferring nearby ones it has not visited yet.
type RandomStrategy struct{}

func (RandomStrategy) Name() string { return "easy" }

// launchChance is how often a surplus garrison actually sends a fleet.
const launchChance = 0.7

func (RandomStrategy) GenerateOrders(g *engine.Game, slot engine.PlayerSlot, cfg engine.Config) []engine.Order {
	player := g.Players[slot]
	var orders []engine.Order

	for _, star := range ownedStars(g, slot) {
		floor := garrisonFloor(star, star.ID == player.HomeStar, cfg)
		surplus := star.Stationed[slot] - floor
		if surplus <= 0 || botFloat64() >= launchChance {
			continue
		}

		targets := make([]*engine.Star, 0, len(g.Stars)-1)
		for _, t := range g.Stars {
			if t.ID != star.ID {
				targets = append(targets, t)
			}
		}
		if len(targets) == 0 {
			continue
		}
		botShuffle(len(targets), func(i, j int) { targets[i], targets[j] = targets[j], targets[i] })

		// Prefer an unvisited target within a short hop; otherwise take
		// whatever the shuffle put first.
		dest := targets[0]
		for _, t := range targets {
			if !player.HasVisited(t.ID) && engine.Chebyshev(star, t) <= 4 {
				dest = t
				break
			}
		}

		ships := 1 + botIntn(surplus)
		orders = append(orders, engine.Order{
			From:      star.ID,
			To:        dest.ID,
			Ships:     ships,
			Rationale: "random expansion",
		})
	}
	return orders
}
