package bot

import (
	"github.com/voidhaven/starhold/pkg/engine"
)

// Strategy generates one turn's order batch for a player. Strategies see the
// full aggregate but are expected to respect fog: anything about a star the
// player has not visited is a guess.
type Strategy interface {
	Name() string
	GenerateOrders(g *engine.Game, slot engine.PlayerSlot, cfg engine.Config) []engine.Order
}

// StrategyForDifficulty returns the appropriate strategy for a difficulty
// level. Unknown levels fall back to easy so a match can always proceed.
func StrategyForDifficulty(difficulty string) Strategy {
	switch difficulty {
	case "medium":
		return &GreedyStrategy{}
	default:
		return &RandomStrategy{}
	}
}

// garrisonFloor is what a strategy leaves behind at an owned star. Home stars
// never rebel, so a single ship marks continued presence there.
func garrisonFloor(star *engine.Star, home bool, cfg engine.Config) int {
	if home {
		return 1
	}
	return engine.GarrisonFloor(star.BaseRU, cfg)
}

// ownedStars returns the player's stars in star-list order.
func ownedStars(g *engine.Game, slot engine.PlayerSlot) []*engine.Star {
	var owned []*engine.Star
	for _, s := range g.Stars {
		if s.Owner == engine.Owner(slot) {
			owned = append(owned, s)
		}
	}
	return owned
}
