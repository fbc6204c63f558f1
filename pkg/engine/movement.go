package engine

import (
	"fmt"
	"math"
)

// hyperspaceRisk derives the per-turn destruction risk from the full
// origin-destination distance. Risk grows as d*ln(d+1), faster than linear,
// reflecting greater exposure on long hauls; factor and cap are tuning.
func hyperspaceRisk(dist int, cfg Config) float64 {
	if dist <= 0 {
		return 0
	}
	d := float64(dist)
	risk := cfg.HyperspaceRiskFactor * d * math.Log(d+1)
	if risk > cfg.MaxHyperspaceRisk {
		return cfg.MaxHyperspaceRisk
	}
	return risk
}

// MoveFleets advances every in-flight fleet by one turn, in fleet-list order
// for determinism. Each fleet draws exactly one random float against its
// per-turn risk: below the risk the whole fleet is destroyed, otherwise it
// travels one step. A fleet reaching zero remaining distance arrives: its
// ships merge into the destination garrison and the destination joins the
// owner's fog-of-war set. This is the only fog-of-war reveal point, not
// order time and not display time. Ships were already deducted from the origin
// at order creation, so departing ships never fight at the origin.
func (e *Engine) MoveFleets(g *Game) ([]HyperspaceLoss, []FleetArrival, error) {
	var losses []HyperspaceLoss
	var arrivals []FleetArrival

	surviving := g.Fleets[:0]
	for _, f := range g.Fleets {
		origin := g.StarByID(f.Origin)
		dest := g.StarByID(f.Dest)
		if origin == nil || dest == nil {
			return nil, nil, fmt.Errorf("%w: fleet %d/%s route %s -> %s",
				ErrUnknownStar, f.ID, g.Players[f.Owner].ID, f.Origin, f.Dest)
		}

		dist := Chebyshev(origin, dest)
		if g.RNG.Float64() < hyperspaceRisk(dist, e.cfg) {
			losses = append(losses, HyperspaceLoss{
				FleetID: f.ID,
				Owner:   g.Players[f.Owner].ID,
				Ships:   f.Ships,
				Origin:  f.Origin,
				Dest:    f.Dest,
			})
			continue
		}

		f.DistRemaining--
		if f.DistRemaining > 0 {
			surviving = append(surviving, f)
			continue
		}

		dest.Stationed[f.Owner] += f.Ships
		g.Players[f.Owner].Visit(f.Dest)
		arrivals = append(arrivals, FleetArrival{
			FleetID:  f.ID,
			Owner:    g.Players[f.Owner].ID,
			Ships:    f.Ships,
			Origin:   f.Origin,
			Dest:     f.Dest,
			Distance: dist,
		})
	}
	// Drop references past the new length so destroyed fleets can be collected.
	for i := len(surviving); i < len(g.Fleets); i++ {
		g.Fleets[i] = nil
	}
	g.Fleets = surviving

	return losses, arrivals, nil
}
