package engine

import "fmt"

// Order is a player's intent to send ships from one controlled star to
// another. Rationale is a display-only strategic label.
type Order struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Ships     int    `json:"ships"`
	Rationale string `json:"rationale,omitempty"`
}

// OrderError is an expected, non-fatal validation problem. Errors are data
// here: they are collected per player and surfaced for feedback, never
// aborting other players' processing. Requested/Available carry the numbers
// callers need to render actionable messages.
type OrderError struct {
	Star      string `json:"star"`
	Message   string `json:"message"`
	Requested int    `json:"requested,omitempty"`
	Available int    `json:"available,omitempty"`
}

func (e *OrderError) Error() string {
	if e.Requested > 0 || e.Available > 0 {
		return fmt.Sprintf("%s: %s (requested %d, available %d)", e.Star, e.Message, e.Requested, e.Available)
	}
	return fmt.Sprintf("%s: %s", e.Star, e.Message)
}

// IntakeOrders turns per-player order batches into fleets using the hybrid
// validation protocol.
//
// Strict pass, per player: requested ships are summed per existing origin
// star across the whole batch. If the player does not control an origin, or
// any origin's total exceeds its garrison, the player's entire batch is
// rejected with one error attributed to that star and no fleets are created
// for them this turn. Orders naming a nonexistent origin never reject the
// batch; they fall through to the lenient pass like any other per-order
// problem.
//
// Lenient pass: each surviving order is validated individually. Non-positive
// ships, unknown origin or destination, same-star routes, lost ownership, and
// (re-checked) insufficient remaining garrison each skip that single order
// and record an error while the rest of the batch still executes.
//
// Executing an order deducts the ships from the origin immediately (combat
// already ran this turn, so departing ships correctly took no part in it)
// and creates a fleet with DistRemaining equal to the full Chebyshev
// distance, since its first movement step happens next turn.
//
// Unknown player ids in the batch map are an upstream construction bug and
// abort the intake.
func (e *Engine) IntakeOrders(g *Game, batches map[string][]Order) error {
	for id := range batches {
		if _, ok := g.SlotOf(id); !ok {
			return fmt.Errorf("%w: %s", ErrUnknownPlayer, id)
		}
	}

	// Players process in slot order so intake is deterministic regardless
	// of map iteration.
	for slot := P1; slot <= P2; slot++ {
		g.OrderErrors[slot] = nil
		player := g.Players[slot]
		orders := batches[player.ID]
		if len(orders) == 0 {
			continue
		}
		if !e.strictPass(g, slot, orders) {
			continue
		}
		e.lenientPass(g, slot, orders)
	}
	return nil
}

// strictPass applies the set-level check. Returns false when the batch is
// rejected.
func (e *Engine) strictPass(g *Game, slot PlayerSlot, orders []Order) bool {
	totals := make(map[string]int)
	for _, o := range orders {
		if o.Ships <= 0 || g.StarByID(o.From) == nil {
			// Skipped individually by the lenient pass.
			continue
		}
		totals[o.From] += o.Ships
	}
	// Origins check in order-list order so the attributed star is stable.
	seen := make(map[string]bool)
	for _, o := range orders {
		total, ok := totals[o.From]
		if !ok || seen[o.From] {
			continue
		}
		seen[o.From] = true
		star := g.StarByID(o.From)
		if star.Owner != Owner(slot) {
			g.OrderErrors[slot] = append(g.OrderErrors[slot], OrderError{
				Star:    o.From,
				Message: "batch rejected: origin star not controlled",
			})
			return false
		}
		if total > star.Stationed[slot] {
			g.OrderErrors[slot] = append(g.OrderErrors[slot], OrderError{
				Star:      o.From,
				Message:   "batch rejected: total ordered ships exceed garrison",
				Requested: total,
				Available: star.Stationed[slot],
			})
			return false
		}
	}
	return true
}

// lenientPass executes each individually valid order and collects errors for
// the rest.
func (e *Engine) lenientPass(g *Game, slot PlayerSlot, orders []Order) {
	player := g.Players[slot]
	for _, o := range orders {
		if o.Ships <= 0 {
			g.OrderErrors[slot] = append(g.OrderErrors[slot], OrderError{
				Star: o.From, Message: "order skipped: ship count must be positive",
			})
			continue
		}
		from := g.StarByID(o.From)
		if from == nil {
			g.OrderErrors[slot] = append(g.OrderErrors[slot], OrderError{
				Star: o.From, Message: "order skipped: origin star does not exist",
			})
			continue
		}
		to := g.StarByID(o.To)
		if to == nil {
			g.OrderErrors[slot] = append(g.OrderErrors[slot], OrderError{
				Star: o.To, Message: "order skipped: destination star does not exist",
			})
			continue
		}
		if o.From == o.To {
			g.OrderErrors[slot] = append(g.OrderErrors[slot], OrderError{
				Star: o.From, Message: "order skipped: origin and destination are the same star",
			})
			continue
		}
		if from.Owner != Owner(slot) {
			g.OrderErrors[slot] = append(g.OrderErrors[slot], OrderError{
				Star: o.From, Message: "order skipped: origin star not controlled",
			})
			continue
		}
		if o.Ships > from.Stationed[slot] {
			g.OrderErrors[slot] = append(g.OrderErrors[slot], OrderError{
				Star:      o.From,
				Message:   "order skipped: not enough ships remaining",
				Requested: o.Ships,
				Available: from.Stationed[slot],
			})
			continue
		}

		from.Stationed[slot] -= o.Ships
		player.FleetCounter++
		g.Fleets = append(g.Fleets, &Fleet{
			ID:            player.FleetCounter,
			Owner:         slot,
			Ships:         o.Ships,
			Origin:        o.From,
			Dest:          o.To,
			DistRemaining: Chebyshev(from, to),
			Rationale:     o.Rationale,
		})
	}
}
