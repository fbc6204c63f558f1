// Package engine implements the deterministic turn engine for a two-player
// conquest game on a fixed grid of star systems. A turn advances through a
// fixed phase sequence: fleet movement with hyperspace attrition, combat
// resolution, rebellion checks, victory evaluation, order intake, and
// production. The package is pure computation: no I/O, no logging, no
// concurrency. Callers own the Game aggregate for the duration of a turn.
package engine

import (
	"errors"
	"fmt"
	"sort"
)

// PlayerSlot indexes the two player positions in slot-indexed state.
type PlayerSlot int

const (
	P1 PlayerSlot = 0
	P2 PlayerSlot = 1
)

// Opponent returns the other player slot.
func (s PlayerSlot) Opponent() PlayerSlot {
	return 1 - s
}

// Owner identifies who controls a star: a player slot, or Unowned.
type Owner int8

// Unowned marks a star with no player controller. NPC ships are only
// meaningful while a star is Unowned.
const Unowned Owner = -1

// ErrUnknownStar indicates a reference to a star id that does not exist in
// the world model. This is an upstream construction bug, not an order error,
// and aborts the turn.
var ErrUnknownStar = errors.New("unknown star")

// ErrUnknownPlayer indicates a reference to a player id that is not one of
// the two players in the game.
var ErrUnknownPlayer = errors.New("unknown player")

// Star is a system on the grid. Stars are created by galaxy generation and
// mutated in place every turn; they are never destroyed.
type Star struct {
	ID       string
	Name     string
	X, Y     int
	BaseRU   int // production value and garrison-threshold base
	Owner    Owner
	NPCShips int

	// Stationed holds per-player garrisons indexed by slot. A zero entry
	// means no presence; there is no absent-vs-zero distinction.
	Stationed [2]int

	// rebelled marks a star hit by a rebellion this turn so production
	// skips it. Cleared at the start of the next rebellion phase.
	rebelled bool
}

// Garrison returns the ships a slot has stationed at the star.
func (s *Star) Garrison(slot PlayerSlot) int {
	return s.Stationed[slot]
}

// Chebyshev returns the grid distance max(|dx|, |dy|) between two stars,
// used for both travel time and hyperspace risk scaling.
func Chebyshev(a, b *Star) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}

// Fleet is a group of ships in hyperspace. Created by order intake, destroyed
// on arrival (merged into the destination garrison) or on hyperspace loss.
type Fleet struct {
	ID            int // unique per owner, monotonically assigned
	Owner         PlayerSlot
	Ships         int
	Origin        string
	Dest          string
	DistRemaining int
	Rationale     string // display-only strategic label, no engine semantics
}

// Player holds per-player engine state. Players are never destroyed.
type Player struct {
	ID       string
	HomeStar string

	// Visited is the fog-of-war set: star ids this player has knowledge of.
	// The home star is a member from creation and is never removed. Movement
	// arrival is the only mutation point.
	Visited map[string]bool

	// FleetCounter allocates monotonic fleet ids for this player.
	FleetCounter int
}

// Visit adds a star to the player's fog-of-war set. Idempotent.
func (p *Player) Visit(starID string) {
	p.Visited[starID] = true
}

// HasVisited reports whether the player has fog-of-war knowledge of a star.
func (p *Player) HasVisited(starID string) bool {
	return p.Visited[starID]
}

// VisitedList returns the visited star ids in sorted order, for stable
// serialization.
func (p *Player) VisitedList() []string {
	ids := make([]string, 0, len(p.Visited))
	for id := range p.Visited {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Game is the aggregate owning the full world model: stars, in-flight fleets,
// the two players, the RNG, and the per-turn event logs mirrored for display
// and analytics collaborators. One turn, one caller, one thread.
type Game struct {
	Seed  int64
	Turn  int
	Phase Phase

	Stars   []*Star
	Fleets  []*Fleet
	Players [2]*Player

	RNG *RNG

	// Winner stays Unowned until a terminal condition fires, then is
	// immutable. Callers must stop driving the orchestrator once set.
	Winner Owner

	// Last-turn event logs, replaced by each world pass.
	LastLosses     []HyperspaceLoss
	LastArrivals   []FleetArrival
	LastCombats    []CombatEvent
	LastRebellions []RebellionEvent

	// CombatHistory is a rolling window of recent turns' combat events,
	// oldest first.
	CombatHistory [][]CombatEvent

	// OrderErrors holds per-player validation errors, cleared and
	// repopulated on every order-intake pass.
	OrderErrors [2][]OrderError
}

// NewGame assembles a game from generated stars and players. Home stars must
// exist and are marked visited from creation. The RNG is seeded from seed.
func NewGame(seed int64, stars []*Star, players [2]*Player) (*Game, error) {
	g := &Game{
		Seed:    seed,
		Phase:   PhaseIdle,
		Stars:   stars,
		Players: players,
		RNG:     NewRNG(seed),
		Winner:  Unowned,
	}
	for slot, p := range players {
		if p.Visited == nil {
			p.Visited = make(map[string]bool)
		}
		home := g.StarByID(p.HomeStar)
		if home == nil {
			return nil, fmt.Errorf("%w: player %s home star %s", ErrUnknownStar, p.ID, p.HomeStar)
		}
		if home.Owner != Owner(slot) {
			return nil, fmt.Errorf("player %s does not own home star %s", p.ID, p.HomeStar)
		}
		p.Visit(p.HomeStar)
	}
	return g, nil
}

// StarByID returns the star with the given id, or nil.
func (g *Game) StarByID(id string) *Star {
	for _, s := range g.Stars {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// SlotOf resolves a player id to its slot.
func (g *Game) SlotOf(playerID string) (PlayerSlot, bool) {
	for i, p := range g.Players {
		if p.ID == playerID {
			return PlayerSlot(i), true
		}
	}
	return 0, false
}

// PlayerID returns the id for a slot, or "" for Unowned.
func (g *Game) PlayerID(o Owner) string {
	if o == Unowned {
		return ""
	}
	return g.Players[o].ID
}

// WinnerID returns the winning player's id, or "" while the game is live.
func (g *Game) WinnerID() string {
	return g.PlayerID(g.Winner)
}

// Clone returns a deep copy of the game, including the RNG state. Mutations
// to the clone do not affect the original; search-based order producers
// advance speculative clones.
func (g *Game) Clone() *Game {
	c := &Game{
		Seed:   g.Seed,
		Turn:   g.Turn,
		Phase:  g.Phase,
		Winner: g.Winner,
		RNG:    NewRNG(g.Seed),
	}
	if err := c.RNG.RestoreState(g.RNG.CaptureState()); err != nil {
		// A freshly captured token always restores.
		panic(err)
	}
	c.Stars = make([]*Star, len(g.Stars))
	for i, s := range g.Stars {
		cp := *s
		c.Stars[i] = &cp
	}
	c.Fleets = make([]*Fleet, len(g.Fleets))
	for i, f := range g.Fleets {
		cp := *f
		c.Fleets[i] = &cp
	}
	for i, p := range g.Players {
		cp := *p
		cp.Visited = make(map[string]bool, len(p.Visited))
		for id := range p.Visited {
			cp.Visited[id] = true
		}
		c.Players[i] = &cp
	}
	c.LastLosses = append([]HyperspaceLoss(nil), g.LastLosses...)
	c.LastArrivals = append([]FleetArrival(nil), g.LastArrivals...)
	c.LastCombats = append([]CombatEvent(nil), g.LastCombats...)
	c.LastRebellions = append([]RebellionEvent(nil), g.LastRebellions...)
	if g.CombatHistory != nil {
		c.CombatHistory = make([][]CombatEvent, len(g.CombatHistory))
		for i, turn := range g.CombatHistory {
			c.CombatHistory[i] = append([]CombatEvent(nil), turn...)
		}
	}
	for i := range g.OrderErrors {
		c.OrderErrors[i] = append([]OrderError(nil), g.OrderErrors[i]...)
	}
	return c
}
