package engine

import (
	"errors"
	"fmt"
)

// ErrCorruptSnapshot is returned when snapshot data fails validation at load
// time. Loading fails closed: a partially valid snapshot never produces a
// partially loaded game.
var ErrCorruptSnapshot = errors.New("corrupt snapshot")

// Snapshot is the persistence-facing shape of a game, produced and consumed
// by the external serialization collaborator. Garrisons serialize as a
// player-id map and visited sets as sorted lists so encodings are stable.
// Round-tripping a game through its snapshot reproduces bit-identical
// behavior given the same future orders: the RNG token captures the full
// generator state atomically with the rest of the aggregate.
type Snapshot struct {
	Seed     int64            `json:"seed"`
	Turn     int              `json:"turn"`
	Winner   string           `json:"winner,omitempty"`
	Stars    []StarSnapshot   `json:"stars"`
	Fleets   []FleetSnapshot  `json:"fleets"`
	Players  []PlayerSnapshot `json:"players"`
	RNGState string           `json:"rng_state"`
}

// StarSnapshot is the wire form of a Star.
type StarSnapshot struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	X         int            `json:"x"`
	Y         int            `json:"y"`
	BaseRU    int            `json:"base_ru"`
	Owner     string         `json:"owner,omitempty"`
	NPCShips  int            `json:"npc_ships,omitempty"`
	Stationed map[string]int `json:"stationed_ships,omitempty"`

	// Rebelled survives the save so a mid-turn snapshot taken between the
	// world phases and production still skips suppressed stars.
	Rebelled bool `json:"rebelled,omitempty"`
}

// FleetSnapshot is the wire form of a Fleet.
type FleetSnapshot struct {
	ID            int    `json:"id"`
	Owner         string `json:"owner"`
	Ships         int    `json:"ships"`
	Origin        string `json:"origin"`
	Dest          string `json:"dest"`
	DistRemaining int    `json:"dist_remaining"`
	Rationale     string `json:"rationale,omitempty"`
}

// PlayerSnapshot is the wire form of a Player.
type PlayerSnapshot struct {
	ID           string   `json:"id"`
	HomeStar     string   `json:"home_star"`
	Visited      []string `json:"visited_stars"`
	FleetCounter int      `json:"fleet_counter"`
}

// Snapshot captures the game between turns. Event logs are per-turn
// transients and are not part of the persisted state.
func (g *Game) Snapshot() *Snapshot {
	s := &Snapshot{
		Seed:     g.Seed,
		Turn:     g.Turn,
		Winner:   g.WinnerID(),
		RNGState: g.RNG.CaptureState(),
	}
	for _, star := range g.Stars {
		ss := StarSnapshot{
			ID:       star.ID,
			Name:     star.Name,
			X:        star.X,
			Y:        star.Y,
			BaseRU:   star.BaseRU,
			Owner:    g.PlayerID(star.Owner),
			NPCShips: star.NPCShips,
			Rebelled: star.rebelled,
		}
		for slot := P1; slot <= P2; slot++ {
			if star.Stationed[slot] > 0 {
				if ss.Stationed == nil {
					ss.Stationed = make(map[string]int, 2)
				}
				ss.Stationed[g.Players[slot].ID] = star.Stationed[slot]
			}
		}
		s.Stars = append(s.Stars, ss)
	}
	for _, f := range g.Fleets {
		s.Fleets = append(s.Fleets, FleetSnapshot{
			ID:            f.ID,
			Owner:         g.Players[f.Owner].ID,
			Ships:         f.Ships,
			Origin:        f.Origin,
			Dest:          f.Dest,
			DistRemaining: f.DistRemaining,
			Rationale:     f.Rationale,
		})
	}
	for _, p := range g.Players {
		s.Players = append(s.Players, PlayerSnapshot{
			ID:           p.ID,
			HomeStar:     p.HomeStar,
			Visited:      p.VisitedList(),
			FleetCounter: p.FleetCounter,
		})
	}
	return s
}

// FromSnapshot reconstructs a game. Any dangling reference (unknown player
// ids, unknown star ids, a malformed RNG token) fails the whole load.
func FromSnapshot(s *Snapshot) (*Game, error) {
	if len(s.Players) != 2 {
		return nil, fmt.Errorf("%w: expected 2 players, got %d", ErrCorruptSnapshot, len(s.Players))
	}

	g := &Game{
		Seed:   s.Seed,
		Turn:   s.Turn,
		Phase:  PhaseIdle,
		RNG:    NewRNG(s.Seed),
		Winner: Unowned,
	}

	slotOf := make(map[string]PlayerSlot, 2)
	for i, ps := range s.Players {
		if ps.ID == "" {
			return nil, fmt.Errorf("%w: player %d has empty id", ErrCorruptSnapshot, i)
		}
		if _, dup := slotOf[ps.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate player id %s", ErrCorruptSnapshot, ps.ID)
		}
		slotOf[ps.ID] = PlayerSlot(i)
		p := &Player{
			ID:           ps.ID,
			HomeStar:     ps.HomeStar,
			Visited:      make(map[string]bool, len(ps.Visited)),
			FleetCounter: ps.FleetCounter,
		}
		for _, id := range ps.Visited {
			p.Visited[id] = true
		}
		g.Players[i] = p
	}

	starIDs := make(map[string]bool, len(s.Stars))
	for _, ss := range s.Stars {
		if ss.ID == "" || starIDs[ss.ID] {
			return nil, fmt.Errorf("%w: bad star id %q", ErrCorruptSnapshot, ss.ID)
		}
		starIDs[ss.ID] = true
		star := &Star{
			ID:       ss.ID,
			Name:     ss.Name,
			X:        ss.X,
			Y:        ss.Y,
			BaseRU:   ss.BaseRU,
			Owner:    Unowned,
			NPCShips: ss.NPCShips,
			rebelled: ss.Rebelled,
		}
		if ss.Owner != "" {
			slot, ok := slotOf[ss.Owner]
			if !ok {
				return nil, fmt.Errorf("%w: star %s owned by unknown player %s", ErrCorruptSnapshot, ss.ID, ss.Owner)
			}
			star.Owner = Owner(slot)
		}
		for id, n := range ss.Stationed {
			slot, ok := slotOf[id]
			if !ok {
				return nil, fmt.Errorf("%w: star %s garrison for unknown player %s", ErrCorruptSnapshot, ss.ID, id)
			}
			if n < 0 {
				return nil, fmt.Errorf("%w: star %s negative garrison", ErrCorruptSnapshot, ss.ID)
			}
			star.Stationed[slot] = n
		}
		g.Stars = append(g.Stars, star)
	}

	for _, p := range g.Players {
		if !starIDs[p.HomeStar] {
			return nil, fmt.Errorf("%w: player %s home star %s missing", ErrCorruptSnapshot, p.ID, p.HomeStar)
		}
		p.Visit(p.HomeStar)
		for id := range p.Visited {
			if !starIDs[id] {
				return nil, fmt.Errorf("%w: player %s visited unknown star %s", ErrCorruptSnapshot, p.ID, id)
			}
		}
	}

	for _, fs := range s.Fleets {
		slot, ok := slotOf[fs.Owner]
		if !ok {
			return nil, fmt.Errorf("%w: fleet %d owned by unknown player %s", ErrCorruptSnapshot, fs.ID, fs.Owner)
		}
		if !starIDs[fs.Origin] || !starIDs[fs.Dest] {
			return nil, fmt.Errorf("%w: fleet %d references unknown star", ErrCorruptSnapshot, fs.ID)
		}
		if fs.Ships <= 0 || fs.DistRemaining < 0 {
			return nil, fmt.Errorf("%w: fleet %d has invalid ships or distance", ErrCorruptSnapshot, fs.ID)
		}
		g.Fleets = append(g.Fleets, &Fleet{
			ID:            fs.ID,
			Owner:         slot,
			Ships:         fs.Ships,
			Origin:        fs.Origin,
			Dest:          fs.Dest,
			DistRemaining: fs.DistRemaining,
			Rationale:     fs.Rationale,
		})
	}

	if s.Winner != "" {
		slot, ok := slotOf[s.Winner]
		if !ok {
			return nil, fmt.Errorf("%w: unknown winner %s", ErrCorruptSnapshot, s.Winner)
		}
		g.Winner = Owner(slot)
	}

	if err := g.RNG.RestoreState(s.RNGState); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	return g, nil
}
