// Package galaxy generates the star map a match is played on. Generation is
// deterministic in the seed and runs on its own generator, so building a map
// never disturbs the game's own random stream.
package galaxy

import (
	"fmt"
	"math/rand/v2"

	"github.com/voidhaven/starhold/pkg/engine"
)

// Params shape a generated map.
type Params struct {
	Width        int // grid columns
	Height       int // grid rows
	Stars        int // total stars, homes included
	HomeGarrison int // starting ships at each home star
	HomeBaseRU   int
	MinBaseRU    int
	MaxBaseRU    int
	MaxNPCShips  int // neutral stars roll 0..MaxNPCShips defenders
}

// DefaultParams is a small map that keeps bot matches quick.
func DefaultParams() Params {
	return Params{
		Width:        10,
		Height:       10,
		Stars:        12,
		HomeGarrison: 10,
		HomeBaseRU:   5,
		MinBaseRU:    1,
		MaxBaseRU:    4,
		MaxNPCShips:  6,
	}
}

// starNames seeds generated maps with recognizable names before falling back
// to numbered designations.
var starNames = []string{
	"Sol", "Altair", "Vega", "Rigel", "Deneb", "Procyon", "Capella",
	"Arcturus", "Sirius", "Pollux", "Castor", "Antares", "Spica",
	"Aldebaran", "Fomalhaut", "Mizar", "Alcor", "Regulus", "Bellatrix",
	"Canopus",
}

// Generate builds a fresh game for the two player ids. Home stars sit in
// opposite corners of the grid; the remaining stars land on distinct cells
// with rolled RU values and NPC garrisons.
func Generate(seed int64, p Params, p1ID, p2ID string) (*engine.Game, error) {
	if p.Stars < 2 {
		return nil, fmt.Errorf("galaxy: need at least 2 stars, got %d", p.Stars)
	}
	if p.Width < 2 || p.Height < 2 {
		return nil, fmt.Errorf("galaxy: grid %dx%d too small", p.Width, p.Height)
	}
	if p.Stars > p.Width*p.Height {
		return nil, fmt.Errorf("galaxy: %d stars do not fit a %dx%d grid", p.Stars, p.Width, p.Height)
	}
	if p.MinBaseRU < 1 || p.MaxBaseRU < p.MinBaseRU {
		return nil, fmt.Errorf("galaxy: bad RU range [%d, %d]", p.MinBaseRU, p.MaxBaseRU)
	}
	if p1ID == "" || p2ID == "" || p1ID == p2ID {
		return nil, fmt.Errorf("galaxy: player ids must be distinct and non-empty")
	}

	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0xda3e39cb94b95bdb))

	cells := make([][2]int, 0, p.Width*p.Height)
	for x := 0; x < p.Width; x++ {
		for y := 0; y < p.Height; y++ {
			cells = append(cells, [2]int{x, y})
		}
	}
	// Corners are reserved for the homes.
	homes := [2][2]int{{0, 0}, {p.Width - 1, p.Height - 1}}
	free := cells[:0]
	for _, c := range cells {
		if c != homes[0] && c != homes[1] {
			free = append(free, c)
		}
	}
	rng.Shuffle(len(free), func(i, j int) { free[i], free[j] = free[j], free[i] })

	names := append([]string(nil), starNames...)
	rng.Shuffle(len(names), func(i, j int) { names[i], names[j] = names[j], names[i] })
	name := func(i int) string {
		if i < len(names) {
			return names[i]
		}
		return fmt.Sprintf("Star %d", i+1)
	}

	stars := make([]*engine.Star, 0, p.Stars)
	for slot := engine.P1; slot <= engine.P2; slot++ {
		s := &engine.Star{
			ID:     fmt.Sprintf("s%02d", len(stars)+1),
			Name:   name(len(stars)),
			X:      homes[slot][0],
			Y:      homes[slot][1],
			BaseRU: p.HomeBaseRU,
			Owner:  engine.Owner(slot),
		}
		s.Stationed[slot] = p.HomeGarrison
		stars = append(stars, s)
	}
	for i := 2; i < p.Stars; i++ {
		c := free[i-2]
		stars = append(stars, &engine.Star{
			ID:       fmt.Sprintf("s%02d", i+1),
			Name:     name(i),
			X:        c[0],
			Y:        c[1],
			BaseRU:   p.MinBaseRU + rng.IntN(p.MaxBaseRU-p.MinBaseRU+1),
			Owner:    engine.Unowned,
			NPCShips: rng.IntN(p.MaxNPCShips + 1),
		})
	}

	players := [2]*engine.Player{
		{ID: p1ID, HomeStar: stars[0].ID},
		{ID: p2ID, HomeStar: stars[1].ID},
	}
	return engine.NewGame(seed, stars, players)
}
