package engine

import (
	"errors"
	"fmt"
)

// Phase tags the turn state machine position. Ordering is an explicit,
// checkable invariant: the only legal walk is
// Idle -> Moving -> Combat -> Rebellion -> VictoryCheck -> OrderIntake ->
// Production -> Idle, with the turn counter incrementing between
// VictoryCheck and OrderIntake: the world reacts, then the players act.
type Phase string

const (
	PhaseIdle         Phase = "idle"
	PhaseMoving       Phase = "moving"
	PhaseCombat       Phase = "combat"
	PhaseRebellion    Phase = "rebellion"
	PhaseVictoryCheck Phase = "victory_check"
	PhaseOrderIntake  Phase = "order_intake"
	PhaseProduction   Phase = "production"
)

// ErrPhaseOrder indicates a composite entry point was invoked while the game
// is in the wrong phase.
var ErrPhaseOrder = errors.New("phase out of order")

// nextPhase is the single transition function of the state machine.
func nextPhase(p Phase) Phase {
	switch p {
	case PhaseIdle:
		return PhaseMoving
	case PhaseMoving:
		return PhaseCombat
	case PhaseCombat:
		return PhaseRebellion
	case PhaseRebellion:
		return PhaseVictoryCheck
	case PhaseVictoryCheck:
		return PhaseOrderIntake
	case PhaseOrderIntake:
		return PhaseProduction
	case PhaseProduction:
		return PhaseIdle
	}
	return PhaseIdle
}

// advancePhase transitions the game to the requested phase, failing when it
// is not the legal successor.
func (g *Game) advancePhase(to Phase) error {
	if nextPhase(g.Phase) != to {
		return fmt.Errorf("%w: cannot enter %s from %s", ErrPhaseOrder, to, g.Phase)
	}
	g.Phase = to
	return nil
}

// Engine runs turns against a Game using a fixed tuning and combat model.
// Individual phase methods are independently invokable for testing; the
// composite entry points below add only ordering and turn-counter placement.
type Engine struct {
	cfg      Config
	resolver CombatResolver
}

// NewEngine creates an Engine. A nil resolver falls back to the default
// attrition model.
func NewEngine(cfg Config, resolver CombatResolver) *Engine {
	if resolver == nil {
		resolver = AttritionResolver{}
	}
	if cfg.CombatHistoryDepth <= 0 {
		cfg.CombatHistoryDepth = DefaultConfig().CombatHistoryDepth
	}
	return &Engine{cfg: cfg, resolver: resolver}
}

// Config returns the engine's tuning.
func (e *Engine) Config() Config {
	return e.cfg
}

// WorldReport bundles the world-reactive events of one turn so callers can
// display them before prompting players for orders.
type WorldReport struct {
	Losses     []HyperspaceLoss
	Arrivals   []FleetArrival
	Combats    []CombatEvent
	Rebellions []RebellionEvent

	// Winner carries the winning player id when this turn ended the game.
	Winner string
}

// RunWorldPhases executes the pre-order half of a turn: movement, combat,
// rebellion, and the victory check, then increments the turn counter. The
// game is left awaiting order intake. Event logs on the aggregate are
// replaced with this turn's events before the victory check runs, so a
// game-ending capture is already visible in them.
func (e *Engine) RunWorldPhases(g *Game) (*WorldReport, error) {
	if err := g.advancePhase(PhaseMoving); err != nil {
		return nil, err
	}
	losses, arrivals, err := e.MoveFleets(g)
	if err != nil {
		return nil, err
	}

	if err := g.advancePhase(PhaseCombat); err != nil {
		return nil, err
	}
	combats := e.ResolveCombats(g)

	if err := g.advancePhase(PhaseRebellion); err != nil {
		return nil, err
	}
	rebellions, rebellionCombats := e.CheckRebellions(g)
	combats = append(combats, rebellionCombats...)

	g.LastLosses = losses
	g.LastArrivals = arrivals
	g.LastCombats = combats
	g.LastRebellions = rebellions
	g.CombatHistory = append(g.CombatHistory, combats)
	if len(g.CombatHistory) > e.cfg.CombatHistoryDepth {
		g.CombatHistory = g.CombatHistory[len(g.CombatHistory)-e.cfg.CombatHistoryDepth:]
	}

	if err := g.advancePhase(PhaseVictoryCheck); err != nil {
		return nil, err
	}
	CheckVictory(g)

	g.Turn++
	if err := g.advancePhase(PhaseOrderIntake); err != nil {
		return nil, err
	}

	return &WorldReport{
		Losses:     losses,
		Arrivals:   arrivals,
		Combats:    combats,
		Rebellions: rebellions,
		Winner:     g.WinnerID(),
	}, nil
}

// RunOrderPhases executes the post-order half of a turn: order intake and
// production, returning the per-player order errors. The game returns to
// Idle. Driving this after a winner is set is permitted but strategically
// meaningless; callers are expected to stop.
func (e *Engine) RunOrderPhases(g *Game, batches map[string][]Order) (map[string][]OrderError, error) {
	if g.Phase != PhaseOrderIntake {
		return nil, fmt.Errorf("%w: cannot intake orders from %s", ErrPhaseOrder, g.Phase)
	}
	if err := e.IntakeOrders(g, batches); err != nil {
		return nil, err
	}

	if err := g.advancePhase(PhaseProduction); err != nil {
		return nil, err
	}
	e.Produce(g)

	if err := g.advancePhase(PhaseIdle); err != nil {
		return nil, err
	}

	errs := make(map[string][]OrderError, 2)
	for slot := P1; slot <= P2; slot++ {
		if len(g.OrderErrors[slot]) > 0 {
			errs[g.Players[slot].ID] = g.OrderErrors[slot]
		}
	}
	return errs, nil
}
