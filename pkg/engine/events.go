package engine

// Event records are transient per-turn values surfaced to callers and
// mirrored on the Game aggregate for display and analytics collaborators.
// Sides are identified by player id strings so consumers never need slot
// arithmetic; "neutral" and "rebels" name the non-player contenders.

// CombatType distinguishes the three combat triggers.
type CombatType string

const (
	CombatPlayers   CombatType = "players"   // both players present at one star
	CombatNeutral   CombatType = "neutral"   // a player against an NPC garrison
	CombatRebellion CombatType = "rebellion" // rebel force against a garrison
)

// NeutralSide and RebelSide label non-player contenders in combat events.
const (
	NeutralSide = "neutral"
	RebelSide   = "rebels"
)

// Combat winner labels.
const (
	WinAttacker = "attacker"
	WinDefender = "defender"
	WinNone     = "none"
)

// HyperspaceLoss records the total destruction of an in-flight fleet.
// Losses are all-or-nothing; there are no partial-ship losses.
type HyperspaceLoss struct {
	FleetID int    `json:"fleet_id"`
	Owner   string `json:"owner"`
	Ships   int    `json:"ships"`
	Origin  string `json:"origin"`
	Dest    string `json:"dest"`
}

// FleetArrival records a fleet merging into its destination garrison.
type FleetArrival struct {
	FleetID  int    `json:"fleet_id"`
	Owner    string `json:"owner"`
	Ships    int    `json:"ships"`
	Origin   string `json:"origin"`
	Dest     string `json:"dest"`
	Distance int    `json:"distance"`
}

// CombatEvent records the full resolution of one contested star: at most one
// per star per turn.
type CombatEvent struct {
	StarID            string     `json:"star_id"`
	StarName          string     `json:"star_name"`
	CombatType        CombatType `json:"combat_type"`
	Attacker          string     `json:"attacker"`
	Defender          string     `json:"defender"`
	AttackerShips     int        `json:"attacker_ships"`
	DefenderShips     int        `json:"defender_ships"`
	Winner            string     `json:"winner"`
	AttackerSurvivors int        `json:"attacker_survivors"`
	DefenderSurvivors int        `json:"defender_survivors"`
	AttackerLosses    int        `json:"attacker_losses"`
	DefenderLosses    int        `json:"defender_losses"`
	ControlBefore     string     `json:"control_before"`
	ControlAfter      string     `json:"control_after"`
	Simultaneous      bool       `json:"simultaneous"`
}

// RebellionEvent records a rebellion roll that fired at an under-garrisoned
// star. Outcome mirrors the combat winner: "rebels", "suppressed", or "mutual".
type RebellionEvent struct {
	Star           string `json:"star"`
	StarName       string `json:"star_name"`
	Owner          string `json:"owner"`
	RU             int    `json:"ru"`
	GarrisonBefore int    `json:"garrison_before"`
	RebelShips     int    `json:"rebel_ships"`
	Outcome        string `json:"outcome"`
	GarrisonAfter  int    `json:"garrison_after"`
	RebelSurvivors int    `json:"rebel_survivors"`
}

// Rebellion outcomes.
const (
	RebellionWon        = "rebels"
	RebellionSuppressed = "suppressed"
	RebellionMutual     = "mutual"
)
