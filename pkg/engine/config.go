package engine

// Config holds the tunable stochastic and economic constants. The numeric
// values are configuration, not structure: balance lives in a tuning file,
// and the statistical tests validate behavior against whatever is configured
// rather than against hard-coded magic numbers.
type Config struct {
	// HyperspaceRiskFactor scales per-turn destruction risk, which grows as
	// d*ln(d+1) with the full Chebyshev origin-destination distance d.
	HyperspaceRiskFactor float64

	// MaxHyperspaceRisk caps the per-turn risk so very long hauls stay
	// survivable.
	MaxHyperspaceRisk float64

	// RebellionChance is the per-turn probability that an under-garrisoned
	// star rebels.
	RebellionChance float64

	// GarrisonThreshold scales base RU into the minimum safe garrison:
	// a star is under-garrisoned when garrison < ceil(base_ru * threshold).
	GarrisonThreshold float64

	// HomeProduction is the fixed per-turn ship bonus at home stars;
	// other stars produce their base RU.
	HomeProduction int

	// CombatHistoryDepth is how many turns of combat events the aggregate
	// retains for analytics consumers.
	CombatHistoryDepth int
}

// DefaultConfig returns the baseline tuning.
func DefaultConfig() Config {
	return Config{
		HyperspaceRiskFactor: 0.01,
		MaxHyperspaceRisk:    0.5,
		RebellionChance:      0.15,
		GarrisonThreshold:    1.0,
		HomeProduction:       10,
		CombatHistoryDepth:   5,
	}
}
