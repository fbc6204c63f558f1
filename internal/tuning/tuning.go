// Package tuning loads engine balance constants from a yaml file, so match
// tooling can sweep parameters without recompiling.
package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/voidhaven/starhold/pkg/engine"
)

// Tuning mirrors engine.Config in yaml form. Zero values fall back to the
// engine defaults field by field, so a partial file overrides only what it
// names.
type Tuning struct {
	HyperspaceRiskFactor float64 `yaml:"hyperspace_risk_factor"`
	MaxHyperspaceRisk    float64 `yaml:"max_hyperspace_risk"`
	RebellionChance      float64 `yaml:"rebellion_chance"`
	GarrisonThreshold    float64 `yaml:"garrison_threshold"`
	HomeProduction       int     `yaml:"home_production"`
	CombatHistoryDepth   int     `yaml:"combat_history_depth"`
}

// Load reads a tuning file and folds it over the engine defaults.
func Load(path string) (engine.Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return engine.Config{}, err
	}
	return Parse(raw)
}

// Parse folds yaml bytes over the engine defaults.
func Parse(raw []byte) (engine.Config, error) {
	var t Tuning
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return engine.Config{}, fmt.Errorf("tuning yaml: %w", err)
	}
	cfg := engine.DefaultConfig()
	if t.HyperspaceRiskFactor != 0 {
		cfg.HyperspaceRiskFactor = t.HyperspaceRiskFactor
	}
	if t.MaxHyperspaceRisk != 0 {
		cfg.MaxHyperspaceRisk = t.MaxHyperspaceRisk
	}
	if t.RebellionChance != 0 {
		cfg.RebellionChance = t.RebellionChance
	}
	if t.GarrisonThreshold != 0 {
		cfg.GarrisonThreshold = t.GarrisonThreshold
	}
	if t.HomeProduction != 0 {
		cfg.HomeProduction = t.HomeProduction
	}
	if t.CombatHistoryDepth != 0 {
		cfg.CombatHistoryDepth = t.CombatHistoryDepth
	}
	if err := validate(cfg); err != nil {
		return engine.Config{}, err
	}
	return cfg, nil
}

func validate(cfg engine.Config) error {
	switch {
	case cfg.HyperspaceRiskFactor < 0:
		return fmt.Errorf("tuning: hyperspace_risk_factor must be non-negative")
	case cfg.MaxHyperspaceRisk < 0 || cfg.MaxHyperspaceRisk > 1:
		return fmt.Errorf("tuning: max_hyperspace_risk must be a probability")
	case cfg.RebellionChance < 0 || cfg.RebellionChance > 1:
		return fmt.Errorf("tuning: rebellion_chance must be a probability")
	case cfg.GarrisonThreshold < 0:
		return fmt.Errorf("tuning: garrison_threshold must be non-negative")
	case cfg.HomeProduction < 0:
		return fmt.Errorf("tuning: home_production must be non-negative")
	}
	return nil
}
