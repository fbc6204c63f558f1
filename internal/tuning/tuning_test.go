package tuning

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/voidhaven/starhold/pkg/engine"
)

func TestParse_PartialOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte("rebellion_chance: 0.5\nhome_production: 4\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	def := engine.DefaultConfig()
	if cfg.RebellionChance != 0.5 || cfg.HomeProduction != 4 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.HyperspaceRiskFactor != def.HyperspaceRiskFactor ||
		cfg.MaxHyperspaceRisk != def.MaxHyperspaceRisk ||
		cfg.GarrisonThreshold != def.GarrisonThreshold ||
		cfg.CombatHistoryDepth != def.CombatHistoryDepth {
		t.Errorf("defaults disturbed: %+v", cfg)
	}
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg != engine.DefaultConfig() {
		t.Errorf("empty input should yield defaults, got %+v", cfg)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"not yaml", ":::"},
		{"negative risk factor", "hyperspace_risk_factor: -1"},
		{"chance above one", "rebellion_chance: 1.5"},
		{"negative threshold", "garrison_threshold: -0.5"},
		{"negative production", "home_production: -3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.yaml)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte("hyperspace_risk_factor: 0.02\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HyperspaceRiskFactor != 0.02 {
		t.Errorf("risk factor = %v, want 0.02", cfg.HyperspaceRiskFactor)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
