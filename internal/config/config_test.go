package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEmbeddedDefaultsParse(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}

	if len(cfg.Generator.Tiers) != 6 {
		t.Errorf("expected 6 tier bands, got %d", len(cfg.Generator.Tiers))
	}
	if cfg.Daily.FastThreshold != 30*time.Second {
		t.Errorf("fast_threshold = %v, want 30s", cfg.Daily.FastThreshold)
	}
	if cfg.Economy.CoinValue != 3 {
		t.Errorf("coin_value = %d, want 3", cfg.Economy.CoinValue)
	}
}

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig() invalid: %v", err)
	}
}

func TestTierForCoversAllLevels(t *testing.T) {
	g := DefaultConfig().Generator

	for id := 1; id <= 200; id++ {
		tier, err := g.TierFor(id)
		if err != nil {
			t.Fatalf("TierFor(%d) failed: %v", id, err)
		}
		size := tier.GridSize(id)
		if size < 5 || size > 10 {
			t.Errorf("level %d: grid size %d outside [5,10]", id, size)
		}
	}

	if _, err := g.TierFor(201); err == nil {
		t.Error("expected error for level 201")
	}
	if _, err := g.TierFor(0); err == nil {
		t.Error("expected error for level 0")
	}
}

func TestGridSizeGrowsWithinBand(t *testing.T) {
	band := TierBand{First: 1, Last: 20, SizeBase: 5, SizeStep: 10, SizeMax: 6}

	tests := []struct {
		level int
		want  int
	}{
		{1, 5},
		{10, 5},
		{11, 6},
		{20, 6},
	}
	for _, tt := range tests {
		if got := band.GridSize(tt.level); got != tt.want {
			t.Errorf("GridSize(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestValidateRejectsGap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Generator.Tiers[1].First = 22

	if err := cfg.Validate(); err == nil {
		t.Error("expected error for gap between tiers")
	}
}

func TestValidateRejectsOverfullRates(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Generator.Tiers[0].ObstacleRate = 0.99

	if err := cfg.Validate(); err == nil {
		t.Error("expected error when spawn rates exceed 1")
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	data := []byte("economy:\n  coin_value: 7\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Economy.CoinValue != 7 {
		t.Errorf("coin_value = %d, want 7", cfg.Economy.CoinValue)
	}
	// Unset keys keep their defaults
	if cfg.Economy.CompletionBase != 10 {
		t.Errorf("completion_base = %d, want default 10", cfg.Economy.CompletionBase)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}
}

func TestApplyPreset(t *testing.T) {
	base := DefaultConfig()

	easy := DefaultConfig()
	ApplyPreset(&easy, DifficultyEasy)
	if easy.Generator.Tiers[0].ExtraMoves != base.Generator.Tiers[0].ExtraMoves+2 {
		t.Errorf("easy preset should add 2 extra moves")
	}

	hard := DefaultConfig()
	ApplyPreset(&hard, DifficultyHard)
	for i, tier := range hard.Generator.Tiers {
		if tier.ExtraMoves < 1 {
			t.Errorf("hard tier %d: extra moves %d < 1", i, tier.ExtraMoves)
		}
	}

	fixed := DefaultConfig()
	ApplyPreset(&fixed, DifficultyFixed)
	last := fixed.Generator.Tiers[len(fixed.Generator.Tiers)-1]
	if last.ObstacleRate != base.Generator.Tiers[0].ObstacleRate {
		t.Errorf("fixed preset should pin obstacle rate, got %.2f", last.ObstacleRate)
	}
	if fixed.Economy.StartLives != base.Economy.StartLives || fixed.Generator.Tiers[0].ExtraMoves != base.Generator.Tiers[0].ExtraMoves {
		t.Error("fixed preset should leave budgets and lives alone")
	}
	if !IsFixedPreset(DifficultyFixed) || IsFixedPreset(DifficultyHard) {
		t.Error("IsFixedPreset should only match the fixed preset")
	}

	// A shallow copy shares the tier slice; the preset must not write through it
	shared := base
	ApplyPreset(&shared, DifficultyEasy)
	if base.Generator.Tiers[0].ExtraMoves != DefaultConfig().Generator.Tiers[0].ExtraMoves {
		t.Error("ApplyPreset mutated the original tier slice")
	}
}

func TestParsePreset(t *testing.T) {
	if p, err := ParsePreset(""); err != nil || p != DifficultyNormal {
		t.Errorf("ParsePreset(\"\") = %q, %v", p, err)
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("expected error for unknown preset")
	}
}
