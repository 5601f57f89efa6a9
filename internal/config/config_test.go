package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Plant != "anagallis" {
		t.Errorf("expected plant anagallis, got %s", cfg.Plant)
	}
	if cfg.Days != 30 {
		t.Errorf("expected 30 days, got %g", cfg.Days)
	}
	if cfg.Dt != 1 {
		t.Errorf("expected dt 1, got %g", cfg.Dt)
	}
	if cfg.MaxInc != 20 {
		t.Errorf("expected max_inc 20, got %g", cfg.MaxInc)
	}
	if err := cfg.GrowConfig().Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadSaveRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	cfg := DefaultConfig()
	cfg.Plant = "zeamays"
	cfg.Days = 14
	cfg.MaxInc = 7.5
	cfg.Seed = 42
	cfg.Growth = "linear"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *got != *cfg {
		t.Errorf("roundtrip mismatch:\nsaved  %+v\nloaded %+v", cfg, got)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, []byte("days: 10\nseed: 7\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Days != 10 || cfg.Seed != 7 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Plant != DefaultPlant || cfg.Dt != DefaultDt || cfg.MaxInc != DefaultMaxInc {
		t.Errorf("defaults not preserved: %+v", cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGrowConfig(t *testing.T) {
	cfg := &Config{Days: 21, Dt: 0.5, MaxInc: 12, Seed: 9}
	gc := cfg.GrowConfig()
	if gc.SimTime != 21 || gc.Dt != 0.5 || gc.MaxInc != 12 || gc.Seed != 9 {
		t.Errorf("unexpected mapping: %+v", gc)
	}
}

func TestGetPreset(t *testing.T) {
	for _, name := range ListPresets() {
		p := GetPreset(name)
		if p == nil {
			t.Fatalf("expected preset %s, got nil", name)
		}
		if p.Name != name {
			t.Errorf("preset %s carries name %s", name, p.Name)
		}
		if err := p.Validate(); err != nil {
			t.Errorf("preset %s should validate: %v", name, err)
		}
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if p := GetPreset("nonexistent"); p != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestGetPreset_FreshCopies(t *testing.T) {
	a := GetPreset("anagallis")
	b := GetPreset("anagallis")
	if a == b {
		t.Fatal("expected distinct copies")
	}
	a.Types[0].R = 999
	if b.Types[0].R == 999 {
		t.Error("copies share root type storage")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) != 3 {
		t.Fatalf("expected 3 presets, got %d", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("presets not sorted: %v", names)
		}
	}
}

func TestResolvePlant_Preset(t *testing.T) {
	cfg := DefaultConfig()
	p, err := cfg.ResolvePlant()
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if p.Name != "anagallis" {
		t.Errorf("expected anagallis, got %s", p.Name)
	}
}

func TestResolvePlant_GrowthOverride(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Growth = "linear"
	p, err := cfg.ResolvePlant()
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	for _, rt := range p.Types {
		if rt.GrowthFunc != "linear" {
			t.Errorf("type %d growth not overridden: %q", rt.Type, rt.GrowthFunc)
		}
	}

	cfg.Growth = "cubic"
	if _, err := cfg.ResolvePlant(); err == nil {
		t.Error("expected error for unknown growth function")
	}
}

func TestResolvePlant_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	custom := GetPreset("lupinus")
	custom.Name = "custom"
	if err := SavePlant(path, custom); err != nil {
		t.Fatalf("save plant: %v", err)
	}

	cfg := DefaultConfig()
	cfg.Plant = path
	p, err := cfg.ResolvePlant()
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if p.Name != "custom" {
		t.Errorf("expected custom plant, got %s", p.Name)
	}

	cfg.Plant = filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := cfg.ResolvePlant(); err == nil {
		t.Error("expected error for unknown preset and missing file")
	}
}

func TestPlantFileRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plant.yaml")
	p := GetPreset("zeamays")
	if err := SavePlant(path, p); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := LoadPlant(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Name != p.Name || len(got.Types) != len(p.Types) {
		t.Fatalf("roundtrip lost structure: %+v", got)
	}
	for i := range p.Types {
		if got.Types[i].R != p.Types[i].R || got.Types[i].Nob != p.Types[i].Nob {
			t.Errorf("type %d parameters changed in roundtrip", i+1)
		}
		if got.Types[i].Tropism != p.Types[i].Tropism {
			t.Errorf("type %d tropism changed in roundtrip", i+1)
		}
	}
}
