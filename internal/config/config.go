package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rhizotron/rhizosim/internal/grow"
	"github.com/rhizotron/rhizosim/internal/rootsys"
)

const (
	DefaultDays   = 30.0
	DefaultDt     = 1.0
	DefaultMaxInc = 20.0
	DefaultSeed   = 1
	DefaultPlant  = "anagallis"
	DefaultDB     = "rhizosim.db"
)

// Config is a run description, loadable from YAML. Plant names a builtin
// preset or a plant parameter file.
type Config struct {
	Plant    string  `yaml:"plant"`
	Days     float64 `yaml:"days"`
	Dt       float64 `yaml:"dt"`
	MaxInc   float64 `yaml:"max_inc"`
	Seed     int64   `yaml:"seed"`
	Growth   string  `yaml:"growth,omitempty"` // override every type: negexp or linear
	DB       string  `yaml:"db,omitempty"`
	LogLevel string  `yaml:"log_level,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Plant:    DefaultPlant,
		Days:     DefaultDays,
		Dt:       DefaultDt,
		MaxInc:   DefaultMaxInc,
		Seed:     DefaultSeed,
		DB:       DefaultDB,
		LogLevel: "info",
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// GrowConfig maps the run description to driver parameters.
func (c *Config) GrowConfig() grow.Config {
	return grow.Config{
		SimTime: c.Days,
		Dt:      c.Dt,
		MaxInc:  c.MaxInc,
		Seed:    c.Seed,
	}
}

// ResolvePlant turns the Plant field into a validated parameter set: first
// the builtin presets, then the filesystem. The Growth override, if any, is
// applied before validation.
func (c *Config) ResolvePlant() (*rootsys.Plant, error) {
	p := GetPreset(c.Plant)
	if p == nil {
		loaded, err := LoadPlant(c.Plant)
		if err != nil {
			return nil, fmt.Errorf("plant %q: no such preset and %w", c.Plant, err)
		}
		p = loaded
	}
	if c.Growth != "" {
		if err := p.SetGrowthFunction(c.Growth); err != nil {
			return nil, err
		}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// LoadPlant reads a plant parameter file (YAML).
func LoadPlant(path string) (*rootsys.Plant, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p rootsys.Plant
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// SavePlant writes a plant parameter file (YAML).
func SavePlant(path string, p *rootsys.Plant) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
