package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/twobody/internal/dynamo"
)

const (
	DefaultIntegrator = "rk4"
	DefaultG          = 1.0
	DefaultDt         = 0.1
	DefaultSteps      = 1000
)

type Config struct {
	Integrator string     `yaml:"integrator"`
	G          float64    `yaml:"g"`
	Dt         float64    `yaml:"dt"`
	Steps      int        `yaml:"steps"`
	BodyA      BodyConfig `yaml:"body_a"`
	BodyB      BodyConfig `yaml:"body_b"`
}

type BodyConfig struct {
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	VX   float64 `yaml:"vx"`
	VY   float64 `yaml:"vy"`
	Mass float64 `yaml:"mass"`
}

func (b BodyConfig) Particle() dynamo.Particle {
	return dynamo.NewParticle(b.X, b.Y, b.VX, b.VY, b.Mass)
}

func DefaultConfig() *Config {
	return &Config{
		Integrator: DefaultIntegrator,
		G:          DefaultG,
		Dt:         DefaultDt,
		Steps:      DefaultSteps,
		BodyA:      BodyConfig{X: 0, Y: 0, VX: 0, VY: 0, Mass: 1},
		BodyB:      BodyConfig{X: 1, Y: 0, VX: 0, VY: 1, Mass: 1},
	}
}

func Load(path string) (*Config, error) {
	return LoadOnto(path, DefaultConfig())
}

// LoadOnto reads a YAML file over base. Fields missing from the file keep
// their base values.
func LoadOnto(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
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

func (c *Config) Particles() (dynamo.Particle, dynamo.Particle) {
	return c.BodyA.Particle(), c.BodyB.Particle()
}

func (c *Config) SimConfig() dynamo.Config {
	return dynamo.Config{
		G:             c.G,
		Dt:            c.Dt,
		Steps:         c.Steps,
		ValidateInput: true,
	}
}

func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// ParseOverrides splits "key=value" arguments into a map.
func ParseOverrides(args []string) (map[string]string, error) {
	out := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid override %q, expected key=value", arg)
		}
		out[strings.ToLower(key)] = strings.TrimSpace(value)
	}
	return out, nil
}

// OverrideKeys lists the keys accepted by ApplyOverrides.
func OverrideKeys() []string {
	keys := []string{"integrator", "g", "dt", "steps"}
	for _, body := range []string{"a", "b"} {
		for _, field := range []string{"x", "y", "vx", "vy", "mass"} {
			keys = append(keys, body+"."+field)
		}
	}
	return keys
}

// ApplyOverrides sets fields from loosely typed values. Keys are applied
// in sorted order so errors are reported deterministically.
func (c *Config) ApplyOverrides(values map[string]string) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := c.set(key, values[key]); err != nil {
			return fmt.Errorf("override %s: %w", key, err)
		}
	}
	return nil
}

func (c *Config) set(key, value string) error {
	switch key {
	case "integrator":
		c.Integrator = value
		return nil
	case "steps":
		n, err := cast.ToIntE(value)
		if err != nil {
			return err
		}
		c.Steps = n
		return nil
	}

	f, err := cast.ToFloat64E(value)
	if err != nil {
		return err
	}

	switch key {
	case "g":
		c.G = f
		return nil
	case "dt":
		c.Dt = f
		return nil
	}

	body, field, ok := strings.Cut(key, ".")
	if !ok {
		return fmt.Errorf("unknown key (available: %v)", OverrideKeys())
	}

	var bc *BodyConfig
	switch body {
	case "a":
		bc = &c.BodyA
	case "b":
		bc = &c.BodyB
	default:
		return fmt.Errorf("unknown body %q", body)
	}

	switch field {
	case "x":
		bc.X = f
	case "y":
		bc.Y = f
	case "vx":
		bc.VX = f
	case "vy":
		bc.VY = f
	case "mass":
		bc.Mass = f
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	return nil
}
