package automation

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cast"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/twobody/internal/config"
	"github.com/san-kum/twobody/internal/dynamo"
	"github.com/san-kum/twobody/internal/experiment"
)

// Scenario is a scripted sequence of runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep starts from a preset (or the defaults) and applies overrides
// with the same keys as "run --set".
type ScenarioStep struct {
	Label  string            `yaml:"label"`
	Preset string            `yaml:"preset"`
	Set    map[string]string `yaml:"set"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}

	return &scenario, nil
}

// Config resolves the step into a full run configuration.
func (s ScenarioStep) Config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		cfg = config.GetPreset(s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
	}
	if err := cfg.ApplyOverrides(s.Set); err != nil {
		return nil, err
	}
	return cfg, nil
}

type StepResult struct {
	Experiment *experiment.Experiment
	Result     *dynamo.Result
}

// RunScenario executes every step in order and stops at the first failure,
// returning what completed so far.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry, logger *zap.Logger) ([]StepResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		label := step.Label
		if label == "" {
			label = fmt.Sprintf("%s_%d", scenario.Name, i+1)
		}
		logger.Info("scenario step",
			zap.String("scenario", scenario.Name),
			zap.Int("step", i+1),
			zap.Int("of", len(scenario.Steps)),
			zap.String("label", label),
		)

		cfg, err := step.Config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		exp := experiment.New(label, cfg, logger)
		if err := exp.Setup(registry); err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		results = append(results, StepResult{Experiment: exp, Result: result})
	}

	return results, nil
}

// ParameterSweep varies one override key linearly between Min and Max.
type ParameterSweep struct {
	Base   *config.Config
	Param  string
	Min    float64
	Max    float64
	Points int
}

type SweepResult struct {
	Value   float64
	Final   dynamo.Sample
	Metrics map[string]float64
}

func RunSweep(ctx context.Context, sweep *ParameterSweep, registry *experiment.Registry, logger *zap.Logger) ([]SweepResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if sweep.Points < 1 {
		return nil, fmt.Errorf("sweep needs at least one point")
	}

	step := 0.0
	if sweep.Points > 1 {
		step = (sweep.Max - sweep.Min) / float64(sweep.Points-1)
	}

	results := make([]SweepResult, 0, sweep.Points)
	for i := 0; i < sweep.Points; i++ {
		value := sweep.Min + float64(i)*step

		cfg := sweep.Base.Clone()
		if err := cfg.ApplyOverrides(map[string]string{sweep.Param: cast.ToString(value)}); err != nil {
			return results, err
		}

		exp := experiment.New(fmt.Sprintf("sweep_%s", sweep.Param), cfg, logger)
		if err := exp.Setup(registry); err != nil {
			return results, err
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("%s=%g: %w", sweep.Param, value, err)
		}

		var final dynamo.Sample
		if n := len(result.Trajectory); n > 0 {
			final = result.Trajectory[n-1]
		} else {
			a, b := cfg.Particles()
			final = dynamo.Sample{A: a.Position, B: b.Position}
		}

		results = append(results, SweepResult{Value: value, Final: final, Metrics: result.Metrics})
		logger.Debug("sweep point", zap.Int("point", i+1), zap.String("param", sweep.Param), zap.Float64("value", value))
	}

	return results, nil
}
