package automation

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/twobody/internal/config"
	"github.com/san-kum/twobody/internal/experiment"
)

const scenarioYAML = `name: masses
description: vary the mass of b
steps:
  - label: light
    preset: binary
    set:
      steps: "20"
      b.mass: "0.5"
  - preset: heavy
    set:
      steps: "10"
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadScenario(t *testing.T) {
	s, err := LoadScenario(writeScenario(t, scenarioYAML))
	require.NoError(t, err)

	assert.Equal(t, "masses", s.Name)
	require.Len(t, s.Steps, 2)
	assert.Equal(t, "light", s.Steps[0].Label)
	assert.Equal(t, "0.5", s.Steps[0].Set["b.mass"])
}

func TestLoadScenario_Empty(t *testing.T) {
	_, err := LoadScenario(writeScenario(t, "name: empty\n"))
	assert.Error(t, err)
}

func TestRunScenario(t *testing.T) {
	s, err := LoadScenario(writeScenario(t, scenarioYAML))
	require.NoError(t, err)

	results, err := RunScenario(context.Background(), s, experiment.NewRegistry(), nil)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Len(t, results[0].Result.Trajectory, 20)
	assert.Equal(t, "light", results[0].Experiment.Metadata(results[0].Result).Label)
	assert.Equal(t, 0.5, results[0].Experiment.Metadata(nil).BodyB.Mass)

	assert.Len(t, results[1].Result.Trajectory, 10)
	assert.Equal(t, "masses_2", results[1].Experiment.Metadata(nil).Label)
}

func TestRunScenario_StopsOnError(t *testing.T) {
	s := &Scenario{Name: "bad", Steps: []ScenarioStep{
		{Set: map[string]string{"steps": "5"}},
		{Preset: "missing"},
		{Set: map[string]string{"steps": "5"}},
	}}

	results, err := RunScenario(context.Background(), s, experiment.NewRegistry(), nil)
	assert.ErrorContains(t, err, "step 2")
	assert.Len(t, results, 1)
}

func TestRunSweep(t *testing.T) {
	base := config.DefaultConfig()
	base.Steps = 10

	results, err := RunSweep(context.Background(), &ParameterSweep{
		Base: base, Param: "g", Min: 0, Max: 2, Points: 3,
	}, experiment.NewRegistry(), nil)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, []float64{0, 1, 2}, []float64{results[0].Value, results[1].Value, results[2].Value})

	// g=0 leaves both bodies where they started.
	assert.Equal(t, 1.0, results[0].Metrics["max_separation"])
	assert.Greater(t, results[2].Metrics["max_separation"], results[1].Metrics["max_separation"])
	assert.Equal(t, 10, base.Steps)
}

func TestRunSweep_BadParam(t *testing.T) {
	_, err := RunSweep(context.Background(), &ParameterSweep{
		Base: config.DefaultConfig(), Param: "c.mass", Min: 0, Max: 1, Points: 2,
	}, experiment.NewRegistry(), nil)
	assert.Error(t, err)

	_, err = RunSweep(context.Background(), &ParameterSweep{Base: config.DefaultConfig(), Param: "g"}, experiment.NewRegistry(), nil)
	assert.Error(t, err)
}
