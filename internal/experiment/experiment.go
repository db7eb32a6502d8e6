package experiment

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/san-kum/twobody/internal/config"
	"github.com/san-kum/twobody/internal/dynamo"
	"github.com/san-kum/twobody/internal/sim"
	"github.com/san-kum/twobody/internal/storage"
)

type Experiment struct {
	label     string
	cfg       *config.Config
	logger    *zap.Logger
	simulator *sim.Simulator
}

func New(label string, cfg *config.Config, logger *zap.Logger) *Experiment {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Experiment{
		label:  label,
		cfg:    cfg,
		logger: logger.With(zap.String("experiment", label)),
	}
}

// Setup resolves the integrator and attaches the default metrics and a
// progress logger.
func (e *Experiment) Setup(registry *Registry) error {
	stepper, err := registry.GetIntegrator(e.cfg.Integrator)
	if err != nil {
		return err
	}

	a, b := e.cfg.Particles()
	e.simulator = sim.New(stepper)
	for _, m := range registry.DefaultMetrics(a, b) {
		e.simulator.AddMetric(m)
	}
	e.simulator.AddObserver(newProgress(e.logger, e.cfg.Steps))
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*dynamo.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	a, b := e.cfg.Particles()
	e.logger.Debug("starting run",
		zap.String("integrator", e.cfg.Integrator),
		zap.Float64("g", e.cfg.G),
		zap.Float64("dt", e.cfg.Dt),
		zap.Int("steps", e.cfg.Steps),
	)

	result, err := e.simulator.Run(ctx, a, b, e.cfg.SimConfig())
	if err != nil {
		e.logger.Warn("run stopped", zap.Error(err))
		return result, err
	}

	e.logger.Debug("run finished", zap.Int("steps_taken", result.StepsTaken))
	return result, nil
}

// Metadata describes this experiment for storage.
func (e *Experiment) Metadata(result *dynamo.Result) storage.RunMetadata {
	a, b := e.cfg.Particles()
	meta := storage.RunMetadata{
		Label:      e.label,
		Integrator: e.cfg.Integrator,
		G:          e.cfg.G,
		Dt:         e.cfg.Dt,
		Steps:      e.cfg.Steps,
		BodyA:      a,
		BodyB:      b,
	}
	if result != nil {
		meta.Metrics = result.Metrics
	}
	return meta
}

// progress logs every tenth of the run at debug level.
type progress struct {
	logger *zap.Logger
	every  int
	total  int
}

func newProgress(logger *zap.Logger, total int) *progress {
	every := total / 10
	if every < 1 {
		every = 1
	}
	return &progress{logger: logger, every: every, total: total}
}

func (p *progress) OnStep(s dynamo.Sample, step int) {
	if (step+1)%p.every != 0 {
		return
	}
	p.logger.Debug("progress",
		zap.Int("step", step+1),
		zap.Int("total", p.total),
		zap.Stringer("a", s.A),
		zap.Stringer("b", s.B),
	)
}
