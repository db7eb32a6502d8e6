package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/twobody/internal/dynamo"
)

type Simulator struct {
	stepper   dynamo.Stepper
	metrics   []dynamo.Metric
	observers []dynamo.Observer
}

func New(stepper dynamo.Stepper) *Simulator {
	return &Simulator{
		stepper:   stepper,
		metrics:   make([]dynamo.Metric, 0),
		observers: make([]dynamo.Observer, 0),
	}
}

func (s *Simulator) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }

// Run advances copies of a and b cfg.Steps times. The context is checked
// between steps; on cancellation the samples recorded so far are returned
// with the context error.
func (s *Simulator) Run(ctx context.Context, a, b dynamo.Particle, cfg dynamo.Config) (*dynamo.Result, error) {
	if err := s.validate(a, b, cfg); err != nil {
		return nil, err
	}

	result := &dynamo.Result{
		Trajectory: make(dynamo.Trajectory, 0, cfg.Steps),
		Metrics:    make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	var runErr error
loop:
	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
			break loop
		default:
		}

		s.stepper.Step(&a, &b, cfg.G, cfg.Dt)
		sample := dynamo.Sample{A: a.Position, B: b.Position}

		if !sample.IsFinite() {
			runErr = &dynamo.SimulationError{Step: i, Sample: sample, Wrapped: dynamo.ErrInvalidState}
			break loop
		}

		result.Trajectory = append(result.Trajectory, sample)
		result.StepsTaken++

		for _, m := range s.metrics {
			m.Observe(sample, i)
		}
		for _, obs := range s.observers {
			obs.OnStep(sample, i)
		}
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, runErr
}

func (s *Simulator) validate(a, b dynamo.Particle, cfg dynamo.Config) error {
	if cfg.Steps < 0 {
		return fmt.Errorf("steps must be non-negative, got %d: %w", cfg.Steps, dynamo.ErrParameterBounds)
	}
	if !cfg.ValidateInput {
		return nil
	}
	if math.IsNaN(cfg.G) || math.IsInf(cfg.G, 0) {
		return fmt.Errorf("g: %w", dynamo.ErrInvalidInput)
	}
	if math.IsNaN(cfg.Dt) || math.IsInf(cfg.Dt, 0) {
		return fmt.Errorf("dt: %w", dynamo.ErrInvalidInput)
	}
	if err := a.Validate(); err != nil {
		return fmt.Errorf("body a: %w", err)
	}
	if err := b.Validate(); err != nil {
		return fmt.Errorf("body b: %w", err)
	}
	return nil
}
