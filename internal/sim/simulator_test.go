package sim_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/twobody/internal/dynamo"
	"github.com/san-kum/twobody/internal/integrators"
	"github.com/san-kum/twobody/internal/sim"
)

type countingMetric struct {
	count int
	last  int
}

func (c *countingMetric) Name() string                   { return "count" }
func (c *countingMetric) Observe(_ dynamo.Sample, i int) { c.count++; c.last = i }
func (c *countingMetric) Value() float64                 { return float64(c.count) }
func (c *countingMetric) Reset()                         { c.count, c.last = 0, 0 }

type cancelAfter struct {
	n      int
	cancel context.CancelFunc
}

func (c *cancelAfter) OnStep(_ dynamo.Sample, i int) {
	if i+1 == c.n {
		c.cancel()
	}
}

// explodingStepper sends body a to infinity on its third step.
type explodingStepper struct{ calls int }

func (e *explodingStepper) Step(a, b *dynamo.Particle, g, dt float64) {
	e.calls++
	if e.calls == 3 {
		a.Position.X = math.Inf(1)
	}
}

var _ = Describe("Simulator", func() {
	var (
		a, b dynamo.Particle
		cfg  dynamo.Config
	)

	BeforeEach(func() {
		a = dynamo.NewParticle(0, 0, 0, 0, 1)
		b = dynamo.NewParticle(1, 0, 0, 1, 1)
		cfg = dynamo.DefaultConfig()
	})

	It("reproduces Simulate with the reference stepper", func() {
		s := sim.New(integrators.NewRK4())
		result, err := s.Run(context.Background(), a, b, cfg)

		Expect(err).NotTo(HaveOccurred())
		Expect(result.StepsTaken).To(Equal(1000))
		Expect(result.Trajectory).To(Equal(sim.Simulate(a, b, cfg.G, cfg.Dt, cfg.Steps)))
	})

	It("feeds metrics once per step and reports them", func() {
		metric := &countingMetric{}
		s := sim.New(integrators.NewRK4())
		s.AddMetric(metric)

		cfg.Steps = 25
		result, err := s.Run(context.Background(), a, b, cfg)

		Expect(err).NotTo(HaveOccurred())
		Expect(result.Metrics).To(HaveKeyWithValue("count", 25.0))
		Expect(metric.last).To(Equal(24))
	})

	It("returns an empty result for zero steps", func() {
		cfg.Steps = 0
		result, err := sim.New(integrators.NewRK4()).Run(context.Background(), a, b, cfg)

		Expect(err).NotTo(HaveOccurred())
		Expect(result.Trajectory).To(BeEmpty())
	})

	DescribeTable("rejects invalid input",
		func(mutate func(), target error) {
			mutate()
			_, err := sim.New(integrators.NewRK4()).Run(context.Background(), a, b, cfg)
			Expect(errors.Is(err, target)).To(BeTrue(), "got %v", err)
		},
		Entry("negative steps", func() { cfg.Steps = -1 }, dynamo.ErrParameterBounds),
		Entry("NaN g", func() { cfg.G = math.NaN() }, dynamo.ErrInvalidInput),
		Entry("Inf dt", func() { cfg.Dt = math.Inf(-1) }, dynamo.ErrInvalidInput),
		Entry("NaN position", func() { a.Position.X = math.NaN() }, dynamo.ErrInvalidInput),
		Entry("zero mass", func() { b.Mass = 0 }, dynamo.ErrParameterBounds),
	)

	It("skips particle validation when disabled", func() {
		b.Mass = -1
		cfg.ValidateInput = false
		cfg.Steps = 3

		result, err := sim.New(integrators.NewRK4()).Run(context.Background(), a, b, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Trajectory).To(HaveLen(3))
	})

	It("stops between steps when the context is canceled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		s := sim.New(integrators.NewRK4())
		s.AddObserver(&cancelAfter{n: 10, cancel: cancel})

		result, err := s.Run(ctx, a, b, cfg)
		Expect(err).To(MatchError(context.Canceled))
		Expect(result.Trajectory).To(HaveLen(10))
	})

	It("stops with a simulation error on a non-finite step", func() {
		result, err := sim.New(&explodingStepper{}).Run(context.Background(), a, b, cfg)

		var simErr *dynamo.SimulationError
		Expect(errors.As(err, &simErr)).To(BeTrue())
		Expect(simErr.Step).To(Equal(2))
		Expect(err).To(MatchError(dynamo.ErrInvalidState))
		Expect(result.Trajectory).To(HaveLen(2))
	})
})
