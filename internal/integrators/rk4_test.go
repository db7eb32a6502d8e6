package integrators_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/twobody/internal/dynamo"
	"github.com/san-kum/twobody/internal/integrators"
)

var _ = Describe("RK4", func() {
	var (
		a, b  dynamo.Particle
		integ *integrators.RK4
	)

	BeforeEach(func() {
		a = dynamo.NewParticle(0, 0, 0, 0, 1)
		b = dynamo.NewParticle(1, 0, 0, 1, 1)
		integ = integrators.NewRK4()
	})

	It("matches the hand-derived first step", func() {
		integ.Step(&a, &b, 1.0, 0.1)

		Expect(a.Position.X).To(BeNumerically("~", -0.05258541666666667, 1e-15))
		Expect(a.Position.Y).To(BeZero())
		Expect(b.Position.X).To(BeNumerically("~", 1.0525854166666666, 1e-15))
		Expect(b.Position.Y).To(BeZero())
	})

	It("computes the stage values from pre-step positions", func() {
		k, l := integ.Stages(a, b, 1.0, 0.1)

		Expect(k[0].X).To(BeNumerically("~", -0.05, 1e-15))
		Expect(k[1].X).To(BeNumerically("~", -0.0525, 1e-15))
		Expect(k[2].X).To(BeNumerically("~", -0.052625, 1e-15))
		Expect(k[3].X).To(BeNumerically("~", -0.0552625, 1e-15))
		Expect(l[0].X).To(BeNumerically("~", 0.05, 1e-15))
	})

	It("yields antiparallel stages for equal masses placed symmetrically", func() {
		a = dynamo.NewParticle(-0.75, 0.3, 0, 0, 2)
		b = dynamo.NewParticle(0.75, -0.3, 0, 0, 2)

		k, l := integ.Stages(a, b, 1.5, 0.05)
		for i := range k {
			Expect(k[i]).To(Equal(l[i].Scale(-1)), "stage %d", i+1)
		}
	})

	It("does not move particles when computing stages", func() {
		before := a
		integ.Stages(a, b, 1.0, 0.1)
		Expect(a).To(Equal(before))
	})

	It("never advances velocity or changes mass", func() {
		for i := 0; i < 10; i++ {
			integ.Step(&a, &b, 1.0, 0.1)
		}

		Expect(a.Velocity).To(Equal(dynamo.Vec2{}))
		Expect(b.Velocity).To(Equal(dynamo.Vec2{X: 0, Y: 1}))
		Expect(a.Mass).To(Equal(1.0))
		Expect(b.Mass).To(Equal(1.0))
	})

	DescribeTable("leaves positions unchanged",
		func(g, dt float64) {
			integ.Step(&a, &b, g, dt)
			Expect(a.Position).To(Equal(dynamo.Vec2{X: 0, Y: 0}))
			Expect(b.Position).To(Equal(dynamo.Vec2{X: 1, Y: 0}))
		},
		Entry("when dt is zero", 1.0, 0.0),
		Entry("when g is zero", 0.0, 0.1),
	)

	It("keeps coincident bodies in place", func() {
		a = dynamo.NewParticle(2, 2, 0, 0, 1)
		b = dynamo.NewParticle(2, 2, 0, 0, 5)

		integ.Step(&a, &b, 1.0, 0.1)

		Expect(a.Position).To(Equal(dynamo.Vec2{X: 2, Y: 2}))
		Expect(b.Position).To(Equal(dynamo.Vec2{X: 2, Y: 2}))
	})

	It("pushes bodies apart for positive g", func() {
		integ.Step(&a, &b, 1.0, 0.1)
		Expect(b.Position.X - a.Position.X).To(BeNumerically(">", 1.0))
	})

	It("agrees with Advance", func() {
		a2, b2 := a, b
		integ.Step(&a, &b, 1.0, 0.1)
		integrators.Advance(&a2, &b2, 1.0, 0.1)

		Expect(a2).To(Equal(a))
		Expect(b2).To(Equal(b))
	})
})
