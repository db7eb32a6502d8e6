package integrators_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/twobody/internal/dynamo"
	"github.com/san-kum/twobody/internal/integrators"
	"github.com/san-kum/twobody/internal/physics"
)

var _ = Describe("CoupledRK4", func() {
	var integ *integrators.CoupledRK4

	BeforeEach(func() {
		integ = integrators.NewCoupledRK4()
	})

	It("moves bodies in straight lines without gravity", func() {
		a := dynamo.NewParticle(0, 0, 0.5, 0, 1)
		b := dynamo.NewParticle(1, 0, 0, 1, 1)

		for i := 0; i < 100; i++ {
			integ.Step(&a, &b, 0, 0.1)
		}

		Expect(a.Position.X).To(BeNumerically("~", 5.0, 1e-9))
		Expect(a.Position.Y).To(BeZero())
		Expect(b.Position.X).To(BeNumerically("~", 1.0, 1e-12))
		Expect(b.Position.Y).To(BeNumerically("~", 10.0, 1e-9))
		Expect(b.Velocity).To(Equal(dynamo.Vec2{X: 0, Y: 1}))
	})

	It("moves the center of mass at constant velocity", func() {
		a := dynamo.NewParticle(0, 0, 0, 0, 1)
		b := dynamo.NewParticle(1, 0, 0, 1, 1)
		dt := 0.1

		for i := 1; i <= 200; i++ {
			integ.Step(&a, &b, 1.0, dt)
			com := physics.CenterOfMass(dynamo.Sample{A: a.Position, B: b.Position}, a.Mass, b.Mass)
			Expect(com.X).To(BeNumerically("~", 0.5, 1e-9))
			Expect(com.Y).To(BeNumerically("~", 0.5*dt*float64(i), 1e-9))
		}
	})

	It("diverges from the reference stepper once velocity matters", func() {
		a1 := dynamo.NewParticle(0, 0, 0, 0, 1)
		b1 := dynamo.NewParticle(1, 0, 0, 1, 1)
		a2, b2 := a1, b1

		integ.Step(&a1, &b1, 1.0, 0.1)
		integrators.NewRK4().Step(&a2, &b2, 1.0, 0.1)

		Expect(b1.Position.Y).To(BeNumerically(">", 0))
		Expect(b2.Position.Y).To(BeZero())
	})

	It("leaves coincident resting bodies in place", func() {
		a := dynamo.NewParticle(1, 1, 0, 0, 1)
		b := dynamo.NewParticle(1, 1, 0, 0, 1)

		integ.Step(&a, &b, 1.0, 0.1)

		Expect(a.Position).To(Equal(dynamo.Vec2{X: 1, Y: 1}))
		Expect(b.Position).To(Equal(dynamo.Vec2{X: 1, Y: 1}))
	})
})
