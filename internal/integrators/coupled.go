package integrators

import (
	"github.com/san-kum/twobody/internal/dynamo"
	"github.com/san-kum/twobody/internal/physics"
)

// pair is the coupled state of both bodies.
type pair struct {
	pa, va, pb, vb dynamo.Vec2
}

// CoupledRK4 integrates positions and velocities of both bodies together.
// Each stage re-evaluates both accelerations at the stage-advanced
// positions, so velocity affects the trajectory.
type CoupledRK4 struct {
	k [4]pair
}

func NewCoupledRK4() *CoupledRK4 {
	return &CoupledRK4{}
}

func (c *CoupledRK4) Name() string { return "coupled" }

func (c *CoupledRK4) derive(x pair, ma, mb, g float64) pair {
	return pair{
		pa: x.va,
		va: physics.SoftenedAcceleration(x.pa, x.pb, mb, g),
		pb: x.vb,
		vb: physics.SoftenedAcceleration(x.pb, x.pa, ma, g),
	}
}

func (x pair) plus(d pair, h float64) pair {
	return pair{
		pa: x.pa.Add(d.pa.Scale(h)),
		va: x.va.Add(d.va.Scale(h)),
		pb: x.pb.Add(d.pb.Scale(h)),
		vb: x.vb.Add(d.vb.Scale(h)),
	}
}

func (c *CoupledRK4) Step(a, b *dynamo.Particle, g, dt float64) {
	x := pair{pa: a.Position, va: a.Velocity, pb: b.Position, vb: b.Velocity}

	c.k[0] = c.derive(x, a.Mass, b.Mass, g)
	c.k[1] = c.derive(x.plus(c.k[0], dt*0.5), a.Mass, b.Mass, g)
	c.k[2] = c.derive(x.plus(c.k[1], dt*0.5), a.Mass, b.Mass, g)
	c.k[3] = c.derive(x.plus(c.k[2], dt), a.Mass, b.Mass, g)

	dt6 := dt / 6.0
	next := x.
		plus(c.k[0], dt6).
		plus(c.k[1], 2*dt6).
		plus(c.k[2], 2*dt6).
		plus(c.k[3], dt6)

	a.Position, a.Velocity = next.pa, next.va
	b.Position, b.Velocity = next.pb, next.vb
}
