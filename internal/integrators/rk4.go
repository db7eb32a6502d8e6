package integrators

import (
	"github.com/san-kum/twobody/internal/dynamo"
	"github.com/san-kum/twobody/internal/physics"
)

// RK4 is the reference two-body stepper. Every stage for both bodies is
// evaluated against the pre-step positions; only positions move.
type RK4 struct {
	k, l [4]dynamo.Vec2
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Name() string { return "rk4" }

// Stages returns the stage values for body a (k) and body b (l) without
// moving either particle.
func (r *RK4) Stages(a, b dynamo.Particle, g, dt float64) (k, l [4]dynamo.Vec2) {
	accA := physics.Acceleration(a, b, g)
	accB := physics.Acceleration(b, a, g)

	k[0] = accA.Scale(dt)
	l[0] = accB.Scale(dt)
	k[1] = accA.Add(k[0].Scale(0.5)).Scale(dt)
	l[1] = accB.Add(l[0].Scale(0.5)).Scale(dt)
	k[2] = accA.Add(k[1].Scale(0.5)).Scale(dt)
	l[2] = accB.Add(l[1].Scale(0.5)).Scale(dt)
	k[3] = accA.Add(k[2]).Scale(dt)
	l[3] = accB.Add(l[2]).Scale(dt)

	return k, l
}

func (r *RK4) Step(a, b *dynamo.Particle, g, dt float64) {
	r.k, r.l = r.Stages(*a, *b, g, dt)

	a.Position = a.Position.Add(combine(r.k))
	b.Position = b.Position.Add(combine(r.l))
}

// Advance runs one reference step on a and b.
func Advance(a, b *dynamo.Particle, g, dt float64) {
	var r RK4
	r.Step(a, b, g, dt)
}

// combine returns (s0 + 2*s1 + 2*s2 + s3) / 6.
func combine(s [4]dynamo.Vec2) dynamo.Vec2 {
	sum := s[0].Add(s[1].Scale(2)).Add(s[2].Scale(2)).Add(s[3])
	return dynamo.Vec2{X: sum.X / 6, Y: sum.Y / 6}
}
