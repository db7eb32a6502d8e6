package metrics

import (
	"math"

	"github.com/san-kum/twobody/internal/dynamo"
	"github.com/san-kum/twobody/internal/physics"
)

// CenterOfMassDrift is the largest distance the mass-weighted center moves
// away from where it started.
type CenterOfMassDrift struct {
	name         string
	massA, massB float64
	origin       dynamo.Vec2
	maxDrift     float64
}

func NewCenterOfMassDrift(a, b dynamo.Particle) *CenterOfMassDrift {
	initial := dynamo.Sample{A: a.Position, B: b.Position}
	return &CenterOfMassDrift{
		name:   "com_drift",
		massA:  a.Mass,
		massB:  b.Mass,
		origin: physics.CenterOfMass(initial, a.Mass, b.Mass),
	}
}

func (c *CenterOfMassDrift) Name() string { return c.name }

func (c *CenterOfMassDrift) Observe(x dynamo.Sample, _ int) {
	com := physics.CenterOfMass(x, c.massA, c.massB)
	c.maxDrift = math.Max(c.maxDrift, com.Sub(c.origin).Norm())
}

func (c *CenterOfMassDrift) Value() float64 {
	return c.maxDrift
}

func (c *CenterOfMassDrift) Reset() {
	c.maxDrift = 0
}

// Defaults returns the metrics reported for every run.
func Defaults(a, b dynamo.Particle) []dynamo.Metric {
	return []dynamo.Metric{
		NewMinSeparation(),
		NewMaxSeparation(),
		NewPathLength(dynamo.BodyA, a.Position),
		NewPathLength(dynamo.BodyB, b.Position),
		NewCenterOfMassDrift(a, b),
	}
}
