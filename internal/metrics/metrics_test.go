package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/twobody/internal/dynamo"
)

func samples() []dynamo.Sample {
	return []dynamo.Sample{
		{A: dynamo.Vec2{X: 0, Y: 0}, B: dynamo.Vec2{X: 3, Y: 0}},
		{A: dynamo.Vec2{X: 0, Y: 1}, B: dynamo.Vec2{X: 3, Y: 5}},
		{A: dynamo.Vec2{X: 0, Y: 2}, B: dynamo.Vec2{X: 1, Y: 2}},
	}
}

func observeAll(m dynamo.Metric) {
	for i, s := range samples() {
		m.Observe(s, i)
	}
}

func TestSeparation(t *testing.T) {
	minSep := NewMinSeparation()
	maxSep := NewMaxSeparation()
	observeAll(minSep)
	observeAll(maxSep)

	assert.Equal(t, "min_separation", minSep.Name())
	assert.InDelta(t, 1.0, minSep.Value(), 1e-12)
	assert.Equal(t, "max_separation", maxSep.Name())
	assert.InDelta(t, 5.0, maxSep.Value(), 1e-12)

	minSep.Reset()
	assert.Zero(t, minSep.Value())
	minSep.Observe(samples()[1], 0)
	assert.InDelta(t, 5.0, minSep.Value(), 1e-12, "first sample after reset sets the value")
}

func TestPathLength(t *testing.T) {
	a := NewPathLength(dynamo.BodyA, dynamo.Vec2{X: 0, Y: -1})
	b := NewPathLength(dynamo.BodyB, dynamo.Vec2{X: 3, Y: 0})
	observeAll(a)
	observeAll(b)

	assert.Equal(t, "path_length_a", a.Name())
	assert.InDelta(t, 3.0, a.Value(), 1e-12)
	assert.Equal(t, "path_length_b", b.Name())
	assert.InDelta(t, 5.0+sqrt13(), b.Value(), 1e-12)

	a.Reset()
	assert.Zero(t, a.Value())
	a.Observe(samples()[0], 0)
	assert.InDelta(t, 1.0, a.Value(), 1e-12)
}

func sqrt13() float64 {
	return dynamo.Vec2{X: 2, Y: 3}.Norm()
}

func TestCenterOfMassDrift(t *testing.T) {
	a := dynamo.NewParticle(0, 0, 0, 0, 1)
	b := dynamo.NewParticle(3, 0, 0, 0, 2)
	m := NewCenterOfMassDrift(a, b)

	m.Observe(dynamo.Sample{A: dynamo.Vec2{X: 0, Y: 0}, B: dynamo.Vec2{X: 3, Y: 0}}, 0)
	assert.Zero(t, m.Value())

	m.Observe(dynamo.Sample{A: dynamo.Vec2{X: 0, Y: 3}, B: dynamo.Vec2{X: 3, Y: 3}}, 1)
	assert.InDelta(t, 3.0, m.Value(), 1e-12)

	m.Observe(dynamo.Sample{A: dynamo.Vec2{X: 0, Y: 1}, B: dynamo.Vec2{X: 3, Y: 1}}, 2)
	assert.InDelta(t, 3.0, m.Value(), 1e-12, "drift keeps the maximum")

	m.Reset()
	assert.Zero(t, m.Value())
}

func TestDefaults(t *testing.T) {
	a := dynamo.NewParticle(0, 0, 0, 0, 1)
	b := dynamo.NewParticle(1, 0, 0, 1, 1)

	ms := Defaults(a, b)
	require.Len(t, ms, 5)

	names := make([]string, 0, len(ms))
	for _, m := range ms {
		names = append(names, m.Name())
	}
	assert.ElementsMatch(t, []string{"min_separation", "max_separation", "path_length_a", "path_length_b", "com_drift"}, names)
}
