package metrics

import (
	"math"

	"github.com/san-kum/twobody/internal/dynamo"
	"github.com/san-kum/twobody/internal/physics"
)

// Separation tracks the extreme distance between the two bodies.
type Separation struct {
	name    string
	max     bool
	value   float64
	samples int
}

func NewMinSeparation() *Separation {
	return &Separation{name: "min_separation"}
}

func NewMaxSeparation() *Separation {
	return &Separation{name: "max_separation", max: true}
}

func (s *Separation) Name() string { return s.name }

func (s *Separation) Observe(x dynamo.Sample, _ int) {
	d := physics.Separation(x)
	switch {
	case s.samples == 0:
		s.value = d
	case s.max:
		s.value = math.Max(s.value, d)
	default:
		s.value = math.Min(s.value, d)
	}
	s.samples++
}

func (s *Separation) Value() float64 {
	return s.value
}

func (s *Separation) Reset() {
	s.value = 0
	s.samples = 0
}
