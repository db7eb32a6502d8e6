package sim

import (
	"github.com/san-kum/twobody/internal/dynamo"
	"github.com/san-kum/twobody/internal/integrators"
)

// Simulate advances a and b with the reference stepper numSteps times and
// records both positions after every step. The particles are copies; the
// caller's values are not touched. A non-positive numSteps yields an empty
// trajectory.
func Simulate(a, b dynamo.Particle, g, dt float64, numSteps int) dynamo.Trajectory {
	if numSteps < 0 {
		numSteps = 0
	}

	integ := integrators.NewRK4()
	positions := make(dynamo.Trajectory, 0, numSteps)
	for i := 0; i < numSteps; i++ {
		integ.Step(&a, &b, g, dt)
		positions = append(positions, dynamo.Sample{A: a.Position, B: b.Position})
	}
	return positions
}
