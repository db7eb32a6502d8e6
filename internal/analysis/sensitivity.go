package analysis

import (
	"math"

	"github.com/san-kum/twobody/internal/dynamo"
)

// Sensitivity estimates how fast a displacement of body A by perturbation
// along x grows: (1/t) * ln(|d(t)| / |d(0)|), with d the distance between
// the two copies of body A. Both runs share stepper and are advanced in
// lockstep.
func Sensitivity(stepper dynamo.Stepper, a, b dynamo.Particle, g, dt float64, steps int, perturbation float64) float64 {
	if steps <= 0 || dt == 0 || perturbation == 0 {
		return 0
	}

	ap, bp := a, b
	ap.Position.X += perturbation
	d0 := math.Abs(perturbation)

	for i := 0; i < steps; i++ {
		stepper.Step(&a, &b, g, dt)
		stepper.Step(&ap, &bp, g, dt)
	}

	d := ap.Position.Sub(a.Position).Norm()
	if d == 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		return 0
	}
	return math.Log(d/d0) / (float64(steps) * dt)
}
