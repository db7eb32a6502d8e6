// Package dynamo provides the core primitives for two-body simulation.
//
// The package defines the value types shared by every other package:
//
//   - [Vec2]: 2D real-valued vector
//   - [Particle]: point mass with position, velocity and mass
//   - [Sample]: positions of both bodies after one step
//   - [Trajectory]: ordered, step-indexed sequence of samples
//   - [Stepper]: advances a pair of particles by one step
//
// # Example
//
//	a := dynamo.NewParticle(0, 0, 0, 0, 1)
//	b := dynamo.NewParticle(1, 0, 0, 1, 1)
//	tr := sim.Simulate(a, b, 1.0, 0.1, 1000)
//	xs, ys := tr.Series(dynamo.BodyA)
//
// # Thread Safety
//
// Particles are plain values. A Stepper mutates only the two particles it
// is handed, so separate runs never share state.
package dynamo
