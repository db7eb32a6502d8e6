package physics

import "github.com/san-kum/twobody/internal/dynamo"

// Softening is added to the squared separation.
const Softening = 1.0

// SoftenedAcceleration returns the acceleration of a body at self due to a
// body of mass otherMass at other.
func SoftenedAcceleration(self, other dynamo.Vec2, otherMass, g float64) dynamo.Vec2 {
	delta := self.Sub(other)
	r := delta.Norm()
	d := r*r + Softening
	// Evaluated left to right per component so results are reproducible
	// bit for bit.
	return dynamo.Vec2{
		X: delta.X * g * otherMass / d,
		Y: delta.Y * g * otherMass / d,
	}
}

// Acceleration is SoftenedAcceleration for two particles.
func Acceleration(self, other dynamo.Particle, g float64) dynamo.Vec2 {
	return SoftenedAcceleration(self.Position, other.Position, other.Mass, g)
}

func Separation(s dynamo.Sample) float64 {
	return s.A.Sub(s.B).Norm()
}

// CenterOfMass returns the mass-weighted mean of the two positions.
func CenterOfMass(s dynamo.Sample, massA, massB float64) dynamo.Vec2 {
	total := massA + massB
	if total == 0 {
		return s.A.Add(s.B).Scale(0.5)
	}
	return s.A.Scale(massA).Add(s.B.Scale(massB)).Scale(1 / total)
}
