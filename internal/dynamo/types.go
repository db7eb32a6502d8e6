package dynamo

import (
	"fmt"
	"math"
)

type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Norm returns the Euclidean length of v.
func (v Vec2) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

func (v Vec2) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y)
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Particle is a point mass. Velocity is carried for steppers that
// integrate it; the reference stepper leaves it untouched.
type Particle struct {
	Position Vec2    `json:"position" yaml:"position"`
	Velocity Vec2    `json:"velocity" yaml:"velocity"`
	Mass     float64 `json:"mass" yaml:"mass"`
}

func NewParticle(x, y, vx, vy, mass float64) Particle {
	return Particle{
		Position: Vec2{x, y},
		Velocity: Vec2{vx, vy},
		Mass:     mass,
	}
}

// Validate reports non-finite fields and non-positive mass.
func (p Particle) Validate() error {
	if !p.Position.IsFinite() || !p.Velocity.IsFinite() || !isFinite(p.Mass) {
		return ErrInvalidInput
	}
	if p.Mass <= 0 {
		return fmt.Errorf("mass must be positive, got %g: %w", p.Mass, ErrParameterBounds)
	}
	return nil
}

type Body int

const (
	BodyA Body = iota
	BodyB
)

func (b Body) String() string {
	if b == BodyA {
		return "a"
	}
	return "b"
}

// Sample holds the positions of both bodies after one step.
type Sample struct {
	A Vec2 `json:"a"`
	B Vec2 `json:"b"`
}

func (s Sample) Of(b Body) Vec2 {
	if b == BodyA {
		return s.A
	}
	return s.B
}

func (s Sample) IsFinite() bool {
	return s.A.IsFinite() && s.B.IsFinite()
}

// Trajectory is indexed by 0-based step number.
type Trajectory []Sample

// Positions returns one body's positions in step order.
func (t Trajectory) Positions(b Body) []Vec2 {
	out := make([]Vec2, len(t))
	for i, s := range t {
		out[i] = s.Of(b)
	}
	return out
}

// Series returns parallel x and y coordinate slices for one body, the
// shape line plotters consume.
func (t Trajectory) Series(b Body) (xs, ys []float64) {
	xs = make([]float64, len(t))
	ys = make([]float64, len(t))
	for i, s := range t {
		p := s.Of(b)
		xs[i] = p.X
		ys[i] = p.Y
	}
	return xs, ys
}

// Stepper advances both particles by one step of size dt in place.
type Stepper interface {
	Step(a, b *Particle, g, dt float64)
}

type Metric interface {
	Name() string
	Observe(s Sample, step int)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(s Sample, step int)
}

type Config struct {
	G             float64
	Dt            float64
	Steps         int
	ValidateInput bool
}

func DefaultConfig() Config {
	return Config{
		G:             1.0,
		Dt:            0.1,
		Steps:         1000,
		ValidateInput: true,
	}
}

type Result struct {
	Trajectory Trajectory
	Metrics    map[string]float64
	StepsTaken int
}
