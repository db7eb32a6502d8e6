package viz

import (
	"math"

	"github.com/san-kum/twobody/internal/dynamo"
)

type Bounds struct {
	MinX, MaxX, MinY, MaxY float64
}

// BoundsOf returns the box around both trajectories, padded by 10% on each
// side. A flat axis gets a unit range.
func BoundsOf(tr dynamo.Trajectory) Bounds {
	if len(tr) == 0 {
		return Bounds{MinX: -1, MaxX: 1, MinY: -1, MaxY: 1}
	}

	b := Bounds{
		MinX: math.Inf(1), MaxX: math.Inf(-1),
		MinY: math.Inf(1), MaxY: math.Inf(-1),
	}
	for _, s := range tr {
		for _, p := range [2]dynamo.Vec2{s.A, s.B} {
			b.MinX = math.Min(b.MinX, p.X)
			b.MaxX = math.Max(b.MaxX, p.X)
			b.MinY = math.Min(b.MinY, p.Y)
			b.MaxY = math.Max(b.MaxY, p.Y)
		}
	}

	rangeX := b.MaxX - b.MinX
	rangeY := b.MaxY - b.MinY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	b.MinX -= rangeX * 0.1
	b.MaxX += rangeX * 0.1
	b.MinY -= rangeY * 0.1
	b.MaxY += rangeY * 0.1
	return b
}

// Project maps p to sub-pixel coordinates on a canvas of the given size in
// cells. y grows downwards on screen.
func (b Bounds) Project(p dynamo.Vec2, width, height int) (int, int) {
	w := float64(width*2 - 1)
	h := float64(height*4 - 1)
	x := (p.X - b.MinX) / (b.MaxX - b.MinX) * w
	y := h - (p.Y-b.MinY)/(b.MaxY-b.MinY)*h
	return int(math.Round(x)), int(math.Round(y))
}

// Draw strokes each body's path from sample 0 to sample upto (exclusive).
func Draw(c *Canvas, tr dynamo.Trajectory, b Bounds, upto int) {
	if upto > len(tr) {
		upto = len(tr)
	}
	for _, body := range []dynamo.Body{dynamo.BodyA, dynamo.BodyB} {
		layer := LayerA
		if body == dynamo.BodyB {
			layer = LayerB
		}
		for i := 0; i < upto; i++ {
			x1, y1 := b.Project(tr[i].Of(body), c.Width, c.Height)
			if i == 0 {
				c.Set(x1, y1, layer)
				continue
			}
			x0, y0 := b.Project(tr[i-1].Of(body), c.Width, c.Height)
			c.DrawLine(x0, y0, x1, y1, layer)
		}
	}
}

// Plot draws both trajectories as two coloured line series.
func Plot(tr dynamo.Trajectory, width, height int) string {
	if len(tr) == 0 {
		return ""
	}
	c := NewCanvas(width, height)
	Draw(c, tr, BoundsOf(tr), len(tr))
	return c.Render()
}
