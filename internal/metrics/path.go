package metrics

import "github.com/san-kum/twobody/internal/dynamo"

// PathLength sums the distance one body travels between samples. The
// start position is needed so the first step is counted.
type PathLength struct {
	name   string
	body   dynamo.Body
	start  dynamo.Vec2
	prev   dynamo.Vec2
	length float64
}

func NewPathLength(body dynamo.Body, start dynamo.Vec2) *PathLength {
	return &PathLength{
		name:  "path_length_" + body.String(),
		body:  body,
		start: start,
		prev:  start,
	}
}

func (p *PathLength) Name() string { return p.name }

func (p *PathLength) Observe(x dynamo.Sample, _ int) {
	pos := x.Of(p.body)
	p.length += pos.Sub(p.prev).Norm()
	p.prev = pos
}

func (p *PathLength) Value() float64 {
	return p.length
}

func (p *PathLength) Reset() {
	p.prev = p.start
	p.length = 0
}
