package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/twobody/internal/dynamo"
	"github.com/san-kum/twobody/internal/viz"
)

const (
	ColorA = "#ff4444"
	ColorB = "#4488ff"
)

// TrajectorySVG draws both bodies' paths as two coloured polylines sharing
// one coordinate frame.
func TrajectorySVG(tr dynamo.Trajectory, width, height int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	if len(tr) > 0 {
		b := viz.BoundsOf(tr)
		writePath(&sb, tr.Positions(dynamo.BodyA), b, width, height, ColorA)
		writePath(&sb, tr.Positions(dynamo.BodyB), b, width, height, ColorB)
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

func writePath(sb *strings.Builder, points []dynamo.Vec2, b viz.Bounds, width, height int, stroke string) {
	rangeX := b.MaxX - b.MinX
	rangeY := b.MaxY - b.MinY

	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, stroke))
	for i, p := range points {
		x := (p.X - b.MinX) / rangeX * float64(width)
		y := float64(height) - (p.Y-b.MinY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
	sb.WriteString("\"/>\n")
}

func WriteSVG(w io.Writer, tr dynamo.Trajectory, width, height int) error {
	_, err := io.WriteString(w, TrajectorySVG(tr, width, height))
	return err
}
