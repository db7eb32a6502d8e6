package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/san-kum/twobody/internal/dynamo"
	"github.com/san-kum/twobody/internal/viz"
)

const (
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"

	defaultTrail = 200
)

// LiveRenderer draws the most recent part of a run while it is being
// integrated. It is a simulator observer; frames are throttled to frameRate.
type LiveRenderer struct {
	out       io.Writer
	title     string
	total     int
	frameRate int
	width     int
	height    int
	trailLen  int

	now       func() time.Time
	sleep     func(time.Duration)
	lastFrame time.Time
	trail     dynamo.Trajectory
	frames    int
}

func NewLiveRenderer(out io.Writer, title string, total, frameRate int) *LiveRenderer {
	if frameRate <= 0 {
		frameRate = 30
	}
	return &LiveRenderer{
		out:       out,
		title:     title,
		total:     total,
		frameRate: frameRate,
		width:     60,
		height:    20,
		trailLen:  defaultTrail,
		now:       time.Now,
		trail:     make(dynamo.Trajectory, 0, defaultTrail),
	}
}

func (r *LiveRenderer) OnStep(s dynamo.Sample, step int) {
	r.trail = append(r.trail, s)
	if len(r.trail) > r.trailLen {
		r.trail = r.trail[1:]
	}

	interval := time.Second / time.Duration(r.frameRate)
	now := r.now()
	if now.Sub(r.lastFrame) < interval {
		return
	}
	r.lastFrame = now

	if r.frames == 0 {
		io.WriteString(r.out, hideCursor)
	}
	r.frames++
	io.WriteString(r.out, clearScreen+r.Frame(step))

	if r.sleep != nil {
		r.sleep(interval)
	}
}

// Paced makes every drawn frame hold for one frame interval, so a run plays
// back at frameRate steps per second instead of finishing instantly.
func (r *LiveRenderer) Paced() *LiveRenderer {
	r.sleep = time.Sleep
	return r
}

// Finish draws the last state unconditionally and restores the cursor.
func (r *LiveRenderer) Finish(step int) {
	io.WriteString(r.out, clearScreen+r.Frame(step)+showCursor)
}

// Frames reports how many throttled frames were written.
func (r *LiveRenderer) Frames() int { return r.frames }

func (r *LiveRenderer) Frame(step int) string {
	var b strings.Builder
	b.WriteString(viz.HeaderStyle.Render(fmt.Sprintf("%s  step %d/%d", r.title, step+1, r.total)))
	b.WriteString("\n")

	c := viz.NewCanvas(r.width, r.height)
	viz.Draw(c, r.trail, viz.BoundsOf(r.trail), len(r.trail))
	b.WriteString(viz.PanelStyle.Render(c.Render()))
	b.WriteString("\n")

	if n := len(r.trail); n > 0 {
		last := r.trail[n-1]
		b.WriteString(viz.Metric("a", last.A.String()))
		b.WriteString("  ")
		b.WriteString(viz.Metric("b", last.B.String()))
		b.WriteString("\n")
	}
	b.WriteString(viz.Legend())
	b.WriteString("\n")
	return b.String()
}
