// Package viz renders two-body trajectories in the terminal.
//
// Drawing happens on a braille [Canvas] where each character cell holds a
// 2x4 grid of dots. Every dot remembers which body drew it so that [Plot]
// can colour body A and body B differently:
//
//	out := viz.Plot(tr, 70, 20)
//	fmt.Println(out)
//
// [Replay] is a bubbletea model that steps through a stored trajectory.
package viz
