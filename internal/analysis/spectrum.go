package analysis

import (
	"github.com/san-kum/twobody/internal/dynamo"
	"github.com/san-kum/twobody/internal/physics"
)

type SpectrumResult struct {
	Power []float64
	// Bin is the index of the strongest non-constant component, 0 if none.
	Bin int
	// Period in time units, 0 when the signal has no oscillation.
	Period float64
}

func SeparationSeries(tr dynamo.Trajectory) []float64 {
	out := make([]float64, len(tr))
	for i, s := range tr {
		out[i] = physics.Separation(s)
	}
	return out
}

// Spectrum analyzes the separation signal of tr sampled every dt. The mean
// is removed first so the constant term does not mask the oscillation.
func Spectrum(tr dynamo.Trajectory, dt float64) SpectrumResult {
	data := SeparationSeries(tr)
	if len(data) < 2 {
		return SpectrumResult{}
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))
	for i := range data {
		data[i] -= mean
	}

	padded := Pad(data)
	ps := PowerSpectrum(padded)

	res := SpectrumResult{Power: ps}
	maxPower := 0.0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			res.Bin = i
		}
	}
	if res.Bin > 0 && dt > 0 {
		res.Period = float64(len(padded)) * dt / float64(res.Bin)
	}
	return res
}
