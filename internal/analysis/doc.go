// Package analysis characterizes a two-body trajectory after the fact.
//
//   - [PowerSpectrum]: magnitude spectrum of a real signal
//   - [Spectrum]: spectrum of the body separation, with its dominant period
//   - [Sensitivity]: growth rate of a small perturbation of body A
//
// A positive sensitivity means nearby initial states drift apart:
//
//	lambda := analysis.Sensitivity(integrators.NewRK4(), a, b, 1, 0.1, 1000, 1e-8)
package analysis
