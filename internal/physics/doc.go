// Package physics provides the force law used by the two-body steppers.
//
// The acceleration on a body is
//
//	delta = p_self - p_other
//	a     = delta * g * m_other / (|delta|^2 + Softening)
//
// Note the sign: delta points away from the other body, so for g > 0 the
// bodies push apart. The softening term keeps the law finite at zero
// separation, where the acceleration is exactly zero.
package physics
