package physics

import "math"

// Physical constants (SI units)

const (
	// Mu0 is the vacuum magnetic permeability (H/m), CODATA 2018
	Mu0 = 1.25663706212e-6

	// BiotSavartFactor is μ₀/4π, the prefactor of every current element
	BiotSavartFactor = Mu0 / (4 * math.Pi)
)

// CircularLoopOnAxis returns the field magnitude (T) on the axis of a circular
// loop of radius r carrying current i, at height z above the loop plane.
//
//	B(z) = μ₀·I·R² / (2·(z² + R²)^1.5)
func CircularLoopOnAxis(i, r, z float64) float64 {
	return math.Abs(Mu0 * i * r * r / (2 * math.Pow(z*z+r*r, 1.5)))
}

// SquareLoopOnAxis returns the field magnitude (T) on the axis of a square
// loop of side l carrying current i, at height z above the loop plane.
//
//	B(z) = μ₀·I·L² / (2π·(z² + L²/4)·√(z² + L²/2))
func SquareLoopOnAxis(i, l, z float64) float64 {
	r2 := z*z + l*l/4
	return math.Abs(Mu0 * i * l * l / (2 * math.Pi * r2 * math.Sqrt(z*z+l*l/2)))
}

// OnAxis evaluates the closed-form solution selected by shape for each height
// in zs. size is the radius for "circle" and the side length for "square".
// ok is false for any other shape.
func OnAxis(shape string, i, size float64, zs []float64) (b []float64, ok bool) {
	var f func(i, size, z float64) float64
	switch shape {
	case "circle":
		f = CircularLoopOnAxis
	case "square":
		f = SquareLoopOnAxis
	default:
		return nil, false
	}

	b = make([]float64, len(zs))
	for k, z := range zs {
		b[k] = f(i, size, z)
	}
	return b, true
}
