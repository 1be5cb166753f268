package solver

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/floats"
)

// Vec3C is a complex 3-vector field sample.
type Vec3C struct {
	X, Y, Z complex128
}

// Add returns the component-wise sum of v and o.
func (v Vec3C) Add(o Vec3C) Vec3C {
	return Vec3C{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Magnitude returns |sqrt(x² + y² + z²)| evaluated in complex arithmetic.
// For a field of real samples this is the Euclidean norm.
func (v Vec3C) Magnitude() float64 {
	return cmplx.Abs(cmplx.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z))
}

// IsFinite reports whether no component is NaN or infinite.
func (v Vec3C) IsFinite() bool {
	for _, c := range [3]complex128{v.X, v.Y, v.Z} {
		if cmplx.IsNaN(c) || cmplx.IsInf(c) {
			return false
		}
	}
	return true
}

// Field holds one sample per observation point, in point order.
type Field []Vec3C

// NonFinite returns the indices of samples containing NaN or Inf, which
// happens when an observation point sits on a wire element.
func (f Field) NonFinite() []int {
	var idx []int
	for i, v := range f {
		if !v.IsFinite() {
			idx = append(idx, i)
		}
	}
	return idx
}

// Superpose adds fields sampled at the same points.
func Superpose(fields ...Field) (Field, error) {
	if len(fields) == 0 {
		return nil, nil
	}
	n := len(fields[0])
	out := make(Field, n)
	for k, f := range fields {
		if len(f) != n {
			return nil, fmt.Errorf("field %d has %d samples, expected %d", k, len(f), n)
		}
		for i := range out {
			out[i] = out[i].Add(f[i])
		}
	}
	return out, nil
}

// BAbs returns the magnitude of every sample.
func BAbs(f Field) []float64 {
	out := make([]float64, len(f))
	for i, v := range f {
		out[i] = v.Magnitude()
	}
	return out
}

// RMSE returns the root mean square difference between two equally long
// series.
func RMSE(got, want []float64) (float64, error) {
	if len(got) != len(want) {
		return 0, fmt.Errorf("series length mismatch: %d vs %d", len(got), len(want))
	}
	if len(got) == 0 {
		return 0, nil
	}
	return floats.Distance(got, want, 2) / math.Sqrt(float64(len(got))), nil
}
