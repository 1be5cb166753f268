package solver

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// remainderTolerance is the fraction of dl below which a leftover piece at
// the end of a segment is treated as rounding noise.
const remainderTolerance = 1e-9

// Discretize splits the straight segment a→b into pieces of length dl.
//
// The result starts at a and ends exactly at b. Interior points are spaced
// dl apart along the segment; a shorter final piece is kept when the length
// is not a multiple of dl. With dl <= 0, or a segment shorter than dl, the
// segment is returned whole.
func Discretize(a, b r3.Vec, dl float64) []r3.Vec {
	seg := r3.Sub(b, a)
	length := r3.Norm(seg)
	if dl <= 0 || length < dl {
		return []r3.Vec{a, b}
	}

	n := int(math.Floor(length / dl))
	step := r3.Scale(dl/length, seg)

	pts := make([]r3.Vec, 0, n+2)
	pts = append(pts, a)
	for i := 1; i <= n; i++ {
		pts = append(pts, r3.Add(pts[i-1], step))
	}

	// Snap the last step onto b when it lands there, otherwise keep the
	// partial piece up to b.
	if length-float64(n)*dl > remainderTolerance*dl {
		pts = append(pts, b)
	} else {
		pts[n] = b
	}
	return pts
}
