package geometry

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Orientation is the direction of a loop's unit normal in spherical
// coordinates: Theta is the azimuth about z, Phi the inclination from z.
// The zero value is a loop lying in the x-y plane.
type Orientation struct {
	Theta float64 `json:"theta"`
	Phi   float64 `json:"phi"`
}

// Normal returns the unit normal described by o.
func (o Orientation) Normal() r3.Vec {
	return Direction(o.Theta, o.Phi)
}

var zAxis = r3.Vec{Z: 1}

// Orient maps a canonical point sequence (x-y plane, centred at the origin)
// onto orientation o and translates it to centre. The input is not modified.
//
// The inclination is applied first as a single rotation of the whole point
// set, then the azimuth is added in spherical coordinates before the
// translation.
func Orient(points []r3.Vec, o Orientation, centre r3.Vec) []r3.Vec {
	out := rotate(inclinationMatrix(o.Phi), points)
	for i, p := range out {
		out[i] = r3.Add(rotateAzimuth(p, o.Theta), centre)
	}
	return out
}

// Unorient is the inverse of Orient: it removes the translation, the
// azimuth and finally the inclination.
func Unorient(points []r3.Vec, o Orientation, centre r3.Vec) []r3.Vec {
	out := make([]r3.Vec, len(points))
	for i, p := range points {
		out[i] = rotateAzimuth(r3.Sub(p, centre), -o.Theta)
	}
	return rotate(inclinationMatrix(-o.Phi), out)
}

// inclinationMatrix returns the Rodrigues rotation taking +z onto the
// direction with inclination phi and zero azimuth. It returns nil when no
// rotation is needed.
func inclinationMatrix(phi float64) *mat.Dense {
	target := Direction(0, phi)
	n := r3.Cross(zAxis, target)

	// Parallel vectors have no rotation axis.
	if r3.Norm(n) == 0 {
		if target.Z > 0 {
			return nil
		}
		// Antiparallel: half turn about x.
		return mat.NewDense(3, 3, []float64{
			1, 0, 0,
			0, -1, 0,
			0, 0, -1,
		})
	}

	u := r3.Unit(n)
	alpha := math.Acos(math.Max(-1, math.Min(1, r3.Dot(zAxis, target))))
	c, s := math.Cos(alpha), math.Sin(alpha)
	t := 1 - c

	return mat.NewDense(3, 3, []float64{
		c + u.X*u.X*t, u.X*u.Y*t - u.Z*s, u.X*u.Z*t + u.Y*s,
		u.Y*u.X*t + u.Z*s, c + u.Y*u.Y*t, u.Y*u.Z*t - u.X*s,
		u.Z*u.X*t - u.Y*s, u.Z*u.Y*t + u.X*s, c + u.Z*u.Z*t,
	})
}

// rotate applies r to every point as one 3×N matrix product. A nil r
// returns a copy of the input.
func rotate(r *mat.Dense, points []r3.Vec) []r3.Vec {
	out := make([]r3.Vec, len(points))
	if r == nil || len(points) == 0 {
		copy(out, points)
		return out
	}

	n := len(points)
	p := mat.NewDense(3, n, nil)
	for j, v := range points {
		p.Set(0, j, v.X)
		p.Set(1, j, v.Y)
		p.Set(2, j, v.Z)
	}

	var rp mat.Dense
	rp.Mul(r, p)
	for j := range out {
		out[j] = r3.Vec{X: rp.At(0, j), Y: rp.At(1, j), Z: rp.At(2, j)}
	}
	return out
}

// rotateAzimuth adds theta to the azimuthal angle of p about the origin.
func rotateAzimuth(p r3.Vec, theta float64) r3.Vec {
	if theta == 0 {
		return p
	}
	r, polar, azimuth := toSpherical(p)
	if r == 0 {
		return p
	}
	return fromSpherical(r, polar, azimuth+theta)
}

func toSpherical(p r3.Vec) (r, polar, azimuth float64) {
	r = r3.Norm(p)
	if r == 0 {
		return 0, 0, 0
	}
	polar = math.Atan2(math.Hypot(p.X, p.Y), p.Z)
	azimuth = math.Atan2(p.Y, p.X)
	return r, polar, azimuth
}

func fromSpherical(r, polar, azimuth float64) r3.Vec {
	return r3.Vec{
		X: r * math.Sin(polar) * math.Cos(azimuth),
		Y: r * math.Sin(polar) * math.Sin(azimuth),
		Z: r * math.Cos(polar),
	}
}
