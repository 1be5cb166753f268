package geometry

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

// Canonical shapes are generated in the x-y plane, centred at the origin,
// with unit normal +z. Orient places them afterwards.

// Direction returns the unit vector with azimuth theta and inclination phi.
func Direction(theta, phi float64) r3.Vec {
	return r3.Vec{
		X: math.Cos(theta) * math.Sin(phi),
		Y: math.Sin(theta) * math.Sin(phi),
		Z: math.Cos(phi),
	}
}

// CircularLoop returns count points evenly spaced in t over [0, 2π] on a
// circle of the given radius: x = r·sin t, y = r·cos t, z = 0.
// The first and last points coincide, so the loop has count-1 segments.
func CircularLoop(radius float64, count int) ([]r3.Vec, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("invalid circle radius: %g", radius)
	}
	if count < 2 {
		return nil, fmt.Errorf("circle needs at least 2 points, got %d", count)
	}

	t := make([]float64, count)
	floats.Span(t, 0, 2*math.Pi)

	pts := make([]r3.Vec, count)
	for i, ti := range t {
		pts[i] = r3.Vec{X: radius * math.Sin(ti), Y: radius * math.Cos(ti)}
	}
	return pts, nil
}

// squareSides are the azimuths of the four sides, walked counter-clockwise
// from the (+x, -y) corner.
var squareSides = [4]float64{math.Pi / 2, math.Pi, 3 * math.Pi / 2, 0}

// SquareLoop returns the 5 vertices of a closed square of the given side
// length, starting and ending at corner (side/2, -side/2, 0).
func SquareLoop(side float64) ([]r3.Vec, error) {
	if side <= 0 {
		return nil, fmt.Errorf("invalid square side length: %g", side)
	}

	var p Path
	p.AddElementFrom(r3.Vec{X: side / 2, Y: -side / 2}, squareSides[0], math.Pi/2, side)
	for _, theta := range squareSides[1:] {
		p.AddElement(theta, math.Pi/2, side)
	}
	return p.Points(), nil
}

// Path builds a polyline out of straight wire elements.
type Path struct {
	pts []r3.Vec
}

// AddElementFrom starts a new element at origin. Both origin and the end
// vertex are appended.
func (p *Path) AddElementFrom(origin r3.Vec, theta, phi, length float64) {
	p.pts = append(p.pts, origin, r3.Add(origin, r3.Scale(length, Direction(theta, phi))))
}

// AddElement continues from the last vertex of the path, or from the origin
// when the path is empty. Only the end vertex is appended, so consecutive
// elements share their joint.
func (p *Path) AddElement(theta, phi, length float64) {
	var origin r3.Vec
	if n := len(p.pts); n > 0 {
		origin = p.pts[n-1]
	}
	p.pts = append(p.pts, r3.Add(origin, r3.Scale(length, Direction(theta, phi))))
}

// Len returns the number of vertices.
func (p *Path) Len() int { return len(p.pts) }

// Points returns a copy of the vertices.
func (p *Path) Points() []r3.Vec {
	out := make([]r3.Vec, len(p.pts))
	copy(out, p.pts)
	return out
}

// Length returns the summed length of all segments.
func Length(points []r3.Vec) float64 {
	var l float64
	for i := 1; i < len(points); i++ {
		l += r3.Norm(r3.Sub(points[i], points[i-1]))
	}
	return l
}

// Centroid returns the mean of the distinct vertices of a closed loop. A
// trailing vertex equal to the first one is not counted twice.
func Centroid(points []r3.Vec) r3.Vec {
	n := len(points)
	if n == 0 {
		return r3.Vec{}
	}
	if n > 1 && r3.Norm(r3.Sub(points[n-1], points[0])) < 1e-9*(1+r3.Norm(points[0])) {
		n--
	}

	var c r3.Vec
	for _, p := range points[:n] {
		c = r3.Add(c, p)
	}
	return r3.Scale(1/float64(n), c)
}
