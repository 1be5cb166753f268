package solver

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

// Points zips three coordinate arrays into observation points.
func Points(xs, ys, zs []float64) ([]r3.Vec, error) {
	if len(xs) != len(ys) || len(xs) != len(zs) {
		return nil, fmt.Errorf("coordinate arrays differ in length: %d, %d, %d", len(xs), len(ys), len(zs))
	}
	pts := make([]r3.Vec, len(xs))
	for i := range pts {
		pts[i] = r3.Vec{X: xs[i], Y: ys[i], Z: zs[i]}
	}
	return pts, nil
}

// Line returns n points evenly spaced from start to end inclusive.
func Line(start, end r3.Vec, n int) ([]r3.Vec, error) {
	switch {
	case n < 1:
		return nil, fmt.Errorf("invalid number of points: %d", n)
	case n == 1:
		return []r3.Vec{start}, nil
	}

	xs := floats.Span(make([]float64, n), start.X, end.X)
	ys := floats.Span(make([]float64, n), start.Y, end.Y)
	zs := floats.Span(make([]float64, n), start.Z, end.Z)
	return Points(xs, ys, zs)
}

// Grid is a regular set of points in a plane of constant z.
type Grid struct {
	Xs []float64
	Ys []float64
	Z  float64
}

// NewGridXY returns an n×n grid spanning xlim and ylim at height z.
func NewGridXY(xlim, ylim [2]float64, z float64, n int) (*Grid, error) {
	if n < 2 {
		return nil, fmt.Errorf("grid needs at least 2 points per axis, got %d", n)
	}
	return &Grid{
		Xs: floats.Span(make([]float64, n), xlim[0], xlim[1]),
		Ys: floats.Span(make([]float64, n), ylim[0], ylim[1]),
		Z:  z,
	}, nil
}

// Points returns the grid points with x varying slowest.
func (g *Grid) Points() []r3.Vec {
	pts := make([]r3.Vec, 0, len(g.Xs)*len(g.Ys))
	for _, x := range g.Xs {
		for _, y := range g.Ys {
			pts = append(pts, r3.Vec{X: x, Y: y, Z: g.Z})
		}
	}
	return pts
}

// Index returns the position of grid node (i, j) in Points.
func (g *Grid) Index(i, j int) int {
	return i*len(g.Ys) + j
}
