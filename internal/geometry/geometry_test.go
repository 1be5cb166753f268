package geometry

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

var approx = cmpopts.EquateApprox(0, 1e-12)

func TestCircularLoop(t *testing.T) {
	pts, err := CircularLoop(2, 100)
	require.NoError(t, err)
	require.Len(t, pts, 100)

	// Starts at (0, r) and closes on itself
	assert.InDelta(t, 0, pts[0].X, 1e-15)
	assert.InDelta(t, 2, pts[0].Y, 1e-15)
	assert.InDelta(t, 0, r3.Norm(r3.Sub(pts[99], pts[0])), 1e-12)

	for i, p := range pts {
		assert.InDelta(t, 2, r3.Norm(p), 1e-12, "point %d off the circle", i)
		assert.Zero(t, p.Z)
	}

	_, err = CircularLoop(2, 1)
	assert.Error(t, err)
	_, err = CircularLoop(0, 10)
	assert.Error(t, err)
}

func TestSquareLoop(t *testing.T) {
	pts, err := SquareLoop(2)
	require.NoError(t, err)

	want := []r3.Vec{
		{X: 1, Y: -1},
		{X: 1, Y: 1},
		{X: -1, Y: 1},
		{X: -1, Y: -1},
		{X: 1, Y: -1},
	}
	if diff := cmp.Diff(want, pts, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("square vertices mismatch (-want +got):\n%s", diff)
	}
	assert.InDelta(t, 8, Length(pts), 1e-12)

	_, err = SquareLoop(-1)
	assert.Error(t, err)
}

func TestPathContinuity(t *testing.T) {
	var p Path
	p.AddElement(0, math.Pi/2, 1)
	p.AddElement(math.Pi/2, math.Pi/2, 1)
	p.AddElement(0, 0, 2)

	// No origin given: the first element starts at zero without adding it,
	// later elements chain from the previous end point.
	want := []r3.Vec{
		{X: 1},
		{X: 1, Y: 1},
		{X: 1, Y: 1, Z: 2},
	}
	if diff := cmp.Diff(want, p.Points(), cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("path mismatch (-want +got):\n%s", diff)
	}

	p.AddElementFrom(r3.Vec{X: 5}, 0, math.Pi/2, 1)
	assert.Equal(t, 5, p.Len())
}

func TestOrientAlignedIsIdentity(t *testing.T) {
	pts, err := CircularLoop(1.5, 64)
	require.NoError(t, err)

	got := Orient(pts, Orientation{}, r3.Vec{})
	assert.Equal(t, pts, got)
	for _, p := range got {
		assert.False(t, math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsNaN(p.Z))
	}
}

func TestOrientDoesNotMutateInput(t *testing.T) {
	pts, err := SquareLoop(1)
	require.NoError(t, err)
	before := append([]r3.Vec(nil), pts...)

	Orient(pts, Orientation{Theta: 0.3, Phi: 1.1}, r3.Vec{X: 4})
	assert.Equal(t, before, pts)
}

func TestOrientNormalAndCentre(t *testing.T) {
	tests := []struct {
		name   string
		o      Orientation
		centre r3.Vec
	}{
		{"x-z plane", Orientation{Theta: 0, Phi: math.Pi / 2}, r3.Vec{}},
		{"y-z plane", Orientation{Theta: math.Pi / 2, Phi: math.Pi / 2}, r3.Vec{X: 1, Y: 2, Z: 3}},
		{"oblique", Orientation{Theta: 0.7, Phi: 0.4}, r3.Vec{X: -2, Z: 0.5}},
		{"upside down", Orientation{Theta: 0, Phi: math.Pi}, r3.Vec{Z: -1}},
		{"azimuth only", Orientation{Theta: 1.2, Phi: 0}, r3.Vec{Y: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pts, err := SquareLoop(2)
			require.NoError(t, err)

			got := Orient(pts, tt.o, tt.centre)
			require.Len(t, got, len(pts))

			c := Centroid(got)
			assert.InDelta(t, 0, r3.Norm(r3.Sub(c, tt.centre)), 1e-12)

			// Normal from two adjacent sides, counter-clockwise so it
			// follows the canonical +z.
			a := r3.Sub(got[1], got[0])
			b := r3.Sub(got[2], got[1])
			n := r3.Unit(r3.Cross(a, b))
			assert.InDelta(t, 1, r3.Dot(n, tt.o.Normal()), 1e-12)

			assert.InDelta(t, 8, Length(got), 1e-12)
		})
	}
}

func TestOrientRoundTrip(t *testing.T) {
	pts, err := CircularLoop(3, 50)
	require.NoError(t, err)

	for _, o := range []Orientation{
		{Theta: 0, Phi: 0},
		{Theta: 0.5, Phi: 0.25},
		{Theta: -2, Phi: math.Pi / 2},
		{Theta: math.Pi, Phi: 2.5},
		{Theta: 0.1, Phi: -0.8},
	} {
		centre := r3.Vec{X: 1, Y: -3, Z: 2}
		back := Unorient(Orient(pts, o, centre), o, centre)
		if diff := cmp.Diff(pts, back, approx); diff != "" {
			t.Errorf("round trip %+v mismatch (-want +got):\n%s", o, diff)
		}
	}
}

func TestCentroid(t *testing.T) {
	assert.Equal(t, r3.Vec{}, Centroid(nil))

	pts, err := CircularLoop(1, 33)
	require.NoError(t, err)
	c := Centroid(pts)
	assert.InDelta(t, 0, r3.Norm(c), 1e-12)

	open := []r3.Vec{{X: 0}, {X: 2}}
	assert.Equal(t, r3.Vec{X: 1}, Centroid(open))
}
