package wire

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/alexiusacademia/gobiot/internal/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func circleParams() Params {
	return Params{
		Name:       "coil A",
		Shape:      Circle,
		Radius:     2,
		PointCount: 100,
		Turns:      3,
		Current:    PhasedCurrent{Amplitude: 1.5, Phase: 0.25},
	}
}

func squareParams() Params {
	return Params{
		Name:       "coil B",
		Shape:      Square,
		SideLength: 2,
		DL:         0.01,
		Centre:     r3.Vec{Z: 1},
		Current:    DefaultCurrent,
	}
}

func TestNullWire(t *testing.T) {
	w := NewNullWire()
	assert.Equal(t, DefaultName, w.Name)
	assert.Equal(t, PhasedCurrent{Amplitude: 1}, w.Current)
	assert.Equal(t, 1, w.Turns)
	assert.Zero(t, w.NumPoints())
	assert.Zero(t, w.Segments())
}

func TestShapeDispatch(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		points int
	}{
		{"circle", circleParams(), 100},
		{"square", squareParams(), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := NewWire(tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.params.Shape, w.Shape)
			assert.Equal(t, tt.points, w.NumPoints())
			assert.Equal(t, tt.points-1, w.Segments())
		})
	}
}

func TestParseShape(t *testing.T) {
	s, err := ParseShape("circle")
	require.NoError(t, err)
	assert.Equal(t, Circle, s)

	s, err = ParseShape("square")
	require.NoError(t, err)
	assert.Equal(t, Square, s)

	_, err = ParseShape("triangle")
	var shapeErr *UnsupportedShapeError
	require.True(t, errors.As(err, &shapeErr))
	assert.Equal(t, "triangle", shapeErr.Shape)
	assert.Contains(t, err.Error(), "triangle")
}

func TestNewWireUnsupportedShape(t *testing.T) {
	p := circleParams()
	p.Shape = Shape(42)

	_, err := NewWire(p)
	var shapeErr *UnsupportedShapeError
	assert.True(t, errors.As(err, &shapeErr))
}

func TestCollectionKeepsOnlyBuiltWires(t *testing.T) {
	c := NewCollection()

	_, err := c.NewWire(circleParams())
	require.NoError(t, err)

	bad := squareParams()
	bad.Shape = 0
	_, err = c.NewWire(bad)
	require.Error(t, err)

	bad = squareParams()
	bad.SideLength = 0
	_, err = c.NewWire(bad)
	require.Error(t, err)

	_, err = c.NewWire(squareParams())
	require.NoError(t, err)

	require.Equal(t, 2, c.Len())
	assert.Equal(t, "coil A", c.Wires()[0].Name)
	assert.Equal(t, "coil B", c.Wires()[1].Name)

	// The returned slice is a copy
	ws := c.Wires()
	ws[0], ws[1] = ws[1], ws[0]
	assert.Equal(t, "coil A", c.Wires()[0].Name)
	assert.Equal(t, "coil B", c.Wires()[1].Name)
	assert.Equal(t, 2, c.Len())
}

func TestGeometryIsBuiltOnce(t *testing.T) {
	w, err := NewWire(circleParams())
	require.NoError(t, err)
	assert.ErrorIs(t, w.CircularLoop(circleParams()), ErrGeometryBuilt)
	assert.ErrorIs(t, w.SquareLoop(squareParams()), ErrGeometryBuilt)
}

func TestWireIsPlacedAndOriented(t *testing.T) {
	p := squareParams()
	p.Orientation = geometry.Orientation{Theta: math.Pi / 4, Phi: math.Pi / 3}

	w, err := NewWire(p)
	require.NoError(t, err)

	pts := w.Points()
	c := geometry.Centroid(pts)
	assert.InDelta(t, 0, r3.Norm(r3.Sub(c, p.Centre)), 1e-12)

	// Every vertex lies in the plane normal to the orientation
	n := p.Orientation.Normal()
	for _, v := range pts {
		assert.InDelta(t, 0, r3.Dot(r3.Sub(v, p.Centre), n), 1e-12)
	}

	// Points returns a copy
	pts[0] = r3.Vec{X: 100}
	assert.NotEqual(t, pts[0], w.Points()[0])
}

func TestSetters(t *testing.T) {
	w, err := NewWire(circleParams())
	require.NoError(t, err)

	w.SetName("renamed")
	assert.Equal(t, "renamed", w.Name)

	w.SetCurrent(PhasedCurrent{Amplitude: 2, Phase: 1})
	require.NoError(t, w.SetLoops(4))
	assert.Equal(t, PhasedCurrent{Amplitude: 8, Phase: 1}, w.EffectiveCurrent())
	assert.Error(t, w.SetLoops(0))
	assert.Equal(t, 4, w.Turns)

	assert.Error(t, w.SetDiscretization(-1))
}

func TestSetDiscretization(t *testing.T) {
	sq, err := NewWire(squareParams())
	require.NoError(t, err)
	require.NoError(t, sq.SetDiscretization(0.05))
	assert.Equal(t, 0.05, sq.DL)
	require.NoError(t, sq.SetDiscretization(0))
	assert.Zero(t, sq.DL)

	c, err := NewWire(circleParams())
	require.NoError(t, err)
	assert.ErrorIs(t, c.SetDiscretization(0.05), ErrCircleDiscretization)
	assert.Zero(t, c.DL)
	assert.NoError(t, c.SetDiscretization(0))
}

func TestZeroTurnsDefaultsToOne(t *testing.T) {
	p := squareParams()
	p.Turns = 0
	w, err := NewWire(p)
	require.NoError(t, err)
	assert.Equal(t, 1, w.Turns)

	p.Turns = -2
	_, err = NewWire(p)
	assert.Error(t, err)
}

func TestPhasedCurrent(t *testing.T) {
	c := PhasedCurrent{Amplitude: 2, Phase: math.Pi / 2}

	assert.Equal(t, complex(2, math.Pi/2), c.Complex())
	assert.InDelta(t, 0, real(c.Phasor()), 1e-15)
	assert.InDelta(t, 2, imag(c.Phasor()), 1e-15)

	// Turns scale amplitude only
	assert.Equal(t, PhasedCurrent{Amplitude: 10, Phase: math.Pi / 2}, c.Effective(5))

	sum := c.Add(PhasedCurrent{Amplitude: 1, Phase: -0.5})
	assert.Equal(t, 3.0, sum.Amplitude)
	assert.InDelta(t, math.Pi/2-0.5, sum.Phase, 1e-15)

	assert.Equal(t, "2 A ∠ 1.571 rad", c.String())
}

func TestPrintAll(t *testing.T) {
	c := NewCollection()
	_, err := c.NewWire(circleParams())
	require.NoError(t, err)
	_, err = c.NewWire(squareParams())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, c.PrintAll(&buf))

	out := buf.String()
	assert.Contains(t, out, "coil A")
	assert.Contains(t, out, "coil B")
	assert.Contains(t, out, "Radius:")
	assert.Contains(t, out, "Side length:")
	assert.Contains(t, out, "Number of loops:")
	assert.Contains(t, out, "1.5 A ∠ 0.25 rad")
	assert.Contains(t, out, "Vertex centroid:")
}
