package wire

import (
	"errors"
	"fmt"

	"github.com/alexiusacademia/gobiot/internal/geometry"
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultName is the name of a wire that has not been given one.
const DefaultName = "Default Wire Element"

// Params describes a loop to build. Radius and PointCount apply to circles,
// SideLength and DL to squares. All angles are in radians.
type Params struct {
	Name        string
	Shape       Shape
	Centre      r3.Vec
	Radius      float64
	PointCount  int
	SideLength  float64
	DL          float64 // Discretization length (m), 0 uses whole segments
	Turns       int     // 0 is treated as a single turn
	Orientation geometry.Orientation
	Current     PhasedCurrent
}

// Wire is one current-carrying loop and its point sequence.
type Wire struct {
	Name        string
	Shape       Shape
	Centre      r3.Vec
	Radius      float64 // circle only
	PointCount  int     // circle only
	SideLength  float64 // square only
	Orientation geometry.Orientation

	Turns   int
	Current PhasedCurrent
	DL      float64

	points []r3.Vec
}

// ErrGeometryBuilt is returned when a loop is built on a wire that already
// has geometry.
var ErrGeometryBuilt = errors.New("wire geometry already built")

// NewNullWire returns a wire with no geometry, 1 A at zero phase and a
// single turn.
func NewNullWire() *Wire {
	return &Wire{
		Name:    DefaultName,
		Current: DefaultCurrent,
		Turns:   1,
	}
}

// NewWire builds a wire of the shape requested in p.
func NewWire(p Params) (*Wire, error) {
	w := NewNullWire()
	if err := p.Shape.Build(w, p); err != nil {
		return nil, err
	}
	return w, nil
}

// CircularLoop turns a null wire into a circular loop.
func (w *Wire) CircularLoop(p Params) error {
	if w.points != nil {
		return ErrGeometryBuilt
	}
	pts, err := geometry.CircularLoop(p.Radius, p.PointCount)
	if err != nil {
		return fmt.Errorf("wire %q: %w", p.Name, err)
	}
	if err := w.setCommon(p); err != nil {
		return err
	}

	w.Shape = Circle
	w.Radius = p.Radius
	w.PointCount = p.PointCount
	w.points = geometry.Orient(pts, p.Orientation, p.Centre)
	return nil
}

// SquareLoop turns a null wire into a square loop.
func (w *Wire) SquareLoop(p Params) error {
	if w.points != nil {
		return ErrGeometryBuilt
	}
	pts, err := geometry.SquareLoop(p.SideLength)
	if err != nil {
		return fmt.Errorf("wire %q: %w", p.Name, err)
	}
	if p.DL < 0 {
		return fmt.Errorf("wire %q: invalid discretization length: %g", p.Name, p.DL)
	}
	if err := w.setCommon(p); err != nil {
		return err
	}

	w.Shape = Square
	w.SideLength = p.SideLength
	w.DL = p.DL
	w.points = geometry.Orient(pts, p.Orientation, p.Centre)
	return nil
}

func (w *Wire) setCommon(p Params) error {
	turns := p.Turns
	if turns == 0 {
		turns = 1
	}
	if turns < 0 {
		return fmt.Errorf("wire %q: invalid number of loops: %d", p.Name, p.Turns)
	}

	if p.Name != "" {
		w.Name = p.Name
	}
	w.Centre = p.Centre
	w.Orientation = p.Orientation
	w.Turns = turns
	w.Current = p.Current
	return nil
}

// Points returns a copy of the wire's point sequence.
func (w *Wire) Points() []r3.Vec {
	out := make([]r3.Vec, len(w.points))
	copy(out, w.points)
	return out
}

// NumPoints returns the length of the point sequence.
func (w *Wire) NumPoints() int { return len(w.points) }

// Segments returns the number of straight segments before discretization.
func (w *Wire) Segments() int {
	if len(w.points) < 2 {
		return 0
	}
	return len(w.points) - 1
}

// EffectiveCurrent is the current of all turns together.
func (w *Wire) EffectiveCurrent() PhasedCurrent {
	return w.Current.Effective(w.Turns)
}

// SetName sets the name of the wire.
func (w *Wire) SetName(name string) { w.Name = name }

// SetCurrent sets the per-turn current.
func (w *Wire) SetCurrent(c PhasedCurrent) { w.Current = c }

// SetLoops sets the number of turns.
func (w *Wire) SetLoops(n int) error {
	if n < 1 {
		return fmt.Errorf("invalid number of loops: %d", n)
	}
	w.Turns = n
	return nil
}

// ErrCircleDiscretization is returned when a discretization length is set on
// a circle. Circles are solved on their chords.
var ErrCircleDiscretization = errors.New("circles cannot be discretized")

// SetDiscretization sets the sub-segment length used when solving. Zero
// disables subdivision.
func (w *Wire) SetDiscretization(dl float64) error {
	if dl < 0 {
		return fmt.Errorf("invalid discretization length: %g", dl)
	}
	if dl > 0 && w.Shape == Circle {
		return fmt.Errorf("wire %q: %w", w.Name, ErrCircleDiscretization)
	}
	w.DL = dl
	return nil
}
