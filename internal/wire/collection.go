package wire

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/alexiusacademia/gobiot/internal/geometry"
)

// Collection is the ordered set of wires making up a scene.
type Collection struct {
	wires []*Wire
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{}
}

// NewWire builds a wire from p and appends it. On error the collection is
// left unchanged.
func (c *Collection) NewWire(p Params) (*Wire, error) {
	w, err := NewWire(p)
	if err != nil {
		return nil, err
	}
	c.wires = append(c.wires, w)
	return w, nil
}

// Add appends an already built wire.
func (c *Collection) Add(w *Wire) {
	c.wires = append(c.wires, w)
}

// Wires returns a copy of the wire list in creation order.
func (c *Collection) Wires() []*Wire {
	out := make([]*Wire, len(c.wires))
	copy(out, c.wires)
	return out
}

// Len returns the number of wires.
func (c *Collection) Len() int {
	return len(c.wires)
}

// PrintAll writes every wire and its attributes to out.
func (c *Collection) PrintAll(out io.Writer) error {
	for i, w := range c.wires {
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "  Wire %d:\t%s\n", i+1, w.Name)
		fmt.Fprintf(tw, "  Shape:\t%s\n", w.Shape)
		fmt.Fprintf(tw, "  Centre:\t(%.4g, %.4g, %.4g) m\n", w.Centre.X, w.Centre.Y, w.Centre.Z)
		switch w.Shape {
		case Circle:
			fmt.Fprintf(tw, "  Radius:\t%.4g m\n", w.Radius)
			fmt.Fprintf(tw, "  Number of points:\t%d\n", w.PointCount)
		case Square:
			fmt.Fprintf(tw, "  Side length:\t%.4g m\n", w.SideLength)
		}
		if w.DL > 0 {
			fmt.Fprintf(tw, "  Discretization length:\t%.4g m\n", w.DL)
		} else {
			fmt.Fprintf(tw, "  Discretization length:\tnone\n")
		}
		fmt.Fprintf(tw, "  Orientation (θ, φ):\t(%.4f, %.4f) rad\n", w.Orientation.Theta, w.Orientation.Phi)
		fmt.Fprintf(tw, "  Number of loops:\t%d\n", w.Turns)
		fmt.Fprintf(tw, "  Current:\t%s\n", w.Current)
		fmt.Fprintf(tw, "  Vertices:\t%d\n", w.NumPoints())
		mid := geometry.Centroid(w.points)
		fmt.Fprintf(tw, "  Vertex centroid:\t(%.4g, %.4g, %.4g) m\n", mid.X, mid.Y, mid.Z)
		if err := tw.Flush(); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(out); err != nil {
			return err
		}
	}
	return nil
}
