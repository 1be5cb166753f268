package wire

import "fmt"

// Shape is the closed set of loop shapes a Wire can be built from.
type Shape int

const (
	// Circle is a circular loop approximated by PointCount vertices.
	Circle Shape = iota + 1
	// Square is a square loop built from four straight sides.
	Square
)

var shapeNames = map[Shape]string{
	Circle: "circle",
	Square: "square",
}

func (s Shape) String() string {
	if name, ok := shapeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("shape(%d)", int(s))
}

// Build turns the null wire w into a loop of shape s.
func (s Shape) Build(w *Wire, p Params) error {
	switch s {
	case Circle:
		return w.CircularLoop(p)
	case Square:
		return w.SquareLoop(p)
	}
	return &UnsupportedShapeError{Shape: s.String()}
}

// ParseShape converts a shape tag into a Shape.
func ParseShape(tag string) (Shape, error) {
	for s, name := range shapeNames {
		if name == tag {
			return s, nil
		}
	}
	return 0, &UnsupportedShapeError{Shape: tag}
}

// UnsupportedShapeError is returned when a wire is requested with a shape
// other than circle or square.
type UnsupportedShapeError struct {
	Shape string
}

func (e *UnsupportedShapeError) Error() string {
	return fmt.Sprintf("unsupported shape %q: only \"circle\" and \"square\" loops are supported", e.Shape)
}
