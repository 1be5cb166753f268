package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexiusacademia/gobiot/internal/geometry"
	"github.com/alexiusacademia/gobiot/internal/wire"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Load reads a coil file from disk. Files ending in .yaml or .yml are
// decoded as YAML, anything else as JSON.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var f File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &f)
	default:
		err = json.Unmarshal(data, &f)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks every coil and enabled action and reports all problems
// at once.
func (f *File) Validate() error {
	if len(f.Coils) == 0 {
		return &ValidationError{Field: "coils", Msg: "at least one coil is required"}
	}

	var errs error
	for i, c := range f.Coils {
		errs = multierr.Append(errs, c.Validate(i))
	}
	for i, a := range f.Actions {
		if a.Enabled() {
			errs = multierr.Append(errs, a.Validate(i))
		}
	}
	return errs
}

// Validate checks the fields required by the coil's shape. i is the coil's
// position in the file and is only used in messages.
func (c Coil) Validate(i int) error {
	field := func(name string) string {
		return fmt.Sprintf("coils[%d].%s", i, name)
	}

	var errs error
	shape, err := wire.ParseShape(c.Shape)
	if err != nil {
		return multierr.Append(errs, &ValidationError{Field: field("shape"), Msg: err.Error(), Err: err})
	}

	switch shape {
	case wire.Circle:
		if c.Radius <= 0 {
			errs = multierr.Append(errs, &ValidationError{Field: field("radius"), Msg: "must be positive"})
		}
		if c.NumberOfPoints < 2 {
			errs = multierr.Append(errs, &ValidationError{Field: field("number of points"), Msg: "must be at least 2"})
		}
	case wire.Square:
		if c.SideLength <= 0 {
			errs = multierr.Append(errs, &ValidationError{Field: field("side length"), Msg: "must be positive"})
		}
		if c.DiscretizationLength < 0 {
			errs = multierr.Append(errs, &ValidationError{Field: field("discretization length"), Msg: "must not be negative"})
		}
	}

	if c.NumberOfLoops < 0 {
		errs = multierr.Append(errs, &ValidationError{Field: field("number of loops"), Msg: "must not be negative"})
	}
	if _, err := AngleScale(c.Orientation.AngleUnit); err != nil {
		errs = multierr.Append(errs, &ValidationError{Field: field("orientation.angle unit"), Msg: err.Error()})
	}
	if _, err := AngleScale(c.Current.AngleUnit); err != nil {
		errs = multierr.Append(errs, &ValidationError{Field: field("current.angle unit"), Msg: err.Error()})
	}
	return errs
}

// Validate checks an action's name and the fields it needs.
func (a Action) Validate(i int) error {
	field := func(name string) string {
		return fmt.Sprintf("actions[%d].%s", i, name)
	}

	var errs error
	switch a.Name {
	case ActionValidate:
		if _, err := wire.ParseShape(a.Shape); err != nil {
			errs = multierr.Append(errs, &ValidationError{Field: field("shape"), Msg: err.Error(), Err: err})
		}
		if a.StartPoint == nil {
			errs = multierr.Append(errs, &ValidationError{Field: field("start point"), Msg: "is required"})
		}
		if a.EndPoint == nil {
			errs = multierr.Append(errs, &ValidationError{Field: field("end point"), Msg: "is required"})
		}
		if a.NumberOfPoints < 2 {
			errs = multierr.Append(errs, &ValidationError{Field: field("number of points"), Msg: "must be at least 2"})
		}
	case ActionPlotCoils:
		errs = multierr.Append(errs, checkLim(field("xlim"), a.XLim))
		errs = multierr.Append(errs, checkLim(field("ylim"), a.YLim))
		errs = multierr.Append(errs, checkLim(field("zlim"), a.ZLim))
	case ActionSliceXY:
		if len(a.XLim) == 0 {
			errs = multierr.Append(errs, &ValidationError{Field: field("xlim"), Msg: "is required"})
		}
		if len(a.YLim) == 0 {
			errs = multierr.Append(errs, &ValidationError{Field: field("ylim"), Msg: "is required"})
		}
		errs = multierr.Append(errs, checkLim(field("xlim"), a.XLim))
		errs = multierr.Append(errs, checkLim(field("ylim"), a.YLim))
		if a.NumberOfPoints < 2 {
			errs = multierr.Append(errs, &ValidationError{Field: field("number of points"), Msg: "must be at least 2"})
		}
	default:
		errs = &ValidationError{Field: field("name"), Msg: fmt.Sprintf("unknown action %q", a.Name)}
	}
	return errs
}

func checkLim(field string, lim []float64) error {
	switch {
	case len(lim) == 0:
		return nil
	case len(lim) != 2:
		return &ValidationError{Field: field, Msg: fmt.Sprintf("expected 2 values, got %d", len(lim))}
	case lim[0] >= lim[1]:
		return &ValidationError{Field: field, Msg: "lower limit must be below upper limit"}
	}
	return nil
}

// Lim returns a two-element limit as an array. ok is false when lim is
// unset.
func Lim(lim []float64) (out [2]float64, ok bool) {
	if len(lim) != 2 {
		return out, false
	}
	return [2]float64{lim[0], lim[1]}, true
}

// AngleScale returns the factor converting an angle in unit to radians.
// An empty unit means radians.
func AngleScale(unit string) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "", "radians", "radian", "rad", "r":
		return 1, nil
	case "degrees", "degree", "deg", "d":
		return math.Pi / 180, nil
	}
	return 0, fmt.Errorf("unknown angle unit %q", unit)
}

// ParseAngle converts value in unit to radians.
func ParseAngle(value float64, unit string) (float64, error) {
	scale, err := AngleScale(unit)
	if err != nil {
		return 0, err
	}
	return value * scale, nil
}

// Params converts the coil into wire parameters with all angles in radians.
func (c Coil) Params() (wire.Params, error) {
	shape, err := wire.ParseShape(c.Shape)
	if err != nil {
		return wire.Params{}, err
	}

	theta, err := ParseAngle(c.Orientation.Theta, c.Orientation.AngleUnit)
	if err != nil {
		return wire.Params{}, err
	}
	phi, err := ParseAngle(c.Orientation.Phi, c.Orientation.AngleUnit)
	if err != nil {
		return wire.Params{}, err
	}
	phase, err := ParseAngle(c.Current.Phase, c.Current.AngleUnit)
	if err != nil {
		return wire.Params{}, err
	}

	return wire.Params{
		Name:        c.Name,
		Shape:       shape,
		Centre:      c.Centre.Vec(),
		Radius:      c.Radius,
		PointCount:  c.NumberOfPoints,
		SideLength:  c.SideLength,
		DL:          c.DiscretizationLength,
		Turns:       c.NumberOfLoops,
		Orientation: geometry.Orientation{Theta: theta, Phi: phi},
		Current:     wire.PhasedCurrent{Amplitude: c.Current.Modulus, Phase: phase},
	}, nil
}

// Wires builds a collection holding every coil in file order.
func (f *File) Wires() (*wire.Collection, error) {
	wires := wire.NewCollection()
	for i, c := range f.Coils {
		p, err := c.Params()
		if err != nil {
			return nil, fmt.Errorf("coil %d: %w", i+1, err)
		}
		if _, err := wires.NewWire(p); err != nil {
			return nil, fmt.Errorf("coil %d: %w", i+1, err)
		}
	}
	return wires, nil
}

// ValidationError reports one invalid field of a coil file.
type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return e.Field + ": " + e.Msg
}

func (e *ValidationError) Unwrap() error { return e.Err }
