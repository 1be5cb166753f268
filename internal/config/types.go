package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"
)

// File is a scene description: the coils to build and the actions to run on
// them.
type File struct {
	Coils   []Coil   `json:"coils" yaml:"coils"`
	Actions []Action `json:"actions,omitempty" yaml:"actions,omitempty"`
}

// XYZ is a point in 3D cartesian space (m).
type XYZ struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Vec converts p to a gonum vector.
func (p XYZ) Vec() r3.Vec {
	return r3.Vec{X: p.X, Y: p.Y, Z: p.Z}
}

// Orientation is the loop normal in spherical angles.
type Orientation struct {
	Theta     float64 `json:"theta" yaml:"theta"`
	Phi       float64 `json:"phi" yaml:"phi"`
	AngleUnit string  `json:"angle unit,omitempty" yaml:"angle unit,omitempty"`
}

// Current is the per-turn current of a coil.
type Current struct {
	Modulus   float64 `json:"modulus" yaml:"modulus"`
	Phase     float64 `json:"phase" yaml:"phase"`
	AngleUnit string  `json:"angle unit,omitempty" yaml:"angle unit,omitempty"`
}

// Coil describes one wire loop
type Coil struct {
	Name   string `json:"name" yaml:"name"`
	Shape  string `json:"shape" yaml:"shape"`
	Centre XYZ    `json:"centre" yaml:"centre"`

	// Circle
	Radius         float64 `json:"radius,omitempty" yaml:"radius,omitempty"`
	NumberOfPoints int     `json:"number of points,omitempty" yaml:"number of points,omitempty"`

	// Square
	SideLength           float64 `json:"side length,omitempty" yaml:"side length,omitempty"`
	DiscretizationLength float64 `json:"discretization length,omitempty" yaml:"discretization length,omitempty"`

	NumberOfLoops int         `json:"number of loops" yaml:"number of loops"`
	Orientation   Orientation `json:"orientation" yaml:"orientation"`
	Current       Current     `json:"current" yaml:"current"`
}

// Action names understood by the action runner.
const (
	ActionValidate  = "validate magnetic field"
	ActionPlotCoils = "plot coils"
	ActionSliceXY   = "plot slice xy"
)

// Action is a task to run once the coils are built.
type Action struct {
	Name    string `json:"name" yaml:"name"`
	Execute Flag   `json:"execute,omitempty" yaml:"execute,omitempty"`

	// validate magnetic field
	Shape      string `json:"shape,omitempty" yaml:"shape,omitempty"`
	StartPoint *XYZ   `json:"start point,omitempty" yaml:"start point,omitempty"`
	EndPoint   *XYZ   `json:"end point,omitempty" yaml:"end point,omitempty"`

	// plot coils, plot slice xy
	XLim      []float64 `json:"xlim,omitempty" yaml:"xlim,omitempty"`
	YLim      []float64 `json:"ylim,omitempty" yaml:"ylim,omitempty"`
	ZLim      []float64 `json:"zlim,omitempty" yaml:"zlim,omitempty"`
	Z         float64   `json:"z,omitempty" yaml:"z,omitempty"`
	Plane     string    `json:"plane,omitempty" yaml:"plane,omitempty"`
	AxesEqual Flag      `json:"axes equal,omitempty" yaml:"axes equal,omitempty"`

	NumberOfPoints int    `json:"number of points,omitempty" yaml:"number of points,omitempty"`
	Output         string `json:"output,omitempty" yaml:"output,omitempty"`
}

// Enabled reports whether the action should run. Actions run unless
// "execute" is explicitly false.
func (a Action) Enabled() bool {
	return !a.Execute.Set || a.Execute.Value
}

// Flag is a boolean that also accepts the strings true/t/yes/y and
// false/f/no/n. Set records whether the field was present.
type Flag struct {
	Set   bool
	Value bool
}

// ParseBool converts a boolean word into a bool.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "t", "yes", "y":
		return true, nil
	case "false", "f", "no", "n":
		return false, nil
	}
	return false, fmt.Errorf("parameter %q is malformed, expected a true or false value", s)
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *Flag) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = Flag{Set: true, Value: b}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("parameter %s is malformed, expected a true or false value", data)
	}
	v, err := ParseBool(s)
	if err != nil {
		return err
	}
	*f = Flag{Set: true, Value: v}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (f Flag) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Value)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (f *Flag) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a true or false value", node.Line)
	}
	v, err := ParseBool(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*f = Flag{Set: true, Value: v}
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (f Flag) MarshalYAML() (interface{}, error) {
	return f.Value, nil
}

// IsZero lets omitempty drop unset flags.
func (f Flag) IsZero() bool { return !f.Set }
