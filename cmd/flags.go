package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexiusacademia/gobiot/internal/config"
	"github.com/alexiusacademia/gobiot/internal/wire"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"
)

// vecFlag is a point given on the command line as x,y,z.
type vecFlag r3.Vec

var _ pflag.Value = (*vecFlag)(nil)

func (v *vecFlag) String() string {
	return fmt.Sprintf("%g,%g,%g", v.X, v.Y, v.Z)
}

func (v *vecFlag) Set(s string) error {
	xs, err := parseFloats(s, 3)
	if err != nil {
		return err
	}
	*v = vecFlag{X: xs[0], Y: xs[1], Z: xs[2]}
	return nil
}

func (v *vecFlag) Type() string { return "x,y,z" }

func (v *vecFlag) Vec() r3.Vec { return r3.Vec(*v) }

// XYZ converts the flag into a config point.
func (v *vecFlag) XYZ() *config.XYZ {
	return &config.XYZ{X: v.X, Y: v.Y, Z: v.Z}
}

// limFlag is an axis range given as min,max.
type limFlag [2]float64

var _ pflag.Value = (*limFlag)(nil)

func (l *limFlag) String() string {
	return fmt.Sprintf("%g,%g", l[0], l[1])
}

func (l *limFlag) Set(s string) error {
	xs, err := parseFloats(s, 2)
	if err != nil {
		return err
	}
	if xs[0] >= xs[1] {
		return fmt.Errorf("lower limit %g must be below upper limit %g", xs[0], xs[1])
	}
	*l = limFlag{xs[0], xs[1]}
	return nil
}

func (l *limFlag) Type() string { return "min,max" }

func parseFloats(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d comma separated values, got %q", n, s)
	}
	out := make([]float64, n)
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", p)
		}
		out[i] = f
	}
	return out, nil
}

// loadWires reads a coil file and builds its wires.
func loadWires(path string) (*config.File, *wire.Collection, error) {
	f, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	wires, err := f.Wires()
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("loaded coil file", zap.String("file", path), zap.Int("coils", wires.Len()))
	return f, wires, nil
}
