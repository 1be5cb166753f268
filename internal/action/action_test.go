package action

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexiusacademia/gobiot/internal/config"
	"github.com/alexiusacademia/gobiot/internal/solver"
	"github.com/alexiusacademia/gobiot/internal/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newRunner(t *testing.T) (*Runner, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	r := NewRunner(solver.New(solver.WithWorkers(4)), &out, t.TempDir(), zaptest.NewLogger(t))
	return r, &out
}

func loops(t *testing.T, coils ...config.Coil) *wire.Collection {
	t.Helper()
	wires, err := (&config.File{Coils: coils}).Wires()
	require.NoError(t, err)
	return wires
}

func circleCoil() config.Coil {
	return config.Coil{
		Name:           "loop",
		Shape:          "circle",
		Radius:         1,
		NumberOfPoints: 200,
		NumberOfLoops:  1,
		Current:        config.Current{Modulus: 1},
	}
}

func squareCoil() config.Coil {
	return config.Coil{
		Name:                 "square",
		Shape:                "square",
		Centre:               config.XYZ{X: 1, Y: 1, Z: 1},
		SideLength:           2,
		DiscretizationLength: 0.05,
		NumberOfLoops:        3,
		Orientation:          config.Orientation{Theta: 30, Phi: 60, AngleUnit: "deg"},
		Current:              config.Current{Modulus: 2},
	}
}

func assertFile(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestValidateCircle(t *testing.T) {
	r, out := newRunner(t)
	res, err := r.Validate(context.Background(), config.Action{
		Name:           config.ActionValidate,
		Shape:          "circle",
		StartPoint:     &config.XYZ{Z: 0.1},
		EndPoint:       &config.XYZ{Z: 5},
		NumberOfPoints: 30,
	}, loops(t, circleCoil()))
	require.NoError(t, err)

	assert.Len(t, res.Positions, 30)
	assert.InDelta(t, 0.1, res.Positions[0], 1e-12)
	assert.Less(t, res.RMSE, 1e-3*res.Analytical[0])
	assert.Zero(t, res.NonFinite)
	assertFile(t, res.Image)
	assert.Equal(t, filepath.Join(r.OutputDir, "validate-circle.png"), res.Image)

	assert.Contains(t, out.String(), "Root Mean Square Error")
	assert.Contains(t, out.String(), "Circular Loop Validation, Number of Points = 200")
}

func TestValidateOrientedSquare(t *testing.T) {
	r, _ := newRunner(t)
	r.Chart = false

	coil := squareCoil()
	wires := loops(t, coil)
	w := wires.Wires()[0]
	n := w.Orientation.Normal()

	start := config.XYZ{X: w.Centre.X + 0.2*n.X, Y: w.Centre.Y + 0.2*n.Y, Z: w.Centre.Z + 0.2*n.Z}
	end := config.XYZ{X: w.Centre.X + 3*n.X, Y: w.Centre.Y + 3*n.Y, Z: w.Centre.Z + 3*n.Z}

	res, err := r.Validate(context.Background(), config.Action{
		Shape:          "square",
		StartPoint:     &start,
		EndPoint:       &end,
		NumberOfPoints: 20,
		Output:         "square.svg",
	}, wires)
	require.NoError(t, err)

	assert.InDelta(t, 0.2, res.Positions[0], 1e-12)
	assert.InDelta(t, 3, res.Positions[len(res.Positions)-1], 1e-12)
	for i := range res.Numerical {
		assert.InEpsilon(t, res.Analytical[i], res.Numerical[i], 1e-3)
	}
	assert.Equal(t, filepath.Join(r.OutputDir, "square.svg"), res.Image)
	assertFile(t, res.Image)
}

func TestValidateShapeMismatch(t *testing.T) {
	r, _ := newRunner(t)
	_, err := r.Validate(context.Background(), config.Action{
		Shape:          "square",
		StartPoint:     &config.XYZ{},
		EndPoint:       &config.XYZ{Z: 1},
		NumberOfPoints: 5,
	}, loops(t, circleCoil()))
	assert.Error(t, err)

	_, err = r.Validate(context.Background(), config.Action{Shape: "hexagon"}, loops(t, circleCoil()))
	var shapeErr *wire.UnsupportedShapeError
	assert.ErrorAs(t, err, &shapeErr)
}

func TestPlotCoils(t *testing.T) {
	r, _ := newRunner(t)
	path, err := r.PlotCoils(config.Action{
		Name:      config.ActionPlotCoils,
		XLim:      []float64{-3, 3},
		YLim:      []float64{-3, 3},
		Plane:     "xz",
		AxesEqual: config.Flag{Set: true, Value: true},
	}, loops(t, circleCoil(), squareCoil()))
	require.NoError(t, err)
	assertFile(t, path)
}

func TestSliceXY(t *testing.T) {
	r, out := newRunner(t)
	res, err := r.SliceXY(context.Background(), config.Action{
		Name:           config.ActionSliceXY,
		XLim:           []float64{-2, 2},
		YLim:           []float64{-2, 2},
		Z:              0.3,
		NumberOfPoints: 15,
	}, loops(t, circleCoil()))
	require.NoError(t, err)

	assert.Len(t, res.B, 15*15)
	assertFile(t, res.Image)
	assert.Contains(t, out.String(), "XY SLICE")

	// The field is symmetric about the loop axis
	g := res.Grid
	assert.InEpsilon(t, res.B[g.Index(0, 0)], res.B[g.Index(14, 14)], 1e-3)

	_, err = r.SliceXY(context.Background(), config.Action{YLim: []float64{0, 1}, NumberOfPoints: 3}, loops(t, circleCoil()))
	assert.Error(t, err)
}

func TestRunSkipsDisabledActions(t *testing.T) {
	r, _ := newRunner(t)
	actions := []config.Action{
		{Name: config.ActionPlotCoils, Output: "enabled.png"},
		{Name: config.ActionPlotCoils, Output: "disabled.png", Execute: config.Flag{Set: true, Value: false}},
	}
	require.NoError(t, r.Run(context.Background(), actions, loops(t, circleCoil())))

	assertFile(t, filepath.Join(r.OutputDir, "enabled.png"))
	_, err := os.Stat(filepath.Join(r.OutputDir, "disabled.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestRunUnknownAction(t *testing.T) {
	r, _ := newRunner(t)
	err := r.Run(context.Background(), []config.Action{{Name: "plot slice yz"}}, loops(t, circleCoil()))
	assert.ErrorContains(t, err, "plot slice yz")
}

func TestRunCancelled(t *testing.T) {
	r, _ := newRunner(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.Run(ctx, []config.Action{{
		Name:           config.ActionSliceXY,
		XLim:           []float64{-1, 1},
		YLim:           []float64{-1, 1},
		NumberOfPoints: 4,
	}}, loops(t, circleCoil()))
	assert.ErrorIs(t, err, context.Canceled)
}
