// Package action runs the tasks listed in a coil file against the coils it
// describes.
package action

import (
	"context"
	"fmt"
	"io"
	"math/cmplx"
	"path/filepath"
	"text/tabwriter"

	"github.com/alexiusacademia/gobiot/internal/config"
	"github.com/alexiusacademia/gobiot/internal/diagram"
	"github.com/alexiusacademia/gobiot/internal/physics"
	"github.com/alexiusacademia/gobiot/internal/solver"
	"github.com/alexiusacademia/gobiot/internal/wire"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

const rule = "───────────────────────────────────────────────────────────────"

// Runner executes actions. Text output goes to Out, images to OutputDir
// unless an action names its own output file.
type Runner struct {
	Solver    *solver.Solver
	Logger    *zap.Logger
	Out       io.Writer
	OutputDir string

	// Chart enables terminal charts for field profiles
	Chart bool
}

// NewRunner returns a runner writing text to out and images to dir.
func NewRunner(s *solver.Solver, out io.Writer, dir string, logger *zap.Logger) *Runner {
	if s == nil {
		s = solver.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{Solver: s, Logger: logger, Out: out, OutputDir: dir, Chart: true}
}

// Run executes every enabled action in order and stops at the first
// failure.
func (r *Runner) Run(ctx context.Context, actions []config.Action, wires *wire.Collection) error {
	for i, a := range actions {
		if !a.Enabled() {
			r.Logger.Debug("skipping disabled action", zap.Int("index", i), zap.String("action", a.Name))
			continue
		}

		r.Logger.Info("running action", zap.Int("index", i), zap.String("action", a.Name))
		var err error
		switch a.Name {
		case config.ActionValidate:
			_, err = r.Validate(ctx, a, wires)
		case config.ActionPlotCoils:
			_, err = r.PlotCoils(a, wires)
		case config.ActionSliceXY:
			_, err = r.SliceXY(ctx, a, wires)
		default:
			err = fmt.Errorf("unknown action %q", a.Name)
		}
		if err != nil {
			return fmt.Errorf("action %d (%s): %w", i+1, a.Name, err)
		}
	}
	return nil
}

// ValidationResult compares the numerical field of a loop on its axis with
// the closed-form solution.
type ValidationResult struct {
	Wire *wire.Wire

	// Signed distance of every sample from the loop centre along its normal
	Positions  []float64
	Numerical  []float64
	Analytical []float64
	RMSE       float64

	NonFinite int
	Image     string
}

// Validate solves the field of the first wire between the action's start
// and end points and compares it with the on-axis solution for its shape.
// The points are expected to lie on the loop axis. A plot is exported
// unless neither the action nor the runner names an output location.
func (r *Runner) Validate(ctx context.Context, a config.Action, wires *wire.Collection) (*ValidationResult, error) {
	shape, err := wire.ParseShape(a.Shape)
	if err != nil {
		return nil, err
	}
	if wires.Len() == 0 {
		return nil, fmt.Errorf("no coils to validate")
	}
	if a.StartPoint == nil || a.EndPoint == nil {
		return nil, fmt.Errorf("start point and end point are required")
	}

	w := wires.Wires()[0]
	if w.Shape != shape {
		return nil, fmt.Errorf("first coil %q is a %s, not a %s", w.Name, w.Shape, shape)
	}
	if wires.Len() > 1 {
		r.Logger.Warn("validation compares against a single loop; other coils are ignored",
			zap.Int("coils", wires.Len()))
	}

	points, err := solver.Line(a.StartPoint.Vec(), a.EndPoint.Vec(), a.NumberOfPoints)
	if err != nil {
		return nil, err
	}

	single := wire.NewCollection()
	single.Add(w)
	field, err := r.Solver.Solve(ctx, single, points)
	if err != nil {
		return nil, err
	}

	normal := w.Orientation.Normal()
	res := &ValidationResult{
		Wire:      w,
		Positions: make([]float64, len(points)),
		Numerical: solver.BAbs(field),
		NonFinite: len(field.NonFinite()),
	}
	for i, p := range points {
		res.Positions[i] = r3.Dot(r3.Sub(p, w.Centre), normal)
	}

	size := w.Radius
	if shape == wire.Square {
		size = w.SideLength
	}
	current := cmplx.Abs(w.EffectiveCurrent().Complex())
	res.Analytical, _ = physics.OnAxis(shape.String(), current, size, res.Positions)

	res.RMSE, err = solver.RMSE(res.Numerical, res.Analytical)
	if err != nil {
		return nil, err
	}

	title := fmt.Sprintf("Circular Loop Validation, Number of Points = %d", w.PointCount)
	if shape == wire.Square {
		title = fmt.Sprintf("Square Loop Validation, Discretization Length = %g", w.DL)
	}
	profile := diagram.ProfileData{
		Title:      title,
		Positions:  res.Positions,
		XLabel:     "z",
		Numerical:  res.Numerical,
		Analytical: res.Analytical,
		RMSE:       res.RMSE,
	}

	r.printValidation(res, title)
	if r.Chart {
		fmt.Fprintln(r.Out, diagram.DrawFieldProfile(profile, 60, 15))
	}

	if a.Output == "" && r.OutputDir == "" {
		return res, nil
	}
	res.Image = r.outputPath(a.Output, "validate-"+shape.String()+".png")
	if err := diagram.ExportFieldProfile(profile, res.Image); err != nil {
		return nil, fmt.Errorf("failed to export validation plot: %w", err)
	}
	res.Image = diagram.ImagePath(res.Image)
	fmt.Fprintf(r.Out, "\n  Plot exported to: %s\n\n", res.Image)
	return res, nil
}

func (r *Runner) printValidation(res *ValidationResult, title string) {
	out := r.Out
	fmt.Fprintln(out)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintf(out, "     %s\n", title)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out)

	fmt.Fprintln(out, "ON-AXIS FIELD:")
	fmt.Fprintln(out, rule)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  z (m)\tNumerical (T)\tAnalytical (T)\tRelative error")
	for i, z := range res.Positions {
		rel := 0.0
		if res.Analytical[i] != 0 {
			rel = (res.Numerical[i] - res.Analytical[i]) / res.Analytical[i]
		}
		fmt.Fprintf(w, "  %.4g\t%.6e\t%.6e\t%+.3e\n", z, res.Numerical[i], res.Analytical[i], rel)
	}
	w.Flush()
	fmt.Fprintln(out)

	lines := []string{
		fmt.Sprintf("Root Mean Square Error = %.3g T", res.RMSE),
		fmt.Sprintf("Samples                = %d", len(res.Positions)),
	}
	if res.NonFinite > 0 {
		lines = append(lines, fmt.Sprintf("Non-finite samples     = %d", res.NonFinite))
	}
	fmt.Fprint(out, diagram.DrawSummaryBox("VALIDATION RESULT", lines))
}

// PlotCoils exports a projection of every coil and returns the image path.
func (r *Runner) PlotCoils(a config.Action, wires *wire.Collection) (string, error) {
	plane := a.Plane
	if plane == "" {
		plane = "xy"
	}
	data := diagram.CoilsData{
		Coils:     coilPaths(wires),
		Plane:     plane,
		AxesEqual: a.AxesEqual.Value,
	}

	// Horizontal and vertical limits come from the plane's two axes
	lims := map[byte][]float64{'x': a.XLim, 'y': a.YLim, 'z': a.ZLim}
	if len(plane) == 2 {
		if lim, ok := config.Lim(lims[plane[0]]); ok {
			data.XLim = &lim
		}
		if lim, ok := config.Lim(lims[plane[1]]); ok {
			data.YLim = &lim
		}
	}

	path := r.outputPath(a.Output, "coils.png")
	if err := diagram.ExportCoils(data, path); err != nil {
		return "", fmt.Errorf("failed to export coil plot: %w", err)
	}
	path = diagram.ImagePath(path)
	fmt.Fprintf(r.Out, "  Coil plot exported to: %s\n", path)
	return path, nil
}

// SliceResult is |B| over a regular xy grid.
type SliceResult struct {
	Grid      *solver.Grid
	B         []float64
	NonFinite int
	Image     string
}

// SliceXY solves |B| over an xy grid at height a.Z and exports it as a heat
// map.
func (r *Runner) SliceXY(ctx context.Context, a config.Action, wires *wire.Collection) (*SliceResult, error) {
	xlim, ok := config.Lim(a.XLim)
	if !ok {
		return nil, fmt.Errorf("xlim is required")
	}
	ylim, ok := config.Lim(a.YLim)
	if !ok {
		return nil, fmt.Errorf("ylim is required")
	}

	grid, err := solver.NewGridXY(xlim, ylim, a.Z, a.NumberOfPoints)
	if err != nil {
		return nil, err
	}
	field, err := r.Solver.Solve(ctx, wires, grid.Points())
	if err != nil {
		return nil, err
	}

	res := &SliceResult{
		Grid:      grid,
		B:         solver.BAbs(field),
		NonFinite: len(field.NonFinite()),
	}

	res.Image = r.outputPath(a.Output, "slice-xy.png")
	err = diagram.ExportSliceXY(diagram.SliceData{
		Xs:        grid.Xs,
		Ys:        grid.Ys,
		Z:         grid.Z,
		B:         res.B,
		Coils:     coilPaths(wires),
		AxesEqual: a.AxesEqual.Value,
	}, res.Image)
	if err != nil {
		return nil, fmt.Errorf("failed to export slice: %w", err)
	}
	res.Image = diagram.ImagePath(res.Image)

	lines := []string{
		fmt.Sprintf("Grid       = %d × %d at z = %g m", len(grid.Xs), len(grid.Ys), grid.Z),
		fmt.Sprintf("|B| max    = %.4e T", floats.Max(res.B)),
		fmt.Sprintf("|B| min    = %.4e T", floats.Min(res.B)),
	}
	if res.NonFinite > 0 {
		lines = append(lines, fmt.Sprintf("Non-finite = %d", res.NonFinite))
	}
	fmt.Fprintln(r.Out)
	fmt.Fprint(r.Out, diagram.DrawSummaryBox("XY SLICE", lines))
	fmt.Fprintf(r.Out, "\n  Slice exported to: %s\n\n", res.Image)
	return res, nil
}

func coilPaths(wires *wire.Collection) []diagram.CoilPath {
	paths := make([]diagram.CoilPath, 0, wires.Len())
	for _, w := range wires.Wires() {
		paths = append(paths, diagram.CoilPath{Name: w.Name, Points: w.Points()})
	}
	return paths
}

// outputPath resolves an action's output file against the runner's
// directory.
func (r *Runner) outputPath(name, fallback string) string {
	if name == "" {
		name = fallback
	}
	if filepath.IsAbs(name) || r.OutputDir == "" {
		return name
	}
	return filepath.Join(r.OutputDir, name)
}
