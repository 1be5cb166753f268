package diagram

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ImagePath returns the file an export to filename writes: png, svg and
// pdf are kept, anything else gets a .png suffix.
func ImagePath(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".svg", ".pdf":
		return filename
	}
	return filename + ".png"
}

func save(p *plot.Plot, width, height vg.Length, filename string) error {
	// Create directory if needed
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	return p.Save(width, height, ImagePath(filename))
}

// ExportFieldProfile exports a field magnitude profile. The numerical
// solution is drawn as a line, the analytical one as markers.
func ExportFieldProfile(data ProfileData, filename string) error {
	if len(data.Positions) != len(data.Numerical) {
		return fmt.Errorf("profile has %d positions but %d samples", len(data.Positions), len(data.Numerical))
	}

	p := plot.New()
	p.Title.Text = data.Title
	p.X.Label.Text = axisName(data.XLabel) + " (m)"
	p.Y.Label.Text = "B (T)"
	p.Add(plotter.NewGrid())

	numerical, err := plotter.NewLine(xys(data.Positions, data.Numerical))
	if err != nil {
		return err
	}
	numerical.LineStyle.Width = vg.Points(2)
	numerical.LineStyle.Color = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	p.Add(numerical)
	p.Legend.Add("Numerical solution", numerical)

	if len(data.Analytical) == len(data.Positions) && len(data.Analytical) > 0 {
		analytical, err := plotter.NewScatter(xys(data.Positions, data.Analytical))
		if err != nil {
			return err
		}
		analytical.GlyphStyle.Color = color.RGBA{R: 255, G: 0, B: 0, A: 255}
		analytical.GlyphStyle.Radius = vg.Points(3)
		analytical.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(analytical)
		p.Legend.Add("Analytical solution", analytical)
	}
	p.Legend.Top = true

	if data.RMSE > 0 {
		xmin, xmax := span(data.Positions)
		ymin, ymax := span(data.Numerical)
		l, err := plotter.NewLabels(plotter.XYLabels{
			XYs:    []plotter.XY{{X: xmin + 0.55*(xmax-xmin), Y: ymin + 0.6*(ymax-ymin)}},
			Labels: []string{fmt.Sprintf("RMSE = %.3g T", data.RMSE)},
		})
		if err != nil {
			return err
		}
		p.Add(l)
	}

	return save(p, 8*vg.Inch, 6*vg.Inch, filename)
}

// SliceData holds |B| sampled on a regular grid in a plane of constant z.
type SliceData struct {
	Title string
	Xs    []float64
	Ys    []float64
	Z     float64

	// B[i*len(Ys)+j] is the sample at (Xs[i], Ys[j])
	B []float64

	// Coil outlines drawn over the heat map, projected onto the plane
	Coils     []CoilPath
	AxesEqual bool
}

// sliceGrid adapts SliceData to plotter.GridXYZ.
type sliceGrid struct {
	data SliceData
}

func (g sliceGrid) Dims() (c, r int) { return len(g.data.Xs), len(g.data.Ys) }
func (g sliceGrid) X(c int) float64 { return g.data.Xs[c] }
func (g sliceGrid) Y(r int) float64 { return g.data.Ys[r] }

// Z reports non-finite samples as NaN so they are drawn transparent.
func (g sliceGrid) Z(c, r int) float64 {
	z := g.data.B[c*len(g.data.Ys)+r]
	if math.IsInf(z, 0) {
		return math.NaN()
	}
	return z
}

// ExportSliceXY exports a heat map of |B| over an xy slice.
func ExportSliceXY(data SliceData, filename string) error {
	if len(data.Xs) < 2 || len(data.Ys) < 2 {
		return fmt.Errorf("slice needs at least 2×2 samples, got %d×%d", len(data.Xs), len(data.Ys))
	}
	if len(data.B) != len(data.Xs)*len(data.Ys) {
		return fmt.Errorf("slice has %d samples for a %d×%d grid", len(data.B), len(data.Xs), len(data.Ys))
	}

	lo, hi := finiteSpan(data.B)
	cm := moreland.ExtendedBlackBody()
	cm.SetMin(lo)
	cm.SetMax(hi)
	if hi <= lo {
		cm.SetMax(lo + 1)
	}

	p := plot.New()
	p.Title.Text = data.Title
	if p.Title.Text == "" {
		p.Title.Text = fmt.Sprintf("|B| at z = %.3g m (%.3g to %.3g T)", data.Z, lo, hi)
	}
	p.X.Label.Text = "x (m)"
	p.Y.Label.Text = "y (m)"

	heat := plotter.NewHeatMap(sliceGrid{data}, cm.Palette(255))
	heat.Min, heat.Max = cm.Min(), cm.Max()
	heat.NaN = color.Transparent
	p.Add(heat)

	if err := addCoils(p, data.Coils, "xy", false); err != nil {
		return err
	}

	p.X.Min, p.X.Max = data.Xs[0], data.Xs[len(data.Xs)-1]
	p.Y.Min, p.Y.Max = data.Ys[0], data.Ys[len(data.Ys)-1]
	width, height := 8*vg.Inch, 6*vg.Inch
	if data.AxesEqual {
		equalAxes(p)
		width = 6 * vg.Inch
	}

	return save(p, width, height, filename)
}

// CoilPath is the point sequence of one coil.
type CoilPath struct {
	Name   string
	Points []r3.Vec
}

// CoilsData holds the coils to draw and optional axis limits.
type CoilsData struct {
	Title string
	Coils []CoilPath

	// Projection plane: "xy", "xz" or "yz"
	Plane string

	XLim, YLim *[2]float64
	AxesEqual  bool
}

// ExportCoils exports the coils projected onto a coordinate plane.
func ExportCoils(data CoilsData, filename string) error {
	plane := data.Plane
	if plane == "" {
		plane = "xy"
	}
	if _, _, err := projection(plane); err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = data.Title
	if p.Title.Text == "" {
		p.Title.Text = fmt.Sprintf("Coils (%s projection)", plane)
	}
	p.X.Label.Text = string(plane[0]) + " (m)"
	p.Y.Label.Text = string(plane[1]) + " (m)"
	p.Add(plotter.NewGrid())

	if err := addCoils(p, data.Coils, plane, true); err != nil {
		return err
	}

	if data.XLim != nil {
		p.X.Min, p.X.Max = data.XLim[0], data.XLim[1]
	}
	if data.YLim != nil {
		p.Y.Min, p.Y.Max = data.YLim[0], data.YLim[1]
	}
	width, height := 8*vg.Inch, 6*vg.Inch
	if data.AxesEqual {
		equalAxes(p)
		width = 6 * vg.Inch
	}

	return save(p, width, height, filename)
}

// projection returns the coordinate accessors for a plane name.
func projection(plane string) (u, v func(r3.Vec) float64, err error) {
	get := map[byte]func(r3.Vec) float64{
		'x': func(p r3.Vec) float64 { return p.X },
		'y': func(p r3.Vec) float64 { return p.Y },
		'z': func(p r3.Vec) float64 { return p.Z },
	}
	if len(plane) != 2 || get[plane[0]] == nil || get[plane[1]] == nil || plane[0] == plane[1] {
		return nil, nil, fmt.Errorf("unknown projection plane %q", plane)
	}
	return get[plane[0]], get[plane[1]], nil
}

func addCoils(p *plot.Plot, coils []CoilPath, plane string, legend bool) error {
	u, v, err := projection(plane)
	if err != nil {
		return err
	}

	for i, c := range coils {
		pts := make(plotter.XYs, len(c.Points))
		for k, pt := range c.Points {
			pts[k] = plotter.XY{X: u(pt), Y: v(pt)}
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("coil %q: %w", c.Name, err)
		}
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Color = plotutil.Color(i)
		if !legend {
			line.LineStyle.Color = color.White
			line.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		}
		p.Add(line)

		if legend {
			name := c.Name
			if name == "" {
				name = fmt.Sprintf("coil %d", i+1)
			}
			p.Legend.Add(name, line)
		}
	}
	return nil
}

// equalAxes widens the shorter axis so both cover the same length.
func equalAxes(p *plot.Plot) {
	dx, dy := p.X.Max-p.X.Min, p.Y.Max-p.Y.Min
	switch {
	case dx > dy:
		mid := (p.Y.Min + p.Y.Max) / 2
		p.Y.Min, p.Y.Max = mid-dx/2, mid+dx/2
	case dy > dx:
		mid := (p.X.Min + p.X.Max) / 2
		p.X.Min, p.X.Max = mid-dy/2, mid+dy/2
	}
}

func xys(xs, ys []float64) plotter.XYs {
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i] = plotter.XY{X: xs[i], Y: ys[i]}
	}
	return pts
}

func span(v []float64) (lo, hi float64) {
	if len(v) == 0 {
		return 0, 0
	}
	lo, hi = v[0], v[0]
	for _, x := range v {
		lo, hi = math.Min(lo, x), math.Max(hi, x)
	}
	return lo, hi
}

// finiteSpan is span ignoring NaN and ±Inf samples.
func finiteSpan(v []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			continue
		}
		lo, hi = math.Min(lo, x), math.Max(hi, x)
	}
	if lo > hi {
		return 0, 0
	}
	return lo, hi
}
