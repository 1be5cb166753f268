package cmd

import (
	"fmt"
	"math/cmplx"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/gobiot/internal/diagram"
	"github.com/alexiusacademia/gobiot/internal/solver"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

var fieldCmd = &cobra.Command{
	Use:   "field",
	Short: "Compute the magnetic field of the coils in a coil file",
	Long: `Compute the magnetic field B of every coil in a coil file,
superposed, at chosen observation points.

Subcommands:
  line   - Sample B at evenly spaced points along a line
  point  - Evaluate B at a single point`,
}

var (
	fieldLineFile        string
	fieldLineStart       = vecFlag{}
	fieldLineEnd         = vecFlag{Z: 1}
	fieldLinePoints      int
	fieldLineShowDiagram bool
	fieldLineExportFile  string
)

var fieldLineCmd = &cobra.Command{
	Use:   "line",
	Short: "Sample the field along a line",
	Long: `Sample the magnetic field at evenly spaced points from --start
to --end inclusive.

Examples:
  gobiot field line -f coils.json --start 0,0,0.1 --end 0,0,5 -n 50
  gobiot field line -f coils.json --end 2,0,0 --diagram -o profile.png`,
	Run: runFieldLine,
}

var (
	fieldPointFile string
	fieldPointAt   vecFlag
)

var fieldPointCmd = &cobra.Command{
	Use:   "point",
	Short: "Evaluate the field at a single point",
	Long: `Evaluate the complex field vector at one observation point.

Examples:
  gobiot field point -f coils.json --at 0,0,0.5`,
	Run: runFieldPoint,
}

func init() {
	rootCmd.AddCommand(fieldCmd)
	fieldCmd.AddCommand(fieldLineCmd)
	fieldCmd.AddCommand(fieldPointCmd)

	fieldLineCmd.Flags().StringVarP(&fieldLineFile, "file", "f", "", "Path to coil file (json or yaml) [required]")
	fieldLineCmd.Flags().Var(&fieldLineStart, "start", "Start point of the line (m)")
	fieldLineCmd.Flags().Var(&fieldLineEnd, "end", "End point of the line (m)")
	fieldLineCmd.Flags().IntVarP(&fieldLinePoints, "points", "n", 50, "Number of sample points")
	fieldLineCmd.MarkFlagRequired("file")

	// Diagram options
	fieldLineCmd.Flags().BoolVar(&fieldLineShowDiagram, "diagram", false, "Show ASCII field profile")
	fieldLineCmd.Flags().StringVarP(&fieldLineExportFile, "output", "o", "", "Export profile to file (png, svg, pdf)")

	fieldPointCmd.Flags().StringVarP(&fieldPointFile, "file", "f", "", "Path to coil file (json or yaml) [required]")
	fieldPointCmd.Flags().Var(&fieldPointAt, "at", "Observation point (m) [required]")
	fieldPointCmd.MarkFlagRequired("file")
	fieldPointCmd.MarkFlagRequired("at")
}

func runFieldLine(cmd *cobra.Command, args []string) {
	_, wires, err := loadWires(fieldLineFile)
	if err != nil {
		fmt.Printf("Error loading coils: %v\n", err)
		return
	}

	points, err := solver.Line(fieldLineStart.Vec(), fieldLineEnd.Vec(), fieldLinePoints)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	field, err := newSolver().Solve(cmd.Context(), wires, points)
	if err != nil {
		fmt.Printf("Error solving field: %v\n", err)
		return
	}
	b := solver.BAbs(field)

	// Distance of every sample from the start point
	s := make([]float64, len(points))
	for i, p := range points {
		s[i] = r3.Norm(r3.Sub(p, points[0]))
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     MAGNETIC FIELD ALONG LINE")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Coils:\t%d\n", wires.Len())
	fmt.Fprintf(w, "  From:\t(%g, %g, %g) m\n", points[0].X, points[0].Y, points[0].Z)
	last := points[len(points)-1]
	fmt.Fprintf(w, "  To:\t(%g, %g, %g) m\n", last.X, last.Y, last.Z)
	fmt.Fprintf(w, "  Samples:\t%d\n", len(points))
	w.Flush()
	fmt.Println()

	fmt.Println("FIELD SAMPLES:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  #\tx (m)\ty (m)\tz (m)\t|B| (T)\n")
	fmt.Fprintf(w, "  ─\t─────\t─────\t─────\t───────\n")
	for i, p := range points {
		fmt.Fprintf(w, "  %d\t%.4g\t%.4g\t%.4g\t%.6e\n", i+1, p.X, p.Y, p.Z, b[i])
	}
	w.Flush()
	fmt.Println()

	warnNonFinite(field)

	fmt.Print(diagram.DrawSummaryBox("FIELD SUMMARY", []string{
		fmt.Sprintf("|B| max = %.4e T", floats.Max(b)),
		fmt.Sprintf("|B| min = %.4e T", floats.Min(b)),
	}))
	fmt.Println()

	profile := diagram.ProfileData{
		Title:     "Magnetic Field Along Line",
		Positions: s,
		XLabel:    "s",
		Numerical: b,
	}
	if fieldLineShowDiagram {
		fmt.Println(diagram.DrawFieldProfile(profile, 60, 15))
	}

	if fieldLineExportFile != "" {
		if err := diagram.ExportFieldProfile(profile, fieldLineExportFile); err != nil {
			fmt.Printf("Error exporting profile: %v\n", err)
		} else {
			fmt.Printf("  Profile exported to: %s\n", diagram.ImagePath(fieldLineExportFile))
		}
		fmt.Println()
	}
}

func runFieldPoint(cmd *cobra.Command, args []string) {
	_, wires, err := loadWires(fieldPointFile)
	if err != nil {
		fmt.Printf("Error loading coils: %v\n", err)
		return
	}

	p := fieldPointAt.Vec()
	field, err := newSolver().Solve(cmd.Context(), wires, []r3.Vec{p})
	if err != nil {
		fmt.Printf("Error solving field: %v\n", err)
		return
	}
	b := field[0]

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("     MAGNETIC FIELD AT (%g, %g, %g) m\n", p.X, p.Y, p.Z)
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("FIELD COMPONENTS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  \tRe (T)\tIm (T)\t|·| (T)\n")
	for _, c := range []struct {
		name string
		v    complex128
	}{{"Bx", b.X}, {"By", b.Y}, {"Bz", b.Z}} {
		fmt.Fprintf(w, "  %s\t%+.6e\t%+.6e\t%.6e\n", c.name, real(c.v), imag(c.v), cmplx.Abs(c.v))
	}
	w.Flush()
	fmt.Println()

	warnNonFinite(field)

	fmt.Print(diagram.DrawSummaryBox("RESULT", []string{
		fmt.Sprintf("|B| = %.6e T", b.Magnitude()),
	}))
	fmt.Println()
}

func warnNonFinite(field solver.Field) {
	if bad := field.NonFinite(); len(bad) > 0 {
		fmt.Printf("  ⚠ %d sample(s) are not finite; the first is #%d. Points on a wire are singular.\n\n",
			len(bad), bad[0]+1)
	}
}
