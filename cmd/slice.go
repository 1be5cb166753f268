package cmd

import (
	"fmt"
	"os"

	"github.com/alexiusacademia/gobiot/internal/action"
	"github.com/alexiusacademia/gobiot/internal/config"
	"github.com/spf13/cobra"
)

var (
	sliceFile       string
	sliceXLim       = limFlag{-1, 1}
	sliceYLim       = limFlag{-1, 1}
	sliceZ          float64
	slicePoints     int
	sliceAxesEqual  bool
	sliceExportFile string
)

var sliceCmd = &cobra.Command{
	Use:   "slice",
	Short: "Plot |B| over an xy slice as a heat map",
	Long: `Compute the field magnitude over an n×n grid in the plane z = const
and export it as a heat map with the coils drawn on top.

Examples:
  gobiot slice -f coils.json --xlim -2,2 --ylim -2,2 --z 0.5 -n 60 -o slice.png
  gobiot slice -f helmholtz.yaml --axes-equal`,
	Run: runSlice,
}

func init() {
	rootCmd.AddCommand(sliceCmd)

	sliceCmd.Flags().StringVarP(&sliceFile, "file", "f", "", "Path to coil file (json or yaml) [required]")
	sliceCmd.Flags().Var(&sliceXLim, "xlim", "x range of the slice (m)")
	sliceCmd.Flags().Var(&sliceYLim, "ylim", "y range of the slice (m)")
	sliceCmd.Flags().Float64Var(&sliceZ, "z", 0, "Height of the slice (m)")
	sliceCmd.Flags().IntVarP(&slicePoints, "points", "n", 50, "Grid points per axis")
	sliceCmd.Flags().BoolVar(&sliceAxesEqual, "axes-equal", false, "Use the same scale on both axes")
	sliceCmd.Flags().StringVarP(&sliceExportFile, "output", "o", "slice-xy.png", "Export heat map to file (png, svg, pdf)")
	sliceCmd.MarkFlagRequired("file")
}

func runSlice(cmd *cobra.Command, args []string) {
	_, wires, err := loadWires(sliceFile)
	if err != nil {
		fmt.Printf("Error loading coils: %v\n", err)
		return
	}

	runner := action.NewRunner(newSolver(), os.Stdout, "", logger)
	res, err := runner.SliceXY(cmd.Context(), config.Action{
		Name:           config.ActionSliceXY,
		XLim:           sliceXLim[:],
		YLim:           sliceYLim[:],
		Z:              sliceZ,
		NumberOfPoints: slicePoints,
		AxesEqual:      config.Flag{Set: sliceAxesEqual, Value: sliceAxesEqual},
		Output:         sliceExportFile,
	}, wires)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	if res.NonFinite > 0 {
		fmt.Printf("  ⚠ %d grid point(s) lie on a wire and were left blank.\n\n", res.NonFinite)
	}
}
