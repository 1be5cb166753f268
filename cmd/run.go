package cmd

import (
	"fmt"
	"os"

	"github.com/alexiusacademia/gobiot/internal/action"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	runFile      string
	runOutputDir string
	runChart     bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the actions listed in a coil file",
	Long: `Build the coils of a coil file and run its actions in order.

Supported actions:
  validate magnetic field  - Compare B on the loop axis with the closed form
  plot coils               - Export a projection of every coil
  plot slice xy            - Export a heat map of |B| over an xy slice

Actions with "execute": false are skipped.

Example action block:
  "actions": [
    {
      "name": "validate magnetic field",
      "execute": "yes",
      "shape": "circle",
      "start point": {"x": 0, "y": 0, "z": 0.1},
      "end point": {"x": 0, "y": 0, "z": 5},
      "number of points": 50
    },
    {
      "name": "plot slice xy",
      "xlim": [-2, 2],
      "ylim": [-2, 2],
      "z": 0.5,
      "axes equal": true,
      "number of points": 40
    }
  ]

Examples:
  gobiot run -f coils.json
  gobiot run -f coils.yaml -o plots/`,
	Run: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFile, "file", "f", "", "Path to coil file (json or yaml) [required]")
	runCmd.Flags().StringVarP(&runOutputDir, "output", "o", ".", "Directory for exported images")
	runCmd.Flags().BoolVar(&runChart, "diagram", true, "Show ASCII field profiles")
	runCmd.MarkFlagRequired("file")
}

func runRun(cmd *cobra.Command, args []string) {
	f, wires, err := loadWires(runFile)
	if err != nil {
		fmt.Printf("Error loading coils: %v\n", err)
		return
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("     GOBIOT - %s\n", runFile)
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("COILS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	if err := wires.PrintAll(os.Stdout); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	enabled := 0
	for _, a := range f.Actions {
		if a.Enabled() {
			enabled++
		}
	}
	if enabled == 0 {
		fmt.Println("  No actions to run.")
		fmt.Println()
		return
	}

	fmt.Printf("ACTIONS (%d of %d enabled):\n", enabled, len(f.Actions))
	fmt.Println("───────────────────────────────────────────────────────────────")

	runner := action.NewRunner(newSolver(), os.Stdout, runOutputDir, logger)
	runner.Chart = runChart
	if err := runner.Run(cmd.Context(), f.Actions, wires); err != nil {
		logger.Error("action failed", zap.Error(err))
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println("  Done.")
	fmt.Println()
}
