package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var coilCmd = &cobra.Command{
	Use:   "coil",
	Short: "Inspect coils defined in a coil file",
	Long: `Inspect the coils defined in a JSON or YAML coil file.

Subcommands:
  list  - Print every coil and its attributes

Example JSON file structure:
{
  "coils": [
    {
      "name": "Loop",
      "shape": "circle",
      "centre": {"x": 0, "y": 0, "z": 0},
      "radius": 1,
      "number of points": 200,
      "number of loops": 1,
      "orientation": {"theta": 0, "phi": 0, "angle unit": "degrees"},
      "current": {"modulus": 1, "phase": 0}
    },
    {
      "name": "Square",
      "shape": "square",
      "centre": {"x": 0, "y": 0, "z": 1},
      "side length": 2,
      "discretization length": 0.05,
      "number of loops": 10,
      "orientation": {"theta": 0, "phi": 90, "angle unit": "deg"},
      "current": {"modulus": 0.5, "phase": 0}
    }
  ]
}`,
}

var coilListFile string

var coilListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print every coil in a coil file",
	Long: `Build every coil in a coil file and print its attributes.

Examples:
  gobiot coil list --file coils.json
  gobiot coil list -f helmholtz.yaml`,
	Run: runCoilList,
}

func init() {
	rootCmd.AddCommand(coilCmd)
	coilCmd.AddCommand(coilListCmd)

	coilListCmd.Flags().StringVarP(&coilListFile, "file", "f", "", "Path to coil file (json or yaml) [required]")
	coilListCmd.MarkFlagRequired("file")
}

func runCoilList(cmd *cobra.Command, args []string) {
	_, wires, err := loadWires(coilListFile)
	if err != nil {
		fmt.Printf("Error loading coils: %v\n", err)
		return
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("     COILS - %s\n", coilListFile)
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	if err := wires.PrintAll(os.Stdout); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("  Total: %d coil(s)\n", wires.Len())
	fmt.Println()
}
