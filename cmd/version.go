package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gobiot/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gobiot",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
		fmt.Println("Biot-Savart magnetic field solver for wire loops")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
