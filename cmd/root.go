package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"

	"github.com/alexiusacademia/gobiot/internal/solver"
	"github.com/alexiusacademia/gobiot/internal/version"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	verbose bool
	workers int

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "gobiot",
	Short: "Biot-Savart magnetic field solver for wire loops",
	Long: `gobiot - Go Biot-Savart Field Solver

A CLI tool for computing the magnetic field of current-carrying
wire loops using a discretized form of the Biot-Savart law.

This tool helps you:
  - Build circular and square coils with any orientation
  - Compute B along lines, at points and over xy slices
  - Validate the solver against closed-form on-axis solutions
  - Run batches of actions from JSON or YAML coil files`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		if verbose {
			cfg.Level.SetLevel(zapcore.DebugLevel)
		}

		l, err := cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   gobiot v%-48s║\n", version.Version)
		fmt.Println("  ║   Go Biot-Savart Field Solver                             ║")
		fmt.Printf("  ║   %s ©  %-36s║\n", version.Author, version.Year)
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  A CLI tool for computing the magnetic field of")
		fmt.Println("  current-carrying wire loops (Biot-Savart law).")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Circular and square loops, multi-turn, phased currents")
		fmt.Println("    • Arbitrary loop orientation and placement")
		fmt.Println("    • Field along lines, at points and over xy slices")
		fmt.Println("    • Validation against closed-form on-axis solutions")
		fmt.Println()
		fmt.Println("  Use 'gobiot --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// newSolver returns a solver configured from the global flags.
func newSolver() *solver.Solver {
	return solver.New(solver.WithWorkers(workers), solver.WithLogger(logger))
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", runtime.NumCPU(), "Number of goroutines sharing the observation points")
}
