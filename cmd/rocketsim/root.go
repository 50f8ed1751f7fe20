package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"rocketsim/internal/logging"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "rocketsim",
	Short: "Model rocket flight prediction toolkit",
	Long:  "Rocketsim predicts model rocket trajectories from motor, airframe and weather data, and plays the result back as live telemetry.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return logging.New(level)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(playCmd)
}
