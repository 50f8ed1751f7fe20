package main

import (
	"github.com/spf13/cobra"

	"rocketsim/internal/sim"
)

var (
	playInput     string
	playSpeed     float64
	playPrintOnly bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Replay a telemetry log file",
	Long:  "play feeds telemetry rows from a recorded log back into GreptimeDB or STDOUT, paced by their original timestamps.",
	RunE: func(cmd *cobra.Command, args []string) error {
		writer, err := newTelemetryWriter(playPrintOnly, newLogger())
		if err != nil {
			return err
		}
		return sim.ReplayLogFile(playInput, writer, playSpeed)
	},
}

func init() {
	playCmd.Flags().StringVar(&playInput, "input", "", "Path to telemetry log file")
	playCmd.Flags().Float64Var(&playSpeed, "speed", 1.0, "Playback speed multiplier")
	playCmd.Flags().BoolVar(&playPrintOnly, "print-only", false, "Print telemetry to STDOUT instead of writing to DB")
	playCmd.MarkFlagRequired("input")
}
