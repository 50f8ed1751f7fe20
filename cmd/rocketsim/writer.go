package main

import (
	"log/slog"
	"os"

	"rocketsim/internal/sim"
)

// newWriters sets up telemetry and event writers based on flags and env vars.
// It returns the writers and a cleanup function to close any resources.
func newWriters(printOnly bool, outFile string, logger *slog.Logger) (sim.TelemetryWriter, sim.EventWriter, func(), error) {
	cleanup := func() {}

	writer, eventWriter, err := baseWriters(printOnly, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	if outFile == "" {
		return writer, eventWriter, cleanup, nil
	}

	fw, err := sim.NewFileWriter(outFile, outFile+".events")
	if err != nil {
		return nil, nil, nil, err
	}
	mw := sim.NewMultiWriter(
		[]sim.TelemetryWriter{writer, fw},
		[]sim.EventWriter{eventWriter, fw},
	)
	cleanup = func() { fw.Close() }
	return mw, mw, cleanup, nil
}

// baseWriters chooses the underlying writers based on printOnly flag and env vars.
func baseWriters(printOnly bool, logger *slog.Logger) (sim.TelemetryWriter, sim.EventWriter, error) {
	if printOnly || os.Getenv("GREPTIMEDB_ENDPOINT") == "" {
		w := sim.NewColorStdoutWriter()
		return w, w, nil
	}

	endpoint := os.Getenv("GREPTIMEDB_ENDPOINT")
	database := os.Getenv("GREPTIMEDB_DATABASE")
	if database == "" {
		database = "public"
	}
	table := os.Getenv("GREPTIMEDB_TABLE")
	eventTable := os.Getenv("FLIGHT_EVENT_TABLE")
	w, err := sim.NewGreptimeDBWriter(endpoint, database, table, eventTable, logger)
	if err != nil {
		return nil, nil, err
	}
	return w, w, nil
}

// newTelemetryWriter creates a telemetry writer without event handling.
func newTelemetryWriter(printOnly bool, logger *slog.Logger) (sim.TelemetryWriter, error) {
	w, _, _, err := newWriters(printOnly, "", logger)
	return w, err
}
