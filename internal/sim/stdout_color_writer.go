// ColorStdoutWriter prints human-friendly, colorized telemetry to STDOUT.
package sim

import (
	"fmt"
	"io"
	"os"
	"time"

	"rocketsim/internal/telemetry"
)

const (
	colorReset   = "\x1b[0m"
	colorRed     = "\x1b[31m"
	colorGreen   = "\x1b[32m"
	colorYellow  = "\x1b[33m"
	colorBlue    = "\x1b[34m"
	colorMagenta = "\x1b[35m"
	colorCyan    = "\x1b[36m"
	colorGray    = "\x1b[90m"
)

// ColorStdoutWriter prints telemetry rows using ANSI colors, one line per
// sample.
type ColorStdoutWriter struct {
	out io.Writer
}

// NewColorStdoutWriter creates a ColorStdoutWriter writing to os.Stdout.
func NewColorStdoutWriter() *ColorStdoutWriter {
	return &ColorStdoutWriter{out: os.Stdout}
}

func phaseColor(phase string) string {
	switch phase {
	case "thrust":
		return colorRed
	case "coast":
		return colorYellow
	default:
		return colorCyan
	}
}

// Write outputs a single telemetry row in colorized format.
func (w *ColorStdoutWriter) Write(row telemetry.TelemetryRow) error {
	fmt.Fprintf(w.out, "%s[%s]%s ", colorGray, row.Timestamp.Format(time.RFC3339), colorReset)
	fmt.Fprintf(w.out, "%sflight=%s%s ", colorBlue, row.FlightID, colorReset)
	fmt.Fprintf(w.out, "%st=%.1fs%s ", colorGreen, row.FlightTimeS, colorReset)
	fmt.Fprintf(w.out, "%s%s%s", phaseColor(row.Phase), row.Phase, colorReset)
	if row.AltitudeM != nil {
		fmt.Fprintf(w.out, " %salt=%.1f%s", colorMagenta, *row.AltitudeM, colorReset)
	}
	if row.VelocityMPS != nil {
		fmt.Fprintf(w.out, " %sspd=%.1f%s", colorYellow, *row.VelocityMPS, colorReset)
	}
	if row.Lat != nil && row.Lon != nil {
		fmt.Fprintf(w.out, " %spos=(%.5f,%.5f)%s", colorGreen, *row.Lat, *row.Lon, colorReset)
	}
	if row.TemperatureC != nil && row.PressureHPa != nil {
		fmt.Fprintf(w.out, " %s%.1fC %.1fhPa%s", colorGray, *row.TemperatureC, *row.PressureHPa, colorReset)
	}
	fmt.Fprintln(w.out)
	return nil
}

// WriteBatch outputs multiple telemetry rows.
func (w *ColorStdoutWriter) WriteBatch(rows []telemetry.TelemetryRow) error {
	for _, r := range rows {
		_ = w.Write(r)
	}
	return nil
}

// WriteEvent prints a flight milestone to STDOUT.
func (w *ColorStdoutWriter) WriteEvent(e telemetry.FlightEventRow) error {
	fmt.Fprintf(w.out, "%s[%s]%s %sEVENT%s %s t=%.2fs alt=%.1fm\n",
		colorGray, e.Timestamp.Format(time.RFC3339), colorReset,
		colorRed, colorReset, e.Event, e.FlightTimeS, e.AltitudeM)
	return nil
}

// WriteEvents prints multiple flight milestones.
func (w *ColorStdoutWriter) WriteEvents(rows []telemetry.FlightEventRow) error {
	for _, e := range rows {
		_ = w.WriteEvent(e)
	}
	return nil
}
