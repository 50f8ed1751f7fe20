package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"rocketsim/internal/config"
	"rocketsim/internal/control"
	"rocketsim/internal/flight"
	"rocketsim/internal/logging"
	"rocketsim/internal/sim"
	"rocketsim/internal/telemetry"
	"rocketsim/internal/weather"
)

var (
	predictConfigPath string
	predictSchemaPath string
	predictOutFile    string
	predictPrintOnly  bool
	predictPlay       bool
	predictSpeed      float64
	predictMode       string
	predictInterval   time.Duration
	predictControl    string
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(18)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict a rocket flight trajectory",
	Long:  "predict simulates a full flight from the configured rocket, site and weather, prints a summary and optionally plays the telemetry back in real time.",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		cfg, err := config.Load(predictConfigPath, predictSchemaPath)
		if err != nil {
			return err
		}
		rec, err := cfg.RecoveryDevice()
		if err != nil {
			return err
		}
		mode, err := parseMode(predictMode, cfg)
		if err != nil {
			return err
		}

		wx := cfg.WeatherData()
		res, err := flight.Predict(cfg.RocketParams(), rec, cfg.LaunchSite(), wx, flight.Options{
			Terrain:     cfg.Terrain(),
			Uncertainty: cfg.WindUncertainty(),
		})
		if err != nil {
			return err
		}
		logger = logging.WithFlight(logger, res.FlightID)
		logger.Info("prediction complete",
			"points", len(res.Points),
			"apogee_m", res.Stats.MaxAltitudeM,
			"flight_time_s", res.Stats.FlightTimeS)

		fmt.Println(renderSummary(res))

		writer, eventWriter, cleanup, err := newWriters(predictPrintOnly, predictOutFile, logger)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := writeEvents(eventWriter, res); err != nil {
			return err
		}

		if !predictPlay {
			return writeTrajectory(writer, res, cfg, mode, wx)
		}
		return playLive(writer, res, cfg, mode, wx, logger)
	},
}

func parseMode(flagVal string, cfg *config.FlightConfig) (telemetry.Mode, error) {
	val := flagVal
	if val == "" {
		val = cfg.Playback.Mode
	}
	switch telemetry.Mode(val) {
	case telemetry.ModeGPS, telemetry.ModeAltitudeOnly, telemetry.ModeNone:
		return telemetry.Mode(val), nil
	case "":
		return telemetry.ModeGPS, nil
	default:
		return "", fmt.Errorf("unknown telemetry mode %q", val)
	}
}

func renderSummary(res *flight.Result) string {
	line := func(label, format string, args ...any) string {
		return labelStyle.Render(label) + valueStyle.Render(fmt.Sprintf(format, args...))
	}
	s := res.Stats
	fp := res.Footprint
	rows := []string{
		titleStyle.Render("Flight " + res.FlightID),
		line("Apogee", "%.1f m AGL at t=%.2f s", s.MaxAltitudeM, s.ApogeeTimeS),
		line("Max velocity", "%.1f m/s", s.MaxVelocityMPS),
		line("Burnout", "%.1f m AGL at t=%.2f s", s.BurnoutAltitudeM, s.BurnoutTimeS),
		line("Flight time", "%.1f s", s.FlightTimeS),
		line("Landing", "%.6f, %.6f", res.Landing.Latitude, res.Landing.Longitude),
		line("Drift", "%.1f m at %.0f°", s.LandingDistanceM, s.LandingBearingDeg),
		line("Landing speed", "%.1f m/s", s.LandingVelocityMPS),
		line("Footprint", "%.0f m x %.0f m ellipse, %.0f%% confidence",
			fp.SemiMajor, fp.SemiMinor, fp.Confidence*100),
	}
	return strings.Join(rows, "\n")
}

func writeEvents(w sim.EventWriter, res *flight.Result) error {
	events := telemetry.EventsFromResult(res, time.Now())
	if bw, ok := w.(interface {
		WriteEvents([]telemetry.FlightEventRow) error
	}); ok {
		return bw.WriteEvents(events)
	}
	for _, e := range events {
		if err := w.WriteEvent(e); err != nil {
			return err
		}
	}
	return nil
}

// writeTrajectory dumps the whole predicted flight as telemetry rows at once.
func writeTrajectory(w sim.TelemetryWriter, res *flight.Result, cfg *config.FlightConfig, mode telemetry.Mode, wx weather.Data) error {
	sampler := telemetry.Sampler{
		FlightID: res.FlightID,
		Mode:     mode,
		Site:     cfg.LaunchSite(),
		Atmos:    wx.Atmosphere(),
	}
	now := time.Now()
	rows := make([]telemetry.TelemetryRow, 0, len(res.Points))
	for _, pt := range res.Points {
		rows = append(rows, sampler.Sample(pt, now.Add(time.Duration(pt.TimeS*float64(time.Second)))))
	}
	if bw, ok := w.(interface {
		WriteBatch([]telemetry.TelemetryRow) error
	}); ok {
		return bw.WriteBatch(rows)
	}
	for _, r := range rows {
		if err := w.Write(r); err != nil {
			return err
		}
	}
	return nil
}

// playLive streams the prediction through the playback engine at wall-clock
// pace until it completes or the process is interrupted.
func playLive(w sim.TelemetryWriter, res *flight.Result, cfg *config.FlightConfig, mode telemetry.Mode, wx weather.Data, logger *slog.Logger) error {
	interval, err := cfg.UpdateInterval()
	if err != nil {
		return err
	}
	if predictInterval > 0 {
		interval = predictInterval
	}

	p := sim.NewPlayback(sim.SystemClock, interval, wx.Atmosphere(), logger)
	unsubscribe := p.Subscribe(func(row telemetry.TelemetryRow) {
		if err := w.Write(row); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	})
	defer unsubscribe()

	p.Start(res, cfg.LaunchSite(), mode)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if predictControl != "" {
		srv := control.NewServer(p)
		go func() {
			logger.Info("control server listening", "addr", predictControl)
			if err := srv.Start(ctx, predictControl); err != nil && err != http.ErrServerClosed {
				logger.Error("control server failed", "error", err)
			}
		}()
	}

	speed := predictSpeed
	if speed <= 0 && cfg.Playback.Speed > 0 {
		speed = cfg.Playback.Speed
	}
	if speed > 0 && speed != 1 {
		p.SetSpeed(speed)
	}
	logger.Info("playback started", "speed", p.Speed(), "total_s", p.TotalTime())

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	poll := time.NewTicker(50 * time.Millisecond)
	defer poll.Stop()
	for {
		select {
		case <-sigs:
			p.Stop()
			logger.Info("playback interrupted")
			return nil
		case <-poll.C:
			if p.Status() == sim.StatusCompleted {
				logger.Info("playback complete")
				return nil
			}
		}
	}
}

func init() {
	predictCmd.Flags().StringVar(&predictConfigPath, "config", "config/flight.yaml", "Path to flight configuration YAML")
	predictCmd.Flags().StringVar(&predictSchemaPath, "schema", "schemas/flight.cue", "Path to CUE schema file")
	predictCmd.Flags().StringVar(&predictOutFile, "out", "", "Path to export telemetry log (JSONL)")
	predictCmd.Flags().BoolVar(&predictPrintOnly, "print-only", false, "Print telemetry to STDOUT instead of writing to DB")
	predictCmd.Flags().BoolVar(&predictPlay, "play", false, "Play telemetry back in real time instead of dumping it")
	predictCmd.Flags().Float64Var(&predictSpeed, "speed", 0, "Playback speed multiplier (0 uses config default)")
	predictCmd.Flags().StringVar(&predictMode, "mode", "", "Telemetry mode: gps, altitude_only or none (default from config)")
	predictCmd.Flags().DurationVar(&predictInterval, "tick", 0, "Playback update interval (e.g. 100ms)")
	predictCmd.Flags().StringVar(&predictControl, "control", "", "Address for the playback control API (e.g. :8080, empty disables)")
}
