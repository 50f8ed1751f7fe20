package sim

import (
	"context"
	"log/slog"
	"net"
	"strconv"

	"rocketsim/internal/telemetry"

	gpb "github.com/GreptimeTeam/greptime-proto/go/greptime/v1"
	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"
)

// greptimeClient is the slice of the ingester client the writer needs,
// extracted so tests can swap in a mock.
type greptimeClient interface {
	Write(ctx context.Context, tables ...*table.Table) (*gpb.GreptimeResponse, error)
}

// GreptimeDBWriter writes telemetry and flight events to GreptimeDB via the
// ingester client.
type GreptimeDBWriter struct {
	client     greptimeClient
	teleTable  string
	eventTable string
	logger     *slog.Logger
}

// NewGreptimeDBWriter creates a GreptimeDB writer for the given endpoint
// (host:port) and database. Empty table names fall back to the defaults.
func NewGreptimeDBWriter(endpoint, database, teleTable, eventTable string, logger *slog.Logger) (*GreptimeDBWriter, error) {
	host, portStr, err := net.SplitHostPort(endpoint)
	if err != nil {
		host = endpoint
		portStr = "4001"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		port = 4001
	}
	cfg := greptime.NewConfig(host).WithPort(port).WithDatabase(database)
	client, err := greptime.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	if teleTable == "" {
		teleTable = telemetry.TelemetryTableName
	}
	if eventTable == "" {
		eventTable = telemetry.EventTableName
	}
	return &GreptimeDBWriter{
		client:     client,
		teleTable:  teleTable,
		eventTable: eventTable,
		logger:     logger,
	}, nil
}

// Write inserts a single telemetry row.
func (w *GreptimeDBWriter) Write(row telemetry.TelemetryRow) error {
	return w.WriteBatch([]telemetry.TelemetryRow{row})
}

// WriteBatch inserts multiple telemetry rows.
func (w *GreptimeDBWriter) WriteBatch(rows []telemetry.TelemetryRow) error {
	if len(rows) == 0 {
		return nil
	}

	tbl, err := table.New(w.teleTable)
	if err != nil {
		return err
	}
	tbl.AddTagColumn("flight_id", types.STRING)
	tbl.AddFieldColumn("mode", types.STRING)
	tbl.AddFieldColumn("phase", types.STRING)
	tbl.AddFieldColumn("flight_time_s", types.FLOAT64)
	tbl.AddFieldColumn("lat", types.FLOAT64)
	tbl.AddFieldColumn("lon", types.FLOAT64)
	tbl.AddFieldColumn("altitude_m", types.FLOAT64)
	tbl.AddFieldColumn("velocity_mps", types.FLOAT64)
	tbl.AddFieldColumn("temperature_c", types.FLOAT64)
	tbl.AddFieldColumn("pressure_hpa", types.FLOAT64)
	tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND)

	for _, r := range rows {
		if err := tbl.AddRow(r.FlightID, string(r.Mode), r.Phase, r.FlightTimeS,
			optFloat(r.Lat), optFloat(r.Lon), optFloat(r.AltitudeM), optFloat(r.VelocityMPS),
			optFloat(r.TemperatureC), optFloat(r.PressureHPa), r.Timestamp); err != nil {
			return err
		}
	}

	if _, err := w.client.Write(context.Background(), tbl); err != nil {
		w.log().Error("greptime write failed", "err", err)
		return err
	}
	w.log().Debug("greptime write", "rows", len(rows), "table", w.teleTable)
	return nil
}

// WriteEvent inserts a single flight event row.
func (w *GreptimeDBWriter) WriteEvent(e telemetry.FlightEventRow) error {
	return w.WriteEvents([]telemetry.FlightEventRow{e})
}

// WriteEvents inserts multiple flight event rows.
func (w *GreptimeDBWriter) WriteEvents(rows []telemetry.FlightEventRow) error {
	if len(rows) == 0 {
		return nil
	}

	tbl, err := table.New(w.eventTable)
	if err != nil {
		return err
	}
	tbl.AddTagColumn("flight_id", types.STRING)
	tbl.AddFieldColumn("event", types.STRING)
	tbl.AddFieldColumn("flight_time_s", types.FLOAT64)
	tbl.AddFieldColumn("altitude_m", types.FLOAT64)
	tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND)

	for _, r := range rows {
		if err := tbl.AddRow(r.FlightID, r.Event, r.FlightTimeS, r.AltitudeM, r.Timestamp); err != nil {
			return err
		}
	}

	if _, err := w.client.Write(context.Background(), tbl); err != nil {
		w.log().Error("greptime event write failed", "err", err)
		return err
	}
	return nil
}

// log falls back to the default logger so zero-value writers stay usable.
func (w *GreptimeDBWriter) log() *slog.Logger {
	if w.logger != nil {
		return w.logger
	}
	return slog.Default()
}

func optFloat(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}
