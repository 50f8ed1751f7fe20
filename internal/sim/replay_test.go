package sim

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"rocketsim/internal/telemetry"
)

type collectWriter struct {
	rows   []telemetry.TelemetryRow
	events []telemetry.FlightEventRow
}

func (c *collectWriter) Write(r telemetry.TelemetryRow) error {
	c.rows = append(c.rows, r)
	return nil
}

func (c *collectWriter) WriteEvent(e telemetry.FlightEventRow) error {
	c.events = append(c.events, e)
	return nil
}

func TestReplayLog(t *testing.T) {
	rows := []telemetry.TelemetryRow{
		{FlightID: "f1", FlightTimeS: 0, Timestamp: time.Unix(0, 0)},
		{FlightID: "f1", FlightTimeS: 0.1, Timestamp: time.Unix(1, 0)},
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, r := range rows {
		if err := enc.Encode(r); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	cw := &collectWriter{}
	if err := ReplayLog(&buf, cw, 0); err != nil {
		t.Fatalf("ReplayLog: %v", err)
	}
	if len(cw.rows) != len(rows) {
		t.Fatalf("expected %d rows, got %d", len(rows), len(cw.rows))
	}
	for i, r := range rows {
		if cw.rows[i].FlightTimeS != r.FlightTimeS {
			t.Fatalf("row %d mismatch: %+v vs %+v", i, cw.rows[i], r)
		}
	}
}

func TestReplayLogBadJSON(t *testing.T) {
	cw := &collectWriter{}
	if err := ReplayLog(bytes.NewBufferString("{not json"), cw, 0); err == nil {
		t.Fatalf("expected a decode error")
	}
}
