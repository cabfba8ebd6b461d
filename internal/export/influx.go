package export

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/ime-grupo10/vibration-monitor/internal/model"
)

// InfluxConfig mirrors the usual client settings.
type InfluxConfig struct {
	URL    string
	Token  string
	Org    string
	Bucket string

	// Measurement for reading points; "vibration" when empty.
	Measurement string
}

// InfluxExporter writes a snapshot to InfluxDB on explicit export: one
// point per reading plus one summary point carrying the statistics and
// one point per alert event. It does not stream; it only runs when an
// export is requested.
type InfluxExporter struct {
	writeAPI    api.WriteAPIBlocking
	measurement string
	timeout     time.Duration
}

func NewInfluxExporter(cfg InfluxConfig) (*InfluxExporter, error) {
	if cfg.URL == "" || cfg.Token == "" || cfg.Org == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("influx config incomplete")
	}
	measurement := cfg.Measurement
	if measurement == "" {
		measurement = "vibration"
	}
	client := influxdb2.NewClient(cfg.URL, cfg.Token)
	return &InfluxExporter{
		writeAPI:    client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		measurement: sanitizeMeasurement(measurement),
		timeout:     10 * time.Second,
	}, nil
}

func (e *InfluxExporter) Export(snap model.Snapshot) error {
	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()

	tags := map[string]string{
		"sensor_id": snap.SensorID,
		"unit":      snap.Unit,
	}

	for _, r := range snap.Readings {
		point := influxdb2.NewPoint(e.measurement, tags,
			map[string]interface{}{"value": r.Value}, r.Timestamp)
		if err := e.writeAPI.WritePoint(ctx, point); err != nil {
			return fmt.Errorf("influx export: %w", err)
		}
	}

	for _, ev := range snap.Events {
		point := influxdb2.NewPoint("vibration_alert",
			map[string]string{
				"sensor_id":  snap.SensorID,
				"transition": string(ev.Transition),
			},
			map[string]interface{}{"value": ev.Value}, ev.Timestamp)
		if err := e.writeAPI.WritePoint(ctx, point); err != nil {
			return fmt.Errorf("influx export: %w", err)
		}
	}

	summary := influxdb2.NewPoint("vibration_report", tags,
		map[string]interface{}{
			"total_readings": snap.Stats.TotalReadings,
			"alert_events":   snap.Stats.AlertEvents,
			"window_min":     snap.Stats.Window.Min,
			"window_max":     snap.Stats.Window.Max,
			"window_mean":    snap.Stats.Window.Mean,
			"lifetime_min":   snap.Stats.Lifetime.Min,
			"lifetime_max":   snap.Stats.Lifetime.Max,
			"lifetime_mean":  snap.Stats.Lifetime.Mean,
		}, snap.GeneratedAt)
	if err := e.writeAPI.WritePoint(ctx, summary); err != nil {
		return fmt.Errorf("influx export: %w", err)
	}

	log.Printf("export: wrote %d readings and %d events to influx", len(snap.Readings), len(snap.Events))
	return nil
}

func sanitizeMeasurement(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9',
			r == '_', r == ':', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
