package model

import "time"

// WindowStats are aggregates over one set of readings (the retained
// window or the whole session).
type WindowStats struct {
	Count int     `json:"count"`
	Min   int     `json:"min"`
	Max   int     `json:"max"`
	Mean  float64 `json:"mean"`
}

// Stats bundles window and lifetime aggregates. TotalReadings and the
// Lifetime block are monotonic for the session; the Window block tracks
// only the readings currently retained.
type Stats struct {
	TotalReadings int         `json:"total_readings"`
	AlertEvents   int         `json:"alert_events"`
	Window        WindowStats `json:"window"`
	Lifetime      WindowStats `json:"lifetime"`
}

// Snapshot is a point-in-time copy of everything a consumer needs:
// readings, statistics and the alert log captured together, so an
// exporter never sees a half-updated state.
type Snapshot struct {
	SensorID    string       `json:"sensor_id"`
	Unit        string       `json:"unit"`
	GeneratedAt time.Time    `json:"generated_at"`
	Readings    []Reading    `json:"readings"`
	Stats       Stats        `json:"stats"`
	AlertState  AlertState   `json:"alert_state"`
	Threshold   int          `json:"threshold"`
	Events      []AlertEvent `json:"events"`
}
