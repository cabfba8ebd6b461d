package model

import "time"

// Reading is one parsed sensor sample. Immutable after construction;
// the history buffer hands out copies, never live references.
type Reading struct {
	SensorID  string    `json:"sensor_id"`
	Timestamp time.Time `json:"timestamp"`
	Value     int       `json:"value"`
	Unit      string    `json:"unit"`
}
