// Package export holds the consumers of monitor snapshots: the CSV
// history dump, the InfluxDB report sink and the periodic auto-export
// driver. Each exporter works on an immutable Snapshot and never
// touches live buffer state.
package export

import (
	"github.com/ime-grupo10/vibration-monitor/internal/model"
)

// Exporter serializes one snapshot to some destination.
type Exporter interface {
	Export(snap model.Snapshot) error
}
