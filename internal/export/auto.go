package export

import (
	"context"
	"log"
	"time"

	"github.com/ime-grupo10/vibration-monitor/internal/model"
)

// AutoExporter drives an Exporter on its own ticker, independent of the
// ingestion path. Empty snapshots are skipped.
type AutoExporter struct {
	snapshot func() model.Snapshot
	exporter Exporter
	interval time.Duration
}

func NewAutoExporter(snapshot func() model.Snapshot, exporter Exporter, interval time.Duration) *AutoExporter {
	return &AutoExporter{
		snapshot: snapshot,
		exporter: exporter,
		interval: interval,
	}
}

// Run blocks until ctx is cancelled, exporting once per interval.
func (a *AutoExporter) Run(ctx context.Context) {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			snap := a.snapshot()
			if len(snap.Readings) == 0 {
				continue
			}
			if err := a.exporter.Export(snap); err != nil {
				log.Printf("export: auto-export failed: %v", err)
			}
		}
	}
}
