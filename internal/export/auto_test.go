package export

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ime-grupo10/vibration-monitor/internal/model"
)

type countingExporter struct {
	mu    sync.Mutex
	count int
}

func (c *countingExporter) Export(model.Snapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.count++
	return nil
}

func (c *countingExporter) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

func TestAutoExporterSkipsEmptySnapshots(t *testing.T) {
	exp := &countingExporter{}
	a := NewAutoExporter(func() model.Snapshot { return model.Snapshot{} }, exp, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	a.Run(ctx)

	assert.Zero(t, exp.Count())
}

func TestAutoExporterExportsPeriodically(t *testing.T) {
	exp := &countingExporter{}
	snap := func() model.Snapshot {
		return sampleSnapshot()
	}
	a := NewAutoExporter(snap, exp, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()
	a.Run(ctx)

	assert.GreaterOrEqual(t, exp.Count(), 2)
}
