// Package monitor composes the history buffer and the alert evaluator
// behind a single mutex. It is the only synchronization boundary in the
// core: the listener goroutine mutates through it, consumers read
// copies through it.
package monitor

import (
	"sync"
	"time"

	"github.com/ime-grupo10/vibration-monitor/internal/alert"
	"github.com/ime-grupo10/vibration-monitor/internal/history"
	"github.com/ime-grupo10/vibration-monitor/internal/model"
)

type Core struct {
	mu       sync.Mutex
	buffer   *history.Buffer
	alerts   *alert.Evaluator
	sensorID string
	unit     string
}

func NewCore(capacity, threshold int) *Core {
	return &Core{
		buffer: history.NewBuffer(capacity),
		alerts: alert.NewEvaluator(threshold),
	}
}

// Ingest appends r and evaluates it against the alert threshold in one
// critical section, so a snapshot never observes the buffer and the
// alert log out of step. The first reading pins the session sensor id
// and unit.
func (c *Core) Ingest(r model.Reading) model.Transition {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sensorID == "" {
		c.sensorID = r.SensorID
		c.unit = r.Unit
	}
	c.buffer.Append(r)
	return c.alerts.Evaluate(r)
}

// Readings returns a copy of the retained window in arrival order.
func (c *Core) Readings() []model.Reading {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buffer.Snapshot()
}

// Stats returns window and lifetime aggregates plus the lifetime
// alert-event count.
func (c *Core) Stats() model.Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statsLocked()
}

func (c *Core) statsLocked() model.Stats {
	return model.Stats{
		TotalReadings: c.buffer.Total(),
		AlertEvents:   c.alerts.EnterCount(),
		Window:        c.buffer.WindowStats(),
		Lifetime:      c.buffer.LifetimeStats(),
	}
}

// Snapshot captures readings, statistics and the alert log under one
// lock acquisition. The result is internally consistent and safe to
// hand to exporters on another goroutine.
func (c *Core) Snapshot() model.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return model.Snapshot{
		SensorID:    c.sensorID,
		Unit:        c.unit,
		GeneratedAt: time.Now(),
		Readings:    c.buffer.Snapshot(),
		Stats:       c.statsLocked(),
		AlertState:  c.alerts.State(),
		Threshold:   c.alerts.Threshold(),
		Events:      c.alerts.Events(),
	}
}

// Clear empties the window. Lifetime counters and the alert event log
// are preserved; the alert state machine keeps its current state.
func (c *Core) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buffer.Clear()
}

// SetThreshold routes a configuration change through the same lock as
// ingestion, keeping the evaluator single-writer. Effective on the next
// reading; never retroactive.
func (c *Core) SetThreshold(t int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.alerts.SetThreshold(t)
}

func (c *Core) Threshold() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.alerts.Threshold()
}

func (c *Core) AlertState() model.AlertState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.alerts.State()
}

// Events returns a copy of the alert transition log.
func (c *Core) Events() []model.AlertEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.alerts.Events()
}

// SensorID returns the id pinned by the first ingested reading, or ""
// before any data arrived.
func (c *Core) SensorID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sensorID
}
