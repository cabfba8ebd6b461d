// Package history provides the bounded, arrival-ordered store of
// readings together with incrementally maintained window and lifetime
// statistics.
package history

import (
	"github.com/ime-grupo10/vibration-monitor/internal/model"
)

// DefaultCapacity keeps roughly the last five minutes of samples at the
// expected ~1 Hz arrival rate.
const DefaultCapacity = 300

// Buffer is a fixed-capacity FIFO of readings. It is deliberately
// unsynchronized: the monitor Core is the single ownership boundary and
// serializes all access behind one mutex.
type Buffer struct {
	capacity int
	data     []model.Reading
	head     int
	size     int

	// window aggregates over the retained readings
	winSum int64
	winMin int
	winMax int

	// lifetime aggregates, monotonic until the process ends; Clear
	// does not touch them
	total   int
	lifeSum int64
	lifeMin int
	lifeMax int
}

// NewBuffer creates a buffer retaining at most capacity readings.
// Non-positive capacities fall back to DefaultCapacity.
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{
		capacity: capacity,
		data:     make([]model.Reading, capacity),
	}
}

// Capacity returns the configured window bound.
func (b *Buffer) Capacity() int { return b.capacity }

// Len returns the number of readings currently retained.
func (b *Buffer) Len() int { return b.size }

// Append inserts r, evicting the oldest reading when the window is
// full. Window min/max are recomputed only when the evicted reading was
// the current extremum.
func (b *Buffer) Append(r model.Reading) {
	if b.size == b.capacity {
		evicted := b.data[b.head]
		b.head = (b.head + 1) % b.capacity
		b.size--
		b.winSum -= int64(evicted.Value)
		if evicted.Value == b.winMin || evicted.Value == b.winMax {
			b.recomputeWindowExtrema()
		}
	}

	b.data[(b.head+b.size)%b.capacity] = r
	b.size++
	b.winSum += int64(r.Value)
	if b.size == 1 || r.Value < b.winMin {
		b.winMin = r.Value
	}
	if b.size == 1 || r.Value > b.winMax {
		b.winMax = r.Value
	}

	b.total++
	b.lifeSum += int64(r.Value)
	if b.total == 1 || r.Value < b.lifeMin {
		b.lifeMin = r.Value
	}
	if b.total == 1 || r.Value > b.lifeMax {
		b.lifeMax = r.Value
	}
}

func (b *Buffer) recomputeWindowExtrema() {
	if b.size == 0 {
		b.winMin, b.winMax = 0, 0
		return
	}
	first := b.data[b.head]
	b.winMin, b.winMax = first.Value, first.Value
	for i := 1; i < b.size; i++ {
		v := b.data[(b.head+i)%b.capacity].Value
		if v < b.winMin {
			b.winMin = v
		}
		if v > b.winMax {
			b.winMax = v
		}
	}
}

// Snapshot returns the retained readings in arrival order as a fresh
// slice.
func (b *Buffer) Snapshot() []model.Reading {
	out := make([]model.Reading, b.size)
	for i := 0; i < b.size; i++ {
		out[i] = b.data[(b.head+i)%b.capacity]
	}
	return out
}

// Last returns the most recent reading, if any.
func (b *Buffer) Last() (model.Reading, bool) {
	if b.size == 0 {
		return model.Reading{}, false
	}
	return b.data[(b.head+b.size-1)%b.capacity], true
}

// WindowStats returns aggregates over the currently retained readings.
func (b *Buffer) WindowStats() model.WindowStats {
	if b.size == 0 {
		return model.WindowStats{}
	}
	return model.WindowStats{
		Count: b.size,
		Min:   b.winMin,
		Max:   b.winMax,
		Mean:  float64(b.winSum) / float64(b.size),
	}
}

// LifetimeStats returns aggregates over every reading appended since
// the buffer was created. Eviction and Clear do not affect them.
func (b *Buffer) LifetimeStats() model.WindowStats {
	if b.total == 0 {
		return model.WindowStats{}
	}
	return model.WindowStats{
		Count: b.total,
		Min:   b.lifeMin,
		Max:   b.lifeMax,
		Mean:  float64(b.lifeSum) / float64(b.total),
	}
}

// Total returns the lifetime reading count.
func (b *Buffer) Total() int { return b.total }

// Clear empties the window and resets the window aggregates. Lifetime
// counters survive; alert history is owned elsewhere and is untouched.
func (b *Buffer) Clear() {
	b.head = 0
	b.size = 0
	b.winSum = 0
	b.winMin = 0
	b.winMax = 0
}
