package history

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ime-grupo10/vibration-monitor/internal/model"
)

func reading(value int) model.Reading {
	return model.Reading{
		SensorID:  "S1",
		Timestamp: time.Now(),
		Value:     value,
		Unit:      "ADC",
	}
}

func TestAppendWithinCapacity(t *testing.T) {
	b := NewBuffer(5)
	for _, v := range []int{10, 20, 30} {
		b.Append(reading(v))
	}

	snap := b.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, 10, snap[0].Value)
	assert.Equal(t, 30, snap[2].Value)

	ws := b.WindowStats()
	assert.Equal(t, 3, ws.Count)
	assert.Equal(t, 10, ws.Min)
	assert.Equal(t, 30, ws.Max)
	assert.InDelta(t, 20.0, ws.Mean, 1e-9)
}

func TestEvictionKeepsLastCapacityReadings(t *testing.T) {
	const capacity = 4
	b := NewBuffer(capacity)
	for v := 1; v <= 10; v++ {
		b.Append(reading(v))
	}

	snap := b.Snapshot()
	require.Len(t, snap, capacity)
	for i, r := range snap {
		assert.Equal(t, 7+i, r.Value, "arrival order must be preserved")
	}
	assert.Equal(t, 10, b.Total())
}

func TestLenMatchesMinOfAppendedAndCapacity(t *testing.T) {
	const capacity = 7
	b := NewBuffer(capacity)
	for n := 1; n <= 20; n++ {
		b.Append(reading(n))
		want := n
		if want > capacity {
			want = capacity
		}
		require.Equal(t, want, len(b.Snapshot()), "after %d appends", n)
	}
}

func TestWindowExtremaAfterEviction(t *testing.T) {
	// the first value is both window max and lifetime max; evicting it
	// must recompute the window while the lifetime stats keep it
	b := NewBuffer(3)
	for _, v := range []int{9000, 100, 200, 300} {
		b.Append(reading(v))
	}

	ws := b.WindowStats()
	assert.Equal(t, 100, ws.Min)
	assert.Equal(t, 300, ws.Max)

	ls := b.LifetimeStats()
	assert.Equal(t, 100, ls.Min)
	assert.Equal(t, 9000, ls.Max)
	assert.Equal(t, 4, ls.Count)
}

func TestStatsAlwaysMatchSnapshot(t *testing.T) {
	// property from the spec of the component: incremental min/max must
	// equal the recomputed values after arbitrary append/evict mixes
	b := NewBuffer(5)
	values := []int{500, 12, 9000, 9000, 3, 44, 65535, 1, 1, 700, 700, 2}

	for i, v := range values {
		b.Append(reading(v))

		snap := b.Snapshot()
		require.NotEmpty(t, snap)
		min, max, sum := snap[0].Value, snap[0].Value, 0
		for _, r := range snap {
			if r.Value < min {
				min = r.Value
			}
			if r.Value > max {
				max = r.Value
			}
			sum += r.Value
		}

		ws := b.WindowStats()
		assert.Equal(t, min, ws.Min, "step %d", i)
		assert.Equal(t, max, ws.Max, "step %d", i)
		assert.InDelta(t, float64(sum)/float64(len(snap)), ws.Mean, 1e-9, "step %d", i)
	}
}

func TestClearPreservesLifetime(t *testing.T) {
	b := NewBuffer(10)
	for _, v := range []int{5, 50, 500} {
		b.Append(reading(v))
	}

	b.Clear()

	assert.Zero(t, b.Len())
	assert.Empty(t, b.Snapshot())
	assert.Equal(t, model.WindowStats{}, b.WindowStats())

	ls := b.LifetimeStats()
	assert.Equal(t, 3, ls.Count)
	assert.Equal(t, 5, ls.Min)
	assert.Equal(t, 500, ls.Max)
	assert.Equal(t, 3, b.Total())

	// the buffer stays usable after a clear
	b.Append(reading(7))
	assert.Equal(t, 1, b.Len())
	assert.Equal(t, 4, b.Total())
	assert.Equal(t, 7, b.WindowStats().Min)
}

func TestSnapshotIsACopy(t *testing.T) {
	b := NewBuffer(3)
	b.Append(reading(1))

	snap := b.Snapshot()
	snap[0].Value = 999

	assert.Equal(t, 1, b.Snapshot()[0].Value)
}

func TestDefaultCapacity(t *testing.T) {
	for _, c := range []int{0, -1} {
		t.Run(fmt.Sprintf("capacity %d", c), func(t *testing.T) {
			b := NewBuffer(c)
			assert.Equal(t, DefaultCapacity, b.Capacity())
		})
	}
}
