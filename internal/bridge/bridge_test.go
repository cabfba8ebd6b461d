package bridge

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ime-grupo10/vibration-monitor/internal/model"
	"github.com/ime-grupo10/vibration-monitor/internal/monitor"
)

type fakePublisher struct {
	messages []string
	err      error
}

func (f *fakePublisher) PublishMessage(payload string) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, payload)
	return nil
}

func (f *fakePublisher) Close() {}

func reading(value int) model.Reading {
	return model.Reading{SensorID: "S1", Timestamp: time.Now(), Value: value, Unit: "ADC"}
}

func TestOnDataPublishesReading(t *testing.T) {
	core := monitor.NewCore(10, 5000)
	readings := &fakePublisher{}
	alerts := &fakePublisher{}
	b := New(core, readings, alerts, nil)

	b.OnData(reading(2450), model.TransitionNone)

	require.Len(t, readings.messages, 1)
	assert.Empty(t, alerts.messages, "no transition, no alert publish")

	var got model.Reading
	require.NoError(t, json.Unmarshal([]byte(readings.messages[0]), &got))
	assert.Equal(t, 2450, got.Value)
}

func TestOnDataPublishesAlertTransition(t *testing.T) {
	core := monitor.NewCore(10, 5000)
	readings := &fakePublisher{}
	alerts := &fakePublisher{}
	b := New(core, readings, alerts, nil)

	b.OnData(reading(6000), model.TransitionEnterAlert)

	require.Len(t, alerts.messages, 1)
	var got alertMessage
	require.NoError(t, json.Unmarshal([]byte(alerts.messages[0]), &got))
	assert.Equal(t, model.TransitionEnterAlert, got.Transition)
	assert.Equal(t, 6000, got.Value)
	assert.Equal(t, 5000, got.Threshold)
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	core := monitor.NewCore(10, 5000)
	readings := &fakePublisher{err: errors.New("broker down")}
	b := New(core, readings, &fakePublisher{}, nil)

	// exhaust the breaker, then recover the publisher: while open, the
	// bridge must not call through
	for i := 0; i < 6; i++ {
		b.OnData(reading(i), model.TransitionNone)
	}
	readings.err = nil
	b.OnData(reading(99), model.TransitionNone)
	assert.Empty(t, readings.messages, "breaker should be open and short-circuit publishes")
}

func TestNilPublishersAreSafe(t *testing.T) {
	core := monitor.NewCore(10, 5000)
	b := New(core, nil, nil, nil)
	assert.NotPanics(t, func() {
		b.OnData(reading(1), model.TransitionEnterAlert)
	})
}
