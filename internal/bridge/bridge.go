// Package bridge republishes ingested readings and alert transitions to
// MQTT topics and accepts remote threshold configuration, so dashboards
// that already live on the broker can follow the sensor without talking
// UDP.
package bridge

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"strings"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/sony/gobreaker"

	"github.com/ime-grupo10/vibration-monitor/internal/model"
	"github.com/ime-grupo10/vibration-monitor/internal/monitor"
	"github.com/ime-grupo10/vibration-monitor/pkg/mqtt"
)

const (
	TopicReadings  = "vibration/readings"
	TopicAlerts    = "vibration/alerts"
	TopicThreshold = "vibration/config/threshold"
)

// alertMessage is the broker payload for one transition.
type alertMessage struct {
	SensorID   string           `json:"sensor_id"`
	Timestamp  time.Time        `json:"timestamp"`
	Value      int              `json:"value"`
	Transition model.Transition `json:"transition"`
	Threshold  int              `json:"threshold"`
}

type Bridge struct {
	core      *monitor.Core
	readings  mqtt.IPublisher
	alerts    mqtt.IPublisher
	threshold mqtt.IConsumer
	breaker   *gobreaker.CircuitBreaker
}

// New builds a bridge over the given publishers; threshold may be nil
// when remote configuration is not wanted.
func New(core *monitor.Core, readings, alerts mqtt.IPublisher, threshold mqtt.IConsumer) *Bridge {
	return &Bridge{
		core:      core,
		readings:  readings,
		alerts:    alerts,
		threshold: threshold,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:     "mqtt-bridge",
			Interval: 30 * time.Second,
			Timeout:  10 * time.Second,
			ReadyToTrip: func(c gobreaker.Counts) bool {
				return c.ConsecutiveFailures >= 5
			},
		}),
	}
}

// Start wires the threshold consumer, if configured. It blocks until
// ctx is cancelled.
func (b *Bridge) Start(ctx context.Context) {
	if b.threshold == nil {
		<-ctx.Done()
		return
	}
	b.threshold.SetHandler(b.handleThreshold)
	b.threshold.ConsumeMessage(ctx)
}

// OnData is registered as the listener data callback. Publishing runs
// behind a circuit breaker so a dead broker cannot slow ingestion down
// to its timeout on every datagram.
func (b *Bridge) OnData(r model.Reading, tr model.Transition) {
	payload, err := json.Marshal(r)
	if err != nil {
		log.Printf("bridge: marshal reading: %v", err)
		return
	}
	b.publish(b.readings, string(payload))

	if tr == model.TransitionNone {
		return
	}
	msg := alertMessage{
		SensorID:   r.SensorID,
		Timestamp:  r.Timestamp,
		Value:      r.Value,
		Transition: tr,
		Threshold:  b.core.Threshold(),
	}
	payload, err = json.Marshal(msg)
	if err != nil {
		log.Printf("bridge: marshal alert: %v", err)
		return
	}
	b.publish(b.alerts, string(payload))
}

func (b *Bridge) publish(pub mqtt.IPublisher, payload string) {
	if pub == nil {
		return
	}
	_, err := b.breaker.Execute(func() (any, error) {
		return nil, pub.PublishMessage(payload)
	})
	if err != nil {
		log.Printf("bridge: publish failed (cb=%v): %v", b.breaker.State(), err)
	}
}

func (b *Bridge) handleThreshold(topic string, message pahomqtt.Message) error {
	t, err := strconv.Atoi(strings.TrimSpace(string(message.Payload())))
	if err != nil {
		log.Printf("bridge: bad threshold payload on %s: %q", topic, message.Payload())
		return err
	}
	b.core.SetThreshold(t)
	log.Printf("bridge: threshold set to %d", t)
	return nil
}
