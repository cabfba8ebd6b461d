// Package metrics exposes the core's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ime-grupo10/vibration-monitor/internal/model"
)

var (
	ReadingsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vibration_readings_total",
		Help: "Readings successfully parsed and ingested.",
	})

	ParseErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vibration_parse_errors_total",
		Help: "Datagrams rejected by the wire parser.",
	})

	ReceiveErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vibration_receive_errors_total",
		Help: "Transient socket receive errors.",
	})

	AlertEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vibration_alert_events_total",
		Help: "ENTER_ALERT transitions since start.",
	})

	CurrentValue = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "vibration_current_value",
		Help: "Value of the most recent reading (ADC).",
	})

	AlertState = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "vibration_alert_state",
		Help: "1 while in ALERT, 0 while NORMAL.",
	})
)

// ObserveData updates the collectors for one ingested reading.
func ObserveData(r model.Reading, tr model.Transition) {
	ReadingsTotal.Inc()
	CurrentValue.Set(float64(r.Value))
	switch tr {
	case model.TransitionEnterAlert:
		AlertEventsTotal.Inc()
		AlertState.Set(1)
	case model.TransitionExitAlert:
		AlertState.Set(0)
	}
}
