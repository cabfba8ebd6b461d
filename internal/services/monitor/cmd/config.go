package main

import (
	"os"
	"strconv"
	"time"

	"github.com/ime-grupo10/vibration-monitor/internal/alert"
	"github.com/ime-grupo10/vibration-monitor/internal/history"
	"github.com/ime-grupo10/vibration-monitor/internal/listener"
)

type Config struct {
	// UDP ingest
	UDPHost string
	UDPPort int

	// core
	HistoryCapacity int
	AlertThreshold  int

	// HTTP API
	HTTPPort string

	// CSV export
	ExportPath string

	// periodic auto-export (0 disables)
	AutoExportInterval time.Duration

	// MQTT bridge (empty host disables)
	MQTTHost     string
	MQTTPort     int
	MQTTUser     string
	MQTTPassword string
	MQTTClientID string

	// InfluxDB report export (empty URL disables)
	InfluxURL         string
	InfluxToken       string
	InfluxOrg         string
	InfluxBucket      string
	InfluxMeasurement string
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func loadConfig() Config {
	return Config{
		UDPHost: getenv("UDP_HOST", listener.DefaultHost),
		UDPPort: getenvInt("UDP_PORT", listener.DefaultPort),

		HistoryCapacity: getenvInt("HISTORY_CAPACITY", history.DefaultCapacity),
		AlertThreshold:  getenvInt("ALERT_THRESHOLD", alert.DefaultThreshold),

		HTTPPort: getenv("HTTP_PORT", "8080"),

		ExportPath:         getenv("EXPORT_PATH", "vibration_history.csv"),
		AutoExportInterval: time.Duration(getenvInt("AUTO_EXPORT_SECONDS", 0)) * time.Second,

		MQTTHost:     getenv("MQTT_HOST", ""),
		MQTTPort:     getenvInt("MQTT_PORT", 1883),
		MQTTUser:     getenv("MQTT_USER", "guest"),
		MQTTPassword: getenv("MQTT_PASSWORD", "guest"),
		MQTTClientID: getenv("MQTT_CLIENT_ID", "vibration-monitor"),

		InfluxURL:         getenv("INFLUX_URL", ""),
		InfluxToken:       getenv("INFLUX_TOKEN", ""),
		InfluxOrg:         getenv("INFLUX_ORG", "ime"),
		InfluxBucket:      getenv("INFLUX_BUCKET", "vibration"),
		InfluxMeasurement: getenv("INFLUX_MEASUREMENT", "vibration"),
	}
}
