package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	sim "github.com/ime-grupo10/vibration-monitor/internal/sensor-simulator"
)

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

func main() {
	target := fmt.Sprintf("%s:%d", getenv("TARGET_HOST", "127.0.0.1"), getenvInt("TARGET_PORT", 5000))
	sensorID := getenv("SENSOR_ID", "SW420_GRUPO_10")
	intervalMs := getenvInt("INTERVAL_MS", 500)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	gen := sim.NewDataGenerator(time.Now().UnixNano(), 0.05)
	s, err := sim.NewSensorSimulator(target, sensorID, "ADC", gen)
	if err != nil {
		log.Fatalf("simulator: %v", err)
	}

	log.Printf("simulator: sending to %s every %dms", target, intervalMs)
	s.Start(ctx, time.Duration(intervalMs)*time.Millisecond)
}
