// Package sensor_simulator emits SW-420-style CSV datagrams over UDP,
// standing in for the STM32MP1 board during development.
package sensor_simulator

import (
	"context"
	"fmt"
	"log"
	"net"
	"time"

	"github.com/ime-grupo10/vibration-monitor/internal/model"
	"github.com/ime-grupo10/vibration-monitor/internal/parser"
)

type SensorSimulator struct {
	sensorID  string
	unit      string
	generator *DataGenerator
	conn      net.Conn
}

// NewSensorSimulator dials the monitor's UDP endpoint.
func NewSensorSimulator(target, sensorID, unit string, gen *DataGenerator) (*SensorSimulator, error) {
	conn, err := net.Dial("udp", target)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", target, err)
	}
	return &SensorSimulator{
		sensorID:  sensorID,
		unit:      unit,
		generator: gen,
		conn:      conn,
	}, nil
}

// Start sends one reading per interval until ctx is cancelled.
func (s *SensorSimulator) Start(ctx context.Context, interval time.Duration) {
	defer s.conn.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(interval):
			r := model.Reading{
				SensorID:  s.sensorID,
				Timestamp: time.Now().UTC(),
				Value:     s.generator.Next(),
				Unit:      s.unit,
			}
			line := parser.Format(r)
			if _, err := s.conn.Write([]byte(line)); err != nil {
				log.Printf("simulator: send error: %v", err)
				continue
			}
			log.Printf("simulator: sent %s", line)
		}
	}
}
