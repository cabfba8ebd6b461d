// Package parser implements the CSV wire codec used by the SW-420
// sensor firmware: one datagram carries one line of
// "SENSOR_ID,TIMESTAMP,VALUE,UNIT".
package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ime-grupo10/vibration-monitor/internal/model"
)

// MaxValue is the upper bound of the sensor ADC range. Values outside
// [0, MaxValue] still parse; the range is a domain expectation, not a
// framing constraint, and an out-of-range reading is exactly the kind
// worth keeping.
const MaxValue = 65535

var (
	ErrMalformedFields  = errors.New("malformed fields")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrInvalidValue     = errors.New("invalid value")
)

// Accepted timestamp layouts: RFC3339 with optional fractional seconds,
// plus the zone-less form the STM32 firmware emits (2025-11-04T15:30:45.123).
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// Parse decodes one datagram payload into a Reading. Pure function,
// safe for concurrent use.
func Parse(raw []byte) (model.Reading, error) {
	parts := strings.Split(strings.TrimSpace(string(raw)), ",")
	if len(parts) != 4 {
		return model.Reading{}, fmt.Errorf("%w: expected 4 fields, got %d", ErrMalformedFields, len(parts))
	}

	sensorID := strings.TrimSpace(parts[0])
	ts, err := parseTimestamp(strings.TrimSpace(parts[1]))
	if err != nil {
		return model.Reading{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, parts[1])
	}

	value, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return model.Reading{}, fmt.Errorf("%w: %q", ErrInvalidValue, parts[2])
	}

	return model.Reading{
		SensorID:  sensorID,
		Timestamp: ts,
		Value:     value,
		Unit:      strings.TrimSpace(parts[3]),
	}, nil
}

func parseTimestamp(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// Format renders a Reading back to the wire form, such that
// Parse(Format(r)) reproduces r.
func Format(r model.Reading) string {
	return fmt.Sprintf("%s,%s,%d,%s", r.SensorID, r.Timestamp.Format(time.RFC3339Nano), r.Value, r.Unit)
}

// InRange reports whether v falls inside the sensor ADC range.
func InRange(v int) bool {
	return v >= 0 && v <= MaxValue
}
