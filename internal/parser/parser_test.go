package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ime-grupo10/vibration-monitor/internal/model"
)

func TestParseValid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want model.Reading
	}{
		{
			name: "firmware line without zone",
			raw:  "SW420_GRUPO_10,2025-11-04T15:30:45.123,2450,ADC",
			want: model.Reading{
				SensorID:  "SW420_GRUPO_10",
				Timestamp: time.Date(2025, 11, 4, 15, 30, 45, 123000000, time.UTC),
				Value:     2450,
				Unit:      "ADC",
			},
		},
		{
			name: "rfc3339 with zone",
			raw:  "SW420_GRUPO_10,2025-11-04T15:30:45Z,5000,ADC",
			want: model.Reading{
				SensorID:  "SW420_GRUPO_10",
				Timestamp: time.Date(2025, 11, 4, 15, 30, 45, 0, time.UTC),
				Value:     5000,
				Unit:      "ADC",
			},
		},
		{
			name: "seconds resolution",
			raw:  "SW420_GRUPO_10,2025-11-04T15:30:45,0,mV",
			want: model.Reading{
				SensorID:  "SW420_GRUPO_10",
				Timestamp: time.Date(2025, 11, 4, 15, 30, 45, 0, time.UTC),
				Value:     0,
				Unit:      "mV",
			},
		},
		{
			name: "trailing newline from datagram",
			raw:  "S1,2025-11-04T10:00:00,100,ADC\n",
			want: model.Reading{
				SensorID:  "S1",
				Timestamp: time.Date(2025, 11, 4, 10, 0, 0, 0, time.UTC),
				Value:     100,
				Unit:      "ADC",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.want.SensorID, got.SensorID)
			assert.True(t, tt.want.Timestamp.Equal(got.Timestamp), "timestamp %v != %v", got.Timestamp, tt.want.Timestamp)
			assert.Equal(t, tt.want.Value, got.Value)
			assert.Equal(t, tt.want.Unit, got.Unit)
		})
	}
}

func TestParseFailures(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{name: "two fields", raw: "bad,data", wantErr: ErrMalformedFields},
		{name: "five fields", raw: "a,b,c,d,e", wantErr: ErrMalformedFields},
		{name: "empty payload", raw: "", wantErr: ErrMalformedFields},
		{name: "garbage timestamp", raw: "S1,yesterday,100,ADC", wantErr: ErrInvalidTimestamp},
		{name: "float value", raw: "S1,2025-11-04T10:00:00,12.5,ADC", wantErr: ErrInvalidValue},
		{name: "non numeric value", raw: "S1,2025-11-04T10:00:00,high,ADC", wantErr: ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.raw))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseOutOfRangeAccepted(t *testing.T) {
	// ADC range is a domain expectation, not a parse constraint
	got, err := Parse([]byte("S1,2025-11-04T10:00:00,70000,ADC"))
	require.NoError(t, err)
	assert.Equal(t, 70000, got.Value)
	assert.False(t, InRange(got.Value))

	got, err = Parse([]byte("S1,2025-11-04T10:00:00,-5,ADC"))
	require.NoError(t, err)
	assert.Equal(t, -5, got.Value)
	assert.False(t, InRange(got.Value))

	assert.True(t, InRange(0))
	assert.True(t, InRange(MaxValue))
}

func TestRoundTrip(t *testing.T) {
	readings := []model.Reading{
		{SensorID: "SW420_GRUPO_10", Timestamp: time.Date(2025, 11, 4, 15, 30, 45, 123000000, time.UTC), Value: 2450, Unit: "ADC"},
		{SensorID: "S2", Timestamp: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Value: 0, Unit: "mV"},
		{SensorID: "S3", Timestamp: time.Date(2025, 6, 15, 23, 59, 59, 999999999, time.UTC), Value: 65535, Unit: "g"},
	}

	for _, r := range readings {
		got, err := Parse([]byte(Format(r)))
		require.NoError(t, err)
		assert.Equal(t, r.SensorID, got.SensorID)
		assert.True(t, r.Timestamp.Equal(got.Timestamp))
		assert.Equal(t, r.Value, got.Value)
		assert.Equal(t, r.Unit, got.Unit)
	}
}
