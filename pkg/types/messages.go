package types

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// ReadingMessage is the shape devices and gateways send. Timestamp is epoch millis.
type ReadingMessage struct {
	SensorID   string   `json:"sensorId"`
	Metric     string   `json:"metric"`
	Value      *float64 `json:"value"`
	Unit       string   `json:"unit"`
	Timestamp  int64    `json:"timestamp"`
	LocationID int      `json:"locationId"`
}

var ErrMissingValue = fmt.Errorf("reading contains no value")

func (m ReadingMessage) Reading() (Reading, error) {
	if m.Value == nil {
		return Reading{}, ErrMissingValue
	}

	// a missing timestamp is left zero so that the receiver can stamp it
	ts := time.Time{}
	if m.Timestamp != 0 {
		ts = time.UnixMilli(m.Timestamp).UTC()
	}

	return Reading{
		SensorID:   m.SensorID,
		Metric:     m.Metric,
		Value:      *m.Value,
		Unit:       m.Unit,
		Timestamp:  ts,
		LocationID: m.LocationID,
	}, nil
}

func NewReadingMessage(r Reading) ReadingMessage {
	v := r.Value
	return ReadingMessage{
		SensorID:   r.SensorID,
		Metric:     r.Metric,
		Value:      &v,
		Unit:       r.Unit,
		Timestamp:  r.Timestamp.UnixMilli(),
		LocationID: r.LocationID,
	}
}

func (m *ReadingMessage) ContentType() string {
	return "application/json"
}
func (m *ReadingMessage) TopicName() string {
	return "sensor.reading"
}
func (m *ReadingMessage) Body() []byte {
	b, _ := json.Marshal(m)
	return b
}

func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
