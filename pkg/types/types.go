package types

import (
	"strings"
	"time"
)

// NormalizeSensorID returns the canonical form sensor ids are stored and matched in.
func NormalizeSensorID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

type Sensor struct {
	SensorID   string `json:"sensorID"`
	Metric     string `json:"metric"`
	Unit       string `json:"unit,omitzero"`
	LocationID int    `json:"locationID"`
	Active     bool   `json:"active"`
	Tenant     string `json:"tenant"`
	Name       string `json:"name,omitzero"`
}

// Reading is immutable once stored. Only retention compaction and purge remove rows.
type Reading struct {
	ID         int64     `json:"id,omitzero"`
	SensorID   string    `json:"sensorId"`
	Metric     string    `json:"metric"`
	Value      float64   `json:"value"`
	Unit       string    `json:"unit"`
	Timestamp  time.Time `json:"timestamp"`
	LocationID int       `json:"locationId"`
}

type Thresholds struct {
	Warning  *float64 `json:"warningThreshold,omitempty" yaml:"warning"`
	Critical *float64 `json:"criticalThreshold,omitempty" yaml:"critical"`
}

func (t Thresholds) IsSet() bool {
	return t.Warning != nil && t.Critical != nil
}

type NotificationChannels struct {
	Email     bool `json:"email"`
	SMS       bool `json:"sms"`
	WebSocket bool `json:"webSocket"`
	Push      bool `json:"push"`
}

func (nc NotificationChannels) Enabled() []Channel {
	enabled := make([]Channel, 0, 4)
	if nc.Email {
		enabled = append(enabled, ChannelEmail)
	}
	if nc.SMS {
		enabled = append(enabled, ChannelSMS)
	}
	if nc.WebSocket {
		enabled = append(enabled, ChannelWebSocket)
	}
	if nc.Push {
		enabled = append(enabled, ChannelPush)
	}
	return enabled
}

type Recipient struct {
	Name     string    `json:"name"`
	Email    string    `json:"email,omitempty"`
	Phone    string    `json:"phone,omitempty"`
	Tier     Tier      `json:"tier"`
	Channels []Channel `json:"channelAffinity,omitempty"`
}

// Accepts reports whether the recipient wants notifications on channel c. An
// empty affinity list means every channel the recipient has an address for.
func (r Recipient) Accepts(c Channel) bool {
	switch c {
	case ChannelEmail:
		if r.Email == "" {
			return false
		}
	case ChannelSMS:
		if r.Phone == "" {
			return false
		}
	}

	if len(r.Channels) == 0 {
		return true
	}

	for _, rc := range r.Channels {
		if rc == c {
			return true
		}
	}

	return false
}

type AlertConfiguration struct {
	SensorID             string               `json:"sensorID"`
	Active               bool                 `json:"active"`
	MinSeverity          Severity             `json:"severity"`
	Thresholds           Thresholds           `json:"thresholds"`
	NotificationChannels NotificationChannels `json:"notificationChannels"`
	Recipients           []Recipient          `json:"recipients"`
}

type DeliveryStatus string

const (
	DeliveryDelivered DeliveryStatus = "DELIVERED"
	DeliveryPartial   DeliveryStatus = "PARTIAL"
	DeliveryFailed    DeliveryStatus = "FAILED"
	DeliverySkipped   DeliveryStatus = "SKIPPED"
)

type RecipientResult struct {
	Recipient string         `json:"recipient"`
	Status    DeliveryStatus `json:"status"`
	Attempts  int            `json:"attempts"`
	Error     string         `json:"error,omitempty"`
}

type ChannelResult struct {
	Channel    Channel           `json:"channel"`
	Status     DeliveryStatus    `json:"status"`
	Recipients []RecipientResult `json:"recipients,omitempty"`
}

type DeliveryReport map[Channel]ChannelResult

func (dr DeliveryReport) Failed() []Channel {
	failed := []Channel{}
	for c, r := range dr {
		if r.Status == DeliveryFailed || r.Status == DeliveryPartial {
			failed = append(failed, c)
		}
	}
	return failed
}

// AlertEvent is append-only. Rows in the alert history are never updated.
type AlertEvent struct {
	ID         string         `json:"id"`
	SensorID   string         `json:"sensorID"`
	LocationID int            `json:"locationID"`
	Metric     string         `json:"metric"`
	Severity   Severity       `json:"severity"`
	Value      float64        `json:"value"`
	Unit       string         `json:"unit,omitzero"`
	Message    string         `json:"message"`
	ObservedAt time.Time      `json:"observedAt"`
	CreatedAt  time.Time      `json:"createdAt"`
	Delivery   DeliveryReport `json:"delivery,omitempty"`
	Tenant     string         `json:"tenant,omitzero"`
}

type Collection[T any] struct {
	Data       []T
	Count      uint64
	Offset     uint64
	Limit      uint64
	TotalCount uint64
}

type ThresholdSource string

const (
	ThresholdsFromSensor ThresholdSource = "sensor"
	ThresholdsFromMetric ThresholdSource = "metric"
	ThresholdsNone       ThresholdSource = "none"
)

// Verdict is the outcome of evaluating one reading against its effective thresholds.
type Verdict struct {
	SensorID   string          `json:"sensorID"`
	Metric     string          `json:"metric"`
	Severity   Severity        `json:"severity"`
	Value      float64         `json:"value"`
	Polarity   Polarity        `json:"polarity,omitempty"`
	Thresholds Thresholds      `json:"thresholds"`
	Source     ThresholdSource `json:"source"`
}

func (v Verdict) Alerting() bool {
	return v.Severity > SeverityNormal
}
