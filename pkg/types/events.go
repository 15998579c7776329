package types

import (
	"encoding/json"
	"time"
)

type AlertCreated struct {
	Alert     AlertEvent `json:"alert"`
	Tenant    string     `json:"tenant,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}

func (a *AlertCreated) ContentType() string {
	return "application/json"
}
func (a *AlertCreated) TopicName() string {
	return "alerts.alertCreated"
}
func (a *AlertCreated) Body() []byte {
	b, _ := json.Marshal(a)
	return b
}

type CooldownsInvalidated struct {
	SensorID  string    `json:"sensorID"`
	Timestamp time.Time `json:"timestamp"`
}

func (c *CooldownsInvalidated) ContentType() string {
	return "application/json"
}
func (c *CooldownsInvalidated) TopicName() string {
	return "alerts.cooldownsInvalidated"
}
func (c *CooldownsInvalidated) Body() []byte {
	b, _ := json.Marshal(c)
	return b
}

type RetentionStageResult struct {
	Stage   string `json:"stage"`
	Enabled bool   `json:"enabled"`
	Buckets int64  `json:"buckets"`
	Deleted int64  `json:"deleted"`
	Error   string `json:"error,omitempty"`
}

type RetentionRunCompleted struct {
	StartedAt  time.Time              `json:"startedAt"`
	FinishedAt time.Time              `json:"finishedAt"`
	Stages     []RetentionStageResult `json:"stages"`
}

func (r *RetentionRunCompleted) ContentType() string {
	return "application/json"
}
func (r *RetentionRunCompleted) TopicName() string {
	return "retention.runCompleted"
}
func (r *RetentionRunCompleted) Body() []byte {
	b, _ := json.Marshal(r)
	return b
}
