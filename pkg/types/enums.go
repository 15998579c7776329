package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Severity is totally ordered: SeverityNormal < SeverityAlert < SeverityCritical.
type Severity int

const (
	SeverityNormal Severity = iota
	SeverityAlert
	SeverityCritical
)

var ErrUnknownSeverity = fmt.Errorf("unknown severity")

func (s Severity) String() string {
	switch s {
	case SeverityNormal:
		return "NORMAL"
	case SeverityAlert:
		return "ALERT"
	case SeverityCritical:
		return "CRITICAL"
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

func ParseSeverity(s string) (Severity, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "NORMAL":
		return SeverityNormal, nil
	case "ALERT", "WARNING":
		return SeverityAlert, nil
	case "CRITICAL":
		return SeverityCritical, nil
	}
	return SeverityNormal, fmt.Errorf("%w: %s", ErrUnknownSeverity, s)
}

func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Severity) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	parsed, err := ParseSeverity(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s *Severity) UnmarshalYAML(unmarshal func(any) error) error {
	var str string
	if err := unmarshal(&str); err != nil {
		return err
	}
	parsed, err := ParseSeverity(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Tier restricts which recipients are notified for a given severity and channel.
type Tier int

const (
	TierBaja Tier = iota + 1
	TierMedia
	TierAlta
	TierCritica
)

var ErrUnknownTier = fmt.Errorf("unknown recipient tier")

func (t Tier) String() string {
	switch t {
	case TierBaja:
		return "BAJA"
	case TierMedia:
		return "MEDIA"
	case TierAlta:
		return "ALTA"
	case TierCritica:
		return "CRITICA"
	}
	return fmt.Sprintf("Tier(%d)", int(t))
}

func ParseTier(s string) (Tier, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BAJA", "LOW":
		return TierBaja, nil
	case "MEDIA", "MEDIUM":
		return TierMedia, nil
	case "ALTA", "HIGH":
		return TierAlta, nil
	case "CRITICA", "CRÍTICA", "CRITICAL":
		return TierCritica, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownTier, s)
}

func (t Tier) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Tier) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	parsed, err := ParseTier(str)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t *Tier) UnmarshalYAML(unmarshal func(any) error) error {
	var str string
	if err := unmarshal(&str); err != nil {
		return err
	}
	parsed, err := ParseTier(str)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

type Channel string

const (
	ChannelEmail     Channel = "email"
	ChannelSMS       Channel = "sms"
	ChannelWebSocket Channel = "webSocket"
	ChannelPush      Channel = "push"
)

// Broadcast channels deliver once per alert on a topic instead of once per recipient.
func (c Channel) Broadcast() bool {
	return c == ChannelWebSocket || c == ChannelPush
}

func ParseChannel(s string) (Channel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "email":
		return ChannelEmail, nil
	case "sms":
		return ChannelSMS, nil
	case "websocket", "ws":
		return ChannelWebSocket, nil
	case "push":
		return ChannelPush, nil
	}
	return "", fmt.Errorf("unknown channel: %s", s)
}

// Polarity tells in which direction a metric gets worse.
type Polarity string

const (
	Ascending  Polarity = "ascending"
	Descending Polarity = "descending"
)
