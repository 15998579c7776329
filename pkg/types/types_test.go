package types

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestSeverityIsOrdered(t *testing.T) {
	is := is.New(t)
	is.True(SeverityNormal < SeverityAlert)
	is.True(SeverityAlert < SeverityCritical)
}

func TestParseSeverityAcceptsWarningAsAlert(t *testing.T) {
	is := is.New(t)

	s, err := ParseSeverity("warning")
	is.NoErr(err)
	is.Equal(SeverityAlert, s)

	_, err = ParseSeverity("bogus")
	is.True(errors.Is(err, ErrUnknownSeverity))
}

func TestSeverityJSON(t *testing.T) {
	is := is.New(t)

	b, err := json.Marshal(SeverityCritical)
	is.NoErr(err)
	is.Equal(`"CRITICAL"`, string(b))

	var s Severity
	is.NoErr(json.Unmarshal([]byte(`"ALERT"`), &s))
	is.Equal(SeverityAlert, s)
}

func TestTierFromJSON(t *testing.T) {
	is := is.New(t)

	r := Recipient{}
	is.NoErr(json.Unmarshal([]byte(`{"name":"ops","phone":"0701234567","tier":"ALTA"}`), &r))
	is.Equal(TierAlta, r.Tier)
	is.True(TierAlta > TierMedia)
}

func TestRecipientAccepts(t *testing.T) {
	is := is.New(t)

	r := Recipient{Name: "ops", Email: "ops@example.com"}
	is.True(r.Accepts(ChannelEmail))
	is.True(!r.Accepts(ChannelSMS))

	r.Phone = "+46701234567"
	r.Channels = []Channel{ChannelSMS}
	is.True(r.Accepts(ChannelSMS))
	is.True(!r.Accepts(ChannelEmail))
}

func TestReadingMessage(t *testing.T) {
	is := is.New(t)

	var m ReadingMessage
	is.NoErr(json.Unmarshal([]byte(`{"sensorId":"s1","metric":"temperature","value":21.5,"unit":"C","timestamp":1700000000000,"locationId":7}`), &m))

	r, err := m.Reading()
	is.NoErr(err)
	is.Equal("s1", r.SensorID)
	is.Equal(21.5, r.Value)
	is.Equal(7, r.LocationID)
	is.Equal(time.UnixMilli(1700000000000).UTC(), r.Timestamp)

	m.Value = nil
	_, err = m.Reading()
	is.True(errors.Is(err, ErrMissingValue))
}

func TestEnabledChannels(t *testing.T) {
	is := is.New(t)
	nc := NotificationChannels{Email: true, WebSocket: true}
	is.Equal([]Channel{ChannelEmail, ChannelWebSocket}, nc.Enabled())
}

func TestNormalizeSensorID(t *testing.T) {
	is := is.New(t)

	is.Equal("tank-7", NormalizeSensorID(" Tank-7\t"))
	is.Equal("", NormalizeSensorID("  "))
}
