package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/diwise/iot-telemetry-alerts/pkg/types"
	test "github.com/diwise/service-chassis/pkg/test/http"
	"github.com/diwise/service-chassis/pkg/test/http/expects"
	"github.com/diwise/service-chassis/pkg/test/http/response"
	"github.com/matryer/is"
)

func TestSendReading(t *testing.T) {
	is := is.New(t)

	mockedService := test.NewMockServiceThat(
		test.Expects(is,
			expects.RequestPath("/api/v0/readings"),
			expects.RequestMethod("POST"),
			expects.RequestHeaderContains("Content-Type", "application/json"),
			expects.RequestBodyContaining(`"sensorId":"sensor-1"`, `"value":36.5`, `"timestamp":1700000000000`),
		),
		test.Returns(
			response.ContentType("application/json"),
			response.Code(202),
			response.Body([]byte(verdictResponse)),
		),
	)
	defer mockedService.Close()

	c := New(context.Background(), mockedService.URL())

	v, err := c.SendReading(context.Background(), types.Reading{
		SensorID:  "sensor-1",
		Metric:    "temperature",
		Value:     36.5,
		Timestamp: time.UnixMilli(1700000000000),
	})
	is.NoErr(err)
	is.Equal(types.SeverityCritical, v.Severity)
	is.True(v.Alerting())
}

func TestSendRejectedReading(t *testing.T) {
	is := is.New(t)

	mockedService := test.NewMockServiceThat(
		test.Expects(is, expects.RequestPath("/api/v0/readings")),
		test.Returns(response.Code(400)),
	)
	defer mockedService.Close()

	_, err := New(context.Background(), mockedService.URL()).SendReading(context.Background(), types.Reading{SensorID: "nope"})
	is.True(errors.Is(err, ErrReadingRejected))
}

func TestAlerts(t *testing.T) {
	is := is.New(t)

	mockedService := test.NewMockServiceThat(
		test.Expects(is,
			expects.RequestPath("/api/v0/alerts"),
			expects.RequestMethod("GET"),
		),
		test.Returns(
			response.ContentType("application/json"),
			response.Code(200),
			response.Body([]byte(alertsResponse)),
		),
	)
	defer mockedService.Close()

	alerts, err := New(context.Background(), mockedService.URL()).Alerts(context.Background(), "sensor-1", 0, 10)
	is.NoErr(err)
	is.Equal(uint64(12), alerts.TotalCount)
	is.Equal(1, len(alerts.Data))
	is.Equal("sensor-1", alerts.Data[0].SensorID)
}

func TestInvalidateCooldowns(t *testing.T) {
	is := is.New(t)

	mockedService := test.NewMockServiceThat(
		test.Expects(is,
			expects.RequestPath("/api/v0/sensors/sensor-1/cooldowns"),
			expects.RequestMethod("DELETE"),
		),
		test.Returns(response.Code(204)),
	)
	defer mockedService.Close()

	err := New(context.Background(), mockedService.URL()).InvalidateCooldowns(context.Background(), "sensor-1")
	is.NoErr(err)
}

func TestTriggerRetention(t *testing.T) {
	is := is.New(t)

	mockedService := test.NewMockServiceThat(
		test.Expects(is,
			expects.RequestPath("/api/v0/retention/run"),
			expects.RequestMethod("POST"),
		),
		test.Returns(
			response.ContentType("application/json"),
			response.Code(200),
			response.Body([]byte(retentionResponse)),
		),
	)
	defer mockedService.Close()

	report, err := New(context.Background(), mockedService.URL()).TriggerRetention(context.Background())
	is.NoErr(err)
	is.Equal(3, len(report.Stages))
	is.Equal(int64(240), report.Stages[0].Deleted)
}

func TestTriggerRetentionWhileRunning(t *testing.T) {
	is := is.New(t)

	mockedService := test.NewMockServiceThat(
		test.Expects(is, expects.RequestPath("/api/v0/retention/run")),
		test.Returns(response.Code(409)),
	)
	defer mockedService.Close()

	_, err := New(context.Background(), mockedService.URL()).TriggerRetention(context.Background())
	is.Equal(ErrRunInProgress, err)
}

const verdictResponse string = `{"data":{"sensorID":"sensor-1","metric":"temperature","severity":"CRITICAL","value":36.5,"thresholds":{"warningThreshold":30,"criticalThreshold":35},"source":"sensor"}}`

const alertsResponse string = `{"meta":{"totalRecords":12,"offset":0,"limit":10,"count":1},"data":[{"id":"a1","sensorID":"sensor-1","metric":"temperature","severity":"ALERT","value":31,"message":"temperature on sensor-1 is 31, at or above the warning threshold 30","observedAt":"2026-03-04T00:30:00Z","createdAt":"2026-03-04T00:30:01Z"}]}`

const retentionResponse string = `{"data":{"startedAt":"2026-03-04T03:00:00Z","finishedAt":"2026-03-04T03:00:12Z","stages":[{"stage":"hourly","enabled":true,"buckets":24,"deleted":240},{"stage":"daily","enabled":true,"buckets":1,"deleted":23},{"stage":"purge","enabled":true,"deleted":0}]}}`
