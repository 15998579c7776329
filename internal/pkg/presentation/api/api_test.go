package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/diwise/iot-telemetry-alerts/internal/pkg/application/alertconfig"
	"github.com/diwise/iot-telemetry-alerts/internal/pkg/application/alerts"
	"github.com/diwise/iot-telemetry-alerts/internal/pkg/application/ingestion"
	"github.com/diwise/iot-telemetry-alerts/internal/pkg/application/retention"
	"github.com/diwise/iot-telemetry-alerts/internal/pkg/infrastructure/storage"
	"github.com/diwise/iot-telemetry-alerts/pkg/types"
	"github.com/go-chi/chi/v5"
	"github.com/matryer/is"
)

type mocks struct {
	ingestor  *ingestion.IngestorMock
	alerts    *alerts.AlertServiceMock
	configs   *alertconfig.AlertConfigServiceMock
	scheduler *retention.SchedulerMock
}

func testSetup(t *testing.T) (*is.I, *mocks, http.Handler) {
	is := is.New(t)

	m := &mocks{
		ingestor: &ingestion.IngestorMock{
			IngestFunc: func(ctx context.Context, r types.Reading) (types.Verdict, error) {
				if r.SensorID == "unknown" {
					return types.Verdict{}, ingestion.ErrInvalidReading
				}
				return types.Verdict{SensorID: r.SensorID, Severity: types.SeverityAlert, Value: r.Value}, nil
			},
		},
		alerts: &alerts.AlertServiceMock{
			HistoryFunc: func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Collection[types.AlertEvent], error) {
				c := &storage.Condition{}
				for _, f := range conditions {
					c = f(c)
				}
				return types.Collection[types.AlertEvent]{
					Data:       []types.AlertEvent{{ID: "a1", SensorID: c.SensorID}},
					Count:      1,
					Offset:     uint64(c.Offset()),
					Limit:      uint64(c.Limit()),
					TotalCount: 25,
				}, nil
			},
			InvalidateFunc: func(ctx context.Context, sensorID string) error {
				return nil
			},
		},
		configs: &alertconfig.AlertConfigServiceMock{
			GetFunc: func(ctx context.Context, sensorID string) (types.AlertConfiguration, error) {
				if sensorID != "sensor-1" {
					return types.AlertConfiguration{}, alertconfig.ErrSensorNotFound
				}
				return types.AlertConfiguration{SensorID: sensorID, Active: true}, nil
			},
			SetFunc: func(ctx context.Context, cfg types.AlertConfiguration) error {
				if !cfg.Active {
					return alertconfig.ErrInvalidConfiguration
				}
				return nil
			},
		},
		scheduler: &retention.SchedulerMock{
			TriggerFunc: func(ctx context.Context) (retention.RunReport, error) {
				return retention.RunReport{
					StartedAt:  time.Now(),
					FinishedAt: time.Now(),
					Stages:     []types.RetentionStageResult{{Stage: retention.StageHourly, Enabled: true, Deleted: 10}},
				}, nil
			},
		},
	}

	r := RegisterHandlers(context.Background(), chi.NewRouter(), Services{
		Ingestor:  m.ingestor,
		Alerts:    m.alerts,
		Configs:   m.configs,
		Retention: m.scheduler,
	})

	return is, m, r
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	res := httptest.NewRecorder()
	h.ServeHTTP(res, req)
	return res
}

func TestHealth(t *testing.T) {
	is, _, h := testSetup(t)

	res := do(h, http.MethodGet, "/health", "")
	is.Equal(http.StatusNoContent, res.Code)
}

func TestCreateReading(t *testing.T) {
	is, m, h := testSetup(t)

	res := do(h, http.MethodPost, "/api/v0/readings", `{"sensorId":"sensor-1","metric":"temperature","value":36.5,"timestamp":1700000000000}`)
	is.Equal(http.StatusAccepted, res.Code)
	is.Equal(1, len(m.ingestor.IngestCalls()))
	is.Equal(time.UnixMilli(1700000000000).UTC(), m.ingestor.IngestCalls()[0].R.Timestamp)

	var body struct {
		Data types.Verdict `json:"data"`
	}
	is.NoErr(json.Unmarshal(res.Body.Bytes(), &body))
	is.Equal(types.SeverityAlert, body.Data.Severity)
}

func TestCreateReadingRejectsInvalidInput(t *testing.T) {
	is, m, h := testSetup(t)

	is.Equal(http.StatusBadRequest, do(h, http.MethodPost, "/api/v0/readings", `not json`).Code)
	is.Equal(http.StatusBadRequest, do(h, http.MethodPost, "/api/v0/readings", `{"sensorId":"sensor-1"}`).Code)
	is.Equal(0, len(m.ingestor.IngestCalls()))

	is.Equal(http.StatusBadRequest, do(h, http.MethodPost, "/api/v0/readings", `{"sensorId":"unknown","value":1}`).Code)
}

func TestCreateReadingStorageFailure(t *testing.T) {
	is, m, h := testSetup(t)

	m.ingestor.IngestFunc = func(ctx context.Context, r types.Reading) (types.Verdict, error) {
		return types.Verdict{}, errors.New("db down")
	}

	is.Equal(http.StatusInternalServerError, do(h, http.MethodPost, "/api/v0/readings", `{"sensorId":"sensor-1","value":1}`).Code)
}

func TestQueryAlerts(t *testing.T) {
	is, _, h := testSetup(t)

	res := do(h, http.MethodGet, "/api/v0/alerts?sensorID=sensor-1&offset=10&limit=10", "")
	is.Equal(http.StatusOK, res.Code)

	var body struct {
		Meta  meta               `json:"meta"`
		Data  []types.AlertEvent `json:"data"`
		Links links              `json:"links"`
	}
	is.NoErr(json.Unmarshal(res.Body.Bytes(), &body))

	is.Equal(uint64(25), body.Meta.TotalRecords)
	is.Equal("sensor-1", body.Data[0].SensorID)
	is.True(body.Links.Next != nil)
	is.True(strings.Contains(*body.Links.Next, "offset=20"))
	is.True(strings.Contains(*body.Links.Prev, "offset=0"))
	is.True(strings.Contains(*body.Links.Last, "offset=20"))
}

func TestAlertConfig(t *testing.T) {
	is, m, h := testSetup(t)

	res := do(h, http.MethodGet, "/api/v0/sensors/sensor-1/alertconfig", "")
	is.Equal(http.StatusOK, res.Code)

	is.Equal(http.StatusNotFound, do(h, http.MethodGet, "/api/v0/sensors/nope/alertconfig", "").Code)

	res = do(h, http.MethodPut, "/api/v0/sensors/sensor-1/alertconfig", `{"active":true,"thresholds":{"warningThreshold":30,"criticalThreshold":35}}`)
	is.Equal(http.StatusNoContent, res.Code)
	is.Equal("sensor-1", m.configs.SetCalls()[0].Cfg.SensorID)

	res = do(h, http.MethodPut, "/api/v0/sensors/sensor-1/alertconfig", `{"active":false}`)
	is.Equal(http.StatusBadRequest, res.Code)

	res = do(h, http.MethodPut, "/api/v0/sensors/sensor-1/alertconfig", `{"sensorID":"sensor-2","active":true}`)
	is.Equal(http.StatusBadRequest, res.Code)
	is.Equal(2, len(m.configs.SetCalls()))
}

func TestInvalidateCooldowns(t *testing.T) {
	is, m, h := testSetup(t)

	res := do(h, http.MethodDelete, "/api/v0/sensors/sensor-1/cooldowns", "")
	is.Equal(http.StatusNoContent, res.Code)
	is.Equal("sensor-1", m.alerts.InvalidateCalls()[0].SensorID)
}

func TestTriggerRetention(t *testing.T) {
	is, m, h := testSetup(t)

	res := do(h, http.MethodPost, "/api/v0/retention/run", "")
	is.Equal(http.StatusOK, res.Code)

	var body struct {
		Data retention.RunReport `json:"data"`
	}
	is.NoErr(json.Unmarshal(res.Body.Bytes(), &body))
	is.Equal(int64(10), body.Data.Stages[0].Deleted)

	m.scheduler.TriggerFunc = func(ctx context.Context) (retention.RunReport, error) {
		return retention.RunReport{}, retention.ErrConcurrentRun
	}
	is.Equal(http.StatusConflict, do(h, http.MethodPost, "/api/v0/retention/run", "").Code)

	m.scheduler.TriggerFunc = func(ctx context.Context) (retention.RunReport, error) {
		return retention.RunReport{Stages: []types.RetentionStageResult{{Stage: retention.StagePurge, Error: "boom"}}},
			errors.Join(retention.ErrRetentionStage, errors.New("boom"))
	}
	is.Equal(http.StatusOK, do(h, http.MethodPost, "/api/v0/retention/run", "").Code)
}
