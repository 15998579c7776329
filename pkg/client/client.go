package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/diwise/iot-telemetry-alerts/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("iot-telemetry-alerts-client")

var (
	ErrReadingRejected = errors.New("reading rejected")
	ErrRunInProgress   = errors.New("a retention run is already in progress")
	ErrUnexpectedReply = errors.New("unexpected response")
)

type TelemetryAlertsClient interface {
	SendReading(ctx context.Context, r types.Reading) (types.Verdict, error)
	Alerts(ctx context.Context, sensorID string, offset, limit int) (types.Collection[types.AlertEvent], error)
	InvalidateCooldowns(ctx context.Context, sensorID string) error
	TriggerRetention(ctx context.Context) (types.RetentionRunCompleted, error)
}

type taClient struct {
	client *resty.Client
}

func New(ctx context.Context, baseURL string) TelemetryAlertsClient {
	logging.GetFromContext(ctx).Debug("creating telemetry alerts client", "url", baseURL)

	return &taClient{
		client: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(30 * time.Second).
			SetTransport(otelhttp.NewTransport(http.DefaultTransport)).
			SetHeader("Accept", "application/json"),
	}
}

type response[T any] struct {
	Meta *struct {
		TotalRecords uint64 `json:"totalRecords"`
		Offset       uint64 `json:"offset"`
		Limit        uint64 `json:"limit"`
		Count        uint64 `json:"count"`
	} `json:"meta,omitempty"`
	Data T `json:"data"`
}

func (c *taClient) SendReading(ctx context.Context, r types.Reading) (types.Verdict, error) {
	var err error
	ctx, span := tracer.Start(ctx, "send-reading")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	result := response[types.Verdict]{}

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(types.NewReadingMessage(r)).
		SetResult(&result).
		Post("/api/v0/readings")
	if err != nil {
		err = fmt.Errorf("failed to send reading: %w", err)
		return types.Verdict{}, err
	}

	switch resp.StatusCode() {
	case http.StatusAccepted:
		return result.Data, nil
	case http.StatusBadRequest:
		err = fmt.Errorf("%w: sensor %s", ErrReadingRejected, r.SensorID)
	default:
		err = fmt.Errorf("%w: status code %d", ErrUnexpectedReply, resp.StatusCode())
	}

	return types.Verdict{}, err
}

func (c *taClient) Alerts(ctx context.Context, sensorID string, offset, limit int) (types.Collection[types.AlertEvent], error) {
	var err error
	ctx, span := tracer.Start(ctx, "query-alerts")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	params := url.Values{}
	if sensorID != "" {
		params.Set("sensorID", sensorID)
	}
	params.Set("offset", strconv.Itoa(offset))
	params.Set("limit", strconv.Itoa(limit))

	result := response[[]types.AlertEvent]{}

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParamsFromValues(params).
		SetResult(&result).
		Get("/api/v0/alerts")
	if err != nil {
		err = fmt.Errorf("failed to query alerts: %w", err)
		return types.Collection[types.AlertEvent]{}, err
	}

	if resp.StatusCode() != http.StatusOK {
		err = fmt.Errorf("%w: status code %d", ErrUnexpectedReply, resp.StatusCode())
		return types.Collection[types.AlertEvent]{}, err
	}

	collection := types.Collection[types.AlertEvent]{
		Data:  result.Data,
		Count: uint64(len(result.Data)),
	}

	if result.Meta != nil {
		collection.Offset = result.Meta.Offset
		collection.Limit = result.Meta.Limit
		collection.TotalCount = result.Meta.TotalRecords
	}

	return collection, nil
}

func (c *taClient) InvalidateCooldowns(ctx context.Context, sensorID string) error {
	var err error
	ctx, span := tracer.Start(ctx, "invalidate-cooldowns")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("sensorID", sensorID).
		Delete("/api/v0/sensors/{sensorID}/cooldowns")
	if err != nil {
		err = fmt.Errorf("failed to invalidate cooldowns: %w", err)
		return err
	}

	if resp.StatusCode() != http.StatusNoContent {
		err = fmt.Errorf("%w: status code %d", ErrUnexpectedReply, resp.StatusCode())
	}

	return err
}

func (c *taClient) TriggerRetention(ctx context.Context) (types.RetentionRunCompleted, error) {
	var err error
	ctx, span := tracer.Start(ctx, "trigger-retention")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	result := response[types.RetentionRunCompleted]{}

	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&result).
		Post("/api/v0/retention/run")
	if err != nil {
		err = fmt.Errorf("failed to trigger retention: %w", err)
		return types.RetentionRunCompleted{}, err
	}

	switch resp.StatusCode() {
	case http.StatusOK:
		return result.Data, nil
	case http.StatusConflict:
		err = ErrRunInProgress
	default:
		err = fmt.Errorf("%w: status code %d", ErrUnexpectedReply, resp.StatusCode())
	}

	return types.RetentionRunCompleted{}, err
}
