package notification

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/cenkalti/backoff/v4"
	"github.com/diwise/iot-telemetry-alerts/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var (
	ErrChannelDelivery = errors.New("channel delivery failed")
	ErrNoProvider      = errors.New("no provider configured for channel")
)

//go:generate moq -rm -out senders_mock.go . EmailSender SMSSender Broadcaster
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

type SMSSender interface {
	SendSMS(ctx context.Context, phone, body string) error
}

// Broadcaster publishes an alert to every subscriber of any of the topics.
type Broadcaster interface {
	Broadcast(ctx context.Context, topics []string, event types.AlertEvent) error
}

// Topics returns the broadcast topics for an event, sensors/<id> and locations/<id>.
func Topics(event types.AlertEvent) []string {
	topics := []string{"sensors/" + event.SensorID}
	if event.LocationID != 0 {
		topics = append(topics, "locations/"+strconv.Itoa(event.LocationID))
	}
	return topics
}

type emailMessage struct {
	From    string `json:"from,omitempty"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type smsMessage struct {
	From string `json:"from,omitempty"`
	To   string `json:"to"`
	Body string `json:"body"`
}

type restSender struct {
	client *resty.Client
	cfg    ProviderConfig
}

func newRestSender(cfg ProviderConfig) *restSender {
	client := resty.New().
		SetBaseURL(cfg.URL).
		SetTimeout(cfg.Timeout).
		SetTransport(otelhttp.NewTransport(http.DefaultTransport)).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	if cfg.Token != "" {
		client.SetAuthToken(cfg.Token)
	}

	return &restSender{client: client, cfg: cfg}
}

func NewEmailSender(cfg ProviderConfig) EmailSender {
	return newRestSender(cfg)
}

func NewSMSSender(cfg ProviderConfig) SMSSender {
	return newRestSender(cfg)
}

func (s *restSender) SendEmail(ctx context.Context, to, subject, body string) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(emailMessage{From: s.cfg.Sender, To: to, Subject: subject, Body: body}).
		Post(s.cfg.Path)

	return checkResponse(resp, err)
}

func (s *restSender) SendSMS(ctx context.Context, phone, body string) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(smsMessage{From: s.cfg.Sender, To: phone, Body: body}).
		Post(s.cfg.Path)

	return checkResponse(resp, err)
}

// checkResponse marks client errors other than 408 and 429 as permanent so they are not retried.
func checkResponse(resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %s", ErrChannelDelivery, err.Error())
	}

	if !resp.IsError() {
		return nil
	}

	code := resp.StatusCode()
	err = fmt.Errorf("%w: provider responded with status %d", ErrChannelDelivery, code)

	if code >= 400 && code < 500 && code != http.StatusRequestTimeout && code != http.StatusTooManyRequests {
		return backoff.Permanent(err)
	}

	return err
}

// logSender is used for channels without a configured provider, e.g. in development.
type logSender struct{}

func NewLogSender() interface {
	EmailSender
	SMSSender
} {
	return logSender{}
}

func (logSender) SendEmail(ctx context.Context, to, subject, body string) error {
	logging.GetFromContext(ctx).Info("email notification", "to", to, "subject", subject, "body", body)
	return nil
}

func (logSender) SendSMS(ctx context.Context, phone, body string) error {
	logging.GetFromContext(ctx).Info("sms notification", "to", phone, "body", body)
	return nil
}
