package notification

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/cenkalti/backoff/v4"
	"github.com/diwise/iot-telemetry-alerts/internal/pkg/infrastructure/metrics"
	"github.com/diwise/iot-telemetry-alerts/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

var tracer = otel.Tracer("iot-telemetry-alerts/notification")

//go:generate moq -rm -out dispatcher_mock.go . Dispatcher
type Dispatcher interface {
	// Dispatch delivers event on every enabled channel concurrently and reports the
	// outcome per channel. It never fails as a whole, failures are part of the report.
	Dispatch(ctx context.Context, event types.AlertEvent, cfg types.AlertConfiguration) types.DeliveryReport
}

type dispatcher struct {
	config       DispatcherConfig
	email        EmailSender
	sms          SMSSender
	broadcasters map[types.Channel]Broadcaster
}

func New(cfg DispatcherConfig, email EmailSender, sms SMSSender, websocket, push Broadcaster) Dispatcher {
	d := &dispatcher{
		config:       cfg,
		email:        email,
		sms:          sms,
		broadcasters: map[types.Channel]Broadcaster{},
	}

	if websocket != nil {
		d.broadcasters[types.ChannelWebSocket] = websocket
	}
	if push != nil {
		d.broadcasters[types.ChannelPush] = push
	}

	return d
}

func (d *dispatcher) Dispatch(ctx context.Context, event types.AlertEvent, cfg types.AlertConfiguration) types.DeliveryReport {
	ctx, span := tracer.Start(ctx, "dispatch")
	defer span.End()

	span.SetAttributes(attribute.String("sensor_id", event.SensorID), attribute.String("severity", event.Severity.String()))

	log := logging.GetFromContext(ctx).With("alert_id", event.ID, "sensor_id", event.SensorID)
	ctx = logging.NewContextWithLogger(ctx, log)

	channels := cfg.NotificationChannels.Enabled()
	results := make([]types.ChannelResult, len(channels))

	var g errgroup.Group
	for i, ch := range channels {
		g.Go(func() error {
			results[i] = d.dispatchChannel(ctx, ch, event, cfg.Recipients)
			return nil
		})
	}
	_ = g.Wait()

	report := make(types.DeliveryReport, len(results))
	for _, r := range results {
		report[r.Channel] = r
		metrics.DeliveriesTotal.WithLabelValues(string(r.Channel), string(r.Status)).Inc()

		if r.Status == types.DeliveryFailed || r.Status == types.DeliveryPartial {
			log.Warn("channel delivery incomplete", "channel", r.Channel, "status", r.Status)
		}
	}

	return report
}

func (d *dispatcher) dispatchChannel(ctx context.Context, ch types.Channel, event types.AlertEvent, recipients []types.Recipient) (result types.ChannelResult) {
	log := logging.GetFromContext(ctx).With("channel", ch)

	defer func() {
		if r := recover(); r != nil {
			metrics.WorkerPanicsTotal.Inc()
			log.Error("panic recovered in channel delivery", "panic", fmt.Sprint(r), "stack", string(debug.Stack()))
			result = types.ChannelResult{Channel: ch, Status: types.DeliveryFailed}
		}
	}()

	if ch.Broadcast() {
		return d.broadcast(ctx, ch, event)
	}

	selected := SelectRecipients(recipients, ch, event.Severity, d.config.TierPolicy)
	if len(selected) == 0 {
		log.Debug("no eligible recipients for channel")
		return types.ChannelResult{Channel: ch, Status: types.DeliverySkipped}
	}

	rr := make([]types.RecipientResult, 0, len(selected))
	for _, rcpt := range selected {
		rr = append(rr, d.deliver(ctx, ch, event, rcpt))
	}

	return types.ChannelResult{Channel: ch, Status: summarize(rr), Recipients: rr}
}

func (d *dispatcher) broadcast(ctx context.Context, ch types.Channel, event types.AlertEvent) types.ChannelResult {
	b, ok := d.broadcasters[ch]
	if !ok {
		return types.ChannelResult{Channel: ch, Status: types.DeliveryFailed}
	}

	topics := Topics(event)

	_, err := d.retry(ctx, func(ctx context.Context) error {
		return b.Broadcast(ctx, topics, event)
	})
	if err != nil {
		logging.GetFromContext(ctx).Error("broadcast failed", "channel", ch, "err", err.Error())
		return types.ChannelResult{Channel: ch, Status: types.DeliveryFailed}
	}

	return types.ChannelResult{Channel: ch, Status: types.DeliveryDelivered}
}

func (d *dispatcher) deliver(ctx context.Context, ch types.Channel, event types.AlertEvent, rcpt types.Recipient) types.RecipientResult {
	result := types.RecipientResult{Recipient: rcpt.Name}

	fail := func(err error) types.RecipientResult {
		result.Status = types.DeliveryFailed
		result.Error = err.Error()
		logging.GetFromContext(ctx).Warn("delivery to recipient failed", "channel", ch, "recipient", rcpt.Name, "attempts", result.Attempts, "err", err.Error())
		return result
	}

	var send func(context.Context) error

	switch ch {
	case types.ChannelEmail:
		if d.email == nil {
			return fail(ErrNoProvider)
		}
		subject, body := Subject(event), Body(event)
		send = func(ctx context.Context) error {
			return d.email.SendEmail(ctx, rcpt.Email, subject, body)
		}
	case types.ChannelSMS:
		if d.sms == nil {
			return fail(ErrNoProvider)
		}
		phone, err := NormalizePhone(rcpt.Phone, d.config.DefaultRegion)
		if err != nil {
			return fail(err)
		}
		body := Subject(event)
		send = func(ctx context.Context) error {
			return d.sms.SendSMS(ctx, phone, body)
		}
	default:
		return fail(fmt.Errorf("%w: %s", ErrNoProvider, ch))
	}

	attempts, err := d.retry(ctx, send)
	result.Attempts = attempts
	metrics.DeliveryAttempts.WithLabelValues(string(ch)).Observe(float64(attempts))

	if err != nil {
		return fail(err)
	}

	result.Status = types.DeliveryDelivered
	return result
}

// retry runs send at most MaxRetries+1 times, each attempt bounded by AttemptTimeout.
func (d *dispatcher) retry(ctx context.Context, send func(context.Context) error) (int, error) {
	attempts := 0

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = d.config.InitialInterval
	eb.MaxInterval = d.config.MaxInterval
	eb.MaxElapsedTime = 0

	b := backoff.WithContext(backoff.WithMaxRetries(eb, uint64(d.config.MaxRetries)), ctx)

	err := backoff.Retry(func() error {
		attempts++

		attemptCtx, cancel := context.WithTimeout(ctx, d.config.AttemptTimeout)
		defer cancel()

		return send(attemptCtx)
	}, b)

	return attempts, err
}

func summarize(results []types.RecipientResult) types.DeliveryStatus {
	delivered := 0
	for _, r := range results {
		if r.Status == types.DeliveryDelivered {
			delivered++
		}
	}

	switch {
	case delivered == len(results):
		return types.DeliveryDelivered
	case delivered == 0:
		return types.DeliveryFailed
	default:
		return types.DeliveryPartial
	}
}

func Subject(event types.AlertEvent) string {
	return fmt.Sprintf("[%s] %s", event.Severity, event.Message)
}

func Body(event types.AlertEvent) string {
	b := strings.Builder{}
	fmt.Fprintf(&b, "%s\n\n", event.Message)
	fmt.Fprintf(&b, "Sensor: %s\n", event.SensorID)
	if event.LocationID != 0 {
		fmt.Fprintf(&b, "Location: %d\n", event.LocationID)
	}
	fmt.Fprintf(&b, "Metric: %s\n", event.Metric)
	fmt.Fprintf(&b, "Value: %g %s\n", event.Value, event.Unit)
	fmt.Fprintf(&b, "Observed: %s\n", event.ObservedAt.UTC().Format("2006-01-02 15:04:05 MST"))
	return b.String()
}
