package alerts

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/diwise/iot-telemetry-alerts/internal/pkg/application/dedup"
	"github.com/diwise/iot-telemetry-alerts/pkg/types"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
)

// NewCooldownsInvalidatedHandler clears local cooldowns when any instance invalidates a sensor.
// Clearing is idempotent so receiving our own message is harmless.
func NewCooldownsInvalidatedHandler(c dedup.Cache) messaging.TopicMessageHandler {
	return func(ctx context.Context, itm messaging.IncomingTopicMessage, l *slog.Logger) {
		var err error

		ctx, span := tracer.Start(ctx, "cooldowns-invalidated")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, l, ctx)

		msg := types.CooldownsInvalidated{}

		err = json.Unmarshal(itm.Body(), &msg)
		if err != nil {
			log.Error("failed to unmarshal message", "err", err.Error())
			return
		}

		msg.SensorID = types.NormalizeSensorID(msg.SensorID)
		if msg.SensorID == "" {
			log.Warn("cooldown invalidation without sensor id")
			return
		}

		err = c.Invalidate(ctx, msg.SensorID)
		if err != nil {
			log.Error("could not invalidate cooldowns", "sensor_id", msg.SensorID, "err", err.Error())
		}
	}
}
