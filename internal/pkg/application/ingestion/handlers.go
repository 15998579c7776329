package ingestion

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/diwise/iot-telemetry-alerts/pkg/types"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
)

func NewReadingHandler(i Ingestor) messaging.TopicMessageHandler {
	return func(ctx context.Context, itm messaging.IncomingTopicMessage, l *slog.Logger) {
		var err error

		ctx, span := tracer.Start(ctx, "sensor-reading")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, l, ctx)

		msg := types.ReadingMessage{}

		err = json.Unmarshal(itm.Body(), &msg)
		if err != nil {
			log.Error("failed to unmarshal message", "err", err.Error())
			return
		}

		r, err := msg.Reading()
		if err != nil {
			log.Warn("discarding reading", "sensor_id", msg.SensorID, "err", err.Error())
			return
		}

		ctx = logging.NewContextWithLogger(ctx, log)

		_, err = i.Ingest(ctx, r)
		if err != nil {
			if errors.Is(err, ErrInvalidReading) {
				log.Warn("reading rejected", "sensor_id", r.SensorID, "err", err.Error())
				err = nil
				return
			}
			log.Error("failed to ingest reading", "sensor_id", r.SensorID, "err", err.Error())
		}
	}
}
