// Package sources feeds readings from external brokers into the ingestor.
package sources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/diwise/iot-telemetry-alerts/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
)

var ErrMalformedPayload = errors.New("malformed reading payload")

type Ingestor interface {
	Ingest(ctx context.Context, r types.Reading) (types.Verdict, error)
}

func Decode(payload []byte) (types.Reading, error) {
	msg := types.ReadingMessage{}

	if err := json.Unmarshal(payload, &msg); err != nil {
		return types.Reading{}, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}

	r, err := msg.Reading()
	if err != nil {
		return types.Reading{}, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}

	return r, nil
}

// handle decodes and ingests one payload. Errors are logged and returned, the
// caller decides whether the message is consumed anyway.
func handle(ctx context.Context, i Ingestor, source, topic string, payload []byte) error {
	log := logging.GetFromContext(ctx).With("source", source, "topic", topic)

	r, err := Decode(payload)
	if err != nil {
		log.Warn("discarding message", "err", err.Error())
		return err
	}

	_, err = i.Ingest(ctx, r)
	if err != nil {
		log.Warn("reading not ingested", "sensor_id", r.SensorID, "err", err.Error())
		return err
	}

	return nil
}
