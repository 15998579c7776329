package sources

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/diwise/iot-telemetry-alerts/internal/pkg/application/ingestion"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/segmentio/kafka-go"
)

type KafkaConfig struct {
	Brokers []string
	Topic   string
	GroupID string
}

func (c KafkaConfig) Enabled() bool {
	return len(c.Brokers) > 0 && c.Topic != ""
}

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaSource struct {
	cfg      KafkaConfig
	reader   messageReader
	ingestor Ingestor
	backoff  func() backoff.BackOff
}

func newRetryBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 30 * time.Second
	b.MaxElapsedTime = 0
	return b
}

func NewKafkaSource(cfg KafkaConfig, i Ingestor) *KafkaSource {
	return &KafkaSource{
		cfg: cfg,
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:  cfg.Brokers,
			Topic:    cfg.Topic,
			GroupID:  cfg.GroupID,
			MinBytes: 1,
			MaxBytes: 10e6,
			MaxWait:  500 * time.Millisecond,
		}),
		ingestor: i,
		backoff:  newRetryBackOff,
	}
}

// Run consumes until ctx is done. A message is committed once its reading is
// stored or found to be invalid. Other failures are retried with backoff, and a
// message still unstored when ctx is done is left uncommitted for redelivery.
func (s *KafkaSource) Run(ctx context.Context) error {
	log := logging.GetFromContext(ctx).With("topic", s.cfg.Topic)
	log.Info("consuming kafka readings", "brokers", s.cfg.Brokers, "group_id", s.cfg.GroupID)

	for {
		msg, err := s.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("failed to fetch kafka message: %w", err)
		}

		if err := s.process(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		if err := s.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			log.Error("failed to commit kafka message", "partition", msg.Partition, "offset", msg.Offset, "err", err.Error())
		}
	}
}

func (s *KafkaSource) process(ctx context.Context, msg kafka.Message) error {
	b := s.backoff
	if b == nil {
		b = newRetryBackOff
	}

	return backoff.RetryNotify(func() error {
		err := handle(ctx, s.ingestor, "kafka", msg.Topic, msg.Value)
		if err == nil || consumable(err) {
			return nil
		}
		return err
	}, backoff.WithContext(b(), ctx), func(err error, next time.Duration) {
		logging.GetFromContext(ctx).Warn("retrying kafka message", "partition", msg.Partition, "offset", msg.Offset, "retry_in", next, "err", err.Error())
	})
}

// consumable errors will not go away on redelivery.
func consumable(err error) bool {
	return errors.Is(err, ErrMalformedPayload) || errors.Is(err, ingestion.ErrInvalidReading)
}

func (s *KafkaSource) Close() error {
	return s.reader.Close()
}
