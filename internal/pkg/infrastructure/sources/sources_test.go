package sources

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/diwise/iot-telemetry-alerts/internal/pkg/application/ingestion"
	"github.com/diwise/iot-telemetry-alerts/pkg/types"
	"github.com/matryer/is"
	"github.com/segmentio/kafka-go"
)

type ingestorFunc func(ctx context.Context, r types.Reading) (types.Verdict, error)

func (f ingestorFunc) Ingest(ctx context.Context, r types.Reading) (types.Verdict, error) {
	return f(ctx, r)
}

type recorder struct {
	mu       sync.Mutex
	readings []types.Reading
}

func (rec *recorder) ingestor() Ingestor {
	return ingestorFunc(func(ctx context.Context, r types.Reading) (types.Verdict, error) {
		rec.mu.Lock()
		defer rec.mu.Unlock()
		rec.readings = append(rec.readings, r)
		return types.Verdict{SensorID: r.SensorID}, nil
	})
}

func TestDecode(t *testing.T) {
	is := is.New(t)

	r, err := Decode([]byte(`{"sensorId":"s1","metric":"temperature","value":21.5,"unit":"°C","timestamp":1700000000000,"locationId":4}`))
	is.NoErr(err)
	is.Equal("s1", r.SensorID)
	is.Equal(21.5, r.Value)
	is.Equal(4, r.LocationID)
	is.Equal(time.UnixMilli(1700000000000).UTC(), r.Timestamp)

	_, err = Decode([]byte(`{"sensorId":"s1"}`))
	is.True(errors.Is(err, ErrMalformedPayload))

	_, err = Decode([]byte(`not json`))
	is.True(errors.Is(err, ErrMalformedPayload))
}

type fakeMessage struct {
	topic   string
	payload []byte
}

func (m fakeMessage) Duplicate() bool   { return false }
func (m fakeMessage) Qos() byte         { return 0 }
func (m fakeMessage) Retained() bool    { return false }
func (m fakeMessage) Topic() string     { return m.topic }
func (m fakeMessage) MessageID() uint16 { return 1 }
func (m fakeMessage) Payload() []byte   { return m.payload }
func (m fakeMessage) Ack()              {}

func TestMQTTMessageHandler(t *testing.T) {
	is := is.New(t)

	rec := &recorder{}
	handler := newMessageHandler(context.Background(), rec.ingestor())

	handler(nil, fakeMessage{topic: "readings/s1", payload: []byte(`{"sensorId":"s1","value":3}`)})
	handler(nil, fakeMessage{topic: "readings/s1", payload: []byte(`{"sensorId":"s1"}`)})

	is.Equal(1, len(rec.readings))
	is.Equal("s1", rec.readings[0].SensorID)
}

type fakeReader struct {
	mu        sync.Mutex
	messages  []kafka.Message
	committed []kafka.Message
	closed    bool
}

func (f *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	f.mu.Lock()
	if len(f.messages) == 0 {
		f.mu.Unlock()
		<-ctx.Done()
		return kafka.Message{}, ctx.Err()
	}
	defer f.mu.Unlock()
	m := f.messages[0]
	f.messages = f.messages[1:]
	return m, nil
}

func (f *fakeReader) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.committed = append(f.committed, msgs...)
	return nil
}

func (f *fakeReader) commits() []kafka.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.committed
}

func quickRetries() backoff.BackOff {
	return backoff.NewConstantBackOff(time.Millisecond)
}

func waitFor(cond func() bool) {
	deadline := time.Now().Add(2 * time.Second)
	for !cond() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
}

func (f *fakeReader) Close() error {
	f.closed = true
	return nil
}

func TestKafkaSourceCommitsStoredAndUnusableMessages(t *testing.T) {
	is := is.New(t)

	reader := &fakeReader{messages: []kafka.Message{
		{Topic: "readings", Offset: 1, Value: []byte(`{"sensorId":"s1","value":1}`)},
		{Topic: "readings", Offset: 2, Value: []byte(`garbage`)},
		{Topic: "readings", Offset: 3, Value: []byte(`{"sensorId":"unknown","value":2}`)},
		{Topic: "readings", Offset: 4, Value: []byte(`{"sensorId":"s2","value":2}`)},
	}}

	rec := &recorder{}
	recorded := rec.ingestor()
	i := ingestorFunc(func(ctx context.Context, r types.Reading) (types.Verdict, error) {
		if r.SensorID == "unknown" {
			return types.Verdict{}, fmt.Errorf("%w: sensor unknown is not registered", ingestion.ErrInvalidReading)
		}
		return recorded.Ingest(ctx, r)
	})

	src := &KafkaSource{cfg: KafkaConfig{Topic: "readings"}, reader: reader, ingestor: i, backoff: quickRetries}

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error)
	go func() { done <- src.Run(ctx) }()

	waitFor(func() bool { return len(reader.commits()) == 4 })

	cancel()
	is.NoErr(<-done)

	is.Equal(2, len(rec.readings))
	is.Equal(4, len(reader.commits()))

	is.NoErr(src.Close())
	is.True(reader.closed)
}

func TestKafkaSourceRetriesUntilReadingIsStored(t *testing.T) {
	is := is.New(t)

	reader := &fakeReader{messages: []kafka.Message{
		{Topic: "readings", Offset: 7, Value: []byte(`{"sensorId":"s1","value":1}`)},
	}}

	var mu sync.Mutex
	attempts := 0

	i := ingestorFunc(func(ctx context.Context, r types.Reading) (types.Verdict, error) {
		mu.Lock()
		defer mu.Unlock()
		attempts++
		if attempts < 3 {
			return types.Verdict{}, errors.New("could not store reading: connection refused")
		}
		return types.Verdict{SensorID: r.SensorID}, nil
	})

	src := &KafkaSource{reader: reader, ingestor: i, backoff: quickRetries}

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error)
	go func() { done <- src.Run(ctx) }()

	waitFor(func() bool { return len(reader.commits()) == 1 })

	cancel()
	is.NoErr(<-done)

	is.Equal(3, attempts)
	is.Equal(int64(7), reader.commits()[0].Offset)
}

func TestKafkaSourceLeavesUnstoredReadingUncommitted(t *testing.T) {
	is := is.New(t)

	reader := &fakeReader{messages: []kafka.Message{
		{Topic: "readings", Offset: 9, Value: []byte(`{"sensorId":"s1","value":1}`)},
	}}

	attempted := make(chan struct{}, 1)
	i := ingestorFunc(func(ctx context.Context, r types.Reading) (types.Verdict, error) {
		select {
		case attempted <- struct{}{}:
		default:
		}
		return types.Verdict{}, errors.New("could not store reading: database is down")
	})

	src := &KafkaSource{reader: reader, ingestor: i, backoff: quickRetries}

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error)
	go func() { done <- src.Run(ctx) }()

	<-attempted
	time.Sleep(20 * time.Millisecond)

	cancel()
	is.NoErr(<-done)

	is.Equal(0, len(reader.commits()))
}

type failingReader struct{ fakeReader }

func (f *failingReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	return kafka.Message{}, io.ErrUnexpectedEOF
}

func TestKafkaSourceReturnsFetchErrors(t *testing.T) {
	is := is.New(t)

	src := &KafkaSource{reader: &failingReader{}, ingestor: (&recorder{}).ingestor()}

	err := src.Run(context.Background())
	is.True(errors.Is(err, io.ErrUnexpectedEOF))
}
