package kafka

import (
	"context"
	"errors"
	"sync"
	"testing"

	"classbook/pkg/logger"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	mu      sync.Mutex
	err     error
	written []kafka.Message
	closed  bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.written = append(w.written, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func (w *fakeWriter) headers(i int) map[string]string {
	return fromKafkaMessage(w.written[i]).Headers
}

type fakeReader struct {
	mu        sync.Mutex
	pending   []kafka.Message
	committed []kafka.Message
	drained   chan struct{}
}

func newFakeReader(msgs ...kafka.Message) *fakeReader {
	return &fakeReader{pending: msgs, drained: make(chan struct{})}
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	if len(r.pending) > 0 {
		msg := r.pending[0]
		r.pending = r.pending[1:]
		r.mu.Unlock()
		return msg, nil
	}
	r.mu.Unlock()
	select {
	case <-r.drained:
	default:
		close(r.drained)
	}
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.committed = append(r.committed, msgs...)
	return nil
}

func (r *fakeReader) Close() error { return nil }

func buildMessage(t *testing.T, key string) Message {
	t.Helper()
	msg, err := NewMessage().WithKey(key).WithValue(map[string]string{"k": key}).WithEventType("test").Build()
	require.NoError(t, err)
	return msg
}

func TestProducer_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := &Producer{writer: w, topic: "booking-events", log: logger.NewNop()}

	var seen []string
	p.Use(func(ctx context.Context, msg Message, next MessageHandler) error {
		seen = append(seen, msg.Topic)
		return next(ctx, msg)
	})

	require.NoError(t, p.Publish(context.Background(), buildMessage(t, "1")))
	require.Len(t, w.written, 1)
	assert.Equal(t, "1", string(w.written[0].Key))
	assert.Equal(t, "test", w.headers(0)[HeaderEventType])
	assert.Equal(t, []string{"booking-events"}, seen)
}

func TestProducer_RejectsInvalidMessages(t *testing.T) {
	p := &Producer{writer: &fakeWriter{}, topic: "t", log: logger.NewNop()}

	assert.ErrorIs(t, p.Publish(context.Background(), Message{Value: []byte("x")}), ErrEmptyKey)
	assert.ErrorIs(t, p.Publish(context.Background(), Message{Key: "k"}), ErrEmptyValue)
}

func TestProducer_FailedWriteGoesToDLQ(t *testing.T) {
	writeErr := errors.New("connection refused")
	dlq := &fakeWriter{}
	p := &Producer{writer: &fakeWriter{err: writeErr}, dlqWriter: dlq, topic: "t", log: logger.NewNop()}

	err := p.Publish(context.Background(), buildMessage(t, "1"))
	assert.ErrorIs(t, err, writeErr)
	require.Len(t, dlq.written, 1)
	assert.Equal(t, "t", dlq.headers(0)[HeaderOriginalTopic])
	assert.Equal(t, "connection refused", dlq.headers(0)[HeaderDLQError])
}

func TestProducer_Closed(t *testing.T) {
	w := &fakeWriter{}
	p := &Producer{writer: w, topic: "t", log: logger.NewNop()}

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
	assert.ErrorIs(t, p.Publish(context.Background(), buildMessage(t, "1")), ErrProducerClosed)
	assert.NoError(t, p.Close(), "second close is a no-op")
}

func runConsumer(t *testing.T, c *Consumer, r *fakeReader) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Start(ctx) }()
	<-r.drained
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestConsumer_ProcessesAndCommits(t *testing.T) {
	r := newFakeReader(toKafkaMessage(buildMessage(t, "1")), toKafkaMessage(buildMessage(t, "2")))

	var keys []string
	c := &Consumer{
		reader: r,
		topic:  "t",
		log:    logger.NewNop(),
		handler: func(_ context.Context, msg Message) error {
			keys = append(keys, msg.Key)
			return nil
		},
	}

	runConsumer(t, c, r)
	assert.Equal(t, []string{"1", "2"}, keys)
	assert.Len(t, r.committed, 2)
}

func TestConsumer_RetriesTransientErrors(t *testing.T) {
	r := newFakeReader(toKafkaMessage(buildMessage(t, "1")))

	calls := 0
	c := &Consumer{
		reader:     r,
		topic:      "t",
		maxRetries: 3,
		log:        logger.NewNop(),
		handler: func(context.Context, Message) error {
			calls++
			if calls < 3 {
				return NewTransientError("flaky", nil)
			}
			return nil
		},
	}

	runConsumer(t, c, r)
	assert.Equal(t, 3, calls)
	assert.Len(t, r.committed, 1)
}

func TestConsumer_PermanentErrorGoesToDLQ(t *testing.T) {
	r := newFakeReader(toKafkaMessage(buildMessage(t, "1")))
	dlq := &fakeWriter{}

	calls := 0
	c := &Consumer{
		reader:     r,
		dlqWriter:  dlq,
		topic:      "t",
		groupID:    "audit",
		maxRetries: 3,
		log:        logger.NewNop(),
		handler: func(context.Context, Message) error {
			calls++
			return NewPermanentError("decode", errors.New("bad payload"))
		},
	}

	runConsumer(t, c, r)
	assert.Equal(t, 1, calls)
	require.Len(t, dlq.written, 1)
	assert.Equal(t, "audit", dlq.headers(0)[HeaderDLQGroup])
	assert.Len(t, r.committed, 1, "offset is committed after parking the message")
}
