package messaging_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/serroba/shortcode/internal/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type codeEvent struct {
	Code string `json:"code"`
}

// fakeSubscriber hands out one buffered channel for every topic.
type fakeSubscriber struct {
	msgs         chan *message.Message
	subscribeErr error

	mu     sync.Mutex
	topics []string
	closed bool
}

func newFakeSubscriber() *fakeSubscriber {
	return &fakeSubscriber{msgs: make(chan *message.Message, 8)}
}

func (f *fakeSubscriber) Subscribe(_ context.Context, topic string) (<-chan *message.Message, error) {
	if f.subscribeErr != nil {
		return nil, f.subscribeErr
	}

	f.mu.Lock()
	f.topics = append(f.topics, topic)
	f.mu.Unlock()

	return f.msgs, nil
}

func (f *fakeSubscriber) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.closed {
		f.closed = true
		close(f.msgs)
	}

	return nil
}

func (f *fakeSubscriber) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.closed
}

type outcome int

const (
	acked outcome = iota
	nacked
)

func waitOutcome(t *testing.T, msg *message.Message) outcome {
	t.Helper()

	select {
	case <-msg.Acked():
		return acked
	case <-msg.Nacked():
		return nacked
	case <-time.After(time.Second):
		t.Fatal("message was neither acked nor nacked")
	}

	return -1
}

func encoded(t *testing.T, event codeEvent) *message.Message {
	t.Helper()

	payload, err := json.Marshal(event)
	require.NoError(t, err)

	return message.NewMessage(uuid.NewString(), payload)
}

func TestConsumer_Outcomes(t *testing.T) {
	errBoom := errors.New("boom")

	tests := []struct {
		name    string
		msg     func(t *testing.T) *message.Message
		handler messaging.Handler[codeEvent]
		want    outcome
		stats   messaging.Stats
	}{
		{
			name:    "handled event is acked",
			msg:     func(t *testing.T) *message.Message { return encoded(t, codeEvent{Code: "aZ3-k"}) },
			handler: func(context.Context, *codeEvent) error { return nil },
			want:    acked,
			stats:   messaging.Stats{Processed: 1},
		},
		{
			name: "undecodable payload is acked and dropped",
			msg: func(*testing.T) *message.Message {
				return message.NewMessage(uuid.NewString(), []byte("{not json"))
			},
			handler: func(context.Context, *codeEvent) error {
				return errors.New("handler must not run")
			},
			want:  acked,
			stats: messaging.Stats{Dropped: 1},
		},
		{
			name:    "handler error is nacked",
			msg:     func(t *testing.T) *message.Message { return encoded(t, codeEvent{Code: "q1w2e"}) },
			handler: func(context.Context, *codeEvent) error { return errBoom },
			want:    nacked,
			stats:   messaging.Stats{Failed: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := newFakeSubscriber()
			consumer := messaging.NewConsumer(sub, "url.created", tt.handler, zap.NewNop())
			require.NoError(t, consumer.Start(context.Background()))

			msg := tt.msg(t)
			sub.msgs <- msg

			assert.Equal(t, tt.want, waitOutcome(t, msg))
			assert.Equal(t, tt.stats, consumer.Stats())

			require.NoError(t, consumer.Shutdown())
		})
	}
}

func TestConsumer_DecodesIntoHandler(t *testing.T) {
	sub := newFakeSubscriber()

	received := make(chan codeEvent, 1)
	consumer := messaging.NewConsumer(sub, "url.created", func(_ context.Context, e *codeEvent) error {
		received <- *e

		return nil
	}, zap.NewNop())

	require.NoError(t, consumer.Start(context.Background()))
	t.Cleanup(func() { _ = consumer.Shutdown() })

	sub.msgs <- encoded(t, codeEvent{Code: "x_9.~"})

	select {
	case got := <-received:
		assert.Equal(t, "x_9.~", got.Code)
	case <-time.After(time.Second):
		t.Fatal("handler not called")
	}

	assert.Equal(t, []string{"url.created"}, sub.topics)
}

func TestConsumer_StartFailure(t *testing.T) {
	sub := &fakeSubscriber{subscribeErr: errors.New("redis down")}
	consumer := messaging.NewConsumer(sub, "url.created",
		func(context.Context, *codeEvent) error { return nil }, zap.NewNop())

	require.ErrorContains(t, consumer.Start(context.Background()), "redis down")

	// Shutdown must not block after a failed start.
	assert.NoError(t, consumer.Shutdown())
}

func TestConsumer_StopsWhenContextCancelled(t *testing.T) {
	sub := newFakeSubscriber()
	consumer := messaging.NewConsumer(sub, "url.created",
		func(context.Context, *codeEvent) error { return nil }, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, consumer.Start(ctx))

	cancel()

	done := make(chan struct{})
	go func() {
		_ = consumer.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("shutdown blocked after cancel")
	}
}
