package messaging_test

import (
	"context"
	"errors"
	"testing"

	"github.com/serroba/shortcode/internal/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeWorker records lifecycle calls into a shared journal.
type fakeWorker struct {
	topic       string
	journal     *[]string
	startErr    error
	shutdownErr error
}

func (w *fakeWorker) Topic() string { return w.topic }

func (w *fakeWorker) Start(context.Context) error {
	if w.startErr != nil {
		return w.startErr
	}

	*w.journal = append(*w.journal, "start "+w.topic)

	return nil
}

func (w *fakeWorker) Shutdown() error {
	*w.journal = append(*w.journal, "stop "+w.topic)

	return w.shutdownErr
}

func TestConsumerGroup_Start(t *testing.T) {
	t.Run("starts workers in order", func(t *testing.T) {
		var journal []string

		group := messaging.NewConsumerGroup(newFakeSubscriber(), zap.NewNop())
		group.Add(&fakeWorker{topic: "url.created", journal: &journal})
		group.Add(&fakeWorker{topic: "url.audited", journal: &journal})

		require.NoError(t, group.Start(context.Background()))

		assert.Equal(t, []string{"start url.created", "start url.audited"}, journal)
		assert.Equal(t, []string{"url.created", "url.audited"}, group.Topics())
	})

	t.Run("rolls back started workers in reverse", func(t *testing.T) {
		var journal []string

		group := messaging.NewConsumerGroup(newFakeSubscriber(), zap.NewNop())
		group.Add(&fakeWorker{topic: "a", journal: &journal})
		group.Add(&fakeWorker{topic: "b", journal: &journal})
		group.Add(&fakeWorker{topic: "c", journal: &journal, startErr: errors.New("subscribe failed")})

		err := group.Start(context.Background())

		require.ErrorContains(t, err, "start consumer for c")
		require.ErrorContains(t, err, "subscribe failed")
		assert.Equal(t, []string{"start a", "start b", "stop b", "stop a"}, journal)
	})
}

func TestConsumerGroup_Shutdown(t *testing.T) {
	t.Run("stops workers and closes subscriber", func(t *testing.T) {
		var journal []string

		sub := newFakeSubscriber()
		group := messaging.NewConsumerGroup(sub, zap.NewNop())
		group.Add(&fakeWorker{topic: "url.created", journal: &journal})
		require.NoError(t, group.Start(context.Background()))

		require.NoError(t, group.Shutdown())

		assert.Equal(t, []string{"start url.created", "stop url.created"}, journal)
		assert.True(t, sub.isClosed())
	})

	t.Run("joins every worker error", func(t *testing.T) {
		var journal []string

		errFirst := errors.New("first")
		errSecond := errors.New("second")

		sub := newFakeSubscriber()
		group := messaging.NewConsumerGroup(sub, zap.NewNop())
		group.Add(&fakeWorker{topic: "a", journal: &journal, shutdownErr: errFirst})
		group.Add(&fakeWorker{topic: "b", journal: &journal, shutdownErr: errSecond})

		err := group.Shutdown()

		require.ErrorIs(t, err, errFirst)
		require.ErrorIs(t, err, errSecond)
		assert.Equal(t, []string{"stop a", "stop b"}, journal)
		assert.True(t, sub.isClosed())
	})
}
