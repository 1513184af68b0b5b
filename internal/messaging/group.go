package messaging

import (
	"context"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.uber.org/zap"
)

// Worker is a consumer the group can start and stop.
type Worker interface {
	Topic() string
	Start(ctx context.Context) error
	Shutdown() error
}

// ConsumerGroup runs workers sharing one subscriber and closes the
// subscriber after the last worker stops.
type ConsumerGroup struct {
	workers    []Worker
	subscriber message.Subscriber
	logger     *zap.Logger
}

func NewConsumerGroup(subscriber message.Subscriber, logger *zap.Logger) *ConsumerGroup {
	return &ConsumerGroup{
		subscriber: subscriber,
		logger:     logger,
	}
}

func (g *ConsumerGroup) Add(worker Worker) {
	g.workers = append(g.workers, worker)
}

// Topics lists the topics of the registered workers in registration order.
func (g *ConsumerGroup) Topics() []string {
	topics := make([]string, 0, len(g.workers))
	for _, w := range g.workers {
		topics = append(topics, w.Topic())
	}

	return topics
}

// Start starts every worker. If one fails, the workers already started are
// shut down in reverse order.
func (g *ConsumerGroup) Start(ctx context.Context) error {
	for i, w := range g.workers {
		if err := w.Start(ctx); err != nil {
			for j := i - 1; j >= 0; j-- {
				_ = g.workers[j].Shutdown()
			}

			return fmt.Errorf("start consumer for %s: %w", w.Topic(), err)
		}
	}

	g.logger.Info("consumer group started", zap.Strings("topics", g.Topics()))

	return nil
}

// Shutdown stops every worker, then closes the subscriber. All errors are joined.
func (g *ConsumerGroup) Shutdown() error {
	errs := make([]error, 0, len(g.workers)+1)

	for _, w := range g.workers {
		if err := w.Shutdown(); err != nil {
			errs = append(errs, fmt.Errorf("stop consumer for %s: %w", w.Topic(), err))
		}
	}

	if err := g.subscriber.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close subscriber: %w", err))
	}

	g.logger.Info("consumer group stopped")

	return errors.Join(errs...)
}
