package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/plinkhq/plink/internal/app/model"
	"github.com/plinkhq/plink/internal/app/repository"
	"github.com/plinkhq/plink/internal/infra/prometheus"
	"go.uber.org/zap"
)

// ViewConsumer consumes profile-view events from NATS JetStream and persists
// them into the analytics event log.
type ViewConsumer struct {
	js     nats.JetStreamContext
	logger *zap.Logger
	events repository.AnalyticsEventRepository
}

// NewViewConsumer creates a new profile-view event consumer.
func NewViewConsumer(js nats.JetStreamContext, logger *zap.Logger, events repository.AnalyticsEventRepository) *ViewConsumer {
	return &ViewConsumer{js: js, logger: logger, events: events}
}

// Start ensures the stream and durable consumer exist, then begins consuming.
func (c *ViewConsumer) Start() error {
	_, err := c.js.StreamInfo(model.ViewStreamName)
	if err != nil {
		_, err = c.js.AddStream(&nats.StreamConfig{
			Name:     model.ViewStreamName,
			Subjects: []string{model.ViewStreamSubject},
			MaxBytes: model.ViewStreamMaxBytes,
		})
		if err != nil {
			return fmt.Errorf("failed to create stream: %w", err)
		}
	}

	_, err = c.js.ConsumerInfo(model.ViewStreamName, model.ViewConsumerName)
	if err != nil {
		_, err = c.js.AddConsumer(model.ViewStreamName, &nats.ConsumerConfig{
			Durable:   model.ViewConsumerName,
			AckPolicy: nats.AckExplicitPolicy,
		})
		if err != nil {
			return fmt.Errorf("failed to create consumer: %w", err)
		}
	}

	sub, err := c.js.PullSubscribe(model.ViewStreamSubject, model.ViewConsumerName)
	if err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	go c.consume(sub)
	return nil
}

func (c *ViewConsumer) consume(sub *nats.Subscription) {
	ctx := context.Background()
	for {
		msgs, err := sub.Fetch(10, nats.MaxWait(5*time.Second))
		if err != nil && err != nats.ErrTimeout {
			c.logger.Error("failed to fetch messages", zap.Error(err))
			continue
		}

		for _, msg := range msgs {
			var event model.ViewEvent
			if err := json.Unmarshal(msg.Data, &event); err != nil {
				c.logger.Error("failed to unmarshal view event", zap.Error(err))
				msg.Nak()
				continue
			}

			row := &model.AnalyticsEvent{
				ID:        event.ID,
				UserID:    event.UserID,
				IP:        event.IP,
				UserAgent: event.UserAgent,
				CreatedAt: event.Timestamp,
			}
			if err := c.events.Create(ctx, row); err != nil {
				c.logger.Error("failed to store view event",
					zap.String("id", event.ID),
					zap.String("user_id", event.UserID),
					zap.Error(err))
				msg.Nak()
				continue
			}

			prometheus.ViewsRecorded.Inc()
			c.logger.Debug("view event stored",
				zap.String("id", event.ID),
				zap.String("user_id", event.UserID),
				zap.Time("timestamp", event.Timestamp),
			)

			msg.Ack()
		}
	}
}
