// Package eventbus publishes domain events through watermill, over NATS when
// a URL is configured and in-process otherwise.
package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	nc "github.com/nats-io/nats.go"

	"github.com/bettercodepaul/Skat/internal/observability/attr"
)

// Publisher is the subset of watermill's publisher the services depend on.
type Publisher interface {
	Publish(topic string, messages ...*message.Message) error
	Close() error
}

// NewPublisher connects to NATS core subjects at natsURL. An empty URL yields
// an in-process gochannel publisher.
func NewPublisher(natsURL string, logger *slog.Logger) (Publisher, error) {
	wmLogger := watermill.NewSlogLogger(logger)

	if natsURL == "" {
		logger.Info("NATS URL not configured, using in-process event bus")
		return gochannel.NewGoChannel(gochannel.Config{}, wmLogger), nil
	}

	publisher, err := nats.NewPublisher(
		nats.PublisherConfig{
			URL:       natsURL,
			Marshaler: &nats.NATSMarshaler{},
			NatsOptions: []nc.Option{
				nc.RetryOnFailedConnect(true),
				nc.Timeout(30 * time.Second),
				nc.ReconnectWait(1 * time.Second),
			},
			JetStream: nats.JetStreamConfig{Disabled: true},
		},
		wmLogger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create NATS publisher: %w", err)
	}
	return publisher, nil
}

// NewMessage JSON-encodes payload into a message carrying the correlation id
// found on ctx.
func NewMessage(ctx context.Context, topic string, payload any) (*message.Message, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", topic, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), body)
	msg.Metadata.Set("topic", topic)
	msg.Metadata.Set("content_type", "application/json")
	if id := attr.CorrelationIDFromContext(ctx); id != "" {
		middleware.SetCorrelationID(id, msg)
	}
	return msg, nil
}
