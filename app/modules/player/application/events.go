package playerservice

import (
	"context"

	"github.com/bettercodepaul/Skat/internal/eventbus"
	"github.com/bettercodepaul/Skat/internal/observability/attr"
)

// publish emits an event after its transaction committed. Failures are
// logged and counted; they never change the outcome of the operation.
func (s *PlayerService) publish(ctx context.Context, topic string, payload any) {
	if s.publisher == nil {
		return
	}

	msg, err := eventbus.NewMessage(ctx, topic, payload)
	if err == nil {
		err = s.publisher.Publish(topic, msg)
	}
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to publish player event",
			attr.ExtractCorrelationID(ctx),
			attr.String("topic", topic),
			attr.Error(err),
		)
		if s.metrics != nil {
			s.metrics.RecordEventPublishFailure(ctx, topic)
		}
	}
}
