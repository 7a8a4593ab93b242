package playermetrics

import (
	"context"
	"time"
)

// PlayerMetrics records player directory operations.
type PlayerMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, duration time.Duration)
	RecordPlayerDeleted(ctx context.Context, forced bool)
	RecordEventPublishFailure(ctx context.Context, topic string)
}
