package playermetrics

import (
	"context"
	"time"
)

type noopMetrics struct{}

// NewNoop returns metrics that discard every measurement.
func NewNoop() PlayerMetrics { return noopMetrics{} }

func (noopMetrics) RecordOperationAttempt(context.Context, string, string)                 {}
func (noopMetrics) RecordOperationSuccess(context.Context, string, string)                 {}
func (noopMetrics) RecordOperationFailure(context.Context, string, string)                 {}
func (noopMetrics) RecordOperationDuration(context.Context, string, string, time.Duration) {}
func (noopMetrics) RecordPlayerDeleted(context.Context, bool)                              {}
func (noopMetrics) RecordEventPublishFailure(context.Context, string)                      {}
