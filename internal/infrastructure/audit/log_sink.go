package audit

import (
	"context"

	"github.com/turtacn/securepay/internal/domain/models"
	"github.com/turtacn/securepay/internal/domain/service"
	"github.com/turtacn/securepay/pkg/logger"
)

var _ service.AuditSink = (*LogSink)(nil)

// LogSink writes assessment events to the service log. It is used when no
// Kafka brokers are configured.
type LogSink struct {
	logger logger.Logger
}

// NewLogSink creates a log-backed audit sink.
func NewLogSink(log logger.Logger) *LogSink {
	if log == nil {
		log = logger.NewNoopLogger()
	}
	return &LogSink{logger: log.WithComponent("audit")}
}

func (s *LogSink) Publish(ctx context.Context, event models.AssessmentEvent) error {
	s.logger.Info(ctx, "Audit event",
		logger.String("event_id", event.EventID),
		logger.String("event_type", string(event.EventType)),
		logger.String("assessment_id", event.AssessmentID),
		logger.Float64("score", event.Score),
		logger.String("level", string(event.Level)),
		logger.String("domain", event.Domain),
		logger.String("business_type", string(event.BusinessType)),
		logger.String("plan_id", event.PlanID),
	)
	return nil
}

func (s *LogSink) Close() error { return nil }
