// Package audit implements the AuditSink interface using Kafka or the service log.
package audit

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"github.com/turtacn/securepay/internal/config"
	"github.com/turtacn/securepay/internal/domain/models"
	"github.com/turtacn/securepay/internal/domain/service"
	"github.com/turtacn/securepay/pkg/errors"
	"github.com/turtacn/securepay/pkg/logger"
)

var _ service.AuditSink = (*KafkaProducer)(nil)

// MessageWriter is the subset of *kafka.Writer used by the producer.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaProducer is a Kafka-backed implementation of the AuditSink.
// Events are keyed by assessment ID so one assessment stays on one partition.
type KafkaProducer struct {
	writer     MessageWriter
	signingKey string
	logger     logger.Logger
}

// NewKafkaProducer creates a new KafkaProducer writing to the configured topic.
func NewKafkaProducer(cfg config.AuditConfig, log logger.Logger) (*KafkaProducer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.ErrKafkaConnectionFailed("no brokers configured")
	}
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchSize:              cfg.BatchSize,
		BatchTimeout:           cfg.BatchTimeout,
		AllowAutoTopicCreation: true,
	}
	return NewKafkaProducerWithWriter(writer, cfg.SigningKey, log), nil
}

// NewKafkaProducerWithWriter creates a producer on an existing writer.
func NewKafkaProducerWithWriter(writer MessageWriter, signingKey string, log logger.Logger) *KafkaProducer {
	if log == nil {
		log = logger.NewNoopLogger()
	}
	return &KafkaProducer{
		writer:     writer,
		signingKey: signingKey,
		logger:     log.WithComponent("KafkaProducer"),
	}
}

// Publish sends an assessment event to the Kafka topic.
func (p *KafkaProducer) Publish(ctx context.Context, event models.AssessmentEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Error(ctx, "failed to marshal audit event", err)
		return err
	}

	key := event.AssessmentID
	if key == "" {
		key = event.EventID
	}
	msg := kafka.Message{
		Key:   []byte(key),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
		},
	}
	if p.signingKey != "" {
		msg.Headers = append(msg.Headers, kafka.Header{Key: SignatureHeader, Value: []byte(SignPayload(payload, p.signingKey))})
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error(ctx, "failed to write message to Kafka", err, logger.String("event_type", string(event.EventType)))
		return errors.ErrKafkaConnectionFailed(err.Error()).WithCause(err)
	}
	return nil
}

// Close flushes pending messages and closes the underlying Kafka writer.
func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}
