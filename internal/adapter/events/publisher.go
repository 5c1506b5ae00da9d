package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/polkiloo/credit-checkout/internal/domain/model"
)

// Publisher delivers outbox events to the event bus.
type Publisher interface {
	Publish(ctx context.Context, events []model.OutboxEvent) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes events to Kafka, keyed so that events of one order share a partition.
type KafkaPublisher struct {
	writer messageWriter
}

// NewKafkaPublisher builds a publisher for the given brokers. Topics are taken from each event.
func NewKafkaPublisher(brokers []string) *KafkaPublisher {
	return &KafkaPublisher{writer: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}}
}

// Publish writes all events in a single batch.
func (p *KafkaPublisher) Publish(ctx context.Context, events []model.OutboxEvent) error {
	if len(events) == 0 {
		return nil
	}
	msgs := make([]kafka.Message, 0, len(events))
	for _, event := range events {
		msgs = append(msgs, kafka.Message{
			Topic: event.Topic,
			Key:   []byte(event.Key),
			Value: event.Payload,
			Time:  event.CreatedAt.UTC(),
			Headers: []kafka.Header{
				{Key: "event_id", Value: []byte(event.EventID)},
			},
		})
	}
	return p.writer.WriteMessages(ctx, msgs...)
}

// Close flushes and closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// LogPublisher only logs events; used when no brokers are configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(_ context.Context, events []model.OutboxEvent) error {
	for _, event := range events {
		p.logger.Info("event published",
			slog.String("event_id", event.EventID),
			slog.String("topic", event.Topic),
			slog.String("key", event.Key),
			slog.Time("created_at", event.CreatedAt.UTC().Truncate(time.Second)),
		)
	}
	return nil
}

func (p *LogPublisher) Close() error { return nil }
