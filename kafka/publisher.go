package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/realestate-favorites/internal/favorite/domain"
	"github.com/tair/realestate-favorites/pkg/logger"
)

// Publisher wraps Kafka producer
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
}

// NewProducerConfig returns the producer settings used by the favorite service
func NewProducerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Retry.Max = 3
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.MaxMessageBytes = 1000000
	return config
}

// NewPublisher creates a new Kafka publisher
func NewPublisher(brokers []string) (*Publisher, error) {
	producer, err := sarama.NewSyncProducer(brokers, NewProducerConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.Logger.Info().
		Strs("brokers", brokers).
		Msg("Kafka publisher initialized")

	return NewPublisherWithProducer(producer), nil
}

// NewPublisherWithProducer creates a publisher on top of an existing producer
func NewPublisherWithProducer(producer sarama.SyncProducer) *Publisher {
	return &Publisher{
		producer: producer,
		topic:    TopicFavoriteEvents,
	}
}

// PublishFavoriteAdded publishes a favorite.added event
func (p *Publisher) PublishFavoriteAdded(ctx context.Context, favorite *domain.Favorite) error {
	return p.publish(ctx, EventTypeFavoriteAdded, favorite)
}

// PublishFavoriteRemoved publishes a favorite.removed event
func (p *Publisher) PublishFavoriteRemoved(ctx context.Context, favorite *domain.Favorite) error {
	return p.publish(ctx, EventTypeFavoriteRemoved, favorite)
}

// PublishFavoriteUpdated publishes a favorite.updated event
func (p *Publisher) PublishFavoriteUpdated(ctx context.Context, favorite *domain.Favorite) error {
	return p.publish(ctx, EventTypeFavoriteUpdated, favorite)
}

func (p *Publisher) publish(ctx context.Context, eventType string, favorite *domain.Favorite) error {
	tracer := otel.Tracer("kafka-publisher")
	ctx, span := tracer.Start(ctx, "kafka.publish."+eventType,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", p.topic),
			attribute.String("messaging.destination_kind", "topic"),
			attribute.String("event.type", eventType),
			attribute.Int64("favorite.id", int64(favorite.ID)),
			attribute.Int64("user.id", int64(favorite.UserID)),
			attribute.Int64("property.id", int64(favorite.PropertyID)),
		),
	)
	defer span.End()

	event := FavoriteEvent{
		EventID:    "evt_" + uuid.NewString(),
		EventType:  eventType,
		FavoriteID: favorite.ID,
		UserID:     favorite.UserID,
		PropertyID: favorite.PropertyID,
		Notes:      favorite.Notes,
		Timestamp:  time.Now().UTC(),
	}
	span.SetAttributes(attribute.String("event.id", event.EventID))

	eventBytes, err := json.Marshal(event)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to marshal event")
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// Inject trace context into Kafka headers
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	headers := []sarama.RecordHeader{
		{Key: []byte("event_type"), Value: []byte(eventType)},
		{Key: []byte("event_id"), Value: []byte(event.EventID)},
	}
	for key, value := range carrier {
		headers = append(headers, sarama.RecordHeader{
			Key:   []byte(key),
			Value: []byte(value),
		})
	}

	msg := &sarama.ProducerMessage{
		Topic:   p.topic,
		Key:     sarama.StringEncoder(fmt.Sprintf("property_%d", favorite.PropertyID)),
		Value:   sarama.ByteEncoder(eventBytes),
		Headers: headers,
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to send message")
		logger.Error(ctx).
			Err(err).
			Str("topic", p.topic).
			Str("event_type", eventType).
			Uint("favorite_id", favorite.ID).
			Msg("Failed to publish event")
		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	span.SetAttributes(
		attribute.Int("messaging.kafka.partition", int(partition)),
		attribute.Int64("messaging.kafka.offset", offset),
	)
	span.SetStatus(codes.Ok, "Event published successfully")

	logger.Info(ctx).
		Str("event_id", event.EventID).
		Str("event_type", eventType).
		Str("topic", p.topic).
		Int32("partition", partition).
		Int64("offset", offset).
		Uint("favorite_id", favorite.ID).
		Uint("user_id", favorite.UserID).
		Uint("property_id", favorite.PropertyID).
		Msg("Favorite event published")

	return nil
}

// Close closes the Kafka producer
func (p *Publisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
