package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/IBM/sarama"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/realestate-favorites/pkg/logger"
)

var (
	errMissingEventType = errors.New("message without event type")
	errNoHandler        = errors.New("no handler registered for event type")
)

// Consumer wraps Kafka consumer
type Consumer struct {
	consumer      sarama.ConsumerGroup
	groupID       string
	topics        []string
	handlers      map[string]EventHandler
	handlersMutex sync.RWMutex
	wg            sync.WaitGroup
}

// EventHandler handles one deletion event
type EventHandler func(ctx context.Context, event EntityDeletedEvent) error

// NewConsumerConfig returns the consumer group settings used by the favorite service
func NewConsumerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Version = sarama.V2_6_0_0
	config.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	config.Consumer.Offsets.Initial = sarama.OffsetNewest
	config.Consumer.Return.Errors = true
	return config
}

// NewConsumer creates a new Kafka consumer
func NewConsumer(brokers []string, groupID string, topics []string) (*Consumer, error) {
	group, err := sarama.NewConsumerGroup(brokers, groupID, NewConsumerConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka consumer: %w", err)
	}

	logger.Logger.Info().
		Strs("brokers", brokers).
		Str("group_id", groupID).
		Strs("topics", topics).
		Msg("Kafka consumer initialized")

	return NewConsumerWithGroup(group, groupID, topics), nil
}

// NewConsumerWithGroup creates a consumer on top of an existing consumer group
func NewConsumerWithGroup(group sarama.ConsumerGroup, groupID string, topics []string) *Consumer {
	return &Consumer{
		consumer: group,
		groupID:  groupID,
		topics:   topics,
		handlers: make(map[string]EventHandler),
	}
}

// RegisterHandler registers an event handler for a specific event type
func (c *Consumer) RegisterHandler(eventType string, handler EventHandler) {
	c.handlersMutex.Lock()
	defer c.handlersMutex.Unlock()
	c.handlers[eventType] = handler
	logger.Logger.Info().
		Str("event_type", eventType).
		Msg("Event handler registered")
}

// Start consumes messages in the background until ctx is cancelled
func (c *Consumer) Start(ctx context.Context) {
	handler := &consumerGroupHandler{consumer: c}

	c.wg.Add(2)
	go func() {
		defer c.wg.Done()
		for {
			if err := c.consumer.Consume(ctx, c.topics, handler); err != nil {
				if errors.Is(err, sarama.ErrClosedConsumerGroup) {
					return
				}
				logger.Logger.Error().
					Err(err).
					Msg("Error from consumer")
			}
			if ctx.Err() != nil {
				logger.Logger.Info().Msg("Consumer context cancelled, stopping...")
				return
			}
		}
	}()

	go func() {
		defer c.wg.Done()
		for err := range c.consumer.Errors() {
			logger.Logger.Error().
				Err(err).
				Msg("Consumer error")
		}
	}()

	logger.Logger.Info().
		Strs("topics", c.topics).
		Str("group_id", c.groupID).
		Msg("Kafka consumer started")
}

// Close closes the Kafka consumer and waits for the background loops
func (c *Consumer) Close() error {
	if c.consumer == nil {
		return nil
	}
	err := c.consumer.Close()
	c.wg.Wait()
	return err
}

// consumerGroupHandler implements sarama.ConsumerGroupHandler
type consumerGroupHandler struct {
	consumer *Consumer
}

func (h *consumerGroupHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

// ConsumeClaim marks every message, including ones that failed, so a poison message cannot stall the partition
func (h *consumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		_ = h.handleMessage(session.Context(), message)
		session.MarkMessage(message, "")
	}
	return nil
}

func (h *consumerGroupHandler) handleMessage(ctx context.Context, message *sarama.ConsumerMessage) error {
	// Extract trace context from Kafka headers
	carrier := propagation.MapCarrier{}
	for _, header := range message.Headers {
		key := string(header.Key)
		if key == "traceparent" || key == "tracestate" {
			carrier[key] = string(header.Value)
		}
	}
	ctx = otel.GetTextMapPropagator().Extract(ctx, carrier)

	tracer := otel.Tracer("kafka-consumer")
	ctx, span := tracer.Start(ctx, "kafka.consume."+message.Topic,
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.source", message.Topic),
			attribute.String("messaging.source_kind", "topic"),
			attribute.Int("messaging.kafka.partition", int(message.Partition)),
			attribute.Int64("messaging.kafka.offset", message.Offset),
		),
	)
	defer span.End()

	logger.Debug(ctx).
		Str("topic", message.Topic).
		Int32("partition", message.Partition).
		Int64("offset", message.Offset).
		Msg("Received message")

	fail := func(err error, msg string) error {
		span.RecordError(err)
		span.SetStatus(codes.Error, msg)
		logger.Error(ctx).
			Err(err).
			Str("topic", message.Topic).
			Int64("offset", message.Offset).
			Msg(msg)
		return err
	}

	var event EntityDeletedEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		return fail(err, "Failed to unmarshal event")
	}

	// The header wins over the body when both carry an event type
	for _, header := range message.Headers {
		if string(header.Key) == "event_type" && len(header.Value) > 0 {
			event.EventType = string(header.Value)
		}
	}
	if event.EventType == "" {
		return fail(errMissingEventType, "Message without event type")
	}

	span.SetAttributes(
		attribute.String("event.type", event.EventType),
		attribute.String("event.id", event.EventID),
		attribute.Int64("entity.id", int64(event.EntityID)),
	)

	h.consumer.handlersMutex.RLock()
	handler, exists := h.consumer.handlers[event.EventType]
	h.consumer.handlersMutex.RUnlock()

	if !exists {
		span.SetStatus(codes.Error, "No handler registered")
		logger.Warn(ctx).
			Str("event_type", event.EventType).
			Msg("No handler registered for event type")
		return fmt.Errorf("%w: %s", errNoHandler, event.EventType)
	}

	if err := handler(ctx, event); err != nil {
		return fail(err, "Failed to handle event")
	}

	span.SetStatus(codes.Ok, "Event handled successfully")
	logger.Info(ctx).
		Str("event_type", event.EventType).
		Str("event_id", event.EventID).
		Uint("entity_id", event.EntityID).
		Msg("Event handled successfully")
	return nil
}
