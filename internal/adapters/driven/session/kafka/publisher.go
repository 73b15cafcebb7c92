package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/rdkhare/CourtFinder/internal/core/domain"
)

// Writer is the subset of *kafka.Writer the publisher uses.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes session events to the topic the Source reads.
type Publisher struct {
	writer Writer
}

// NewPublisher creates a publisher for topic.
func NewPublisher(brokers []string, topic string) (*Publisher, error) {
	if len(brokers) == 0 || topic == "" {
		return nil, fmt.Errorf("%w: kafka brokers and topic are required", domain.ErrInvalidInput)
	}
	return NewPublisherWithWriter(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}), nil
}

// NewPublisherWithWriter wraps an existing writer.
func NewPublisherWithWriter(writer Writer) *Publisher {
	return &Publisher{writer: writer}
}

// Publish writes event. Every event shares one key so they stay ordered on one partition.
func (p *Publisher) Publish(ctx context.Context, event domain.SessionEvent) error {
	if err := event.Validate(); err != nil {
		return err
	}
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding session event: %w", err)
	}
	msg := kafka.Message{Key: []byte("session"), Value: value}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: publishing %s: %v", domain.ErrNetworkFailure, event, err)
	}
	return nil
}

// Close flushes and closes the writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
