// Package kafka implements driven.SessionSource over a Kafka topic of
// JSON session events, and a Publisher that writes them.
//
// Message values look like {"type":"logged_in","user_id":"u1"} or
// {"type":"logged_out"}. Offsets are committed once an event has been
// handed to the consumer, so a restarted watcher resumes where it left off.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/rdkhare/CourtFinder/internal/core/domain"
	"github.com/rdkhare/CourtFinder/internal/core/ports/driven"
	"github.com/rdkhare/CourtFinder/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.SessionSource = (*Source)(nil)

var kafkaLog = logger.Component("kafka")

// Reader is the subset of *kafka.Reader the source uses.
type Reader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Config configures the consumer.
type Config struct {
	Brokers []string
	Topic   string
	GroupID string

	// Initial is emitted before any consumed event. Optional.
	Initial *domain.SessionEvent
}

// Source consumes session events from Kafka.
type Source struct {
	reader       Reader
	initial      *domain.SessionEvent
	retryBackoff time.Duration
}

// NewSource creates a consumer-group reader for cfg.Topic.
func NewSource(cfg Config) (*Source, error) {
	if len(cfg.Brokers) == 0 || cfg.Topic == "" {
		return nil, fmt.Errorf("%w: kafka brokers and topic are required", domain.ErrInvalidInput)
	}
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: cfg.Brokers,
		Topic:   cfg.Topic,
		GroupID: cfg.GroupID,
		// Offsets are committed explicitly.
		CommitInterval: 0,
		MaxBytes:       1e6,
	})
	return NewSourceWithReader(reader, cfg.Initial), nil
}

// NewSourceWithReader wraps an existing reader.
func NewSourceWithReader(reader Reader, initial *domain.SessionEvent) *Source {
	return &Source{reader: reader, initial: initial, retryBackoff: time.Second}
}

// Close closes the reader.
func (s *Source) Close() error {
	return s.reader.Close()
}

// Events emits the initial identity, if configured, then each consumed
// event that changes it. Malformed messages are logged and skipped.
func (s *Source) Events(ctx context.Context) (<-chan domain.SessionEvent, error) {
	out := make(chan domain.SessionEvent, 1)

	go func() {
		defer close(out)

		var last *domain.SessionEvent
		emit := func(event domain.SessionEvent) bool {
			if last != nil && *last == event {
				return true
			}
			last = &event
			select {
			case out <- event:
				return true
			case <-ctx.Done():
				return false
			}
		}

		if s.initial != nil && !emit(*s.initial) {
			return
		}

		for {
			msg, err := s.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil || errors.Is(err, io.EOF) {
					return
				}
				kafkaLog.Warn("reading message: %v", err)
				select {
				case <-ctx.Done():
					return
				case <-time.After(s.retryBackoff):
				}
				continue
			}

			event, err := decodeEvent(msg.Value)
			if err != nil {
				kafkaLog.Warn("skipping offset %d: %v", msg.Offset, err)
			} else if !emit(event) {
				return
			}

			if err := s.reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
				kafkaLog.Warn("committing offset %d: %v", msg.Offset, err)
			}
		}
	}()

	return out, nil
}

func decodeEvent(value []byte) (domain.SessionEvent, error) {
	var event domain.SessionEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return domain.SessionEvent{}, fmt.Errorf("%w: session event: %v", domain.ErrDecodeFailure, err)
	}
	if err := event.Validate(); err != nil {
		return domain.SessionEvent{}, err
	}
	return event, nil
}
