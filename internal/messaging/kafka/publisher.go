// Package kafka publishes domain events. Publishing is best effort: the
// redirect response never waits on the broker.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	segmentio "github.com/segmentio/kafka-go"

	"github.com/atalhobr/atalho/internal/events"
)

type Publisher struct {
	writer *segmentio.Writer
}

func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &segmentio.Writer{
			Addr:         segmentio.TCP(brokers...),
			Topic:        topic,
			Balancer:     &segmentio.Hash{},
			RequiredAcks: segmentio.RequireOne,
			WriteTimeout: 5 * time.Second,
			BatchTimeout: 50 * time.Millisecond,
		},
	}
}

// PublishVisitRecorded keys messages by link so per-link consumers see
// visits in order.
func (p *Publisher) PublishVisitRecorded(ctx context.Context, event events.VisitRecorded) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal visit event: %w", err)
	}

	msg := segmentio.Message{
		Key:   []byte(event.LinkID),
		Value: payload,
		Time:  event.VisitedAt,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish visit event: %w", err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
