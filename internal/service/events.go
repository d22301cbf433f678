package service

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"
)

// EventPublisher delivers serialized result records to downstream consumers
// such as point awarding and streak tracking.
type EventPublisher interface {
	Publish(ctx context.Context, queueName string, body []byte) error
}

type noopPublisher struct{}

func NewNoopPublisher() EventPublisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, string, []byte) error {
	return nil
}

// publishEvent never fails the calling operation; delivery problems are logged.
func publishEvent(ctx context.Context, publisher EventPublisher, queueName string, event interface{}) {
	body, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("queue", queueName).Msg("Failed to encode event")
		return
	}
	if err := publisher.Publish(ctx, queueName, body); err != nil {
		log.Warn().Err(err).Str("queue", queueName).Msg("Failed to publish event")
	}
}
