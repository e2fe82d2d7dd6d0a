package events

import (
	"context"
	"encoding/json"

	"coladay/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const confirmationChannel = "coladay:confirmations"

// RedisBridge is a Bus backed by a Redis channel, so several processes
// share one confirmation stream. Published confirmations are delivered to
// local subscribers only once they come back over the channel, keeping
// local and remote consumers on the same ordering.
type RedisBridge struct {
	client *redis.Client
	hub    *Hub
	logger *zap.Logger
	pubsub *redis.PubSub
}

func NewRedisBridge(client *redis.Client, logger *zap.Logger) *RedisBridge {
	return &RedisBridge{
		client: client,
		hub:    NewHub(),
		logger: logger,
	}
}

// Run consumes the channel until ctx is cancelled. Call it on its own
// goroutine before publishing.
func (b *RedisBridge) Run(ctx context.Context) {
	b.pubsub = b.client.Subscribe(ctx, confirmationChannel)
	defer b.pubsub.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-b.pubsub.Channel():
			if !ok {
				return
			}
			var confirmation models.Confirmation
			if err := json.Unmarshal([]byte(msg.Payload), &confirmation); err != nil {
				b.logger.Warn("Dropping malformed confirmation payload", zap.Error(err))
				continue
			}
			b.hub.Publish(ctx, confirmation)
		}
	}
}

func (b *RedisBridge) Publish(ctx context.Context, confirmation models.Confirmation) {
	payload, err := json.Marshal(confirmation)
	if err != nil {
		b.logger.Error("Failed to marshal confirmation", zap.Error(err))
		return
	}
	if err := b.client.Publish(ctx, confirmationChannel, payload).Err(); err != nil {
		b.logger.Error("Failed to publish confirmation", zap.Error(err))
	}
}

func (b *RedisBridge) Subscribe(handler Handler) Subscription {
	return b.hub.Subscribe(handler)
}
