package service

import (
	"context"

	"github.com/redis/go-redis/v9"

	"dingdong-api/core/cache"
	"dingdong-api/core/constants"
)

// redisBroker backs the chat relay with redis pub/sub. Rooms live under the
// chat key domain, e.g. "dingdong::chat::42".
type redisBroker struct {
	cache cache.CacheInterface
}

// NewRedisBroker creates a broker over the shared redis cache.
func NewRedisBroker(c cache.CacheInterface) Broker {
	return &redisBroker{cache: c}
}

func (b *redisBroker) Publish(ctx context.Context, room string, payload []byte) error {
	return b.cache.Publish(ctx, b.cache.Key(constants.CacheDomainChat, room), payload)
}

func (b *redisBroker) Subscribe(ctx context.Context, room string) Subscription {
	pubsub := b.cache.Subscribe(ctx, b.cache.Key(constants.CacheDomainChat, room))

	out := make(chan []byte)
	go func() {
		defer close(out)
		for msg := range pubsub.Channel() {
			out <- []byte(msg.Payload)
		}
	}()
	return &redisSubscription{pubsub: pubsub, out: out}
}

type redisSubscription struct {
	pubsub *redis.PubSub
	out    chan []byte
}

func (s *redisSubscription) Messages() <-chan []byte {
	return s.out
}

func (s *redisSubscription) Close() error {
	return s.pubsub.Close()
}
