package repository

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/folioworks/folioworks/pkg/logger"
)

const bridgeChannel = "folioworks:content:changes"

// RedisBridge propagates Set notifications between service instances over a
// Redis pub/sub channel, so subscribers on one instance observe writes made
// through another. Messages carry the sender's instance id and own messages
// are dropped (the local hub was already notified synchronously).
type RedisBridge struct {
	client *redis.Client
	id     string
}

// EnableRedisBridge attaches a Redis-backed change bridge to the store and
// starts its receive loop. The loop stops when ctx is canceled.
func (s *MongoStore) EnableRedisBridge(ctx context.Context, client *redis.Client) {
	b := &RedisBridge{client: client, id: newBridgeID()}
	s.bridge = b
	go b.receive(ctx, s)
}

func newBridgeID() string {
	buf := make([]byte, 8)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

func (b *RedisBridge) publish(ctx context.Context, collection, key string) {
	payload := b.id + "|" + collection + "|" + key
	if err := b.client.Publish(ctx, bridgeChannel, payload).Err(); err != nil {
		logger.Warnf("content bridge publish failed: %v", err)
	}
}

func (b *RedisBridge) receive(ctx context.Context, store *MongoStore) {
	sub := b.client.Subscribe(ctx, bridgeChannel)
	defer sub.Close()
	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			parts := strings.SplitN(msg.Payload, "|", 3)
			if len(parts) != 3 || parts[0] == b.id {
				continue
			}
			store.notifyRemote(parts[1], parts[2])
		}
	}
}
