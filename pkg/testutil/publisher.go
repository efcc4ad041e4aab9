package testutil

import (
	"context"
	"sync"

	"github.com/alumnet-lab/backend/pkg/pubsub"
)

type PublishedPack struct {
	Topic string
	Pack  *pubsub.Pack
}

// MockPublisher records every published pack. PublishFunc, if set, decides
// the returned error.
type MockPublisher struct {
	PublishFunc func(context.Context, string, *pubsub.Pack) error

	mu   sync.Mutex
	sent []PublishedPack
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, pack *pubsub.Pack) error {
	m.mu.Lock()
	m.sent = append(m.sent, PublishedPack{Topic: topic, Pack: pack})
	m.mu.Unlock()

	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, topic, pack)
	}

	return nil
}

func (m *MockPublisher) Sent() []PublishedPack {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]PublishedPack{}, m.sent...)
}
