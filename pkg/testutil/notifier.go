package testutil

import (
	"context"
	"sync"

	"github.com/alumnet-lab/backend/internal/domain/notification"
)

// MockNotifier records messages instead of dispatching them.
type MockNotifier struct {
	mu       sync.Mutex
	messages []notification.Message
}

func (m *MockNotifier) Notify(ctx context.Context, msg notification.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.messages = append(m.messages, msg)
}

func (m *MockNotifier) Messages() []notification.Message {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]notification.Message{}, m.messages...)
}

// MessagesOf returns the recorded messages of a notification type.
func (m *MockNotifier) MessagesOf(typ string) []notification.Message {
	result := []notification.Message{}
	for _, msg := range m.Messages() {
		if msg.Type == typ {
			result = append(result, msg)
		}
	}

	return result
}
