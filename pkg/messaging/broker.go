package messaging

import (
	"context"
)

// Broker defines the interface for message brokers. The watcher publishes
// availability change events through it and the notifier consumes them.
type Broker interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
	Close() error
}
