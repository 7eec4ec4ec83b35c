package policies

import "context"

// EventPublisher pushes service events to the message broker. Deployments
// without a broker wire a no-op.
type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, event any) error
}
