package notify

import (
	"context"

	"github.com/studiobook/studio-booking/pkg/rabbitmq"
	"go.uber.org/zap"
)

// Notifier delivers booking lifecycle events to interested parties.
// Delivery is fire-and-forget: a booking transaction has already committed by
// the time Send runs, so a delivery failure is logged, never surfaced.
type Notifier interface {
	Send(ctx context.Context, event string, payload any)
}

type amqpNotifier struct {
	pub    *rabbitmq.Publisher
	logger *zap.Logger
}

func NewAMQPNotifier(pub *rabbitmq.Publisher, logger *zap.Logger) Notifier {
	return &amqpNotifier{pub: pub, logger: logger}
}

func (n *amqpNotifier) Send(_ context.Context, event string, payload any) {
	if err := n.pub.Publish(event, payload); err != nil {
		n.logger.Warn("notification publish failed",
			zap.String("event", event),
			zap.Error(err),
		)
	}
}

type noopNotifier struct {
	logger *zap.Logger
}

// NewNoopNotifier logs events instead of publishing them, for deployments
// without a broker and for tests.
func NewNoopNotifier(logger *zap.Logger) Notifier {
	return &noopNotifier{logger: logger}
}

func (n *noopNotifier) Send(_ context.Context, event string, _ any) {
	n.logger.Debug("notification skipped, no broker configured", zap.String("event", event))
}
