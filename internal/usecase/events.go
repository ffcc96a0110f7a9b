package usecase

import (
	"context"

	"github.com/riskibarqy/season-tickets/internal/domain/allocation"
	"github.com/riskibarqy/season-tickets/internal/platform/logging"
)

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, allocation.Event) error { return nil }

// notifier publishes after commit. Failures are logged and swallowed because
// the change they describe is already durable.
type notifier struct {
	publisher allocation.Publisher
	logger    *logging.Logger
}

func newNotifier(publisher allocation.Publisher, logger *logging.Logger) notifier {
	if publisher == nil {
		publisher = noopPublisher{}
	}
	if logger == nil {
		logger = logging.Default()
	}
	return notifier{publisher: publisher, logger: logger}
}

func (n notifier) notify(ctx context.Context, event allocation.Event) {
	if err := n.publisher.Publish(ctx, event); err != nil {
		n.logger.WarnContext(ctx, "publish event failed",
			"event_type", string(event.Type),
			"ticket_count", len(event.TicketIDs),
			"error", err,
		)
	}
}
