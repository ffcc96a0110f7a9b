package events

import (
	"context"
	"sync"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/riskibarqy/season-tickets/internal/domain/allocation"
	"github.com/riskibarqy/season-tickets/internal/platform/logging"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type AMQPPublisherConfig struct {
	URL            string
	Queue          string
	PublishTimeout time.Duration
}

// channel is the slice of *amqp.Channel the publisher needs.
type channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type dialFunc func(url string) (channel, func() error, error)

// AMQPPublisher sends allocation events to a durable queue as persistent JSON
// messages. The connection is opened lazily and reopened after a failure.
type AMQPPublisher struct {
	cfg    AMQPPublisherConfig
	dial   dialFunc
	logger *logging.Logger
	now    func() time.Time

	mu        sync.Mutex
	ch        channel
	closeConn func() error
}

var _ allocation.Publisher = (*AMQPPublisher)(nil)

func NewAMQPPublisher(cfg AMQPPublisherConfig, logger *logging.Logger) *AMQPPublisher {
	return newAMQPPublisher(cfg, dialAMQP, logger)
}

func newAMQPPublisher(cfg AMQPPublisherConfig, dial dialFunc, logger *logging.Logger) *AMQPPublisher {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.PublishTimeout <= 0 {
		cfg.PublishTimeout = 5 * time.Second
	}
	return &AMQPPublisher{cfg: cfg, dial: dial, logger: logger, now: time.Now}
}

func dialAMQP(url string) (channel, func() error, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, crerr.Wrap(err, "dial amqp")
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, crerr.Wrap(err, "open amqp channel")
	}
	return ch, conn.Close, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, event allocation.Event) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = p.now().UTC()
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(event); err != nil {
		return crerr.Wrap(err, "encode event")
	}
	body := append([]byte(nil), buf.B...)

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("amqp.queue", p.cfg.Queue),
			attribute.String("event.type", string(event.Type)),
			attribute.Int("event.ticket_count", len(event.TicketIDs)),
		)
	}

	ctx, cancel := context.WithTimeout(ctx, p.cfg.PublishTimeout)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channelLocked()
	if err != nil {
		return err
	}
	err = ch.PublishWithContext(ctx, "", p.cfg.Queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.OccurredAt,
		Type:         string(event.Type),
		Body:         body,
	})
	if err != nil {
		p.resetLocked()
		return crerr.Wrapf(err, "publish %s", event.Type)
	}
	p.logger.DebugContext(ctx, "event published", "event_type", string(event.Type), "queue", p.cfg.Queue)
	return nil
}

func (p *AMQPPublisher) channelLocked() (channel, error) {
	if p.ch != nil {
		return p.ch, nil
	}
	ch, closeConn, err := p.dial(p.cfg.URL)
	if err != nil {
		return nil, err
	}
	if _, err := ch.QueueDeclare(p.cfg.Queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		if closeConn != nil {
			_ = closeConn()
		}
		return nil, crerr.Wrapf(err, "declare queue %s", p.cfg.Queue)
	}
	p.ch = ch
	p.closeConn = closeConn
	return ch, nil
}

func (p *AMQPPublisher) resetLocked() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.closeConn != nil {
		_ = p.closeConn()
	}
	p.ch = nil
	p.closeConn = nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resetLocked()
	return nil
}
