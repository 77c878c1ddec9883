// Package adaptamqp announces stored weight readings on a RabbitMQ queue.
package adaptamqp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"kuritterweight/internal/domain"
)

// DefaultQueue is used when no queue name is configured.
const DefaultQueue = "weight_records"

const publishTimeout = 5 * time.Second

var errClosed = errors.New("publisher closed")

// channel is the part of *amqp.Channel the publisher uses.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	IsClosed() bool
	Close() error
}

type dialFunc func(addr, queue string) (*amqp.Connection, channel, error)

// Publisher implements domain.RecordPublisher over a single AMQP channel. A
// broken channel is re-dialed on the next publish.
type Publisher struct {
	addr  string
	queue string
	dial  dialFunc

	mu     sync.Mutex
	conn   *amqp.Connection
	ch     channel
	closed bool
}

var _ domain.RecordPublisher = (*Publisher)(nil)

// Dial connects to addr and declares a durable queue.
func Dial(addr, queue string) (*Publisher, error) {
	if queue == "" {
		queue = DefaultQueue
	}
	p := &Publisher{addr: addr, queue: queue, dial: dialQueue}
	if err := p.connect(); err != nil {
		return nil, err
	}
	return p, nil
}

func dialQueue(addr, queue string) (*amqp.Connection, channel, error) {
	conn, err := amqp.Dial(addr)
	if err != nil {
		return nil, nil, fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("amqp channel: %w", err)
	}
	_, err = ch.QueueDeclare(
		queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("amqp queue declare %s: %w", queue, err)
	}
	return conn, ch, nil
}

// connect must be called with mu held or before the publisher is shared.
func (p *Publisher) connect() error {
	conn, ch, err := p.dial(p.addr, p.queue)
	if err != nil {
		return err
	}
	p.conn, p.ch = conn, ch
	return nil
}

// PublishRecorded sends ev as a persistent JSON message.
func (p *Publisher) PublishRecorded(ctx context.Context, ev domain.RecordedEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode record %d: %w", ev.ID, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return errClosed
	}
	if p.ch == nil || p.ch.IsClosed() {
		if p.conn != nil {
			_ = p.conn.Close()
		}
		if err := p.connect(); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish record %d: %w", ev.ID, err)
	}
	return nil
}

// Close shuts down the channel and connection.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	var errs []error
	if p.ch != nil {
		errs = append(errs, p.ch.Close())
	}
	if p.conn != nil {
		errs = append(errs, p.conn.Close())
	}
	return errors.Join(errs...)
}
