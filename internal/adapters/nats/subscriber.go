package natsadapter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/sundowner/internal/core/domain"
)

// DurableArchiver is the consumer name used by the report archiver.
const DurableArchiver = "report-archiver"

// Subscriber implements ports.EventSubscriber using NATS JetStream.
type Subscriber struct {
	conn    *nats.Conn
	js      nats.JetStreamContext
	durable string
	subs    []*nats.Subscription
}

// NewSubscriber creates a subscriber with its own NATS connection. The
// durable name identifies the consumer across restarts.
func NewSubscriber(url, durable string) (*Subscriber, error) {
	conn, err := RawConn(url)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("jetstream: %w", err)
	}
	if err := ensureStreams(js); err != nil {
		conn.Close()
		return nil, err
	}
	return &Subscriber{conn: conn, js: js, durable: durable}, nil
}

// SubscribeReports delivers every published report to handler. Messages
// that fail to decode are terminated; handler errors are redelivered up to
// three times.
func (s *Subscriber) SubscribeReports(ctx context.Context, handler func(ctx context.Context, r *domain.SunsetReport) error) error {
	sub, err := s.js.Subscribe(SubjectReports, func(msg *nats.Msg) {
		r, err := DecodeReport(msg.Data)
		if err != nil {
			slog.Warn("dropping undecodable report", "subject", msg.Subject, "error", err)
			_ = msg.Term()
			return
		}
		if err := handler(ctx, r); err != nil {
			slog.Warn("report handler failed", "id", r.ID, "error", err)
			_ = msg.Nak()
			return
		}
		_ = msg.Ack()
	},
		nats.Durable(s.durable),
		nats.ManualAck(),
		nats.MaxDeliver(3),
		nats.DeliverAll(),
	)
	if err != nil {
		return err
	}
	s.subs = append(s.subs, sub)
	return nil
}

// Close unsubscribes and drains.
func (s *Subscriber) Close() {
	for _, sub := range s.subs {
		_ = sub.Unsubscribe()
	}
	_ = s.conn.Drain()
}
