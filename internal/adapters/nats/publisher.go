// Package natsadapter publishes and consumes sunset report events over NATS
// JetStream.
package natsadapter

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/sundowner/internal/core/domain"
	"github.com/samirrijal/sundowner/internal/pkg/metrics"
)

const (
	// StreamReports holds every published report.
	StreamReports = "SUNSET_REPORTS"
	// SubjectReports matches all report subjects.
	SubjectReports = "sunset.report.>"
)

// ReportSubject returns the subject a report is published on:
// sunset.report.<beach slug> for curated beaches, sunset.report.location
// otherwise.
func ReportSubject(r *domain.SunsetReport) string {
	if r.BeachSlug != "" {
		return "sunset.report." + r.BeachSlug
	}
	return "sunset.report.location"
}

// Publisher implements ports.EventPublisher using NATS JetStream.
type Publisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// NewPublisher connects to NATS and enables JetStream.
func NewPublisher(url string) (*Publisher, error) {
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

	return &Publisher{conn: conn, js: js}, nil
}

func ensureStreams(js nats.JetStreamContext) error {
	streams := []nats.StreamConfig{
		{
			Name:      StreamReports,
			Subjects:  []string{SubjectReports},
			Retention: nats.LimitsPolicy,
			MaxAge:    30 * 24 * time.Hour,
			Storage:   nats.FileStorage,
		},
	}

	for _, cfg := range streams {
		if _, err := js.AddStream(&cfg); err != nil {
			// Stream may already exist, try update
			if _, err := js.UpdateStream(&cfg); err != nil {
				return fmt.Errorf("ensure stream %s: %w", cfg.Name, err)
			}
		}
	}
	return nil
}

// PublishReport publishes a report with its id as the dedup message id.
func (p *Publisher) PublishReport(ctx context.Context, r *domain.SunsetReport) error {
	data, err := EncodeReport(r)
	if err != nil {
		return err
	}
	msg := nats.NewMsg(ReportSubject(r))
	msg.Data = data
	msg.Header.Set("Content-Type", ContentType)

	if _, err := p.js.PublishMsg(msg, nats.Context(ctx), nats.MsgId(r.ID)); err != nil {
		return fmt.Errorf("publish report %s: %w", r.ID, err)
	}
	metrics.ReportsPublished.Inc()
	return nil
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}

// RawConn creates a plain NATS connection for subscribing (e.g. WebSocket relay).
func RawConn(url string) (*nats.Conn, error) {
	return nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
}
