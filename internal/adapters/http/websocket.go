package http

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/nats-io/nats.go"

	natsadapter "github.com/samirrijal/sundowner/internal/adapters/nats"
	"github.com/samirrijal/sundowner/internal/core/domain"
	"github.com/samirrijal/sundowner/internal/pkg/metrics"
)

// wsMessage is sent from client to subscribe/unsubscribe to report streams.
type wsMessage struct {
	Action string `json:"action"` // "subscribe" | "unsubscribe"
	Beach  string `json:"beach"`  // beach slug, "location" for ad-hoc checks, "" = all
}

// reportSubject maps a client filter onto a NATS subject.
func reportSubject(beach string) string {
	if beach == "" {
		return natsadapter.SubjectReports
	}
	if beach == "location" {
		return "sunset.report.location"
	}
	return "sunset.report." + domain.NormalizeSlug(beach)
}

// WebSocketHandler relays published sunset reports, as JSON, to connected
// clients. Clients start subscribed to every report and may narrow with
// {"action":"subscribe","beach":"nai_harn"}.
func WebSocketHandler(nc *nats.Conn) func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		defer c.Close()

		remoteAddr := c.RemoteAddr().String()
		if nc == nil {
			_ = c.WriteJSON(map[string]string{"error": "report stream is not available"})
			return
		}

		metrics.ActiveWebSockets.Inc()
		defer metrics.ActiveWebSockets.Dec()
		slog.Info("ws client connected", "remote", remoteAddr)

		var mu sync.Mutex
		subs := make(map[string]*nats.Subscription) // subject -> subscription

		writeJSON := func(v any) error {
			data, err := json.Marshal(v)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			return c.WriteMessage(websocket.TextMessage, data)
		}
		relay := func(msg *nats.Msg) {
			data, err := natsadapter.DecodeReportJSON(msg.Data)
			if err != nil {
				slog.Warn("ws relay: undecodable report", "subject", msg.Subject, "error", err)
				return
			}
			_ = writeJSON(json.RawMessage(data))
		}
		subscribe := func(subject string) error {
			s, err := nc.Subscribe(subject, relay)
			if err != nil {
				return err
			}
			subs[subject] = s
			return nil
		}

		if err := subscribe(natsadapter.SubjectReports); err != nil {
			slog.Error("ws default subscribe failed", "error", err)
			return
		}

		done := make(chan struct{})
		go func() {
			ticker := time.NewTicker(30 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					mu.Lock()
					err := c.WriteMessage(websocket.PingMessage, nil)
					mu.Unlock()
					if err != nil {
						return
					}
				case <-done:
					return
				}
			}
		}()

		for {
			_, msg, err := c.ReadMessage()
			if err != nil {
				break
			}

			var m wsMessage
			if err := json.Unmarshal(msg, &m); err != nil {
				_ = writeJSON(map[string]string{"error": "invalid JSON"})
				continue
			}
			subject := reportSubject(m.Beach)

			switch m.Action {
			case "subscribe":
				if _, exists := subs[subject]; exists {
					_ = writeJSON(map[string]string{"status": "already subscribed", "subject": subject})
					continue
				}
				// A narrower filter replaces the catch-all subscription.
				if all, ok := subs[natsadapter.SubjectReports]; ok && subject != natsadapter.SubjectReports {
					_ = all.Unsubscribe()
					delete(subs, natsadapter.SubjectReports)
				}
				if err := subscribe(subject); err != nil {
					_ = writeJSON(map[string]string{"error": "subscribe failed: " + err.Error()})
					continue
				}
				_ = writeJSON(map[string]string{"status": "subscribed", "subject": subject})

			case "unsubscribe":
				if s, exists := subs[subject]; exists {
					_ = s.Unsubscribe()
					delete(subs, subject)
					_ = writeJSON(map[string]string{"status": "unsubscribed", "subject": subject})
				} else {
					_ = writeJSON(map[string]string{"error": "not subscribed to " + subject})
				}

			default:
				_ = writeJSON(map[string]string{"error": "unknown action: " + m.Action})
			}
		}

		close(done)
		for _, s := range subs {
			_ = s.Unsubscribe()
		}
		slog.Info("ws client disconnected", "remote", remoteAddr)
	}
}
