package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/samirrijal/sundowner/internal/pkg/logging"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
		"info":  slog.LevelInfo,
		"":      slog.LevelInfo,
		"bogus": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := logging.ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q): expected %v, got %v", in, want, got)
		}
	}
}

func TestNewHandler_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(logging.NewHandler(&buf, "info", "json"))
	log.Debug("hidden")
	log.Info("sunset checked", "beach", "nai_harn")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("expected exactly one JSON record, got %q: %v", buf.String(), err)
	}
	if rec["msg"] != "sunset checked" || rec["beach"] != "nai_harn" {
		t.Errorf("unexpected record %v", rec)
	}
}

func TestNewHandler_Text(t *testing.T) {
	var buf bytes.Buffer
	slog.New(logging.NewHandler(&buf, "debug", "text")).Debug("probe", "k", 1)
	if !strings.Contains(buf.String(), "msg=probe") {
		t.Errorf("expected text output, got %q", buf.String())
	}
}
