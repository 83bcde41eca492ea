package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/samirrijal/sundowner/internal/pkg/retry"
)

var errBusy = errors.New("server busy")
var errAuth = errors.New("auth failed")

func fastPolicy(attempts int) retry.Policy {
	return retry.Policy{
		Name:            "test",
		MaxAttempts:     attempts,
		InitialInterval: time.Millisecond,
		Multiplier:      2,
		Retryable:       func(err error) bool { return errors.Is(err, errBusy) },
	}
}

func TestDo_SucceedsAfterRetries(t *testing.T) {
	calls := 0
	err := fastPolicy(5).Do(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errBusy
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	calls := 0
	err := fastPolicy(4).Do(context.Background(), func(ctx context.Context) error {
		calls++
		return errBusy
	})
	if !errors.Is(err, errBusy) {
		t.Fatalf("expected last error, got %v", err)
	}
	if calls != 4 {
		t.Errorf("expected 4 calls, got %d", calls)
	}
}

func TestDo_NonRetryable(t *testing.T) {
	calls := 0
	err := fastPolicy(5).Do(context.Background(), func(ctx context.Context) error {
		calls++
		return errAuth
	})
	if !errors.Is(err, errAuth) {
		t.Fatalf("expected auth error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected a single call, got %d", calls)
	}
}

func TestDo_Permanent(t *testing.T) {
	calls := 0
	p := fastPolicy(5)
	p.Retryable = nil
	err := p.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return retry.Permanent(errBusy)
	})
	if !errors.Is(err, errBusy) {
		t.Fatalf("expected wrapped error back, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected a single call, got %d", calls)
	}
}

func TestDo_AttemptTimeout(t *testing.T) {
	p := fastPolicy(2)
	p.Retryable = nil
	var deadlines []time.Duration
	p.AttemptTimeout = func(n int) time.Duration { return time.Duration(n+1) * time.Hour }

	_ = p.Do(context.Background(), func(ctx context.Context) error {
		dl, ok := ctx.Deadline()
		if !ok {
			t.Fatal("expected attempt deadline")
		}
		deadlines = append(deadlines, time.Until(dl).Round(time.Hour))
		return errBusy
	})
	if len(deadlines) != 2 || deadlines[0] != time.Hour || deadlines[1] != 2*time.Hour {
		t.Errorf("unexpected deadlines %v", deadlines)
	}
}

func TestDo_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	p := fastPolicy(5)
	p.InitialInterval = time.Hour
	err := p.Do(ctx, func(ctx context.Context) error {
		calls++
		cancel()
		return errBusy
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("expected no retry after cancellation, got %d calls", calls)
	}
}

func TestPresets(t *testing.T) {
	o := retry.Overpass(nil)
	if o.MaxAttempts != 5 || o.InitialInterval != 3*time.Second {
		t.Errorf("unexpected overpass policy %+v", o)
	}
	if got := o.AttemptTimeout(2); got != 85*time.Second {
		t.Errorf("expected 85s third-attempt timeout, got %s", got)
	}
	if n := retry.Nominatim(nil); n.MaxAttempts != 3 || n.InitialInterval != 2*time.Second {
		t.Errorf("unexpected nominatim policy %+v", n)
	}
	if retry.Permanent(nil) != nil {
		t.Error("Permanent(nil) must be nil")
	}
}
