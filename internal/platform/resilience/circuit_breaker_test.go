package resilience

import (
	"errors"
	"testing"
	"time"
)

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	t.Parallel()

	b := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 2, OpenTimeout: time.Minute, HalfOpenMaxReq: 1})

	if err := b.Allow(); err != nil {
		t.Fatalf("closed breaker must allow: %v", err)
	}
	b.RecordFailure()
	b.RecordFailure()

	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
	if got := b.State(); got != CircuitStateOpen {
		t.Fatalf("expected open state, got %s", got)
	}
}

func TestCircuitBreaker_HalfOpenProbeAndClose(t *testing.T) {
	t.Parallel()

	b := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 1, OpenTimeout: 10 * time.Millisecond, HalfOpenMaxReq: 1})
	current := time.Unix(1700000000, 0)
	b.now = func() time.Time { return current }

	b.RecordFailure()
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected open circuit, got %v", err)
	}

	current = current.Add(20 * time.Millisecond)
	if err := b.Allow(); err != nil {
		t.Fatalf("half-open probe must be admitted: %v", err)
	}
	// Second probe exceeds the half-open budget.
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected probe budget exhausted, got %v", err)
	}

	b.RecordSuccess()
	if got := b.State(); got != CircuitStateClosed {
		t.Fatalf("expected closed after successful probe, got %s", got)
	}
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	t.Parallel()

	b := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 1, OpenTimeout: 10 * time.Millisecond, HalfOpenMaxReq: 2})
	current := time.Unix(1700000000, 0)
	b.now = func() time.Time { return current }

	b.RecordFailure()
	current = current.Add(time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("probe admit: %v", err)
	}
	b.RecordFailure()

	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected reopened circuit, got %v", err)
	}
}

func TestSingleFlight_SharesResult(t *testing.T) {
	t.Parallel()

	var g SingleFlight
	calls := 0
	started := make(chan struct{})
	release := make(chan struct{})

	go func() {
		_, _, _ = g.Do("key", func() (any, error) {
			calls++
			close(started)
			<-release
			return "value", nil
		})
	}()
	<-started

	done := make(chan bool, 1)
	go func() {
		_, _, shared := g.Do("key", func() (any, error) {
			calls++
			return "other", nil
		})
		done <- shared
	}()

	close(release)
	if shared := <-done; !shared {
		t.Fatal("second caller should have received the shared result")
	}
	if calls != 1 {
		t.Fatalf("expected one execution, got %d", calls)
	}
}
