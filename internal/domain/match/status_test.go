package match

import (
	"errors"
	"testing"
)

func TestCanTransition_Table(t *testing.T) {
	t.Parallel()

	cases := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusScheduled, StatusLive, true},
		{StatusScheduled, StatusCancelled, true},
		{StatusScheduled, StatusCompleted, false},
		{StatusLive, StatusCompleted, true},
		{StatusLive, StatusCancelled, true},
		{StatusLive, StatusScheduled, false},
		{StatusCompleted, StatusLive, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCompleted, StatusScheduled, false},
		{StatusCancelled, StatusScheduled, false},
		{StatusCancelled, StatusLive, false},
		{StatusCancelled, StatusCompleted, false},
	}

	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.allowed {
			t.Fatalf("CanTransition(%s, %s) = %t, want %t", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestCheckTransition_InvalidCarriesSentinel(t *testing.T) {
	t.Parallel()

	err := CheckTransition(StatusCompleted, StatusLive)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	if err := CheckTransition(StatusScheduled, StatusLive); err != nil {
		t.Fatalf("scheduled -> live should be legal, got %v", err)
	}
}

func TestStatusTerminal(t *testing.T) {
	t.Parallel()

	if !StatusCompleted.Terminal() || !StatusCancelled.Terminal() {
		t.Fatal("completed and cancelled must be terminal")
	}
	if StatusScheduled.Terminal() || StatusLive.Terminal() {
		t.Fatal("scheduled and live must not be terminal")
	}
}

func TestParseStatus(t *testing.T) {
	t.Parallel()

	got, err := ParseStatus("  LIVE ")
	if err != nil {
		t.Fatalf("parse live: %v", err)
	}
	if got != StatusLive {
		t.Fatalf("unexpected status %q", got)
	}

	if _, err := ParseStatus("postponed"); !errors.Is(err, ErrUnknownStatus) {
		t.Fatalf("expected ErrUnknownStatus, got %v", err)
	}
}
