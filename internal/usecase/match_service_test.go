package usecase

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/matchdayhq/matchday-api/internal/domain/match"
)

func TestMatchService_GetByRef_RoundTrip(t *testing.T) {
	t.Parallel()

	env := newTestEnv([]string{"team-a", "team-b"})
	created := mustGenerate(t, env)
	ctx := context.Background()

	byNumber, err := env.matches.GetByRef(ctx, strconv.FormatInt(created[0].Number, 10))
	if err != nil {
		t.Fatalf("lookup by number: %v", err)
	}
	byID, err := env.matches.GetByRef(ctx, created[0].ID)
	if err != nil {
		t.Fatalf("lookup by id: %v", err)
	}

	if byNumber.ID != byID.ID || byNumber.Number != byID.Number {
		t.Fatalf("number and id lookups disagree: %+v vs %+v", byNumber.Match, byID.Match)
	}
	if byID.HomeTeamName == "" || byID.AwayTeamName == "" || byID.LeagueName == "" {
		t.Fatalf("expected joined display names, got %+v", byID)
	}
}

func TestMatchService_GetByRef_NotFoundVsInvalid(t *testing.T) {
	t.Parallel()

	env := newTestEnv([]string{"team-a", "team-b"})
	ctx := context.Background()

	if _, err := env.matches.GetByRef(ctx, "42"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("numeric miss should be ErrNotFound, got %v", err)
	}
	if _, err := env.matches.GetByRef(ctx, "not-a-uuid-or-number"); !errors.Is(err, ErrInvalidIdentifier) {
		t.Fatalf("malformed token should be ErrInvalidIdentifier, got %v", err)
	}
	// 36 chars with a hyphen goes down the id path and misses in the store.
	if _, err := env.matches.GetByRef(ctx, "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa-"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("malformed uuid shape should miss as ErrNotFound, got %v", err)
	}
}

func TestMatchService_KickoffAndCancel(t *testing.T) {
	t.Parallel()

	env := newTestEnv([]string{"team-a", "team-b", "team-c"})
	created := mustGenerate(t, env)
	ctx := context.Background()

	live, err := env.matches.Kickoff(ctx, created[0].ID)
	if err != nil {
		t.Fatalf("kickoff: %v", err)
	}
	if live.Status != match.StatusLive {
		t.Fatalf("expected live, got %s", live.Status)
	}

	cancelled, err := env.matches.Cancel(ctx, created[1].ID)
	if err != nil {
		t.Fatalf("cancel scheduled match: %v", err)
	}
	if cancelled.Status != match.StatusCancelled {
		t.Fatalf("expected cancelled, got %s", cancelled.Status)
	}

	// Kicking off a cancelled match violates the transition table.
	if _, err := env.matches.Kickoff(ctx, created[1].ID); !errors.Is(err, match.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	stored, err := env.matches.GetByRef(ctx, created[1].ID)
	if err != nil {
		t.Fatalf("reload cancelled match: %v", err)
	}
	if stored.Status != match.StatusCancelled {
		t.Fatalf("failed transition must not change status, got %s", stored.Status)
	}
}

func TestMatchService_UpdateDetails(t *testing.T) {
	t.Parallel()

	env := newTestEnv([]string{"team-a", "team-b"})
	created := mustGenerate(t, env)
	ctx := context.Background()

	venue := "Mill Lane"
	updated, err := env.matches.UpdateDetails(ctx, created[0].ID, match.DetailsUpdate{Venue: &venue})
	if err != nil {
		t.Fatalf("update details: %v", err)
	}
	if updated.Venue != venue {
		t.Fatalf("venue not applied: %q", updated.Venue)
	}

	if _, err := env.matches.UpdateDetails(ctx, created[0].ID, match.DetailsUpdate{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty update should be ErrInvalidInput, got %v", err)
	}

	if _, err := env.matches.Cancel(ctx, created[0].ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := env.matches.UpdateDetails(ctx, created[0].ID, match.DetailsUpdate{Venue: &venue}); !errors.Is(err, match.ErrInvalidTransition) {
		t.Fatalf("terminal match edits should fail, got %v", err)
	}
}
