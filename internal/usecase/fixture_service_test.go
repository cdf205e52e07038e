package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/matchdayhq/matchday-api/internal/domain/match"
	"github.com/matchdayhq/matchday-api/internal/domain/season"
	"github.com/matchdayhq/matchday-api/internal/infrastructure/repository/memory"
	"github.com/matchdayhq/matchday-api/internal/platform/id"
)

func TestFixtureService_Generate_PairCountAndNumbering(t *testing.T) {
	t.Parallel()

	env := newTestEnv([]string{"team-a", "team-b", "team-c", "team-d"})
	created := mustGenerate(t, env)

	if len(created) != 6 {
		t.Fatalf("expected n*(n-1)/2 = 6 matches, got %d", len(created))
	}

	numbers := make(map[int64]struct{}, len(created))
	for i, item := range created {
		if item.Status != match.StatusScheduled {
			t.Fatalf("match %d not scheduled: %s", i, item.Status)
		}
		if item.HomeTeamID == item.AwayTeamID {
			t.Fatalf("match %d pairs a team with itself", i)
		}
		if item.HomeScore != nil || item.AwayScore != nil {
			t.Fatalf("match %d has scores before completion", i)
		}
		if item.Number != int64(i+1) {
			t.Fatalf("match %d numbered %d, want %d", i, item.Number, i+1)
		}
		if _, dup := numbers[item.Number]; dup {
			t.Fatalf("duplicate match number %d", item.Number)
		}
		numbers[item.Number] = struct{}{}
	}
}

func TestFixtureService_Generate_TwoTeams(t *testing.T) {
	t.Parallel()

	env := newTestEnv([]string{"team-a", "team-b"})
	created := mustGenerate(t, env)

	if len(created) != 1 {
		t.Fatalf("expected one match for two teams, got %d", len(created))
	}
	if created[0].Number != 1 {
		t.Fatalf("expected match_number=1, got %d", created[0].Number)
	}
}

func TestFixtureService_Generate_InsufficientTeams(t *testing.T) {
	t.Parallel()

	env := newTestEnv([]string{"team-a"})
	_, err := env.fixtures.Generate(context.Background(), testSeasonID, GenerateFixturesInput{})
	if !errors.Is(err, ErrInsufficientTeams) {
		t.Fatalf("expected ErrInsufficientTeams, got %v", err)
	}

	count, _ := env.matchRepo.CountBySeason(context.Background(), testSeasonID)
	if count != 0 {
		t.Fatalf("no matches should be written, found %d", count)
	}
}

func TestFixtureService_Generate_SecondRunRefused(t *testing.T) {
	t.Parallel()

	env := newTestEnv([]string{"team-a", "team-b", "team-c"})
	mustGenerate(t, env)

	_, err := env.fixtures.Generate(context.Background(), testSeasonID, GenerateFixturesInput{})
	if !errors.Is(err, match.ErrFixturesExist) {
		t.Fatalf("expected ErrFixturesExist, got %v", err)
	}

	count, _ := env.matchRepo.CountBySeason(context.Background(), testSeasonID)
	if count != 3 {
		t.Fatalf("match count changed by refused run: %d", count)
	}
}

func TestFixtureService_Generate_UnknownSeason(t *testing.T) {
	t.Parallel()

	env := newTestEnv([]string{"team-a", "team-b"})
	_, err := env.fixtures.Generate(context.Background(), "b2c3d4e5-0000-0000-0000-000000000000", GenerateFixturesInput{})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFixtureService_Generate_DoubleLeg(t *testing.T) {
	t.Parallel()

	env := newTestEnv([]string{"team-a", "team-b", "team-c"})
	double := NewFixtureService(env.seasonRepo, env.matchRepo, env.teamRepo, id.NewUUIDGenerator(), true)

	created, err := double.Generate(context.Background(), testSeasonID, GenerateFixturesInput{})
	if err != nil {
		t.Fatalf("generate double leg fixtures: %v", err)
	}
	if len(created) != 6 {
		t.Fatalf("expected 6 matches for double round-robin of 3 teams, got %d", len(created))
	}
	// Return legs swap home and away for the same pair enumeration.
	if created[0].HomeTeamID != created[3].AwayTeamID || created[0].AwayTeamID != created[3].HomeTeamID {
		t.Fatalf("return leg does not mirror first leg: %+v vs %+v", created[0], created[3])
	}
}

func TestFixtureService_Generate_DanglingRegistration(t *testing.T) {
	t.Parallel()

	env := newTestEnv([]string{"team-a", "team-b"})
	// Registration list names a team the team store no longer knows.
	seasonRepo := memory.NewSeasonRepository(
		[]season.Season{{ID: testSeasonID, LeagueID: testLeagueID, LeagueName: "Sunday District League", Name: "2026/27"}},
		map[string][]string{testSeasonID: {"team-a", "team-b", "team-ghost"}},
	)
	svc := NewFixtureService(seasonRepo, env.matchRepo, env.teamRepo, id.NewUUIDGenerator(), false)

	_, err := svc.Generate(context.Background(), testSeasonID, GenerateFixturesInput{})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for dangling registration, got %v", err)
	}
	if !strings.Contains(err.Error(), "team-ghost") {
		t.Fatalf("expected offending team id in error, got %v", err)
	}
}
