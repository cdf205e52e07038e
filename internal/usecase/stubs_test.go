package usecase

import (
	"context"
	"sync"

	"github.com/matchdayhq/matchday-api/internal/domain/match"
	"github.com/matchdayhq/matchday-api/internal/domain/season"
	"github.com/matchdayhq/matchday-api/internal/domain/team"
	"github.com/matchdayhq/matchday-api/internal/infrastructure/repository/memory"
	"github.com/matchdayhq/matchday-api/internal/platform/id"
)

const (
	testSeasonID = "c7b8e6a0-91f2-4c0d-b5a3-4a6d8e2f0201"
	testLeagueID = "9d1f0a34-22be-4d55-8c3a-7fe0b6d20001"
)

type stubNotifier struct {
	mu      sync.Mutex
	updates []StatsUpdate
	err     error
}

func (n *stubNotifier) PublishResult(_ context.Context, update StatsUpdate) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.updates = append(n.updates, update)
	return nil
}

func (n *stubNotifier) published() []StatsUpdate {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]StatsUpdate(nil), n.updates...)
}

type testEnv struct {
	seasonRepo *memory.SeasonRepository
	matchRepo  *memory.MatchRepository
	teamRepo   *memory.TeamRepository
	fixtures   *FixtureService
	matches    *MatchService
}

func newTestEnv(teamIDs []string) *testEnv {
	teams := make([]team.Team, 0, len(teamIDs))
	for _, teamID := range teamIDs {
		teams = append(teams, team.Team{ID: teamID, LeagueID: testLeagueID, Name: "Team " + teamID})
	}
	seasons := []season.Season{{
		ID:         testSeasonID,
		LeagueID:   testLeagueID,
		LeagueName: "Sunday District League",
		Name:       "2026/27",
	}}

	seasonRepo := memory.NewSeasonRepository(seasons, map[string][]string{testSeasonID: teamIDs})
	matchRepo := memory.NewMatchRepository(teams, seasons)
	teamRepo := memory.NewTeamRepository(teams)

	return &testEnv{
		seasonRepo: seasonRepo,
		matchRepo:  matchRepo,
		teamRepo:   teamRepo,
		fixtures:   NewFixtureService(seasonRepo, matchRepo, teamRepo, id.NewUUIDGenerator(), false),
		matches:    NewMatchService(matchRepo),
	}
}

func mustGenerate(t interface {
	Helper()
	Fatalf(format string, args ...any)
}, env *testEnv) []match.Match {
	t.Helper()
	created, err := env.fixtures.Generate(context.Background(), testSeasonID, GenerateFixturesInput{})
	if err != nil {
		t.Fatalf("generate fixtures: %v", err)
	}
	return created
}
