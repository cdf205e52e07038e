package cache

import (
	"context"
	"testing"
	"time"

	"github.com/matchdayhq/matchday-api/internal/domain/match"
	"github.com/matchdayhq/matchday-api/internal/domain/season"
	"github.com/matchdayhq/matchday-api/internal/domain/team"
	"github.com/matchdayhq/matchday-api/internal/infrastructure/repository/memory"
	basecache "github.com/matchdayhq/matchday-api/internal/platform/cache"
)

const (
	cacheTestSeasonID = "c7b8e6a0-91f2-4c0d-b5a3-4a6d8e2f0201"
	cacheTestLeagueID = "9d1f0a34-22be-4d55-8c3a-7fe0b6d20001"
)

type countingMatchRepo struct {
	match.Repository
	getByIDCalls int
}

func (r *countingMatchRepo) GetByID(ctx context.Context, id string) (match.Detail, bool, error) {
	r.getByIDCalls++
	return r.Repository.GetByID(ctx, id)
}

func newCachedMatchRepo(t *testing.T) (*MatchRepository, *countingMatchRepo, []match.Match) {
	t.Helper()

	teams := []team.Team{
		{ID: "team-a", LeagueID: cacheTestLeagueID, Name: "Team A"},
		{ID: "team-b", LeagueID: cacheTestLeagueID, Name: "Team B"},
	}
	seasons := []season.Season{{ID: cacheTestSeasonID, LeagueID: cacheTestLeagueID, LeagueName: "Sunday District League", Name: "2026/27"}}

	backing := memory.NewMatchRepository(teams, seasons)
	created, err := backing.InsertSeasonFixtures(context.Background(), cacheTestSeasonID, []match.Match{{
		ID:         "2a9e4f10-7c3b-4d8e-9f01-6b5a2c4d8e01",
		HomeTeamID: "team-a",
		AwayTeamID: "team-b",
		Status:     match.StatusScheduled,
	}})
	if err != nil {
		t.Fatalf("seed match: %v", err)
	}

	counting := &countingMatchRepo{Repository: backing}
	return NewMatchRepository(counting, basecache.NewStore(time.Minute)), counting, created
}

func TestMatchRepository_GetByIDCaches(t *testing.T) {
	t.Parallel()

	repo, counting, created := newCachedMatchRepo(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		item, found, err := repo.GetByID(ctx, created[0].ID)
		if err != nil || !found {
			t.Fatalf("get by id: found=%v err=%v", found, err)
		}
		if item.ID != created[0].ID {
			t.Fatalf("wrong match %s", item.ID)
		}
	}
	if counting.getByIDCalls != 1 {
		t.Fatalf("expected a single backing read, got %d", counting.getByIDCalls)
	}
}

func TestMatchRepository_TransitionInvalidates(t *testing.T) {
	t.Parallel()

	repo, _, created := newCachedMatchRepo(t)
	ctx := context.Background()

	before, _, err := repo.GetByID(ctx, created[0].ID)
	if err != nil {
		t.Fatalf("warm cache: %v", err)
	}
	if before.Status != match.StatusScheduled {
		t.Fatalf("expected scheduled, got %s", before.Status)
	}

	if _, _, err := repo.Transition(ctx, created[0].ID, match.StatusLive); err != nil {
		t.Fatalf("transition: %v", err)
	}

	after, _, err := repo.GetByID(ctx, created[0].ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if after.Status != match.StatusLive {
		t.Fatalf("stale cache after transition: %s", after.Status)
	}

	byNumber, _, err := repo.GetByNumber(ctx, created[0].Number)
	if err != nil {
		t.Fatalf("get by number: %v", err)
	}
	if byNumber.Status != match.StatusLive {
		t.Fatalf("stale number key after transition: %s", byNumber.Status)
	}
}

func TestMatchRepository_MissesAreCachedToo(t *testing.T) {
	t.Parallel()

	repo, counting, _ := newCachedMatchRepo(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, found, err := repo.GetByID(ctx, "missing")
		if err != nil {
			t.Fatalf("get missing: %v", err)
		}
		if found {
			t.Fatal("missing match reported as found")
		}
	}
	if counting.getByIDCalls != 1 {
		t.Fatalf("negative lookups should be cached, got %d backing reads", counting.getByIDCalls)
	}
}

func TestMatchRepository_InsertInvalidatesEarlierMisses(t *testing.T) {
	t.Parallel()

	teams := []team.Team{
		{ID: "team-a", LeagueID: cacheTestLeagueID, Name: "Team A"},
		{ID: "team-b", LeagueID: cacheTestLeagueID, Name: "Team B"},
	}
	seasons := []season.Season{{ID: cacheTestSeasonID, LeagueID: cacheTestLeagueID, LeagueName: "Sunday District League", Name: "2026/27"}}
	repo := NewMatchRepository(memory.NewMatchRepository(teams, seasons), basecache.NewStore(time.Minute))
	ctx := context.Background()

	matchID := "2a9e4f10-7c3b-4d8e-9f01-6b5a2c4d8e01"

	// Look up the match before it exists so both keys hold cached misses.
	if _, found, err := repo.GetByNumber(ctx, 1); err != nil || found {
		t.Fatalf("pre-insert number lookup: found=%v err=%v", found, err)
	}
	if _, found, err := repo.GetByID(ctx, matchID); err != nil || found {
		t.Fatalf("pre-insert id lookup: found=%v err=%v", found, err)
	}

	created, err := repo.InsertSeasonFixtures(ctx, cacheTestSeasonID, []match.Match{{
		ID:         matchID,
		HomeTeamID: "team-a",
		AwayTeamID: "team-b",
		Status:     match.StatusScheduled,
	}})
	if err != nil {
		t.Fatalf("insert fixtures: %v", err)
	}

	byNumber, found, err := repo.GetByNumber(ctx, created[0].Number)
	if err != nil || !found {
		t.Fatalf("post-insert number lookup served a stale miss: found=%v err=%v", found, err)
	}
	if byNumber.ID != matchID {
		t.Fatalf("wrong match by number: %s", byNumber.ID)
	}
	if _, found, err := repo.GetByID(ctx, matchID); err != nil || !found {
		t.Fatalf("post-insert id lookup served a stale miss: found=%v err=%v", found, err)
	}
}
