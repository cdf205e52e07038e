package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/matchdayhq/matchday-api/internal/domain/match"
	"github.com/matchdayhq/matchday-api/internal/domain/season"
	"github.com/matchdayhq/matchday-api/internal/domain/team"
)

// MatchRepository is the in-process match store used when no database is
// configured, and by use case tests. Match numbers are allocated from a
// process-wide counter under the repository mutex, mirroring the sequence
// the relational store uses.
type MatchRepository struct {
	mu         sync.Mutex
	byID       map[string]match.Match
	idByNumber map[int64]string
	nextNumber int64

	teamNames          map[string]string
	leagueNameBySeason map[string]string
}

func NewMatchRepository(teams []team.Team, seasons []season.Season) *MatchRepository {
	teamNames := make(map[string]string, len(teams))
	for _, t := range teams {
		teamNames[t.ID] = t.Name
	}
	leagueNames := make(map[string]string, len(seasons))
	for _, s := range seasons {
		leagueNames[s.ID] = s.LeagueName
	}

	return &MatchRepository{
		byID:               make(map[string]match.Match),
		idByNumber:         make(map[int64]string),
		nextNumber:         1,
		teamNames:          teamNames,
		leagueNameBySeason: leagueNames,
	}
}

func (r *MatchRepository) GetByID(_ context.Context, id string) (match.Detail, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.byID[id]
	if !ok {
		return match.Detail{}, false, nil
	}
	return r.detail(item), true, nil
}

func (r *MatchRepository) GetByNumber(_ context.Context, number int64) (match.Detail, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.idByNumber[number]
	if !ok {
		return match.Detail{}, false, nil
	}
	return r.detail(r.byID[id]), true, nil
}

func (r *MatchRepository) ListBySeason(_ context.Context, seasonID string) ([]match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]match.Match, 0)
	for _, item := range r.byID {
		if item.SeasonID == seasonID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (r *MatchRepository) CountBySeason(_ context.Context, seasonID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, item := range r.byID {
		if item.SeasonID == seasonID {
			count++
		}
	}
	return count, nil
}

func (r *MatchRepository) InsertSeasonFixtures(_ context.Context, seasonID string, matches []match.Match) ([]match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range r.byID {
		if item.SeasonID == seasonID {
			return nil, fmt.Errorf("%w: season=%s", match.ErrFixturesExist, seasonID)
		}
	}

	out := make([]match.Match, 0, len(matches))
	for _, item := range matches {
		if item.HomeTeamID == item.AwayTeamID {
			return nil, fmt.Errorf("match %s pairs a team with itself", item.ID)
		}
		item.SeasonID = seasonID
		item.Number = r.nextNumber
		r.nextNumber++
		r.byID[item.ID] = item
		r.idByNumber[item.Number] = item.ID
		out = append(out, item)
	}

	return out, nil
}

func (r *MatchRepository) Transition(_ context.Context, id string, to match.Status) (match.Match, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.byID[id]
	if !ok {
		return match.Match{}, false, nil
	}
	if err := match.CheckTransition(item.Status, to); err != nil {
		return match.Match{}, true, err
	}

	item.Status = to
	item.UpdatedAt = time.Now().UTC()
	r.byID[id] = item
	return item, true, nil
}

func (r *MatchRepository) RecordResult(_ context.Context, id string, homeScore, awayScore int) (match.Match, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.byID[id]
	if !ok {
		return match.Match{}, false, nil
	}
	if err := match.CheckTransition(item.Status, match.StatusCompleted); err != nil {
		return match.Match{}, true, err
	}

	now := time.Now().UTC()
	item.Status = match.StatusCompleted
	item.HomeScore = &homeScore
	item.AwayScore = &awayScore
	item.UpdatedAt = now
	item.CompletedAt = &now
	r.byID[id] = item
	return item, true, nil
}

func (r *MatchRepository) UpdateDetails(_ context.Context, id string, update match.DetailsUpdate) (match.Match, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.byID[id]
	if !ok {
		return match.Match{}, false, nil
	}
	if item.Status.Terminal() {
		return match.Match{}, true, fmt.Errorf("%w: %s match is read-only", match.ErrInvalidTransition, item.Status)
	}

	if update.MatchDate != nil {
		item.MatchDate = update.MatchDate
	}
	if update.Venue != nil {
		item.Venue = *update.Venue
	}
	if update.Notes != nil {
		item.Notes = *update.Notes
	}
	item.UpdatedAt = time.Now().UTC()
	r.byID[id] = item
	return item, true, nil
}

func (r *MatchRepository) detail(item match.Match) match.Detail {
	return match.Detail{
		Match:        item,
		HomeTeamName: r.teamNames[item.HomeTeamID],
		AwayTeamName: r.teamNames[item.AwayTeamID],
		LeagueName:   r.leagueNameBySeason[item.SeasonID],
	}
}
