package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/matchdayhq/matchday-api/internal/domain/match"
	"github.com/matchdayhq/matchday-api/internal/domain/season"
	"github.com/matchdayhq/matchday-api/internal/domain/team"
	"github.com/matchdayhq/matchday-api/internal/platform/id"
)

// FixtureService generates a season's fixture list from its registered teams.
type FixtureService struct {
	seasonRepo season.Repository
	matchRepo  match.Repository
	teamRepo   team.Repository
	idGen      id.Generator
	doubleLeg  bool
	now        func() time.Time
}

type GenerateFixturesInput struct {
	// MatchDate, when set, is stamped on every generated fixture as a
	// placeholder kickoff; scheduling real dates is a later admin edit.
	MatchDate *time.Time
}

func NewFixtureService(
	seasonRepo season.Repository,
	matchRepo match.Repository,
	teamRepo team.Repository,
	idGen id.Generator,
	doubleLeg bool,
) *FixtureService {
	return &FixtureService{
		seasonRepo: seasonRepo,
		matchRepo:  matchRepo,
		teamRepo:   teamRepo,
		idGen:      idGen,
		doubleLeg:  doubleLeg,
		now:        time.Now,
	}
}

// Generate creates one scheduled match per team pairing, atomically. The
// batch either lands whole or not at all: a partial fixture list would break
// the n*(n-1)/2 count invariant that standings math relies on.
func (s *FixtureService) Generate(ctx context.Context, seasonID string, input GenerateFixturesInput) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.Generate")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return nil, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	_, exists, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("get season: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}

	teamIDs, err := s.seasonRepo.ListRegisteredTeamIDs(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list registered teams: %w", err)
	}
	if len(teamIDs) < 2 {
		return nil, fmt.Errorf("%w: season=%s has %d", ErrInsufficientTeams, seasonID, len(teamIDs))
	}

	// A registration pointing at a deleted team would otherwise surface as
	// a broken fixture much later, at render time.
	teams, err := s.teamRepo.ListByIDs(ctx, teamIDs)
	if err != nil {
		return nil, fmt.Errorf("list registered team records: %w", err)
	}
	if len(teams) != len(teamIDs) {
		known := make(map[string]struct{}, len(teams))
		for _, t := range teams {
			known[t.ID] = struct{}{}
		}
		for _, teamID := range teamIDs {
			if _, ok := known[teamID]; !ok {
				return nil, fmt.Errorf("%w: registered team=%s", ErrNotFound, teamID)
			}
		}
	}

	existing, err := s.matchRepo.CountBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("count season matches: %w", err)
	}
	if existing > 0 {
		return nil, fmt.Errorf("%w: season=%s has %d matches", match.ErrFixturesExist, seasonID, existing)
	}

	pairings := match.RoundRobinPairings(teamIDs, s.doubleLeg)
	now := s.now().UTC()
	batch := make([]match.Match, 0, len(pairings))
	for _, pairing := range pairings {
		matchID, err := s.idGen.NewID()
		if err != nil {
			return nil, fmt.Errorf("generate match id: %w", err)
		}
		batch = append(batch, match.Match{
			ID:         matchID,
			SeasonID:   seasonID,
			HomeTeamID: pairing.HomeTeamID,
			AwayTeamID: pairing.AwayTeamID,
			Status:     match.StatusScheduled,
			MatchDate:  input.MatchDate,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}

	// The repository re-checks emptiness under its season lock, so two
	// concurrent generation requests cannot both insert.
	created, err := s.matchRepo.InsertSeasonFixtures(ctx, seasonID, batch)
	if err != nil {
		return nil, fmt.Errorf("insert season fixtures: %w", err)
	}

	return created, nil
}
