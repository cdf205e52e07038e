package memory

import (
	"context"
	"sync"

	"github.com/matchdayhq/matchday-api/internal/domain/season"
)

type SeasonRepository struct {
	mu            sync.RWMutex
	byID          map[string]season.Season
	registrations map[string][]string
}

func NewSeasonRepository(seasons []season.Season, registrations map[string][]string) *SeasonRepository {
	byID := make(map[string]season.Season, len(seasons))
	for _, item := range seasons {
		byID[item.ID] = item
	}

	copied := make(map[string][]string, len(registrations))
	for seasonID, teamIDs := range registrations {
		copied[seasonID] = append([]string(nil), teamIDs...)
	}

	return &SeasonRepository{byID: byID, registrations: copied}
}

func (r *SeasonRepository) GetByID(_ context.Context, seasonID string) (season.Season, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byID[seasonID]
	return item, ok, nil
}

func (r *SeasonRepository) ListRegisteredTeamIDs(_ context.Context, seasonID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.registrations[seasonID]...), nil
}
