// Package cache wraps repositories with a read-through TTL cache. Reads are
// deduplicated through the store's single-flight loader; every write path
// invalidates the keys it touches before returning.
package cache

import (
	"context"
	"strconv"

	"github.com/matchdayhq/matchday-api/internal/domain/match"
	"github.com/matchdayhq/matchday-api/internal/domain/season"
	basecache "github.com/matchdayhq/matchday-api/internal/platform/cache"
)

type MatchRepository struct {
	next  match.Repository
	cache *basecache.Store
}

func NewMatchRepository(next match.Repository, cache *basecache.Store) *MatchRepository {
	return &MatchRepository{next: next, cache: cache}
}

func (r *MatchRepository) GetByID(ctx context.Context, id string) (match.Detail, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, matchIDKey(id), func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return cachedMatchDetail{value: item, exists: exists}, nil
	})
	if err != nil {
		return match.Detail{}, false, err
	}

	cached, _ := v.(cachedMatchDetail)
	return cached.value, cached.exists, nil
}

func (r *MatchRepository) GetByNumber(ctx context.Context, number int64) (match.Detail, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, matchNumberKey(number), func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByNumber(ctx, number)
		if err != nil {
			return nil, err
		}
		return cachedMatchDetail{value: item, exists: exists}, nil
	})
	if err != nil {
		return match.Detail{}, false, err
	}

	cached, _ := v.(cachedMatchDetail)
	return cached.value, cached.exists, nil
}

func (r *MatchRepository) ListBySeason(ctx context.Context, seasonID string) ([]match.Match, error) {
	v, err := r.cache.GetOrLoad(ctx, seasonMatchesKey(seasonID), func(ctx context.Context) (any, error) {
		items, err := r.next.ListBySeason(ctx, seasonID)
		if err != nil {
			return nil, err
		}
		return append([]match.Match(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]match.Match)
	return append([]match.Match(nil), items...), nil
}

// CountBySeason feeds the fixture-generation emptiness check, which must see
// the store as it is right now, so it is never served from cache.
func (r *MatchRepository) CountBySeason(ctx context.Context, seasonID string) (int, error) {
	return r.next.CountBySeason(ctx, seasonID)
}

func (r *MatchRepository) InsertSeasonFixtures(ctx context.Context, seasonID string, matches []match.Match) ([]match.Match, error) {
	created, err := r.next.InsertSeasonFixtures(ctx, seasonID, matches)
	if err != nil {
		return nil, err
	}

	// Lookups before generation cache misses under the new matches' keys,
	// so each created match must be invalidated, not just the season list.
	keys := make([]string, 0, 2*len(created)+1)
	keys = append(keys, seasonMatchesKey(seasonID))
	for _, item := range created {
		keys = append(keys, matchIDKey(item.ID), matchNumberKey(item.Number))
	}
	r.cache.Delete(ctx, keys...)

	return created, nil
}

func (r *MatchRepository) Transition(ctx context.Context, id string, to match.Status) (match.Match, bool, error) {
	updated, found, err := r.next.Transition(ctx, id, to)
	if found && err == nil {
		r.invalidate(ctx, updated)
	}
	return updated, found, err
}

func (r *MatchRepository) RecordResult(ctx context.Context, id string, homeScore, awayScore int) (match.Match, bool, error) {
	updated, found, err := r.next.RecordResult(ctx, id, homeScore, awayScore)
	if found && err == nil {
		r.invalidate(ctx, updated)
	}
	return updated, found, err
}

func (r *MatchRepository) UpdateDetails(ctx context.Context, id string, update match.DetailsUpdate) (match.Match, bool, error) {
	updated, found, err := r.next.UpdateDetails(ctx, id, update)
	if found && err == nil {
		r.invalidate(ctx, updated)
	}
	return updated, found, err
}

func (r *MatchRepository) invalidate(ctx context.Context, item match.Match) {
	r.cache.Delete(ctx,
		matchIDKey(item.ID),
		matchNumberKey(item.Number),
		seasonMatchesKey(item.SeasonID),
	)
}

type cachedMatchDetail struct {
	value  match.Detail
	exists bool
}

func matchIDKey(id string) string {
	return "match:id:" + id
}

func matchNumberKey(number int64) string {
	return "match:number:" + strconv.FormatInt(number, 10)
}

func seasonMatchesKey(seasonID string) string {
	return "match:season:" + seasonID
}

type SeasonRepository struct {
	next  season.Repository
	cache *basecache.Store
}

func NewSeasonRepository(next season.Repository, cache *basecache.Store) *SeasonRepository {
	return &SeasonRepository{next: next, cache: cache}
}

func (r *SeasonRepository) GetByID(ctx context.Context, seasonID string) (season.Season, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, "season:id:"+seasonID, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, seasonID)
		if err != nil {
			return nil, err
		}
		return cachedSeason{value: item, exists: exists}, nil
	})
	if err != nil {
		return season.Season{}, false, err
	}

	cached, _ := v.(cachedSeason)
	return cached.value, cached.exists, nil
}

func (r *SeasonRepository) ListRegisteredTeamIDs(ctx context.Context, seasonID string) ([]string, error) {
	v, err := r.cache.GetOrLoad(ctx, "season:teams:"+seasonID, func(ctx context.Context) (any, error) {
		teamIDs, err := r.next.ListRegisteredTeamIDs(ctx, seasonID)
		if err != nil {
			return nil, err
		}
		return append([]string(nil), teamIDs...), nil
	})
	if err != nil {
		return nil, err
	}

	teamIDs, _ := v.([]string)
	return append([]string(nil), teamIDs...), nil
}

type cachedSeason struct {
	value  season.Season
	exists bool
}
