package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/matchdayhq/matchday-api/internal/domain/season"
	qb "github.com/matchdayhq/matchday-api/internal/platform/querybuilder"
)

type SeasonRepository struct {
	db *sqlx.DB
}

func NewSeasonRepository(db *sqlx.DB) *SeasonRepository {
	return &SeasonRepository{db: db}
}

func (r *SeasonRepository) GetByID(ctx context.Context, seasonID string) (season.Season, bool, error) {
	query, args, err := qb.Select(
		"s.id", "s.league_id", "s.name", "s.starts_at", "s.ends_at",
		"l.name AS league_name",
	).From("seasons s JOIN leagues l ON l.id = s.league_id").
		Where(qb.Eq("s.id", seasonID)).
		ToSQL()
	if err != nil {
		return season.Season{}, false, fmt.Errorf("build select season query: %w", err)
	}

	var row seasonTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return season.Season{}, false, nil
		}
		return season.Season{}, false, classifyErr("select season", err)
	}
	return row.toDomain(), true, nil
}

func (r *SeasonRepository) ListRegisteredTeamIDs(ctx context.Context, seasonID string) ([]string, error) {
	query, args, err := qb.Select("team_id").
		From("season_teams").
		Where(qb.Eq("season_id", seasonID)).
		OrderBy("registered_at", "team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select season teams query: %w", err)
	}

	var teamIDs []string
	if err := r.db.SelectContext(ctx, &teamIDs, query, args...); err != nil {
		return nil, classifyErr("select season teams", err)
	}
	return teamIDs, nil
}
