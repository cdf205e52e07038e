package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/matchdayhq/matchday-api/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo league into an empty database so a fresh
// install has something to generate fixtures against. It is a no-op once any
// league exists.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM leagues`); err != nil {
		return classifyErr("count leagues for bootstrap seed", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return classifyErr("begin seed tx", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	seasons := memory.SeedSeasons()
	for _, s := range seasons {
		query, args, err := sqlx.Named(`
INSERT INTO leagues (id, name)
VALUES (:id, :name)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":   s.LeagueID,
			"name": s.LeagueName,
		})
		if err != nil {
			return fmt.Errorf("bind seed league %s query: %w", s.LeagueID, err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
			return classifyErr(fmt.Sprintf("seed league %s", s.LeagueID), err)
		}
	}

	for _, s := range seasons {
		query, args, err := sqlx.Named(`
INSERT INTO seasons (id, league_id, name, starts_at, ends_at)
VALUES (:id, :league_id, :name, :starts_at, :ends_at)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":        s.ID,
			"league_id": s.LeagueID,
			"name":      s.Name,
			"starts_at": s.StartsAt,
			"ends_at":   s.EndsAt,
		})
		if err != nil {
			return fmt.Errorf("bind seed season %s query: %w", s.ID, err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
			return classifyErr(fmt.Sprintf("seed season %s", s.ID), err)
		}
	}

	for _, t := range memory.SeedTeams() {
		query, args, err := sqlx.Named(`
INSERT INTO teams (id, league_id, name, venue)
VALUES (:id, :league_id, :name, :venue)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":        t.ID,
			"league_id": t.LeagueID,
			"name":      t.Name,
			"venue":     t.Venue,
		})
		if err != nil {
			return fmt.Errorf("bind seed team %s query: %w", t.ID, err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
			return classifyErr(fmt.Sprintf("seed team %s", t.ID), err)
		}
	}

	for seasonID, teamIDs := range memory.SeedRegistrations() {
		for _, teamID := range teamIDs {
			query, args, err := sqlx.Named(`
INSERT INTO season_teams (season_id, team_id)
VALUES (:season_id, :team_id)
ON CONFLICT (season_id, team_id) DO NOTHING`, map[string]any{
				"season_id": seasonID,
				"team_id":   teamID,
			})
			if err != nil {
				return fmt.Errorf("bind seed registration %s/%s query: %w", seasonID, teamID, err)
			}
			if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
				return classifyErr(fmt.Sprintf("seed registration %s/%s", seasonID, teamID), err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return classifyErr("commit seed tx", err)
	}
	return nil
}
