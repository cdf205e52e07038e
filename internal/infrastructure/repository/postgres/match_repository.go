package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/matchdayhq/matchday-api/internal/domain/match"
	qb "github.com/matchdayhq/matchday-api/internal/platform/querybuilder"
)

const matchDetailFrom = "matches m" +
	" JOIN teams ht ON ht.id = m.home_team_id" +
	" JOIN teams aw ON aw.id = m.away_team_id" +
	" JOIN seasons s ON s.id = m.season_id" +
	" JOIN leagues l ON l.id = s.league_id"

var matchColumns = []string{
	"id", "match_number", "season_id", "home_team_id", "away_team_id",
	"status", "home_score", "away_score", "match_date", "venue", "notes",
	"created_at", "updated_at", "completed_at",
}

func matchDetailColumns() []string {
	columns := make([]string, 0, len(matchColumns)+3)
	for _, column := range matchColumns {
		columns = append(columns, "m."+column)
	}
	return append(columns,
		"ht.name AS home_team_name",
		"aw.name AS away_team_name",
		"l.name AS league_name",
	)
}

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) GetByID(ctx context.Context, id string) (match.Detail, bool, error) {
	return r.getDetail(ctx, qb.Eq("m.id", id))
}

func (r *MatchRepository) GetByNumber(ctx context.Context, number int64) (match.Detail, bool, error) {
	return r.getDetail(ctx, qb.Eq("m.match_number", number))
}

func (r *MatchRepository) getDetail(ctx context.Context, cond qb.Condition) (match.Detail, bool, error) {
	query, args, err := qb.Select(matchDetailColumns()...).
		From(matchDetailFrom).
		Where(cond).
		ToSQL()
	if err != nil {
		return match.Detail{}, false, fmt.Errorf("build select match query: %w", err)
	}

	var row matchDetailModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Detail{}, false, nil
		}
		return match.Detail{}, false, classifyErr("select match", err)
	}
	return row.toDetail(), true, nil
}

func (r *MatchRepository) ListBySeason(ctx context.Context, seasonID string) ([]match.Match, error) {
	query, args, err := qb.Select(matchColumns...).
		From("matches").
		Where(qb.Eq("season_id", seasonID)).
		OrderBy("match_number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches by season query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, classifyErr("select matches by season", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *MatchRepository) CountBySeason(ctx context.Context, seasonID string) (int, error) {
	query, args, err := qb.Select("COUNT(1)").
		From("matches").
		Where(qb.Eq("season_id", seasonID)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count matches by season query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, classifyErr("count matches by season", err)
	}
	return count, nil
}

// InsertSeasonFixtures writes a fixture batch in one transaction. The season
// row is locked first so two concurrent generation calls cannot interleave,
// and the emptiness check is repeated under that lock. Match numbers come
// from the match_numbers sequence inside the same transaction.
func (r *MatchRepository) InsertSeasonFixtures(ctx context.Context, seasonID string, matches []match.Match) ([]match.Match, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, classifyErr("begin insert fixtures tx", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var lockedSeasonID string
	if err := tx.GetContext(ctx, &lockedSeasonID, `SELECT id FROM seasons WHERE id = $1 FOR UPDATE`, seasonID); err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("season %s does not exist", seasonID)
		}
		return nil, classifyErr("lock season for fixture insert", err)
	}

	var existing int
	if err := tx.GetContext(ctx, &existing, `SELECT COUNT(1) FROM matches WHERE season_id = $1`, seasonID); err != nil {
		return nil, classifyErr("recount season matches under lock", err)
	}
	if existing > 0 {
		return nil, fmt.Errorf("%w: season=%s", match.ErrFixturesExist, seasonID)
	}

	out := make([]match.Match, 0, len(matches))
	for _, item := range matches {
		query, args, err := sqlx.Named(`
INSERT INTO matches (id, season_id, home_team_id, away_team_id, status, match_date, venue, notes)
VALUES (:id, :season_id, :home_team_id, :away_team_id, :status, :match_date, :venue, :notes)
RETURNING `+strings.Join(matchColumns, ", "), map[string]any{
			"id":           item.ID,
			"season_id":    seasonID,
			"home_team_id": item.HomeTeamID,
			"away_team_id": item.AwayTeamID,
			"status":       string(item.Status),
			"match_date":   item.MatchDate,
			"venue":        item.Venue,
			"notes":        item.Notes,
		})
		if err != nil {
			return nil, fmt.Errorf("bind insert fixture %s query: %w", item.ID, err)
		}
		query = tx.Rebind(query)

		var row matchTableModel
		if err := tx.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
			return nil, classifyErr(fmt.Sprintf("insert fixture %s", item.ID), err)
		}
		out = append(out, row.toDomain())
	}

	if err := tx.Commit(); err != nil {
		// The commit outcome is unknown here: the batch may or may not have
		// landed, so callers must not retry blindly.
		return nil, fmt.Errorf("%w: commit fixture batch for season %s: %v", match.ErrPartialFixtureWrite, seasonID, err)
	}
	return out, nil
}

func (r *MatchRepository) Transition(ctx context.Context, id string, to match.Status) (match.Match, bool, error) {
	return r.mutate(ctx, id, to, func(builder *qb.UpdateBuilder) {
		builder.Set("status", string(to))
	})
}

func (r *MatchRepository) RecordResult(ctx context.Context, id string, homeScore, awayScore int) (match.Match, bool, error) {
	return r.mutate(ctx, id, match.StatusCompleted, func(builder *qb.UpdateBuilder) {
		builder.Set("status", string(match.StatusCompleted)).
			Set("home_score", homeScore).
			Set("away_score", awayScore).
			SetExpr("completed_at", "NOW()")
	})
}

func (r *MatchRepository) UpdateDetails(ctx context.Context, id string, update match.DetailsUpdate) (match.Match, bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return match.Match{}, false, classifyErr("begin update match details tx", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	current, found, err := lockMatchStatus(ctx, tx, id)
	if err != nil || !found {
		return match.Match{}, found, err
	}
	if current.Terminal() {
		return match.Match{}, true, fmt.Errorf("%w: %s match is read-only", match.ErrInvalidTransition, current)
	}

	builder := qb.Update("matches").SetExpr("updated_at", "NOW()")
	if update.MatchDate != nil {
		builder.Set("match_date", *update.MatchDate)
	}
	if update.Venue != nil {
		builder.Set("venue", *update.Venue)
	}
	if update.Notes != nil {
		builder.Set("notes", *update.Notes)
	}
	row, err := applyMatchUpdate(ctx, tx, id, builder)
	if err != nil {
		return match.Match{}, true, err
	}

	if err := tx.Commit(); err != nil {
		return match.Match{}, true, classifyErr("commit update match details tx", err)
	}
	return row.toDomain(), true, nil
}

// mutate runs a status transition under a row lock: the current status is
// read FOR UPDATE, validated against the transition table, and only then
// rewritten.
func (r *MatchRepository) mutate(ctx context.Context, id string, to match.Status, assign func(*qb.UpdateBuilder)) (match.Match, bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return match.Match{}, false, classifyErr("begin match transition tx", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	current, found, err := lockMatchStatus(ctx, tx, id)
	if err != nil || !found {
		return match.Match{}, found, err
	}
	if err := match.CheckTransition(current, to); err != nil {
		return match.Match{}, true, err
	}

	builder := qb.Update("matches").SetExpr("updated_at", "NOW()")
	assign(builder)
	row, err := applyMatchUpdate(ctx, tx, id, builder)
	if err != nil {
		return match.Match{}, true, err
	}

	if err := tx.Commit(); err != nil {
		return match.Match{}, true, classifyErr("commit match transition tx", err)
	}
	return row.toDomain(), true, nil
}

func lockMatchStatus(ctx context.Context, tx *sqlx.Tx, id string) (match.Status, bool, error) {
	var status string
	if err := tx.GetContext(ctx, &status, `SELECT status FROM matches WHERE id = $1 FOR UPDATE`, id); err != nil {
		if isNotFound(err) {
			return "", false, nil
		}
		return "", false, classifyErr("lock match row", err)
	}
	return match.Status(status), true, nil
}

func applyMatchUpdate(ctx context.Context, tx *sqlx.Tx, id string, builder *qb.UpdateBuilder) (matchTableModel, error) {
	query, args, err := builder.
		Where(qb.Eq("id", id)).
		Suffix("RETURNING " + strings.Join(matchColumns, ", ")).
		ToSQL()
	if err != nil {
		return matchTableModel{}, fmt.Errorf("build update match query: %w", err)
	}

	var row matchTableModel
	if err := tx.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		return matchTableModel{}, classifyErr("update match", err)
	}
	return row, nil
}
