package postgres

import (
	"database/sql"
	"time"

	"github.com/matchdayhq/matchday-api/internal/domain/match"
)

type matchTableModel struct {
	ID          string        `db:"id"`
	Number      int64         `db:"match_number"`
	SeasonID    string        `db:"season_id"`
	HomeTeamID  string        `db:"home_team_id"`
	AwayTeamID  string        `db:"away_team_id"`
	Status      string        `db:"status"`
	HomeScore   sql.NullInt64 `db:"home_score"`
	AwayScore   sql.NullInt64 `db:"away_score"`
	MatchDate   *time.Time    `db:"match_date"`
	Venue       string        `db:"venue"`
	Notes       string        `db:"notes"`
	CreatedAt   time.Time     `db:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at"`
	CompletedAt *time.Time    `db:"completed_at"`
}

type matchDetailModel struct {
	matchTableModel
	HomeTeamName string `db:"home_team_name"`
	AwayTeamName string `db:"away_team_name"`
	LeagueName   string `db:"league_name"`
}

func (m matchTableModel) toDomain() match.Match {
	return match.Match{
		ID:          m.ID,
		Number:      m.Number,
		SeasonID:    m.SeasonID,
		HomeTeamID:  m.HomeTeamID,
		AwayTeamID:  m.AwayTeamID,
		Status:      match.Status(m.Status),
		HomeScore:   nullInt64ToIntPtr(m.HomeScore),
		AwayScore:   nullInt64ToIntPtr(m.AwayScore),
		MatchDate:   m.MatchDate,
		Venue:       m.Venue,
		Notes:       m.Notes,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		CompletedAt: m.CompletedAt,
	}
}

func (m matchDetailModel) toDetail() match.Detail {
	return match.Detail{
		Match:        m.toDomain(),
		HomeTeamName: m.HomeTeamName,
		AwayTeamName: m.AwayTeamName,
		LeagueName:   m.LeagueName,
	}
}

func nullInt64ToIntPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	value := int(v.Int64)
	return &value
}
