package postgres

import (
	"time"

	"github.com/matchdayhq/matchday-api/internal/domain/season"
)

type seasonTableModel struct {
	ID         string     `db:"id"`
	LeagueID   string     `db:"league_id"`
	LeagueName string     `db:"league_name"`
	Name       string     `db:"name"`
	StartsAt   *time.Time `db:"starts_at"`
	EndsAt     *time.Time `db:"ends_at"`
}

func (m seasonTableModel) toDomain() season.Season {
	return season.Season{
		ID:         m.ID,
		LeagueID:   m.LeagueID,
		LeagueName: m.LeagueName,
		Name:       m.Name,
		StartsAt:   m.StartsAt,
		EndsAt:     m.EndsAt,
	}
}
