package postgres

import "github.com/matchdayhq/matchday-api/internal/domain/team"

type teamTableModel struct {
	ID       string `db:"id"`
	LeagueID string `db:"league_id"`
	Name     string `db:"name"`
	Venue    string `db:"venue"`
}

func (m teamTableModel) toDomain() team.Team {
	return team.Team{
		ID:       m.ID,
		LeagueID: m.LeagueID,
		Name:     m.Name,
		Venue:    m.Venue,
	}
}
