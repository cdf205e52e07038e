package memory

import (
	"github.com/matchdayhq/matchday-api/internal/domain/season"
	"github.com/matchdayhq/matchday-api/internal/domain/team"
)

// Seed data for running the API without a database. IDs follow the UUID
// shape the production store assigns.

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: "5f3a1d92-6c41-4f63-9a7e-02d4b1a9c101", LeagueID: "9d1f0a34-22be-4d55-8c3a-7fe0b6d20001", Name: "Northside Rovers", Venue: "Northside Park"},
		{ID: "5f3a1d92-6c41-4f63-9a7e-02d4b1a9c102", LeagueID: "9d1f0a34-22be-4d55-8c3a-7fe0b6d20001", Name: "Harbour United", Venue: "Harbour Green"},
		{ID: "5f3a1d92-6c41-4f63-9a7e-02d4b1a9c103", LeagueID: "9d1f0a34-22be-4d55-8c3a-7fe0b6d20001", Name: "Old Mill Athletic", Venue: "Mill Lane"},
		{ID: "5f3a1d92-6c41-4f63-9a7e-02d4b1a9c104", LeagueID: "9d1f0a34-22be-4d55-8c3a-7fe0b6d20001", Name: "Eastgate Wanderers", Venue: "Eastgate Field"},
	}
}

func SeedSeasons() []season.Season {
	return []season.Season{
		{
			ID:         "c7b8e6a0-91f2-4c0d-b5a3-4a6d8e2f0201",
			LeagueID:   "9d1f0a34-22be-4d55-8c3a-7fe0b6d20001",
			LeagueName: "Sunday District League",
			Name:       "2026/27",
		},
	}
}

func SeedRegistrations() map[string][]string {
	teamIDs := make([]string, 0, len(SeedTeams()))
	for _, t := range SeedTeams() {
		teamIDs = append(teamIDs, t.ID)
	}
	return map[string][]string{
		"c7b8e6a0-91f2-4c0d-b5a3-4a6d8e2f0201": teamIDs,
	}
}
