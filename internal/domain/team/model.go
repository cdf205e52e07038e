package team

import "fmt"

// Team is a club registered with a league.
type Team struct {
	ID       string
	LeagueID string
	Name     string
	Venue    string
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}
