package match

import "time"

// Match is one fixture between two distinct teams in a season.
//
// A match carries two identifiers: the opaque UUID assigned at creation and a
// human-friendly sequential number allocated by the store in creation order.
// Neither ever changes once assigned, and numbers are never reused even when
// the match is later cancelled.
type Match struct {
	ID          string
	Number      int64
	SeasonID    string
	HomeTeamID  string
	AwayTeamID  string
	Status      Status
	HomeScore   *int
	AwayScore   *int
	MatchDate   *time.Time
	Venue       string
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
}

// Detail is a match joined with display names for its teams and league.
// Names fall back to the empty string when the joined row is missing.
type Detail struct {
	Match
	HomeTeamName string
	AwayTeamName string
	LeagueName   string
}

// DetailsUpdate holds the administrative edits allowed before completion.
// Nil fields are left untouched.
type DetailsUpdate struct {
	MatchDate *time.Time
	Venue     *string
	Notes     *string
}

func (u DetailsUpdate) Empty() bool {
	return u.MatchDate == nil && u.Venue == nil && u.Notes == nil
}
