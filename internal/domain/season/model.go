package season

import (
	"context"
	"time"
)

// Season is one competition window for a league. Its registered teams are the
// input to fixture generation.
type Season struct {
	ID         string
	LeagueID   string
	LeagueName string
	Name       string
	StartsAt   *time.Time
	EndsAt     *time.Time
}

type Repository interface {
	GetByID(ctx context.Context, seasonID string) (Season, bool, error)
	// ListRegisteredTeamIDs returns the season's team registrations in
	// registration order.
	ListRegisteredTeamIDs(ctx context.Context, seasonID string) ([]string, error)
}
