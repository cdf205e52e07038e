package match

import (
	"context"
	"errors"
)

var (
	// ErrFixturesExist guards against a duplicate fixture-generation run for
	// a season that already has matches, cancelled ones included.
	ErrFixturesExist = errors.New("season fixtures already generated")
	// ErrPartialFixtureWrite reports a batch insert whose atomicity can no
	// longer be guaranteed; the season's fixture state is indeterminate.
	ErrPartialFixtureWrite = errors.New("fixture batch not written atomically")
)

// Repository exposes match persistence. Mutating operations run inside a
// single transaction and validate status transitions under the row lock, so
// the loser of two concurrent conflicting requests observes the committed
// state and fails with ErrInvalidTransition.
type Repository interface {
	GetByID(ctx context.Context, id string) (Detail, bool, error)
	GetByNumber(ctx context.Context, number int64) (Detail, bool, error)
	ListBySeason(ctx context.Context, seasonID string) ([]Match, error)
	CountBySeason(ctx context.Context, seasonID string) (int, error)

	// InsertSeasonFixtures persists the batch atomically, allocating match
	// numbers in slice order, and fails with ErrFixturesExist when the
	// season already has matches. Returned matches carry assigned numbers.
	InsertSeasonFixtures(ctx context.Context, seasonID string, matches []Match) ([]Match, error)

	// Transition moves the match to the given status when the state machine
	// allows it from the current one; otherwise ErrInvalidTransition.
	Transition(ctx context.Context, id string, to Status) (Match, bool, error)

	// RecordResult sets both scores and flips a live match to completed in
	// one write. Any other current status yields ErrInvalidTransition.
	RecordResult(ctx context.Context, id string, homeScore, awayScore int) (Match, bool, error)

	// UpdateDetails applies pre-completion edits; terminal states are
	// rejected with ErrInvalidTransition.
	UpdateDetails(ctx context.Context, id string, update DetailsUpdate) (Match, bool, error)
}
