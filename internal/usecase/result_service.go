package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/matchdayhq/matchday-api/internal/domain/match"
)

// StatsUpdate is the payload handed to the standings aggregator after a
// result lands.
type StatsUpdate struct {
	MatchID    string
	SeasonID   string
	HomeTeamID string
	AwayTeamID string
	HomeScore  int
	AwayScore  int
}

// StatsNotifier pushes a recorded result to the standings aggregator.
type StatsNotifier interface {
	PublishResult(ctx context.Context, update StatsUpdate) error
}

// RecordResultOutput distinguishes a clean success from one where the result
// is committed but the aggregator notification failed. StatsErr is advisory:
// the result stands either way and the notification is retried out-of-band.
type RecordResultOutput struct {
	Match    match.Match
	StatsErr error
}

// ResultService records final scores and completes matches.
type ResultService struct {
	matchRepo match.Repository
	notifier  StatsNotifier
	logger    *slog.Logger
}

func NewResultService(matchRepo match.Repository, notifier StatsNotifier, logger *slog.Logger) *ResultService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ResultService{
		matchRepo: matchRepo,
		notifier:  notifier,
		logger:    logger,
	}
}

// Record sets both scores and flips the match to completed in one write.
// The match must be live: recording against a scheduled match is rejected by
// the transition table, as is re-recording a completed one.
func (s *ResultService) Record(ctx context.Context, token string, homeScore, awayScore int) (RecordResultOutput, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.Record")
	defer span.End()

	if homeScore < 0 || awayScore < 0 {
		return RecordResultOutput{}, fmt.Errorf("%w: scores must be non-negative", ErrInvalidInput)
	}

	ref, err := match.ParseRef(token)
	if err != nil {
		return RecordResultOutput{}, fmt.Errorf("%w: %v", ErrInvalidIdentifier, err)
	}

	var (
		resolved match.Detail
		found    bool
	)
	switch ref.Kind {
	case match.RefByID:
		resolved, found, err = s.matchRepo.GetByID(ctx, ref.ID)
	default:
		resolved, found, err = s.matchRepo.GetByNumber(ctx, ref.Number)
	}
	if err != nil {
		return RecordResultOutput{}, fmt.Errorf("resolve match reference: %w", err)
	}
	if !found {
		return RecordResultOutput{}, fmt.Errorf("%w: match=%s", ErrNotFound, token)
	}

	updated, found, err := s.matchRepo.RecordResult(ctx, resolved.ID, homeScore, awayScore)
	if err != nil {
		return RecordResultOutput{}, fmt.Errorf("record result: %w", err)
	}
	if !found {
		return RecordResultOutput{}, fmt.Errorf("%w: match=%s", ErrNotFound, resolved.ID)
	}

	out := RecordResultOutput{Match: updated}
	if s.notifier == nil {
		return out, nil
	}

	update := StatsUpdate{
		MatchID:    updated.ID,
		SeasonID:   updated.SeasonID,
		HomeTeamID: updated.HomeTeamID,
		AwayTeamID: updated.AwayTeamID,
		HomeScore:  homeScore,
		AwayScore:  awayScore,
	}
	if notifyErr := s.notifier.PublishResult(ctx, update); notifyErr != nil {
		// The recorded result must not be rolled back over a standings
		// refresh failure; surface it as a warning instead.
		s.logger.WarnContext(ctx, "stats aggregation failed after result recorded",
			"match_id", updated.ID,
			"match_number", updated.Number,
			"error", notifyErr,
		)
		out.StatsErr = notifyErr
	}

	return out, nil
}
