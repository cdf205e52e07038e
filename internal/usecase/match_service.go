package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/matchdayhq/matchday-api/internal/domain/match"
)

// MatchService resolves match references and drives status transitions that
// carry no score payload (kickoff, cancellation) plus pre-completion edits.
type MatchService struct {
	matchRepo match.Repository
}

func NewMatchService(matchRepo match.Repository) *MatchService {
	return &MatchService{matchRepo: matchRepo}
}

// GetByRef looks a match up by either addressing scheme. Old links carry the
// UUID, newer surfaces the short sequential number; callers never say which.
func (s *MatchService) GetByRef(ctx context.Context, token string) (match.Detail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.GetByRef")
	defer span.End()

	return s.resolve(ctx, token)
}

func (s *MatchService) Kickoff(ctx context.Context, token string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Kickoff")
	defer span.End()

	return s.transition(ctx, token, match.StatusLive)
}

func (s *MatchService) Cancel(ctx context.Context, token string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Cancel")
	defer span.End()

	return s.transition(ctx, token, match.StatusCancelled)
}

func (s *MatchService) UpdateDetails(ctx context.Context, token string, update match.DetailsUpdate) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.UpdateDetails")
	defer span.End()

	if update.Empty() {
		return match.Match{}, fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}

	resolved, err := s.resolve(ctx, token)
	if err != nil {
		return match.Match{}, err
	}

	updated, found, err := s.matchRepo.UpdateDetails(ctx, resolved.ID, update)
	if err != nil {
		return match.Match{}, fmt.Errorf("update match details: %w", err)
	}
	if !found {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, resolved.ID)
	}

	return updated, nil
}

func (s *MatchService) ListBySeason(ctx context.Context, seasonID string) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListBySeason")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return nil, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	matches, err := s.matchRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list matches by season: %w", err)
	}

	return matches, nil
}

func (s *MatchService) transition(ctx context.Context, token string, to match.Status) (match.Match, error) {
	resolved, err := s.resolve(ctx, token)
	if err != nil {
		return match.Match{}, err
	}

	updated, found, err := s.matchRepo.Transition(ctx, resolved.ID, to)
	if err != nil {
		return match.Match{}, fmt.Errorf("transition match to %s: %w", to, err)
	}
	if !found {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, resolved.ID)
	}

	return updated, nil
}

func (s *MatchService) resolve(ctx context.Context, token string) (match.Detail, error) {
	ref, err := match.ParseRef(token)
	if err != nil {
		return match.Detail{}, fmt.Errorf("%w: %v", ErrInvalidIdentifier, err)
	}

	var (
		detail match.Detail
		found  bool
	)
	switch ref.Kind {
	case match.RefByID:
		detail, found, err = s.matchRepo.GetByID(ctx, ref.ID)
	default:
		detail, found, err = s.matchRepo.GetByNumber(ctx, ref.Number)
	}
	if err != nil {
		return match.Detail{}, fmt.Errorf("resolve match reference: %w", err)
	}
	if !found {
		return match.Detail{}, fmt.Errorf("%w: match=%s", ErrNotFound, strings.TrimSpace(token))
	}

	return detail, nil
}
