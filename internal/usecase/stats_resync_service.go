package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/matchdayhq/matchday-api/internal/domain/match"
	"github.com/matchdayhq/matchday-api/internal/domain/season"
	"github.com/panjf2000/ants/v2"
)

const defaultResyncWorkerCount = 4

// StatsResyncService re-publishes completed results to the standings
// aggregator. It is the out-of-band retry path for notifications that failed
// at record time, driven by an internal job endpoint.
type StatsResyncService struct {
	seasonRepo  season.Repository
	matchRepo   match.Repository
	notifier    StatsNotifier
	workerCount int
	logger      *slog.Logger
	submitTask  func(pool *ants.Pool, task func()) error
}

type ResyncTaskResult struct {
	MatchID     string
	MatchNumber int64
	Status      string
	Message     string
}

type ResyncResult struct {
	SeasonID     string
	Total        int
	SuccessCount int
	FailedCount  int
	Tasks        []ResyncTaskResult
}

const (
	resyncStatusSuccess = "success"
	resyncStatusFailed  = "failed"
)

func NewStatsResyncService(
	seasonRepo season.Repository,
	matchRepo match.Repository,
	notifier StatsNotifier,
	workerCount int,
	logger *slog.Logger,
) *StatsResyncService {
	if workerCount < 1 {
		workerCount = defaultResyncWorkerCount
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &StatsResyncService{
		seasonRepo:  seasonRepo,
		matchRepo:   matchRepo,
		notifier:    notifier,
		workerCount: workerCount,
		logger:      logger,
		submitTask:  (*ants.Pool).Submit,
	}
}

func (s *StatsResyncService) Resync(ctx context.Context, seasonID string) (ResyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsResyncService.Resync")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return ResyncResult{}, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}
	if s.notifier == nil {
		return ResyncResult{}, fmt.Errorf("%w: stats aggregator is not configured", ErrDependencyUnavailable)
	}

	_, exists, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		return ResyncResult{}, fmt.Errorf("get season: %w", err)
	}
	if !exists {
		return ResyncResult{}, fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}

	matches, err := s.matchRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return ResyncResult{}, fmt.Errorf("list matches by season: %w", err)
	}

	completed := make([]match.Match, 0, len(matches))
	for _, item := range matches {
		if item.Status == match.StatusCompleted && item.HomeScore != nil && item.AwayScore != nil {
			completed = append(completed, item)
		}
	}

	result := ResyncResult{SeasonID: seasonID, Total: len(completed)}
	if len(completed) == 0 {
		return result, nil
	}

	pool, err := ants.NewPool(s.workerCount)
	if err != nil {
		return ResyncResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make(chan ResyncTaskResult, len(completed))
	var successCount atomic.Int32
	var failedCount atomic.Int32

	var workers sync.WaitGroup
	for _, item := range completed {
		item := item
		workers.Add(1)
		if err := s.submitTask(pool, func() {
			defer workers.Done()

			row := ResyncTaskResult{MatchID: item.ID, MatchNumber: item.Number}
			update := StatsUpdate{
				MatchID:    item.ID,
				SeasonID:   item.SeasonID,
				HomeTeamID: item.HomeTeamID,
				AwayTeamID: item.AwayTeamID,
				HomeScore:  *item.HomeScore,
				AwayScore:  *item.AwayScore,
			}
			if notifyErr := s.notifier.PublishResult(ctx, update); notifyErr != nil {
				row.Status = resyncStatusFailed
				row.Message = notifyErr.Error()
				failedCount.Add(1)
				s.logger.WarnContext(ctx, "stats resync task failed", "match_id", item.ID, "error", notifyErr)
			} else {
				row.Status = resyncStatusSuccess
				successCount.Add(1)
			}
			results <- row
		}); err != nil {
			workers.Done()
			// Tasks submitted before the failure are still running; wait
			// them out so Release does not pull the pool from under them.
			workers.Wait()
			return ResyncResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		result.Tasks = append(result.Tasks, row)
	}
	sort.SliceStable(result.Tasks, func(i, j int) bool {
		return result.Tasks[i].MatchNumber < result.Tasks[j].MatchNumber
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())

	return result, nil
}
