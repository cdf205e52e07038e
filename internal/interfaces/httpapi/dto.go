package httpapi

import (
	"context"
	"time"

	"github.com/matchdayhq/matchday-api/internal/domain/match"
	"github.com/matchdayhq/matchday-api/internal/usecase"
)

type matchDTO struct {
	ID             string  `json:"id"`
	MatchNumber    int64   `json:"matchNumber"`
	SeasonID       string  `json:"seasonId"`
	HomeTeamID     string  `json:"homeTeamId"`
	AwayTeamID     string  `json:"awayTeamId"`
	Status         string  `json:"status"`
	HomeScore      *int    `json:"homeScore"`
	AwayScore      *int    `json:"awayScore"`
	MatchDate      *string `json:"matchDate,omitempty"`
	Venue          string  `json:"venue,omitempty"`
	Notes          string  `json:"notes,omitempty"`
	CreatedAtUTC   string  `json:"createdAtUtc"`
	UpdatedAtUTC   string  `json:"updatedAtUtc"`
	CompletedAtUTC *string `json:"completedAtUtc,omitempty"`
}

type matchDetailDTO struct {
	matchDTO
	HomeTeamName string `json:"homeTeamName"`
	AwayTeamName string `json:"awayTeamName"`
	LeagueName   string `json:"leagueName"`
}

type recordResultDTO struct {
	Match    matchDTO `json:"match"`
	Warnings []string `json:"warnings,omitempty"`
}

type fixtureBatchDTO struct {
	SeasonID string     `json:"seasonId"`
	Count    int        `json:"count"`
	Matches  []matchDTO `json:"matches"`
}

type resyncReportDTO struct {
	SeasonID     string          `json:"seasonId"`
	Total        int             `json:"total"`
	SuccessCount int             `json:"successCount"`
	FailedCount  int             `json:"failedCount"`
	Tasks        []resyncTaskDTO `json:"tasks"`
}

type resyncTaskDTO struct {
	MatchID     string `json:"matchId"`
	MatchNumber int64  `json:"matchNumber"`
	Status      string `json:"status"`
	Message     string `json:"message,omitempty"`
}

func matchToDTO(ctx context.Context, v match.Match) matchDTO {
	ctx, span := startSpan(ctx, "httpapi.matchToDTO")
	defer span.End()

	dto := matchDTO{
		ID:           v.ID,
		MatchNumber:  v.Number,
		SeasonID:     v.SeasonID,
		HomeTeamID:   v.HomeTeamID,
		AwayTeamID:   v.AwayTeamID,
		Status:       string(v.Status),
		HomeScore:    v.HomeScore,
		AwayScore:    v.AwayScore,
		Venue:        v.Venue,
		Notes:        v.Notes,
		CreatedAtUTC: v.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAtUTC: v.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if v.MatchDate != nil {
		formatted := v.MatchDate.UTC().Format(time.RFC3339)
		dto.MatchDate = &formatted
	}
	if v.CompletedAt != nil {
		formatted := v.CompletedAt.UTC().Format(time.RFC3339)
		dto.CompletedAtUTC = &formatted
	}
	return dto
}

func matchDetailToDTO(ctx context.Context, v match.Detail) matchDetailDTO {
	ctx, span := startSpan(ctx, "httpapi.matchDetailToDTO")
	defer span.End()

	return matchDetailDTO{
		matchDTO:     matchToDTO(ctx, v.Match),
		HomeTeamName: v.HomeTeamName,
		AwayTeamName: v.AwayTeamName,
		LeagueName:   v.LeagueName,
	}
}

func resyncReportToDTO(ctx context.Context, v usecase.ResyncResult) resyncReportDTO {
	ctx, span := startSpan(ctx, "httpapi.resyncReportToDTO")
	defer span.End()

	tasks := make([]resyncTaskDTO, 0, len(v.Tasks))
	for _, task := range v.Tasks {
		tasks = append(tasks, resyncTaskDTO{
			MatchID:     task.MatchID,
			MatchNumber: task.MatchNumber,
			Status:      task.Status,
			Message:     task.Message,
		})
	}

	return resyncReportDTO{
		SeasonID:     v.SeasonID,
		Total:        v.Total,
		SuccessCount: v.SuccessCount,
		FailedCount:  v.FailedCount,
		Tasks:        tasks,
	}
}
