package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/matchdayhq/matchday-api/internal/domain/match"
	"github.com/matchdayhq/matchday-api/internal/usecase"
)

const statsAggregationWarning = "statsAggregationFailed"

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	ref := r.PathValue("ref")
	item, err := h.matchService.GetByRef(ctx, ref)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "ref", ref, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchDetailToDTO(ctx, item))
}

func (h *Handler) ListSeasonMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasonMatches")
	defer span.End()

	seasonID := strings.TrimSpace(r.PathValue("seasonID"))
	matches, err := h.matchService.ListBySeason(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "list season matches failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchDTO, 0, len(matches))
	for _, item := range matches {
		items = append(items, matchToDTO(ctx, item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) KickoffMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.KickoffMatch")
	defer span.End()

	ref := r.PathValue("ref")
	item, err := h.matchService.Kickoff(ctx, ref)
	if err != nil {
		h.logger.WarnContext(ctx, "kickoff failed", "ref", ref, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(ctx, item))
}

func (h *Handler) CancelMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CancelMatch")
	defer span.End()

	ref := r.PathValue("ref")
	item, err := h.matchService.Cancel(ctx, ref)
	if err != nil {
		h.logger.WarnContext(ctx, "cancel failed", "ref", ref, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(ctx, item))
}

type recordResultRequest struct {
	HomeScore *int `json:"homeScore" validate:"required,min=0"`
	AwayScore *int `json:"awayScore" validate:"required,min=0"`
}

func (h *Handler) RecordMatchResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordMatchResult")
	defer span.End()

	ref := r.PathValue("ref")

	var req recordResultRequest
	decoder := strictJSON.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	out, err := h.resultService.Record(ctx, ref, *req.HomeScore, *req.AwayScore)
	if err != nil {
		h.logger.WarnContext(ctx, "record result failed", "ref", ref, "error", err)
		writeError(ctx, w, err)
		return
	}

	dto := recordResultDTO{Match: matchToDTO(ctx, out.Match)}
	if out.StatsErr != nil {
		dto.Warnings = append(dto.Warnings, statsAggregationWarning)
	}
	writeSuccess(ctx, w, http.StatusOK, dto)
}

type updateMatchRequest struct {
	MatchDate *string `json:"matchDate" validate:"omitempty"`
	Venue     *string `json:"venue" validate:"omitempty,max=200"`
	Notes     *string `json:"notes" validate:"omitempty,max=2000"`
}

func (h *Handler) UpdateMatchDetails(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMatchDetails")
	defer span.End()

	ref := r.PathValue("ref")

	var req updateMatchRequest
	decoder := strictJSON.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	update := match.DetailsUpdate{Venue: req.Venue, Notes: req.Notes}
	if req.MatchDate != nil {
		parsed, err := time.Parse(time.RFC3339, *req.MatchDate)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: matchDate must be RFC 3339: %v", usecase.ErrInvalidInput, err))
			return
		}
		utc := parsed.UTC()
		update.MatchDate = &utc
	}

	item, err := h.matchService.UpdateDetails(ctx, ref, update)
	if err != nil {
		h.logger.WarnContext(ctx, "update match details failed", "ref", ref, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(ctx, item))
}
