package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/matchdayhq/matchday-api/internal/usecase"
)

type generateFixturesRequest struct {
	MatchDate *string `json:"matchDate" validate:"omitempty"`
}

// GenerateFixtures creates the full round-robin schedule for a season. The
// body is optional; when present it may carry a shared kickoff date.
func (h *Handler) GenerateFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GenerateFixtures")
	defer span.End()

	seasonID := strings.TrimSpace(r.PathValue("seasonID"))

	var req generateFixturesRequest
	decoder := strictJSON.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	input := usecase.GenerateFixturesInput{}
	if req.MatchDate != nil {
		parsed, err := time.Parse(time.RFC3339, *req.MatchDate)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: matchDate must be RFC 3339: %v", usecase.ErrInvalidInput, err))
			return
		}
		utc := parsed.UTC()
		input.MatchDate = &utc
	}

	created, err := h.fixtureService.Generate(ctx, seasonID, input)
	if err != nil {
		h.logger.WarnContext(ctx, "generate fixtures failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchDTO, 0, len(created))
	for _, item := range created {
		items = append(items, matchToDTO(ctx, item))
	}

	writeSuccess(ctx, w, http.StatusCreated, fixtureBatchDTO{
		SeasonID: seasonID,
		Count:    len(items),
		Matches:  items,
	})
}
