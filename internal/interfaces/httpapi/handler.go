package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/matchdayhq/matchday-api/internal/usecase"
)

// strictJSON rejects unknown fields so client typos surface as 400s instead
// of silently dropped settings.
var strictJSON = sonic.Config{DisallowUnknownFields: true}.Froze()

type Handler struct {
	matchService   *usecase.MatchService
	fixtureService *usecase.FixtureService
	resultService  *usecase.ResultService
	resyncService  *usecase.StatsResyncService
	logger         *slog.Logger
	validator      *validator.Validate
}

func NewHandler(
	matchService *usecase.MatchService,
	fixtureService *usecase.FixtureService,
	resultService *usecase.ResultService,
	resyncService *usecase.StatsResyncService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		matchService:   matchService,
		fixtureService: fixtureService,
		resultService:  resultService,
		resyncService:  resyncService,
		logger:         logger,
		validator:      validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
