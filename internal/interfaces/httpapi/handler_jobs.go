package httpapi

import (
	"net/http"
	"strings"
)

// RunStatsResyncJob re-publishes all completed results of a season to the
// standings aggregator. Reached only through the internal-job token gate.
func (h *Handler) RunStatsResyncJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunStatsResyncJob")
	defer span.End()

	seasonID := strings.TrimSpace(r.PathValue("seasonID"))
	report, err := h.resyncService.Resync(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "stats resync job failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "stats resync job finished",
		"season_id", seasonID,
		"total", report.Total,
		"success", report.SuccessCount,
		"failed", report.FailedCount,
	)
	writeSuccess(ctx, w, http.StatusOK, resyncReportToDTO(ctx, report))
}
