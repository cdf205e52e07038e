package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerMatchRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/matches/{ref}", handler.GetMatch)
	mux.HandleFunc("PATCH /v1/matches/{ref}", handler.UpdateMatchDetails)
	mux.HandleFunc("POST /v1/matches/{ref}/kickoff", handler.KickoffMatch)
	mux.HandleFunc("POST /v1/matches/{ref}/result", handler.RecordMatchResult)
	mux.HandleFunc("POST /v1/matches/{ref}/cancel", handler.CancelMatch)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/matches", handler.ListSeasonMatches)
	mux.HandleFunc("POST /v1/seasons/{seasonID}/fixtures", handler.GenerateFixtures)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/stats-resync/{seasonID}",
		RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunStatsResyncJob)))
}
