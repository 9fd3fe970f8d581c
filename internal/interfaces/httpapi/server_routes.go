package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerCatalogRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/cyclists", handler.ListCyclists)
	mux.HandleFunc("GET /v1/races", handler.ListRaces)
	mux.HandleFunc("GET /v1/races/next", handler.GetNextRace)
	mux.HandleFunc("GET /v1/races/{raceID}/cyclists", handler.ListRaceCyclists)
	mux.HandleFunc("GET /v1/races/{raceID}/results", handler.ListRaceResults)
}

// Sync routes are triggered by the scheduler and guarded by the internal job token.
func registerInternalSyncRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/sync/seed", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSeedSync)))
	mux.Handle("POST /v1/internal/sync/races", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRaceCalendarSync)))
	mux.Handle("POST /v1/internal/sync/results", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRaceResultsSync)))
	mux.Handle("POST /v1/internal/sync/startlists", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunStartlistSync)))
}
