package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerChampionshipRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/standings", handler.GetStandings)
	mux.HandleFunc("GET /v1/rounds", handler.ListRounds)
	mux.HandleFunc("GET /v1/rounds/current", handler.GetCurrentRound)
	mux.HandleFunc("PUT /v1/rounds/current", handler.SelectRound)
	mux.HandleFunc("POST /v1/rounds/current/simulate", handler.SimulateRound)
	mux.HandleFunc("POST /v1/rounds/current/clear", handler.ClearRound)
	mux.HandleFunc("PUT /v1/matches/{matchID}/score", handler.UpdateMatchScore)
	mux.HandleFunc("POST /v1/championship/reset", handler.ResetChampionship)
	mux.HandleFunc("GET /v1/odds", handler.GetTitleOdds)
}

func registerTeamRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeamDetails)
}
