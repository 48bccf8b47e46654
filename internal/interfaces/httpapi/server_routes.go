package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, cfg RouterConfig) {
	mux.HandleFunc("GET /healthz", handler.Healthz)

	if cfg.SwaggerEnabled {
		mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
		mux.HandleFunc("GET /docs", handler.SwaggerUI)
	}
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayer)
	mux.HandleFunc("GET /v1/contests", handler.ListContests)
	mux.HandleFunc("GET /v1/contests/{contestID}", handler.GetContest)
	mux.HandleFunc("GET /v1/leaderboard", handler.GetLeaderboard)
	mux.HandleFunc("GET /v1/leaderboard/export", handler.ExportLeaderboard)
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeam)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	auth := RequireAuth(verifier)

	mux.Handle("POST /v1/teams", auth(http.HandlerFunc(handler.AssembleTeam)))
	mux.Handle("GET /v1/teams/me", auth(http.HandlerFunc(handler.GetMyTeam)))
	mux.Handle("GET /v1/teams/me/rank", auth(http.HandlerFunc(handler.GetMyTeamRank)))
	mux.Handle("DELETE /v1/teams/{teamID}", auth(http.HandlerFunc(handler.DeleteTeam)))
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	admin := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(verifier)(RequireAdmin()(h))
	}

	mux.Handle("PUT /v1/admin/players/{playerID}/score", admin(handler.UpdatePlayerScore))
	mux.Handle("POST /v1/admin/players/scores", admin(handler.BatchUpdateScores))
	mux.Handle("POST /v1/admin/contests/{contestID}/recompute", admin(handler.RecomputeContest))
	mux.Handle("DELETE /v1/admin/players/{playerID}", admin(handler.RemovePlayer))
}
