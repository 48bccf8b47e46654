package httpapi

import (
	"fmt"
	"net/http"

	"github.com/crickhq/fantasy-cricket/internal/usecase"
)

type leaderboardEntryDTO struct {
	Rank        int    `json:"rank"`
	TeamID      string `json:"teamId"`
	TeamName    string `json:"teamName"`
	UserID      string `json:"userId"`
	TotalPoints int    `json:"totalPoints"`
}

type leaderboardDTO struct {
	ContestID string                `json:"contestId,omitempty"`
	Entries   []leaderboardEntryDTO `json:"entries"`
	TeamCount int                   `json:"teamCount"`
}

type teamRankDTO struct {
	TeamID             string `json:"teamId"`
	ContestID          string `json:"contestId,omitempty"`
	Rank               int    `json:"rank"`
	TotalPoints        int    `json:"totalPoints"`
	PointsBehindLeader int    `json:"pointsBehindLeader"`
	TeamCount          int    `json:"teamCount"`
}

func leaderboardToDTO(contestID string, entries []usecase.LeaderboardEntry) leaderboardDTO {
	out := make([]leaderboardEntryDTO, 0, len(entries))
	for _, entry := range entries {
		out = append(out, leaderboardEntryDTO{
			Rank:        entry.Rank,
			TeamID:      entry.TeamID,
			TeamName:    entry.TeamName,
			UserID:      entry.UserID,
			TotalPoints: entry.TotalPoints,
		})
	}

	return leaderboardDTO{ContestID: contestID, Entries: out, TeamCount: len(out)}
}

// GetLeaderboard handles GET /v1/leaderboard?contest_id=. A blank
// contest id returns the standings of contest-less teams.
func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	contestID := r.URL.Query().Get("contest_id")
	entries, err := h.leaderboardService.GetLeaderboard(ctx, contestID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leaderboardToDTO(contestID, entries))
}

// ExportLeaderboard handles GET /v1/leaderboard/export and streams the
// standings as a CSV attachment.
func (h *Handler) ExportLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ExportLeaderboard")
	defer span.End()

	csv, err := h.leaderboardService.ExportCSV(ctx, r.URL.Query().Get("contest_id"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="leaderboard.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(csv)
}

// GetMyTeamRank handles GET /v1/teams/me/rank for the authenticated
// user's team in the contest given by contest_id.
func (h *Handler) GetMyTeamRank(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyTeamRank")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: authentication required", usecase.ErrUnauthorized))
		return
	}

	t, err := h.teamService.GetUserTeam(ctx, principal.UserID, r.URL.Query().Get("contest_id"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	rank, err := h.leaderboardService.GetTeamRank(ctx, t.ID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamRankDTO{
		TeamID:             rank.TeamID,
		ContestID:          rank.ContestID,
		Rank:               rank.Rank,
		TotalPoints:        rank.TotalPoints,
		PointsBehindLeader: rank.PointsBehindLeader,
		TeamCount:          rank.TeamCount,
	})
}
