package httpapi

import (
	"net/http"

	"github.com/crickhq/fantasy-cricket/internal/usecase"
)

type scoreUpdateRequest struct {
	ContestID string `json:"contestId"`
	Points    int    `json:"points"`
	Runs      *int   `json:"runs"`
	Wickets   *int   `json:"wickets"`
}

type batchScoreUpdateRequest struct {
	Updates []batchScoreEntryRequest `json:"updates" validate:"required,min=1,dive"`
}

type batchScoreEntryRequest struct {
	PlayerID  string `json:"playerId" validate:"required"`
	ContestID string `json:"contestId"`
	Points    int    `json:"points"`
	Runs      *int   `json:"runs"`
	Wickets   *int   `json:"wickets"`
}

type batchScoreResultDTO struct {
	PlayerID string `json:"playerId"`
	Updated  bool   `json:"updated"`
	Error    string `json:"error,omitempty"`
}

type batchScoreResponseDTO struct {
	Results []batchScoreResultDTO `json:"results"`
	Total   int                   `json:"total"`
}

type contestRecomputeDTO struct {
	ContestID string `json:"contestId"`
	Total     int    `json:"total"`
	Succeeded int    `json:"succeeded"`
	Failed    int    `json:"failed"`
}

// UpdatePlayerScore handles PUT /v1/admin/players/{playerID}/score.
// Dependent team totals are recomputed before the response is written.
func (h *Handler) UpdatePlayerScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePlayerScore")
	defer span.End()

	var req scoreUpdateRequest
	if err := h.decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.scoringService.ApplyScoreUpdate(ctx, usecase.ScoreUpdateInput{
		PlayerID:  r.PathValue("playerID"),
		ContestID: req.ContestID,
		Points:    req.Points,
		Runs:      req.Runs,
		Wickets:   req.Wickets,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(updated))
}

// BatchUpdateScores handles POST /v1/admin/players/scores. Entries are
// applied independently; per-entry failures land in the result list.
func (h *Handler) BatchUpdateScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.BatchUpdateScores")
	defer span.End()

	var req batchScoreUpdateRequest
	if err := h.decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(r, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	inputs := make([]usecase.ScoreUpdateInput, 0, len(req.Updates))
	for _, entry := range req.Updates {
		inputs = append(inputs, usecase.ScoreUpdateInput{
			PlayerID:  entry.PlayerID,
			ContestID: entry.ContestID,
			Points:    entry.Points,
			Runs:      entry.Runs,
			Wickets:   entry.Wickets,
		})
	}

	results, err := h.scoringService.ApplyBatchScoreUpdate(ctx, inputs)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := make([]batchScoreResultDTO, 0, len(results))
	for _, result := range results {
		out = append(out, batchScoreResultDTO{
			PlayerID: result.PlayerID,
			Updated:  result.Updated,
			Error:    result.Error,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, batchScoreResponseDTO{Results: out, Total: len(out)})
}

// RecomputeContest handles POST /v1/admin/contests/{contestID}/recompute.
func (h *Handler) RecomputeContest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecomputeContest")
	defer span.End()

	summary, err := h.scoringService.RecomputeContest(ctx, r.PathValue("contestID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, contestRecomputeDTO{
		ContestID: summary.ContestID,
		Total:     summary.Total,
		Succeeded: summary.Succeeded,
		Failed:    summary.Failed,
	})
}

// RemovePlayer handles DELETE /v1/admin/players/{playerID}. Teams
// holding the player keep their roster rows; the player scores zero
// from then on.
func (h *Handler) RemovePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemovePlayer")
	defer span.End()

	if err := h.scoringService.RemovePlayer(ctx, r.PathValue("playerID")); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"removed": true})
}
