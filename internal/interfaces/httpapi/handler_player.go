package httpapi

import (
	"net/http"

	"github.com/crickhq/fantasy-cricket/internal/domain/player"
)

type playerDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Credits  int64  `json:"credits"`
	Points   int    `json:"points"`
	Runs     int    `json:"runs"`
	Wickets  int    `json:"wickets"`
}

type playerListDTO struct {
	Players []playerDTO `json:"players"`
	Total   int         `json:"total"`
}

func playerToDTO(p player.Player) playerDTO {
	return playerDTO{
		ID:       p.ID,
		Name:     p.Name,
		Category: string(p.Category),
		Credits:  p.Credits,
		Points:   p.Points,
		Runs:     p.Runs,
		Wickets:  p.Wickets,
	}
}

func playersToDTO(players []player.Player) playerListDTO {
	out := make([]playerDTO, 0, len(players))
	for _, p := range players {
		out = append(out, playerToDTO(p))
	}

	return playerListDTO{Players: out, Total: len(out)}
}

// ListPlayers handles GET /v1/players. The optional category query
// filters the pool.
func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	players, err := h.playerService.ListPlayers(ctx, r.URL.Query().Get("category"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playersToDTO(players))
}

// GetPlayer handles GET /v1/players/{playerID}.
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	p, err := h.playerService.GetPlayer(ctx, r.PathValue("playerID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(p))
}
