package httpapi

import (
	"net/http"
	"time"

	"github.com/crickhq/fantasy-cricket/internal/domain/contest"
)

type contestDTO struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Status     string    `json:"status"`
	EntryFee   int64     `json:"entryFee"`
	MaxEntries int       `json:"maxEntries"`
	StartsAt   time.Time `json:"startsAt"`
}

type contestListDTO struct {
	Contests []contestDTO `json:"contests"`
	Total    int          `json:"total"`
}

func contestToDTO(c contest.Contest) contestDTO {
	return contestDTO{
		ID:         c.ID,
		Name:       c.Name,
		Status:     string(c.Status),
		EntryFee:   c.EntryFee,
		MaxEntries: c.MaxEntries,
		StartsAt:   c.StartsAt,
	}
}

// ListContests handles GET /v1/contests.
func (h *Handler) ListContests(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListContests")
	defer span.End()

	contests, err := h.contestService.ListContests(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := make([]contestDTO, 0, len(contests))
	for _, c := range contests {
		out = append(out, contestToDTO(c))
	}

	writeSuccess(ctx, w, http.StatusOK, contestListDTO{Contests: out, Total: len(out)})
}

// GetContest handles GET /v1/contests/{contestID}.
func (h *Handler) GetContest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetContest")
	defer span.End()

	c, err := h.contestService.GetContest(ctx, r.PathValue("contestID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, contestToDTO(c))
}
