package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/crickhq/fantasy-cricket/internal/domain/player"
	"github.com/crickhq/fantasy-cricket/internal/domain/team"
	"github.com/crickhq/fantasy-cricket/internal/usecase"
)

type assembleTeamRequest struct {
	ContestID     string   `json:"contestId"`
	Name          string   `json:"name" validate:"required,max=64"`
	PlayerIDs     []string `json:"playerIds" validate:"required,min=1"`
	CaptainID     string   `json:"captainId" validate:"required"`
	ViceCaptainID string   `json:"viceCaptainId" validate:"required"`
}

type teamMemberDTO struct {
	PlayerID      string `json:"playerId"`
	PlayerName    string `json:"playerName,omitempty"`
	Category      string `json:"category,omitempty"`
	Credits       int64  `json:"credits"`
	IsCaptain     bool   `json:"isCaptain"`
	IsViceCaptain bool   `json:"isViceCaptain"`
}

type teamDTO struct {
	ID           string          `json:"id"`
	UserID       string          `json:"userId"`
	ContestID    string          `json:"contestId,omitempty"`
	Name         string          `json:"name"`
	Members      []teamMemberDTO `json:"members"`
	SpentCredits int64           `json:"spentCredits"`
	TotalPoints  int             `json:"totalPoints"`
	CreatedAt    time.Time       `json:"createdAt"`
}

func teamToDTO(t team.Team) teamDTO {
	members := make([]teamMemberDTO, 0, len(t.Members))
	for _, m := range t.Members {
		members = append(members, teamMemberDTO{
			PlayerID:      m.PlayerID,
			Credits:       m.Credits,
			IsCaptain:     m.IsCaptain,
			IsViceCaptain: m.IsViceCaptain,
		})
	}

	return teamDTO{
		ID:           t.ID,
		UserID:       t.UserID,
		ContestID:    t.ContestID,
		Name:         t.Name,
		Members:      members,
		SpentCredits: t.SpentCredits(),
		TotalPoints:  t.TotalPoints,
		CreatedAt:    t.CreatedAt,
	}
}

// teamResponse maps a team to its DTO and resolves member names from the
// player pool. A removed player keeps its roster row but resolves blank.
func (h *Handler) teamResponse(ctx context.Context, t team.Team) (teamDTO, error) {
	dto := teamToDTO(t)

	ids := make([]string, 0, len(t.Members))
	for _, m := range t.Members {
		ids = append(ids, m.PlayerID)
	}

	players, err := h.playerService.PlayersByIDs(ctx, ids)
	if err != nil {
		return teamDTO{}, err
	}

	byID := make(map[string]player.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}
	for i, m := range dto.Members {
		if p, ok := byID[m.PlayerID]; ok {
			dto.Members[i].PlayerName = p.Name
			dto.Members[i].Category = string(p.Category)
		}
	}

	return dto, nil
}

// AssembleTeam handles POST /v1/teams for the authenticated user.
func (h *Handler) AssembleTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AssembleTeam")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: authentication required", usecase.ErrUnauthorized))
		return
	}

	var req assembleTeamRequest
	if err := h.decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(r, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.teamService.AssembleTeam(ctx, usecase.AssembleTeamInput{
		UserID:        principal.UserID,
		ContestID:     req.ContestID,
		Name:          req.Name,
		PlayerIDs:     req.PlayerIDs,
		CaptainID:     req.CaptainID,
		ViceCaptainID: req.ViceCaptainID,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	dto, err := h.teamResponse(ctx, created)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, dto)
}

// GetTeam handles GET /v1/teams/{teamID}.
func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	t, err := h.teamService.GetTeam(ctx, r.PathValue("teamID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	dto, err := h.teamResponse(ctx, t)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, dto)
}

// GetMyTeam handles GET /v1/teams/me. The optional contest_id query
// selects the contest entry; blank means the contest-less team.
func (h *Handler) GetMyTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyTeam")
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

	dto, err := h.teamResponse(ctx, t)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, dto)
}

// DeleteTeam handles DELETE /v1/teams/{teamID}. Owners and admins only.
func (h *Handler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteTeam")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: authentication required", usecase.ErrUnauthorized))
		return
	}

	if err := h.teamService.DeleteTeam(ctx, r.PathValue("teamID"), principal); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"deleted": true})
}
