package httpapi

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"

	"github.com/crickhq/fantasy-cricket/internal/platform/logging"
	"github.com/crickhq/fantasy-cricket/internal/usecase"
)

// Handler owns every HTTP endpoint and delegates to the usecase layer.
type Handler struct {
	playerService      *usecase.PlayerService
	contestService     *usecase.ContestService
	teamService        *usecase.TeamService
	scoringService     *usecase.ScoringService
	leaderboardService *usecase.LeaderboardService
	validate           *validator.Validate
	logger             *logging.Logger
}

func NewHandler(
	playerService *usecase.PlayerService,
	contestService *usecase.ContestService,
	teamService *usecase.TeamService,
	scoringService *usecase.ScoringService,
	leaderboardService *usecase.LeaderboardService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		playerService:      playerService,
		contestService:     contestService,
		teamService:        teamService,
		scoringService:     scoringService,
		leaderboardService: leaderboardService,
		validate:           validator.New(),
		logger:             logger,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) decodeRequest(r *http.Request, dst any) error {
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed request body: %s", usecase.ErrInvalidInput, err.Error())
	}

	return nil
}

func (h *Handler) validateRequest(r *http.Request, req any) error {
	if err := h.validate.StructCtx(r.Context(), req); err != nil {
		return fmt.Errorf("%w: %s", usecase.ErrInvalidInput, err.Error())
	}

	return nil
}
