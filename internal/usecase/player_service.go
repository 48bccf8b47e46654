package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/crickhq/fantasy-cricket/internal/domain/player"
	"github.com/crickhq/fantasy-cricket/internal/platform/logging"
)

type PlayerService struct {
	playerRepo player.Repository
	logger     *logging.Logger
}

func NewPlayerService(playerRepo player.Repository, logger *logging.Logger) *PlayerService {
	if logger == nil {
		logger = logging.Default()
	}

	return &PlayerService{
		playerRepo: playerRepo,
		logger:     logger,
	}
}

// ListPlayers returns the selectable pool, optionally narrowed to one
// category.
func (s *PlayerService) ListPlayers(ctx context.Context, category string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListPlayers")
	defer span.End()

	filter := player.Filter{}
	category = strings.TrimSpace(category)
	if category != "" {
		if _, ok := player.AllCategories[player.Category(category)]; !ok {
			return nil, fmt.Errorf("%w: %s: %s", ErrInvalidInput, player.ErrUnknownCategory, category)
		}
		filter.Category = player.Category(category)
	}

	players, err := s.playerRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	return players, nil
}

func (s *PlayerService) GetPlayer(ctx context.Context, playerID string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.GetPlayer")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	p, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player by id: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	return p, nil
}

// PlayersByIDs resolves pool entries for roster display. Missing ids are
// simply absent from the result; callers decide whether that matters.
func (s *PlayerService) PlayersByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.PlayersByIDs")
	defer span.End()

	if len(playerIDs) == 0 {
		return []player.Player{}, nil
	}

	players, err := s.playerRepo.GetByIDs(ctx, playerIDs)
	if err != nil {
		return nil, fmt.Errorf("get players by ids: %w", err)
	}

	return players, nil
}
