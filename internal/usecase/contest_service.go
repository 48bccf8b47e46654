package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/crickhq/fantasy-cricket/internal/domain/contest"
	"github.com/crickhq/fantasy-cricket/internal/platform/logging"
)

type ContestService struct {
	contestRepo contest.Repository
	logger      *logging.Logger
}

func NewContestService(contestRepo contest.Repository, logger *logging.Logger) *ContestService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ContestService{
		contestRepo: contestRepo,
		logger:      logger,
	}
}

func (s *ContestService) ListContests(ctx context.Context) ([]contest.Contest, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContestService.ListContests")
	defer span.End()

	contests, err := s.contestRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list contests: %w", err)
	}

	return contests, nil
}

func (s *ContestService) GetContest(ctx context.Context, contestID string) (contest.Contest, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContestService.GetContest")
	defer span.End()

	contestID = strings.TrimSpace(contestID)
	if contestID == "" {
		return contest.Contest{}, fmt.Errorf("%w: contest id is required", ErrInvalidInput)
	}

	c, exists, err := s.contestRepo.GetByID(ctx, contestID)
	if err != nil {
		return contest.Contest{}, fmt.Errorf("get contest by id: %w", err)
	}
	if !exists {
		return contest.Contest{}, fmt.Errorf("%w: contest=%s", ErrNotFound, contestID)
	}

	return c, nil
}
