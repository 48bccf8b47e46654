package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/crickhq/fantasy-cricket/internal/domain/performance"
	"github.com/crickhq/fantasy-cricket/internal/domain/player"
	"github.com/crickhq/fantasy-cricket/internal/domain/scoring"
	"github.com/crickhq/fantasy-cricket/internal/domain/team"
	"github.com/crickhq/fantasy-cricket/internal/platform/cache"
	"github.com/crickhq/fantasy-cricket/internal/platform/logging"
)

const leaderboardCachePrefix = "leaderboard:"

// ScoreUpdateInput is one admin score write. Points is the absolute new
// value, not a delta. ContestID scopes the write to a contest
// performance row; blank targets the player's global points.
type ScoreUpdateInput struct {
	PlayerID  string
	ContestID string
	Points    int
	Runs      *int
	Wickets   *int
}

// BatchScoreUpdateResult reports one entry's outcome. Entries fail
// independently; the batch itself always completes.
type BatchScoreUpdateResult struct {
	PlayerID string
	Updated  bool
	Error    string
}

// ContestRecomputeSummary reports a full-contest recompute run.
type ContestRecomputeSummary struct {
	ContestID string
	Total     int
	Succeeded int
	Failed    int
}

type ScoringService struct {
	playerRepo  player.Repository
	teamRepo    team.Repository
	perfRepo    performance.Repository
	cacheStore  *cache.Store
	logger      *logging.Logger
	workerCount int
	now         func() time.Time
}

func NewScoringService(
	playerRepo player.Repository,
	teamRepo team.Repository,
	perfRepo performance.Repository,
	cacheStore *cache.Store,
	workerCount int,
	logger *logging.Logger,
) *ScoringService {
	if logger == nil {
		logger = logging.Default()
	}
	if workerCount < 1 {
		workerCount = 4
	}

	return &ScoringService{
		playerRepo:  playerRepo,
		teamRepo:    teamRepo,
		perfRepo:    perfRepo,
		cacheStore:  cacheStore,
		logger:      logger,
		workerCount: workerCount,
		now:         time.Now,
	}
}

// ApplyScoreUpdate overwrites a player's score and synchronously
// recomputes the cached total of every team holding the player. Reads
// after this call observe the new totals.
func (s *ScoringService) ApplyScoreUpdate(ctx context.Context, input ScoreUpdateInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ApplyScoreUpdate")
	defer span.End()

	input.PlayerID = strings.TrimSpace(input.PlayerID)
	input.ContestID = strings.TrimSpace(input.ContestID)
	if input.PlayerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	var updated player.Player
	if input.ContestID == "" {
		p, exists, err := s.playerRepo.UpdateScore(ctx, input.PlayerID, player.ScorePatch{
			Points:  input.Points,
			Runs:    input.Runs,
			Wickets: input.Wickets,
		})
		if err != nil {
			return player.Player{}, fmt.Errorf("update player score: %w", err)
		}
		if !exists {
			return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, input.PlayerID)
		}
		updated = p
	} else {
		p, exists, err := s.playerRepo.GetByID(ctx, input.PlayerID)
		if err != nil {
			return player.Player{}, fmt.Errorf("get player by id: %w", err)
		}
		if !exists {
			return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, input.PlayerID)
		}

		row := performance.Performance{
			PlayerID:  input.PlayerID,
			ContestID: input.ContestID,
			Points:    input.Points,
			UpdatedAt: s.now().UTC(),
		}
		if input.Runs != nil {
			row.Runs = *input.Runs
		}
		if input.Wickets != nil {
			row.Wickets = *input.Wickets
		}
		if err := s.perfRepo.Upsert(ctx, row); err != nil {
			return player.Player{}, fmt.Errorf("upsert performance: %w", err)
		}
		updated = p
	}

	if err := s.recomputeTeamsHolding(ctx, input.PlayerID); err != nil {
		return player.Player{}, err
	}
	s.invalidateLeaderboards(ctx)

	s.logger.InfoContext(ctx, "score update applied",
		"player_id", input.PlayerID,
		"contest_id", input.ContestID,
		"points", input.Points,
	)

	return updated, nil
}

// ApplyBatchScoreUpdate applies entries sequentially and independently.
// A failed entry is reported in its slot and never aborts the rest.
func (s *ScoringService) ApplyBatchScoreUpdate(ctx context.Context, inputs []ScoreUpdateInput) ([]BatchScoreUpdateResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ApplyBatchScoreUpdate")
	defer span.End()

	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: at least one score update is required", ErrInvalidInput)
	}

	results := make([]BatchScoreUpdateResult, 0, len(inputs))
	for _, input := range inputs {
		result := BatchScoreUpdateResult{PlayerID: strings.TrimSpace(input.PlayerID)}
		if _, err := s.ApplyScoreUpdate(ctx, input); err != nil {
			result.Error = err.Error()
			s.logger.WarnContext(ctx, "batch score entry failed", "player_id", result.PlayerID, "error", err)
		} else {
			result.Updated = true
		}
		results = append(results, result)
	}

	return results, nil
}

// RecomputeTeamTotal rebuilds one team's total from current scores and
// stores it in the cached column. The recompute is idempotent.
func (s *ScoringService) RecomputeTeamTotal(ctx context.Context, teamID string) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.RecomputeTeamTotal")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return 0, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	t, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return 0, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return 0, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	total, err := s.computeTotal(ctx, t)
	if err != nil {
		return 0, err
	}

	if err := s.teamRepo.SetCachedTotal(ctx, t.ID, total); err != nil {
		return 0, fmt.Errorf("store cached total: %w", err)
	}

	return total, nil
}

// RecomputeContest rebuilds every team total in a contest on a worker
// pool. Used by the admin repair endpoint after bulk score corrections.
func (s *ScoringService) RecomputeContest(ctx context.Context, contestID string) (ContestRecomputeSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.RecomputeContest")
	defer span.End()

	contestID = strings.TrimSpace(contestID)
	if contestID == "" {
		return ContestRecomputeSummary{}, fmt.Errorf("%w: contest id is required", ErrInvalidInput)
	}

	teams, err := s.teamRepo.ListByContest(ctx, contestID)
	if err != nil {
		return ContestRecomputeSummary{}, fmt.Errorf("list teams by contest: %w", err)
	}

	summary := ContestRecomputeSummary{ContestID: contestID, Total: len(teams)}
	if len(teams) == 0 {
		return summary, nil
	}

	pool, err := ants.NewPool(s.workerCount)
	if err != nil {
		return ContestRecomputeSummary{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	var succeeded, failed atomic.Int64
	for _, t := range teams {
		teamID := t.ID
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			if _, err := s.RecomputeTeamTotal(ctx, teamID); err != nil {
				failed.Add(1)
				s.logger.WarnContext(ctx, "contest recompute failed for team", "team_id", teamID, "error", err)
				return
			}
			succeeded.Add(1)
		})
		if submitErr != nil {
			wg.Done()
			failed.Add(1)
		}
	}
	wg.Wait()

	summary.Succeeded = int(succeeded.Load())
	summary.Failed = int(failed.Load())

	s.invalidateLeaderboards(ctx)
	s.logger.InfoContext(ctx, "contest recompute finished",
		"contest_id", contestID,
		"teams", summary.Total,
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
	)

	return summary, nil
}

// RemovePlayer is the admin pool-cleanup path. Roster rows keep their
// recorded credit cost; the player contributes zero to totals from now
// on.
func (s *ScoringService) RemovePlayer(ctx context.Context, playerID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.RemovePlayer")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	deleted, err := s.playerRepo.Delete(ctx, playerID)
	if err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	if err := s.recomputeTeamsHolding(ctx, playerID); err != nil {
		return err
	}
	s.invalidateLeaderboards(ctx)

	s.logger.InfoContext(ctx, "player removed from pool", "player_id", playerID)

	return nil
}

func (s *ScoringService) recomputeTeamsHolding(ctx context.Context, playerID string) error {
	teams, err := s.teamRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return fmt.Errorf("list teams by player: %w", err)
	}

	for _, t := range teams {
		if _, err := s.RecomputeTeamTotal(ctx, t.ID); err != nil {
			return fmt.Errorf("recompute team %s: %w", t.ID, err)
		}
	}

	return nil
}

// computeTotal resolves each member's base score. A team inside a
// contest reads the contest performance rows only; a missing row means
// zero, never the player's global points. Contest-less teams read the
// global pool scores.
func (s *ScoringService) computeTotal(ctx context.Context, t team.Team) (int, error) {
	members := make([]scoring.Member, 0, len(t.Members))
	playerIDs := make([]string, 0, len(t.Members))
	for _, m := range t.Members {
		members = append(members, scoring.Member{
			PlayerID:      m.PlayerID,
			IsCaptain:     m.IsCaptain,
			IsViceCaptain: m.IsViceCaptain,
		})
		playerIDs = append(playerIDs, m.PlayerID)
	}

	if t.ContestID != "" {
		rows, err := s.perfRepo.ListByContest(ctx, t.ContestID)
		if err != nil {
			return 0, fmt.Errorf("list contest performances: %w", err)
		}
		pointsByPlayer := make(map[string]int, len(rows))
		for _, row := range rows {
			pointsByPlayer[row.PlayerID] = row.Points
		}
		return scoring.TeamTotal(members, func(playerID string) (int, bool) {
			pts, ok := pointsByPlayer[playerID]
			return pts, ok
		}), nil
	}

	players, err := s.playerRepo.GetByIDs(ctx, playerIDs)
	if err != nil {
		return 0, fmt.Errorf("get players by ids: %w", err)
	}
	pointsByPlayer := make(map[string]int, len(players))
	for _, p := range players {
		pointsByPlayer[p.ID] = p.Points
	}
	return scoring.TeamTotal(members, func(playerID string) (int, bool) {
		pts, ok := pointsByPlayer[playerID]
		return pts, ok
	}), nil
}

func (s *ScoringService) invalidateLeaderboards(ctx context.Context) {
	if s.cacheStore == nil {
		return
	}
	s.cacheStore.DeletePrefix(ctx, leaderboardCachePrefix)
}
