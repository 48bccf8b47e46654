package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/sourcegraph/conc/pool"
	"github.com/valyala/bytebufferpool"

	"github.com/crickhq/fantasy-cricket/internal/domain/contest"
	"github.com/crickhq/fantasy-cricket/internal/domain/team"
	"github.com/crickhq/fantasy-cricket/internal/platform/cache"
	"github.com/crickhq/fantasy-cricket/internal/platform/logging"
)

// LeaderboardEntry is a derived standings row. It is never stored;
// every build recomputes totals from current scores.
type LeaderboardEntry struct {
	Rank        int
	TeamID      string
	TeamName    string
	UserID      string
	TotalPoints int
}

// TeamRank is one team's standing inside its leaderboard.
type TeamRank struct {
	TeamID             string
	ContestID          string
	Rank               int
	TotalPoints        int
	PointsBehindLeader int
	TeamCount          int
}

// TotalComputer rebuilds one team's total. Implemented by
// ScoringService so leaderboard reads and score writes share the same
// arithmetic.
type TotalComputer interface {
	RecomputeTeamTotal(ctx context.Context, teamID string) (int, error)
}

type LeaderboardService struct {
	teamRepo       team.Repository
	contestRepo    contest.Repository
	totals         TotalComputer
	cacheStore     *cache.Store
	logger         *logging.Logger
	maxConcurrency int
}

func NewLeaderboardService(
	teamRepo team.Repository,
	contestRepo contest.Repository,
	totals TotalComputer,
	cacheStore *cache.Store,
	maxConcurrency int,
	logger *logging.Logger,
) *LeaderboardService {
	if logger == nil {
		logger = logging.Default()
	}
	if maxConcurrency < 1 {
		maxConcurrency = 8
	}

	return &LeaderboardService{
		teamRepo:       teamRepo,
		contestRepo:    contestRepo,
		totals:         totals,
		cacheStore:     cacheStore,
		logger:         logger,
		maxConcurrency: maxConcurrency,
	}
}

// GetLeaderboard returns the standings for a contest, or the global
// standings of contest-less teams when contestID is blank. Results are
// cached briefly; scoring writes invalidate the cache.
func (s *LeaderboardService) GetLeaderboard(ctx context.Context, contestID string) ([]LeaderboardEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.GetLeaderboard")
	defer span.End()

	contestID = strings.TrimSpace(contestID)
	if contestID != "" {
		if _, exists, err := s.contestRepo.GetByID(ctx, contestID); err != nil {
			return nil, fmt.Errorf("get contest by id: %w", err)
		} else if !exists {
			return nil, fmt.Errorf("%w: contest=%s", ErrNotFound, contestID)
		}
	}

	if s.cacheStore == nil {
		return s.buildLeaderboard(ctx, contestID)
	}

	value, err := s.cacheStore.GetOrLoad(ctx, leaderboardCachePrefix+contestID, func(ctx context.Context) (any, error) {
		return s.buildLeaderboard(ctx, contestID)
	})
	if err != nil {
		return nil, err
	}

	entries, ok := value.([]LeaderboardEntry)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected leaderboard cache entry", ErrDependencyUnavailable)
	}

	return entries, nil
}

// GetTeamRank resolves one team's position in its own leaderboard. Rank
// is one plus the number of strictly greater totals, so tied teams share
// a rank.
func (s *LeaderboardService) GetTeamRank(ctx context.Context, teamID string) (TeamRank, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.GetTeamRank")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return TeamRank{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	t, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return TeamRank{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return TeamRank{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	entries, err := s.GetLeaderboard(ctx, t.ContestID)
	if err != nil {
		return TeamRank{}, err
	}

	for _, entry := range entries {
		if entry.TeamID != teamID {
			continue
		}
		rank := TeamRank{
			TeamID:      teamID,
			ContestID:   t.ContestID,
			Rank:        entry.Rank,
			TotalPoints: entry.TotalPoints,
			TeamCount:   len(entries),
		}
		if len(entries) > 0 {
			rank.PointsBehindLeader = entries[0].TotalPoints - entry.TotalPoints
		}
		return rank, nil
	}

	return TeamRank{}, fmt.Errorf("%w: team=%s missing from its leaderboard", ErrNotFound, teamID)
}

// ExportCSV renders the leaderboard as CSV for download.
func (s *LeaderboardService) ExportCSV(ctx context.Context, contestID string) ([]byte, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.ExportCSV")
	defer span.End()

	entries, err := s.GetLeaderboard(ctx, contestID)
	if err != nil {
		return nil, err
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString("rank,team_id,team_name,user_id,total_points\n")
	for _, entry := range entries {
		_, _ = buf.WriteString(strconv.Itoa(entry.Rank))
		_ = buf.WriteByte(',')
		_, _ = buf.WriteString(entry.TeamID)
		_ = buf.WriteByte(',')
		_, _ = buf.WriteString(csvEscape(entry.TeamName))
		_ = buf.WriteByte(',')
		_, _ = buf.WriteString(entry.UserID)
		_ = buf.WriteByte(',')
		_, _ = buf.WriteString(strconv.Itoa(entry.TotalPoints))
		_ = buf.WriteByte('\n')
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, nil
}

func (s *LeaderboardService) buildLeaderboard(ctx context.Context, contestID string) ([]LeaderboardEntry, error) {
	teams, err := s.teamRepo.ListByContest(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	if len(teams) == 0 {
		return []LeaderboardEntry{}, nil
	}

	// Totals are rebuilt on read so a leaderboard never trusts the
	// cached column. Recomputes run on a bounded pool per team.
	totals := make([]int, len(teams))
	p := pool.New().WithErrors().WithMaxGoroutines(s.maxConcurrency)
	for i := range teams {
		i := i
		p.Go(func() error {
			total, err := s.totals.RecomputeTeamTotal(ctx, teams[i].ID)
			if err != nil {
				return fmt.Errorf("recompute team %s: %w", teams[i].ID, err)
			}
			totals[i] = total
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	order := make([]int, len(teams))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ta, tb := teams[order[a]], teams[order[b]]
		if totals[order[a]] != totals[order[b]] {
			return totals[order[a]] > totals[order[b]]
		}
		if !ta.CreatedAt.Equal(tb.CreatedAt) {
			return ta.CreatedAt.Before(tb.CreatedAt)
		}
		return ta.ID < tb.ID
	})

	entries := make([]LeaderboardEntry, 0, len(teams))
	rank := 1
	for pos, idx := range order {
		if pos > 0 && totals[idx] < totals[order[pos-1]] {
			rank = pos + 1
		}
		entries = append(entries, LeaderboardEntry{
			Rank:        rank,
			TeamID:      teams[idx].ID,
			TeamName:    teams[idx].Name,
			UserID:      teams[idx].UserID,
			TotalPoints: totals[idx],
		})
	}

	return entries, nil
}

func csvEscape(value string) string {
	if !strings.ContainsAny(value, ",\"\n") {
		return value
	}
	return "\"" + strings.ReplaceAll(value, "\"", "\"\"") + "\""
}
