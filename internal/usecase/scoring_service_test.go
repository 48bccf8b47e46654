package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/crickhq/fantasy-cricket/internal/domain/team"
	"github.com/crickhq/fantasy-cricket/internal/infrastructure/repository/memory"
	"github.com/crickhq/fantasy-cricket/internal/platform/logging"
)

type scoringFixture struct {
	players  *memory.PlayerRepository
	teams    *memory.TeamRepository
	perfs    *memory.PerformanceRepository
	contests *memory.ContestRepository
	service  *ScoringService
}

func newScoringFixture(t *testing.T) *scoringFixture {
	t.Helper()

	f := &scoringFixture{
		players:  memory.NewPlayerRepository(memory.SeedPlayers()),
		teams:    memory.NewTeamRepository(),
		perfs:    memory.NewPerformanceRepository(),
		contests: memory.NewContestRepository(memory.SeedContests()),
	}
	f.service = NewScoringService(f.players, f.teams, f.perfs, nil, 4, logging.NewNop())

	return f
}

func (f *scoringFixture) createTeam(t *testing.T, id, userID, contestID string) {
	t.Helper()

	err := f.teams.Create(context.Background(), team.Team{
		ID:        id,
		UserID:    userID,
		ContestID: contestID,
		Name:      "Team " + id,
		Members: []team.Member{
			{PlayerID: "bat-05", Credits: 95, IsCaptain: true},
			{PlayerID: "alr-04", Credits: 110, IsViceCaptain: true},
			{PlayerID: "bwl-05", Credits: 85},
		},
		CreatedAt: time.Date(2026, 9, 4, 9, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create team %s: %v", id, err)
	}
}

func TestScoringService_ApplyScoreUpdate_GlobalRecomputesTeams(t *testing.T) {
	f := newScoringFixture(t)
	f.createTeam(t, "team-a", "user-1", "")

	updates := []ScoreUpdateInput{
		{PlayerID: "bat-05", Points: 10},
		{PlayerID: "alr-04", Points: 7},
		{PlayerID: "bwl-05", Points: 5},
	}
	for _, update := range updates {
		if _, err := f.service.ApplyScoreUpdate(t.Context(), update); err != nil {
			t.Fatalf("apply update for %s: %v", update.PlayerID, err)
		}
	}

	stored, exists, err := f.teams.GetByID(t.Context(), "team-a")
	if err != nil || !exists {
		t.Fatalf("get team: exists=%t err=%v", exists, err)
	}
	// captain 10*2=20, vice 7*1.5=10.5 rounds to 11, plain 5
	if stored.TotalPoints != 36 {
		t.Fatalf("total points = %d, want 36", stored.TotalPoints)
	}
}

func TestScoringService_ApplyScoreUpdate_ContestScopeIsAuthoritative(t *testing.T) {
	f := newScoringFixture(t)
	f.createTeam(t, "team-b", "user-1", memory.ContestIDWeekendBash)

	// Global points that must be ignored inside the contest.
	if _, err := f.service.ApplyScoreUpdate(t.Context(), ScoreUpdateInput{PlayerID: "bwl-05", Points: 99}); err != nil {
		t.Fatalf("apply global update: %v", err)
	}

	if _, err := f.service.ApplyScoreUpdate(t.Context(), ScoreUpdateInput{
		PlayerID:  "bat-05",
		ContestID: memory.ContestIDWeekendBash,
		Points:    12,
	}); err != nil {
		t.Fatalf("apply contest update: %v", err)
	}

	stored, _, err := f.teams.GetByID(t.Context(), "team-b")
	if err != nil {
		t.Fatalf("get team: %v", err)
	}
	// Only the captain has a contest performance row; everyone else,
	// including the bowler with 99 global points, contributes zero.
	if stored.TotalPoints != 24 {
		t.Fatalf("total points = %d, want 24", stored.TotalPoints)
	}
}

func TestScoringService_ApplyScoreUpdate_UnknownPlayer(t *testing.T) {
	f := newScoringFixture(t)

	_, err := f.service.ApplyScoreUpdate(t.Context(), ScoreUpdateInput{PlayerID: "no-such-player", Points: 5})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestScoringService_ApplyBatchScoreUpdate_EntriesFailIndependently(t *testing.T) {
	f := newScoringFixture(t)
	f.createTeam(t, "team-c", "user-1", "")

	results, err := f.service.ApplyBatchScoreUpdate(t.Context(), []ScoreUpdateInput{
		{PlayerID: "bat-05", Points: 10},
		{PlayerID: "no-such-player", Points: 4},
		{PlayerID: "bwl-05", Points: 3},
	})
	if err != nil {
		t.Fatalf("apply batch: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("result count = %d", len(results))
	}
	if !results[0].Updated || results[0].Error != "" {
		t.Fatalf("first entry should succeed: %+v", results[0])
	}
	if results[1].Updated || results[1].Error == "" {
		t.Fatalf("second entry should fail: %+v", results[1])
	}
	if !results[2].Updated {
		t.Fatalf("third entry should succeed despite earlier failure: %+v", results[2])
	}

	stored, _, err := f.teams.GetByID(t.Context(), "team-c")
	if err != nil {
		t.Fatalf("get team: %v", err)
	}
	if stored.TotalPoints != 23 {
		t.Fatalf("total points = %d, want 23", stored.TotalPoints)
	}
}

func TestScoringService_RecomputeContest(t *testing.T) {
	f := newScoringFixture(t)
	f.createTeam(t, "team-d", "user-1", memory.ContestIDWeekendBash)
	f.createTeam(t, "team-e", "user-2", memory.ContestIDWeekendBash)

	summary, err := f.service.RecomputeContest(t.Context(), memory.ContestIDWeekendBash)
	if err != nil {
		t.Fatalf("recompute contest: %v", err)
	}
	if summary.Total != 2 || summary.Succeeded != 2 || summary.Failed != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestScoringService_RemovePlayer_DependentTeamsDropTheirPoints(t *testing.T) {
	f := newScoringFixture(t)
	f.createTeam(t, "team-f", "user-1", "")

	for _, update := range []ScoreUpdateInput{
		{PlayerID: "bat-05", Points: 10},
		{PlayerID: "bwl-05", Points: 5},
	} {
		if _, err := f.service.ApplyScoreUpdate(t.Context(), update); err != nil {
			t.Fatalf("apply update: %v", err)
		}
	}

	if err := f.service.RemovePlayer(t.Context(), "bat-05"); err != nil {
		t.Fatalf("remove player: %v", err)
	}

	stored, _, err := f.teams.GetByID(t.Context(), "team-f")
	if err != nil {
		t.Fatalf("get team: %v", err)
	}
	// The removed captain now contributes zero; only the bowler's 5
	// points remain.
	if stored.TotalPoints != 5 {
		t.Fatalf("total points = %d, want 5", stored.TotalPoints)
	}

	if err := f.service.RemovePlayer(t.Context(), "bat-05"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second removal, got %v", err)
	}
}
