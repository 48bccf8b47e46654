package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/crickhq/fantasy-cricket/internal/domain/contest"
	"github.com/crickhq/fantasy-cricket/internal/domain/team"
	"github.com/crickhq/fantasy-cricket/internal/domain/user"
	"github.com/crickhq/fantasy-cricket/internal/infrastructure/repository/memory"
	"github.com/crickhq/fantasy-cricket/internal/platform/logging"
)

type staticIDGenerator struct {
	id string
}

func (g staticIDGenerator) NewID() (string, error) {
	return g.id, nil
}

func newTeamServiceForTest(t *testing.T, teamID string) (*TeamService, *memory.TeamRepository) {
	t.Helper()

	teamRepo := memory.NewTeamRepository()
	service := NewTeamService(
		memory.NewPlayerRepository(memory.SeedPlayers()),
		teamRepo,
		memory.NewContestRepository(memory.SeedContests()),
		team.DefaultRules(),
		staticIDGenerator{id: teamID},
		logging.NewNop(),
	)

	return service, teamRepo
}

func TestTeamService_AssembleTeam_Success(t *testing.T) {
	service, _ := newTeamServiceForTest(t, "team-001")

	now := time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return now }

	created, err := service.AssembleTeam(t.Context(), AssembleTeamInput{
		UserID:        "user-1",
		ContestID:     memory.ContestIDWeekendBash,
		Name:          "Mumbai Mavericks",
		PlayerIDs:     []string{"bat-05", "bwl-05", "wkt-03", "bwl-04", "alr-04"},
		CaptainID:     "bat-05",
		ViceCaptainID: "alr-04",
	})
	if err != nil {
		t.Fatalf("assemble team: %v", err)
	}

	if created.ID != "team-001" {
		t.Fatalf("team id = %s", created.ID)
	}
	if !created.CreatedAt.Equal(now) {
		t.Fatalf("created at = %v, want %v", created.CreatedAt, now)
	}
	if got := created.SpentCredits(); got != 490 {
		t.Fatalf("spent credits = %d, want 490", got)
	}
	if created.CaptainID() != "bat-05" || created.ViceCaptainID() != "alr-04" {
		t.Fatalf("captain=%s vice=%s", created.CaptainID(), created.ViceCaptainID())
	}
}

func TestTeamService_AssembleTeam_BudgetExceeded(t *testing.T) {
	service, _ := newTeamServiceForTest(t, "team-002")

	_, err := service.AssembleTeam(t.Context(), AssembleTeamInput{
		UserID:        "user-1",
		Name:          "Big Spenders",
		PlayerIDs:     []string{"bat-01", "alr-01", "bwl-01", "bat-02", "wkt-01", "bwl-02"},
		CaptainID:     "bat-01",
		ViceCaptainID: "alr-01",
	})
	if !errors.Is(err, team.ErrBudgetExceeded) {
		t.Fatalf("expected ErrBudgetExceeded, got %v", err)
	}
}

func TestTeamService_AssembleTeam_CaptainRules(t *testing.T) {
	t.Run("captain equals vice-captain", func(t *testing.T) {
		service, _ := newTeamServiceForTest(t, "team-003")

		_, err := service.AssembleTeam(t.Context(), AssembleTeamInput{
			UserID:        "user-1",
			Name:          "One Leader",
			PlayerIDs:     []string{"bat-05", "bwl-05"},
			CaptainID:     "bat-05",
			ViceCaptainID: "bat-05",
		})
		if !errors.Is(err, team.ErrCaptainConflict) {
			t.Fatalf("expected ErrCaptainConflict, got %v", err)
		}
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput wrapping, got %v", err)
		}
	})

	t.Run("captain outside roster", func(t *testing.T) {
		service, _ := newTeamServiceForTest(t, "team-004")

		_, err := service.AssembleTeam(t.Context(), AssembleTeamInput{
			UserID:        "user-1",
			Name:          "Ghost Captain",
			PlayerIDs:     []string{"bat-05", "bwl-05"},
			CaptainID:     "bat-01",
			ViceCaptainID: "bwl-05",
		})
		if !errors.Is(err, team.ErrCaptainNotInTeam) {
			t.Fatalf("expected ErrCaptainNotInTeam, got %v", err)
		}
	})

	t.Run("duplicate player in selection", func(t *testing.T) {
		service, _ := newTeamServiceForTest(t, "team-005")

		_, err := service.AssembleTeam(t.Context(), AssembleTeamInput{
			UserID:        "user-1",
			Name:          "Clones",
			PlayerIDs:     []string{"bat-05", "bat-05"},
			CaptainID:     "bat-05",
			ViceCaptainID: "bat-05",
		})
		if !errors.Is(err, team.ErrDuplicatePlayer) {
			t.Fatalf("expected ErrDuplicatePlayer, got %v", err)
		}
	})
}

func TestTeamService_AssembleTeam_DuplicateTeam(t *testing.T) {
	service, _ := newTeamServiceForTest(t, "team-006")

	input := AssembleTeamInput{
		UserID:        "user-1",
		ContestID:     memory.ContestIDWeekendBash,
		Name:          "First Entry",
		PlayerIDs:     []string{"bat-05", "bwl-05"},
		CaptainID:     "bat-05",
		ViceCaptainID: "bwl-05",
	}
	if _, err := service.AssembleTeam(t.Context(), input); err != nil {
		t.Fatalf("first assemble: %v", err)
	}

	input.Name = "Second Entry"
	_, err := service.AssembleTeam(t.Context(), input)
	if !errors.Is(err, team.ErrDuplicateTeam) {
		t.Fatalf("expected ErrDuplicateTeam, got %v", err)
	}
}

func TestTeamService_AssembleTeam_CompletedContest(t *testing.T) {
	contestRepo := memory.NewContestRepository([]contest.Contest{
		{
			ID:       "finished-cup",
			Name:     "Finished Cup",
			Status:   contest.StatusCompleted,
			StartsAt: time.Date(2026, 8, 1, 14, 0, 0, 0, time.UTC),
		},
	})
	service := NewTeamService(
		memory.NewPlayerRepository(memory.SeedPlayers()),
		memory.NewTeamRepository(),
		contestRepo,
		team.DefaultRules(),
		staticIDGenerator{id: "team-007"},
		logging.NewNop(),
	)

	_, err := service.AssembleTeam(t.Context(), AssembleTeamInput{
		UserID:        "user-1",
		ContestID:     "finished-cup",
		Name:          "Too Late",
		PlayerIDs:     []string{"bat-05", "bwl-05"},
		CaptainID:     "bat-05",
		ViceCaptainID: "bwl-05",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for completed contest, got %v", err)
	}
}

func TestTeamService_AssembleTeam_UnknownPlayer(t *testing.T) {
	service, _ := newTeamServiceForTest(t, "team-008")

	_, err := service.AssembleTeam(t.Context(), AssembleTeamInput{
		UserID:        "user-1",
		Name:          "Phantom Pick",
		PlayerIDs:     []string{"bat-05", "no-such-player"},
		CaptainID:     "bat-05",
		ViceCaptainID: "no-such-player",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestTeamService_DeleteTeam_Ownership(t *testing.T) {
	service, _ := newTeamServiceForTest(t, "team-009")

	if _, err := service.AssembleTeam(t.Context(), AssembleTeamInput{
		UserID:        "user-1",
		Name:          "Keep Out",
		PlayerIDs:     []string{"bat-05", "bwl-05"},
		CaptainID:     "bat-05",
		ViceCaptainID: "bwl-05",
	}); err != nil {
		t.Fatalf("assemble team: %v", err)
	}

	err := service.DeleteTeam(t.Context(), "team-009", user.Principal{UserID: "user-2"})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for non-owner, got %v", err)
	}

	if err := service.DeleteTeam(t.Context(), "team-009", user.Principal{UserID: "admin-1", Role: user.RoleAdmin}); err != nil {
		t.Fatalf("admin delete: %v", err)
	}

	if _, err := service.GetTeam(t.Context(), "team-009"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
