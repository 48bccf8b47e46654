package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/crickhq/fantasy-cricket/internal/domain/player"
	playermock "github.com/crickhq/fantasy-cricket/internal/mocks/domain/player"
	"github.com/crickhq/fantasy-cricket/internal/platform/logging"
)

func TestPlayerService_ListPlayers_CategoryFilterUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	playerRepo := playermock.NewRepository(t)
	service := NewPlayerService(playerRepo, logging.NewNop())

	expected := []player.Player{
		{ID: "bwl-01", Name: "Zaid Khan", Category: player.CategoryBowler, Credits: 180},
		{ID: "bwl-02", Name: "Tariq Anwar", Category: player.CategoryBowler, Credits: 160},
	}

	playerRepo.
		On("List", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), player.Filter{Category: player.CategoryBowler}).
		Return(expected, nil).
		Once()

	got, err := service.ListPlayers(ctx, "bowler")
	if err != nil {
		t.Fatalf("list players: %v", err)
	}
	if len(got) != len(expected) {
		t.Fatalf("player count: got=%d want=%d", len(got), len(expected))
	}
	if got[0].ID != expected[0].ID {
		t.Fatalf("player id: got=%s want=%s", got[0].ID, expected[0].ID)
	}
}

func TestPlayerService_ListPlayers_UnknownCategoryUsingMockery(t *testing.T) {
	t.Parallel()

	playerRepo := playermock.NewRepository(t)
	service := NewPlayerService(playerRepo, logging.NewNop())

	_, err := service.ListPlayers(context.Background(), "goalkeeper")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestPlayerService_GetPlayer_RepoErrorUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	playerRepo := playermock.NewRepository(t)
	service := NewPlayerService(playerRepo, logging.NewNop())

	playerRepo.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), "bat-01").
		Return(player.Player{}, false, errors.New("connection reset")).
		Once()

	_, err := service.GetPlayer(ctx, "bat-01")
	if err == nil {
		t.Fatal("expected wrapped repo error")
	}
	if got := err.Error(); got != "get player by id: connection reset" {
		t.Fatalf("unexpected error message: %q", got)
	}
}
